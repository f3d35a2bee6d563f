package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/murmurapp/murmur/pkg/asr"
	"github.com/murmurapp/murmur/pkg/audio/capture"
	"github.com/murmurapp/murmur/pkg/buffer"
	"github.com/murmurapp/murmur/pkg/diarize"
	"github.com/murmurapp/murmur/pkg/store"
	"github.com/murmurapp/murmur/pkg/textnorm"
	"github.com/murmurapp/murmur/pkg/transcript"
	"github.com/murmurapp/murmur/pkg/vad"
)

// Session-level error taxonomy. Per-batch decode failures never surface
// here; they degrade to an empty result inside the recognizer.
var (
	// ErrInitialization marks an engine or model that failed to load.
	ErrInitialization = errors.New("session: initialization failure")

	// ErrCapture marks a device that could not be opened or read.
	ErrCapture = errors.New("session: capture failure")

	// ErrNotReady is returned when an operation needs PhaseReady.
	ErrNotReady = errors.New("session: not ready")

	// ErrNotRecording is returned by Stop outside PhaseRecording.
	ErrNotRecording = errors.New("session: not recording")
)

// Engines holds the factories the orchestrator initializes engines from.
// Engine lifetime is tied to the orchestrator, not the process.
type Engines struct {
	// ASR constructs the recognition engine. Nil opens the registered
	// "null" engine.
	ASR func() (asr.Engine, error)

	// VAD constructs the voice activity detector. Nil uses the energy
	// detector with default tuning.
	VAD func() (vad.Engine, error)

	// Diarize constructs the speaker diarization engine. Nil disables
	// the post-session speaker pass.
	Diarize func() (diarize.Engine, error)
}

// Config configures an Orchestrator.
type Config struct {
	Engines Engines

	// OpenDevice opens the capture device at session start.
	OpenDevice capture.OpenDeviceFunc

	// MinBatch is the minimum speech duration per recognition batch.
	// Zero takes vad.DefaultMinBatch.
	MinBatch time.Duration

	// Normalize enables the language-specific text normalization stage.
	Normalize bool

	// WakeLock keeps the device awake while recording. Nil uses
	// NopWakeLock.
	WakeLock WakeLock

	// WakeLockLimit bounds the wake lock lifetime. Zero takes
	// DefaultWakeLockLimit.
	WakeLockLimit time.Duration

	// Repo persists the recording. Nil disables persistence.
	Repo store.Repository

	// Log receives structured logs. Nil discards them.
	Log *slog.Logger
}

// Orchestrator owns session state and supervises the capture and
// batching/recognition loops. At most one session records at a time.
type Orchestrator struct {
	cfg        Config
	log        *slog.Logger
	normalizer textnorm.Normalizer

	mu          sync.Mutex
	phase       Phase
	err         error
	name        string
	duration    time.Duration
	segments    []transcript.Segment
	wave        capture.Waveform
	waveHistory *buffer.Ring[capture.Waveform]
	watchers    map[int]chan State
	nextWatcher int
	stopping    bool

	recognizer *asr.Recognizer
	batcher    *vad.Batcher
	diarizer   diarize.Engine

	// per-session, valid between Start and the end of Stop
	capture     *capture.Engine
	queue       *buffer.Queue[capture.Chunk]
	captureDone chan struct{}
	batchDone   chan struct{}
	releaseWake func()
	rec         *store.Recording
	audio       []float32
}

// New creates an idle Orchestrator. Call Init before starting a session.
func New(cfg Config) *Orchestrator {
	log := cfg.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if cfg.WakeLock == nil {
		cfg.WakeLock = NopWakeLock{}
	}
	if cfg.WakeLockLimit == 0 {
		cfg.WakeLockLimit = DefaultWakeLockLimit
	}
	return &Orchestrator{
		cfg:         cfg,
		log:         log.With("component", "session"),
		phase:       PhaseIdle,
		watchers:    make(map[int]chan State),
		waveHistory: buffer.NewRing[capture.Waveform](64),
	}
}

// Init loads all engines. Failure transitions to PhaseError and is not
// retried silently; the caller must ClearError before trying again.
func (o *Orchestrator) Init(ctx context.Context) error {
	o.mu.Lock()
	if o.phase != PhaseIdle {
		o.mu.Unlock()
		return fmt.Errorf("%w: init in phase %s", ErrNotReady, o.phase)
	}
	o.setPhaseLocked(PhaseInitializing)
	o.mu.Unlock()

	fail := func(what string, err error) error {
		err = fmt.Errorf("%w: %s: %w", ErrInitialization, what, err)
		o.mu.Lock()
		o.err = err
		o.setPhaseLocked(PhaseError)
		o.mu.Unlock()
		return err
	}

	asrFactory := o.cfg.Engines.ASR
	if asrFactory == nil {
		asrFactory = func() (asr.Engine, error) { return asr.Open("null", asr.Config{}) }
	}
	asrEngine, err := asrFactory()
	if err != nil {
		return fail("recognition engine", err)
	}

	vadFactory := o.cfg.Engines.VAD
	if vadFactory == nil {
		vadFactory = func() (vad.Engine, error) { return vad.NewEnergy(vad.Config{}), nil }
	}
	vadEngine, err := vadFactory()
	if err != nil {
		return fail("vad engine", err)
	}

	if f := o.cfg.Engines.Diarize; f != nil {
		o.diarizer, err = f()
		if err != nil {
			return fail("diarization engine", err)
		}
	}

	o.recognizer = asr.NewRecognizer(asrEngine, o.log)
	o.batcher = vad.NewBatcher(vadEngine, o.cfg.MinBatch)

	o.mu.Lock()
	o.setPhaseLocked(PhaseReady)
	o.mu.Unlock()
	o.log.Info("engines initialized", "diarization", o.diarizer != nil)
	return nil
}

// Start begins a new recording session.
func (o *Orchestrator) Start(ctx context.Context) error {
	return o.start(ctx, nil)
}

// Resume continues a previously stored recording: its transcript and
// duration carry over and new segments append after the existing ones.
func (o *Orchestrator) Resume(ctx context.Context, rec *store.Recording) error {
	return o.start(ctx, rec)
}

func (o *Orchestrator) start(ctx context.Context, resume *store.Recording) error {
	o.mu.Lock()
	if o.phase != PhaseReady {
		o.mu.Unlock()
		return fmt.Errorf("%w: start in phase %s", ErrNotReady, o.phase)
	}
	o.stopping = false
	o.err = nil
	if resume != nil {
		o.name = resume.Name
		o.duration = resume.Duration
		o.segments = append([]transcript.Segment(nil), resume.Segments...)
		o.rec = resume
	} else {
		o.name = ""
		o.duration = 0
		o.segments = nil
		o.rec = &store.Recording{}
	}
	o.audio = nil
	o.wave = capture.Waveform{}
	o.waveHistory.Reset()
	o.mu.Unlock()

	o.batcher.Reset()

	release, err := o.cfg.WakeLock.Acquire(o.cfg.WakeLockLimit)
	if err != nil {
		// Losing the anti-idle lock degrades, it does not abort.
		o.log.Warn("wake lock unavailable", "err", err)
		release = func() {}
	}

	o.capture = capture.New(o.cfg.OpenDevice, o.log)
	if err := o.capture.Start(); err != nil {
		release()
		err = fmt.Errorf("%w: %w", ErrCapture, err)
		o.mu.Lock()
		o.err = err
		o.setPhaseLocked(PhaseError)
		o.mu.Unlock()
		return err
	}

	if o.cfg.Repo != nil && resume == nil {
		if err := o.cfg.Repo.Insert(ctx, o.rec); err != nil {
			o.log.Warn("insert recording", "err", err)
		}
	}

	o.releaseWake = release
	o.queue = buffer.NewQueue[capture.Chunk](64)
	o.captureDone = make(chan struct{})
	o.batchDone = make(chan struct{})

	o.mu.Lock()
	o.setPhaseLocked(PhaseRecording)
	o.mu.Unlock()
	o.log.Info("recording started", "resumed", resume != nil)

	go o.captureLoop()
	go o.batchLoop()
	return nil
}

// captureLoop blocks on device reads and pushes chunks into the queue until
// the device stops or fails.
func (o *Orchestrator) captureLoop() {
	defer close(o.captureDone)
	for {
		chunk, err := o.capture.Read()
		if err != nil {
			o.mu.Lock()
			stopping := o.stopping
			o.mu.Unlock()
			if stopping || errors.Is(err, io.EOF) {
				return
			}
			o.captureFailed(err)
			return
		}

		if err := o.queue.Add(chunk); err != nil {
			return
		}

		o.mu.Lock()
		o.duration += chunk.Duration()
		o.wave = chunk.Summary
		o.waveHistory.Push(chunk.Summary)
		o.audio = append(o.audio, chunk.Samples...)
		o.publishLocked()
		o.mu.Unlock()
	}
}

// batchLoop consumes the queue in strict arrival order until it is drained
// and closed.
func (o *Orchestrator) batchLoop() {
	defer close(o.batchDone)
	for {
		chunk, err := o.queue.Next()
		if err != nil {
			return
		}
		o.processBatch(o.batcher.Push(chunk.Samples))
	}
}

// processBatch recognizes and normalizes one dispatch unit. A nil batch or
// a batch that decodes to nothing is skipped.
func (o *Orchestrator) processBatch(batch []float32) {
	if len(batch) == 0 {
		return
	}
	text := textnorm.Cleanup(o.recognizer.Recognize(batch))
	if text == "" {
		return
	}
	if o.cfg.Normalize {
		var ok bool
		if text, ok = o.normalizer.Normalize(text); !ok {
			return
		}
	}

	o.mu.Lock()
	o.segments = append(o.segments, transcript.New(text))
	o.publishLocked()
	o.mu.Unlock()
}

// captureFailed tears the session down after a device error. The batch loop
// still drains whatever was queued before the failure.
func (o *Orchestrator) captureFailed(readErr error) {
	err := fmt.Errorf("%w: %w", ErrCapture, readErr)
	o.log.Error("capture failed", "err", readErr)

	o.mu.Lock()
	o.stopping = true
	o.err = err
	o.setPhaseLocked(PhaseError)
	o.mu.Unlock()

	o.capture.Stop()
	o.queue.CloseWrite()
	<-o.batchDone
	o.processBatch(o.batcher.Flush())
	if o.releaseWake != nil {
		o.releaseWake()
		o.releaseWake = nil
	}
}

// Stop ends the session: capture is cancelled immediately, the batch loop
// drains every queued chunk, the detector is flushed, the speaker pass runs
// and the recording is persisted as completed.
func (o *Orchestrator) Stop(ctx context.Context) error {
	o.mu.Lock()
	if o.phase != PhaseRecording {
		o.mu.Unlock()
		return fmt.Errorf("%w: stop in phase %s", ErrNotRecording, o.phase)
	}
	o.stopping = true
	o.setPhaseLocked(PhaseStopping)
	o.mu.Unlock()

	o.capture.Stop()
	<-o.captureDone

	// Everything queued before the stop must be processed; only then may
	// the detector be flushed.
	o.queue.CloseWrite()
	<-o.batchDone
	o.processBatch(o.batcher.Flush())

	if o.releaseWake != nil {
		o.releaseWake()
		o.releaseWake = nil
	}

	o.diarizeSession()
	o.persist(ctx)

	o.mu.Lock()
	o.audio = nil
	o.setPhaseLocked(PhaseReady)
	o.mu.Unlock()
	o.log.Info("recording stopped", "duration", o.State().Duration)
	return nil
}

// diarizeSession runs the speaker pass over the retained session waveform.
// Failure is logged and leaves every segment unassigned.
func (o *Orchestrator) diarizeSession() {
	o.mu.Lock()
	audio := o.audio
	segments := append([]transcript.Segment(nil), o.segments...)
	duration := o.duration
	o.mu.Unlock()

	if o.diarizer == nil || len(audio) == 0 || len(segments) == 0 {
		return
	}

	o.mu.Lock()
	o.setPhaseLocked(PhaseDiarizing)
	o.mu.Unlock()

	intervals, err := o.diarizer.Process(audio)
	if err != nil {
		o.log.Warn("diarization failed", "err", err)
		return
	}

	aligned := diarize.Align(segments, intervals, duration.Seconds())
	o.mu.Lock()
	o.segments = aligned
	o.rec.SpeakerCount = diarize.SpeakerCount(intervals)
	o.publishLocked()
	o.mu.Unlock()
}

func (o *Orchestrator) persist(ctx context.Context) {
	if o.cfg.Repo == nil || o.rec == nil {
		return
	}
	o.mu.Lock()
	o.rec.Name = o.name
	o.rec.Duration = o.duration
	o.rec.Segments = append([]transcript.Segment(nil), o.segments...)
	o.rec.Completed = true
	rec := o.rec
	o.mu.Unlock()

	if err := o.cfg.Repo.Update(ctx, rec); err != nil {
		o.log.Error("persist recording", "err", err)
	}
}

// UpdateName sets the session name; it is persisted when the session stops.
func (o *Orchestrator) UpdateName(name string) {
	o.mu.Lock()
	o.name = name
	o.publishLocked()
	o.mu.Unlock()
}

// ClearError acknowledges a session-level failure. Engines that loaded stay
// loaded: the orchestrator returns to PhaseReady, or PhaseIdle when Init
// itself failed.
func (o *Orchestrator) ClearError() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.phase != PhaseError {
		return
	}
	o.err = nil
	if o.recognizer != nil {
		o.setPhaseLocked(PhaseReady)
	} else {
		o.setPhaseLocked(PhaseIdle)
	}
}

// State returns the current snapshot.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.snapshotLocked()
}

// WaveformHistory returns the most recent chunk summaries, oldest first.
func (o *Orchestrator) WaveformHistory() []capture.Waveform {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.waveHistory.Snapshot()
}

// Watch subscribes to state snapshots. The channel holds the latest
// snapshot only; a slow reader misses intermediate states, never sees stale
// ones. The cancel function releases the subscription.
func (o *Orchestrator) Watch() (<-chan State, func()) {
	o.mu.Lock()
	id := o.nextWatcher
	o.nextWatcher++
	ch := make(chan State, 1)
	o.watchers[id] = ch
	ch <- o.snapshotLocked()
	o.mu.Unlock()

	return ch, func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		if c, ok := o.watchers[id]; ok {
			delete(o.watchers, id)
			close(c)
		}
	}
}

// Close releases the engines. The orchestrator cannot be reused after.
func (o *Orchestrator) Close() error {
	o.mu.Lock()
	recording := o.phase == PhaseRecording
	o.mu.Unlock()
	if recording {
		if err := o.Stop(context.Background()); err != nil {
			o.log.Warn("stop on close", "err", err)
		}
	}
	if o.recognizer != nil {
		return o.recognizer.Close()
	}
	return nil
}

func (o *Orchestrator) setPhaseLocked(p Phase) {
	o.phase = p
	o.publishLocked()
}

func (o *Orchestrator) snapshotLocked() State {
	return State{
		Phase:    o.phase,
		Name:     o.name,
		Duration: o.duration,
		Segments: append([]transcript.Segment(nil), o.segments...),
		Waveform: o.wave,
		Err:      o.err,
	}
}

// publishLocked replaces each watcher's pending snapshot with the current
// one. Caller holds o.mu.
func (o *Orchestrator) publishLocked() {
	snap := o.snapshotLocked()
	for _, ch := range o.watchers {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}
