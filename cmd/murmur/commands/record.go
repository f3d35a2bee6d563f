package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/murmurapp/murmur/pkg/asr"
	"github.com/murmurapp/murmur/pkg/audio/capture"
	"github.com/murmurapp/murmur/pkg/audio/pcm"
	"github.com/murmurapp/murmur/pkg/audio/portaudio"
	"github.com/murmurapp/murmur/pkg/audio/resampler"
	"github.com/murmurapp/murmur/pkg/cli"
	"github.com/murmurapp/murmur/pkg/diarize"
	"github.com/murmurapp/murmur/pkg/monitor"
	"github.com/murmurapp/murmur/pkg/session"
	"github.com/murmurapp/murmur/pkg/store"
)

var recordFlags struct {
	name      string
	resume    string
	engine    string
	model     string
	minBatch  string
	normalize bool
	rate      int
	monitor   string
	plain     bool
}

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Capture and transcribe a session from the microphone",
	Long: `Capture audio from the default input device and transcribe it locally.

Recording runs until interrupted (Ctrl+C). On stop, queued audio is
transcribed, the speaker pass runs and the recording is stored.`,
	Args: cobra.NoArgs,
	RunE: runRecord,
}

func init() {
	f := recordCmd.Flags()
	f.StringVarP(&recordFlags.name, "name", "n", "", "session name")
	f.StringVar(&recordFlags.resume, "resume", "", "continue a stored recording by id")
	f.StringVar(&recordFlags.engine, "engine", "", "recognition engine (overrides settings)")
	f.StringVar(&recordFlags.model, "model", "", "recognition model path (overrides settings)")
	f.StringVar(&recordFlags.minBatch, "min-batch", "", "minimum speech per recognition batch, e.g. 2s")
	f.BoolVar(&recordFlags.normalize, "normalize", false, "normalize transcript text")
	f.IntVar(&recordFlags.rate, "rate", 0, "input device sample rate in Hz")
	f.StringVar(&recordFlags.monitor, "monitor", "", "serve the live state feed on this address")
	f.BoolVar(&recordFlags.plain, "plain", false, "line-oriented output instead of the live view")

	rootCmd.AddCommand(recordCmd)
}

func runRecord(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	settings, err := GetSettings()
	if err != nil {
		return err
	}

	engine := settings.Engine
	if recordFlags.engine != "" {
		engine = recordFlags.engine
	}
	if engine == "" {
		engine = "null"
	}
	model := settings.Model
	if recordFlags.model != "" {
		model = recordFlags.model
	}
	rate := settings.InputRate
	if recordFlags.rate != 0 {
		rate = recordFlags.rate
	}
	monitorAddr := settings.MonitorAddr
	if recordFlags.monitor != "" {
		monitorAddr = recordFlags.monitor
	}
	if recordFlags.minBatch != "" {
		settings.MinBatch = recordFlags.minBatch
	}
	minBatch, err := settings.MinBatchDuration()
	if err != nil {
		return err
	}

	repo, closeRepo, err := openRepo()
	if err != nil {
		return err
	}
	defer closeRepo()

	// In the live view logs render inside the frame; in plain mode they go
	// straight to stderr.
	logWriter := cli.NewLogWriter(200)
	logOut := slog.New(slog.NewTextHandler(logWriter, nil))
	if recordFlags.plain {
		logOut = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel(),
		}))
	}

	orch := session.New(session.Config{
		Engines: session.Engines{
			ASR: func() (asr.Engine, error) {
				return asr.Open(engine, asr.Config{Model: model, NumThreads: settings.NumThreads})
			},
			Diarize: func() (diarize.Engine, error) {
				return &diarize.SilenceSplitter{}, nil
			},
		},
		OpenDevice: openInput(rate),
		MinBatch:   minBatch,
		Normalize:  settings.Normalize || recordFlags.normalize,
		Repo:       repo,
		Log:        logOut,
	})
	if err := orch.Init(ctx); err != nil {
		return err
	}
	defer orch.Close()

	if monitorAddr != "" {
		mon := monitor.NewServer(orch, logOut)
		go func() {
			if err := mon.ListenAndServe(monitorAddr); err != nil {
				logOut.Warn("monitor stopped", "err", err)
			}
		}()
	}

	var resumed *store.Recording
	if recordFlags.resume != "" {
		resumed, err = resolveRecording(ctx, repo, recordFlags.resume)
		if err != nil {
			return err
		}
		if err := orch.Resume(ctx, resumed); err != nil {
			return err
		}
	} else if err := orch.Start(ctx); err != nil {
		return err
	}
	if recordFlags.name != "" {
		orch.UpdateName(recordFlags.name)
	}

	states, unwatch := orch.Watch()
	defer unwatch()

	if recordFlags.plain {
		followPlain(ctx, states)
	} else {
		followLive(ctx, states, logWriter)
	}

	unwatch()

	// A capture failure already tore the session down; there is nothing
	// left to stop.
	if st := orch.State(); st.Phase == session.PhaseError {
		return st.Err
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer stopCancel()
	if err := orch.Stop(stopCtx); err != nil {
		return err
	}

	final := orch.State()
	cli.PrintSuccess("recorded %s, %d segment(s)",
		cli.FormatDuration(final.Duration), len(final.Segments))
	return nil
}

// followPlain prints each transcript segment as a line until interrupted.
func followPlain(ctx context.Context, states <-chan session.State) {
	printed := 0
	for {
		select {
		case <-ctx.Done():
			return
		case st := <-states:
			for ; printed < len(st.Segments); printed++ {
				seg := st.Segments[printed]
				fmt.Printf("%s  %s\n", seg.CreatedAt.Format("15:04:05"), seg.Text)
			}
			if st.Err != nil {
				return
			}
		}
	}
}

// followLive redraws the recording view on every state change until
// interrupted.
func followLive(ctx context.Context, states <-chan session.State, logs *cli.LogWriter) {
	width, height := termSize()
	styles := cli.NewStyles(cli.DefaultTheme)
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	st := session.State{}
	for {
		select {
		case <-ctx.Done():
			fmt.Print("\x1b[2J\x1b[H")
			return
		case st = <-states:
			if st.Err != nil {
				fmt.Print("\x1b[2J\x1b[H")
				return
			}
		case <-logs.Channel():
		case <-ticker.C:
		}

		frame := cli.Frame{
			Styles: styles,
			Title:  "MURMUR",
			Status: st.Phase.String(),
			Sections: []cli.Section{
				{Label: "Input", Content: func() []string {
					return []string{
						cli.Meter(st.Waveform.Buckets[:]),
						"elapsed " + cli.FormatClock(st.Duration),
					}
				}},
				{Label: "Transcript", Content: func() []string {
					return transcriptLines(st)
				}},
				{Label: "Log", Content: logs.Lines},
			},
			Help: "Ctrl+C=stop",
		}
		fmt.Print("\x1b[H\x1b[2J" + frame.Render(width, height))
	}
}

func transcriptLines(st session.State) []string {
	lines := make([]string, 0, len(st.Segments))
	for _, seg := range st.Segments {
		lines = append(lines, seg.Text)
	}
	return lines
}

// openInput opens the default input device at the requested rate and adapts
// it to the pipeline format, resampling when the rates differ.
func openInput(rate int) capture.OpenDeviceFunc {
	return func() (capture.Device, error) {
		format, err := inputFormat(rate)
		if err != nil {
			return nil, err
		}
		stream, err := portaudio.NewInputStream(format, capture.ChunkDuration)
		if err != nil {
			return nil, err
		}
		if format == capture.Format {
			return stream, nil
		}
		rs, err := resampler.New(stream.Bytes(),
			resampler.Format{SampleRate: format.SampleRate()},
			resampler.Format{SampleRate: capture.Format.SampleRate()})
		if err != nil {
			stream.Close()
			return nil, err
		}
		return capture.NewReaderDevice(rs), nil
	}
}

func inputFormat(rate int) (pcm.Format, error) {
	switch rate {
	case 0, 16000:
		return pcm.L16Mono16K, nil
	case 24000:
		return pcm.L16Mono24K, nil
	case 44100:
		return pcm.L16Mono44K1, nil
	case 48000:
		return pcm.L16Mono48K, nil
	}
	return 0, fmt.Errorf("unsupported input rate %d Hz", rate)
}

func logLevel() slog.Level {
	if IsVerbose() {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// termSize reads the terminal size from the environment, falling back to a
// usable default when the shell does not export it.
func termSize() (width, height int) {
	width, height = 100, 30
	if v, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && v > 20 {
		width = v
	}
	if v, err := strconv.Atoi(os.Getenv("LINES")); err == nil && v > 10 {
		height = v
	}
	return width, height
}
