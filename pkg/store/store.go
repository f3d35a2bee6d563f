// Package store persists finished and in-progress recordings. Records are
// msgpack-encoded into the kv layer under ["recording", id].
package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/murmurapp/murmur/pkg/kv"
	"github.com/murmurapp/murmur/pkg/transcript"
)

// ErrNotFound is returned when no recording exists for an id.
var ErrNotFound = errors.New("store: recording not found")

// Recording is one captured session.
type Recording struct {
	ID        uuid.UUID     `msgpack:"id"`
	Name      string        `msgpack:"name"`
	CreatedAt time.Time     `msgpack:"created_at"`
	Duration  time.Duration `msgpack:"duration"`

	// Segments is the ordered transcript; insertion order is
	// chronological order.
	Segments []transcript.Segment `msgpack:"segments"`

	// SpeakerCount is the number of distinct speakers diarization found,
	// zero when the session was not diarized.
	SpeakerCount int `msgpack:"speaker_count"`

	// Completed marks a recording whose session ended cleanly.
	Completed bool `msgpack:"completed"`
}

// Repository stores recordings.
type Repository interface {
	// Insert stores a new recording, assigning ID and CreatedAt when
	// unset.
	Insert(ctx context.Context, rec *Recording) error

	// Update overwrites an existing recording, ErrNotFound if absent.
	Update(ctx context.Context, rec *Recording) error

	// Get returns the recording with the given id.
	Get(ctx context.Context, id uuid.UUID) (*Recording, error)

	// List returns all recordings, newest first.
	List(ctx context.Context) ([]*Recording, error)

	// Rename changes a recording's name.
	Rename(ctx context.Context, id uuid.UUID, name string) error

	// Delete removes a recording. Deleting an absent id is not an error.
	Delete(ctx context.Context, id uuid.UUID) error
}

// KV is a Repository over a kv.Store.
type KV struct {
	store kv.Store
}

var _ Repository = (*KV)(nil)

// NewKV creates a Repository persisting into store.
func NewKV(store kv.Store) *KV {
	return &KV{store: store}
}

func key(id uuid.UUID) kv.Key {
	return kv.Key{"recording", id.String()}
}

func (r *KV) Insert(ctx context.Context, rec *Recording) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	return r.put(ctx, rec)
}

func (r *KV) Update(ctx context.Context, rec *Recording) error {
	if _, err := r.store.Get(ctx, key(rec.ID)); err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return r.put(ctx, rec)
}

func (r *KV) put(ctx context.Context, rec *Recording) error {
	b, err := msgpack.Marshal(rec)
	if err != nil {
		return fmt.Errorf("store: encode recording: %w", err)
	}
	return r.store.Set(ctx, key(rec.ID), b)
}

func (r *KV) Get(ctx context.Context, id uuid.UUID) (*Recording, error) {
	b, err := r.store.Get(ctx, key(id))
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var rec Recording
	if err := msgpack.Unmarshal(b, &rec); err != nil {
		return nil, fmt.Errorf("store: decode recording: %w", err)
	}
	return &rec, nil
}

func (r *KV) List(ctx context.Context) ([]*Recording, error) {
	var recs []*Recording
	for e, err := range r.store.List(ctx, kv.Key{"recording"}) {
		if err != nil {
			return nil, err
		}
		var rec Recording
		if err := msgpack.Unmarshal(e.Value, &rec); err != nil {
			return nil, fmt.Errorf("store: decode %s: %w", e.Key, err)
		}
		recs = append(recs, &rec)
	}
	sort.Slice(recs, func(i, j int) bool {
		return recs[i].CreatedAt.After(recs[j].CreatedAt)
	})
	return recs, nil
}

func (r *KV) Rename(ctx context.Context, id uuid.UUID, name string) error {
	rec, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	rec.Name = name
	return r.put(ctx, rec)
}

func (r *KV) Delete(ctx context.Context, id uuid.UUID) error {
	return r.store.Delete(ctx, key(id))
}
