package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/murmurapp/murmur/pkg/cli"
	"github.com/murmurapp/murmur/pkg/kv"
	"github.com/murmurapp/murmur/pkg/store"
)

// openRepo opens the on-disk recordings repository. The returned close
// function must be called before the process exits or badger loses its
// last memtable.
func openRepo() (store.Repository, func() error, error) {
	s, err := GetSettings()
	if err != nil {
		return nil, nil, err
	}

	dir := s.DataDir
	if dir == "" {
		paths, err := cli.NewPaths()
		if err != nil {
			return nil, nil, err
		}
		if err := paths.EnsureDataDir(); err != nil {
			return nil, nil, fmt.Errorf("create data directory: %w", err)
		}
		dir = paths.DataPath("recordings")
	}

	db, err := kv.NewBadger(kv.BadgerOptions{Dir: dir})
	if err != nil {
		return nil, nil, fmt.Errorf("open recordings database: %w", err)
	}
	return store.NewKV(db), db.Close, nil
}

// resolveRecording looks a recording up by full ID or unique ID prefix.
func resolveRecording(ctx context.Context, repo store.Repository, ref string) (*store.Recording, error) {
	if id, err := uuid.Parse(ref); err == nil {
		return repo.Get(ctx, id)
	}

	recs, err := repo.List(ctx)
	if err != nil {
		return nil, err
	}

	var match *store.Recording
	for _, rec := range recs {
		if !strings.HasPrefix(rec.ID.String(), ref) {
			continue
		}
		if match != nil {
			return nil, fmt.Errorf("recording id %q is ambiguous", ref)
		}
		match = rec
	}
	if match == nil {
		return nil, fmt.Errorf("no recording matches %q", ref)
	}
	return match, nil
}
