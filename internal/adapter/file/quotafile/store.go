package quotafile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"

	"gitlab.com/algotutor.net/internal/core/ports/primary"
	"gitlab.com/algotutor.net/internal/core/ports/secondary"
	"gitlab.com/algotutor.net/internal/domain"
)

var (
	_ secondary.QuotaStore  = (*Store)(nil)
	_ secondary.QuotaPruner = (*Store)(nil)
)

// Store persists the quota record as a JSON object on disk.
// Every read-modify-write holds both an in-process mutex and an advisory file lock,
// and the file is replaced atomically via rename.
type Store struct {
	mu     sync.Mutex
	path   string
	lock   *flock.Flock
	logger primary.Logger
}

func New(path string, logger primary.Logger) *Store {
	return &Store{
		path:   path,
		lock:   flock.New(path + ".lock"),
		logger: logger,
	}
}

func (s *Store) Consume(ctx context.Context, day string, limit int) (int, bool, error) {
	var (
		used int
		ok   bool
	)
	err := s.withLock(ctx, func() error {
		record, err := s.read()
		if err != nil {
			return err
		}

		used = record[day]
		if used >= limit {
			return nil
		}

		record[day] = used + 1
		if err := s.write(record); err != nil {
			return err
		}
		used++
		ok = true
		return nil
	})
	return used, ok, err
}

func (s *Store) Used(ctx context.Context, day string) (int, error) {
	var used int
	err := s.withLock(ctx, func() error {
		record, err := s.read()
		if err != nil {
			return err
		}
		used = record[day]
		return nil
	})
	return used, err
}

func (s *Store) Prune(ctx context.Context, before string) (int, error) {
	var removed int
	err := s.withLock(ctx, func() error {
		record, err := s.read()
		if err != nil {
			return err
		}
		for day := range record {
			// ISO dates sort lexically
			if day < before {
				delete(record, day)
				removed++
			}
		}
		if removed == 0 {
			return nil
		}
		return s.write(record)
	})
	return removed, err
}

func (s *Store) withLock(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create quota directory: %w", err)
	}
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("failed to lock quota file: %w", err)
	}
	defer func() {
		if err := s.lock.Unlock(); err != nil {
			s.logger.Error("Failed to unlock quota file", "path", s.path, "error", err)
		}
	}()

	return fn()
}

func (s *Store) read() (domain.QuotaRecord, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.QuotaRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read quota file: %w", err)
	}

	record := domain.QuotaRecord{}
	if len(bytes.TrimSpace(data)) == 0 {
		return record, nil
	}
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to decode quota file: %w", err)
	}
	return record, nil
}

func (s *Store) write(record domain.QuotaRecord) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode quota record: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp quota file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	// CreateTemp opens with 0600, the renamed record keeps the usual file mode
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set quota file mode: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write quota file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close quota file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace quota file: %w", err)
	}
	return nil
}
