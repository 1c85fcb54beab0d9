package recommender

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	json "github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
)

// Store persists exactly one "current" model to two durable locations -- a
// local file and object storage -- and serves it through a process-wide cache.
//
// Cache lifecycle: populated lazily on the first Load, invalidated
// synchronously inside Save. Reads are lock-free; the cached *Model is
// immutable once stored. Concurrent Loads that observe an empty cache may each
// re-read durable storage once (a brief thundering herd is acceptable), every
// one of them ends up with a fully constructed model, never a partial one.
type Store struct {
	localPath string
	objectKey string
	objects   ObjectStore
	logger    *logrus.Logger

	saveMu sync.Mutex
	cached atomic.Pointer[Model]
}

func NewStore(localPath, objectKey string, objects ObjectStore, logger *logrus.Logger) *Store {
	return &Store{
		localPath: localPath,
		objectKey: objectKey,
		objects:   objects,
		logger:    logger,
	}
}

// Save serializes the model, overwrites both durable locations, then
// invalidates the cache so the next Load observes the new artifact. The local
// write goes through a temp file and rename, so a concurrent Load never sees
// a half-written artifact.
func (s *Store) Save(ctx context.Context, m *Model) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode model: %w", err)
	}

	if err := s.writeLocal(data); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrStorage, s.localPath, err)
	}
	if err := s.objects.Put(ctx, s.objectKey, data); err != nil {
		return fmt.Errorf("%w: upload %s: %v", ErrStorage, s.objectKey, err)
	}

	s.cached.Store(nil)

	s.logger.WithFields(logrus.Fields{
		"version":    m.Version,
		"local_path": s.localPath,
		"object_key": s.objectKey,
		"bytes":      len(data),
	}).Info("Model saved")
	return nil
}

func (s *Store) writeLocal(data []byte) error {
	dir := filepath.Dir(s.localPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".model-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), s.localPath); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}

// Load returns the current model, reading durable storage only when the cache
// is empty: the local file first, object storage as fallback. The returned
// model is shared; callers must treat it as read-only.
func (s *Store) Load(ctx context.Context) (*Model, error) {
	if m := s.cached.Load(); m != nil {
		return m, nil
	}

	data, err := os.ReadFile(s.localPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: read %s: %v", ErrStorage, s.localPath, err)
		}
		data, err = s.objects.Get(ctx, s.objectKey)
		if err != nil {
			if errors.Is(err, ErrModelNotFound) {
				return nil, ErrModelNotFound
			}
			return nil, fmt.Errorf("%w: download %s: %v", ErrStorage, s.objectKey, err)
		}
	}

	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: decode model: %v", ErrStorage, err)
	}

	s.cached.Store(&m)
	return &m, nil
}

// Invalidate drops the cached model so the next Load re-reads durable storage.
func (s *Store) Invalidate() {
	s.cached.Store(nil)
}
