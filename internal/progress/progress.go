// Package progress owns every persisted read and write of study progress,
// test history and wrong answers.
//
// Values are JSON encoded under the keys listed in keys.go. All operations
// fail soft: storage or decoding errors are logged and the caller proceeds
// with defaults.
package progress

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"regexp"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/verte-zerg/tango/internal/store"
)

// Backend is the raw key-value medium behind a Store.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}

// Store is the typed progress persistence layer.
type Store struct {
	backend Backend
	log     logrus.FieldLogger
	now     func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New returns a Store over backend. A nil logger discards output.
func New(backend Backend, log logrus.FieldLogger, opts ...Option) *Store {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	s := &Store{backend: backend, log: log, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get decodes the value stored under key, returning def when the key is
// missing or cannot be read.
func Get[T any](s *Store, key string, def T) T {
	raw, ok, err := s.backend.Get(context.Background(), key)
	if err != nil {
		s.log.WithError(err).WithField("key", key).Error("storage load failed")
		return def
	}
	if !ok {
		return def
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		s.log.WithError(err).WithField("key", key).Error("storage value is not valid JSON")
		return def
	}
	return v
}

// Set encodes and stores value under key. Failures are logged, never returned.
func (s *Store) Set(key string, value any) {
	s.write(key, value, true)
}

func (s *Store) write(key string, value any, cleanupOnQuota bool) {
	data, err := json.Marshal(value)
	if err != nil {
		s.log.WithError(err).WithField("key", key).Error("storage value cannot be encoded")
		return
	}
	ctx := context.Background()
	err = s.backend.Set(ctx, key, data)
	if errors.Is(err, store.ErrQuotaExceeded) && cleanupOnQuota {
		s.log.WithField("key", key).Warn("storage quota exceeded, pruning old data")
		s.Cleanup()
		err = s.backend.Set(ctx, key, data)
	}
	if err != nil {
		s.log.WithError(err).WithField("key", key).Error("storage save failed")
	}
}

// Remove deletes key. Failures are logged.
func (s *Store) Remove(key string) {
	if err := s.backend.Remove(context.Background(), key); err != nil {
		s.log.WithError(err).WithField("key", key).Error("storage remove failed")
	}
}

// KeysMatching returns the stored keys matched by pattern.
func (s *Store) KeysMatching(pattern *regexp.Regexp) []string {
	keys, err := s.backend.Keys(context.Background())
	if err != nil {
		s.log.WithError(err).Error("storage key listing failed")
		return nil
	}
	var out []string
	for _, key := range keys {
		if pattern.MatchString(key) {
			out = append(out, key)
		}
	}
	return out
}
