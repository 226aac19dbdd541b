package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type kv interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	Size(ctx context.Context) (int64, error)
}

func openSQLite(t *testing.T, opts ...Option) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "tango.db"), opts...)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestBackendsRoundTrip(t *testing.T) {
	backends := map[string]kv{
		"sqlite": openSQLite(t),
		"memory": NewMemory(0),
	}
	for name, st := range backends {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			if _, ok, err := st.Get(ctx, "theme"); err != nil || ok {
				t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
			}
			if err := st.Set(ctx, "theme", []byte(`"dark"`)); err != nil {
				t.Fatalf("set: %v", err)
			}
			if err := st.Set(ctx, "theme", []byte(`"light"`)); err != nil {
				t.Fatalf("overwrite: %v", err)
			}
			if err := st.Set(ctx, "study_progress_week1", []byte(`12`)); err != nil {
				t.Fatalf("set: %v", err)
			}
			v, ok, err := st.Get(ctx, "theme")
			if err != nil || !ok || string(v) != `"light"` {
				t.Fatalf("unexpected value %q ok=%v err=%v", v, ok, err)
			}
			keys, err := st.Keys(ctx)
			if err != nil {
				t.Fatalf("keys: %v", err)
			}
			if diff := cmp.Diff([]string{"study_progress_week1", "theme"}, keys); diff != "" {
				t.Fatalf("keys mismatch (-want +got):\n%s", diff)
			}
			if err := st.Remove(ctx, "theme"); err != nil {
				t.Fatalf("remove: %v", err)
			}
			if err := st.Remove(ctx, "theme"); err != nil {
				t.Fatalf("remove missing key: %v", err)
			}
			size, err := st.Size(ctx)
			if err != nil {
				t.Fatalf("size: %v", err)
			}
			if want := int64(len("study_progress_week1") + 2); size != want {
				t.Fatalf("expected size %d, got %d", want, size)
			}
		})
	}
}

func TestBackendsQuota(t *testing.T) {
	backends := map[string]kv{
		"sqlite": openSQLite(t, WithQuota(20)),
		"memory": NewMemory(20),
	}
	for name, st := range backends {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			if err := st.Set(ctx, "a", []byte("0123456789")); err != nil {
				t.Fatalf("set within quota: %v", err)
			}
			// Replacing a value only counts the difference.
			if err := st.Set(ctx, "a", []byte("0123456789abcdef")); err != nil {
				t.Fatalf("replace within quota: %v", err)
			}
			if err := st.Set(ctx, "b", []byte("0123")); !errors.Is(err, ErrQuotaExceeded) {
				t.Fatalf("expected ErrQuotaExceeded, got %v", err)
			}
			if _, ok, _ := st.Get(ctx, "b"); ok {
				t.Fatalf("rejected write must not be stored")
			}
		})
	}
}
