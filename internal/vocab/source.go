package vocab

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"strings"
	"time"
)

//go:embed data/*.json
var embedded embed.FS

// Source fetches raw week documents.
type Source interface {
	// Fetch returns the document for week, or ErrNotFound when none exists.
	Fetch(ctx context.Context, week int) ([]byte, error)
}

// FileName is the conventional name of a week document.
func FileName(week int) string {
	return fmt.Sprintf("week%d.json", week)
}

// FSSource reads week documents from a file system.
type FSSource struct {
	fsys fs.FS
}

// NewFSSource returns a Source reading week{N}.json from the root of fsys.
func NewFSSource(fsys fs.FS) *FSSource {
	return &FSSource{fsys: fsys}
}

// Embedded returns the vocabulary bundled with the binary.
func Embedded() *FSSource {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(fmt.Sprintf("tango: embedded vocabulary: %v", err))
	}
	return NewFSSource(sub)
}

// Fetch implements Source.
func (s *FSSource) Fetch(ctx context.Context, week int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(s.fsys, FileName(week))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("week %d: %w", week, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read week %d: %w", week, err)
	}
	return data, nil
}

// HTTPSource fetches week documents from {base}/week{N}.json.
type HTTPSource struct {
	base   string
	client *http.Client
}

// NewHTTPSource returns a Source for base. A nil client uses a 30s timeout.
func NewHTTPSource(base string, client *http.Client) *HTTPSource {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTPSource{base: strings.TrimRight(base, "/"), client: client}
}

// Fetch implements Source.
func (s *HTTPSource) Fetch(ctx context.Context, week int) ([]byte, error) {
	url := s.base + "/" + FileName(week)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("week %d: %w", week, ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("unexpected status for %s: %s", url, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", url, err)
	}
	return data, nil
}
