package vocab

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrExists is returned by Sync when a target file exists and force is off.
var ErrExists = errors.New("vocabulary file already exists")

// Sync copies the contiguous prefix of valid week documents from src into
// dir. Nothing is written when a target exists and force is false.
func Sync(ctx context.Context, src Source, dir string, force bool) ([]string, error) {
	var docs [][]byte
	for week := 1; week <= MaxWeeks; week++ {
		data, err := src.Fetch(ctx, week)
		if errors.Is(err, ErrNotFound) {
			break
		}
		if err != nil {
			return nil, err
		}
		if _, err := ParseWeek(week, data); err != nil {
			return nil, err
		}
		docs = append(docs, data)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("week 1: %w", ErrNotFound)
	}

	if !force {
		for i := range docs {
			path := filepath.Join(dir, FileName(i+1))
			if _, err := os.Stat(path); err == nil {
				return nil, fmt.Errorf("%s: %w", path, ErrExists)
			} else if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed to stat %s: %w", path, err)
			}
		}
	}

	written := make([]string, 0, len(docs))
	for i, data := range docs {
		path := filepath.Join(dir, FileName(i+1))
		if err := writeFileAtomic(path, data); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create vocabulary dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "week-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
