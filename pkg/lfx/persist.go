package lfx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

const (
	DefaultCSVFile  = "LFX_mentorship.csv"
	DefaultJSONFile = "LFX_mentorship.json"

	lockFile       = ".lfx.lock"
	lockRetryDelay = 50 * time.Millisecond
)

// SaveCSV writes CSV() to dir/filename and returns the written path.
func (l *Listing) SaveCSV(ctx context.Context, dir, filename string) (string, error) {
	if filename == "" {
		filename = DefaultCSVFile
	}

	data, err := l.CSV()
	if err != nil {
		return "", err
	}

	return writeFile(ctx, dir, filename, []byte(data))
}

// SaveJSON writes Records() to dir/filename as a 4-space indented array.
func (l *Listing) SaveJSON(ctx context.Context, dir, filename string) (string, error) {
	if filename == "" {
		filename = DefaultJSONFile
	}

	records, err := l.Records()
	if err != nil {
		return "", err
	}

	data, err := MarshalRecords(records)
	if err != nil {
		return "", err
	}

	return writeFile(ctx, dir, filename, data)
}

// MarshalRecords encodes records the way SaveJSON writes them.
func MarshalRecords(records []Record) ([]byte, error) {
	if records == nil {
		records = []Record{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(records); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// writeFile replaces dir/name atomically while holding the directory lock.
func writeFile(ctx context.Context, dir, name string, data []byte) (path string, err error) {
	if dir == "" {
		dir = "."
	}
	path = filepath.Join(dir, name)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &IOError{Op: "create dir", Path: dir, Err: err}
	}

	lock := flock.New(filepath.Join(dir, lockFile))
	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return "", &IOError{Op: "lock", Path: dir, Err: err}
	}
	if !locked {
		return "", &IOError{Op: "lock", Path: dir, Err: errors.New("lock not acquired")}
	}
	defer func() {
		_ = lock.Unlock()
	}()

	tmp, err := os.CreateTemp(dir, "."+name+".*.tmp")
	if err != nil {
		return "", &IOError{Op: "create", Path: path, Err: err}
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return "", &IOError{Op: "write", Path: path, Err: err}
	}
	if err = tmp.Sync(); err != nil {
		return "", &IOError{Op: "sync", Path: path, Err: err}
	}
	if err = tmp.Close(); err != nil {
		return "", &IOError{Op: "close", Path: path, Err: err}
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return "", &IOError{Op: "chmod", Path: path, Err: err}
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return "", &IOError{Op: "rename", Path: path, Err: err}
	}

	return path, nil
}
