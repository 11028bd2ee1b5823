// Package storage keeps uploaded shipment documents outside the database.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned by Open for a key the store does not hold.
var ErrNotFound = errors.New("stored file not found")

// FileStore saves, reads and removes opaque blobs addressed by a key.
// Delete of a missing key succeeds.
type FileStore interface {
	Save(ctx context.Context, name string, r io.Reader) (string, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// NewKey builds "dokumenty/YYYY/MM/DD/<uuid>-<name>" with the file name
// reduced to a safe subset.
func NewKey(now time.Time, name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	base = strings.Trim(unsafeChars.ReplaceAllString(base, "_"), "._")
	if base == "" {
		base = "file"
	}
	if len(base) > 100 {
		base = base[len(base)-100:]
	}
	return fmt.Sprintf("dokumenty/%s/%s-%s", now.Format("2006/01/02"), uuid.NewString(), base)
}

// validKey rejects keys that could escape the store root.
func validKey(key string) error {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "\\") {
		return fmt.Errorf("invalid storage key %q", key)
	}
	for _, part := range strings.Split(key, "/") {
		if part == ".." || part == "." || part == "" {
			return fmt.Errorf("invalid storage key %q", key)
		}
	}
	return nil
}
