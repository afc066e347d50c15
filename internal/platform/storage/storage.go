package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// FileStore persists uploaded asset files under a generated object name.
// Implementations must be safe for concurrent use; object names returned by
// Save are unique, so simultaneous uploads never collide.
type FileStore interface {
	// Save stores the content of r and returns the generated object name.
	Save(ctx context.Context, originalName string, r io.Reader) (string, error)
	// Open returns the stored content; common.ErrNotFound when missing.
	Open(ctx context.Context, storedName string) (io.ReadCloser, error)
	// Remove deletes the stored object; common.ErrNotFound when missing.
	Remove(ctx context.Context, storedName string) error
}

// ObjectName derives a collision-free stored name from the original
// filename, e.g. "Metal Texture.PNG" -> "metal-texture_<uuid>.png".
func ObjectName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	base := strings.TrimSuffix(filepath.Base(originalName), filepath.Ext(originalName))
	s := slug.Make(base)
	if s == "" {
		s = "upload"
	}
	return fmt.Sprintf("%s_%s%s", s, uuid.NewString(), ext)
}
