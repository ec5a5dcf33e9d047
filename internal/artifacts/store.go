package artifacts

import (
	"context"
	"errors"
	"path"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNotFound    = errors.New("audio file not found")
	ErrInvalidName = errors.New("invalid audio filename")
)

// Store persists synthesized audio blobs keyed by filename. Reads are
// idempotent: the same name returns the same bytes until the artifact is
// removed.
type Store interface {
	Save(ctx context.Context, name string, data []byte) error
	Open(ctx context.Context, name string) ([]byte, error)
	Remove(ctx context.Context, name string) error
}

// NewFilename generates a unique artifact name with an extension matching the
// synthesis output format.
func NewFilename(format string) string {
	return uuid.NewString() + extensionFor(format)
}

func extensionFor(format string) string {
	f := strings.ToLower(strings.TrimSpace(format))
	switch {
	case strings.Contains(f, "mp3"):
		return ".mp3"
	case strings.Contains(f, "wav"), strings.Contains(f, "pcm"):
		return ".wav"
	case strings.Contains(f, "ogg"), strings.Contains(f, "opus"):
		return ".ogg"
	default:
		return ".bin"
	}
}

// ContentTypeFor maps an artifact name to the MIME type served for it.
func ContentTypeFor(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".mp3":
		return "audio/mpeg"
	case ".wav":
		return "audio/wav"
	case ".ogg":
		return "audio/ogg"
	default:
		return "application/octet-stream"
	}
}

// validateName rejects anything that could escape the store's keyspace.
func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrInvalidName
	}
	if strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		return ErrInvalidName
	}
	return nil
}
