package artifacts

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestFSStoreRoundTrip(t *testing.T) {
	store, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFSStore() error = %v", err)
	}
	ctx := context.Background()

	name := NewFilename("mp3_44100_128")
	if !strings.HasSuffix(name, ".mp3") {
		t.Fatalf("NewFilename() = %q, want .mp3 suffix", name)
	}

	payload := []byte("fake mp3 bytes")
	if err := store.Save(ctx, name, payload); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	for i := 0; i < 2; i++ {
		got, err := store.Open(ctx, name)
		if err != nil {
			t.Fatalf("Open() attempt %d error = %v", i, err)
		}
		if !bytes.Equal(got, payload) {
			t.Fatalf("Open() attempt %d = %q, want %q", i, got, payload)
		}
	}

	if err := store.Remove(ctx, name); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if _, err := store.Open(ctx, name); err != ErrNotFound {
		t.Fatalf("Open() after Remove error = %v, want ErrNotFound", err)
	}
}

func TestFSStoreUnknownName(t *testing.T) {
	store, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFSStore() error = %v", err)
	}
	if _, err := store.Open(context.Background(), "missing.mp3"); err != ErrNotFound {
		t.Fatalf("Open(missing) error = %v, want ErrNotFound", err)
	}
}

func TestStoreRejectsTraversal(t *testing.T) {
	stores := map[string]Store{}
	fs, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFSStore() error = %v", err)
	}
	stores["fs"] = fs
	stores["memory"] = NewInMemoryStore()

	bad := []string{"", "../secret", "a/b.mp3", `a\b.mp3`, "..", "x..y"}
	for label, store := range stores {
		for _, name := range bad {
			if _, err := store.Open(context.Background(), name); err != ErrInvalidName {
				t.Fatalf("%s Open(%q) error = %v, want ErrInvalidName", label, name, err)
			}
			if err := store.Save(context.Background(), name, []byte("x")); err != ErrInvalidName {
				t.Fatalf("%s Save(%q) error = %v, want ErrInvalidName", label, name, err)
			}
		}
	}
}

func TestContentTypeFor(t *testing.T) {
	cases := map[string]string{
		"a.mp3": "audio/mpeg",
		"a.wav": "audio/wav",
		"a.ogg": "audio/ogg",
		"a.bin": "application/octet-stream",
	}
	for name, want := range cases {
		if got := ContentTypeFor(name); got != want {
			t.Fatalf("ContentTypeFor(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestNewFilenameFormats(t *testing.T) {
	cases := map[string]string{
		"pcm_16000":     ".wav",
		"wav":           ".wav",
		"mp3_44100_128": ".mp3",
		"ogg_vorbis":    ".ogg",
		"mystery":       ".bin",
	}
	for format, want := range cases {
		if got := NewFilename(format); !strings.HasSuffix(got, want) {
			t.Fatalf("NewFilename(%q) = %q, want suffix %q", format, got, want)
		}
	}
}
