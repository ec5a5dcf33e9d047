package voice

import (
	"bytes"
	"context"
	"testing"
)

func TestMockSynthesizeProducesWAV(t *testing.T) {
	s := NewMockSynthesizer()
	data, format, err := s.Synthesize(context.Background(), "hello students")
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if format != "wav" {
		t.Fatalf("format = %q, want wav", format)
	}
	if !bytes.HasPrefix(data, []byte("RIFF")) {
		t.Fatalf("output does not start with RIFF header")
	}
	if !bytes.Contains(data[:44], []byte("WAVE")) {
		t.Fatalf("output missing WAVE marker")
	}
}

func TestMockSynthesizeIsDeterministic(t *testing.T) {
	s := NewMockSynthesizer()
	a, _, err := s.Synthesize(context.Background(), "same text")
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	b, _, err := s.Synthesize(context.Background(), "same text")
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Fatalf("same input produced different audio")
	}
}

func TestMockSynthesizeRejectsEmptyText(t *testing.T) {
	s := NewMockSynthesizer()
	if _, _, err := s.Synthesize(context.Background(), "   "); err == nil {
		t.Fatalf("Synthesize(empty) succeeded, want error")
	}
}

func TestElevenLabsSynthesizeValidation(t *testing.T) {
	s := NewElevenLabsSynthesizer(ElevenLabsConfig{APIKey: "k"})
	if _, _, err := s.Synthesize(context.Background(), "hi"); err == nil {
		t.Fatalf("Synthesize() without voice id succeeded, want error")
	}

	s = NewElevenLabsSynthesizer(ElevenLabsConfig{APIKey: "k", VoiceID: "v"})
	if _, _, err := s.Synthesize(context.Background(), ""); err == nil {
		t.Fatalf("Synthesize() without text succeeded, want error")
	}
}

func TestElevenLabsDefaults(t *testing.T) {
	s := NewElevenLabsSynthesizer(ElevenLabsConfig{APIKey: "k", VoiceID: "v"})
	if s.cfg.WSBaseURL != "wss://api.elevenlabs.io" {
		t.Fatalf("WSBaseURL = %q", s.cfg.WSBaseURL)
	}
	if s.cfg.ModelID != "eleven_multilingual_v2" {
		t.Fatalf("ModelID = %q", s.cfg.ModelID)
	}
	if s.cfg.OutputFormat != "mp3_44100_128" {
		t.Fatalf("OutputFormat = %q", s.cfg.OutputFormat)
	}
}
