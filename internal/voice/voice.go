package voice

import "context"

// Synthesizer converts a professor message into one audio artifact.
type Synthesizer interface {
	// Synthesize returns encoded audio bytes and the output format label
	// (e.g. "mp3_44100_128", "wav").
	Synthesize(ctx context.Context, text string) ([]byte, string, error)
}
