package voice

import (
	"context"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/Socratescrolls/backend/internal/audio"
)

const mockSampleRate = 16000

// MockSynthesizer emits a short deterministic tone wrapped as WAV, so the
// upload/chat flow works end to end without an ElevenLabs key.
type MockSynthesizer struct{}

func NewMockSynthesizer() *MockSynthesizer { return &MockSynthesizer{} }

func (s *MockSynthesizer) Synthesize(ctx context.Context, text string) ([]byte, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", ctx.Err()
	default:
	}
	if strings.TrimSpace(text) == "" {
		return nil, "", fmt.Errorf("text is required")
	}

	// Tone length tracks message length, capped at two seconds.
	samples := len(text) * 200
	if samples > 2*mockSampleRate {
		samples = 2 * mockSampleRate
	}
	pcm := make([]byte, samples*2)
	for i := 0; i < samples; i++ {
		// 400 Hz square wave at low amplitude.
		var v int16 = 6000
		if (i/(mockSampleRate/800))%2 == 0 {
			v = -6000
		}
		binary.LittleEndian.PutUint16(pcm[i*2:], uint16(v))
	}

	wav, err := audio.EncodeWAVPCM16LE(pcm, mockSampleRate)
	if err != nil {
		return nil, "", err
	}
	return wav, "wav", nil
}
