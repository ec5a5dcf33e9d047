package voice

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

type ElevenLabsConfig struct {
	APIKey       string
	WSBaseURL    string
	VoiceID      string
	ModelID      string
	OutputFormat string
}

// ElevenLabsSynthesizer produces audio over the ElevenLabs stream-input
// websocket, collecting the chunked output into a single artifact.
type ElevenLabsSynthesizer struct {
	cfg ElevenLabsConfig
}

func NewElevenLabsSynthesizer(cfg ElevenLabsConfig) *ElevenLabsSynthesizer {
	if strings.TrimSpace(cfg.WSBaseURL) == "" {
		cfg.WSBaseURL = "wss://api.elevenlabs.io"
	}
	if strings.TrimSpace(cfg.ModelID) == "" {
		cfg.ModelID = "eleven_multilingual_v2"
	}
	if strings.TrimSpace(cfg.OutputFormat) == "" {
		cfg.OutputFormat = "mp3_44100_128"
	}
	return &ElevenLabsSynthesizer{cfg: cfg}
}

func (s *ElevenLabsSynthesizer) Synthesize(ctx context.Context, text string) ([]byte, string, error) {
	if strings.TrimSpace(s.cfg.VoiceID) == "" {
		return nil, "", fmt.Errorf("voice id is required")
	}
	if strings.TrimSpace(text) == "" {
		return nil, "", fmt.Errorf("text is required")
	}

	u, err := url.Parse(strings.TrimRight(s.cfg.WSBaseURL, "/") + "/v1/text-to-speech/" + url.PathEscape(s.cfg.VoiceID) + "/stream-input")
	if err != nil {
		return nil, "", err
	}
	q := u.Query()
	q.Set("model_id", s.cfg.ModelID)
	q.Set("output_format", s.cfg.OutputFormat)
	q.Set("auto_mode", "true")
	u.RawQuery = q.Encode()

	headers := http.Header{}
	headers.Set("xi-api-key", s.cfg.APIKey)

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), headers)
	if err != nil {
		return nil, "", fmt.Errorf("dial tts websocket: %w", err)
	}
	defer conn.Close()

	// Closing the connection unblocks ReadMessage when the caller gives up.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	// Prime the stream as documented for TTS websocket flows.
	primer := map[string]any{
		"text": " ",
		"voice_settings": map[string]any{
			"stability":        0.42,
			"similarity_boost": 0.85,
		},
	}
	if err := conn.WriteJSON(primer); err != nil {
		return nil, "", fmt.Errorf("prime tts stream: %w", err)
	}
	if err := conn.WriteJSON(map[string]any{"text": text + " ", "try_trigger_generation": true}); err != nil {
		return nil, "", fmt.Errorf("send tts text: %w", err)
	}
	if err := conn.WriteJSON(map[string]any{"text": ""}); err != nil {
		return nil, "", fmt.Errorf("close tts input: %w", err)
	}

	deadline := time.Now().Add(60 * time.Second)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = conn.SetReadDeadline(deadline)

	var out []byte
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if len(out) > 0 {
				break
			}
			if ctx.Err() != nil {
				return nil, "", ctx.Err()
			}
			return nil, "", fmt.Errorf("read tts stream: %w", err)
		}

		var raw map[string]any
		if err := json.Unmarshal(data, &raw); err != nil {
			continue
		}
		if msg := asString(raw["error"]); msg != "" {
			return nil, "", fmt.Errorf("elevenlabs error: %s", msg)
		}
		if chunk := asString(raw["audio"]); chunk != "" {
			decoded, err := base64.StdEncoding.DecodeString(chunk)
			if err != nil {
				return nil, "", fmt.Errorf("decode audio chunk: %w", err)
			}
			out = append(out, decoded...)
		}
		if asBool(raw["isFinal"]) || asBool(raw["is_final"]) {
			break
		}
	}

	if len(out) == 0 {
		return nil, "", fmt.Errorf("elevenlabs returned no audio")
	}
	return out, s.cfg.OutputFormat, nil
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}
