package tts

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Synthesize streams one note's audio from the speech service into
// outputPath. The connection is torn down when ctx is cancelled, which
// surfaces as a context error to the caller.
func (s *implSynthesizer) Synthesize(ctx context.Context, text, outputPath string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("tts: empty text")
	}

	requestID := strings.ReplaceAll(uuid.NewString(), "-", "")

	header := http.Header{}
	header.Set("Origin", "chrome-extension://jdiccldimpdaibmpdkjnbmckianbfold")
	header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/130.0.0.0 Safari/537.36")

	url := s.endpoint + "&ConnectionId=" + requestID
	conn, resp, err := s.dialer.DialContext(ctx, url, header)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("tts: dial speech service: %w (status %s)", err, resp.Status)
		}
		return fmt.Errorf("tts: dial speech service: %w", err)
	}
	defer conn.Close()

	// gorilla reads don't take a context; close the connection to unblock
	// the read loop when the caller cancels.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	now := time.Now()
	if err := conn.WriteMessage(websocket.TextMessage, speechConfigMessage(now)); err != nil {
		return fmt.Errorf("tts: send speech.config: %w", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, ssmlMessage(requestID, s.voice, text, now)); err != nil {
		return fmt.Errorf("tts: send ssml: %w", err)
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("tts: create audio file: %w", err)
	}
	defer out.Close()

	received := false
	for {
		msgType, frame, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("tts: read speech service response: %w", err)
		}

		switch msgType {
		case websocket.TextMessage:
			if textFramePath(frame) == pathTurnEnd {
				if !received {
					return fmt.Errorf("tts: no audio received for voice %q", s.voice)
				}
				return nil
			}
		case websocket.BinaryMessage:
			path, payload, err := binaryFramePayload(frame)
			if err != nil {
				return fmt.Errorf("tts: %w", err)
			}
			if path != pathAudio {
				continue
			}
			if _, err := out.Write(payload); err != nil {
				return fmt.Errorf("tts: write audio file: %w", err)
			}
			received = true
		}
	}
}
