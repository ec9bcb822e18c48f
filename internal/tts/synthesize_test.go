package tts

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// fakeSpeechService runs a websocket server that consumes the two request
// frames and then replays the given script.
func fakeSpeechService(t *testing.T, script func(conn *websocket.Conn)) *implSynthesizer {
	t.Helper()

	upgrader := websocket.Upgrader{
		CheckOrigin: func(*http.Request) bool { return true },
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer conn.Close()

		// speech.config and ssml frames
		for i := 0; i < 2; i++ {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}

		script(conn)
	}))
	t.Cleanup(srv.Close)

	return &implSynthesizer{
		voice:    "en-US-AriaNeural",
		endpoint: "ws" + strings.TrimPrefix(srv.URL, "http") + "?token=test",
		dialer:   websocket.DefaultDialer,
	}
}

func audioFrame(payload []byte) []byte {
	header := "Path:audio"
	var frame bytes.Buffer
	var lenBuf [2]byte
	binary.BigEndian.PutUint16(lenBuf[:], uint16(len(header)))
	frame.Write(lenBuf[:])
	frame.WriteString(header)
	frame.Write(payload)
	return frame.Bytes()
}

func TestSynthesize(t *testing.T) {
	want := []byte{0xff, 0xf3, 0x10, 0x20, 0x30}

	s := fakeSpeechService(t, func(conn *websocket.Conn) {
		conn.WriteMessage(websocket.TextMessage, []byte("Path:turn.start\r\n\r\n{}"))
		conn.WriteMessage(websocket.BinaryMessage, audioFrame(want[:2]))
		conn.WriteMessage(websocket.BinaryMessage, audioFrame(want[2:]))
		conn.WriteMessage(websocket.TextMessage, []byte("Path:turn.end\r\n\r\n{}"))
	})

	outputPath := filepath.Join(t.TempDir(), "note-1.mp3")
	if err := s.Synthesize(context.Background(), "hello", outputPath); err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}

	got, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("audio file = %v, want %v", got, want)
	}
}

func TestSynthesizeNoAudio(t *testing.T) {
	s := fakeSpeechService(t, func(conn *websocket.Conn) {
		conn.WriteMessage(websocket.TextMessage, []byte("Path:turn.end\r\n\r\n{}"))
	})

	err := s.Synthesize(context.Background(), "hello", filepath.Join(t.TempDir(), "out.mp3"))
	if err == nil {
		t.Error("Synthesize() should fail when no audio frames arrive")
	}
}

func TestSynthesizeEmptyText(t *testing.T) {
	s := New("en-US-AriaNeural")
	err := s.Synthesize(context.Background(), "   ", filepath.Join(t.TempDir(), "out.mp3"))
	if err == nil {
		t.Error("Synthesize() should reject empty text")
	}
}

func TestSynthesizeCancelled(t *testing.T) {
	blocked := make(chan struct{})
	s := fakeSpeechService(t, func(conn *websocket.Conn) {
		<-blocked
	})
	defer close(blocked)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	err := s.Synthesize(ctx, "hello", filepath.Join(t.TempDir(), "out.mp3"))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Synthesize() error = %v, want context.Canceled", err)
	}
}
