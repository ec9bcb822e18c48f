package tts

import (
	"encoding/binary"
	"fmt"
	"strings"
	"time"
)

// Wire format of the readaloud service: text frames carry
// "Header: value\r\n..." followed by a blank line and a body; binary frames
// start with a big-endian uint16 header length, then the header block, then
// the payload.

const (
	trustedClientToken = "6A5AA1D4EAFF4E9FB37E23D68491D6F4"

	synthesisEndpoint = "wss://speech.platform.bing.com/consumer/speech/synthesize/readaloud/edge/v1?TrustedClientToken=" + trustedClientToken
	voicesEndpoint    = "https://speech.platform.bing.com/consumer/speech/synthesize/readaloud/voices/list?trustedclienttoken=" + trustedClientToken

	outputFormat = "audio-24khz-48kbitrate-mono-mp3"

	pathAudio   = "audio"
	pathTurnEnd = "turn.end"
)

var ssmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func speechConfigMessage(timestamp time.Time) []byte {
	body := fmt.Sprintf(`{"context":{"synthesis":{"audio":{"metadataoptions":{"sentenceBoundaryEnabled":"false","wordBoundaryEnabled":"false"},"outputFormat":"%s"}}}}`, outputFormat)
	msg := fmt.Sprintf("X-Timestamp:%s\r\nContent-Type:application/json; charset=utf-8\r\nPath:speech.config\r\n\r\n%s",
		timestamp.UTC().Format(time.RFC1123), body)
	return []byte(msg)
}

func ssmlMessage(requestID, voice, text string, timestamp time.Time) []byte {
	ssml := fmt.Sprintf(
		`<speak version='1.0' xmlns='http://www.w3.org/2001/10/synthesis' xml:lang='en-US'><voice name='%s'>%s</voice></speak>`,
		voice, ssmlEscaper.Replace(text))
	msg := fmt.Sprintf("X-RequestId:%s\r\nContent-Type:application/ssml+xml\r\nX-Timestamp:%s\r\nPath:ssml\r\n\r\n%s",
		requestID, timestamp.UTC().Format(time.RFC1123), ssml)
	return []byte(msg)
}

// textFramePath extracts the Path header of a text frame.
func textFramePath(frame []byte) string {
	head, _, _ := strings.Cut(string(frame), "\r\n\r\n")
	for _, line := range strings.Split(head, "\r\n") {
		if name, value, ok := strings.Cut(line, ":"); ok && name == "Path" {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

// binaryFramePayload splits a binary frame into its Path header and payload.
func binaryFramePayload(frame []byte) (path string, payload []byte, err error) {
	if len(frame) < 2 {
		return "", nil, fmt.Errorf("binary frame too short: %d bytes", len(frame))
	}
	headerLen := int(binary.BigEndian.Uint16(frame[:2]))
	if len(frame) < 2+headerLen {
		return "", nil, fmt.Errorf("binary frame header truncated: want %d bytes, have %d", headerLen, len(frame)-2)
	}

	header := string(frame[2 : 2+headerLen])
	for _, line := range strings.Split(header, "\r\n") {
		if name, value, ok := strings.Cut(line, ":"); ok && name == "Path" {
			path = strings.TrimSpace(value)
			break
		}
	}

	return path, frame[2+headerLen:], nil
}
