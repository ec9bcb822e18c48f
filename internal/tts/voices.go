package tts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"
)

// Voice is one entry of the speech service's voice catalog.
type Voice struct {
	Name           string `json:"Name"`
	ShortName      string `json:"ShortName"`
	Gender         string `json:"Gender"`
	Locale         string `json:"Locale"`
	SuggestedCodec string `json:"SuggestedCodec"`
	FriendlyName   string `json:"FriendlyName"`
	Status         string `json:"Status"`
}

// Language returns the language part of the voice's locale
// ("en" for "en-US").
func (v Voice) Language() string {
	lang, _, _ := strings.Cut(v.Locale, "-")
	return lang
}

// VoiceFilter narrows the catalog; empty fields match everything.
type VoiceFilter struct {
	Language string
	Locale   string
	Gender   string
}

func (f VoiceFilter) matches(v Voice) bool {
	if f.Language != "" && !strings.EqualFold(v.Language(), f.Language) {
		return false
	}
	if f.Locale != "" && !strings.EqualFold(v.Locale, f.Locale) {
		return false
	}
	if f.Gender != "" && !strings.EqualFold(v.Gender, f.Gender) {
		return false
	}
	return true
}

// ListVoices fetches the voice catalog, sorted by short name.
func ListVoices(ctx context.Context) ([]Voice, error) {
	client := &http.Client{Timeout: 30 * time.Second}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, voicesEndpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("tts: create voices request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tts: fetch voices: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("tts: fetch voices: status %s: %s", resp.Status, string(body))
	}

	var voices []Voice
	if err := json.NewDecoder(resp.Body).Decode(&voices); err != nil {
		return nil, fmt.Errorf("tts: parse voices: %w", err)
	}

	sort.Slice(voices, func(i, j int) bool {
		return voices[i].ShortName < voices[j].ShortName
	})
	return voices, nil
}

// FilterVoices returns the catalog entries matching the filter, preserving
// order.
func FilterVoices(voices []Voice, filter VoiceFilter) []Voice {
	result := make([]Voice, 0, len(voices))
	for _, v := range voices {
		if filter.matches(v) {
			result = append(result, v)
		}
	}
	return result
}
