package ragaparse

import (
	"errors"
	"testing"
)

func TestParseReference_WatchURLWithOffsets(t *testing.T) {
	ref, err := ParseReference("https://www.youtube.com/watch?v=sex9LtEWjvg&t=1195s&end=1215")
	if err != nil {
		t.Fatalf("Failed to parse reference: %v", err)
	}

	if ref.VideoID != "sex9LtEWjvg" {
		t.Errorf("Expected video id 'sex9LtEWjvg', got %q", ref.VideoID)
	}
	if ref.StartSeconds == nil || *ref.StartSeconds != 1195 {
		t.Errorf("Expected start 1195, got %v", ref.StartSeconds)
	}
	if ref.EndSeconds == nil || *ref.EndSeconds != 1215 {
		t.Errorf("Expected end 1215, got %v", ref.EndSeconds)
	}
	if ref.URL != "https://www.youtube.com/watch?v=sex9LtEWjvg&t=1195s&end=1215" {
		t.Errorf("Expected original URL retained, got %q", ref.URL)
	}
}

func TestParseReference_ShortAndEmbedForms(t *testing.T) {
	urls := map[string]string{
		"https://youtu.be/GOF1-0dWXmU":                "GOF1-0dWXmU",
		"https://www.youtube.com/embed/GOF1-0dWXmU":   "GOF1-0dWXmU",
		"https://www.youtube.com/shorts/GOF1-0dWXmU":  "GOF1-0dWXmU",
		"youtube.com/v/GOF1-0dWXmU":                   "GOF1-0dWXmU",
		"http://youtube.com/watch?v=GOF1-0dWXmU&ab=x": "GOF1-0dWXmU",
	}

	for url, wantID := range urls {
		ref, err := ParseReference(url)
		if err != nil {
			t.Errorf("Failed to parse %q: %v", url, err)
			continue
		}
		if ref.VideoID != wantID {
			t.Errorf("Expected id %q for %q, got %q", wantID, url, ref.VideoID)
		}
	}
}

func TestParseReference_NoOffsets(t *testing.T) {
	ref, err := ParseReference("https://www.youtube.com/watch?v=GOF1-0dWXmU")
	if err != nil {
		t.Fatalf("Failed to parse reference: %v", err)
	}
	if ref.StartSeconds != nil || ref.EndSeconds != nil {
		t.Errorf("Expected nil offsets, got %v %v", ref.StartSeconds, ref.EndSeconds)
	}
}

func TestParseReference_StartParamVariant(t *testing.T) {
	ref, err := ParseReference("https://www.youtube.com/watch?v=GOF1-0dWXmU&start=30")
	if err != nil {
		t.Fatalf("Failed to parse reference: %v", err)
	}
	if ref.StartSeconds == nil || *ref.StartSeconds != 30 {
		t.Errorf("Expected start 30 from 'start' param, got %v", ref.StartSeconds)
	}
}

func TestParseReference_NonNumericTimeIgnored(t *testing.T) {
	ref, err := ParseReference("https://www.youtube.com/watch?v=GOF1-0dWXmU&t=abc")
	if err != nil {
		t.Fatalf("Failed to parse reference: %v", err)
	}
	if ref.StartSeconds != nil {
		t.Errorf("Expected nil start for non-numeric value, got %d", *ref.StartSeconds)
	}
}

func TestParseReference_InvalidReference(t *testing.T) {
	for _, url := range []string{"", "https://example.com/not-a-video", "https://youtu.be/short"} {
		if _, err := ParseReference(url); !errors.Is(err, ErrInvalidReference) {
			t.Errorf("Expected ErrInvalidReference for %q, got %v", url, err)
		}
	}
}
