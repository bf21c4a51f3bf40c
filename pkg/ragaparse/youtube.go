package ragaparse

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"carnatic-archive/pkg/domain"
)

// ErrInvalidReference is returned when a URL-like string carries no
// recognizable 11-character video identifier.
var ErrInvalidReference = errors.New("no video identifier in reference")

var (
	videoIDRe   = regexp.MustCompile(`(?:https?://)?(?:www\.)?(?:youtube\.com/(?:watch\?v=|embed/|v/|shorts/)|youtu\.be/)([a-zA-Z0-9_-]{11})`)
	startRe     = regexp.MustCompile(`[?&](?:t|start)=([^&]+)`)
	endRe       = regexp.MustCompile(`[?&]end=([^&]+)`)
	timeValueRe = regexp.MustCompile(`^(\d+)`)
)

// ParseReference extracts a video id and optional start/end offsets from a
// raw link. References without a recognizable id fail with
// ErrInvalidReference; callers drop those from the output, they are not
// retained as error records.
func ParseReference(rawURL string) (domain.AudioReference, error) {
	ref := domain.AudioReference{URL: rawURL}
	if rawURL == "" {
		return ref, ErrInvalidReference
	}

	m := videoIDRe.FindStringSubmatch(rawURL)
	if m == nil {
		return ref, ErrInvalidReference
	}
	ref.VideoID = m[1]

	if m := startRe.FindStringSubmatch(rawURL); m != nil {
		ref.StartSeconds = parseTimeValue(m[1])
	}
	if m := endRe.FindStringSubmatch(rawURL); m != nil {
		ref.EndSeconds = parseTimeValue(m[1])
	}

	return ref, nil
}

// parseTimeValue reads a leading run of digits from a time parameter value.
// A trailing non-digit suffix (such as the "s" in "90s") is ignored; a value
// with no leading digits yields nil.
func parseTimeValue(param string) *int {
	m := timeValueRe.FindStringSubmatch(strings.TrimSpace(param))
	if m == nil {
		return nil
	}
	seconds, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &seconds
}
