// Package audiopath computes the deterministic local path for a downloaded
// audio segment. The downloader writes files at these paths and the populator
// recomputes them to join download outcomes back onto raga records, so this
// is the single place path derivation is allowed to live.
package audiopath

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// DefaultBaseDir is where audio files land unless a run overrides it.
const DefaultBaseDir = "audio_data"

var (
	unsafeChars   = regexp.MustCompile(`[^\w\s-]`)
	whitespaceRun = regexp.MustCompile(`\s+`)
)

// SanitizeComponent folds a free-text name component to a filesystem-safe
// token: punctuation is dropped, whitespace runs become single underscores,
// and leading/trailing underscores are trimmed. A component that sanitizes
// to nothing yields "_" so the path always has a segment.
//
// The safe alphabet is ASCII-only: non-ASCII letters, diacritics included,
// are dropped rather than preserved ("Abhēri" becomes "Abhri"). Both path
// computation sites share this function, so the join key is unaffected.
//
// Sanitization is not injective: two names differing only in punctuation
// collide. Documented risk, kept as-is.
func SanitizeComponent(part string) string {
	if part == "" {
		return "_"
	}
	part = unsafeChars.ReplaceAllString(part, "")
	part = whitespaceRun.ReplaceAllString(part, "_")
	part = strings.Trim(part, "_")
	if part == "" {
		return "_"
	}
	return part
}

// SegmentSuffix returns the filename suffix encoding the time segment:
// "_{start}_{end}" when both offsets are present, "_{start}_inf" when the
// segment is open-ended, "_full" when the whole media item is the segment.
func SegmentSuffix(startSeconds, endSeconds *int) string {
	switch {
	case startSeconds != nil && endSeconds != nil:
		return fmt.Sprintf("_%d_%d", *startSeconds, *endSeconds)
	case startSeconds != nil:
		return fmt.Sprintf("_%d_inf", *startSeconds)
	default:
		return "_full"
	}
}

// ExpectedPath computes the deterministic path for one (raga, video, segment)
// tuple. Pure and total: the same inputs always yield the same string, within
// and across processes.
func ExpectedPath(baseDir, ragaName, videoID string, startSeconds, endSeconds *int) string {
	filename := SanitizeComponent(videoID) + SegmentSuffix(startSeconds, endSeconds) + ".mp3"
	return filepath.Join(baseDir, SanitizeComponent(ragaName), filename)
}

// RagaDir returns the per-raga directory a download writes into.
func RagaDir(baseDir, ragaName string) string {
	return filepath.Join(baseDir, SanitizeComponent(ragaName))
}

// SectionSpec returns the yt-dlp --download-sections value for a segment,
// using the same open/closed interval rules as SegmentSuffix. An unbounded
// segment returns "" (no section argument).
func SectionSpec(startSeconds, endSeconds *int) string {
	switch {
	case startSeconds != nil && endSeconds != nil:
		return fmt.Sprintf("*%d-%d", *startSeconds, *endSeconds)
	case startSeconds != nil:
		return fmt.Sprintf("*%d-inf", *startSeconds)
	default:
		return ""
	}
}
