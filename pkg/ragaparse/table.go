// Package ragaparse turns loosely structured scraped text into typed raga
// fields. Parsing is tolerant by design: a clause the patterns cannot locate
// yields a nil field, never an error for the whole record.
package ragaparse

import (
	"regexp"
	"strconv"
	"strings"
)

// TableData holds the fields parsed out of a raga summary table's free text.
// Any field the text did not contain is nil ("unknown").
type TableData struct {
	MelakarthaNumber *int
	MelakarthaName   *string
	Arohana          *string
	Avarohana        *string
}

var (
	// A melakartha clause is digits followed by a name, bounded by the next
	// recognized keyword or end of text.
	melakarthaRe = regexp.MustCompile(`(?i)Melakartha\s*(\d+)\s+([\w\s]+?)(?:\s+Arohana|\s+Avarohana|$)`)

	// Scale clauses use swara letters and octave digits, bounded the same way.
	arohanaRe          = regexp.MustCompile(`(?i)Arohana\s+([srgmpdnSRGMPDN\d\s]+?)(?:\s+Avarohana|$)`)
	avarohanaRe        = regexp.MustCompile(`(?i)Avarohana\s+([srgmpdnSRGMPDN\d\s]+?)(?:\s+Listen|$)`)
	avarohanaTrailerRe = regexp.MustCompile(`(?i)Avarohana\s+([srgmpdnSRGMPDN\d\s]+)$`)
)

// ParseTable extracts melakartha, arohana and avarohana clauses from raw
// summary table text. Empty input yields an empty TableData.
func ParseTable(rawText string) TableData {
	var data TableData
	if rawText == "" {
		return data
	}

	if m := melakarthaRe.FindStringSubmatch(rawText); m != nil {
		if num, err := strconv.Atoi(m[1]); err == nil {
			name := strings.TrimSpace(m[2])
			data.MelakarthaNumber = &num
			if name != "" {
				data.MelakarthaName = &name
			}
		}
	}

	if m := arohanaRe.FindStringSubmatch(rawText); m != nil {
		if scale := strings.TrimSpace(m[1]); scale != "" {
			data.Arohana = &scale
		}
	}

	if m := avarohanaRe.FindStringSubmatch(rawText); m != nil {
		if scale := strings.TrimSpace(m[1]); scale != "" {
			data.Avarohana = &scale
		}
	} else if m := avarohanaTrailerRe.FindStringSubmatch(rawText); m != nil {
		if scale := strings.TrimSpace(m[1]); scale != "" {
			data.Avarohana = &scale
		}
	}

	return data
}
