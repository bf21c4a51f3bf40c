package catalog

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// FileSource reads raga entries from a local file, one entry per line in the
// form "Name" or "Name|href". Used for offline reruns against a previously
// captured listing.
type FileSource struct{}

// NewFileSource creates a new file catalog source
func NewFileSource() *FileSource {
	return &FileSource{}
}

// Fetch reads entries from a file (the file path is passed as the location)
func (s *FileSource) Fetch(filePath string) ([]Entry, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	var entries []Entry
	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		name, href := line, ""
		if idx := strings.Index(line, "|"); idx >= 0 {
			name = strings.TrimSpace(line[:idx])
			href = strings.TrimSpace(line[idx+1:])
		}
		if name == "" {
			continue
		}

		entries = append(entries, Entry{Name: name, Href: href})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("no entries found in file")
	}

	return entries, nil
}
