package ingestion

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// profileExtensions lists the file suffixes accepted as raw profile text
var profileExtensions = map[string]bool{
	".txt": true,
	".md":  true,
}

// ReadText reads a UTF-8 text file without altering its content
func ReadText(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file not found: %w", err)
		}
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return string(content), nil
}

// CandidateIDFromPath derives a candidate identifier from a file name
func CandidateIDFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// LoadProfiles reads every profile text file in dir and returns a mapping
// from candidate identifier (file name without extension) to raw text.
// Decoding is left to the segmenter so one unreadable profile does not
// abort the batch.
func LoadProfiles(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile directory %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !profileExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	profiles := make(map[string]string, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		text, err := ReadText(path)
		if err != nil {
			return nil, err
		}
		id := CandidateIDFromPath(name)
		if _, exists := profiles[id]; exists {
			return nil, fmt.Errorf("duplicate candidate id %q in %s", id, dir)
		}
		profiles[id] = text
	}

	return profiles, nil
}
