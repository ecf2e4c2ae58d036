package server

import (
	"regexp"
	"strings"
)

var urlPattern = regexp.MustCompile(`https?://[^\s]+`)

// ExtractMediaURL returns the first http(s) URL in text, or "" when there is
// none. A reply carrying a URL is delivered as a media attachment instead of
// text.
func ExtractMediaURL(text string) string {
	return urlPattern.FindString(text)
}

// SplitMessage chunks text to fit under limit, preferring newline boundaries.
// A single line longer than the limit is split by force.
func SplitMessage(text string, limit int) []string {
	if limit <= 0 || len(text) <= limit {
		return []string{text}
	}

	var chunks []string
	current := ""
	for _, line := range strings.Split(text, "\n") {
		if len(current)+len(line)+1 > limit {
			if current != "" {
				chunks = append(chunks, strings.TrimSpace(current))
			}
			current = line + "\n"
		} else {
			current += line + "\n"
		}
	}
	if current != "" {
		chunks = append(chunks, strings.TrimSpace(current))
	}

	var final []string
	for _, chunk := range chunks {
		for len(chunk) > limit {
			final = append(final, chunk[:limit])
			chunk = chunk[limit:]
		}
		final = append(final, chunk)
	}
	return final
}
