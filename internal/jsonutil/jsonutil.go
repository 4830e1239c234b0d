// Package jsonutil parses JSON out of LLM output that may be wrapped in
// markdown code fences or surrounded by prose.
package jsonutil

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrNoJSON is returned when no JSON value can be located in the input.
var ErrNoJSON = errors.New("jsonutil: no JSON value found")

// StripFences removes a leading ```/```json fence line and a trailing ```
// fence, if present, and trims surrounding whitespace.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if idx := strings.IndexByte(s, '\n'); idx >= 0 {
			s = s[idx+1:]
		} else {
			s = strings.TrimPrefix(s, "```")
		}
	}
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}

// ExtractValue returns the first balanced JSON object or array in s.
// String literals and escapes are honored while scanning.
func ExtractValue(s string) (string, error) {
	start := strings.IndexAny(s, "{[")
	if start < 0 {
		return "", ErrNoJSON
	}
	open := s[start]
	var close byte = '}'
	if open == '[' {
		close = ']'
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == open:
			depth++
		case c == close:
			depth--
			if depth == 0 {
				return s[start : i+1], nil
			}
		}
	}
	return "", ErrNoJSON
}

// Unmarshal decodes LLM output into v. It strips code fences, attempts a
// direct decode, and falls back to extracting the first balanced JSON value
// from the surrounding text.
func Unmarshal(raw string, v any) error {
	s := StripFences(raw)
	if err := json.Unmarshal([]byte(s), v); err == nil {
		return nil
	}
	candidate, err := ExtractValue(s)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(candidate), v)
}
