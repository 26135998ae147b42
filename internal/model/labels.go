package model

import (
	"regexp"
	"strings"
)

var splitWordsPattern = regexp.MustCompile(`[_\-\s]+`)

// DefaultLabeler converts a field name into a human-friendly label. It splits
// on underscores/dashes and camelCase boundaries and keeps acronyms intact
// ("portfolioURL" becomes "Portfolio URL").
func DefaultLabeler(name string) string {
	if name == "" {
		return ""
	}

	var segments []string
	for _, word := range splitWordsPattern.Split(name, -1) {
		if word == "" {
			continue
		}
		for _, part := range splitCamel(word) {
			segments = append(segments, titleCase(part))
		}
	}
	return strings.TrimSpace(strings.Join(segments, " "))
}

func splitCamel(input string) []string {
	runes := []rune(input)
	var (
		words   []string
		current []rune
	)
	for i, r := range runes {
		if i > 0 && isBoundary(runes, i) {
			words = append(words, string(current))
			current = current[:0]
		}
		current = append(current, r)
	}
	if len(current) > 0 {
		words = append(words, string(current))
	}
	return words
}

func isBoundary(runes []rune, index int) bool {
	prev, r := runes[index-1], runes[index]
	switch {
	case isLower(prev) && isUpper(r):
		return true
	case isUpper(prev) && isUpper(r) && index+1 < len(runes) && isLower(runes[index+1]):
		// "URLField" splits before the F.
		return true
	case isLetter(prev) && isDigit(r), isDigit(prev) && isLetter(r):
		return true
	}
	return false
}

func isUpper(r rune) bool  { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool  { return r >= 'a' && r <= 'z' }
func isDigit(r rune) bool  { return r >= '0' && r <= '9' }
func isLetter(r rune) bool { return isUpper(r) || isLower(r) }

func titleCase(word string) string {
	if word == "" {
		return ""
	}
	if len(word) > 1 && strings.ToUpper(word) == word {
		return word
	}
	lower := strings.ToLower(word)
	return strings.ToUpper(lower[:1]) + lower[1:]
}
