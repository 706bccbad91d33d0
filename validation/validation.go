package validation

import (
	"strings"
	"unicode"

	"frappeinsight/models"
)

// IsValidPrompt checks if a prompt makes sense (not gibberish)
// Returns true if the prompt appears to be valid, false if it's likely gibberish
func IsValidPrompt(prompt string) bool {
	trimmed := strings.TrimSpace(prompt)

	// Check minimum length (at least 3 characters)
	if len(trimmed) < 3 {
		return false
	}

	// Check maximum reasonable length (prevent extremely long gibberish)
	if len(trimmed) > 10000 {
		return false
	}

	// Check for excessive character repetition (e.g., "aaaaaa", "111111")
	if hasExcessiveRepetition(trimmed) {
		return false
	}

	// Should have some letters (at least 30% of non-space characters)
	letterCount := 0
	totalChars := 0
	for _, r := range trimmed {
		if unicode.IsLetter(r) {
			letterCount++
		}
		if !unicode.IsSpace(r) {
			totalChars++
		}
	}
	if totalChars == 0 {
		return false
	}
	if float64(letterCount)/float64(totalChars) < 0.3 {
		return false
	}

	return true
}

// hasExcessiveRepetition reports runs of 5+ identical characters.
func hasExcessiveRepetition(s string) bool {
	runs := 1
	var prev rune
	for i, r := range s {
		if i > 0 && r == prev {
			runs++
			if runs >= 5 {
				return true
			}
		} else {
			runs = 1
		}
		prev = r
	}
	return false
}

// IsValidChartType reports whether t is one of the supported chart types.
func IsValidChartType(t models.ChartType) bool {
	switch t {
	case models.ChartBar, models.ChartLine, models.ChartPie, models.ChartArea:
		return true
	}
	return false
}
