package parser

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// courseCodeRegex matches full UofT style codes like CSC108H1F or MAT137Y1Y
var courseCodeRegex = regexp.MustCompile(`^[A-Z]{3,4}\d{2,3}[A-Z0-9]*$`)

// NormalizeCourseCode uppercases a course code and strips all whitespace
// Accepts formats like:
// - "csc108h1f"    -> "CSC108H1F"
// - " CSC 108H1F " -> "CSC108H1F"
func NormalizeCourseCode(course string) string {
	return upperFull(stripSpaces(course))
}

// NormalizeSection uppercases a section; blank means any section
func NormalizeSection(section string) string {
	return upperFull(stripSpaces(section))
}

// IsValidCourseFormat checks if a code looks like a full course code.
// Lookups never depend on this; it only drives warnings.
func IsValidCourseFormat(course string) bool {
	return courseCodeRegex.MatchString(NormalizeCourseCode(course))
}

// ValidateCourseCode returns an error describing what's wrong with a course code
func ValidateCourseCode(course string) error {
	normalized := NormalizeCourseCode(course)
	if normalized == "" {
		return fmt.Errorf("course code is required")
	}
	if !courseCodeRegex.MatchString(normalized) {
		return fmt.Errorf("%q doesn't look like a full course code. Use the full code with campus and session, e.g. CSC108H1F", normalized)
	}
	return nil
}

func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
