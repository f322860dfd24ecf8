package parser

import (
	"strings"

	"github.com/balkashynov/examtt/internal/models"
)

// ParsedDecisions holds courses parsed from free text input
type ParsedDecisions struct {
	Decisions []models.Decision
	Errors    []string
}

// ParseDecision parses a single "COURSE[:SECTION]" entry
// Examples:
// - "csc108h1f"          -> CSC108H1F, any section
// - "MAT137Y1Y:L5101"    -> MAT137Y1Y, section L5101
// - "MAT137Y1Y / L5101"  -> same, "/" works as a separator too
func ParseDecision(input string) (models.Decision, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return models.Decision{}, false
	}

	fields := strings.Split(strings.ReplaceAll(input, "/", ":"), ":")
	if len(fields) > 2 {
		return models.Decision{}, false
	}

	decision := models.Decision{Course: NormalizeCourseCode(fields[0])}
	if len(fields) == 2 {
		decision.Section = NormalizeSection(fields[1])
	}
	if decision.Course == "" {
		return models.Decision{}, false
	}

	return decision, true
}

// ParseDecisions parses a list of courses separated by commas, semicolons or newlines
// Syntax: "CSC108H1F, MAT137Y1Y:L5101; STA247H1S"
func ParseDecisions(input string) ParsedDecisions {
	result := ParsedDecisions{
		Decisions: []models.Decision{},
		Errors:    []string{},
	}

	entries := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n'
	})

	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		decision, ok := ParseDecision(entry)
		if !ok {
			result.Errors = append(result.Errors, "Invalid course entry '"+entry+"'. Use: COURSE or COURSE:SECTION")
			continue
		}
		result.Decisions = append(result.Decisions, decision)
	}

	return result
}
