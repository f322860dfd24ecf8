package parser

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf16"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SplitKind identifies which surname rule a split string was classified as
type SplitKind int

const (
	SplitNone   SplitKind = iota // unrecognised, matches nobody
	SplitSingle                  // "SM": surname prefix
	SplitDouble                  // "A-K": two bounds
	SplitMulti                   // "A-L, N-Z": every part must match
)

var (
	doubleSplitRegex = regexp.MustCompile(`^[A-Z]+-[A-Z]+$`)
	singleSplitRegex = regexp.MustCompile(`^[A-Z]+$`)
)

// Split is a parsed last-name split as printed on an exam timetable.
// Only the fields for its Kind are set.
type Split struct {
	Kind   SplitKind
	Raw    string
	Prefix string  // SplitSingle
	Start  string  // SplitDouble
	End    string  // SplitDouble
	Parts  []Split // SplitMulti
}

// ParseSplit classifies a raw split string from the timetable.
// Supported forms:
// - "A-L, N-Z" (comma separated list, each part single or double)
// - "A-K"      (double)
// - "SMITH"    (single)
// Anything else (empty, digits, punctuation) becomes SplitNone.
func ParseSplit(raw string) Split {
	normalized := normalizeSplit(raw)

	var split Split
	switch {
	case strings.Contains(normalized, ","):
		split = parseMultiSplit(normalized)
	case doubleSplitRegex.MatchString(normalized):
		// The regex guarantees exactly one hyphen
		split, _ = newDoubleSplit(normalized)
	case singleSplitRegex.MatchString(normalized):
		split = Split{Kind: SplitSingle, Prefix: normalized}
	default:
		split = Split{Kind: SplitNone}
	}

	split.Raw = raw
	return split
}

// parseMultiSplit builds a SplitMulti out of the comma separated fragments.
// Fragments that are neither single nor double are dropped.
func parseMultiSplit(normalized string) Split {
	split := Split{Kind: SplitMulti}

	for _, fragment := range strings.Split(normalized, ",") {
		fragment = normalizeSplit(fragment)
		if fragment == "" {
			continue
		}

		switch {
		case doubleSplitRegex.MatchString(fragment):
			part, _ := newDoubleSplit(fragment)
			part.Raw = fragment
			split.Parts = append(split.Parts, part)
		case singleSplitRegex.MatchString(fragment):
			split.Parts = append(split.Parts, Split{Kind: SplitSingle, Raw: fragment, Prefix: fragment})
		default:
			zap.L().Debug("split fragment matched no rule",
				zap.String("fragment", fragment),
				zap.String("split", normalized))
		}
	}

	return split
}

// newDoubleSplit builds a SplitDouble from "START-END"
func newDoubleSplit(normalized string) (Split, error) {
	bounds := strings.Split(normalized, "-")
	if len(bounds) != 2 {
		return Split{Kind: SplitNone}, fmt.Errorf("double split %q must contain exactly one hyphen", normalized)
	}

	return Split{Kind: SplitDouble, Start: bounds[0], End: bounds[1]}, nil
}

// normalizeSplit trims, drops all whitespace and uppercases
func normalizeSplit(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	return upperFull(s)
}

// upperFull uppercases with full case mappings, so "ß" becomes "SS".
// A Caser keeps state between calls and is built per call.
func upperFull(s string) string {
	return cases.Upper(language.Und).String(s)
}

// Contains reports whether the surname falls in this split.
// The surname is uppercased on every call; it is never trimmed.
func (s Split) Contains(surname string) bool {
	upper := upperFull(surname)

	switch s.Kind {
	case SplitSingle:
		return strings.HasPrefix(upper, s.Prefix)

	case SplitDouble:
		// Each bound is compared with the surname minus its first len(bound)
		// UTF-16 units, not with the surname itself. Kept as-is so results
		// agree with the published lookup tool.
		units := utf16.Encode([]rune(upper))
		return slices.Compare(utf16.Encode([]rune(s.Start)), suffixAfter(units, len(s.Start))) <= 0 &&
			slices.Compare(suffixAfter(units, len(s.End)), utf16.Encode([]rune(s.End))) <= 0

	case SplitMulti:
		if len(s.Parts) == 0 {
			return false
		}
		// All parts must match, not any
		for _, part := range s.Parts {
			if !part.Contains(surname) {
				return false
			}
		}
		return true

	default:
		return false
	}
}

// suffixAfter drops the first n UTF-16 code units, or returns nil when there
// are not more than n. Bounds are ASCII, so len(bound) is also its unit count.
// Characters outside the BMP take two units and may be split in half.
func suffixAfter(units []uint16, n int) []uint16 {
	if n >= len(units) {
		return nil
	}
	return units[n:]
}

// String renders the split in a compact normalized form
func (s Split) String() string {
	switch s.Kind {
	case SplitSingle:
		return s.Prefix + "*"
	case SplitDouble:
		return s.Start + "-" + s.End
	case SplitMulti:
		if len(s.Parts) == 0 {
			return "(none)"
		}
		parts := make([]string, 0, len(s.Parts))
		for _, part := range s.Parts {
			parts = append(parts, part.String())
		}
		return strings.Join(parts, " & ")
	default:
		return "(none)"
	}
}

// String returns a lowercase label for the split kind
func (k SplitKind) String() string {
	switch k {
	case SplitSingle:
		return "single"
	case SplitDouble:
		return "double"
	case SplitMulti:
		return "multi"
	default:
		return "none"
	}
}
