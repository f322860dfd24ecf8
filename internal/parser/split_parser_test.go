package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSplit_Classification(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		kind SplitKind
	}{
		{"Single", "SM", SplitSingle},
		{"Single lowercase with spaces", "  smith ", SplitSingle},
		{"Double", "A-K", SplitDouble},
		{"Double with inner spaces", "a - k", SplitDouble},
		{"Multi", "A-L, N-Z", SplitMulti},
		{"Multi with single parts", "AB,CD", SplitMulti},
		{"Empty", "", SplitNone},
		{"Digits", "123", SplitNone},
		{"Two hyphens", "A-K-Z", SplitNone},
		{"Trailing hyphen", "A-", SplitNone},
		{"Punctuation", "A.K", SplitNone},
		{"Sharp s expands to SS", "Straße", SplitSingle},
		{"Sharp s in a bound", "a-straße", SplitDouble},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			split := ParseSplit(tt.raw)
			assert.Equal(t, tt.kind, split.Kind)
			assert.Equal(t, tt.raw, split.Raw, "raw string should be kept for display")
		})
	}
}

func TestParseSplit_Normalization(t *testing.T) {
	split := ParseSplit(" a -\tk\n")
	require.Equal(t, SplitDouble, split.Kind)
	assert.Equal(t, "A", split.Start)
	assert.Equal(t, "K", split.End)

	single := ParseSplit(" s m ")
	require.Equal(t, SplitSingle, single.Kind)
	assert.Equal(t, "SM", single.Prefix)

	sharp := ParseSplit("Straße")
	require.Equal(t, SplitSingle, sharp.Kind)
	assert.Equal(t, "STRASSE", sharp.Prefix)
}

func TestSingleSplit_Contains(t *testing.T) {
	split := ParseSplit("SM")

	assert.True(t, split.Contains("Smith"))
	assert.True(t, split.Contains("smyth"))
	assert.True(t, split.Contains("SM"))
	assert.False(t, split.Contains("Brown"))
	assert.False(t, split.Contains("S"))
	assert.False(t, split.Contains(" Smith"), "surname is not trimmed")
}

func TestSplit_ContainsUsesFullCaseMapping(t *testing.T) {
	tests := []struct {
		name    string
		split   string
		surname string
		want    bool
	}{
		{"Sharp s matches SS prefix", "STRASS", "Straße", true},
		{"Sharp s split matches SS surname", "Straße", "STRASSER", true},
		{"Sharp s split matches itself", "straße", "Straße", true},
		{"Ligature expands", "FF", "ﬀolkes", true},
		// "STRASSE" minus one unit is "TRASSE", between "A" and "Z"
		{"Sharp s in double split", "A-Z", "Straße", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSplit(tt.split).Contains(tt.surname))
		})
	}
}

func TestDoubleSplit_Contains(t *testing.T) {
	tests := []struct {
		name    string
		split   string
		surname string
		want    bool
	}{
		// "A" <= "ROWN" holds but "ROWN" <= "K" does not
		{"Brown not in A-K", "A-K", "Brown", false},
		// "A" <= "DAMS" and "DAMS" <= "K"
		{"Adams in A-K", "A-K", "Adams", true},
		// both suffixes are "I"
		{"Li in A-K", "A-K", "li", true},
		// single letter surname leaves an empty suffix, "A" > ""
		{"Single letter", "A-K", "X", false},
		// "AA" <= "ITH" and "ITH" <= "SZ" with both bounds two letters long
		{"Smith in AA-SZ", "AA-SZ", "Smith", true},
		// bound longer than the surname
		{"Short surname", "ABC-D", "Ng", false},
		{"Empty surname", "A-Z", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			split := ParseSplit(tt.split)
			require.Equal(t, SplitDouble, split.Kind)
			assert.Equal(t, tt.want, split.Contains(tt.surname))
		})
	}
}

func TestDoubleSplit_DifferentBoundLengths(t *testing.T) {
	split := ParseSplit("B-ZZ")
	// "B" <= "URNS"; "RNS" <= "ZZ"
	assert.True(t, split.Contains("Burns"))
	// "B" <= "" fails
	assert.False(t, split.Contains("Q"))
}

func TestDoubleSplit_CountsUTF16Units(t *testing.T) {
	split := ParseSplit("A-Z")
	require.Equal(t, SplitDouble, split.Kind)

	// U+1D49C takes two UTF-16 units. Dropping one leaves a low surrogate,
	// which sorts after "Z".
	assert.False(t, split.Contains("\U0001D49CB"))
	// Dropping a BMP letter leaves "B"
	assert.True(t, split.Contains("AB"))

	wide := ParseSplit("AA-ZZ")
	// both units of U+1D49C are dropped, leaving "BC"
	assert.True(t, wide.Contains("\U0001D49CBC"))

	assert.Equal(t, []uint16{'B'}, suffixAfter([]uint16{0xD835, 0xDC9C, 'B'}, 2))
	assert.Nil(t, suffixAfter([]uint16{'A'}, 1))
}

func TestMultiSplit_RequiresEveryPart(t *testing.T) {
	split := ParseSplit("A-L, N-Z")
	require.Equal(t, SplitMulti, split.Kind)
	require.Len(t, split.Parts, 2)

	// "ABC" satisfies A-L ("BC" is between "A" and "L") but not N-Z
	assert.True(t, split.Parts[0].Contains("ABC"))
	assert.False(t, split.Parts[1].Contains("ABC"))
	assert.False(t, split.Contains("ABC"), "parts are combined with AND, not OR")
}

func TestMultiSplit_AllPartsMatch(t *testing.T) {
	split := ParseSplit("S, SM")
	assert.True(t, split.Contains("Smith"))
	assert.False(t, split.Contains("Stone"))

	disjoint := ParseSplit("S, T")
	assert.False(t, disjoint.Contains("Smith"))
	assert.False(t, disjoint.Contains("Taylor"))
}

func TestMultiSplit_DropsBadFragments(t *testing.T) {
	split := ParseSplit("SM, 123, , A-B-C")
	require.Equal(t, SplitMulti, split.Kind)
	require.Len(t, split.Parts, 1)
	assert.Equal(t, SplitSingle, split.Parts[0].Kind)
	assert.True(t, split.Contains("Smith"))
}

func TestMultiSplit_NoPartsMatchesNobody(t *testing.T) {
	for _, raw := range []string{",", " , ,", "1,2", "A-B-C, 9"} {
		split := ParseSplit(raw)
		require.Equal(t, SplitMulti, split.Kind, raw)
		assert.Empty(t, split.Parts)
		assert.False(t, split.Contains("Smith"), raw)
		assert.False(t, split.Contains(""), raw)
	}
}

func TestNoSplit_NeverMatches(t *testing.T) {
	for _, raw := range []string{"", "123", "A.K", "-", "A-"} {
		split := ParseSplit(raw)
		for _, surname := range []string{"", "A", "Smith", "123"} {
			assert.False(t, split.Contains(surname), "split %q surname %q", raw, surname)
		}
	}
}

func TestNewDoubleSplit_RejectsWrongHyphenCount(t *testing.T) {
	_, err := newDoubleSplit("ABC")
	assert.Error(t, err)

	_, err = newDoubleSplit("A-B-C")
	assert.Error(t, err)

	split, err := newDoubleSplit("A-B")
	require.NoError(t, err)
	assert.Equal(t, SplitDouble, split.Kind)
}

func TestSplit_String(t *testing.T) {
	assert.Equal(t, "SM*", ParseSplit("sm").String())
	assert.Equal(t, "A-K", ParseSplit("a-k").String())
	assert.Equal(t, "A-L & N-Z", ParseSplit("A-L, N-Z").String())
	assert.Equal(t, "(none)", ParseSplit("").String())
	assert.Equal(t, "(none)", ParseSplit(",").String())
	assert.Equal(t, "multi", SplitMulti.String())
}
