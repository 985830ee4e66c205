package token

import (
	"fmt"
	"strings"
)

// Category is a bitmask grouping token kinds for filtering and diagnostics.
// A kind may carry several flags: an unterminated block comment is both
// CatComment and CatError.
type Category uint16

// Category flags.
const (
	CatInvalid Category = 1 << iota
	CatLiteral
	CatIdentifier
	CatUnreserved   // unreserved keyword
	CatReserved     // reserved keyword
	CatTypeFuncName // keyword usable as a type or function name
	CatColName      // keyword usable as a column name
	CatWhitespace
	CatComment
	CatOperator
	CatParameter
	CatError

	// CatKeyword matches every keyword class.
	CatKeyword = CatUnreserved | CatReserved | CatTypeFuncName | CatColName
	// CatIgnored matches the tokens a grammar never sees.
	CatIgnored = CatWhitespace | CatComment
)

// categoryNames lists single flags in bit order, plus the composites
// accepted by ParseCategory.
var categoryNames = []struct {
	cat   Category
	short string
	long  string
}{
	{CatInvalid, "invalid", "invalid"},
	{CatLiteral, "literal", "literal"},
	{CatIdentifier, "identifier", "identifier"},
	{CatUnreserved, "unreserved", "unreserved keyword"},
	{CatReserved, "reserved", "reserved keyword"},
	{CatTypeFuncName, "typefunc", "type or function name keyword"},
	{CatColName, "colname", "column name keyword"},
	{CatWhitespace, "whitespace", "whitespace"},
	{CatComment, "comment", "comment"},
	{CatOperator, "operator", "operator"},
	{CatParameter, "parameter", "parameter"},
	{CatError, "error", "error"},
}

// Has reports whether c shares at least one flag with other.
func (c Category) Has(other Category) bool {
	return c&other != 0
}

// String renders the set flags joined with "|".
func (c Category) String() string {
	if c == 0 {
		return "none"
	}
	var parts []string
	for _, n := range categoryNames {
		if c&n.cat != 0 {
			parts = append(parts, n.long)
		}
	}
	return strings.Join(parts, "|")
}

// ParseCategory converts a comma-separated list of category names into a
// mask. Besides the single flag names it accepts "keyword" and "ignored".
func ParseCategory(s string) (Category, error) {
	var c Category
	for _, name := range strings.Split(s, ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		switch name {
		case "":
			continue
		case "keyword":
			c |= CatKeyword
			continue
		case "ignored":
			c |= CatIgnored
			continue
		}
		found := false
		for _, n := range categoryNames {
			if n.short == name {
				c |= n.cat
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown token category %q", name)
		}
	}
	return c, nil
}
