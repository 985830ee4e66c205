package token

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// spellings holds every kind with a fixed spelling, sorted by that spelling.
// It is built on first use and never modified afterwards, so concurrent
// readers need no locking.
var spellings = sync.OnceValue(buildSpellings)

func buildSpellings() []Kind {
	var table []Kind
	for k := Kind(0); k < numKinds; k++ {
		info := kinds[k]
		if info.name == "" {
			panic(fmt.Sprintf("token: kind %d has no metadata", k))
		}
		if info.text == "" {
			continue
		}
		if info.text != strings.ToLower(info.text) {
			panic(fmt.Sprintf("token: spelling %q must be lowercase", info.text))
		}
		table = append(table, k)
	}
	slices.SortFunc(table, func(a, b Kind) int {
		return strings.Compare(kinds[a].text, kinds[b].text)
	})
	for i := 1; i < len(table); i++ {
		if kinds[table[i-1]].text == kinds[table[i]].text {
			panic(fmt.Sprintf("token: duplicate spelling %q", kinds[table[i]].text))
		}
	}
	return table
}

// compareFold compares the lowercase table text with s, folding ASCII
// upper-case letters in s.
func compareFold(text, s string) int {
	n := min(len(text), len(s))
	for i := 0; i < n; i++ {
		c := s[i]
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		if text[i] != c {
			if text[i] < c {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(text) < len(s):
		return -1
	case len(text) > len(s):
		return 1
	}
	return 0
}

// Lookup returns the kind whose fixed spelling matches text. Keywords match
// case-insensitively (ASCII only).
func Lookup(text string) (Kind, bool) {
	table := spellings()
	i, found := slices.BinarySearchFunc(table, text, func(k Kind, s string) int {
		return compareFold(kinds[k].text, s)
	})
	if !found {
		return Invalid, false
	}
	return table[i], true
}

// LookupIdent classifies a bare word. It returns the keyword kind when word
// is a keyword and IDENT otherwise.
func LookupIdent(word string) Kind {
	if k, ok := Lookup(word); ok && k.Is(CatKeyword) {
		return k
	}
	return IDENT
}

// IsKeyword returns true if the token kind is a keyword.
func IsKeyword(k Kind) bool {
	return k.Is(CatKeyword)
}

// Keywords returns every keyword kind in spelling order.
func Keywords() []Kind {
	var out []Kind
	for _, k := range spellings() {
		if k.Is(CatKeyword) {
			out = append(out, k)
		}
	}
	return out
}
