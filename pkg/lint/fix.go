package lint

import (
	"cmp"
	"slices"
)

// ApplyFixes applies the edits of every diagnostic to src and returns the
// result with the number of edits applied. An edit overlapping one that was
// already applied is skipped; running the linter again picks it up.
func ApplyFixes(src []byte, diags []Diagnostic) ([]byte, int) {
	var edits []TextEdit
	for _, d := range diags {
		edits = append(edits, d.Fixes...)
	}
	slices.SortStableFunc(edits, func(a, b TextEdit) int { return cmp.Compare(a.Offset, b.Offset) })

	out := make([]byte, 0, len(src))
	last, applied := 0, 0
	for _, e := range edits {
		if e.Offset < last || e.Offset+e.Length > len(src) {
			continue
		}
		out = append(out, src[last:e.Offset]...)
		out = append(out, e.NewText...)
		last = e.Offset + e.Length
		applied++
	}
	out = append(out, src[last:]...)
	return out, applied
}
