// Package changes summarises how a buffer differs from what was last
// written to disk.
package changes

import (
	"fmt"
	"strings"
)

// Kind says whether a line was kept, added or removed.
type Kind int

const (
	Same Kind = iota
	Added
	Removed
)

// Line is one line of a line-based diff.
type Line struct {
	Kind    Kind
	OldNum  int // 1-based line in the old text, 0 if added
	NewNum  int // 1-based line in the new text, 0 if removed
	Content string
}

// Summary is the difference between two texts.
type Summary struct {
	Added   int
	Removed int
	Lines   []Line
}

// Empty reports whether the texts were identical.
func (s Summary) Empty() bool {
	return s.Added == 0 && s.Removed == 0
}

// lookahead bounds how far a resync point is searched for
const lookahead = 5

// Compare diffs old against new line by line. It resyncs on nearby equal
// lines and otherwise treats a mismatch as a replacement, so the result is
// small and fast rather than minimal.
func Compare(old, new string) Summary {
	oldLines := strings.Split(old, "\n")
	newLines := strings.Split(new, "\n")

	var s Summary
	add := func(i int) {
		s.Lines = append(s.Lines, Line{Kind: Added, NewNum: i + 1, Content: newLines[i]})
		s.Added++
	}
	remove := func(i int) {
		s.Lines = append(s.Lines, Line{Kind: Removed, OldNum: i + 1, Content: oldLines[i]})
		s.Removed++
	}

	o, n := 0, 0
	for o < len(oldLines) || n < len(newLines) {
		switch {
		case o >= len(oldLines):
			add(n)
			n++
		case n >= len(newLines):
			remove(o)
			o++
		case oldLines[o] == newLines[n]:
			s.Lines = append(s.Lines, Line{Kind: Same, OldNum: o + 1, NewNum: n + 1, Content: newLines[n]})
			o++
			n++
		default:
			inNew := find(newLines, oldLines[o], n+1)
			inOld := find(oldLines, newLines[n], o+1)
			switch {
			case inNew >= 0 && (inOld < 0 || inNew-n < inOld-o):
				for n < inNew {
					add(n)
					n++
				}
			case inOld >= 0:
				for o < inOld {
					remove(o)
					o++
				}
			default:
				remove(o)
				add(n)
				o++
				n++
			}
		}
	}
	return s
}

func find(lines []string, want string, from int) int {
	for i := from; i < len(lines) && i < from+lookahead; i++ {
		if lines[i] == want {
			return i
		}
	}
	return -1
}

// Stat is a one-line description such as "+3 -1 lines".
func (s Summary) Stat() string {
	if s.Empty() {
		return "no line changes"
	}
	return fmt.Sprintf("+%d -%d lines", s.Added, s.Removed)
}

// Preview lists up to max changed lines as "+ 12 text" or "- 4 text".
// Unchanged lines are skipped.
func (s Summary) Preview(max int) []string {
	var out []string
	changed := 0
	for _, l := range s.Lines {
		if l.Kind == Same {
			continue
		}
		changed++
		if len(out) == max {
			continue
		}
		switch l.Kind {
		case Added:
			out = append(out, fmt.Sprintf("+ %d %s", l.NewNum, l.Content))
		case Removed:
			out = append(out, fmt.Sprintf("- %d %s", l.OldNum, l.Content))
		}
	}
	if changed > len(out) {
		out = append(out, fmt.Sprintf("… %d more", changed-len(out)))
	}
	return out
}
