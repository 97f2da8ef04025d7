package syntax

import "sort"

// LineMap converts between byte offsets and 1-based line numbers.
type LineMap struct {
	starts []int
}

// NewLineMap indexes the line starts of source. Lines are terminated by '\n';
// a trailing newline does not open a new line.
func NewLineMap(source string) *LineMap {
	starts := []int{0}
	for i := 0; i < len(source); i++ {
		if source[i] == '\n' && i+1 < len(source) {
			starts = append(starts, i+1)
		}
	}
	return &LineMap{starts: starts}
}

// LineOf returns the line containing offset. Offsets past the end of the
// source belong to the last line.
func (m *LineMap) LineOf(offset int) int {
	if offset < 0 {
		return 1
	}
	return sort.Search(len(m.starts), func(i int) bool {
		return m.starts[i] > offset
	})
}

// LineStart returns the offset of the first byte of line.
func (m *LineMap) LineStart(line int) int {
	switch {
	case line < 1:
		return 0
	case line > len(m.starts):
		return m.starts[len(m.starts)-1]
	}
	return m.starts[line-1]
}

// LineCount returns the number of lines, which is also the number of the
// last line.
func (m *LineMap) LineCount() int { return len(m.starts) }
