package scrub

// StripRanges returns text with every range in set removed. Offsets refer to
// the input text; ranges are deleted from the highest start down so that
// no deletion shifts a range that has not been applied yet.
func StripRanges(text string, set *RangeSet) (string, error) {
	ranges := set.Ranges()
	for _, r := range ranges {
		if r.Start < 0 || r.End > len(text) {
			return "", &InvalidRangeError{Range: r, TextLen: len(text)}
		}
	}

	buf := []byte(text)
	for i := len(ranges) - 1; i >= 0; i-- {
		r := ranges[i]
		buf = append(buf[:r.Start], buf[r.End:]...)
	}
	return string(buf), nil
}
