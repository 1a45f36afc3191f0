package linebuf

// Separator delimits words.
const Separator = ' '

// PrevWordStart returns the column where the word left of col starts. Runs of
// separators count as a single boundary. The second return value is false when
// there is no word left of col, including when col is 0.
func PrevWordStart(text []rune, col int) (int, bool) {
	col = min(max(col, 0), len(text))
	i := col
	for i > 0 && text[i-1] == Separator {
		i--
	}
	if i == 0 {
		return 0, false
	}
	for i > 0 && text[i-1] != Separator {
		i--
	}
	return i, true
}

// NextWordStart returns the column where the word right of col starts. When
// there is no such word, it returns len(text): the end of the line is always
// a boundary.
func NextWordStart(text []rune, col int) int {
	i := max(col, 0)
	for i < len(text) && text[i] != Separator {
		i++
	}
	for i < len(text) && text[i] == Separator {
		i++
	}
	return min(i, len(text))
}
