package linebuf

import "testing"

var prevWordStartTests = []struct {
	text   string
	col    int
	want   int
	wantOK bool
}{
	{"ab cd", 3, 0, true},
	{"ab  cd", 4, 0, true},
	{"ab cd", 5, 3, true},
	{"ab cd", 4, 3, true},
	{"ab cd ef", 8, 6, true},
	{"ab cd ef", 6, 3, true},
	{"abc", 2, 0, true},
	{"ab cd", 0, 0, false},
	{"   x", 3, 0, false},
	{"ab", -1, 0, false},
	{"ab cd", 9, 3, true},
}

func TestPrevWordStart(t *testing.T) {
	for _, test := range prevWordStartTests {
		got, ok := PrevWordStart([]rune(test.text), test.col)
		if got != test.want || ok != test.wantOK {
			t.Errorf("PrevWordStart(%q, %d) -> (%d, %v), want (%d, %v)",
				test.text, test.col, got, ok, test.want, test.wantOK)
		}
	}
}

var nextWordStartTests = []struct {
	text string
	col  int
	want int
}{
	{"ab cd", 0, 3},
	{"ab cd", 5, 5},
	{"ab cd", 3, 5},
	{"ab cd", 2, 3},
	{"ab   cd", 1, 5},
	{"ab  ", 0, 4},
	{"", 0, 0},
}

func TestNextWordStart(t *testing.T) {
	for _, test := range nextWordStartTests {
		if got := NextWordStart([]rune(test.text), test.col); got != test.want {
			t.Errorf("NextWordStart(%q, %d) -> %d, want %d",
				test.text, test.col, got, test.want)
		}
	}
}
