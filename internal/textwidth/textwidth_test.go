package textwidth

import "testing"

func TestWidth_WideAndCombining(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{in: "", want: 0},
		{in: "abc", want: 3},
		{in: "é", want: 1},
		{in: "日本", want: 4},
	}
	for _, tc := range cases {
		if got := Width(tc.in); got != tc.want {
			t.Fatalf("Width(%q): got %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestTruncate_GraphemeSafe(t *testing.T) {
	if got, want := Truncate("hello", 5), "hello"; got != want {
		t.Fatalf("fits: got %q, want %q", got, want)
	}
	if got, want := Truncate("hello world", 6), "hello…"; got != want {
		t.Fatalf("cut: got %q, want %q", got, want)
	}
	if got, want := Truncate("日本語", 4), "日…"; got != want {
		t.Fatalf("wide cut: got %q, want %q", got, want)
	}
	if got := Truncate("abc", 0); got != "" {
		t.Fatalf("zero width: got %q, want empty", got)
	}
}

func TestSingleLine(t *testing.T) {
	if got, want := SingleLine("a\nb\tc\r\nd"), "a b c d"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
