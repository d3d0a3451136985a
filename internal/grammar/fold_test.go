package grammar_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ghettovoice/govcard/internal/grammar"
)

func TestSplitLines(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want []grammar.Line
	}{
		{"empty", "", nil},
		{"single", "FN:John Doe", []grammar.Line{{Num: 1, Text: "FN:John Doe"}}},
		{"crlf", "A:1\r\nB:2\r\n", []grammar.Line{{Num: 1, Text: "A:1"}, {Num: 2, Text: "B:2"}}},
		{"lf", "A:1\nB:2", []grammar.Line{{Num: 1, Text: "A:1"}, {Num: 2, Text: "B:2"}}},
		{
			"fold space",
			"NOTE:one \r\n two\r\nB:2",
			[]grammar.Line{{Num: 1, Text: "NOTE:one two"}, {Num: 3, Text: "B:2"}},
		},
		{
			"fold tab",
			"NOTE:one\r\n\ttwo",
			[]grammar.Line{{Num: 1, Text: "NOTE:onetwo"}},
		},
		{
			"double fold",
			"NOTE:a\r\n b\r\n c",
			[]grammar.Line{{Num: 1, Text: "NOTE:abc"}},
		},
		{
			"blank between",
			"A:1\r\n\r\nB:2",
			[]grammar.Line{{Num: 1, Text: "A:1"}, {Num: 2, Text: ""}, {Num: 3, Text: "B:2"}},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got := grammar.SplitLines(c.in)
			if diff := cmp.Diff(got, c.want); diff != "" {
				t.Errorf("SplitLines(%q) mismatch (-got +want):\n%v", c.in, diff)
			}
		})
	}
}

func TestFold(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"short", "FN:John Doe", "FN:John Doe"},
		{
			"exact 75",
			"NOTE:" + strings.Repeat("x", 70),
			"NOTE:" + strings.Repeat("x", 70),
		},
		{
			"76 octets",
			"NOTE:" + strings.Repeat("x", 71),
			"NOTE:" + strings.Repeat("x", 70) + "\r\n x",
		},
		{
			"rune not split",
			// 74 ascii octets then a 2-octet rune: the rune moves whole
			"NOTE:" + strings.Repeat("x", 69) + "é",
			"NOTE:" + strings.Repeat("x", 69) + "\r\n é",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := grammar.Fold(c.in); got != c.want {
				t.Errorf("Fold(%q) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}

func TestFoldTo_LFBreaks(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	in := "NOTE:" + strings.Repeat("x", 71)
	if _, err := grammar.FoldTo(&sb, in, "\n"); err != nil {
		t.Fatal(err)
	}
	want := "NOTE:" + strings.Repeat("x", 70) + "\n x"
	if sb.String() != want {
		t.Errorf("FoldTo() = %q, want %q", sb.String(), want)
	}
}

func TestFold_MaxLineOctets(t *testing.T) {
	t.Parallel()

	in := "NOTE:" + strings.Repeat("параграф ", 30)
	for _, ln := range strings.Split(grammar.Fold(in), "\r\n") {
		if len(ln) > grammar.MaxLineOctets {
			t.Errorf("physical line %q is %d octets, want <= %d", ln, len(ln), grammar.MaxLineOctets)
		}
	}
}

func TestFold_Unfold_RoundTrip(t *testing.T) {
	t.Parallel()

	cases := []string{
		"FN:John Doe",
		"NOTE:" + strings.Repeat("abc ", 100),
		"NOTE:" + strings.Repeat("héllo wörld ", 40),
		"ADR:;;123 Main Street;Any Town;CA;91921-1234;U.S.A.",
	}

	for _, in := range cases {
		lines := grammar.SplitLines(grammar.Fold(in))
		if len(lines) != 1 || lines[0].Text != in {
			t.Errorf("unfold(fold(%q)) = %+v, want original", in, lines)
		}
	}
}
