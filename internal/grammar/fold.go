package grammar

import (
	"io"
	"strings"
	"unicode/utf8"

	"braces.dev/errtrace"

	"github.com/ghettovoice/govcard/internal/ioutil"
	"github.com/ghettovoice/govcard/internal/util"
)

// MaxLineOctets is the maximum length of a physical content line,
// excluding the line break.
const MaxLineOctets = 75

// Line is a logical content line with the 1-based number of its first
// physical line.
type Line struct {
	Num  int
	Text string
}

// SplitLines splits s into logical content lines, removing folds.
// A line break (CRLF or bare LF) followed by a single SP or HTAB is
// a continuation: the break and one whitespace char are dropped.
// Blank lines are returned as empty entries.
func SplitLines[T ~string | ~[]byte](s T) []Line {
	str := string(s)
	var (
		lines []Line
		sb    *strings.Builder
	)
	num, start, phys := 1, 0, 1
	flush := func(end, next int) {
		var txt string
		if sb != nil {
			sb.WriteString(str[start:end])
			txt = sb.String()
			sb = nil
		} else {
			txt = str[start:end]
		}
		lines = append(lines, Line{Num: num, Text: txt})
		start = next
		num = phys
	}
	for i := 0; i < len(str); i++ {
		if str[i] != '\n' {
			continue
		}
		end := i
		if end > start && str[end-1] == '\r' {
			end--
		}
		phys++
		if i+1 < len(str) && (str[i+1] == ' ' || str[i+1] == '\t') {
			// fold: glue the continuation to the current logical line
			if sb == nil {
				sb = new(strings.Builder)
			}
			sb.WriteString(str[start:end])
			start = i + 2
			i++
			continue
		}
		flush(end, i+1)
	}
	if start < len(str) || sb != nil {
		end := len(str)
		if end > start && str[end-1] == '\r' {
			end--
		}
		flush(end, end)
	}
	return lines
}

// Unfold removes folds from s, leaving line breaks intact.
func Unfold[T ~string | ~[]byte](s T) string {
	lines := SplitLines(s)
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	for i, ln := range lines {
		if i > 0 {
			sb.WriteString("\r\n")
		}
		sb.WriteString(ln.Text)
	}
	return sb.String()
}

// FoldTo writes line to w folded into physical lines of at most
// MaxLineOctets octets excluding the eol break. Continuation lines
// start with a single SP. Multi-byte UTF-8 runes are never split.
// The trailing break is not written.
func FoldTo(w io.Writer, line, eol string) (num int, err error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)

	budget := MaxLineOctets
	for len(line) > 0 {
		n := len(line)
		if n > budget {
			n = budget
			// back off to a rune boundary
			for n > 0 && !utf8.RuneStart(line[n]) {
				n--
			}
			if n == 0 {
				// a single rune wider than the budget, emit it whole
				_, n = utf8.DecodeRuneInString(line)
			}
		}
		cw.WriteString(line[:n]) //nolint:errcheck
		line = line[n:]
		if len(line) > 0 {
			cw.WriteString(eol + " ") //nolint:errcheck
			budget = MaxLineOctets - 1
		}
	}
	return errtrace.Wrap2(cw.Result())
}

// Fold returns line folded per FoldTo with CRLF breaks.
func Fold(line string) string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	FoldTo(sb, line, "\r\n") //nolint:errcheck
	return sb.String()
}
