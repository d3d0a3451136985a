package grammar

import (
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/govcard/internal/util"
)

var escRpl = strings.NewReplacer(
	`\`, `\\`,
	",", `\,`,
	";", `\;`,
	"\n", `\n`,
)

// Escape escapes backslashes, commas, semicolons and newlines in s.
func Escape(s string) string { return escRpl.Replace(s) }

// Unescape reverses Escape. A backslash followed by anything other than
// '\', ',', ';', 'n' or 'N' is an error, as is a trailing backslash.
func Unescape(s string) (string, error) {
	i := strings.IndexByte(s, '\\')
	if i < 0 {
		return s, nil
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)

	for i >= 0 {
		sb.WriteString(s[:i])
		if i+1 >= len(s) {
			return "", errtrace.Wrap(NewBadEscapeError(s[i:]))
		}
		switch c := s[i+1]; c {
		case '\\', ',', ';':
			sb.WriteByte(c)
		case 'n', 'N':
			sb.WriteByte('\n')
		default:
			return "", errtrace.Wrap(NewBadEscapeError(s[i : i+2]))
		}
		s = s[i+2:]
		i = strings.IndexByte(s, '\\')
	}
	sb.WriteString(s)

	return sb.String(), nil
}

// SplitUnescaped splits s on every unescaped occurrence of delim.
func SplitUnescaped(s string, delim byte) []string {
	out := make([]string, 0, 4)
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case delim:
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	return append(out, s[start:])
}
