package grammar

import (
	"braces.dev/errtrace"

	"github.com/ghettovoice/govcard/internal/errorutil"
	"github.com/ghettovoice/govcard/internal/util"
)

// Param is a scanned parameter with its values in source order.
// Multi-valued parameters (comma separated) produce one Param with
// several values. Quotes are removed, text escapes are left intact.
type Param struct {
	Name   string
	Values []string
}

// ContentLine is one scanned logical line:
//
//	[group "."] name *(";" param "=" param-value) ":" value
//
// Value holds the raw value text, still escaped.
type ContentLine struct {
	Group  string
	Name   string
	Params []Param
	Value  string
}

// ScanLine scans a single unfolded content line. Double quotes shield
// ':', ';' and ',' inside parameter values.
func ScanLine[T ~string | ~[]byte](src T) (ln ContentLine, err error) {
	s := string(src)
	if s == "" {
		return ln, errtrace.Wrap(ErrEmptyInput)
	}

	i := scanName(s, 0)
	if i < len(s) && s[i] == '.' {
		if i == 0 {
			return ln, errtrace.Wrap(newScanErr(ErrEmptyName, s, i))
		}
		ln.Group = s[:i]
		j := scanName(s, i+1)
		if j == i+1 {
			return ln, errtrace.Wrap(newScanErr(ErrEmptyName, s, j))
		}
		ln.Name = s[i+1 : j]
		i = j
	} else {
		if i == 0 {
			return ln, errtrace.Wrap(newScanErr(ErrEmptyName, s, i))
		}
		ln.Name = s[:i]
	}

	for i < len(s) && s[i] == ';' {
		j := scanName(s, i+1)
		if j == i+1 {
			return ln, errtrace.Wrap(newScanErr(ErrEmptyName, s, j))
		}
		if j >= len(s) || s[j] != '=' {
			return ln, errtrace.Wrap(newScanErr(ErrMissingEquals, s, j))
		}
		p := Param{Name: s[i+1 : j]}
		i = j + 1
		for {
			var val string
			if val, i, err = scanParamValue(s, i); err != nil {
				return ln, errtrace.Wrap(err)
			}
			p.Values = append(p.Values, val)
			if i < len(s) && s[i] == ',' {
				i++
				continue
			}
			break
		}
		ln.Params = append(ln.Params, p)
	}

	if i >= len(s) || s[i] != ':' {
		return ln, errtrace.Wrap(newScanErr(ErrMissingColon, s, i))
	}
	ln.Value = s[i+1:]
	for k := 0; k < len(ln.Value); k++ {
		if !IsValueChar(ln.Value[k]) {
			return ln, errtrace.Wrap(newScanErr(ErrIllegalChar, s, i+1+k))
		}
	}
	return ln, nil
}

func scanName(s string, i int) int {
	for i < len(s) && IsNameChar(s[i]) {
		i++
	}
	return i
}

func scanParamValue(s string, i int) (string, int, error) {
	if i < len(s) && s[i] == '"' {
		i++
		k := i
		for k < len(s) && s[k] != '"' {
			if !IsQSafeChar(s[k]) {
				return "", k, errtrace.Wrap(newScanErr(ErrIllegalChar, s, k))
			}
			k++
		}
		if k >= len(s) {
			return "", k, errtrace.Wrap(newScanErr(ErrUnclosedQuote, s, i-1))
		}
		return s[i:k], k + 1, nil
	}
	k := i
	for k < len(s) && s[k] != ';' && s[k] != ':' && s[k] != ',' {
		if !IsSafeChar(s[k]) {
			return "", k, errtrace.Wrap(newScanErr(ErrIllegalChar, s, k))
		}
		k++
	}
	return s[i:k], k, nil
}

func newScanErr(sentinel Error, s string, pos int) error {
	return errorutil.NewWrapperError(sentinel, "at offset %d in %q", pos, util.Ellipsis(s, 48)) //errtrace:skip
}

// NewBadEscapeError wraps ErrBadEscape with the offending sequence.
func NewBadEscapeError(seq string) error {
	return errorutil.NewWrapperError(ErrBadEscape, "%q", seq) //errtrace:skip
}
