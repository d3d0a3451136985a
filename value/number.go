package value

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/govcard/internal/constraints"
)

// Integer is a signed integer value.
type Integer int64

// ParseInteger parses raw text as a signed 64-bit integer.
func ParseInteger[T constraints.Byteseq](raw T) (Integer, error) {
	s := string(raw)
	n, err := strconv.ParseInt(strings.TrimPrefix(s, "+"), 10, 64)
	if err != nil {
		return 0, errtrace.Wrap(NewInvalidValueError(KindInteger, s))
	}
	return Integer(n), nil
}

// Kind returns [KindInteger].
func (n Integer) Kind() Kind { return KindInteger }

// RenderTo writes the decimal representation to w.
func (n Integer) RenderTo(w io.Writer) (num int, err error) {
	return errtrace.Wrap2(io.WriteString(w, n.Render()))
}

// Render returns the decimal representation.
func (n Integer) Render() string { return strconv.FormatInt(int64(n), 10) }

// String returns the string representation of the value.
func (n Integer) String() string { return n.Render() }

// Format implements fmt.Formatter for custom formatting of the value.
func (n Integer) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, n.String())
	case 'q':
		fmt.Fprint(f, strconv.Quote(n.String()))
	default:
		type hideMethods Integer
		type Integer hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), Integer(n))
	}
}

// Clone returns a copy of the value.
func (n Integer) Clone() Value { return n }

// Equal compares this value with another for equality.
func (n Integer) Equal(val any) bool {
	switch v := val.(type) {
	case Integer:
		return n == v
	case *Integer:
		return v != nil && n == *v
	default:
		return false
	}
}

// IsValid checks whether the value is well formed.
func (n Integer) IsValid() bool { return true }

// Float is a decimal number value. Exponent notation is not allowed.
type Float float64

// ParseFloat parses raw text as a decimal number:
// an optional sign, digits, an optional fraction.
func ParseFloat[T constraints.Byteseq](raw T) (Float, error) {
	s := string(raw)
	body := strings.TrimPrefix(strings.TrimPrefix(s, "+"), "-")
	intPart, frac, hasDot := strings.Cut(body, ".")
	if !isDigits(intPart) || hasDot && !isDigits(frac) {
		return 0, errtrace.Wrap(NewInvalidValueError(KindFloat, s))
	}
	f, err := strconv.ParseFloat(strings.TrimPrefix(s, "+"), 64)
	if err != nil {
		return 0, errtrace.Wrap(NewInvalidValueError(KindFloat, s))
	}
	return Float(f), nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Kind returns [KindFloat].
func (n Float) Kind() Kind { return KindFloat }

// RenderTo writes the decimal representation to w.
func (n Float) RenderTo(w io.Writer) (num int, err error) {
	return errtrace.Wrap2(io.WriteString(w, n.Render()))
}

// Render returns the decimal representation.
func (n Float) Render() string { return strconv.FormatFloat(float64(n), 'f', -1, 64) }

// String returns the string representation of the value.
func (n Float) String() string { return n.Render() }

// Format implements fmt.Formatter for custom formatting of the value.
func (n Float) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, n.String())
	case 'q':
		fmt.Fprint(f, strconv.Quote(n.String()))
	default:
		type hideMethods Float
		type Float hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), Float(n))
	}
}

// Clone returns a copy of the value.
func (n Float) Clone() Value { return n }

// Equal compares this value with another for equality.
func (n Float) Equal(val any) bool {
	switch v := val.(type) {
	case Float:
		return n == v
	case *Float:
		return v != nil && n == *v
	default:
		return false
	}
}

// IsValid checks whether the value is well formed.
func (n Float) IsValid() bool { return true }
