package value

import (
	"fmt"
	"io"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/govcard/internal/constraints"
)

// UTCOffset is a signed offset from UTC in hours and minutes.
// A zero offset parsed from the "Z" designator renders back as "Z".
type UTCOffset struct {
	// Minutes is the total offset in minutes east of UTC.
	Minutes int
	// UTC marks the "Z" designator.
	UTC bool
}

// ParseUTCOffset parses "Z" or a sign followed by HH[MM].
func ParseUTCOffset[T constraints.Byteseq](raw T) (*UTCOffset, error) {
	s := string(raw)
	if s == "Z" || s == "z" {
		return &UTCOffset{UTC: true}, nil
	}
	if len(s) != 3 && len(s) != 5 || s[0] != '+' && s[0] != '-' {
		return nil, errtrace.Wrap(NewInvalidValueError(KindUTCOffset, s))
	}
	hh, ok1 := num2(s[1:3])
	mm := 0
	ok2 := true
	if len(s) == 5 {
		mm, ok2 = num2(s[3:5])
	}
	if !ok1 || !ok2 || hh > 23 || mm > 59 {
		return nil, errtrace.Wrap(NewInvalidValueError(KindUTCOffset, s))
	}
	min := hh*60 + mm
	if s[0] == '-' {
		min = -min
	}
	return &UTCOffset{Minutes: min}, nil
}

func num2(s string) (int, bool) {
	if len(s) != 2 || !isDigits(s) {
		return 0, false
	}
	n, _ := strconv.Atoi(s)
	return n, true
}

// Kind returns [KindUTCOffset].
func (o *UTCOffset) Kind() Kind { return KindUTCOffset }

// RenderTo writes the offset to w.
func (o *UTCOffset) RenderTo(w io.Writer) (num int, err error) {
	if o == nil {
		return 0, nil
	}
	return errtrace.Wrap2(io.WriteString(w, o.Render()))
}

// Render returns "Z" or the signed HHMM form.
func (o *UTCOffset) Render() string {
	if o == nil {
		return ""
	}
	if o.UTC {
		return "Z"
	}
	min, sign := o.Minutes, "+"
	if min < 0 {
		min, sign = -min, "-"
	}
	return fmt.Sprintf("%s%02d%02d", sign, min/60, min%60)
}

// String returns the string representation of the value.
func (o *UTCOffset) String() string { return o.Render() }

// Format implements fmt.Formatter for custom formatting of the value.
func (o *UTCOffset) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, o.String())
	case 'q':
		fmt.Fprint(f, strconv.Quote(o.String()))
	default:
		type hideMethods UTCOffset
		type UTCOffset hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*UTCOffset)(o))
	}
}

// Clone returns a copy of the value.
func (o *UTCOffset) Clone() Value {
	if o == nil {
		return (*UTCOffset)(nil)
	}
	o2 := *o
	return &o2
}

// Equal compares this value with another for equality.
func (o *UTCOffset) Equal(val any) bool {
	var other *UTCOffset
	switch v := val.(type) {
	case UTCOffset:
		other = &v
	case *UTCOffset:
		other = v
	default:
		return false
	}
	if o == other {
		return true
	} else if o == nil || other == nil {
		return false
	}
	return *o == *other
}

// IsValid checks whether the value is well formed.
func (o *UTCOffset) IsValid() bool {
	return o != nil && o.Minutes >= -23*60-59 && o.Minutes <= 23*60+59
}
