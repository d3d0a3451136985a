package value

import (
	"fmt"
	"io"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/govcard/internal/constraints"
	"github.com/ghettovoice/govcard/internal/util"
)

// Boolean is a TRUE/FALSE value.
type Boolean bool

// ParseBoolean parses raw text as a boolean, case-insensitive.
func ParseBoolean[T constraints.Byteseq](raw T) (Boolean, error) {
	switch util.UCase(string(raw)) {
	case "TRUE":
		return true, nil
	case "FALSE":
		return false, nil
	default:
		return false, errtrace.Wrap(NewInvalidValueError(KindBoolean, string(raw)))
	}
}

// Kind returns [KindBoolean].
func (b Boolean) Kind() Kind { return KindBoolean }

// RenderTo writes TRUE or FALSE to w.
func (b Boolean) RenderTo(w io.Writer) (num int, err error) {
	return errtrace.Wrap2(io.WriteString(w, b.Render()))
}

// Render returns TRUE or FALSE.
func (b Boolean) Render() string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}

// String returns the string representation of the value.
func (b Boolean) String() string { return b.Render() }

// Format implements fmt.Formatter for custom formatting of the value.
func (b Boolean) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, b.String())
	case 'q':
		fmt.Fprint(f, strconv.Quote(b.String()))
	default:
		type hideMethods Boolean
		type Boolean hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), Boolean(b))
	}
}

// Clone returns a copy of the value.
func (b Boolean) Clone() Value { return b }

// Equal compares this value with another for equality.
func (b Boolean) Equal(val any) bool {
	switch v := val.(type) {
	case Boolean:
		return b == v
	case *Boolean:
		return v != nil && b == *v
	default:
		return false
	}
}

// IsValid checks whether the value is well formed.
func (b Boolean) IsValid() bool { return true }
