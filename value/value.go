// Package value implements the vCard 4.0 property value types.
//
// Each value type carries the rendering and comparison method set;
// [Parse] dispatches raw value text to the type selected by a [Kind].
package value

//go:generate go tool errtrace -w .

import (
	"fmt"
	"io"

	"braces.dev/errtrace"

	"github.com/ghettovoice/govcard/internal/constraints"
	"github.com/ghettovoice/govcard/internal/errorutil"
	"github.com/ghettovoice/govcard/internal/util"
)

// Kind identifies a value type, as named by the VALUE parameter.
type Kind string

const (
	KindBoolean       Kind = "BOOLEAN"
	KindDateAndOrTime Kind = "DATE-AND-OR-TIME"
	KindDateTime      Kind = "DATE-TIME"
	KindDate          Kind = "DATE"
	KindFloat         Kind = "FLOAT"
	KindInteger       Kind = "INTEGER"
	KindLanguageTag   Kind = "LANGUAGE-TAG"
	KindText          Kind = "TEXT"
	KindTime          Kind = "TIME"
	KindTimestamp     Kind = "TIMESTAMP"
	KindURI           Kind = "URI"
	KindUTCOffset     Kind = "UTC-OFFSET"
)

var kinds = map[Kind]struct{}{
	KindBoolean:       {},
	KindDateAndOrTime: {},
	KindDateTime:      {},
	KindDate:          {},
	KindFloat:         {},
	KindInteger:       {},
	KindLanguageTag:   {},
	KindText:          {},
	KindTime:          {},
	KindTimestamp:     {},
	KindURI:           {},
	KindUTCOffset:     {},
}

const (
	// ErrInvalidValue is returned when raw text can not be parsed
	// as the selected value kind.
	ErrInvalidValue errorutil.Error = "invalid value"
	// ErrUnknownValueType is returned when a VALUE parameter names
	// an unknown or unsupported value kind.
	ErrUnknownValueType errorutil.Error = "unknown value type"
)

// ParseKind canonicalizes s into a known [Kind].
func ParseKind[T ~string](s T) (Kind, error) {
	k := Kind(util.UCase(string(s)))
	if _, ok := kinds[k]; !ok {
		return "", errtrace.Wrap(errorutil.NewWrapperError(ErrUnknownValueType, "%q", string(s)))
	}
	return k, nil
}

// NewInvalidValueError wraps [ErrInvalidValue] with the kind and the
// offending raw text.
func NewInvalidValueError(kind Kind, raw string) error {
	return errorutil.NewWrapperError(ErrInvalidValue, "%s %q", kind, util.Ellipsis(raw, 48)) //errtrace:skip
}

// Value is a parsed vCard property value.
type Value interface {
	// Kind returns the value kind the value renders under.
	Kind() Kind
	// RenderTo writes the value text to w, escaped for embedding in a
	// content line.
	RenderTo(w io.Writer) (num int, err error)
	// Render returns the value text.
	Render() string
	fmt.Stringer
	// Clone returns a deep copy of the value.
	Clone() Value
	// Equal compares this value with another for equality.
	Equal(val any) bool
	// IsValid checks whether the value is well formed.
	IsValid() bool
}

// Parse parses raw value text as the given kind.
// Unparseable text returns [ErrInvalidValue].
func Parse[T constraints.Byteseq](kind Kind, raw T) (Value, error) {
	s := string(raw)
	switch kind {
	case KindText:
		return errtrace.Wrap2(ParseText(s))
	case KindBoolean:
		return errtrace.Wrap2(ParseBoolean(s))
	case KindInteger:
		return errtrace.Wrap2(ParseInteger(s))
	case KindFloat:
		return errtrace.Wrap2(ParseFloat(s))
	case KindDate:
		return errtrace.Wrap2(ParseDate(s))
	case KindTime:
		return errtrace.Wrap2(ParseTime(s))
	case KindDateTime:
		return errtrace.Wrap2(ParseDateTime(s))
	case KindDateAndOrTime:
		return errtrace.Wrap2(ParseDateAndOrTime(s))
	case KindTimestamp:
		return errtrace.Wrap2(ParseTimestamp(s))
	case KindURI:
		return errtrace.Wrap2(ParseURI(s))
	case KindUTCOffset:
		return errtrace.Wrap2(ParseUTCOffset(s))
	case KindLanguageTag:
		return errtrace.Wrap2(ParseLanguageTag(s))
	default:
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrUnknownValueType, "%q", string(kind)))
	}
}
