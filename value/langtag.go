package value

import (
	"fmt"
	"io"
	"strconv"

	"braces.dev/errtrace"
	"golang.org/x/text/language"

	"github.com/ghettovoice/govcard/internal/constraints"
)

// LanguageTag is an RFC 5646 language tag value.
type LanguageTag struct {
	Tag language.Tag
}

// ParseLanguageTag parses and canonicalizes a language tag.
func ParseLanguageTag[T constraints.Byteseq](raw T) (*LanguageTag, error) {
	s := string(raw)
	tag, err := language.Parse(s)
	if err != nil {
		return nil, errtrace.Wrap(NewInvalidValueError(KindLanguageTag, s))
	}
	return &LanguageTag{Tag: tag}, nil
}

// Kind returns [KindLanguageTag].
func (l *LanguageTag) Kind() Kind { return KindLanguageTag }

// RenderTo writes the canonical tag to w.
func (l *LanguageTag) RenderTo(w io.Writer) (num int, err error) {
	if l == nil {
		return 0, nil
	}
	return errtrace.Wrap2(io.WriteString(w, l.Render()))
}

// Render returns the canonical tag.
func (l *LanguageTag) Render() string {
	if l == nil {
		return ""
	}
	return l.Tag.String()
}

// String returns the string representation of the value.
func (l *LanguageTag) String() string { return l.Render() }

// Format implements fmt.Formatter for custom formatting of the value.
func (l *LanguageTag) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, l.String())
	case 'q':
		fmt.Fprint(f, strconv.Quote(l.String()))
	default:
		type hideMethods LanguageTag
		type LanguageTag hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*LanguageTag)(l))
	}
}

// Clone returns a copy of the value.
func (l *LanguageTag) Clone() Value {
	if l == nil {
		return (*LanguageTag)(nil)
	}
	l2 := *l
	return &l2
}

// Equal compares this value with another for equality.
func (l *LanguageTag) Equal(val any) bool {
	var other *LanguageTag
	switch v := val.(type) {
	case LanguageTag:
		other = &v
	case *LanguageTag:
		other = v
	default:
		return false
	}
	if l == other {
		return true
	} else if l == nil || other == nil {
		return false
	}
	return l.Tag == other.Tag
}

// IsValid checks whether the value is well formed.
func (l *LanguageTag) IsValid() bool { return l != nil && l.Tag != language.Und }
