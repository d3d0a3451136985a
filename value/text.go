package value

import (
	"fmt"
	"io"
	"slices"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/govcard/internal/constraints"
	"github.com/ghettovoice/govcard/internal/errorutil"
	"github.com/ghettovoice/govcard/internal/grammar"
	"github.com/ghettovoice/govcard/internal/util"
)

// Text is a free-form text value.
// It holds the unescaped text, rendering re-escapes.
type Text string

// ParseText parses raw text, reversing vCard escapes.
func ParseText[T constraints.Byteseq](raw T) (Text, error) {
	s, err := grammar.Unescape(string(raw))
	if err != nil {
		return "", errtrace.Wrap(errorutil.NewWrapperError(NewInvalidValueError(KindText, string(raw)), err))
	}
	return Text(s), nil
}

// Kind returns [KindText].
func (t Text) Kind() Kind { return KindText }

// RenderTo writes the escaped text to w.
func (t Text) RenderTo(w io.Writer) (num int, err error) {
	return errtrace.Wrap2(io.WriteString(w, grammar.Escape(string(t))))
}

// Render returns the escaped text.
func (t Text) Render() string { return grammar.Escape(string(t)) }

// String returns the string representation of the value.
func (t Text) String() string { return t.Render() }

// Format implements fmt.Formatter for custom formatting of the value.
func (t Text) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, t.String())
	case 'q':
		fmt.Fprint(f, strconv.Quote(t.String()))
	default:
		type hideMethods Text
		type Text hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), Text(t))
	}
}

// Clone returns a copy of the value.
func (t Text) Clone() Value { return t }

// Equal compares this value with another for equality.
func (t Text) Equal(val any) bool {
	switch v := val.(type) {
	case Text:
		return t == v
	case *Text:
		return v != nil && t == *v
	default:
		return false
	}
}

// IsValid checks whether the value is well formed.
func (t Text) IsValid() bool { return true }

// TextList is a list of text values joined by a fixed delimiter,
// ',' or ';' depending on the owning property.
type TextList struct {
	Items []string
	Delim byte
}

// ParseTextList parses raw text into a list split on unescaped delim.
func ParseTextList[T constraints.Byteseq](raw T, delim byte) (*TextList, error) {
	parts := grammar.SplitUnescaped(string(raw), delim)
	items := make([]string, len(parts))
	for i, p := range parts {
		s, err := grammar.Unescape(p)
		if err != nil {
			return nil, errtrace.Wrap(errorutil.NewWrapperError(NewInvalidValueError(KindText, string(raw)), err))
		}
		items[i] = s
	}
	return &TextList{Items: items, Delim: delim}, nil
}

// Kind returns [KindText].
func (l *TextList) Kind() Kind { return KindText }

// RenderTo writes the delimited escaped items to w.
func (l *TextList) RenderTo(w io.Writer) (num int, err error) {
	if l == nil {
		return 0, nil
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	for i, it := range l.Items {
		if i > 0 {
			sb.WriteByte(l.delim())
		}
		sb.WriteString(grammar.Escape(it))
	}
	return errtrace.Wrap2(io.WriteString(w, sb.String()))
}

// Render returns the delimited escaped items.
func (l *TextList) Render() string {
	if l == nil {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	l.RenderTo(sb) //nolint:errcheck
	return sb.String()
}

// String returns the string representation of the value.
func (l *TextList) String() string { return l.Render() }

// Format implements fmt.Formatter for custom formatting of the value.
func (l *TextList) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, l.String())
	case 'q':
		fmt.Fprint(f, strconv.Quote(l.String()))
	default:
		type hideMethods TextList
		type TextList hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*TextList)(l))
	}
}

// Clone returns a deep copy of the value.
func (l *TextList) Clone() Value {
	if l == nil {
		return (*TextList)(nil)
	}
	return &TextList{Items: slices.Clone(l.Items), Delim: l.Delim}
}

// Equal compares this value with another for equality.
func (l *TextList) Equal(val any) bool {
	var other *TextList
	switch v := val.(type) {
	case TextList:
		other = &v
	case *TextList:
		other = v
	default:
		return false
	}
	if l == other {
		return true
	} else if l == nil || other == nil {
		return false
	}
	return l.delim() == other.delim() && slices.Equal(l.Items, other.Items)
}

// IsValid checks whether the value is well formed.
func (l *TextList) IsValid() bool { return l != nil && len(l.Items) > 0 }

func (l *TextList) delim() byte {
	if l.Delim == 0 {
		return ','
	}
	return l.Delim
}
