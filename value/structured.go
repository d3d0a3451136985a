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

const (
	nameComponents    = 5
	addressComponents = 7
)

// parseComponents splits raw into exactly n semicolon separated
// components, each a comma separated list of escaped text items.
func parseComponents(raw string, n int) ([][]string, error) {
	comps := grammar.SplitUnescaped(raw, ';')
	if len(comps) != n {
		return nil, errtrace.Wrap(errorComponents(raw, n, len(comps)))
	}
	out := make([][]string, n)
	for i, comp := range comps {
		items := grammar.SplitUnescaped(comp, ',')
		out[i] = make([]string, len(items))
		for j, it := range items {
			s, err := grammar.Unescape(it)
			if err != nil {
				return nil, errtrace.Wrap(errorutil.NewWrapperError(NewInvalidValueError(KindText, raw), err))
			}
			out[i][j] = s
		}
	}
	return out, nil
}

func errorComponents(raw string, want, got int) error {
	return fmt.Errorf("%w: want %d components, got %d",
		NewInvalidValueError(KindText, raw), want, got)
}

func renderComponents(sb io.StringWriter, comps ...[]string) {
	for i, comp := range comps {
		if i > 0 {
			sb.WriteString(";") //nolint:errcheck
		}
		for j, it := range comp {
			if j > 0 {
				sb.WriteString(",") //nolint:errcheck
			}
			sb.WriteString(grammar.Escape(it)) //nolint:errcheck
		}
	}
}

// Name is the structured N value: family names, given names,
// additional names, honorific prefixes and suffixes.
type Name struct {
	Family     []string
	Given      []string
	Additional []string
	Prefixes   []string
	Suffixes   []string
}

// ParseName parses the 5-component N value.
func ParseName[T constraints.Byteseq](raw T) (*Name, error) {
	comps, err := parseComponents(string(raw), nameComponents)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return &Name{
		Family:     comps[0],
		Given:      comps[1],
		Additional: comps[2],
		Prefixes:   comps[3],
		Suffixes:   comps[4],
	}, nil
}

// Kind returns [KindText].
func (n *Name) Kind() Kind { return KindText }

// RenderTo writes the semicolon separated components to w.
func (n *Name) RenderTo(w io.Writer) (num int, err error) {
	if n == nil {
		return 0, nil
	}
	return errtrace.Wrap2(io.WriteString(w, n.Render()))
}

// Render returns the semicolon separated components.
func (n *Name) Render() string {
	if n == nil {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	renderComponents(sb, n.Family, n.Given, n.Additional, n.Prefixes, n.Suffixes)
	return sb.String()
}

// String returns the string representation of the value.
func (n *Name) String() string { return n.Render() }

// Format implements fmt.Formatter for custom formatting of the value.
func (n *Name) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, n.String())
	case 'q':
		fmt.Fprint(f, strconv.Quote(n.String()))
	default:
		type hideMethods Name
		type Name hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*Name)(n))
	}
}

// Clone returns a deep copy of the value.
func (n *Name) Clone() Value {
	if n == nil {
		return (*Name)(nil)
	}
	return &Name{
		Family:     slices.Clone(n.Family),
		Given:      slices.Clone(n.Given),
		Additional: slices.Clone(n.Additional),
		Prefixes:   slices.Clone(n.Prefixes),
		Suffixes:   slices.Clone(n.Suffixes),
	}
}

// Equal compares this value with another for equality.
func (n *Name) Equal(val any) bool {
	var other *Name
	switch v := val.(type) {
	case Name:
		other = &v
	case *Name:
		other = v
	default:
		return false
	}
	if n == other {
		return true
	} else if n == nil || other == nil {
		return false
	}
	return slices.Equal(n.Family, other.Family) &&
		slices.Equal(n.Given, other.Given) &&
		slices.Equal(n.Additional, other.Additional) &&
		slices.Equal(n.Prefixes, other.Prefixes) &&
		slices.Equal(n.Suffixes, other.Suffixes)
}

// IsValid checks whether the value is well formed.
func (n *Name) IsValid() bool { return n != nil }

// Address is the structured ADR value: post office box, extended
// address, street, locality, region, postal code and country.
type Address struct {
	POBox    []string
	Extended []string
	Street   []string
	Locality []string
	Region   []string
	Code     []string
	Country  []string
}

// ParseAddress parses the 7-component ADR value.
func ParseAddress[T constraints.Byteseq](raw T) (*Address, error) {
	comps, err := parseComponents(string(raw), addressComponents)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return &Address{
		POBox:    comps[0],
		Extended: comps[1],
		Street:   comps[2],
		Locality: comps[3],
		Region:   comps[4],
		Code:     comps[5],
		Country:  comps[6],
	}, nil
}

// Kind returns [KindText].
func (a *Address) Kind() Kind { return KindText }

// RenderTo writes the semicolon separated components to w.
func (a *Address) RenderTo(w io.Writer) (num int, err error) {
	if a == nil {
		return 0, nil
	}
	return errtrace.Wrap2(io.WriteString(w, a.Render()))
}

// Render returns the semicolon separated components.
func (a *Address) Render() string {
	if a == nil {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	renderComponents(sb, a.POBox, a.Extended, a.Street, a.Locality, a.Region, a.Code, a.Country)
	return sb.String()
}

// String returns the string representation of the value.
func (a *Address) String() string { return a.Render() }

// Format implements fmt.Formatter for custom formatting of the value.
func (a *Address) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, a.String())
	case 'q':
		fmt.Fprint(f, strconv.Quote(a.String()))
	default:
		type hideMethods Address
		type Address hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*Address)(a))
	}
}

// Clone returns a deep copy of the value.
func (a *Address) Clone() Value {
	if a == nil {
		return (*Address)(nil)
	}
	return &Address{
		POBox:    slices.Clone(a.POBox),
		Extended: slices.Clone(a.Extended),
		Street:   slices.Clone(a.Street),
		Locality: slices.Clone(a.Locality),
		Region:   slices.Clone(a.Region),
		Code:     slices.Clone(a.Code),
		Country:  slices.Clone(a.Country),
	}
}

// Equal compares this value with another for equality.
func (a *Address) Equal(val any) bool {
	var other *Address
	switch v := val.(type) {
	case Address:
		other = &v
	case *Address:
		other = v
	default:
		return false
	}
	if a == other {
		return true
	} else if a == nil || other == nil {
		return false
	}
	return slices.Equal(a.POBox, other.POBox) &&
		slices.Equal(a.Extended, other.Extended) &&
		slices.Equal(a.Street, other.Street) &&
		slices.Equal(a.Locality, other.Locality) &&
		slices.Equal(a.Region, other.Region) &&
		slices.Equal(a.Code, other.Code) &&
		slices.Equal(a.Country, other.Country)
}

// IsValid checks whether the value is well formed.
func (a *Address) IsValid() bool { return a != nil }
