// Package prop implements the vCard property model: a property name
// with parameters and a typed value, carrying a stable identity.
package prop

//go:generate go tool errtrace -w .

import (
	"fmt"
	"io"
	"strconv"

	"braces.dev/errtrace"
	"github.com/google/uuid"

	"github.com/ghettovoice/govcard/internal/constraints"
	"github.com/ghettovoice/govcard/internal/errorutil"
	"github.com/ghettovoice/govcard/internal/grammar"
	"github.com/ghettovoice/govcard/internal/ioutil"
	"github.com/ghettovoice/govcard/internal/util"
	"github.com/ghettovoice/govcard/value"
)

// ErrMalformedLine is returned when a content line does not match the
// property line grammar.
const ErrMalformedLine errorutil.Error = "malformed line"

// IDGen produces identifiers for new properties.
type IDGen func() string

// DefaultIDGen is the id generator used when none is configured.
var DefaultIDGen IDGen = uuid.NewString

// Property is a single parsed vCard property.
// Its ID is assigned at creation and survives value replacement.
type Property struct {
	id     string
	group  string
	name   Name
	params *Params
	value  value.Value
	raw    string
}

// Parse parses one unfolded content line into a Property.
// A nil gen falls back to [DefaultIDGen].
func Parse[T constraints.Byteseq](src T, gen IDGen) (*Property, error) {
	ln, err := grammar.ScanLine(src)
	if err != nil {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrMalformedLine, err))
	}
	name, ok := ParseName(ln.Name)
	if !ok {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrMalformedLine, "bad name %q", ln.Name))
	}

	params := NewParams()
	for _, p := range ln.Params {
		pn := ParamName(p.Name).CanonicName()
		for _, v := range p.Values {
			params.Append(string(pn), v)
		}
	}

	kind := name.DefaultKind()
	if ks, ok := params.ValueKind(); ok {
		if kind, err = value.ParseKind(ks); err != nil {
			return nil, errtrace.Wrap(err)
		}
		if !name.AllowsKind(kind) {
			return nil, errtrace.Wrap(errorutil.NewWrapperError(
				value.ErrUnknownValueType, "%s for %s", kind, name))
		}
	}

	val, err := interpret(name, kind, ln.Value)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}

	if gen == nil {
		gen = DefaultIDGen
	}
	return &Property{
		id:     gen(),
		group:  ln.Group,
		name:   name,
		params: params,
		value:  val,
		raw:    ln.Value,
	}, nil
}

// interpret parses raw value text as kind, applying the structured
// shapes of N, ADR and the list typed properties.
func interpret(name Name, kind value.Kind, raw string) (value.Value, error) {
	if kind != value.KindText {
		return errtrace.Wrap2(value.Parse(kind, raw))
	}
	switch name.shape() {
	case nameComps:
		return errtrace.Wrap2(value.ParseName(raw))
	case addrComps:
		return errtrace.Wrap2(value.ParseAddress(raw))
	case commaList:
		return errtrace.Wrap2(value.ParseTextList(raw, ','))
	case semiList:
		lst, err := value.ParseTextList(raw, ';')
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		if name.CanonicName() == Gender && !validSex(lst) {
			return nil, errtrace.Wrap(value.NewInvalidValueError(kind, raw))
		}
		return lst, nil
	default:
		return errtrace.Wrap2(value.ParseText(raw))
	}
}

// validSex checks the first GENDER component: empty or one of M, F, N, O, U.
func validSex(lst *value.TextList) bool {
	if len(lst.Items) == 0 || len(lst.Items) > 2 {
		return false
	}
	switch util.UCase(lst.Items[0]) {
	case "", "M", "F", "N", "O", "U":
		return true
	default:
		return false
	}
}

// ID returns the stable property identifier.
func (p *Property) ID() string {
	if p == nil {
		return ""
	}
	return p.id
}

// Group returns the optional property group.
func (p *Property) Group() string {
	if p == nil {
		return ""
	}
	return p.group
}

// Name returns the canonical property name.
func (p *Property) Name() Name {
	if p == nil {
		return ""
	}
	return p.name
}

// Params returns the parameter list.
func (p *Property) Params() *Params {
	if p == nil {
		return nil
	}
	return p.params
}

// Value returns the typed value.
func (p *Property) Value() value.Value {
	if p == nil {
		return nil
	}
	return p.value
}

// Raw returns the raw value text as scanned from the content line.
func (p *Property) Raw() string {
	if p == nil {
		return ""
	}
	return p.raw
}

// Reparse replaces the whole property content by parsing line,
// keeping the identity. On error the property is left unchanged.
func (p *Property) Reparse(line string) error {
	p2, err := Parse(line, func() string { return p.id })
	if err != nil {
		return errtrace.Wrap(err)
	}
	*p = *p2
	return nil
}

// RenderTo writes the unfolded content line to w.
func (p *Property) RenderTo(w io.Writer) (num int, err error) {
	if p == nil {
		return 0, nil
	}
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	if p.group != "" {
		cw.WriteString(p.group) //nolint:errcheck
		cw.WriteString(".")     //nolint:errcheck
	}
	cw.WriteString(string(p.name)) //nolint:errcheck
	cw.Call(p.params.RenderTo)
	cw.WriteString(":")   //nolint:errcheck
	cw.WriteString(p.raw) //nolint:errcheck
	return errtrace.Wrap2(cw.Result())
}

// Render returns the unfolded content line.
func (p *Property) Render() string {
	if p == nil {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	p.RenderTo(sb) //nolint:errcheck
	return sb.String()
}

// String returns the string representation of the property.
func (p *Property) String() string { return p.Render() }

// Format implements fmt.Formatter for custom formatting of the property.
func (p *Property) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, p.String())
	case 'q':
		fmt.Fprint(f, strconv.Quote(p.String()))
	default:
		type hideMethods Property
		type Property hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*Property)(p))
	}
}

// Clone returns a deep copy of the property, identity included.
func (p *Property) Clone() *Property {
	if p == nil {
		return nil
	}
	return &Property{
		id:     p.id,
		group:  p.group,
		name:   p.name,
		params: p.params.Clone(),
		value:  p.value.Clone(),
		raw:    p.raw,
	}
}

// Equal compares this property with another for semantic equality:
// group, name, parameters and value. Identity is not compared.
func (p *Property) Equal(val any) bool {
	var other *Property
	switch v := val.(type) {
	case Property:
		other = &v
	case *Property:
		other = v
	default:
		return false
	}
	if p == other {
		return true
	} else if p == nil || other == nil {
		return false
	}
	return util.EqFold(p.group, other.group) &&
		p.name.CanonicName() == other.name.CanonicName() &&
		p.params.Equal(other.params) &&
		p.value.Equal(other.value)
}

// IsValid checks whether the property is well formed.
func (p *Property) IsValid() bool {
	return p != nil && grammar.IsName(string(p.name)) &&
		(p.group == "" || grammar.IsName(p.group)) &&
		p.params.IsValid() && p.value != nil && p.value.IsValid()
}
