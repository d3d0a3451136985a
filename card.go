package govcard

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/govcard/internal/errorutil"
	"github.com/ghettovoice/govcard/internal/grammar"
	"github.com/ghettovoice/govcard/internal/ioutil"
	"github.com/ghettovoice/govcard/internal/util"
	"github.com/ghettovoice/govcard/prop"
)

// Card is a single vCard: an ordered list of properties.
//
// Parsing builds a card without validating it, [Card.Validate] checks
// the card without re-parsing. The only mutation path for an existing
// property is a full re-parse via [Card.ReplaceProperty].
type Card struct {
	props   []*prop.Property
	skipped []SkippedLine
	eol     string
	gen     prop.IDGen
	log     *slog.Logger
}

// lineBreak returns the break style the card renders with: the style
// of the source it was parsed from, LF for new cards.
func (c *Card) lineBreak() string {
	if c.eol == "" {
		return "\n"
	}
	return c.eol
}

// SkippedLine is a malformed property line skipped by a lenient parse.
type SkippedLine struct {
	Num  int
	Text string
	Err  error
}

// New builds a minimal card: VERSION:4.0 plus the given formatted name.
func New(fn string, opts ...ParseOption) (*Card, error) {
	o := newParseOptions(opts)
	c := &Card{gen: o.IDGen, log: o.Logger}
	if _, err := c.AddProperty("VERSION:4.0"); err != nil {
		return nil, errtrace.Wrap(err)
	}
	if _, err := c.AddProperty("FN:" + grammar.Escape(fn)); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return c, nil
}

// AddProperty parses one unfolded content line and appends the
// property to the card, returning it with its fresh identity.
func (c *Card) AddProperty(line string) (*prop.Property, error) {
	p, err := prop.Parse(line, c.gen)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	switch p.Name().CanonicName() {
	case prop.Begin, prop.End:
		return nil, errtrace.Wrap(errorutil.NewWrapperError(
			prop.ErrMalformedLine, "misplaced %s", p.Name()))
	}
	c.props = append(c.props, p)
	return p, nil
}

// ReplaceProperty re-parses line in place of the property with the
// given id, keeping identity and position.
// An unknown id returns [ErrNotFound].
func (c *Card) ReplaceProperty(id, line string) error {
	p, ok := c.Property(id)
	if !ok {
		return errtrace.Wrap(errorutil.NewWrapperError(ErrNotFound, "%q", id))
	}
	return errtrace.Wrap(p.Reparse(line))
}

// RemoveProperty removes the property with the given id.
// The VERSION property and the last FN are kept in place.
// An unknown id returns [ErrNotFound].
func (c *Card) RemoveProperty(id string) error {
	for i, p := range c.props {
		if p.ID() != id {
			continue
		}
		name := p.Name().CanonicName()
		if name == prop.Version || name == prop.Fn && len(c.PropertiesByName(prop.Fn)) == 1 {
			return errtrace.Wrap(NewCardinalityViolationError(name))
		}
		c.props = append(c.props[:i], c.props[i+1:]...)
		return nil
	}
	return errtrace.Wrap(errorutil.NewWrapperError(ErrNotFound, "%q", id))
}

// Property returns the property with the given id.
func (c *Card) Property(id string) (*prop.Property, bool) {
	for _, p := range c.props {
		if p.ID() == id {
			return p, true
		}
	}
	return nil, false
}

// Properties returns all properties in insertion order.
func (c *Card) Properties() []*prop.Property {
	if c == nil {
		return nil
	}
	out := make([]*prop.Property, len(c.props))
	copy(out, c.props)
	return out
}

// PropertiesByName returns all properties with the given name.
func (c *Card) PropertiesByName(name prop.Name) []*prop.Property {
	var out []*prop.Property
	for _, p := range c.props {
		if p.Name().CanonicName() == name.CanonicName() {
			out = append(out, p)
		}
	}
	return out
}

// Skipped returns the lines skipped by a lenient parse.
func (c *Card) Skipped() []SkippedLine {
	if c == nil {
		return nil
	}
	out := make([]SkippedLine, len(c.skipped))
	copy(out, c.skipped)
	return out
}

// RenderTo writes the card to w as a BEGIN/END block with folded
// lines. The break style follows the source the card was parsed from
// (CRLF or LF), so an unfolded parse re-renders byte-identically.
// The VERSION property always comes first.
func (c *Card) RenderTo(w io.Writer) (num int, err error) {
	if c == nil {
		return 0, nil
	}
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)

	eol := c.lineBreak()
	cw.WriteString("BEGIN:VCARD" + eol) //nolint:errcheck
	writeProp := func(p *prop.Property) {
		cw.Call(func(w io.Writer) (int, error) {
			return errtrace.Wrap2(grammar.FoldTo(w, p.Render(), eol))
		})
		cw.WriteString(eol) //nolint:errcheck
	}
	for _, p := range c.props {
		if p.Name().CanonicName() == prop.Version {
			writeProp(p)
			break
		}
	}
	for _, p := range c.props {
		if p.Name().CanonicName() != prop.Version {
			writeProp(p)
		}
	}
	cw.WriteString("END:VCARD" + eol) //nolint:errcheck
	return errtrace.Wrap2(cw.Result())
}

// Render returns the card text.
func (c *Card) Render() string {
	if c == nil {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	c.RenderTo(sb) //nolint:errcheck
	return sb.String()
}

// String returns the string representation of the card.
func (c *Card) String() string { return c.Render() }

// Format implements fmt.Formatter for custom formatting of the card.
func (c *Card) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, c.String())
	case 'q':
		fmt.Fprint(f, strconv.Quote(c.String()))
	default:
		type hideMethods Card
		type Card hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*Card)(c))
	}
}

// Clone returns a deep copy of the card, property identities included.
func (c *Card) Clone() *Card {
	if c == nil {
		return nil
	}
	c2 := &Card{
		props:   make([]*prop.Property, len(c.props)),
		skipped: make([]SkippedLine, len(c.skipped)),
		eol:     c.eol,
		gen:     c.gen,
		log:     c.log,
	}
	for i, p := range c.props {
		c2.props[i] = p.Clone()
	}
	copy(c2.skipped, c.skipped)
	return c2
}

// Equal compares this card with another for semantic equality:
// same properties in the same order. Identities are not compared.
func (c *Card) Equal(val any) bool {
	var other *Card
	switch v := val.(type) {
	case *Card:
		other = v
	default:
		return false
	}
	if c == other {
		return true
	} else if c == nil || other == nil {
		return false
	}
	if len(c.props) != len(other.props) {
		return false
	}
	for i, p := range c.props {
		if !p.Equal(other.props[i]) {
			return false
		}
	}
	return true
}
