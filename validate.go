package govcard

import (
	"braces.dev/errtrace"

	"github.com/ghettovoice/govcard/internal/errorutil"
	"github.com/ghettovoice/govcard/prop"
)

// Validate checks the card structure and collects every violation:
// VERSION presence, placement and value, FN presence, per-name
// cardinality and parameter legality. It never re-parses values.
func (c *Card) Validate() error {
	var errs []error

	vers := c.PropertiesByName(prop.Version)
	switch {
	case len(vers) == 0:
		errs = append(errs, ErrMissingVersion)
	default:
		if len(vers) > 1 {
			errs = append(errs, NewCardinalityViolationError(prop.Version))
		}
		if vers[0].Raw() != "4.0" {
			errs = append(errs, errorutil.NewWrapperError(ErrUnsupportedVersion, "%q", vers[0].Raw()))
		}
		if len(c.props) > 0 && c.props[0].Name().CanonicName() != prop.Version {
			errs = append(errs, errorutil.NewWrapperError(ErrMissingVersion, "VERSION must be the first property"))
		}
	}

	if len(c.PropertiesByName(prop.Fn)) == 0 {
		errs = append(errs, ErrMissingFn)
	}

	counts := make(map[prop.Name]int, len(c.props))
	for _, p := range c.props {
		counts[p.Name().CanonicName()]++
	}
	for name, cnt := range counts {
		if name == prop.Version {
			continue // reported above
		}
		if cnt > 1 && name.Cardinality() != prop.Many {
			errs = append(errs, NewCardinalityViolationError(name))
		}
	}

	for _, p := range c.props {
		name := p.Name().CanonicName()
		for k := range p.Params().All() {
			if !name.AllowsParam(prop.ParamName(k)) {
				errs = append(errs, errorutil.NewWrapperError(ErrParamNotAllowed, "%s on %s", k, name))
			}
		}
	}

	return errtrace.Wrap(errorutil.JoinPrefix("invalid vCard", errs...))
}

// IsValid reports whether Validate finds no violations.
func (c *Card) IsValid() bool { return c.Validate() == nil }
