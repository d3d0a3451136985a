package prop

import (
	"io"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/govcard/internal/grammar"
	"github.com/ghettovoice/govcard/internal/ioutil"
	"github.com/ghettovoice/govcard/internal/types"
	"github.com/ghettovoice/govcard/internal/util"
)

// ParamName is a canonical (uppercase) parameter name.
type ParamName string

// Registered parameter names.
const (
	ParamAltID     ParamName = "ALTID"
	ParamCalscale  ParamName = "CALSCALE"
	ParamCC        ParamName = "CC"
	ParamGeo       ParamName = "GEO"
	ParamIndex     ParamName = "INDEX"
	ParamLabel     ParamName = "LABEL"
	ParamLanguage  ParamName = "LANGUAGE"
	ParamLevel     ParamName = "LEVEL"
	ParamMediaType ParamName = "MEDIATYPE"
	ParamPID       ParamName = "PID"
	ParamPref      ParamName = "PREF"
	ParamSortAs    ParamName = "SORT-AS"
	ParamType      ParamName = "TYPE"
	ParamTZ        ParamName = "TZ"
	ParamValue     ParamName = "VALUE"
)

var paramNames = map[ParamName]struct{}{
	ParamAltID: {}, ParamCalscale: {}, ParamCC: {}, ParamGeo: {},
	ParamIndex: {}, ParamLabel: {}, ParamLanguage: {}, ParamLevel: {},
	ParamMediaType: {}, ParamPID: {}, ParamPref: {}, ParamSortAs: {},
	ParamType: {}, ParamTZ: {}, ParamValue: {},
}

// CanonicName returns the canonical uppercase form of the name.
func (pn ParamName) CanonicName() ParamName { return util.UCase(pn) }

// IsExtension reports whether the name is not registered.
func (pn ParamName) IsExtension() bool {
	_, ok := paramNames[pn.CanonicName()]
	return !ok
}

// Params is an ordered property parameter list.
// Keys are canonical uppercase parameter names, insertion order is
// preserved for stable rendering.
type Params struct {
	types.Values
}

// NewParams creates an empty parameter list.
func NewParams() *Params { return &Params{} }

// RenderTo writes the parameters to w as ";KEY=value" pairs in
// insertion order. Consecutive values of the same parameter are
// joined with commas into a single pair. Values containing ':', ';'
// or ',' are quoted.
func (ps *Params) RenderTo(w io.Writer) (num int, err error) {
	if ps == nil {
		return 0, nil
	}
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	prev := ""
	for k, v := range ps.All() {
		if prev != "" && util.EqFold(k, prev) {
			cw.WriteString(",") //nolint:errcheck
		} else {
			cw.WriteString(";")                   //nolint:errcheck
			cw.WriteString(string(util.UCase(k))) //nolint:errcheck
			cw.WriteString("=")                   //nolint:errcheck
		}
		if strings.ContainsAny(v, ":;,") {
			cw.WriteString("\"" + v + "\"") //nolint:errcheck
		} else {
			cw.WriteString(v) //nolint:errcheck
		}
		prev = k
	}
	return errtrace.Wrap2(cw.Result())
}

// Render returns the rendered parameter list.
func (ps *Params) Render() string {
	if ps == nil {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	ps.RenderTo(sb) //nolint:errcheck
	return sb.String()
}

// String returns the string representation of the parameters.
func (ps *Params) String() string { return ps.Render() }

// Clone returns a deep copy of the parameter list.
func (ps *Params) Clone() *Params {
	if ps == nil {
		return nil
	}
	return &Params{Values: *ps.Values.Clone()}
}

// Equal reports whether both lists hold the same pairs in order.
func (ps *Params) Equal(other *Params) bool {
	if ps == nil || other == nil {
		return ps.Len() == other.Len()
	}
	return ps.Values.Equal(&other.Values)
}

// Len returns the number of parameters.
func (ps *Params) Len() int {
	if ps == nil {
		return 0
	}
	return ps.Values.Len()
}

// Types returns all TYPE parameter values.
func (ps *Params) Types() []string {
	if ps == nil {
		return nil
	}
	return ps.Get(string(ParamType))
}

// ValueKind returns the explicit VALUE parameter, if any.
func (ps *Params) ValueKind() (string, bool) {
	if ps == nil {
		return "", false
	}
	return ps.First(string(ParamValue))
}

// IsValid checks whether all parameter values are legal.
func (ps *Params) IsValid() bool {
	if ps == nil {
		return true
	}
	for k, v := range ps.All() {
		if !grammar.IsName(k) {
			return false
		}
		for i := 0; i < len(v); i++ {
			if !grammar.IsQSafeChar(v[i]) {
				return false
			}
		}
	}
	return true
}
