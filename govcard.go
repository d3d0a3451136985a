// Package govcard implements an RFC 6350 (vCard 4.0) engine:
// parsing, validation, mutation and serialization of vCards.
//
// Parsing and validation are separate passes: [ParseDocument],
// [ParseCard] and [ParseCards] build cards without judging them,
// [Card.Validate] reports every structural violation at once.
// Properties carry stable identities, and the only way to change an
// existing property is a full re-parse through [Card.ReplaceProperty].
package govcard

//go:generate go tool errtrace -w .

import (
	"io"

	"braces.dev/errtrace"

	"github.com/ghettovoice/govcard/internal/ioutil"
	"github.com/ghettovoice/govcard/internal/util"
)

// RenderTo writes the given cards to w as one document.
func RenderTo(w io.Writer, cards ...*Card) (num int, err error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	for _, c := range cards {
		cw.Call(c.RenderTo)
	}
	return errtrace.Wrap2(cw.Result())
}

// Render returns the given cards as one document.
func Render(cards ...*Card) string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	RenderTo(sb, cards...) //nolint:errcheck
	return sb.String()
}
