package govcard

import (
	"strings"

	"braces.dev/errtrace"
	"github.com/qmuntal/stateless"

	"github.com/ghettovoice/govcard/internal/constraints"
	"github.com/ghettovoice/govcard/internal/errorutil"
	"github.com/ghettovoice/govcard/internal/grammar"
	"github.com/ghettovoice/govcard/internal/log"
	"github.com/ghettovoice/govcard/internal/util"
)

// BlockResult is the outcome of one BEGIN/END block of a document.
type BlockResult struct {
	Card *Card
	Err  error
}

const (
	stateIdle = "idle"
	stateOpen = "open"

	trigBegin = "begin"
	trigEnd   = "end"
)

// newBlockMachine builds the BEGIN/END block tracking state machine.
func newBlockMachine() *stateless.StateMachine {
	sm := stateless.NewStateMachine(stateIdle)
	sm.Configure(stateIdle).Permit(trigBegin, stateOpen)
	sm.Configure(stateOpen).Permit(trigEnd, stateIdle)
	return sm
}

// ParseDocument scans src for BEGIN:VCARD .. END:VCARD blocks and
// parses each block independently: one malformed block never hides
// its neighbors. The returned error is [ErrMalformedDocument] when
// the block structure itself is damaged.
func ParseDocument[T constraints.Byteseq](src T, opts ...ParseOption) ([]BlockResult, error) {
	o := newParseOptions(opts)
	sm := newBlockMachine()

	eol := "\n"
	if strings.Contains(string(src), "\r\n") {
		eol = "\r\n"
	}

	var (
		res     []BlockResult
		blk     []grammar.Line
		docErrs []error
	)
	for _, ln := range grammar.SplitLines(src) {
		txt := ln.Text
		if util.TrimSP(txt) == "" {
			continue
		}
		switch {
		case util.EqFold(txt, "BEGIN:VCARD"):
			if err := sm.Fire(trigBegin); err != nil {
				docErrs = append(docErrs, newDocErr(ln.Num, "BEGIN inside an open block"))
				blk = blk[:0] // drop the unterminated block, start over
			} else {
				blk = nil
			}
		case util.EqFold(txt, "END:VCARD"):
			if err := sm.Fire(trigEnd); err != nil {
				docErrs = append(docErrs, newDocErr(ln.Num, "END without BEGIN"))
				continue
			}
			res = append(res, buildCard(blk, eol, o))
			blk = nil
		default:
			if sm.MustState() != stateOpen {
				docErrs = append(docErrs, newDocErr(ln.Num, "content outside of a vCard block"))
				continue
			}
			blk = append(blk, ln)
		}
	}
	if sm.MustState() == stateOpen {
		docErrs = append(docErrs, newDocErr(0, "missing END:VCARD at end of input"))
	}
	return res, errtrace.Wrap(errorutil.Join(docErrs...))
}

func newDocErr(line int, msg string) error {
	if line <= 0 {
		return errorutil.NewWrapperError(ErrMalformedDocument, msg) //errtrace:skip
	}
	return errorutil.NewWrapperError(ErrMalformedDocument, "line %d: %s", line, msg) //errtrace:skip
}

// buildCard parses the property lines of one block.
func buildCard(blk []grammar.Line, eol string, o *ParseOptions) BlockResult {
	c := &Card{eol: eol, gen: o.IDGen, log: o.Logger}
	for _, ln := range blk {
		if _, err := c.AddProperty(ln.Text); err != nil {
			err = errorutil.NewWrapperError(err, "line %d", ln.Num)
			if !o.Lenient {
				return BlockResult{Err: err}
			}
			c.skipped = append(c.skipped, SkippedLine{Num: ln.Num, Text: ln.Text, Err: err})
			c.log.Debug("skipping malformed property line",
				"line", ln.Num, "text", log.StringValue(ln.Text), "error", err)
		}
	}
	return BlockResult{Card: c}
}

// ParseCard parses a single BEGIN/END block.
func ParseCard[T constraints.Byteseq](src T, opts ...ParseOption) (*Card, error) {
	res, err := ParseDocument(src, opts...)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	if len(res) != 1 {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(
			ErrMalformedDocument, "expected a single vCard, got %d", len(res)))
	}
	return res[0].Card, errtrace.Wrap(res[0].Err)
}

// ParseCards parses every block of a document, failing on the first
// damaged or malformed block.
func ParseCards[T constraints.Byteseq](src T, opts ...ParseOption) ([]*Card, error) {
	res, err := ParseDocument(src, opts...)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	cards := make([]*Card, 0, len(res))
	for _, r := range res {
		if r.Err != nil {
			return nil, errtrace.Wrap(r.Err)
		}
		cards = append(cards, r.Card)
	}
	return cards, nil
}
