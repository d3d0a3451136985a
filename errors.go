package govcard

import (
	"github.com/ghettovoice/govcard/internal/errorutil"
	"github.com/ghettovoice/govcard/prop"
	"github.com/ghettovoice/govcard/value"
)

// Document and card level errors.
const (
	// ErrMalformedDocument marks structural damage: END without BEGIN,
	// BEGIN inside an open block, a missing END at end of input, or
	// junk between blocks.
	ErrMalformedDocument errorutil.Error = "malformed document"
	// ErrMissingVersion is reported when the VERSION property is
	// missing or not the first property of a card.
	ErrMissingVersion errorutil.Error = "missing VERSION property"
	// ErrUnsupportedVersion is reported for a VERSION other than 4.0.
	ErrUnsupportedVersion errorutil.Error = "unsupported vCard version"
	// ErrMissingFn is reported when a card has no FN property.
	ErrMissingFn errorutil.Error = "missing FN property"
	// ErrCardinalityViolation is reported when a property appears more
	// often than its cardinality allows.
	ErrCardinalityViolation errorutil.Error = "cardinality violation"
	// ErrParamNotAllowed is reported for a registered parameter on a
	// property that does not admit it.
	ErrParamNotAllowed errorutil.Error = "parameter not allowed"
	// ErrNotFound is returned when no property carries the given id.
	ErrNotFound errorutil.Error = "property not found"
)

// Property level errors, re-exported for convenience.
const (
	ErrMalformedLine    = prop.ErrMalformedLine
	ErrInvalidValue     = value.ErrInvalidValue
	ErrUnknownValueType = value.ErrUnknownValueType
)

// NewCardinalityViolationError wraps [ErrCardinalityViolation] with the
// property name.
func NewCardinalityViolationError(name prop.Name) error {
	return errorutil.NewWrapperError(ErrCardinalityViolation, "%s", name) //errtrace:skip
}
