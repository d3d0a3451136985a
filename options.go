package govcard

import (
	"log/slog"

	"github.com/ghettovoice/govcard/internal/log"
	"github.com/ghettovoice/govcard/prop"
)

// ParseOptions configure card and document parsing.
type ParseOptions struct {
	// Lenient makes the parser skip malformed property lines instead
	// of failing, recording them on the card.
	Lenient bool
	// Logger receives debug records for skipped lines.
	Logger *slog.Logger
	// IDGen produces property identifiers.
	IDGen prop.IDGen
}

// ParseOption applies a single parse setting.
type ParseOption interface {
	ApplyParse(opts *ParseOptions)
}

func newParseOptions(opts []ParseOption) *ParseOptions {
	o := &ParseOptions{
		Logger: log.Noop,
		IDGen:  prop.DefaultIDGen,
	}
	for _, opt := range opts {
		opt.ApplyParse(o)
	}
	if o.Logger == nil {
		o.Logger = log.Noop
	}
	if o.IDGen == nil {
		o.IDGen = prop.DefaultIDGen
	}
	return o
}

type withLenient struct{}

func (withLenient) ApplyParse(opts *ParseOptions) { opts.Lenient = true }

// WithLenient enables lenient parsing.
func WithLenient() ParseOption { return withLenient{} }

type withLogger struct {
	logger *slog.Logger
}

func (o withLogger) ApplyParse(opts *ParseOptions) { opts.Logger = o.logger }

// WithLogger sets the parse logger.
func WithLogger(logger *slog.Logger) ParseOption { return withLogger{logger} }

type withIDGen struct {
	gen prop.IDGen
}

func (o withIDGen) ApplyParse(opts *ParseOptions) { opts.IDGen = o.gen }

// WithIDGen sets the property identifier generator.
func WithIDGen(gen prop.IDGen) ParseOption { return withIDGen{gen} }
