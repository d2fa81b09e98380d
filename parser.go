// Package odataquery parses OData system query options ($filter, $orderby,
// $select, $top and $skip) into backend-agnostic expression trees.
//
// Values taken from the query never appear in the textual form of a tree; they
// are bound to placeholder nodes, so a backend can translate a tree into a
// parameterized statement without any escaping of its own.
package odataquery

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/nlstn/go-odata-query/internal/observability"
	"github.com/nlstn/go-odata-query/internal/query"
	"go.opentelemetry.io/otel/trace"
)

// Parser parses query options. A Parser is immutable after New returns and safe
// for concurrent use; no state is kept between calls.
type Parser struct {
	// fields resolves logical field names to column names
	fields query.FieldMap
	// logger receives a debug record for every rejected option
	logger *slog.Logger
	// obs holds the tracer and metric instruments, no-ops unless configured
	obs *observability.Config
	// maxLength bounds the byte length of each option; zero disables the check
	maxLength int
}

// New creates a Parser.
func New(opts ...Option) *Parser {
	p := &Parser{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.obs == nil {
		p.obs = observability.NewConfig()
	}
	return p
}

// Filter parses a $filter expression and lowers it to an expression tree.
func (p *Parser) Filter(input string) (*Node, error) {
	ctx, start := context.Background(), time.Now()
	node, err := p.filter(input)
	return node, p.observe(ctx, observability.OptionFilter, start, err)
}

// FilterAST parses a $filter expression into its syntax tree without lowering it.
func (p *Parser) FilterAST(input string) (ASTNode, error) {
	ctx, start := context.Background(), time.Now()
	if err := p.checkLength(observability.OptionFilter, input); err != nil {
		return nil, p.observe(ctx, observability.OptionFilter, start, err)
	}
	ast, err := query.ParseFilterAST(input)
	return ast, p.observe(ctx, observability.OptionFilter, start, err)
}

// OrderBy parses an $orderby expression into one Asc or Desc node per clause.
func (p *Parser) OrderBy(input string) ([]*Node, error) {
	ctx, start := context.Background(), time.Now()
	clauses, err := p.orderByClauses(input)
	if err != nil {
		return nil, p.observe(ctx, observability.OptionOrderBy, start, err)
	}
	nodes := query.LowerOrderBy(clauses, p.fields)
	return nodes, p.observe(ctx, observability.OptionOrderBy, start, nil)
}

// OrderByClauses parses an $orderby expression without lowering it.
func (p *Parser) OrderByClauses(input string) ([]OrderByClause, error) {
	ctx, start := context.Background(), time.Now()
	clauses, err := p.orderByClauses(input)
	return clauses, p.observe(ctx, observability.OptionOrderBy, start, err)
}

// Select parses a $select list into its field names, in order.
func (p *Parser) Select(input string) ([]string, error) {
	ctx, start := context.Background(), time.Now()
	if err := p.checkLength(observability.OptionSelect, input); err != nil {
		return nil, p.observe(ctx, observability.OptionSelect, start, err)
	}
	fields, err := query.ParseSelect(input)
	return fields, p.observe(ctx, observability.OptionSelect, start, err)
}

// TopSkip validates pagination parameters and returns a Limit node, or nil when
// neither a top nor a non-zero skip was given.
func (p *Parser) TopSkip(params TopSkip) (*Node, error) {
	ctx, start := context.Background(), time.Now()
	node, err := query.ParseTopSkip(params)
	return node, p.observe(ctx, observability.OptionPage, start, err)
}

// TopSkipValues is TopSkip for raw "$top" and "$skip" values.
func (p *Parser) TopSkipValues(values map[string]string) (*Node, error) {
	ctx, start := context.Background(), time.Now()
	for _, key := range []string{"$top", "$skip"} {
		if err := p.checkLength(key, values[key]); err != nil {
			return nil, p.observe(ctx, observability.OptionPage, start, err)
		}
	}
	node, err := query.ParseTopSkipValues(values)
	return node, p.observe(ctx, observability.OptionPage, start, err)
}

// TopSkipQuery is TopSkip for a full query string such as "?$top=10&$skip=20".
func (p *Parser) TopSkipQuery(rawQuery string) (*Node, error) {
	ctx, start := context.Background(), time.Now()
	if err := p.checkLength(observability.OptionPage, rawQuery); err != nil {
		return nil, p.observe(ctx, observability.OptionPage, start, err)
	}
	node, err := query.ParseTopSkipQuery(rawQuery)
	return node, p.observe(ctx, observability.OptionPage, start, err)
}

// Parse parses every supported option present in values. An empty $filter or
// $orderby counts as absent; a present but blank $select is rejected.
//
// The call runs inside an "odata.query.parse" span and, when ctx carries a
// Server-Timing header, is reported as the "parse" metric.
func (p *Parser) Parse(ctx context.Context, values url.Values) (*Query, error) {
	timing := observability.StartServerTimingWithDesc(ctx, "parse", "query option parsing")
	defer timing.Stop()

	tracer := p.obs.Tracer()
	ctx, span := tracer.StartParse(ctx, observability.OptionAll)
	defer span.End()

	if p.obs.QueryOptionTracingEnabled() {
		tracer.AddQueryOptions(span,
			values.Get("$filter"),
			values.Get("$select"),
			values.Get("$orderby"),
			values.Get("$top"),
			values.Get("$skip"),
		)
	}

	start := time.Now()
	for _, key := range []string{"$filter", "$orderby", "$select", "$top", "$skip"} {
		if err := p.checkLength(key, values.Get(key)); err != nil {
			return nil, p.fail(ctx, span, start, err)
		}
	}

	options, err := query.ParseQueryOptions(values, p.fields)
	if err != nil {
		return nil, p.fail(ctx, span, start, err)
	}

	p.obs.Metrics().RecordParse(ctx, observability.OptionAll, time.Since(start), "")
	return options, nil
}

func (p *Parser) fail(ctx context.Context, span trace.Span, start time.Time, err error) error {
	p.obs.Tracer().RecordError(span, err)
	return p.observe(ctx, observability.OptionAll, start, err)
}

func (p *Parser) filter(input string) (*Node, error) {
	if err := p.checkLength(observability.OptionFilter, input); err != nil {
		return nil, err
	}
	return query.ParseFilter(input, p.fields)
}

func (p *Parser) orderByClauses(input string) ([]OrderByClause, error) {
	if err := p.checkLength(observability.OptionOrderBy, input); err != nil {
		return nil, err
	}
	return query.ParseOrderBy(input)
}

func (p *Parser) checkLength(option, input string) error {
	if p.maxLength > 0 && len(input) > p.maxLength {
		return fmt.Errorf("%w: %s has %d bytes, limit is %d", ErrQueryTooLong, option, len(input), p.maxLength)
	}
	return nil
}

// observe records metrics for one parse and logs a rejection. It returns err unchanged.
func (p *Parser) observe(ctx context.Context, option string, start time.Time, err error) error {
	var kind string
	if err != nil {
		kind = string(Code(err))
		observability.LoggerWithTrace(ctx, p.logger).Debug("query option rejected",
			slog.String(observability.LogFieldOption, option),
			slog.String(observability.LogFieldError, err.Error()),
		)
	}
	p.obs.Metrics().RecordParse(ctx, option, time.Since(start), kind)
	return err
}
