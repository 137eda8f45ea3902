package promql

import (
	"github.com/prometheus/prometheus/model/labels"
	promParser "github.com/prometheus/prometheus/promql/parser"
)

// InjectMatchers appends the given matchers to every vector selector in
// the query and returns the rewritten expression. Unlike AddLabel this
// goes through the real PromQL parser, so it covers every selector in
// binary expressions and nested calls, but it fails on queries that
// don't parse. The output is the parser's formatting of the expression,
// not the original text.
func InjectMatchers(query string, matchers ...*labels.Matcher) (string, error) {
	expr, err := promParser.ParseExpr(query)
	if err != nil {
		return "", err
	}

	promParser.Inspect(expr, func(node promParser.Node, _ []promParser.Node) error {
		if vs, ok := node.(*promParser.VectorSelector); ok {
			vs.LabelMatchers = append(vs.LabelMatchers, matchers...)
		}
		return nil
	})

	return expr.String(), nil
}
