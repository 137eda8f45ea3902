package promql

import (
	"regexp"
)

var (
	metricNameRe = regexp.MustCompile(`(\w+)\{`)
	labelBlockRe = regexp.MustCompile(`\{(.*?)\}`)
	labelPairRe  = regexp.MustCompile(`(\w+)="([^"]*)"`)
)

// LabelBlock describes the first {...} block found in a query.
// Start is the offset of the first character inside the braces and End
// is the offset of the closing brace, so query[Start:End] is the raw
// block content. Both are zero when Found is false.
type LabelBlock struct {
	Pairs map[string]string
	Start int
	End   int
	Found bool
}

// QueryMeta is the result of scanning a query with ParseQuery.
// Metric is empty when the query has no `name{` pattern in it.
type QueryMeta struct {
	Metric string
	Labels LabelBlock
}

// ParseQuery scans a PromQL-ish query string for its metric name, the
// first label block and any key="value" pairs inside that block.
//
// This is text surgery, not grammar parsing. Queries being edited in a
// query box are rarely valid PromQL so we cannot use the real parser
// here; editors rely on the exact offsets this produces, including on
// malformed input. Known limits that callers depend on:
//   - only the first {...} block is inspected, later blocks are ignored,
//   - the block match is non-greedy and knows nothing about quoting, so
//     a literal } inside a quoted value truncates the detected block,
//   - pairs using operators other than = or missing quotes are skipped.
func ParseQuery(query string) QueryMeta {
	meta := QueryMeta{
		Labels: LabelBlock{Pairs: map[string]string{}},
	}

	if m := metricNameRe.FindStringSubmatch(query); m != nil {
		meta.Metric = m[1]
	}

	idx := labelBlockRe.FindStringSubmatchIndex(query)
	if idx == nil {
		return meta
	}

	meta.Labels.Found = true
	meta.Labels.Start = idx[2]
	meta.Labels.End = idx[3]

	for _, pair := range labelPairRe.FindAllStringSubmatch(query[idx[2]:idx[3]], -1) {
		meta.Labels.Pairs[pair[1]] = pair[2]
	}

	return meta
}
