package promql

import (
	"strings"
)

// AddLabel splices a label matcher into a query string and returns the
// new query. With an empty value only the bare label name is inserted,
// which is how "label presence" filters are written. The operator is
// spliced in verbatim, no validation, and no value escaping is done.
//
// The query does not have to be valid PromQL. If it has no label block
// one is appended at the very end of the string, otherwise the matcher
// is inserted just before the closing brace found by ParseQuery, with a
// separating comma when the block already has content that does not end
// with one. The comma rule looks at raw content, so an all-whitespace
// block like { } still gets the comma. Nothing is deduplicated, adding
// the same matcher twice inserts it twice. This function never fails,
// worst case it returns the input with text spliced at an odd offset.
func AddLabel(query, name, value, op string) string {
	label := name
	if value != "" {
		label = name + op + `"` + value + `"`
	}

	meta := ParseQuery(query)
	if !meta.Labels.Found {
		return query + "{" + label + "}"
	}

	content := query[meta.Labels.Start:meta.Labels.End]
	if len(content) > 0 && !strings.HasSuffix(content, ",") {
		label = "," + label
	}

	return query[:meta.Labels.End] + label + query[meta.Labels.End:]
}
