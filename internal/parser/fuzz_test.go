package parser_test

import (
	"testing"

	"github.com/lenslabs/plint/internal/parser"
)

func FuzzParse(f *testing.F) {
	testcases := []string{
		`# head comment
- panel: CPU usage # panel comment
  viz: line
  promql: rate(node_cpu_seconds_total[5m]) # expr comment
# foot comment
`,
		`
- panel: foo
  viz: table
  sql: SELECT 1 AS one
  sql: SELECT 2 AS two
`,
		`- panel: name
viz: line
promql: sum(foo)
`,
		`
dashboard: test
rows:
  - name: first
    panels:
      - panel: name
        viz: stat
        promql: sum(foo)
`,
		`- panel: Down
  viz: line
  promql: |
    up == 0
- panel: >
    folded
    title
  viz: table
  sql: |-
    SELECT errors AS e
    FROM logs
`,
		`- panel: Foo
viz:
  (
	xxx
	-
	yyy
  ) * bar > 0
promql: 30m
`,
		`
# plint ignore/begin
{%- set foo = 1 %}
{% set bar = 2 -%}
{# comment #}
{#
  comment
#}
# plint ignore/end

- panel: colo_job:up:count
  viz: line
  promql: sum(foo) without(job)

- panel: invalid
  viz: line
  promql: sum(foo) by ())

# plint ignore/begin
- panel: colo_job:down:count
  viz: line
  promql: up == {{ foo }}
# plint ignore/end

- panel: multiline
  viz: area
  promql: |
    sum(
      multiline
    ) without(job, instance)

- panel: multiline2
  viz: bar
  promql: >-
    sum(
      multiline2
    ) without(job, instance)
`,
		`
- panel: errors
  viz: table
  sql: SELECT count(*) FROM errors UNION SELECT count(*) FROM warnings
- panel: named
  viz: gauge
  sql: SELECT count(*) AS total FROM errors
`,
		`
xxx:
  xxx:
  xxx:

- xx
- yyy
`,
		`- panel: "colo:test1"
  viz: heatmap
  promql: topk(6, sum(rate(edgeworker_subrequest_errorCount{cordon="free"}[5m])) BY (zoneId,job))
- panel: "colo:test2"
  viz: pie
  promql: topk(6, sum(rate(edgeworker_subrequest_errorCount{cordon="free"}[10m])) without (instance))
`,
		`- panel: Always
  viz: line
  promql: up # plint disable promql/labels
- panel: AlwaysIgnored
  viz: stat
  promql: up == 0
  legend: bottom
`,
		`data:
  panels.yml: |
    - panel: Embedded
      viz: stat
      promql: up
`,
		`- panel: Good
viz: line
promql: up == 0

panel: Bad
viz: line
promql: up == 0
`,
		`
- panel: disabled
  viz: line
  promql: sum(errors_total) by ) # plint disable promql/syntax

- panel: active
  viz: line
  promql: sum(errors_total) by )

- panel: disabled
  # plint disable sql/alias
  viz: table
  sql: SELECT count(*) FROM errors
`,
	}
	for _, tc := range testcases {
		f.Add(tc)
	}
	p := parser.NewParser()
	f.Fuzz(func(t *testing.T, s string) {
		t.Logf("Parsing: [%s]\n", s)
		_, _ = p.Parse([]byte(s))
	})
}
