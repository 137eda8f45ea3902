package checks_test

import (
	"testing"

	"github.com/lenslabs/plint/internal/checks"
)

func TestSQLAliasCheck(t *testing.T) {
	testCases := []checkTest{
		{
			description: "promql panels are ignored",
			content:     "- panel: cpu\n  viz: line\n  promql: sum(rate(node_cpu_seconds_total[5m]))\n",
			checker:     checks.NewSQLAliasCheck(),
		},
		{
			description: "table panels are ignored",
			content:     "- panel: errors\n  viz: table\n  sql: SELECT count(*) FROM errors\n",
			checker:     checks.NewSQLAliasCheck(),
		},
		{
			description: "unparsable queries are ignored",
			content:     "- panel: errors\n  viz: line\n  sql: SELEC 1\n",
			checker:     checks.NewSQLAliasCheck(),
		},
		{
			description: "bare column references",
			content:     "- panel: errors\n  viz: line\n  sql: SELECT ts, code FROM errors\n",
			checker:     checks.NewSQLAliasCheck(),
		},
		{
			description: "all columns aliased",
			content:     "- panel: errors\n  viz: line\n  sql: SELECT count(*) AS total, max(ts) AS last_seen FROM errors\n",
			checker:     checks.NewSQLAliasCheck(),
		},
		{
			description: "aggregation without an alias",
			content:     "- panel: errors\n  viz: line\n  sql: SELECT count(*) FROM errors\n",
			checker:     checks.NewSQLAliasCheck(),
			problems: []checks.Problem{
				{
					Fragment: "SELECT count(*) FROM errors",
					Lines:    []int{3},
					Reporter: "sql/alias",
					Text:     "every selected column must have an alias when charted on a line panel",
					Severity: checks.Bug,
				},
			},
		},
		{
			description: "mixed aliased and bare expressions",
			content:     "- panel: errors\n  viz: stat\n  sql: SELECT count(*) AS total, max(ts) FROM errors\n",
			checker:     checks.NewSQLAliasCheck(),
			problems: []checks.Problem{
				{
					Fragment: "SELECT count(*) AS total, max(ts) FROM errors",
					Lines:    []int{3},
					Reporter: "sql/alias",
					Text:     "every selected column must have an alias when charted on a stat panel",
					Severity: checks.Bug,
				},
			},
		},
		{
			description: "union branches need aliases on bare columns",
			content:     "- panel: errors\n  viz: pie\n  sql: SELECT code AS c FROM errors UNION SELECT code FROM warnings\n",
			checker:     checks.NewSQLAliasCheck(),
			problems: []checks.Problem{
				{
					Fragment: "SELECT code AS c FROM errors UNION SELECT code FROM warnings",
					Lines:    []int{3},
					Reporter: "sql/alias",
					Text:     "every selected column must have an alias when charted on a pie panel",
					Severity: checks.Bug,
				},
			},
		},
		{
			description: "union with aliases on every branch",
			content:     "- panel: errors\n  viz: pie\n  sql: SELECT code AS c FROM errors UNION SELECT code AS c FROM warnings\n",
			checker:     checks.NewSQLAliasCheck(),
		},
	}
	runTests(t, testCases)
}
