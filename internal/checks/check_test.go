package checks_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lenslabs/plint/internal/checks"
	"github.com/lenslabs/plint/internal/parser"
)

type checkTest struct {
	description string
	content     string
	checker     checks.QueryChecker
	problems    []checks.Problem
}

func runTests(t *testing.T, testCases []checkTest) {
	p := parser.NewParser()
	brokenPanels, err := p.Parse([]byte(`
- panel: promql gone wrong
  viz: line
  promql: 'foo{}{} > 0'

- panel: sql gone wrong
  viz: pie
  sql: 'SELECT FROM'

- promql: orphan
`))
	require.NoError(t, err, "failed to parse broken test panels")

	ctx := context.Background()
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			panels, err := p.Parse([]byte(tc.content))
			require.NoError(t, err, "cannot parse panel content")

			var problems []checks.Problem
			for _, panel := range panels {
				problems = append(problems, tc.checker.Check(ctx, "fake.yml", panel)...)
			}
			require.Equal(t, tc.problems, problems)
		})

		// every check must survive panels with broken or missing queries
		t.Run(tc.description+" (bogus panels)", func(t *testing.T) {
			for _, panel := range brokenPanels {
				_ = tc.checker.Check(ctx, "fake.yml", panel)
			}
		})
	}
}
