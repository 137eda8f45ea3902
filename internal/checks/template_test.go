package checks_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lenslabs/plint/internal/checks"
	"github.com/lenslabs/plint/internal/parser"
)

func mustParsePanel(t *testing.T, content string) parser.Panel {
	t.Helper()
	panels, err := parser.NewParser().Parse([]byte(content))
	require.NoError(t, err)
	require.Len(t, panels, 1)
	return panels[0]
}

func TestTemplatedRegexpExpand(t *testing.T) {
	panel := mustParsePanel(t, "- panel: up\n  viz: stat\n  promql: up == 0\n")

	type testCaseT struct {
		input    string
		expanded string
		matches  []string
		misses   []string
	}

	testCases := []testCaseT{
		{
			input:    "up.*",
			expanded: "^up.*$",
			matches:  []string{"up == 0", "up"},
			misses:   []string{"summed up"},
		},
		{
			input:    "{{ $panel }} == .+",
			expanded: "^up == .+$",
			matches:  []string{"up == 0"},
			misses:   []string{"down == 0"},
		},
		{
			input:    "{{ $panel }}/{{ $viz }}/{{ $query }}",
			expanded: "^up/stat/up == 0$",
			matches:  []string{"up/stat/up == 0"},
			misses:   []string{"up/line/up == 0"},
		},
	}

	for i, tc := range testCases {
		t.Run(strconv.Itoa(i+1), func(t *testing.T) {
			tr, err := checks.NewTemplatedRegexp(tc.input)
			require.NoError(t, err)

			re, err := tr.Expand(panel)
			require.NoError(t, err)
			require.Equal(t, tc.expanded, re.String())

			for _, s := range tc.matches {
				require.True(t, re.MatchString(s), "expected %q to match %q", re, s)
			}
			for _, s := range tc.misses {
				require.False(t, re.MatchString(s), "expected %q to not match %q", re, s)
			}
		})
	}
}

func TestTemplatedRegexpRaw(t *testing.T) {
	panel := mustParsePanel(t, "- panel: up\n  viz: stat\n  promql: up == 0\n")

	tr, err := checks.NewRawTemplatedRegexp("offset")
	require.NoError(t, err)

	re, err := tr.Expand(panel)
	require.NoError(t, err)
	require.Equal(t, "offset", re.String())
	require.True(t, re.MatchString("up offset 10m"))
}

func TestTemplatedRegexpErrors(t *testing.T) {
	type testCaseT struct {
		input string
		err   string
	}

	testCases := []testCaseT{
		{
			input: "f[oo",
			err:   "missing closing ]",
		},
		{
			input: "{{ $panel }",
			err:   "unexpected",
		},
		{
			input: "{{ $bogus }}.+",
			err:   "undefined variable",
		},
	}

	for i, tc := range testCases {
		t.Run(strconv.Itoa(i+1), func(t *testing.T) {
			tr, err := checks.NewTemplatedRegexp(tc.input)
			require.Nil(t, tr)
			require.ErrorContains(t, err, tc.err)
		})
	}
}
