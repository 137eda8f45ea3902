package reporter_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/fatih/color"
	"github.com/neilotoole/slogt"
	"github.com/stretchr/testify/require"

	"github.com/lenslabs/plint/internal/checks"
	"github.com/lenslabs/plint/internal/reporter"
)

func TestConsoleReporter(t *testing.T) {
	type testCaseT struct {
		description string
		files       map[string]string
		err         string
		output      string
		reports     []reporter.Report
		minSeverity checks.Severity
	}

	testCases := []testCaseT{
		{
			description: "no reports",
			minSeverity: checks.Information,
			output:      "",
		},
		{
			description: "fatal problem with a source excerpt",
			files: map[string]string{
				"broken.yml": "- panel: cpu\n  viz: line\n  promql: sum(\n",
			},
			minSeverity: checks.Information,
			reports: []reporter.Report{
				{
					Path:          "broken.yml",
					ModifiedLines: []int{1, 2, 3},
					Problem: checks.Problem{
						Fragment: "sum(",
						Lines:    []int{3},
						Reporter: "promql/syntax",
						Text:     "syntax error: no arguments for aggregate expression provided",
						Severity: checks.Fatal,
					},
				},
			},
			output: "broken.yml:3 Fatal: syntax error: no arguments for aggregate expression provided (promql/syntax)\n 3 |   promql: sum(\n\n",
		},
		{
			description: "problems below minimum severity are skipped",
			files: map[string]string{
				"panels.yml": "- panel: cpu\n  viz: line\n  promql: up\n",
			},
			minSeverity: checks.Bug,
			reports: []reporter.Report{
				{
					Path:          "panels.yml",
					ModifiedLines: []int{1, 2, 3},
					Problem: checks.Problem{
						Fragment: "up",
						Lines:    []int{3},
						Reporter: "promql/labels",
						Text:     "job label is required on all selectors",
						Severity: checks.Warning,
					},
				},
			},
			output: "",
		},
		{
			description: "problems on unmodified lines are skipped",
			files: map[string]string{
				"panels.yml": "- panel: cpu\n  viz: line\n  promql: up\n",
			},
			minSeverity: checks.Information,
			reports: []reporter.Report{
				{
					Path:          "panels.yml",
					ModifiedLines: []int{1},
					Problem: checks.Problem{
						Fragment: "up",
						Lines:    []int{3},
						Reporter: "promql/labels",
						Text:     "job label is required on all selectors",
						Severity: checks.Warning,
					},
				},
			},
			output: "",
		},
		{
			description: "gaps in the excerpt use placeholder lines",
			files: map[string]string{
				"gaps.yml": "- panel: cpu\n  viz: line\n  promql: |\n    sum(errors)\n    without(job)\n",
			},
			minSeverity: checks.Information,
			reports: []reporter.Report{
				{
					Path:          "gaps.yml",
					ModifiedLines: []int{1, 2, 3, 4, 5},
					Problem: checks.Problem{
						Fragment: "cpu",
						Lines:    []int{1, 5},
						Reporter: "mock",
						Text:     "mock text",
						Severity: checks.Warning,
					},
				},
			},
			output: "gaps.yml:1-5 Warning: mock text (mock)\n 1 | - panel: cpu\n .\n 5 |     without(job)\n\n",
		},
		{
			description: "reports are grouped by path",
			files: map[string]string{
				"a.yml": "- panel: aa\n  viz: line\n  promql: up\n",
				"b.yml": "- panel: bb\n  viz: line\n  promql: up\n",
			},
			minSeverity: checks.Information,
			reports: []reporter.Report{
				{
					Path:          "b.yml",
					ModifiedLines: []int{1, 2, 3},
					Problem: checks.Problem{
						Fragment: "up",
						Lines:    []int{3},
						Reporter: "mock",
						Text:     "mock text",
						Severity: checks.Bug,
					},
				},
				{
					Path:          "a.yml",
					ModifiedLines: []int{1, 2, 3},
					Problem: checks.Problem{
						Fragment: "up",
						Lines:    []int{3},
						Reporter: "mock",
						Text:     "mock text",
						Severity: checks.Bug,
					},
				},
			},
			output: "a.yml:3 Bug: mock text (mock)\n 3 |   promql: up\n\nb.yml:3 Bug: mock text (mock)\n 3 |   promql: up\n\n",
		},
		{
			description: "problem lines past the end of the file",
			files: map[string]string{
				"short.yml": "- panel: cpu\n  viz: line\n  promql: up\n",
			},
			minSeverity: checks.Information,
			reports: []reporter.Report{
				{
					Path:          "short.yml",
					ModifiedLines: []int{3},
					Problem: checks.Problem{
						Fragment: "up",
						Lines:    []int{3, 9},
						Reporter: "mock",
						Text:     "mock text",
						Severity: checks.Bug,
					},
				},
			},
			output: "short.yml:3-9 Bug: mock text (mock)\n 3 |   promql: up\n\n",
		},
		{
			description: "missing source file",
			minSeverity: checks.Information,
			reports: []reporter.Report{
				{
					Path:          "missing.yml",
					ModifiedLines: []int{1},
					Problem: checks.Problem{
						Fragment: "up",
						Lines:    []int{1},
						Reporter: "mock",
						Text:     "mock text",
						Severity: checks.Fatal,
					},
				},
			},
			err: "open missing.yml: no such file or directory",
		},
	}

	for i, tc := range testCases {
		t.Run(strconv.Itoa(i+1), func(t *testing.T) {
			slog.SetDefault(slogt.New(t))

			noColor := color.NoColor
			color.NoColor = true
			defer func() { color.NoColor = noColor }()

			cwd, err := os.Getwd()
			require.NoError(t, err)
			require.NoError(t, os.Chdir(t.TempDir()))
			defer func() {
				require.NoError(t, os.Chdir(cwd))
			}()

			for path, content := range tc.files {
				require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
				require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
			}

			out := bytes.NewBuffer(nil)
			cr := reporter.NewConsoleReporter(out, tc.minSeverity)
			err = cr.Submit(reporter.NewSummary(tc.reports))

			if tc.err != "" {
				require.EqualError(t, err, tc.err)
			} else {
				require.NoError(t, err)
				require.Equal(t, tc.output, out.String())
			}
		})
	}
}
