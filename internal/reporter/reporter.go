package reporter

import (
	"sort"
	"time"

	"golang.org/x/exp/slices"

	"github.com/lenslabs/plint/internal/checks"
	"github.com/lenslabs/plint/internal/parser"
)

type Report struct {
	Path          string
	Owner         string
	ModifiedLines []int
	Panel         parser.Panel
	Problem       checks.Problem
}

func (r Report) isEqual(nr Report) bool {
	if nr.Path != r.Path {
		return false
	}
	if nr.Owner != r.Owner {
		return false
	}
	if nr.Panel.Name() != r.Panel.Name() {
		return false
	}
	if !slices.Equal(nr.Problem.Lines, r.Problem.Lines) {
		return false
	}
	if nr.Problem.Reporter != r.Problem.Reporter {
		return false
	}
	if nr.Problem.Text != r.Problem.Text {
		return false
	}
	if nr.Problem.Severity != r.Problem.Severity {
		return false
	}
	return true
}

type Summary struct {
	reports       []Report
	Duration      time.Duration
	TotalEntries  int
	CheckedPanels int64
}

func NewSummary(reports []Report) Summary {
	return Summary{reports: reports}
}

func (s *Summary) Report(reps ...Report) {
	for _, r := range reps {
		if !s.hasReport(r) {
			s.reports = append(s.reports, r)
		}
	}
}

func (s Summary) hasReport(r Report) bool {
	for _, er := range s.reports {
		if er.isEqual(r) {
			return true
		}
	}
	return false
}

func (s *Summary) SortReports() {
	sort.SliceStable(s.reports, func(i, j int) bool {
		if s.reports[i].Path != s.reports[j].Path {
			return s.reports[i].Path < s.reports[j].Path
		}
		if s.reports[i].Problem.Lines[0] != s.reports[j].Problem.Lines[0] {
			return s.reports[i].Problem.Lines[0] < s.reports[j].Problem.Lines[0]
		}
		if s.reports[i].Problem.Reporter != s.reports[j].Problem.Reporter {
			return s.reports[i].Problem.Reporter < s.reports[j].Problem.Reporter
		}
		return s.reports[i].Problem.Text < s.reports[j].Problem.Text
	})
}

func (s Summary) Reports() (reports []Report) {
	return s.reports
}

func (s Summary) HasFatalProblems() bool {
	for _, r := range s.Reports() {
		if r.Problem.Severity == checks.Fatal {
			return true
		}
	}
	return false
}

func (s Summary) CountBySeverity() map[checks.Severity]int {
	m := map[checks.Severity]int{}
	for _, report := range s.Reports() {
		if _, ok := m[report.Problem.Severity]; !ok {
			m[report.Problem.Severity] = 0
		}
		m[report.Problem.Severity]++
	}
	return m
}

type Reporter interface {
	Submit(Summary) error
}

// shouldReport tells if a problem lands on any of the modified lines.
// Fatal problems are always reported, no matter where they are.
func shouldReport(report Report) bool {
	if report.Problem.Severity == checks.Fatal {
		return true
	}

	for _, pl := range report.Problem.Lines {
		if slices.Contains(report.ModifiedLines, pl) {
			return true
		}
	}

	return false
}
