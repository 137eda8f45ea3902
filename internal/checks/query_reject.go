package checks

import (
	"context"
	"errors"
	"fmt"

	"github.com/lenslabs/plint/internal/parser"
)

const RejectCheckName = "query/reject"

type RejectSettings struct {
	Deny     []string `hcl:"deny" json:"deny"`
	Severity string   `hcl:"severity,optional" json:"severity,omitempty"`
}

func (s *RejectSettings) Validate() error {
	if len(s.Deny) == 0 {
		return errors.New("deny cannot be empty")
	}
	for _, pattern := range s.Deny {
		if _, err := NewTemplatedRegexp(pattern); err != nil {
			return err
		}
	}
	if s.Severity != "" {
		if _, err := ParseSeverity(s.Severity); err != nil {
			return err
		}
	}
	return nil
}

func (s RejectSettings) GetSeverity(fallback Severity) Severity {
	if s.Severity != "" {
		sev, _ := ParseSeverity(s.Severity)
		return sev
	}
	return fallback
}

func NewRejectCheck(re *TemplatedRegexp, s Severity) RejectCheck {
	return RejectCheck{
		re:       re,
		severity: s,
		instance: fmt.Sprintf("%s(query=~'%s')", RejectCheckName, re.anchored),
	}
}

// RejectCheck reports any query matching the configured regexp,
// regardless of the language the query is written in.
type RejectCheck struct {
	re       *TemplatedRegexp
	instance string
	severity Severity
}

func (c RejectCheck) String() string {
	return c.instance
}

func (c RejectCheck) Reporter() string {
	return RejectCheckName
}

func (c RejectCheck) Check(_ context.Context, _ string, panel parser.Panel) (problems []Problem) {
	query := panel.Query()
	if query == "" {
		return nil
	}

	if c.re.MustExpand(panel).MatchString(query) {
		var lines []int
		switch {
		case panel.PromQL != nil:
			lines = panel.PromQL.Value.Position.Lines
		case panel.SQL != nil:
			lines = panel.SQL.Value.Position.Lines
		}
		problems = append(problems, Problem{
			Fragment: query,
			Lines:    lines,
			Reporter: c.Reporter(),
			Text:     fmt.Sprintf("query is not allowed to match %q", c.re.anchored),
			Severity: c.severity,
		})
	}
	return problems
}
