package checks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/prometheus/common/model"
	promParser "github.com/prometheus/prometheus/promql/parser"

	"github.com/lenslabs/plint/internal/parser"
	"github.com/lenslabs/plint/internal/promql"
)

const LabelsCheckName = "promql/labels"

type LabelsSettings struct {
	Required []string `hcl:"required" json:"required"`
	Severity string   `hcl:"severity,optional" json:"severity,omitempty"`
}

func (s *LabelsSettings) Validate() error {
	if len(s.Required) == 0 {
		return errors.New("required cannot be empty")
	}
	for _, name := range s.Required {
		if !model.LabelName(name).IsValid() {
			return fmt.Errorf("%q is not a valid label name", name)
		}
	}
	if s.Severity != "" {
		if _, err := ParseSeverity(s.Severity); err != nil {
			return err
		}
	}
	return nil
}

func (s LabelsSettings) GetSeverity(fallback Severity) Severity {
	if s.Severity != "" {
		sev, _ := ParseSeverity(s.Severity)
		return sev
	}
	return fallback
}

func NewLabelsCheck(required []string, severity Severity) LabelsCheck {
	return LabelsCheck{required: required, severity: severity}
}

// LabelsCheck verifies that every metric selector in a PromQL query
// carries a matcher for each of the required labels. Selectors passed
// to absent() or absent_over_time() are exempt, those queries are
// expected to match nothing.
type LabelsCheck struct {
	required []string
	severity Severity
}

func (c LabelsCheck) String() string {
	return fmt.Sprintf("%s(%s)", LabelsCheckName, strings.Join(c.required, ","))
}

func (c LabelsCheck) Reporter() string {
	return LabelsCheckName
}

func (c LabelsCheck) Check(_ context.Context, _ string, panel parser.Panel) (problems []Problem) {
	if panel.PromQL == nil || panel.PromQL.SyntaxError != nil {
		return nil
	}

	for _, selector := range promql.VectorSelectors(panel.PromQL.Query) {
		if promql.InsideCall(selector, "absent", "absent_over_time") {
			continue
		}
		vs, ok := selector.Expr.(*promParser.VectorSelector)
		if !ok {
			continue
		}
		for _, name := range c.required {
			if !hasLabelMatcher(vs, name) {
				problems = append(problems, Problem{
					Fragment: vs.String(),
					Lines:    panel.PromQL.Value.Position.Lines,
					Reporter: c.Reporter(),
					Text:     fmt.Sprintf("%s label is required on all selectors", name),
					Severity: c.severity,
				})
			}
		}
	}
	return problems
}

func hasLabelMatcher(vs *promParser.VectorSelector, name string) bool {
	for _, lm := range vs.LabelMatchers {
		if lm.Name == name {
			return true
		}
	}
	return false
}
