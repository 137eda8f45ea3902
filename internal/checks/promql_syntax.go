package checks

import (
	"context"
	"fmt"

	"github.com/lenslabs/plint/internal/parser"
)

const PromQLSyntaxCheckName = "promql/syntax"

func NewPromQLSyntaxCheck() PromQLSyntaxCheck {
	return PromQLSyntaxCheck{}
}

type PromQLSyntaxCheck struct{}

func (c PromQLSyntaxCheck) String() string {
	return PromQLSyntaxCheckName
}

func (c PromQLSyntaxCheck) Reporter() string {
	return PromQLSyntaxCheckName
}

func (c PromQLSyntaxCheck) Check(_ context.Context, _ string, panel parser.Panel) (problems []Problem) {
	if panel.PromQL == nil {
		return nil
	}
	if panel.PromQL.SyntaxError != nil {
		problems = append(problems, Problem{
			Fragment: panel.PromQL.Value.Value,
			Lines:    panel.PromQL.Value.Position.Lines,
			Reporter: c.Reporter(),
			Text:     fmt.Sprintf("syntax error: %s", panel.PromQL.SyntaxError),
			Severity: Fatal,
		})
	}
	return problems
}
