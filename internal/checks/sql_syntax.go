package checks

import (
	"context"
	"fmt"

	"github.com/lenslabs/plint/internal/parser"
)

const SQLSyntaxCheckName = "sql/syntax"

func NewSQLSyntaxCheck() SQLSyntaxCheck {
	return SQLSyntaxCheck{}
}

type SQLSyntaxCheck struct{}

func (c SQLSyntaxCheck) String() string {
	return SQLSyntaxCheckName
}

func (c SQLSyntaxCheck) Reporter() string {
	return SQLSyntaxCheckName
}

func (c SQLSyntaxCheck) Check(_ context.Context, _ string, panel parser.Panel) (problems []Problem) {
	if panel.SQL == nil {
		return nil
	}
	if panel.SQL.SyntaxError != nil {
		problems = append(problems, Problem{
			Fragment: panel.SQL.Value.Value,
			Lines:    panel.SQL.Value.Position.Lines,
			Reporter: c.Reporter(),
			Text:     fmt.Sprintf("syntax error: %s", panel.SQL.SyntaxError),
			Severity: Fatal,
		})
	}
	return problems
}
