package checks

import (
	"context"
	"fmt"

	"github.com/lenslabs/plint/internal/parser"
)

const SQLAliasCheckName = "sql/alias"

func NewSQLAliasCheck() SQLAliasCheck {
	return SQLAliasCheck{}
}

// SQLAliasCheck requires an alias on every selected column of a SQL
// query that feeds a chart. Charts label their series using column
// names, so anything that isn't a plain column must be named
// explicitly. Table panels render whatever the query returns and are
// skipped.
type SQLAliasCheck struct{}

func (c SQLAliasCheck) String() string {
	return SQLAliasCheckName
}

func (c SQLAliasCheck) Reporter() string {
	return SQLAliasCheckName
}

func (c SQLAliasCheck) Check(_ context.Context, _ string, panel parser.Panel) (problems []Problem) {
	if panel.SQL == nil {
		return nil
	}
	if panel.VizType() == "table" {
		return nil
	}
	if panel.SQL.SyntaxError != nil {
		return nil
	}
	if panel.SQL.Query.AllAliased() {
		return nil
	}
	problems = append(problems, Problem{
		Fragment: panel.SQL.Value.Value,
		Lines:    panel.SQL.Value.Position.Lines,
		Reporter: c.Reporter(),
		Text:     fmt.Sprintf("every selected column must have an alias when charted on a %s panel", panel.VizType()),
		Severity: Bug,
	})
	return problems
}
