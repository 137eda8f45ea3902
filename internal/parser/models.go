package parser

import (
	"strings"

	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"

	"github.com/lenslabs/plint/internal/promql"
	"github.com/lenslabs/plint/internal/sqlquery"
)

func appendLine(lines []int, newLines ...int) []int {
	for _, nl := range newLines {
		var present bool
		for _, l := range lines {
			if l == nl {
				present = true
				break
			}
		}
		if !present {
			lines = append(lines, nl)
		}
	}

	return lines
}

func nodeLines(node *yaml.Node, offset int) (lines []int) {
	lineCount := len(strings.Split(strings.TrimSuffix(node.Value, "\n"), "\n"))

	var firstLine int
	// nolint: exhaustive
	switch node.Style {
	case yaml.LiteralStyle, yaml.FoldedStyle:
		firstLine = node.Line + 1 + offset
	default:
		firstLine = node.Line + offset
	}

	for i := 0; i < lineCount; i++ {
		lines = appendLine(lines, firstLine+i)
	}

	return lines
}

func NewFilePosition(l []int) FilePosition {
	return FilePosition{Lines: l}
}

type FilePosition struct {
	Lines []int
}

func (fp FilePosition) FirstLine() (line int) {
	for _, l := range fp.Lines {
		if line == 0 || l < line {
			line = l
		}
	}
	return line
}

func (fp FilePosition) LastLine() (line int) {
	for _, l := range fp.Lines {
		if l > line {
			line = l
		}
	}
	return line
}

type YamlNode struct {
	Position FilePosition
	Value    string
}

func newYamlNode(node *yaml.Node, offset int) *YamlNode {
	n := YamlNode{
		Position: NewFilePosition(nodeLines(node, offset)),
		Value:    node.Value,
	}
	if node.Alias != nil {
		n.Value = node.Alias.Value
	}
	return &n
}

type YamlKeyValue struct {
	Key   *YamlNode
	Value *YamlNode
}

func newYamlKeyValue(key, val *yaml.Node, offset int) *YamlKeyValue {
	return &YamlKeyValue{
		Key:   newYamlNode(key, offset),
		Value: newYamlNode(val, offset),
	}
}

func (ykv YamlKeyValue) Lines() (lines []int) {
	lines = appendLine(lines, ykv.Key.Position.Lines...)
	lines = appendLine(lines, ykv.Value.Position.Lines...)
	return lines
}

// PromQLExpr is a query written in PromQL. The query is parsed when
// the panel is read and any syntax error is stored here, not returned,
// so that every check can decide for itself if it cares.
type PromQLExpr struct {
	Key         *YamlNode
	Value       *YamlNode
	SyntaxError error
	Query       *promql.Node
}

func (pqe PromQLExpr) Lines() (lines []int) {
	lines = appendLine(lines, pqe.Key.Position.Lines...)
	lines = appendLine(lines, pqe.Value.Position.Lines...)
	return lines
}

func newPromQLExpr(key, val *yaml.Node, offset int) *PromQLExpr {
	expr := PromQLExpr{
		Key:   newYamlNode(key, offset),
		Value: newYamlNode(val, offset),
	}

	query, err := promql.Decode(expr.Value.Value)
	if err != nil {
		expr.SyntaxError = err
		return &expr
	}
	expr.Query = query
	return &expr
}

// SQLExpr is a query written in SQL, decoded into a SELECT chain.
// Like PromQLExpr it keeps the syntax error instead of returning it.
type SQLExpr struct {
	Key         *YamlNode
	Value       *YamlNode
	SyntaxError error
	Query       *sqlquery.SelectNode
}

func (se SQLExpr) Lines() (lines []int) {
	lines = appendLine(lines, se.Key.Position.Lines...)
	lines = appendLine(lines, se.Value.Position.Lines...)
	return lines
}

func newSQLExpr(key, val *yaml.Node, offset int) *SQLExpr {
	expr := SQLExpr{
		Key:   newYamlNode(key, offset),
		Value: newYamlNode(val, offset),
	}

	query, err := sqlquery.Parse(expr.Value.Value)
	if err != nil {
		expr.SyntaxError = err
		return &expr
	}
	expr.Query = query
	return &expr
}

type ParseError struct {
	Fragment string
	Err      error
	Line     int
}

// Panel is a single dashboard panel definition. A valid panel has a
// title, a visualization type and exactly one query, either PromQL or
// SQL. Panels that failed to decode have Error set and nothing else.
type Panel struct {
	Title  *YamlKeyValue
	Viz    *YamlKeyValue
	PromQL *PromQLExpr
	SQL    *SQLExpr
	Error  ParseError
}

func (p Panel) Name() string {
	if p.Title != nil {
		return p.Title.Value.Value
	}
	return ""
}

func (p Panel) VizType() string {
	if p.Viz != nil {
		return p.Viz.Value.Value
	}
	return ""
}

// Query returns the raw query text regardless of the language it is
// written in.
func (p Panel) Query() string {
	if p.PromQL != nil {
		return p.PromQL.Value.Value
	}
	if p.SQL != nil {
		return p.SQL.Value.Value
	}
	return ""
}

func (p Panel) HasError() bool {
	return p.Error.Err != nil
}

func (p Panel) Lines() []int {
	var lines []int
	if p.Title != nil {
		lines = appendLine(lines, p.Title.Lines()...)
	}
	if p.Viz != nil {
		lines = appendLine(lines, p.Viz.Lines()...)
	}
	if p.PromQL != nil {
		lines = appendLine(lines, p.PromQL.Lines()...)
	}
	if p.SQL != nil {
		lines = appendLine(lines, p.SQL.Lines()...)
	}
	if lines == nil && p.Error.Err != nil {
		lines = []int{p.Error.Line}
	}
	slices.Sort(lines)
	return lines
}

// LineRange returns every line between the first and the last line of
// the panel, including lines Lines() skips, like empty ones inside a
// multiline query.
func (p Panel) LineRange() []int {
	var lmin, lmax int
	for i, line := range p.Lines() {
		if i == 0 {
			lmin = line
			lmax = line
			continue
		}
		if line < lmin {
			lmin = line
		}
		if line > lmax {
			lmax = line
		}
	}

	lines := []int{}
	for i := lmin; i <= lmax; i++ {
		lines = append(lines, i)
	}
	return lines
}

type QueryType string

const (
	PromQLType  QueryType = "promql"
	SQLType     QueryType = "sql"
	InvalidType QueryType = "invalid"
)

func (p Panel) Type() QueryType {
	if p.PromQL != nil {
		return PromQLType
	}
	if p.SQL != nil {
		return SQLType
	}
	return InvalidType
}
