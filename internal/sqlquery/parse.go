package sqlquery

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xwb1989/sqlparser"
)

// Column describes a single projected column of a SELECT statement.
type Column struct {
	// Name is the column expression as written in the query, so `name`
	// or `t1.col` for references and `count(*)` for calls.
	Name string
	// Alias is the AS name, empty when the column has none.
	Alias string
	// Simple is true for bare column references, including qualified
	// ones, and for `*` / `t.*` projections.
	Simple bool
}

// SelectNode is a single SELECT inside a chain of set operations.
// Op is the operator joining this node with Next, "union" or
// "union all", and is empty on the last node of the chain.
// All of the tool only ever looks at projected columns, so that's
// all we decode here, the rest of the statement is discarded.
type SelectNode struct {
	Next    *SelectNode
	Op      string
	Columns []Column
}

// Parse reads the first statement from a SQL string and decodes it
// into a SelectNode chain. Set operation trees are flattened left to
// right and parenthesised selects are unwrapped. Trailing statements
// after the first `;` are ignored. Returns an error when the input is
// empty, fails to tokenize, or is not a SELECT.
func Parse(sql string) (*SelectNode, error) {
	if strings.TrimSpace(sql) == "" {
		return nil, errors.New("empty query")
	}

	tokenizer := sqlparser.NewStringTokenizer(sql)
	stmt, err := sqlparser.ParseNext(tokenizer)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty query")
		}
		return nil, err
	}

	sel, ok := stmt.(sqlparser.SelectStatement)
	if !ok {
		return nil, fmt.Errorf("only SELECT queries are supported, got %s", sqlparser.StmtType(sqlparser.Preview(sql)))
	}

	head, _, err := flatten(sel)
	if err != nil {
		return nil, err
	}
	return head, nil
}

func flatten(stmt sqlparser.SelectStatement) (head, tail *SelectNode, err error) {
	switch s := stmt.(type) {
	case *sqlparser.Select:
		node := SelectNode{Columns: readColumns(s)}
		return &node, &node, nil
	case *sqlparser.ParenSelect:
		return flatten(s.Select)
	case *sqlparser.Union:
		lh, lt, err := flatten(s.Left)
		if err != nil {
			return nil, nil, err
		}
		rh, rt, err := flatten(s.Right)
		if err != nil {
			return nil, nil, err
		}
		lt.Op = s.Type
		lt.Next = rh
		return lh, rt, nil
	default:
		return nil, nil, fmt.Errorf("unsupported SELECT variant %T", stmt)
	}
}

func readColumns(sel *sqlparser.Select) (cols []Column) {
	for _, se := range sel.SelectExprs {
		switch e := se.(type) {
		case *sqlparser.StarExpr:
			cols = append(cols, Column{Name: sqlparser.String(e), Simple: true})
		case *sqlparser.AliasedExpr:
			col := Column{Name: sqlparser.String(e.Expr)}
			if !e.As.IsEmpty() {
				col.Alias = e.As.String()
			}
			if _, ok := e.Expr.(*sqlparser.ColName); ok {
				col.Simple = true
			}
			cols = append(cols, col)
		default:
			cols = append(cols, Column{Name: sqlparser.String(se)})
		}
	}
	return cols
}
