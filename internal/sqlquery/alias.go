package sqlquery

// AllAliased walks the SELECT chain and reports whether every
// projected column that needs an alias carries one. On the first
// branch simple column references are exempt. On every branch after
// a set operator all columns must carry an alias, simple or not.
// An empty projection list fails the check, and so does a nil chain.
func (n *SelectNode) AllAliased() bool {
	if n == nil {
		return false
	}
	if !columnsAliased(n.Columns, true) {
		return false
	}
	for next := n.Next; next != nil; next = next.Next {
		if !columnsAliased(next.Columns, false) {
			return false
		}
	}
	return true
}

func columnsAliased(cols []Column, exemptSimple bool) bool {
	if len(cols) == 0 {
		return false
	}
	for _, col := range cols {
		if exemptSimple && col.Simple {
			continue
		}
		if col.Alias == "" {
			return false
		}
	}
	return true
}

// AllProjectionsHaveAlias parses a SQL string and reports whether
// every computed column in it carries an explicit alias. It never
// panics, unparsable input, non-SELECT statements and empty
// projection lists all return false.
func AllProjectionsHaveAlias(sql string) bool {
	node, err := Parse(sql)
	if err != nil {
		return false
	}
	return node.AllAliased()
}
