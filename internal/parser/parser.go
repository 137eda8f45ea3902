package parser

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

const (
	panelKey  = "panel"
	vizKey    = "viz"
	promqlKey = "promql"
	sqlKey    = "sql"
)

var vizTypes = []string{"table", "line", "area", "bar", "stat", "gauge", "pie", "heatmap"}

func NewParser() Parser {
	return Parser{}
}

type Parser struct{}

func (p Parser) Parse(content []byte) (panels []Panel, err error) {
	if len(content) == 0 {
		return nil, nil
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unable to parse YAML file: %s", r)
		}
	}()

	var node yaml.Node
	err = yaml.Unmarshal(content, &node)
	if err != nil {
		return nil, err
	}

	for _, root := range node.Content {
		if root.Kind == yaml.ScalarNode && root.ShortTag() != "!!null" {
			return nil, fmt.Errorf("top level field must be a sequence or a mapping, got %s instead", describeTag(root.ShortTag()))
		}
	}

	panels, err = parseNode(content, &node, 0)
	return panels, err
}

func parseNode(content []byte, node *yaml.Node, offset int) (panels []Panel, err error) {
	ret, isEmpty, err := parsePanel(node, offset)
	if err != nil {
		return nil, err
	}
	if !isEmpty {
		panels = append(panels, ret)
		return panels, nil
	}

	var pl []Panel
	var panel Panel
	for _, root := range node.Content {
		// nolint: exhaustive
		switch root.Kind {
		case yaml.SequenceNode:
			for _, n := range root.Content {
				pl, err = parseNode(content, n, offset)
				if err != nil {
					return nil, err
				}
				panels = append(panels, pl...)
			}
		case yaml.MappingNode:
			panel, isEmpty, err = parsePanel(root, offset)
			if err != nil {
				return nil, err
			}
			if !isEmpty {
				panels = append(panels, panel)
			} else {
				for _, n := range root.Content {
					pl, err = parseNode(content, n, offset)
					if err != nil {
						return nil, err
					}
					panels = append(panels, pl...)
				}
			}
		case yaml.ScalarNode:
			if root.Value != string(content) {
				c := []byte(root.Value)
				var n yaml.Node
				err = yaml.Unmarshal(c, &n)
				if err == nil {
					ret, err := parseNode(c, &n, offset+root.Line)
					if err != nil {
						return nil, err
					}
					panels = append(panels, ret...)
				}
			}
		}
	}
	return panels, nil
}

func parsePanel(node *yaml.Node, offset int) (panel Panel, _ bool, err error) {
	if node.Kind != yaml.MappingNode {
		return panel, true, err
	}

	var panelPart *YamlKeyValue
	var vizPart *YamlKeyValue
	var promqlPart *PromQLExpr
	var sqlPart *SQLExpr

	var panelNode *yaml.Node
	var vizNode *yaml.Node
	var promqlNode *yaml.Node
	var sqlNode *yaml.Node

	var key *yaml.Node
	unknownKeys := []*yaml.Node{}

	for i, part := range unpackNodes(node) {
		if i%2 == 0 {
			key = part
		} else {
			switch key.Value {
			case panelKey:
				if panelPart != nil {
					return duplicatedKeyError(part.Line+offset, panelKey)
				}
				panelNode = part
				panelPart = newYamlKeyValue(key, part, offset)
			case vizKey:
				if vizPart != nil {
					return duplicatedKeyError(part.Line+offset, vizKey)
				}
				vizNode = part
				vizPart = newYamlKeyValue(key, part, offset)
			case promqlKey:
				if promqlPart != nil {
					return duplicatedKeyError(part.Line+offset, promqlKey)
				}
				promqlNode = part
				promqlPart = newPromQLExpr(key, part, offset)
			case sqlKey:
				if sqlPart != nil {
					return duplicatedKeyError(part.Line+offset, sqlKey)
				}
				sqlNode = part
				sqlPart = newSQLExpr(key, part, offset)
			default:
				unknownKeys = append(unknownKeys, key)
			}
		}
	}

	if promqlPart != nil && sqlPart != nil {
		panel = Panel{
			Error: ParseError{
				Line: node.Line + offset,
				Err:  fmt.Errorf("got both %s and %s keys in a single panel", promqlKey, sqlKey),
			},
		}
		return panel, false, err
	}
	if promqlPart != nil && panelPart == nil {
		panel = Panel{
			Error: ParseError{
				Line: promqlPart.Value.Position.LastLine(),
				Err:  fmt.Errorf("incomplete panel, no %s key", panelKey),
			},
		}
		return panel, false, err
	}
	if sqlPart != nil && panelPart == nil {
		panel = Panel{
			Error: ParseError{
				Line: sqlPart.Value.Position.LastLine(),
				Err:  fmt.Errorf("incomplete panel, no %s key", panelKey),
			},
		}
		return panel, false, err
	}

	if panelPart != nil {
		if !hasValue(panelPart.Value) {
			panel = Panel{
				Error: ParseError{
					Line: panelPart.Value.Position.LastLine(),
					Err:  fmt.Errorf("%s value cannot be empty", panelKey),
				},
			}
			return panel, false, err
		}
		if promqlPart == nil && sqlPart == nil {
			panel = Panel{
				Error: ParseError{
					Line: panelPart.Value.Position.LastLine(),
					Err:  fmt.Errorf("missing %s or %s key", promqlKey, sqlKey),
				},
			}
			return panel, false, err
		}
		if promqlPart != nil && !hasValue(promqlPart.Value) {
			panel = Panel{
				Error: ParseError{
					Line: promqlPart.Value.Position.LastLine(),
					Err:  fmt.Errorf("%s value cannot be empty", promqlKey),
				},
			}
			return panel, false, err
		}
		if sqlPart != nil && !hasValue(sqlPart.Value) {
			panel = Panel{
				Error: ParseError{
					Line: sqlPart.Value.Position.LastLine(),
					Err:  fmt.Errorf("%s value cannot be empty", sqlKey),
				},
			}
			return panel, false, err
		}

		if len(unknownKeys) > 0 {
			var keys []string
			for _, n := range unknownKeys {
				keys = append(keys, n.Value)
			}
			panel = Panel{
				Error: ParseError{
					Line: unknownKeys[0].Line + offset,
					Err:  fmt.Errorf("invalid key(s) found: %s", strings.Join(keys, ", ")),
				},
			}
			return panel, false, err
		}

		if vizPart == nil {
			panel = Panel{
				Error: ParseError{
					Line: panelPart.Value.Position.LastLine(),
					Err:  fmt.Errorf("missing %s key", vizKey),
				},
			}
			return panel, false, err
		}
		if !hasValue(vizPart.Value) {
			panel = Panel{
				Error: ParseError{
					Line: vizPart.Value.Position.LastLine(),
					Err:  fmt.Errorf("%s value cannot be empty", vizKey),
				},
			}
			return panel, false, err
		}
		if !slices.Contains(vizTypes, vizPart.Value.Value) {
			panel = Panel{
				Error: ParseError{
					Line: vizPart.Value.Position.FirstLine(),
					Err:  fmt.Errorf("unknown %s type: %s", vizKey, vizPart.Value.Value),
				},
			}
			return panel, false, err
		}
	}

	for key, part := range map[string]*yaml.Node{
		panelKey:  panelNode,
		vizKey:    vizNode,
		promqlKey: promqlNode,
		sqlKey:    sqlNode,
	} {
		if part != nil && !isTag(part.ShortTag(), "!!str") {
			return invalidValueError(part.Line+offset, key, "string", describeTag(part.ShortTag()))
		}
	}

	if panelPart != nil {
		panel = Panel{
			Title:  panelPart,
			Viz:    vizPart,
			PromQL: promqlPart,
			SQL:    sqlPart,
		}
		return panel, false, err
	}

	return panel, true, err
}

func unpackNodes(node *yaml.Node) []*yaml.Node {
	nodes := make([]*yaml.Node, 0, len(node.Content))
	var isMerge bool
	for _, part := range node.Content {
		if part.ShortTag() == "!!merge" && part.Value == "<<" {
			isMerge = true
		}

		if part.Alias != nil {
			if isMerge {
				nodes = append(nodes, resolveMapAlias(part, node).Content...)
			} else {
				nodes = append(nodes, resolveMapAlias(part, part))
			}
			isMerge = false
			continue
		}
		if isMerge {
			continue
		}
		nodes = append(nodes, part)
	}
	return nodes
}

func nodeKeys(node *yaml.Node) (keys []string) {
	if node.Kind != yaml.MappingNode {
		return keys
	}
	for i, n := range node.Content {
		if i%2 == 0 && n.Value != "" {
			keys = append(keys, n.Value)
		}
	}
	return keys
}

func hasKey(node *yaml.Node, key string) bool {
	for _, k := range nodeKeys(node) {
		if k == key {
			return true
		}
	}
	return false
}

func hasValue(node *YamlNode) bool {
	if node == nil {
		return false
	}
	return node.Value != ""
}

func resolveMapAlias(part, parent *yaml.Node) *yaml.Node {
	node := *part
	node.Content = nil
	var ok bool
	for i, alias := range part.Alias.Content {
		if i%2 == 0 {
			ok = !hasKey(parent, alias.Value)
		}
		if ok {
			node.Content = append(node.Content, alias)
		}
		if i%2 == 1 {
			ok = false
		}
	}
	return &node
}

func duplicatedKeyError(line int, key string) (Panel, bool, error) {
	panel := Panel{
		Error: ParseError{
			Line: line,
			Err:  fmt.Errorf("duplicated %s key", key),
		},
	}
	return panel, false, nil
}

func invalidValueError(line int, key, expectedKind, gotKind string) (Panel, bool, error) {
	panel := Panel{
		Error: ParseError{
			Line: line,
			Err:  fmt.Errorf("%s value must be a YAML %s, got %s instead", key, expectedKind, gotKind),
		},
	}
	return panel, false, nil
}

func isTag(tag, expected string) bool {
	if tag == "!!null" {
		return true
	}
	return tag == expected
}

func describeTag(tag string) string {
	switch tag {
	case "":
		return "unknown type"
	case "!!str":
		return "string"
	case "!!int":
		return "integer"
	case "!!seq":
		return "list"
	case "!!map":
		return "mapping"
	case "!!binary":
		return "binary data"
	default:
		return strings.TrimLeft(tag, "!")
	}
}
