package checks

import (
	"bytes"
	"regexp"
	"strings"
	"text/template"

	"github.com/lenslabs/plint/internal/parser"
)

func NewTemplatedRegexp(s string) (*TemplatedRegexp, error) {
	tr := TemplatedRegexp{anchored: "^" + s + "$", original: s}
	_, err := tr.Expand(parser.Panel{})
	if err != nil {
		return nil, err
	}

	return &tr, nil
}

func NewRawTemplatedRegexp(s string) (*TemplatedRegexp, error) {
	tr := TemplatedRegexp{anchored: s, original: s}
	_, err := tr.Expand(parser.Panel{})
	if err != nil {
		return nil, err
	}

	return &tr, nil
}

func MustTemplatedRegexp(re string) *TemplatedRegexp {
	tr, _ := NewTemplatedRegexp(re)
	return tr
}

func MustRawTemplatedRegexp(re string) *TemplatedRegexp {
	tr, _ := NewRawTemplatedRegexp(re)
	return tr
}

// TemplatedRegexp is a regexp that can reference panel fields using
// text/template syntax, for example `{{ $panel }} .+`. Aliases are
// expanded using a specific panel before matching.
type TemplatedRegexp struct {
	anchored string
	original string
}

func (tr TemplatedRegexp) Expand(panel parser.Panel) (*regexp.Regexp, error) {
	tctx := newTemplateContext(panel)
	tmpl, err := newTemplateFromContext(tctx, tr.anchored)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, tctx)
	if err != nil {
		return nil, err
	}

	return regexp.Compile(buf.String())
}

func (tr TemplatedRegexp) MustExpand(panel parser.Panel) *regexp.Regexp {
	re, _ := tr.Expand(panel)
	return re
}

func newTemplateFromContext(tctx TemplateContext, content string) (*template.Template, error) {
	tmpl, err := template.New("regexp").Parse(tctx.Aliases() + content)
	if err != nil {
		return nil, err
	}
	tmpl.Option("missingkey=zero")
	return tmpl, nil
}

func newTemplateContext(panel parser.Panel) (c TemplateContext) {
	c.Panel = panel.Name()
	c.Viz = panel.VizType()
	c.Query = panel.Query()
	return c
}

type TemplateContext struct {
	Panel string
	Viz   string
	Query string
}

func (tc TemplateContext) Aliases() string {
	var vars strings.Builder
	vars.WriteString("{{ $panel := .Panel }}")
	vars.WriteString("{{ $viz := .Viz }}")
	vars.WriteString("{{ $query := .Query }}")
	return vars.String()
}
