package config_test

import (
	"fmt"
	"os"
	"path"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/assert"

	"github.com/lenslabs/plint/internal/checks"
	"github.com/lenslabs/plint/internal/config"
	"github.com/lenslabs/plint/internal/parser"
)

func TestMain(t *testing.M) {
	v := t.Run()
	snaps.Clean(t)
	os.Exit(v)
}

func TestConfigLoadMissingFile(t *testing.T) {
	assert := assert.New(t)

	_, err := config.Load("/foo/bar/plint.hcl", true)
	assert.EqualError(err, "<nil>: Configuration file not found; The configuration file /foo/bar/plint.hcl does not exist.")
}

func TestConfigLoadMissingFileOk(t *testing.T) {
	assert := assert.New(t)

	_, err := config.Load("/foo/bar/plint.hcl", false)
	assert.Nil(err)
}

func TestSetDisabledChecks(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	path := path.Join(dir, "config.hcl")
	err := os.WriteFile(path, []byte(``), 0o644)
	assert.NoError(err)

	cfg, err := config.Load(path, true)
	assert.NoError(err)
	assert.Empty(cfg.Checks.Disabled)

	cfg.SetDisabledChecks([]string{checks.SQLAliasCheckName})
	assert.Contains(cfg.Checks.Disabled, checks.SQLAliasCheckName)

	cfg.SetDisabledChecks([]string{checks.SQLAliasCheckName})
	assert.Equal([]string{checks.SQLAliasCheckName}, cfg.Checks.Disabled)

	cfg.SetDisabledChecks([]string{"promql/.*"})
	assert.Contains(cfg.Checks.Disabled, checks.PromQLSyntaxCheckName)
	assert.Contains(cfg.Checks.Disabled, checks.LabelsCheckName)
}

func newPanel(t *testing.T, content string) parser.Panel {
	p := parser.NewParser()
	panels, err := p.Parse([]byte(content))
	if err != nil {
		t.Error(err)
		t.FailNow()
	}
	return panels[0]
}

func TestGetChecksForQuery(t *testing.T) {
	type testCaseT struct {
		title    string
		config   string
		path     string
		panel    parser.Panel
		disabled []string
		checks   []string
	}

	testCases := []testCaseT{
		{
			title:  "defaults",
			config: "",
			path:   "panels.yml",
			panel:  newPanel(t, "- panel: cpu\n  viz: line\n  promql: sum(up)\n"),
			checks: []string{
				checks.PromQLSyntaxCheckName,
				checks.SQLSyntaxCheckName,
				checks.SQLAliasCheckName,
			},
		},
		{
			title:  "sql/alias disabled globally",
			config: "checks {\n  disabled = [\"sql/alias\"]\n}\n",
			path:   "panels.yml",
			panel:  newPanel(t, "- panel: cpu\n  viz: line\n  promql: sum(up)\n"),
			checks: []string{
				checks.PromQLSyntaxCheckName,
				checks.SQLSyntaxCheckName,
			},
		},
		{
			title:  "enabled list narrows optional checks",
			config: "checks {\n  enabled = [\"promql/syntax\", \"sql/syntax\"]\n}\n",
			path:   "panels.yml",
			panel:  newPanel(t, "- panel: cpu\n  viz: line\n  promql: sum(up)\n"),
			checks: []string{
				checks.PromQLSyntaxCheckName,
				checks.SQLSyntaxCheckName,
			},
		},
		{
			title:  "syntax checks cannot be disabled",
			config: "checks {\n  disabled = [\"promql/syntax\", \"sql/syntax\"]\n}\n",
			path:   "panels.yml",
			panel:  newPanel(t, "- panel: cpu\n  viz: line\n  promql: sum(up)\n"),
			checks: []string{
				checks.PromQLSyntaxCheckName,
				checks.SQLSyntaxCheckName,
				checks.SQLAliasCheckName,
			},
		},
		{
			title:  "labels check from config",
			config: "check \"promql/labels\" {\n  required = [\"job\"]\n}\n",
			path:   "panels.yml",
			panel:  newPanel(t, "- panel: cpu\n  viz: line\n  promql: sum(up)\n"),
			checks: []string{
				checks.PromQLSyntaxCheckName,
				checks.SQLSyntaxCheckName,
				checks.SQLAliasCheckName,
				checks.LabelsCheckName + "(job)",
			},
		},
		{
			title:  "reject check with multiple deny patterns",
			config: "check \"query/reject\" {\n  deny     = [\".+ offset .+\", \"DELETE .+\"]\n  severity = \"fatal\"\n}\n",
			path:   "panels.yml",
			panel:  newPanel(t, "- panel: cpu\n  viz: line\n  promql: sum(up)\n"),
			checks: []string{
				checks.PromQLSyntaxCheckName,
				checks.SQLSyntaxCheckName,
				checks.SQLAliasCheckName,
				checks.RejectCheckName + "(query=~'^.+ offset .+$')",
				checks.RejectCheckName + "(query=~'^DELETE .+$')",
			},
		},
		{
			title:    "check disabled for a single file by name",
			config:   "check \"promql/labels\" {\n  required = [\"job\"]\n}\n",
			path:     "panels.yml",
			panel:    newPanel(t, "- panel: cpu\n  viz: line\n  promql: sum(up)\n"),
			disabled: []string{checks.LabelsCheckName},
			checks: []string{
				checks.PromQLSyntaxCheckName,
				checks.SQLSyntaxCheckName,
				checks.SQLAliasCheckName,
			},
		},
		{
			title:    "check disabled for a single file by instance",
			config:   "check \"query/reject\" {\n  deny = [\".+ offset .+\", \"DELETE .+\"]\n}\n",
			path:     "panels.yml",
			panel:    newPanel(t, "- panel: cpu\n  viz: line\n  promql: sum(up)\n"),
			disabled: []string{checks.RejectCheckName + "(query=~'^DELETE .+$')"},
			checks: []string{
				checks.PromQLSyntaxCheckName,
				checks.SQLSyntaxCheckName,
				checks.SQLAliasCheckName,
				checks.RejectCheckName + "(query=~'^.+ offset .+$')",
			},
		},
		{
			title:  "duplicated check blocks are merged",
			config: "check \"promql/labels\" {\n  required = [\"job\"]\n}\ncheck \"promql/labels\" {\n  required = [\"job\"]\n}\n",
			path:   "panels.yml",
			panel:  newPanel(t, "- panel: cpu\n  viz: line\n  promql: sum(up)\n"),
			checks: []string{
				checks.PromQLSyntaxCheckName,
				checks.SQLSyntaxCheckName,
				checks.SQLAliasCheckName,
				checks.LabelsCheckName + "(job)",
			},
		},
	}

	dir := t.TempDir()
	for i, tc := range testCases {
		t.Run(tc.title, func(t *testing.T) {
			assert := assert.New(t)

			path := path.Join(dir, fmt.Sprintf("%d.hcl", i))
			if tc.config != "" {
				err := os.WriteFile(path, []byte(tc.config), 0o644)
				assert.NoError(err)
			}

			cfg, err := config.Load(path, false)
			assert.NoError(err)

			enabled := cfg.GetChecksForQuery(tc.path, tc.panel, tc.disabled)
			checkNames := make([]string, 0, len(enabled))
			for _, c := range enabled {
				checkNames = append(checkNames, c.String())
			}
			assert.Equal(tc.checks, checkNames)
			snaps.MatchSnapshot(t, cfg.String())
		})
	}
}

func TestEnvVariableExpansion(t *testing.T) {
	assert := assert.New(t)

	t.Setenv("PLINT_REQUIRED_LABEL", "job")

	dir := t.TempDir()
	path := path.Join(dir, "config.hcl")
	err := os.WriteFile(path, []byte("check \"promql/labels\" {\n  required = [ENV_PLINT_REQUIRED_LABEL]\n}\n"), 0o644)
	assert.NoError(err)

	cfg, err := config.Load(path, true)
	assert.NoError(err)

	panel := newPanel(t, "- panel: cpu\n  viz: line\n  promql: sum(up)\n")
	enabled := cfg.GetChecksForQuery("panels.yml", panel, nil)
	checkNames := make([]string, 0, len(enabled))
	for _, c := range enabled {
		checkNames = append(checkNames, c.String())
	}
	assert.Contains(checkNames, "promql/labels(job)")
}

func TestConfigErrors(t *testing.T) {
	type testCaseT struct {
		config string
		err    string
	}

	testCases := []testCaseT{
		{
			config: `parser { include = [".+++"] }`,
			err:    "error parsing regexp: invalid nested repetition operator: `++`",
		},
		{
			config: `checks { enabled = ["foo"] }`,
			err:    "unknown check name foo",
		},
		{
			config: `checks { disabled = ["promql/bogus"] }`,
			err:    "unknown check name promql/bogus",
		},
		{
			config: `report {}`,
			err:    "report block requires a json destination path",
		},
		{
			config: `check "bogus" {}`,
			err:    `unknown check "bogus"`,
		},
		{
			config: `check "promql/labels" { required = [] }`,
			err:    "required cannot be empty",
		},
		{
			config: `check "promql/labels" { required = ["foo bar"] }`,
			err:    `"foo bar" is not a valid label name`,
		},
		{
			config: "check \"promql/labels\" {\n  required = [\"job\"]\n  severity = \"bogus\"\n}",
			err:    "unknown severity: bogus",
		},
		{
			config: `check "query/reject" { deny = ["f[oo"] }`,
			err:    "error parsing regexp: missing closing ]: `[oo$`",
		},
		{
			config: `check "query/reject" { deny = [] }`,
			err:    "deny cannot be empty",
		},
		{
			config: `check "promql/labels" {}`,
			err:    "Missing required argument",
		},
	}

	dir := t.TempDir()
	for i, tc := range testCases {
		t.Run(tc.config, func(t *testing.T) {
			assert := assert.New(t)

			path := path.Join(dir, fmt.Sprintf("%d.hcl", i))
			err := os.WriteFile(path, []byte(tc.config+"\n"), 0o644)
			assert.NoError(err)

			_, err = config.Load(path, false)
			assert.ErrorContains(err, tc.err, tc.config)
		})
	}
}
