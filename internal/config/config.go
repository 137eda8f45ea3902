package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/zclconf/go-cty/cty"

	"github.com/lenslabs/plint/internal/checks"
	"github.com/lenslabs/plint/internal/parser"
)

type Config struct {
	Parser *Parser `hcl:"parser,block" json:"parser,omitempty"`
	Checks *Checks `hcl:"checks,block" json:"checks,omitempty"`
	Report *Report `hcl:"report,block" json:"report,omitempty"`
	Check  []Check `hcl:"check,block" json:"check,omitempty"`
}

func (cfg *Config) SetDisabledChecks(l []string) {
	disabled := map[string]struct{}{}
	for _, s := range l {
		re := strictRegex(s)
		for _, name := range checks.CheckNames {
			if re.MatchString(name) {
				disabled[name] = struct{}{}
			}
		}
	}
	for name := range disabled {
		var found bool
		for _, c := range cfg.Checks.Disabled {
			if c == name {
				found = true
			}
		}
		if !found {
			cfg.Checks.Disabled = append(cfg.Checks.Disabled, name)
		}
	}
}

func (cfg Config) String() string {
	content, _ := json.MarshalIndent(cfg, "", "  ")
	return string(content)
}

// GetChecksForQuery returns the list of checks to run against a single
// panel. Syntax checks are always present, everything else can be
// turned off globally via the checks block or per file with
// disabledChecks, which carries both CLI flags and control comments.
// Instances are de-duplicated by their String() form.
func (cfg *Config) GetChecksForQuery(path string, panel parser.Panel, disabledChecks []string) []checks.QueryChecker {
	enabled := []checks.QueryChecker{}

	allChecks := []checkMeta{
		{
			name:          checks.PromQLSyntaxCheckName,
			check:         checks.NewPromQLSyntaxCheck(),
			alwaysEnabled: true,
		},
		{
			name:          checks.SQLSyntaxCheckName,
			check:         checks.NewSQLSyntaxCheck(),
			alwaysEnabled: true,
		},
		{
			name:  checks.SQLAliasCheckName,
			check: checks.NewSQLAliasCheck(),
		},
	}

	for _, chk := range cfg.Check {
		settings, err := chk.Decode()
		if err != nil {
			continue
		}
		switch s := settings.(type) {
		case *checks.LabelsSettings:
			allChecks = append(allChecks, checkMeta{
				name:  checks.LabelsCheckName,
				check: checks.NewLabelsCheck(s.Required, s.GetSeverity(checks.Warning)),
			})
		case *checks.RejectSettings:
			severity := s.GetSeverity(checks.Bug)
			for _, pattern := range s.Deny {
				allChecks = append(allChecks, checkMeta{
					name:  checks.RejectCheckName,
					check: checks.NewRejectCheck(checks.MustTemplatedRegexp(pattern), severity),
				})
			}
		}
	}

	for _, cm := range allChecks {
		if !cm.alwaysEnabled {
			// check disabled for this file
			if !isEnabled(cfg.Checks.Enabled, disabledChecks, cm.name, cm.check) {
				continue
			}
			// check disabled globally
			if !isEnabled(cfg.Checks.Enabled, cfg.Checks.Disabled, cm.name, cm.check) {
				continue
			}
		}
		var v bool
		for _, ec := range enabled {
			if ec.String() == cm.check.String() {
				v = true
				break
			}
		}
		if !v {
			enabled = append(enabled, cm.check)
		}
	}

	el := []string{}
	for _, e := range enabled {
		el = append(el, fmt.Sprintf("%v", e))
	}
	slog.Debug("Configured checks for panel",
		slog.Any("enabled", el),
		slog.String("path", path),
		slog.String("panel", panel.Name()),
	)

	return enabled
}

func getContext() *hcl.EvalContext {
	vars := map[string]cty.Value{}
	for _, e := range os.Environ() {
		if i := strings.Index(e, "="); i >= 0 {
			vars[fmt.Sprintf("ENV_%s", e[:i])] = cty.StringVal(e[i+1:])
		}
	}
	return &hcl.EvalContext{Variables: vars}
}

func Load(path string, failOnMissing bool) (cfg Config, err error) {
	cfg = Config{
		Parser: &Parser{},
		Checks: &Checks{
			Enabled:  checks.CheckNames,
			Disabled: []string{},
		},
	}

	if _, err = os.Stat(path); err == nil || failOnMissing {
		slog.Info("Loading configuration file", slog.String("path", path))
		ectx := getContext()
		err = hclsimple.DecodeFile(path, ectx, &cfg)
		if err != nil {
			return cfg, err
		}
	}

	if cfg.Parser != nil {
		if err = cfg.Parser.validate(); err != nil {
			return cfg, err
		}
	}

	if cfg.Checks != nil {
		if err = cfg.Checks.validate(); err != nil {
			return cfg, err
		}
	}

	if cfg.Report != nil {
		if err = cfg.Report.validate(); err != nil {
			return cfg, err
		}
	}

	for _, chk := range cfg.Check {
		if err = chk.validate(); err != nil {
			return cfg, err
		}
	}

	return cfg, nil
}

func isEnabled(enabledChecks, disabledChecks []string, name string, check checks.QueryChecker) bool {
	instance := check.String()
	for _, c := range disabledChecks {
		if c == name || c == instance {
			return false
		}
	}
	if len(enabledChecks) == 0 {
		return true
	}
	for _, c := range enabledChecks {
		if c == name {
			return true
		}
	}
	return false
}

func strictRegex(s string) *regexp.Regexp {
	return regexp.MustCompile("^" + s + "$")
}

func MustCompileRegexes(l ...string) (r []*regexp.Regexp) {
	for _, pattern := range l {
		r = append(r, strictRegex(pattern))
	}
	return r
}

type checkMeta struct {
	name          string
	check         checks.QueryChecker
	alwaysEnabled bool
}
