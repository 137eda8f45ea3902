package config

import (
	"regexp"
)

type Parser struct {
	Include []string `hcl:"include,optional" json:"include,omitempty"`
	Exclude []string `hcl:"exclude,optional" json:"exclude,omitempty"`
}

func (p Parser) validate() error {
	for _, path := range p.Include {
		if _, err := regexp.Compile(path); err != nil {
			return err
		}
	}

	for _, path := range p.Exclude {
		if _, err := regexp.Compile(path); err != nil {
			return err
		}
	}
	return nil
}

func (p Parser) CompileInclude() []*regexp.Regexp {
	return MustCompileRegexes(p.Include...)
}

func (p Parser) CompileExclude() []*regexp.Regexp {
	return MustCompileRegexes(p.Exclude...)
}
