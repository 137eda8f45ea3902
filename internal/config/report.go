package config

import "errors"

type Report struct {
	JSON string `hcl:"json,optional" json:"json,omitempty"`
}

func (r Report) validate() error {
	if r.JSON == "" {
		return errors.New("report block requires a json destination path")
	}
	return nil
}
