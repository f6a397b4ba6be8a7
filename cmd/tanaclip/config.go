package main

import (
	"github.com/fwojciec/tanaclip/yaml"
)

// Run executes the config command.
func (c *ConfigCmd) Run(deps *Dependencies) error {
	return yaml.EncodeConfig(deps.Stdout, deps.Config)
}
