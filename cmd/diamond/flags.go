package main

import (
	"flag"
	"fmt"

	"github.com/TheusHen/diamond/internal/config"
)

// commandFlags wraps a FlagSet whose defaults come from the config file.
type commandFlags struct {
	*flag.FlagSet
	configPath string
}

func newCommandFlags(name string) *commandFlags {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	cf := &commandFlags{FlagSet: fs}
	fs.StringVar(&cf.configPath, "config", "", "YAML config file")
	return cf
}

// parse parses args and loads the config file, if any.
func (cf *commandFlags) parse(args []string) (config.FileConfig, error) {
	if err := cf.Parse(args); err != nil {
		return config.FileConfig{}, fmt.Errorf("%w: %v", errUsage, err)
	}
	return config.LoadOrDefault(cf.configPath)
}

// isSet reports whether name was given on the command line.
func (cf *commandFlags) isSet(name string) bool {
	found := false
	cf.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// intOr returns *v if the flag was set, else fallback.
func (cf *commandFlags) intOr(name string, v *int, fallback int) int {
	if cf.isSet(name) {
		return *v
	}
	return fallback
}

func (cf *commandFlags) stringOr(name string, v *string, fallback string) string {
	if cf.isSet(name) {
		return *v
	}
	return fallback
}
