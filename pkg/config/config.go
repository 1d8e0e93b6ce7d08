// Package config loads pipeline options from a TOML file.
//
// A configuration file sets any subset of [pipeline.Options]; keys left out
// keep the values already in the options passed to [Load]:
//
//	racks = 12
//	strategy = "grow-together"
//	guarding_model = "solvers"
//	coverage = "delta"
//	delta = 7.5
//	solve_timeout = "30s"
//	formats = ["svg", "png", "json"]
//
// Unknown keys are rejected so misspelled settings do not pass silently.
package config

import (
	"errors"
	"io/fs"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	errs "github.com/matzehuels/rackwatch/pkg/errors"
	"github.com/matzehuels/rackwatch/pkg/pipeline"
)

// Load decodes the TOML file at path into opts and validates the result.
func Load(path string, opts *pipeline.Options) error {
	md, err := toml.DecodeFile(path, opts)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return errs.Wrap(errs.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if err := checkUndecoded(md); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "%s", path)
	}
	opts.SetDefaults()
	return opts.Validate()
}

// Decode is Load for configuration already in memory.
func Decode(data string, opts *pipeline.Options) error {
	md, err := toml.Decode(data, opts)
	if err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "parse config")
	}
	if err := checkUndecoded(md); err != nil {
		return err
	}
	opts.SetDefaults()
	return opts.Validate()
}

func checkUndecoded(md toml.MetaData) error {
	undecoded := md.Undecoded()
	if len(undecoded) == 0 {
		return nil
	}
	keys := make([]string, len(undecoded))
	for i, k := range undecoded {
		keys[i] = k.String()
	}
	sort.Strings(keys)
	return errs.New(errs.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
}
