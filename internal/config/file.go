package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// defaults are the values flags fall back to when neither the command line
// nor the environment sets them.
type defaults struct {
	Backend    string
	Socket     string
	Filter     string
	Match      string
	FieldLimit int
	Refresh    time.Duration
	Width      int
	Height     int
	Footer     bool
	Preview    bool
	Trace      bool
	LogFile    string
}

func builtinDefaults() defaults {
	return defaults{
		Backend: "auto",
		Match:   "substring",
		Refresh: defaultRefresh,
		Preview: true,
	}
}

// fileOptions mirrors the YAML config file. Pointers distinguish an absent
// key from an explicit zero value.
type fileOptions struct {
	Backend    *string `yaml:"backend"`
	Socket     *string `yaml:"socket"`
	Filter     *string `yaml:"filter"`
	Match      *string `yaml:"match"`
	FieldLimit *int    `yaml:"field-limit"`
	Refresh    *string `yaml:"refresh"`
	Width      *int    `yaml:"width"`
	Height     *int    `yaml:"height"`
	Footer     *bool   `yaml:"footer"`
	Preview    *bool   `yaml:"preview"`
	Trace      *bool   `yaml:"trace"`
	LogFile    *string `yaml:"log-file"`
}

func (d *defaults) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var opts fileOptions
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&opts); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return d.apply(opts)
}

func (d *defaults) apply(opts fileOptions) error {
	setString(&d.Backend, opts.Backend)
	setString(&d.Socket, opts.Socket)
	setString(&d.Filter, opts.Filter)
	setString(&d.Match, opts.Match)
	setString(&d.LogFile, opts.LogFile)
	setInt(&d.FieldLimit, opts.FieldLimit)
	setInt(&d.Width, opts.Width)
	setInt(&d.Height, opts.Height)
	setBool(&d.Footer, opts.Footer)
	setBool(&d.Preview, opts.Preview)
	setBool(&d.Trace, opts.Trace)
	if opts.Refresh != nil {
		refresh, err := time.ParseDuration(*opts.Refresh)
		if err != nil {
			return fmt.Errorf("config file refresh: %w", err)
		}
		d.Refresh = refresh
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
