package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Format is how a command prints quizzes and history.
type Format string

func (f *Format) Set(val string) error {
	for _, format := range allFormats {
		if val == string(format) {
			*f = format
			return nil
		}
	}
	return fmt.Errorf("invalid format: %s", val)
}

func (f Format) String() string {
	return string(f)
}

func (f *Format) Type() string {
	return "Format"
}

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var (
	_          pflag.Value = (*Format)(nil)
	allFormats             = []Format{FormatText, FormatJSON, FormatYAML}
)

func addFormatFlag(flags *pflag.FlagSet, format *Format) {
	*format = FormatText
	flags.Var(format, "format", "output format: text, json or yaml")
}

// writeStructured writes v as JSON or YAML. It reports false for the text format.
func writeStructured(w io.Writer, format Format, v any) (bool, error) {
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(v); err != nil {
			return true, fmt.Errorf("encoder.Encode() > %w", err)
		}
		return true, nil
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return true, fmt.Errorf("encoder.Encode() > %w", err)
		}
		if err := encoder.Close(); err != nil {
			return true, fmt.Errorf("encoder.Close() > %w", err)
		}
		return true, nil
	}
	return false, nil
}
