package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/harrison/eslint-globals/internal/models"
)

// ErrMalformedCustom is returned when a custom entry is not a string. The
// value would end up verbatim in the generated file, so it is fatal.
var ErrMalformedCustom = errors.New("custom entries must be strings")

// Logger receives warnings about ignored configuration values
type Logger interface {
	Debugf(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

// Overrides is a partial Settings: nil fields leave the base value alone
type Overrides struct {
	Custom       []string
	Exclude      []string
	Flat         *bool
	OutputFormat *models.OutputFormat
	OutputDir    *string
	Debug        *bool

	hasCustom  bool
	hasExclude bool
}

// SetCustom marks custom as overridden (an empty slice clears it)
func (o *Overrides) SetCustom(custom []string) {
	o.Custom = custom
	o.hasCustom = true
}

// SetExclude marks exclude as overridden (an empty slice clears it)
func (o *Overrides) SetExclude(exclude []string) {
	o.Exclude = exclude
	o.hasExclude = true
}

// Apply returns base with every present override applied
func (o Overrides) Apply(base models.Settings) models.Settings {
	s := base.Clone()
	if o.hasCustom {
		s.Custom = append([]string{}, o.Custom...)
	}
	if o.hasExclude {
		s.Exclude = append([]string{}, o.Exclude...)
	}
	if o.Flat != nil {
		s.Flat = *o.Flat
	}
	if o.OutputFormat != nil {
		s.OutputFormat = *o.OutputFormat
	}
	if o.OutputDir != nil {
		s.OutputDir = *o.OutputDir
	}
	if o.Debug != nil {
		s.Debug = *o.Debug
	}
	return s
}

// keyAliases maps accepted spellings onto canonical keys
var keyAliases = map[string]string{
	"custom":       "custom",
	"exclude":      "exclude",
	"flat":         "flat",
	"outputType":   "outputType",
	"outputFormat": "outputType",
	"output_type":  "outputType",
	"outputDir":    "outputDir",
	"output_dir":   "outputDir",
	"debug":        "debug",
}

// DecodeOverrides reads an untyped options object (parsed YAML, JSON, TOML,
// the host's runtime config or the environment). Unknown keys are ignored.
// Values of the wrong shape are logged and treated as absent, except for
// non-string custom entries and unknown output types, which are errors.
// source names the origin in messages.
func DecodeOverrides(raw map[string]interface{}, source string, log Logger) (Overrides, error) {
	var o Overrides

	for key, value := range raw {
		canonical, ok := keyAliases[key]
		if !ok {
			log.Debugf("%s: ignoring unknown option %q", source, key)
			continue
		}
		if value == nil {
			continue
		}

		switch canonical {
		case "custom":
			custom, err := decodeCustom(value)
			if err != nil {
				return Overrides{}, fmt.Errorf("%s: %w", source, err)
			}
			o.SetCustom(custom)

		case "exclude":
			exclude, ok := stringList(value)
			if !ok {
				log.Warnf("%s: exclude must be a list of strings, got %T; ignoring it", source, value)
				continue
			}
			o.SetExclude(exclude)

		case "flat", "debug":
			b, ok := boolValue(value)
			if !ok {
				log.Warnf("%s: %s must be a boolean, got %v; ignoring it", source, key, value)
				continue
			}
			if canonical == "flat" {
				o.Flat = &b
			} else {
				o.Debug = &b
			}

		case "outputType":
			str, ok := value.(string)
			if !ok {
				log.Warnf("%s: %s must be a string, got %T; ignoring it", source, key, value)
				continue
			}
			format, err := models.ParseOutputFormat(str)
			if err != nil {
				return Overrides{}, fmt.Errorf("%s: %w", source, err)
			}
			o.OutputFormat = &format

		case "outputDir":
			str, ok := value.(string)
			if !ok {
				log.Warnf("%s: outputDir must be a string, got %T; ignoring it", source, value)
				continue
			}
			o.OutputDir = &str
		}
	}

	return o, nil
}

func decodeCustom(value interface{}) ([]string, error) {
	switch v := value.(type) {
	case string:
		return splitList(v), nil
	case []string:
		return append([]string{}, v...), nil
	case []interface{}:
		out := make([]string, 0, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: entry %d is %T (%v)", ErrMalformedCustom, i, item, item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: got %T", ErrMalformedCustom, value)
	}
}

func stringList(value interface{}) ([]string, bool) {
	switch v := value.(type) {
	case string:
		return splitList(v), true
	case []string:
		return append([]string{}, v...), true
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}

func boolValue(value interface{}) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		return b, err == nil
	default:
		return false, false
	}
}

// splitList splits a comma separated value, dropping blank items
func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
