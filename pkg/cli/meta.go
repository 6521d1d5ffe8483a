package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Elwqnn/wfc/pkg/wfc"
)

// ParamType is a small enum for parameter types used in metadata.
type ParamType string

const (
	ParamTypeInt    ParamType = "int"
	ParamTypeBool   ParamType = "bool"
	ParamTypeEnum   ParamType = "enum"
	ParamTypeString ParamType = "string"
)

// ValidationRule is a machine-friendly representation of the constraints
// that the REPL uses to validate input before applying it to a Config field.
type ValidationRule struct {
	Type        ParamType
	Required    bool
	Min         *float64
	Max         *float64
	EnumOptions []string
	Hint        string
}

// ConfigOption describes one editable field of wfc.Config: its name, type,
// validation, and how to read/write it on a live Config value.
type ConfigOption struct {
	Name        string
	Description string
	Rule        ValidationRule
	Get         func(c wfc.Config) string
	Set         func(c *wfc.Config, raw string) error
}

func minFloat(f float64) *float64 { return &f }

// ConfigOptions is the canonical list of Config fields the REPL can edit,
// in the order they are presented to the user.
var ConfigOptions = []ConfigOption{
	{
		Name:        "pattern_size",
		Description: "side length of extracted sample windows",
		Rule:        ValidationRule{Type: ParamTypeInt, Required: true, Min: minFloat(2), Max: minFloat(4)},
		Get:         func(c wfc.Config) string { return strconv.Itoa(c.PatternSize) },
		Set: func(c *wfc.Config, raw string) error {
			v, err := strconv.Atoi(raw)
			if err != nil {
				return fmt.Errorf("pattern_size: expected integer, got %q", raw)
			}
			c.PatternSize = v
			return nil
		},
	},
	{
		Name:        "output_width",
		Description: "wave width in cells",
		Rule:        ValidationRule{Type: ParamTypeInt, Required: true, Min: minFloat(1)},
		Get:         func(c wfc.Config) string { return strconv.Itoa(c.OutputWidth) },
		Set: func(c *wfc.Config, raw string) error {
			v, err := strconv.Atoi(raw)
			if err != nil {
				return fmt.Errorf("output_width: expected integer, got %q", raw)
			}
			c.OutputWidth = v
			return nil
		},
	},
	{
		Name:        "output_height",
		Description: "wave height in cells",
		Rule:        ValidationRule{Type: ParamTypeInt, Required: true, Min: minFloat(1)},
		Get:         func(c wfc.Config) string { return strconv.Itoa(c.OutputHeight) },
		Set: func(c *wfc.Config, raw string) error {
			v, err := strconv.Atoi(raw)
			if err != nil {
				return fmt.Errorf("output_height: expected integer, got %q", raw)
			}
			c.OutputHeight = v
			return nil
		},
	},
	{
		Name:        "periodic_input",
		Description: "wrap the sample when extracting windows",
		Rule:        ValidationRule{Type: ParamTypeBool},
		Get:         func(c wfc.Config) string { return strconv.FormatBool(c.PeriodicInput) },
		Set: func(c *wfc.Config, raw string) error {
			v, err := parseBoolLike(raw)
			if err != nil {
				return fmt.Errorf("periodic_input: %w", err)
			}
			c.PeriodicInput = v
			return nil
		},
	},
	{
		Name:        "periodic_output",
		Description: "wrap the wave at output edges during propagation",
		Rule:        ValidationRule{Type: ParamTypeBool},
		Get:         func(c wfc.Config) string { return strconv.FormatBool(c.PeriodicOutput) },
		Set: func(c *wfc.Config, raw string) error {
			v, err := parseBoolLike(raw)
			if err != nil {
				return fmt.Errorf("periodic_output: %w", err)
			}
			c.PeriodicOutput = v
			return nil
		},
	},
	{
		Name:        "symmetry",
		Description: "include the dihedral-4 orbit of every extracted pattern",
		Rule:        ValidationRule{Type: ParamTypeBool},
		Get:         func(c wfc.Config) string { return strconv.FormatBool(c.Symmetry) },
		Set: func(c *wfc.Config, raw string) error {
			v, err := parseBoolLike(raw)
			if err != nil {
				return fmt.Errorf("symmetry: %w", err)
			}
			c.Symmetry = v
			return nil
		},
	},
	{
		Name:        "ground",
		Description: "constrain the top/bottom rows to edge-touching patterns",
		Rule:        ValidationRule{Type: ParamTypeBool},
		Get:         func(c wfc.Config) string { return strconv.FormatBool(c.Ground) },
		Set: func(c *wfc.Config, raw string) error {
			v, err := parseBoolLike(raw)
			if err != nil {
				return fmt.Errorf("ground: %w", err)
			}
			c.Ground = v
			return nil
		},
	},
	{
		Name:        "sides",
		Description: "constrain the left/right columns to edge-touching patterns",
		Rule:        ValidationRule{Type: ParamTypeBool},
		Get:         func(c wfc.Config) string { return strconv.FormatBool(c.Sides) },
		Set: func(c *wfc.Config, raw string) error {
			v, err := parseBoolLike(raw)
			if err != nil {
				return fmt.Errorf("sides: %w", err)
			}
			c.Sides = v
			return nil
		},
	},
}

// parseBoolLike accepts common truthy/falsy forms.
func parseBoolLike(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "t", "true", "y", "yes", "on":
		return true, nil
	case "0", "f", "false", "n", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean: %q", s)
	}
}

// FindConfigOption looks up a ConfigOption by name.
func FindConfigOption(name string) (ConfigOption, bool) {
	for _, o := range ConfigOptions {
		if o.Name == name {
			return o, true
		}
	}
	return ConfigOption{}, false
}

// GenerateTooltip produces a one-line description of a ConfigOption
// suitable for display before prompting the user for a new value.
func GenerateTooltip(o ConfigOption) string {
	var sb strings.Builder
	sb.WriteString(o.Description)
	if o.Rule.Min != nil || o.Rule.Max != nil {
		sb.WriteString(" (")
		if o.Rule.Min != nil {
			sb.WriteString(fmt.Sprintf("min %v", *o.Rule.Min))
		}
		if o.Rule.Min != nil && o.Rule.Max != nil {
			sb.WriteString(", ")
		}
		if o.Rule.Max != nil {
			sb.WriteString(fmt.Sprintf("max %v", *o.Rule.Max))
		}
		sb.WriteString(")")
	}
	return sb.String()
}

// NormalizeConfigValue validates raw against o's rule without applying it,
// returning an error so callers can reprompt. It checks only Required and,
// for int options, that raw parses as a number within Min/Max; it does not
// check that an int value is whole or that a bool value is recognised —
// Set reports those.
func NormalizeConfigValue(o ConfigOption, raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" && o.Rule.Required {
		return fmt.Errorf("%s is required", o.Name)
	}
	if o.Rule.Type == ParamTypeInt {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("%s: expected a number, got %q", o.Name, raw)
		}
		if o.Rule.Min != nil && v < *o.Rule.Min {
			return fmt.Errorf("%s: %v is below the minimum %v", o.Name, v, *o.Rule.Min)
		}
		if o.Rule.Max != nil && v > *o.Rule.Max {
			return fmt.Errorf("%s: %v is above the maximum %v", o.Name, v, *o.Rule.Max)
		}
	}
	return nil
}
