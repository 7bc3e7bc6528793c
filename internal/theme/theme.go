package theme

import (
	"fmt"
	"sort"
)

// Name identifies a built-in theme.
type Name string

const (
	Starfleet Name = "starfleet"
	Corporate Name = "corporate"
)

// Feature is a theme-controlled capability.
type Feature string

const (
	FeatureSounds     Feature = "sounds"
	FeatureAnimations Feature = "animations"
	FeatureEffects    Feature = "effects"
)

// Config is a selectable bundle of display settings.
type Config struct {
	Name             Name   `json:"name"`
	EnableSounds     bool   `json:"enableSounds"`
	EnableAnimations bool   `json:"enableAnimations"`
	EnableEffects    bool   `json:"enableEffects"`
	AppName          string `json:"appName"`
}

// Enabled reports the flag for f. Unknown features are disabled.
func (c Config) Enabled(f Feature) bool {
	switch f {
	case FeatureSounds:
		return c.EnableSounds
	case FeatureAnimations:
		return c.EnableAnimations
	case FeatureEffects:
		return c.EnableEffects
	default:
		return false
	}
}

// Class returns the body class for the theme.
func (c Config) Class() string {
	return ClassFor(c.Name)
}

// CSS custom properties published with every change.
const (
	VarPrimary       = "--theme-primary"
	VarSecondary     = "--theme-secondary"
	VarBackground    = "--theme-background"
	VarSurface       = "--theme-surface"
	VarTextPrimary   = "--theme-text-primary"
	VarTextSecondary = "--theme-text-secondary"
	VarBorder        = "--theme-border"
	VarBorderRadius  = "--theme-border-radius"
	VarShadow        = "--theme-shadow"
)

var builtins = map[Name]Config{
	Starfleet: {
		Name:             Starfleet,
		EnableSounds:     true,
		EnableAnimations: true,
		EnableEffects:    true,
		AppName:          "Starfleet Gamifier",
	},
	Corporate: {
		Name:             Corporate,
		EnableSounds:     false,
		EnableAnimations: true,
		EnableEffects:    false,
		AppName:          "Corporate Gamifier",
	},
}

var palettes = map[Name]map[string]string{
	Corporate: {
		VarPrimary:       "#2563eb",
		VarSecondary:     "#64748b",
		VarBackground:    "#ffffff",
		VarSurface:       "#f8fafc",
		VarTextPrimary:   "#0f172a",
		VarTextSecondary: "#475569",
		VarBorder:        "#e2e8f0",
		VarBorderRadius:  "0.375rem",
		VarShadow:        "0 1px 3px 0 rgb(0 0 0 / 0.1)",
	},
	// LCARS colors
	Starfleet: {
		VarPrimary:       "#FF9900",
		VarSecondary:     "#CC6666",
		VarBackground:    "#000000",
		VarSurface:       "#111111",
		VarTextPrimary:   "#CCCCCC",
		VarTextSecondary: "#999999",
		VarBorder:        "#333333",
		VarBorderRadius:  "0",
		VarShadow:        "0 0 10px rgba(255, 153, 0, 0.3)",
	},
}

// Builtin returns the built-in configuration for name.
func Builtin(name Name) (Config, bool) {
	cfg, ok := builtins[name]
	return cfg, ok
}

// ParseName resolves a theme name.
func ParseName(s string) (Name, error) {
	name := Name(s)
	if _, ok := builtins[name]; !ok {
		return "", fmt.Errorf("unknown theme %q", s)
	}
	return name, nil
}

// Names returns every built-in theme name, sorted.
func Names() []Name {
	names := make([]Name, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// ClassFor returns "theme-<name>".
func ClassFor(name Name) string {
	return "theme-" + string(name)
}

// Variables returns a copy of the CSS variables for name. Anything that is
// not corporate gets the LCARS palette.
func Variables(name Name) map[string]string {
	src, ok := palettes[name]
	if !ok {
		src = palettes[Starfleet]
	}
	vars := make(map[string]string, len(src))
	for k, v := range src {
		vars[k] = v
	}
	return vars
}
