package types

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

type Verbosity string

const (
	VerbosityQuiet    Verbosity = "quiet"
	VerbosityNormal   Verbosity = "normal"
	VerbosityDetailed Verbosity = "detailed"
)

// ParseVerbosity accepts the three levels understood by the packaging
// executable, case-insensitively.
func ParseVerbosity(value string) (Verbosity, error) {
	switch Verbosity(strings.ToLower(strings.TrimSpace(value))) {
	case VerbosityQuiet:
		return VerbosityQuiet, nil
	case VerbosityNormal:
		return VerbosityNormal, nil
	case VerbosityDetailed:
		return VerbosityDetailed, nil
	default:
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unknown verbosity %q (expected quiet, normal or detailed)", value))
	}
}

type FeedSettings struct {
	URL string `yaml:"url"`
	Key string `yaml:"key"`
}

// Settings is the operator preference snapshot. An engine receives it by
// value at construction and never changes it; edits produce a new value
// through the With* methods.
type Settings struct {
	Feed                      FeedSettings `yaml:"feed"`
	Verbosity                 Verbosity    `yaml:"verbosity"`
	IncludeSymbols            bool         `yaml:"include_symbols"`
	IncludeReferencedProjects bool         `yaml:"include_referenced_projects"`
	BuildBeforePack           bool         `yaml:"build_before_pack"`
	DefaultOutputDir          string       `yaml:"default_output_dir"`
	UseDefaultOutput          bool         `yaml:"use_default_output"`
}

func DefaultSettings() Settings {
	return Settings{
		Verbosity:                 VerbosityDetailed,
		IncludeSymbols:            true,
		IncludeReferencedProjects: true,
		BuildBeforePack:           true,
	}
}

func (s Settings) WithFeed(url string, key string) Settings {
	s.Feed = FeedSettings{URL: url, Key: key}
	return s
}

func (s Settings) WithVerbosity(v Verbosity) Settings {
	s.Verbosity = v
	return s
}

func (s Settings) WithSymbols(enabled bool) Settings {
	s.IncludeSymbols = enabled
	return s
}

func (s Settings) WithReferencedProjects(enabled bool) Settings {
	s.IncludeReferencedProjects = enabled
	return s
}

func (s Settings) WithBuild(enabled bool) Settings {
	s.BuildBeforePack = enabled
	return s
}

func (s Settings) WithDefaultOutput(dir string, use bool) Settings {
	s.DefaultOutputDir = dir
	s.UseDefaultOutput = use
	return s
}
