// SPDX-License-Identifier: MPL-2.0

// Package config holds the componize options and their defaults.
//
// Options come from three layers, later winning: built-in defaults, an
// optional componize.json config file, and COMPONIZE_* environment
// variables. Overriding one option leaves every other at its default.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"componize/internal/issue"
)

// ConfigFileName is the optional per-site config file, looked up in the
// working directory when no explicit path is given.
const ConfigFileName = "componize.json"

// ErrLoad marks any failure to read or decode the config file.
var ErrLoad = errors.New("configuration load failed")

// loadFailure wraps a config read or decode error with remediation
// context for the CLI's error display.
func loadFailure(err error, path string) error {
	return issue.NewErrorContext().
		WithOperation("load configuration").
		WithResource(path).
		WithSuggestion("Check that the config file is strict JSON").
		WithSuggestion("Remove the file to fall back to defaults").
		Wrap(fmt.Errorf("%w: %v", ErrLoad, err)).
		BuildError()
}

// Options is the full set of knobs a build runs with.
type Options struct {
	// BasePath is the site root every relative path below resolves against.
	BasePath string `mapstructure:"basePath"`
	// ComponentsPath is the directory holding the component trees.
	ComponentsPath string `mapstructure:"componentsPath"`
	// SectionsDir is the page-level component tree and marker segment.
	SectionsDir string `mapstructure:"sectionsDir"`
	// PartialsDir is the base-level component tree and marker segment.
	PartialsDir string `mapstructure:"partialsDir"`
	// LayoutsPath is the layouts tree scanned for template references.
	LayoutsPath string `mapstructure:"layoutsPath"`
	// CSSDest is the stylesheet bundle path under the output directory.
	CSSDest string `mapstructure:"cssDest"`
	// JSDest is the script bundle path under the output directory.
	JSDest string `mapstructure:"jsDest"`
	// Extensions are the file extensions scanned for component usage.
	Extensions []string `mapstructure:"extensions"`
	// ExcludeDirs are directories pruned from the usage scan.
	ExcludeDirs []string `mapstructure:"excludeDirs"`
	// Minify runs bundle output through the minifier.
	Minify bool `mapstructure:"minify"`
	// Strict escalates diagnostics and compile failures to build errors.
	Strict bool `mapstructure:"strict"`
	// Verbose enables debug logging.
	Verbose bool `mapstructure:"verbose"`
}

// Default returns the documented default options.
func Default() *Options {
	opts := &Options{}
	// Defaults always decode into Options.
	_ = applyDefaults(viper.New()).Unmarshal(opts)
	return opts
}

// Load builds Options from defaults, the optional config file, and the
// environment. cfgFile overrides the config file location; empty means
// "look for componize.json in the working directory, tolerate absence".
func Load(cfgFile string) (*Options, error) {
	v := applyDefaults(viper.New())

	v.SetEnvPrefix("COMPONIZE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	usedFile := cfgFile
	switch {
	case cfgFile != "":
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, loadFailure(err, cfgFile)
		}
	default:
		if _, err := os.Stat(ConfigFileName); err == nil {
			usedFile = ConfigFileName
			v.SetConfigFile(ConfigFileName)
			if err := v.ReadInConfig(); err != nil {
				return nil, loadFailure(err, ConfigFileName)
			}
		}
	}

	opts := &Options{}
	if err := v.Unmarshal(opts); err != nil {
		return nil, loadFailure(err, usedFile)
	}
	return opts, nil
}

func applyDefaults(v *viper.Viper) *viper.Viper {
	v.SetDefault("basePath", ".")
	v.SetDefault("componentsPath", "components")
	v.SetDefault("sectionsDir", "sections")
	v.SetDefault("partialsDir", "partials")
	v.SetDefault("layoutsPath", "layouts")
	v.SetDefault("cssDest", filepath.Join("assets", "css", "bundle.css"))
	v.SetDefault("jsDest", filepath.Join("assets", "js", "bundle.js"))
	v.SetDefault("extensions", []string{".njk", ".md", ".html"})
	v.SetDefault("excludeDirs", []string{"node_modules", "dist", ".git"})
	v.SetDefault("minify", false)
	v.SetDefault("strict", false)
	v.SetDefault("verbose", false)
	return v
}

// SectionsRoot is the directory discovered for page-level components.
func (o *Options) SectionsRoot() string {
	return filepath.Join(o.BasePath, o.ComponentsPath, o.SectionsDir)
}

// PartialsRoot is the directory discovered for base-level components.
func (o *Options) PartialsRoot() string {
	return filepath.Join(o.BasePath, o.ComponentsPath, o.PartialsDir)
}

// LayoutsRoot is the layouts directory scanned for template references.
func (o *Options) LayoutsRoot() string {
	return filepath.Join(o.BasePath, o.LayoutsPath)
}

// Markers are the path segments that mark component directories inside
// template reference paths.
func (o *Options) Markers() []string {
	return []string{o.PartialsDir, o.SectionsDir}
}

// TemplateExt is the extension treated as a template in the layouts
// scan: the first configured extension.
func (o *Options) TemplateExt() string {
	if len(o.Extensions) == 0 {
		return ".njk"
	}
	return o.Extensions[0]
}
