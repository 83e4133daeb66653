/*
Copyright © 2025 David Stockton <dave@davidstockton.com>
*/
package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dstockto/cci/models"
	"github.com/fatih/color"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/op/go-logging"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	projectName       = "cci"
	projectConfigFile = "cumulusci.yml"
	defaultLogLevel   = "warning"
)

// projectVersion is set at build time with -ldflags.
var projectVersion = "dev"

// ErrNoProject is returned by commands that need a cumulusci.yml when none was found.
var ErrNoProject = errors.New("no project config found; run this command inside a project or pass --config")

// Project holds the loaded project configuration and is available to all commands.
var Project *models.ProjectConfig

// cfgFile is set from --config flag.
var cfgFile string

// noColor toggles ANSI color output off when set via --no-color flag.
var noColor bool

var logLevel string

var log = logging.MustGetLogger(projectName)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:     projectName,
	Short:   "cci describes the install plans of a project",
	Long:    `cci reads a project's cumulusci.yml and reports on the plans defined in it.`,
	Version: projectVersion,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if noColor {
			color.NoColor = true
		}

		level, err := logging.LogLevel(logLevel)
		if err != nil {
			return fmt.Errorf("invalid log-level '%s': %w", logLevel, err)
		}
		logging.SetLevel(level, projectName)

		// Load config only once; subsequent subcommands in the chain need not reload
		if Project != nil {
			return nil
		}
		var project *models.ProjectConfig
		if cfgFile != "" {
			project, err = LoadConfig(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load config from %s: %w", cfgFile, err)
			}
		} else {
			project, err = LoadMergedConfig()
			if err != nil {
				return fmt.Errorf("unable to load config: %w", err)
			}
		}
		// Config is optional here; commands that need it check for nil
		if project == nil {
			return nil
		}

		if err := prepareProject(project); err != nil {
			return err
		}
		Project = project

		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// LoadConfig reads and parses a cumulusci.yml from the given path.
func LoadConfig(path string) (*models.ProjectConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var c models.ProjectConfig
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("yaml config parsing error: %w", err)
	}

	return &c, nil
}

// prepareProject applies defaults and validates a freshly loaded project.
func prepareProject(p *models.ProjectConfig) error {
	p.ApplyDefaults()
	if err := p.Validate(); err != nil {
		return fmt.Errorf("invalid project config: %w", err)
	}
	if projectVersion != "dev" {
		if err := models.CheckMinimumVersion(p.MinimumVersion, projectVersion); err != nil {
			return err
		}
	}
	for _, name := range p.UnknownTiers() {
		log.Warningf("Plan '%s' has unknown tier '%s'; it will be listed last", name, p.Plans[name].Tier)
	}
	return nil
}

func exists(path string) bool {
	if path == "" {
		return false
	}

	info, err := os.Stat(path)
	if err != nil {
		return !errors.Is(err, fs.ErrNotExist)
	}

	return !info.IsDir()
}

//nolint:gochecknoinits
func init() {
	logging.SetFormatter(logging.MustStringFormatter("[%{level:-5s}] %{message}"))
	// Global config flag for all commands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to project config file (cumulusci.yml)")
	// Global color toggle
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable ANSI color output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", defaultLogLevel, "Log level (debug|info|warning|error)")
}

// LoadMergedConfig attempts to load and merge configs from standard locations when no explicit --config is provided.
// Precedence (later overrides earlier):
//  1. $HOME/.cumulusci/cumulusci.yml
//  2. $XDG_CONFIG_HOME/cumulusci/cumulusci.yml
//  3. ./cumulusci.yml (current working directory)
//
// If none exist, returns (nil, nil).
func LoadMergedConfig() (*models.ProjectConfig, error) {
	paths := discoverConfigPaths()
	if len(paths) == 0 {
		return nil, nil
	}

	merged := &models.ProjectConfig{}

	for _, p := range paths {
		log.Debugf("Loading config from %s", p)
		c, err := LoadConfig(p)
		if err != nil {
			return nil, fmt.Errorf("failed loading %s: %w", p, err)
		}

		mergeInto(merged, c)
	}

	return merged, nil
}

// discoverConfigPaths returns existing config paths in merge order.
func discoverConfigPaths() []string {
	var out []string
	// 1) HOME
	if home, _ := homedir.Dir(); home != "" {
		p := filepath.Join(home, ".cumulusci", projectConfigFile)
		if exists(p) {
			out = append(out, p)
		}
	}
	// 2) XDG
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		p := filepath.Join(xdg, "cumulusci", projectConfigFile)
		if exists(p) {
			out = append(out, p)
		}
	}
	// 3) CWD
	if cwd, _ := os.Getwd(); cwd != "" {
		p := filepath.Join(cwd, projectConfigFile)
		if exists(p) {
			out = append(out, p)
		}
	}

	return out
}

// mergeInto copies non-zero values and maps from src into dst.
// Maps are merged by keys; src keys override dst.
func mergeInto(dst, src *models.ProjectConfig) {
	if src == nil || dst == nil {
		return
	}

	if src.MinimumVersion != "" {
		dst.MinimumVersion = src.MinimumVersion
	}

	if src.Project.Name != "" {
		dst.Project.Name = src.Project.Name
	}

	if src.Project.Package.Name != "" {
		dst.Project.Package.Name = src.Project.Package.Name
	}

	if src.Project.Package.Namespace != "" {
		dst.Project.Package.Namespace = src.Project.Package.Namespace
	}
	// maps
	dst.Tasks = mergeMap(dst.Tasks, src.Tasks)
	dst.Flows = mergeMap(dst.Flows, src.Flows)
	dst.Plans = mergeMap(dst.Plans, src.Plans)
}

func mergeMap[V any](dst, src map[string]V) map[string]V {
	if src == nil {
		return dst
	}
	if dst == nil {
		dst = map[string]V{}
	}
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
