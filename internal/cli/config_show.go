// Package cli provides the command-line interface for quill.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mrz1836/quill/internal/config"
	"github.com/mrz1836/quill/internal/tui"
)

// newConfigCmd creates the config parent command.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect quill configuration",
		Long: `Inspect the configuration quill resolves from its config files.

Values are merged from four layers, highest precedence first: QUILL_*
environment variables, the project config (.quill/config.yaml), the
global config (~/.quill/config.yaml), and built-in defaults.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	addConfigShowCmd(cmd)

	return cmd
}

// AddConfigCommand adds the config command to the root command.
func AddConfigCommand(rootCmd *cobra.Command) {
	rootCmd.AddCommand(newConfigCmd())
}

// newConfigShowCmd creates the 'config show' subcommand.
func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display effective configuration",
		Long: `Display the effective configuration with source annotations.

Each value is tagged with the layer it came from:
  - default: built-in default value
  - global:  ~/.quill/config.yaml
  - project: .quill/config.yaml
  - env:     QUILL_* environment variable

Examples:
  quill config show
  quill config show -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigShow(cmd.Context(), cmd)
		},
		SilenceUsage: true,
	}
}

// addConfigShowCmd adds the show subcommand to the config command.
func addConfigShowCmd(configCmd *cobra.Command) {
	configCmd.AddCommand(newConfigShowCmd())
}

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	// SourceDefault indicates the value is a built-in default.
	SourceDefault ConfigSource = "default"
	// SourceGlobal indicates the value came from the global config file.
	SourceGlobal ConfigSource = "global"
	// SourceProject indicates the value came from the project config file.
	SourceProject ConfigSource = "project"
	// SourceEnv indicates the value came from an environment variable.
	SourceEnv ConfigSource = "env"
)

// ConfigValueWithSource pairs a configuration value with its source layer.
type ConfigValueWithSource struct {
	Value  any          `json:"value" yaml:"value"`
	Source ConfigSource `json:"source" yaml:"source"`
}

// AnnotatedConfig mirrors the config sections with per-value sources.
type AnnotatedConfig struct {
	Keys    map[string]ConfigValueWithSource `json:"keys" yaml:"keys"`
	GenPass map[string]ConfigValueWithSource `json:"genpass" yaml:"genpass"`
	Sign    map[string]ConfigValueWithSource `json:"sign" yaml:"sign"`
	CSV     map[string]ConfigValueWithSource `json:"csv" yaml:"csv"`
	Log     map[string]ConfigValueWithSource `json:"log" yaml:"log"`
}

// configShowStyles contains styling for the config show command output.
type configShowStyles struct {
	header    lipgloss.Style
	section   lipgloss.Style
	key       lipgloss.Style
	value     lipgloss.Style
	sourceEnv lipgloss.Style
	sourcePrj lipgloss.Style
	sourceGbl lipgloss.Style
	sourceDef lipgloss.Style
	dim       lipgloss.Style
}

// newConfigShowStyles creates styles for config show command output.
func newConfigShowStyles() *configShowStyles {
	return &configShowStyles{
		header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00D7FF")).
			MarginBottom(1),
		section: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")),
		key: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00D7FF")),
		value: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")),
		sourceEnv: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F5F")), // Red for env (highest precedence)
		sourcePrj: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")), // Yellow for project
		sourceGbl: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF87")), // Green for global
		sourceDef: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")), // Gray for default
		dim: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")),
	}
}

// runConfigShow executes the config show command.
func runConfigShow(ctx context.Context, cmd *cobra.Command) error {
	logger := GetLogger()

	cfg, err := config.Load(logger.WithContext(ctx))
	if err != nil {
		return err
	}

	annotated := buildAnnotatedConfig(cfg)

	if outputFormat(cmd) == OutputJSON {
		out := tui.NewOutput(cmd.OutOrStdout(), OutputJSON)
		return out.JSON(annotated)
	}

	return renderAnnotatedConfig(cmd.OutOrStdout(), annotated)
}

// buildAnnotatedConfig tags every effective value with the layer it came
// from by comparing against the raw per-file values.
func buildAnnotatedConfig(cfg *config.Config) *AnnotatedConfig {
	globalValues := loadGlobalConfigValues()
	projectValues := loadProjectConfigValues()

	annotated := &AnnotatedConfig{
		Keys:    make(map[string]ConfigValueWithSource),
		GenPass: make(map[string]ConfigValueWithSource),
		Sign:    make(map[string]ConfigValueWithSource),
		CSV:     make(map[string]ConfigValueWithSource),
		Log:     make(map[string]ConfigValueWithSource),
	}

	annotated.Keys["dir"] = determineSource("keys.dir", cfg.Keys.Dir, globalValues, projectValues)

	annotated.GenPass["length"] = determineSource("genpass.length", cfg.GenPass.Length, globalValues, projectValues)
	annotated.GenPass["upper"] = determineSource("genpass.upper", cfg.GenPass.Upper, globalValues, projectValues)
	annotated.GenPass["lower"] = determineSource("genpass.lower", cfg.GenPass.Lower, globalValues, projectValues)
	annotated.GenPass["digits"] = determineSource("genpass.digits", cfg.GenPass.Digits, globalValues, projectValues)
	annotated.GenPass["symbols"] = determineSource("genpass.symbols", cfg.GenPass.Symbols, globalValues, projectValues)

	annotated.Sign["timeout"] = determineSource("sign.timeout", cfg.Sign.Timeout.String(), globalValues, projectValues)
	annotated.Sign["workers"] = determineSource("sign.workers", cfg.Sign.Workers, globalValues, projectValues)

	annotated.CSV["delimiter"] = determineSource("csv.delimiter", cfg.CSV.Delimiter, globalValues, projectValues)

	annotated.Log["level"] = determineSource("log.level", cfg.Log.Level, globalValues, projectValues)
	annotated.Log["file_enabled"] = determineSource("log.file_enabled", cfg.Log.FileEnabled, globalValues, projectValues)

	return annotated
}

// configValues holds a config file flattened into dotted keys.
type configValues map[string]any

// loadGlobalConfigValues loads the raw global config for source comparison.
func loadGlobalConfigValues() configValues {
	globalPath, err := config.GlobalConfigPath()
	if err != nil {
		return nil
	}
	return loadConfigValues(globalPath)
}

// loadProjectConfigValues loads the raw project config for source comparison.
func loadProjectConfigValues() configValues {
	return loadConfigValues(config.ProjectConfigPath())
}

// loadConfigValues parses a config file into dotted keys. A missing or
// unparseable file reads as empty: the value then falls through to the
// next layer.
func loadConfigValues(path string) configValues {
	data, err := os.ReadFile(path) //nolint:gosec // Config file path
	if err != nil {
		return nil
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil
	}

	values := make(configValues)
	flattenConfigValues("", raw, values)

	return values
}

// flattenConfigValues walks nested maps into dotted keys: keys.dir,
// genpass.length.
func flattenConfigValues(prefix string, raw map[string]any, out configValues) {
	for key, value := range raw {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}

		if nested, ok := value.(map[string]any); ok {
			flattenConfigValues(full, nested, out)
			continue
		}

		out[full] = value
	}
}

// determineSource reports which layer supplied a configuration value,
// mirroring load precedence: env, project, global, default.
func determineSource(key string, value any, globalValues, projectValues configValues) ConfigValueWithSource {
	envKey := "QUILL_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
	if envVal := os.Getenv(envKey); envVal != "" {
		return ConfigValueWithSource{Value: value, Source: SourceEnv}
	}

	if _, exists := projectValues[key]; exists {
		return ConfigValueWithSource{Value: value, Source: SourceProject}
	}

	if _, exists := globalValues[key]; exists {
		return ConfigValueWithSource{Value: value, Source: SourceGlobal}
	}

	return ConfigValueWithSource{Value: value, Source: SourceDefault}
}

// renderAnnotatedConfig prints the annotated configuration as styled YAML.
func renderAnnotatedConfig(w io.Writer, annotated *AnnotatedConfig) error {
	styles := newConfigShowStyles()

	_, _ = fmt.Fprintln(w, styles.header.Render("Effective quill configuration"))
	_, _ = fmt.Fprintln(w, styles.dim.Render("Sources: ")+
		styles.sourceEnv.Render("env")+" > "+
		styles.sourcePrj.Render("project")+" > "+
		styles.sourceGbl.Render("global")+" > "+
		styles.sourceDef.Render("default"))
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintln(w, styles.section.Render("keys:"))
	printConfigValue(w, styles, "  dir", annotated.Keys["dir"])
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintln(w, styles.section.Render("genpass:"))
	printConfigValue(w, styles, "  length", annotated.GenPass["length"])
	printConfigValue(w, styles, "  upper", annotated.GenPass["upper"])
	printConfigValue(w, styles, "  lower", annotated.GenPass["lower"])
	printConfigValue(w, styles, "  digits", annotated.GenPass["digits"])
	printConfigValue(w, styles, "  symbols", annotated.GenPass["symbols"])
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintln(w, styles.section.Render("sign:"))
	printConfigValue(w, styles, "  timeout", annotated.Sign["timeout"])
	printConfigValue(w, styles, "  workers", annotated.Sign["workers"])
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintln(w, styles.section.Render("csv:"))
	printConfigValue(w, styles, "  delimiter", annotated.CSV["delimiter"])
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintln(w, styles.section.Render("log:"))
	printConfigValue(w, styles, "  level", annotated.Log["level"])
	printConfigValue(w, styles, "  file_enabled", annotated.Log["file_enabled"])
	_, _ = fmt.Fprintln(w)

	printConfigLocations(w, styles)

	return nil
}

// printConfigValue prints one value with its source annotation.
func printConfigValue(w io.Writer, styles *configShowStyles, key string, vs ConfigValueWithSource) {
	sourceStyle := styles.sourceDef
	switch vs.Source {
	case SourceEnv:
		sourceStyle = styles.sourceEnv
	case SourceProject:
		sourceStyle = styles.sourcePrj
	case SourceGlobal:
		sourceStyle = styles.sourceGbl
	case SourceDefault:
	}

	_, _ = fmt.Fprintf(w, "%s: %s  %s\n",
		styles.key.Render(key),
		styles.value.Render(formatConfigValue(vs.Value)),
		sourceStyle.Render("# "+string(vs.Source)))
}

// formatConfigValue converts a configuration value to display form.
func formatConfigValue(value any) string {
	if s, ok := value.(string); ok {
		if s == "" {
			return "(not set)"
		}
		return s
	}

	return fmt.Sprintf("%v", value)
}

// printConfigLocations lists the config files and whether they exist.
func printConfigLocations(w io.Writer, styles *configShowStyles) {
	_, _ = fmt.Fprintln(w, styles.dim.Render("Configuration files:"))

	if globalPath, err := config.GlobalConfigPath(); err == nil {
		if _, err := os.Stat(globalPath); err == nil {
			_, _ = fmt.Fprintln(w, styles.dim.Render("  Global:  ")+styles.sourceGbl.Render(globalPath))
		} else {
			_, _ = fmt.Fprintln(w, styles.dim.Render("  Global:  "+globalPath+" (not found)"))
		}
	}

	projectPath := config.ProjectConfigPath()
	if _, err := os.Stat(projectPath); err == nil {
		absPath, _ := filepath.Abs(projectPath)
		_, _ = fmt.Fprintln(w, styles.dim.Render("  Project: ")+styles.sourcePrj.Render(absPath))
	} else {
		_, _ = fmt.Fprintln(w, styles.dim.Render("  Project: "+projectPath+" (not found)"))
	}
}
