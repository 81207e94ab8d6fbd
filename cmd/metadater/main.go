package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// args holds the command-line arguments
var args struct {
	InputDir   string `arg:"positional,required" help:"Directory holding the original media files"`
	OutputDir  string `arg:"positional,required" help:"Directory the normalized copies are written to"`
	Strategies string `arg:"-s,--strategies" help:"Comma-separated metadata sources in priority order (exif, json, filename)"`
	Formats    string `arg:"-n,--name-formats" help:"Comma-separated strftime patterns for parsing dates from filenames"`
	Jobs       int    `arg:"-j,--jobs" help:"Number of files to process concurrently"`
	Verify     bool   `arg:"--verify" help:"Checksum pass-through copies against their source"`
	DryRun     bool   `arg:"--dry-run" help:"Report what would be done without writing anything"`
	ConfigFile string `arg:"--config" help:"Path to config file"`
	Verbose    bool   `arg:"-v,--verbose" help:"Enable verbose output"`
}

// config holds the application configuration
type config struct {
	InputDir   string   `yaml:"input_directory"`
	OutputDir  string   `yaml:"output_directory"`
	Strategies []string `yaml:"strategies"`
	Formats    []string `yaml:"name_formats"`
	Jobs       int      `yaml:"jobs"`
	Verify     bool     `yaml:"verify"`
	DryRun     bool     `yaml:"dry_run"`
	ConfigFile string   `yaml:"-"`
	Verbose    bool     `yaml:"verbose"`
}

// setDefaults initializes the config with default values
func setDefaults(cfg *config) error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get user home directory: %v", err)
	}

	cfg.ConfigFile = filepath.Join(homeDir, ".metadaterrc")
	cfg.Strategies = []string{"exif", "json", "filename"}
	cfg.Formats = []string{"IMG_%Y%m%d_%H%M%S"}
	cfg.Jobs = 1
	cfg.Verify = false
	cfg.DryRun = false
	cfg.Verbose = false
	return nil
}

// parseConfigFile reads and parses the YAML configuration file
func parseConfigFile(cfg *config) error {
	data, err := os.ReadFile(cfg.ConfigFile)
	if err != nil {
		if os.IsNotExist(err) {
			// Config file doesn't exist, just return without an error
			return nil
		}
		return fmt.Errorf("failed to read config file: %v", err)
	}

	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		return fmt.Errorf("failed to parse config file: %v", err)
	}

	return nil
}

// validateConfig checks if the configuration is valid
func validateConfig(cfg *config) error {
	if cfg.InputDir == "" {
		return fmt.Errorf("input directory is not specified")
	}

	if cfg.OutputDir == "" {
		return fmt.Errorf("output directory is not specified")
	}

	if _, err := os.Stat(cfg.InputDir); os.IsNotExist(err) {
		return fmt.Errorf("input directory does not exist: %s", cfg.InputDir)
	}

	if len(cfg.Strategies) == 0 {
		return fmt.Errorf("no metadata strategies specified")
	}

	if cfg.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1, got %d", cfg.Jobs)
	}

	return nil
}

// wasFlagProvided checks if a CLI flag was explicitly provided
func wasFlagProvided(flagName string) bool {
	for _, a := range os.Args[1:] {
		if a == flagName || strings.HasPrefix(a, flagName+"=") {
			return true
		}
	}
	return false
}

// splitList turns a comma-separated flag value into its non-empty parts.
func splitList(value string) []string {
	var parts []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

func setupLogging(verbose bool) {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level)
}

func run() error {
	// Create an instance of the config struct
	cfg := config{}

	// Set default values first
	if err := setDefaults(&cfg); err != nil {
		return fmt.Errorf("setting defaults: %w", err)
	}

	// Parse command-line arguments
	arg.MustParse(&args)

	// Apply config file path from command-line argument if provided
	if args.ConfigFile != "" {
		cfg.ConfigFile = args.ConfigFile
	}

	// Parse configuration file
	if err := parseConfigFile(&cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	// Override with command-line arguments
	cfg.InputDir = args.InputDir
	cfg.OutputDir = args.OutputDir
	if args.Strategies != "" {
		cfg.Strategies = splitList(args.Strategies)
	}
	if args.Formats != "" {
		cfg.Formats = splitList(args.Formats)
	}
	if wasFlagProvided("-j") || wasFlagProvided("--jobs") {
		cfg.Jobs = args.Jobs
	}
	if wasFlagProvided("--verify") {
		cfg.Verify = args.Verify
	}
	if wasFlagProvided("--dry-run") {
		cfg.DryRun = args.DryRun
	}
	if wasFlagProvided("-v") || wasFlagProvided("--verbose") {
		cfg.Verbose = args.Verbose
	}

	// Validate the configuration
	if err := validateConfig(&cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	setupLogging(cfg.Verbose)

	if err := processFiles(cfg); err != nil {
		return fmt.Errorf("processing files: %w", err)
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
