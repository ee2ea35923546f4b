// Command escprender is a thin demo CLI around the core. Real CLI/option
// parsing, config-file discovery and PDF writing are external-collaborator
// concerns — this binary exists only to exercise
// pkg/escprender end to end: read a raw ESC/P job file, run it through the
// interpreter, and print the recorded backend calls.
package main

import (
	"flag"
	"fmt"
	"os"

	"escprender/internal/backend"
	"escprender/internal/config"
	"escprender/pkg/escprender"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "escprender:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to the configuration file (yaml/json/toml)")
	jobPath := flag.String("job", "", "path to the raw ESC/P job file to convert")
	flag.Parse()

	if *jobPath == "" {
		return fmt.Errorf("-job is required")
	}

	var cfg *config.Config
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	} else {
		cfg = defaultConfig()
	}

	data, err := os.ReadFile(*jobPath)
	if err != nil {
		return fmt.Errorf("reading job file: %w", err)
	}

	rec := &backend.Recording{}
	job, err := escprender.NewJob(cfg, "", escprender.Options{Page: rec})
	if err != nil {
		return fmt.Errorf("building job: %w", err)
	}

	if err := job.Run(data); err != nil {
		return fmt.Errorf("running job: %w", err)
	}

	for _, call := range rec.Calls {
		fmt.Println(call)
	}
	return nil
}

// defaultConfig provides a usable Configuration when the
// caller doesn't point at a config file, so the demo CLI works out of the
// box against a plain-ASCII/default-margins job.
func defaultConfig() *config.Config {
	return &config.Config{
		Pins:         24,
		SingleSheets: true,
		Renderer:     "dots",
		PageSize:     config.PageSizeConfig{Alias: "Letter"},
		Logging: config.LoggingConfig{
			Level:  "info",
			Format: "console",
			Output: "stderr",
		},
	}
}
