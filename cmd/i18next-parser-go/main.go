package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"i18next-parser-go/packages/extractor/config"
	"i18next-parser-go/packages/extractor/runner"
)

func main() {
	var (
		configPath = pflag.StringP("config", "c", "", "path to a YAML configuration file")
		root       = pflag.String("root", "", "directory to evaluate input patterns against")
		locales    = pflag.StringSlice("locales", nil, "target locales, e.g. en,de,ar")
		output     = pflag.String("output", "", "catalog path template ($LOCALE, $NAMESPACE)")
		namespace  = pflag.String("namespace", "", "default namespace for extracted keys")
		dryRun     = pflag.Bool("dry-run", false, "analyze and report without writing catalogs")
		verbose    = pflag.BoolP("verbose", "v", false, "enable debug logging")
	)
	pflag.Parse()

	logger, err := newLogger(*verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg := config.Default()
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
		if err != nil {
			logger.Error("config", zap.Error(err))
			os.Exit(1)
		}
	}
	if *root != "" {
		cfg.Root = *root
	}
	if len(*locales) > 0 {
		cfg.Locales = *locales
	}
	if *output != "" {
		cfg.Output = *output
	}
	if *namespace != "" {
		cfg.DefaultNamespace = *namespace
	}
	cfg.DryRun = *dryRun
	if err := cfg.Validate(); err != nil {
		logger.Error("config", zap.Error(err))
		os.Exit(1)
	}

	result, err := runner.New(cfg, logger).Run()
	if err != nil {
		logger.Error("extraction failed", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("extraction complete",
		zap.Int("files", result.Files),
		zap.Int("catalogs", len(result.Catalogs)),
		zap.Int("parseErrors", result.ParseErrors))
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.DisableStacktrace = true
	return cfg.Build()
}
