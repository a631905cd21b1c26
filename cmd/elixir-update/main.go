// Command elixir-update runs the incremental indexing pipeline: it opens
// the configured store, shells out to the project's collaborator to list
// tags, and indexes every tag that isn't fully indexed yet. Ported from
// registry/root.go + registry/registry.go's ServeCmd/resolveConfiguration
// pair, trimmed of everything HTTP-serving.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bootlin/elixir/collaborator"
	"github.com/bootlin/elixir/configuration"
	"github.com/bootlin/elixir/health"
	"github.com/bootlin/elixir/health/checks"
	"github.com/bootlin/elixir/internal/dcontext"
	"github.com/bootlin/elixir/store"
	"github.com/bootlin/elixir/updater"
	"github.com/bootlin/elixir/version"
)

const defaultLogFormatter = "text"

var showVersion bool

func init() {
	rootCmd.Flags().BoolVarP(&showVersion, "version", "v", false, "show the version and exit")
}

var rootCmd = &cobra.Command{
	Use:   "elixir-update <config>",
	Short: "`elixir-update` incrementally indexes a project's source tree",
	Long:  "`elixir-update` incrementally indexes a project's source tree",
	Run: func(cmd *cobra.Command, args []string) {
		if showVersion {
			version.PrintVersion()
			return
		}

		config, err := resolveConfiguration(args)
		if err != nil {
			fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
			// nolint:errcheck
			cmd.Usage()
			os.Exit(1)
		}

		ctx := context.Background()
		ctx, err = configureLogging(ctx, config)
		if err != nil {
			fmt.Fprintf(os.Stderr, "unable to configure logging: %v\n", err)
			os.Exit(1)
		}

		if err := run(ctx, config); err != nil {
			dcontext.GetLogger(ctx).Errorf("update failed: %v", err)
			os.Exit(1)
		}
	},
}

func run(ctx context.Context, config *configuration.Configuration) error {
	db, err := store.Open(config.Project.DataDir, config.Project.DTSComp)
	if err != nil {
		return fmt.Errorf("open store at %s: %w", config.Project.DataDir, err)
	}
	defer db.Close()

	collab := &collaborator.Exec{
		Command:  config.Collaborator.Command,
		BaseArgs: config.Collaborator.Args,
		Timeout:  config.Collaborator.BlobTimeout,
	}

	registerHealthChecks(config, db, collab)

	u := &updater.Updater{
		DB:      db,
		Collab:  collab,
		Workers: config.Updater.Workers,
		DTSComp: config.Project.DTSComp,
	}

	return u.UpdateAll(ctx)
}

func registerHealthChecks(config *configuration.Configuration, db *store.DB, collab collaborator.Collaborator) {
	registry := health.NewRegistry()
	registry.Register("store", checks.StoreChecker(db))
	registry.Register("collaborator", checks.CollaboratorChecker(collab))
	for i, fc := range config.Health.FileCheckers {
		registry.RegisterFunc(fmt.Sprintf("file-%d", i), func(ctx context.Context) error {
			return checks.FileChecker(fc.File).Check(ctx)
		})
	}
}

func resolveConfiguration(args []string) (*configuration.Configuration, error) {
	var configurationPath string

	if len(args) > 0 {
		configurationPath = args[0]
	} else if os.Getenv("ELIXIR_CONFIGURATION_PATH") != "" {
		configurationPath = os.Getenv("ELIXIR_CONFIGURATION_PATH")
	}

	if configurationPath == "" {
		return nil, fmt.Errorf("configuration path unspecified")
	}

	fp, err := os.Open(configurationPath)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	config, err := configuration.Parse(fp)
	if err != nil {
		return nil, fmt.Errorf("error parsing %s: %v", configurationPath, err)
	}

	return config, nil
}

func configureLogging(ctx context.Context, config *configuration.Configuration) (context.Context, error) {
	logrus.SetLevel(logLevel(config.Log.Level))
	logrus.SetReportCaller(config.Log.ReportCaller)

	formatter := config.Log.Formatter
	if formatter == "" {
		formatter = defaultLogFormatter
	}

	switch formatter {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat:   time.RFC3339Nano,
			DisableHTMLEscape: true,
		})
	case "text":
		logrus.SetFormatter(&logrus.TextFormatter{
			TimestampFormat: time.RFC3339Nano,
		})
	default:
		return ctx, fmt.Errorf("unsupported logging formatter: %q", formatter)
	}

	logrus.Debugf("using %q logging formatter", formatter)
	dcontext.SetDefaultLogger(dcontext.GetLogger(ctx))
	return ctx, nil
}

func logLevel(level configuration.Loglevel) logrus.Level {
	l, err := logrus.ParseLevel(string(level))
	if err != nil {
		l = logrus.InfoLevel
		logrus.Warnf("error parsing level %q: %v, using %q", level, err, l)
	}
	return l
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
