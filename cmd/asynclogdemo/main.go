package main

import (
	"fmt"
	"io"
	"os"

	"github.com/gourdian25/asynclogger"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type demoOptions struct {
	file       string
	configFile string
	level      string
	producers  int
	messages   int
	warnings   int
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	opts := demoOptions{}

	cmd := &cobra.Command{
		Use:   "asynclogdemo",
		Short: "Drive an async logger from several concurrent producers",
		Long: `asynclogdemo opens an async logger, starts producer goroutines that log
INFO and WARN lines concurrently, logs a final ERROR once they are done, then
waits until every line is on disk and prints the logger's counters.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := run(opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "accepted=%d written=%d dropped=%d write_failures=%d\n",
				stats.Accepted, stats.Written, stats.Dropped, stats.WriteFailures)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "app.log", "Log file to append to")
	cmd.Flags().StringVarP(&opts.configFile, "config", "c", "", "Logger config file (.json, .yaml, .yml); overrides --file")
	cmd.Flags().StringVarP(&opts.level, "level", "l", "info", "Minimum level to record (info, warn, error)")
	cmd.Flags().IntVar(&opts.producers, "producers", 2, "Number of INFO producers")
	cmd.Flags().IntVar(&opts.messages, "messages", 200, "INFO messages per producer")
	cmd.Flags().IntVar(&opts.warnings, "warnings", 50, "WARN messages from the background producer")

	return cmd
}

func run(opts demoOptions) (asynclogger.Stats, error) {
	config := asynclogger.DefaultConfig()
	if opts.configFile != "" {
		loaded, err := asynclogger.LoadConfigFile(opts.configFile)
		if err != nil {
			return asynclogger.Stats{}, err
		}
		config = loaded
	} else {
		config.Path = opts.file
		level, err := asynclogger.ParseLogLevel(opts.level)
		if err != nil {
			return asynclogger.Stats{}, err
		}
		config.LogLevel = level
	}
	if opts.producers < 0 || opts.messages < 0 || opts.warnings < 0 {
		return asynclogger.Stats{}, errors.New("producer and message counts cannot be negative")
	}

	logger, err := asynclogger.NewAsyncLogger(config)
	if err != nil {
		return asynclogger.Stats{}, errors.Wrap(err, "create logger")
	}

	var g errgroup.Group
	for id := 1; id <= opts.producers; id++ {
		id := id
		g.Go(func() error {
			for i := 0; i < opts.messages; i++ {
				logger.Infof("thread %d message %d", id, i)
			}
			return nil
		})
	}
	g.Go(func() error {
		for i := 0; i < opts.warnings; i++ {
			logger.Warnf("background warning %d", i)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		logger.Close()
		return asynclogger.Stats{}, err
	}

	logger.Error("All worker threads finished")
	logger.WaitUntilDrained()

	stats := logger.Stats()
	if err := logger.Close(); err != nil {
		return stats, errors.Wrap(err, "close logger")
	}
	return stats, nil
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}
