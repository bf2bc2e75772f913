package main

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/awnumar/memguard"
	"github.com/spf13/cobra"

	"github.com/hsiuhsiu/awslc-go/cmd/awslc-go/commands"
	"github.com/hsiuhsiu/awslc-go/internal/cliconfig"
	"github.com/hsiuhsiu/awslc-go/pkg/awslc"
	"github.com/hsiuhsiu/awslc-go/pkg/awslc/metrics"
)

func main() {
	memguard.CatchInterrupt()
	err := run(os.Args[1:])
	memguard.Purge()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var (
		configFile string
		debug      bool
	)

	env := commands.NewEnv(os.Stderr)

	rootCmd := &cobra.Command{
		Use:           "awslc-go",
		Short:         "Exercise the awslc-go cryptographic library",
		Version:       awslc.WrapperVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cliconfig.Load(configFile, !cmd.Flags().Changed("config"))
			if err != nil {
				return err
			}
			if debug {
				cfg.Log.Level = "debug"
			}
			logger, err := cfg.NewLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			env.Config, env.Logger = cfg, logger
			if cfg.Metrics.Listen != "" {
				env.Metrics = metrics.New()
			}
			if err := awslc.Configure(cfg.LibraryConfig(logger, env.Metrics)); err != nil {
				return err
			}
			return serveMetrics(env)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "awslc.yaml", "Config file path")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(
		commands.NewVersionCommand(env),
		commands.NewSelftestCommand(env),
		commands.NewDigestCommand(env),
		commands.NewEd25519Command(env),
	)

	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

// serveMetrics exposes the Prometheus registry for the life of the process.
func serveMetrics(env *commands.Env) error {
	if env.Metrics == nil {
		return nil
	}
	ln, err := net.Listen("tcp", env.Config.Metrics.Listen)
	if err != nil {
		return fmt.Errorf("metrics listener: %w", err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", env.Metrics.Handler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			env.Logger.WithError(err).Error("metrics server stopped")
		}
	}()
	env.Logger.WithField("addr", ln.Addr().String()).Info("serving metrics")
	return nil
}
