package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spidergraph/spider"
	"github.com/spidergraph/spider/pkg/config"
	"github.com/spidergraph/spider/pkg/driver"
	"github.com/spidergraph/spider/pkg/ioc"
	"github.com/spidergraph/spider/pkg/logger"
	"github.com/spidergraph/spider/pkg/observability"
)

var version = "0.1.0"

// configEnv names the variable consulted when --file is not given.
const configEnv = "SPIDER_CONFIG"

// verifier is implemented by drivers that can check their server is
// reachable.
type verifier interface {
	VerifyConnectivity(ctx context.Context) error
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCommand(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand(out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "spider",
		Short: "Spider - graph database connection assembly",
		Long: `Spider resolves a declarative configuration into connections to graph
database backends. This tool inspects the effective configuration and
resolves connections without running queries.`,
		SilenceUsage: true,
	}
	root.SetOut(out)

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(out, "Spider v%s\n", version)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "drivers",
		Short: "List available drivers",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(out, "Available Drivers:")
			for _, info := range driver.ListInfo() {
				line := fmt.Sprintf("  - %s (%s)", info.Name, info.Backend)
				if len(info.Aliases) > 0 {
					line += " aliases: " + strings.Join(info.Aliases, ", ")
				}
				fmt.Fprintln(out, line)
			}
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "integrations",
		Short: "List registered integration types",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(out, "Available Integration Types:")
			for _, id := range ioc.Types() {
				fmt.Fprintf(out, "  - %s\n", id)
			}
		},
	})

	root.AddCommand(newConfigCommand(out))
	root.AddCommand(newConnectCommand(out))

	return root
}

func newConfigCommand(out io.Writer) *cobra.Command {
	var format, alias string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Load a configuration file, merge it over the defaults and print the
result the way a configured instance reports it.

Example:
  spider config -f spider.yaml --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath(cmd)
			if err != nil {
				return err
			}
			s, err := configure(path, alias)
			if err != nil {
				return err
			}
			return render(out, s.Config(), format)
		},
	}

	cmd.Flags().StringP("file", "f", "", "Path to configuration file (default: $"+configEnv+")")
	cmd.Flags().StringVar(&format, "format", "yaml", "Output format (yaml, json)")
	cmd.Flags().StringVarP(&alias, "alias", "a", "", "Connection alias to bind (default: manifest default)")

	return cmd
}

func newConnectCommand(out io.Writer) *cobra.Command {
	var verify, trace bool
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "connect [alias]",
		Short: "Resolve a connection",
		Long: `Resolve a connection alias (the manifest default when omitted) to a
driver. With --verify the driver is asked to reach its server.

Example:
  spider connect -f spider.yaml neo --verify`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath(cmd)
			if err != nil {
				return err
			}
			var alias string
			if len(args) == 1 {
				alias = args[0]
			}
			if trace {
				cfg := observability.DefaultTracingConfig()
				cfg.ServiceVersion = version
				cfg.Writer = cmd.ErrOrStderr()
				cfg.PrettyPrint = true
				shutdown, err := observability.InitTracing(cfg)
				if err != nil {
					return err
				}
				defer func() {
					if err := shutdown(context.Background()); err != nil {
						logger.Get().Warn("failed to flush traces", zap.Error(err))
					}
				}()
			}
			return connect(cmd.Context(), out, path, alias, verify, timeout)
		},
	}

	cmd.Flags().StringP("file", "f", "", "Path to configuration file (default: $"+configEnv+")")
	cmd.Flags().BoolVar(&verify, "verify", false, "Check that the server is reachable")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "Verification timeout")
	cmd.Flags().BoolVar(&trace, "trace", false, "Print OpenTelemetry spans to stderr")

	return cmd
}

// configPath resolves the configuration file from --file, then from
// $SPIDER_CONFIG.
func configPath(cmd *cobra.Command) (string, error) {
	v := viper.New()
	if err := v.BindPFlag("file", cmd.Flags().Lookup("file")); err != nil {
		return "", err
	}
	if err := v.BindEnv("file", configEnv); err != nil {
		return "", err
	}

	path := v.GetString("file")
	if path == "" {
		return "", fmt.Errorf("no configuration file: pass --file or set %s", configEnv)
	}
	return path, nil
}

func configure(configFile, alias string) (*spider.Spider, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}

	s, err := spider.New(nil, "")
	if err != nil {
		return nil, err
	}
	if err := s.Configure(cfg, alias); err != nil {
		return nil, fmt.Errorf("failed to configure from %s: %w", configFile, err)
	}
	return s, nil
}

func render(out io.Writer, tree config.Tree, format string) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case "yaml", "yml":
		data, err = tree.YAML()
	case "json":
		data, err = tree.JSON()
		data = append(data, '\n')
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}

func connect(ctx context.Context, out io.Writer, configFile, alias string, verify bool, timeout time.Duration) error {
	s, err := configure(configFile, alias)
	if err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	defer func() {
		if err := s.Close(ctx); err != nil {
			logger.Get().Warn("failed to close connection", zap.Error(err))
		}
	}()

	conn := s.ActiveConnection()
	log := logger.Get().With(
		zap.String("component", "spider-cli"),
		zap.String("alias", conn.Alias()),
		zap.String("driver", conn.DriverName()),
	)

	fmt.Fprintf(out, "alias:  %s\n", conn.Alias())
	fmt.Fprintf(out, "driver: %s\n", conn.DriverName())
	fmt.Fprintf(out, "id:     %s\n", conn.ID())

	if !verify {
		return nil
	}

	v, ok := s.Driver().(verifier)
	if !ok {
		return fmt.Errorf("driver %s cannot verify connectivity", conn.DriverName())
	}

	verifyCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	if err := v.VerifyConnectivity(verifyCtx); err != nil {
		return fmt.Errorf("connectivity check failed: %w", err)
	}
	log.Info("connectivity verified", zap.Duration("duration", time.Since(start)))
	fmt.Fprintln(out, "status: reachable")
	return nil
}
