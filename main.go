package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	pooltop "github.com/jondoveston/pooltop/internal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pooltop [pool-url]",
	Short: "Terminal dashboard for a public-pool mining pool",
	Long: `pooltop polls a mining pool's API every refresh interval and shows the
smoothed pool hashrate, network state, found blocks, miners and high scores
in an interactive terminal interface.

Examples:
  pooltop http://pool.lan
  pooltop --pool-url https://pool.example.com/public-pool
  POOLTOP_POOL_URL=http://pool.lan pooltop
  pooltop serve http://pool.lan --listen :9464
  pooltop export-chart http://pool.lan hashrate.png`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runDashboard,
}

var serveCmd = &cobra.Command{
	Use:   "serve [pool-url]",
	Short: "Poll the pool headless and serve the snapshot API and metrics",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runServe,
}

var exportCmd = &cobra.Command{
	Use:   "export-chart [pool-url] <out.png>",
	Short: "Fetch the hashrate chart once and write it as a PNG",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runExport,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("pool-url", "", "pool API base URL")
	flags.Duration("refresh-interval", pooltop.RefreshDuration(), "time between polls")
	flags.Duration("request-timeout", pooltop.RequestTimeoutDuration(), "deadline for one poll")
	flags.String("chart-label", pooltop.DEFAULT_CHART_LABEL, "name of the hashrate series")
	flags.String("stratum-url", "", "stratum address shown in the header (default <pool host>:3333)")
	flags.String("listen", "", "address for the snapshot API and metrics")
	flags.String("log-file", "", "write logs to this file")
	flags.Bool("debug", false, "enable debug logging")
	flags.String("config", "", "config file (default pooltop.{toml,yaml,json} in . or $HOME/.config/pooltop)")
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")

	// Bind flags to Viper keys (note: dashes in flags become underscores in viper)
	for _, name := range []string{
		"pool-url", "refresh-interval", "request-timeout", "chart-label",
		"stratum-url", "listen", "log-file", "debug",
	} {
		if err := viper.BindPFlag(flagKey(name), flags.Lookup(name)); err != nil {
			panic(fmt.Sprintf("bind flag %s: %v", name, err))
		}
	}

	// Configure Viper for environment variables
	viper.SetEnvPrefix("pooltop")
	viper.AutomaticEnv()
	pooltop.SetDefaults(viper.GetViper())

	rootCmd.AddCommand(serveCmd, exportCmd)
}

func flagKey(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}

// loadConfig reads the optional config file and resolves the configuration.
// A positional pool URL is used only when nothing else set one.
func loadConfig(cmd *cobra.Command, poolArg string) (pooltop.Config, error) {
	v := viper.GetViper()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("pooltop")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/pooltop")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return pooltop.Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	if poolArg != "" && v.GetString("pool_url") == "" {
		v.Set("pool_url", poolArg)
	}
	return pooltop.LoadConfig(v)
}

func connect(ctx context.Context, cfg pooltop.Config, log *zap.SugaredLogger) (*pooltop.HTTPProvider, error) {
	u, err := cfg.ParsedPoolURL()
	if err != nil {
		return nil, err
	}
	provider, err := pooltop.TryConnectWithFallbacks(ctx, u, cfg.RequestTimeout, log)
	if err != nil {
		return nil, fmt.Errorf("connect to pool: %w", err)
	}
	log.Infow("connected to pool", "url", provider.URL().String())
	return provider, nil
}

func runDashboard(cmd *cobra.Command, args []string) error {
	// Handle --version flag first
	if versionFlag, _ := cmd.Flags().GetBool("version"); versionFlag {
		fmt.Printf("pooltop version %s\n", version)
		return nil
	}

	var poolArg string
	if len(args) == 1 {
		poolArg = args[0]
	}
	cfg, err := loadConfig(cmd, poolArg)
	if err != nil {
		return err
	}

	// The dashboard owns the terminal, so logs only go to a file
	log, err := pooltop.NewLogger(cfg.LogFile, false, cfg.Debug)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	log.Infow("starting pooltop", "version", version)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider, err := connect(ctx, cfg, log)
	if err != nil {
		return err
	}

	opts := []pooltop.PollerOption{pooltop.WithLogger(log)}
	if cfg.Listen != "" {
		store := pooltop.NewStore()
		metrics := pooltop.NewMetrics()
		opts = append(opts, pooltop.WithPublisher(store), pooltop.WithMetrics(metrics))
		srv := pooltop.NewServer(store, metrics, cfg.Theme, log)
		go func() {
			if err := srv.ListenAndServe(ctx, cfg.Listen); err != nil {
				log.Errorw("http server failed", "addr", cfg.Listen, "error", err)
			}
		}()
	}

	return pooltop.Dashboard(ctx, provider, cfg, opts...)
}

func runServe(cmd *cobra.Command, args []string) error {
	var poolArg string
	if len(args) == 1 {
		poolArg = args[0]
	}
	cfg, err := loadConfig(cmd, poolArg)
	if err != nil {
		return err
	}
	if cfg.Listen == "" {
		cfg.Listen = pooltop.DEFAULT_LISTEN
	}

	log, err := pooltop.NewLogger(cfg.LogFile, cfg.LogFile == "", cfg.Debug)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	log.Infow("starting pooltop server", "version", version, "listen", cfg.Listen)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider, err := connect(ctx, cfg, log)
	if err != nil {
		return err
	}

	store := pooltop.NewStore()
	metrics := pooltop.NewMetrics()
	poller := pooltop.NewPoller(provider,
		pooltop.WithInterval(cfg.RefreshInterval),
		pooltop.WithTimeout(cfg.RequestTimeout),
		pooltop.WithLabel(cfg.ChartLabel),
		pooltop.WithPublisher(store),
		pooltop.WithMetrics(metrics),
		pooltop.WithLogger(log),
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = poller.Run(ctx)
	}()

	err = pooltop.NewServer(store, metrics, cfg.Theme, log).ListenAndServe(ctx, cfg.Listen)
	cancel()
	<-done
	if err != nil {
		return fmt.Errorf("serve %s: %w", cfg.Listen, err)
	}
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	out := args[len(args)-1]
	var poolArg string
	if len(args) == 2 {
		poolArg = args[0]
	}
	cfg, err := loadConfig(cmd, poolArg)
	if err != nil {
		return err
	}

	log, err := pooltop.NewLogger(cfg.LogFile, cfg.LogFile == "", cfg.Debug)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	defer cancel()

	provider, err := connect(ctx, cfg, log)
	if err != nil {
		return err
	}
	raw, err := provider.GetInfoChart(ctx)
	if err != nil {
		return fmt.Errorf("fetch chart: %w", err)
	}
	res := pooltop.Process(cfg.ChartLabel, raw)
	log.Infow("chart processed", "samples", res.Chart.Len(), "excluded", res.Excluded, "dropped", res.Dropped)

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	if err := pooltop.RenderChartPNG(f, res.Chart, cfg.Theme); err != nil {
		_ = f.Close()
		_ = os.Remove(out)
		return fmt.Errorf("render chart: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	fmt.Printf("wrote %s (%d samples)\n", out, res.Chart.Len())
	return nil
}
