package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"NewsHunter/config"
	"NewsHunter/pkg/logger"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagConfig   string
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:           "newshunter",
	Short:         "News aggregation backend",
	Long:          "newshunter aggregates articles from News API, The Guardian and The New York Times behind one HTTP API.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file or directory")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "override log.level (DEBUG, INFO, WARN, ERROR)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(configCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "newshunter %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

// loadConfig 读取配置并初始化日志
func loadConfig() (*config.AppConfig, error) {
	cfg, err := config.Init(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	level := cfg.Log.Level
	if flagLogLevel != "" {
		level = flagLogLevel
	}
	if cfg.Log.File != "" {
		logger.InitWithFile(level, cfg.Log.File)
	} else {
		logger.Init(level, cfg.Log.Color)
	}

	if p := config.GetConfigPath(); p != "" {
		logger.Debug("使用配置文件: %s", p)
	}
	return cfg, nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}
