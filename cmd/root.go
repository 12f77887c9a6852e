package cmd

import (
	"fmt"
	"os"

	"SndHop/config"
	"SndHop/logger"
	"SndHop/server"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sndhop",
	Short: "SndHop archives SoundCloud tracks as permanently hosted MP3s.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		server.Start(cfg)
	},
}

// loadConfig loads configuration and initializes logging; every subcommand
// goes through it.
func loadConfig() *config.Config {
	cfg := config.Load()
	logger.InitLogger(logger.Config{
		Level:      logger.LogLevel(cfg.LogLevel),
		OutputPath: cfg.LogPath,
		MaxSize:    64,
		MaxBackups: 5,
		MaxAge:     30,
		Compress:   true,
	})
	return cfg
}

// Execute executes the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
