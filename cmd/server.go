package cmd

import (
	"SndHop/server"

	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP server",
	Long:  `Start the HTTP server exposing the SoundCloud resolve-and-upload API.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		server.Start(cfg)
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
