package cmd

import (
	"context"
	"fmt"
	"os"

	"SndHop/cache"
	"SndHop/core/audio"
	"SndHop/core/soundcloud"
	"SndHop/logger"
	"SndHop/storage"

	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <track url>",
	Short: "Resolve one track and upload it",
	Long:  `Run the full pipeline once for a single SoundCloud track URL and print the resulting public URL.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		if err := storage.InitMinio(cfg); err != nil {
			logger.Fatal("failed to initialize object storage", logger.ErrorField(err))
		}

		client := soundcloud.NewClient(cfg)
		creds := cache.NewCredentialCache(client.DiscoverCredential, cache.CredentialTTL)
		uploader, err := storage.NewArtifactUploader(cfg)
		if err != nil {
			logger.Fatal("failed to create uploader", logger.ErrorField(err))
		}

		pipeline := soundcloud.NewPipeline(creds, client, client, audio.NewAssembler(), uploader)

		result := pipeline.ResolveAndUpload(context.Background(), args[0])
		if !result.OK {
			fmt.Fprintf(os.Stderr, "failed: %s\n", result.Code)
			os.Exit(1)
		}
		fmt.Println(result.URL)
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}
