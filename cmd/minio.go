package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"SndHop/storage"

	"github.com/spf13/cobra"
)

var minioCmd = &cobra.Command{
	Use:   "minio",
	Short: "Check the artifact bucket",
	Long:  `Connect to object storage and print artifact bucket statistics.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		if err := storage.InitMinio(cfg); err != nil {
			log.Fatalf("failed to connect to MinIO: %v", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		stats, err := storage.CollectBucketStats(ctx, cfg.MinioBucket)
		if err != nil {
			log.Fatalf("failed to collect bucket stats: %v", err)
		}

		fmt.Printf("Bucket: %s\n", cfg.MinioBucket)
		fmt.Printf("Objects: %d\n", stats.TotalObjects)
		fmt.Printf("Total size: %.2f MB\n", float64(stats.TotalSize)/1024/1024)
		if !stats.LastModified.IsZero() {
			fmt.Printf("Last upload: %s\n", stats.LastModified.Format(time.RFC3339))
		}
	},
}

func init() {
	rootCmd.AddCommand(minioCmd)
}
