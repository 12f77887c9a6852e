package cmd

import (
	"fmt"
	"log"

	"SndHop/cache"

	"github.com/spf13/cobra"
)

var redisCmd = &cobra.Command{
	Use:   "redis",
	Short: "Test the Redis connection",
	Long:  `Verify that the credential cache backend is reachable and does basic reads and writes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		if cfg.RedisHost == "" {
			log.Fatal("REDIS_HOST is not configured")
		}
		fmt.Printf("Redis: %s:%s, DB: %d\n", cfg.RedisHost, cfg.RedisPort, cfg.RedisDB)

		if err := cache.ConnectRedis(cfg); err != nil {
			log.Fatalf("failed to connect to Redis: %v", err)
		}
		if err := cache.TestRedis(); err != nil {
			log.Fatalf("redis operation test failed: %v", err)
		}
		if err := cache.CloseRedis(); err != nil {
			log.Printf("error closing Redis connection: %v", err)
		}
		fmt.Println("Redis connection OK.")
	},
}

func init() {
	rootCmd.AddCommand(redisCmd)
}
