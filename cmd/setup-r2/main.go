package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"ecommerce-platform/internal/config"
	"ecommerce-platform/internal/logging"
	"ecommerce-platform/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Server.Env, cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	factory := services.NewStorageFactory(cfg, logger)
	if err := factory.ValidateR2Configuration(); err != nil {
		log.Fatalf("R2 configuration validation failed: %v", err)
	}

	fmt.Println("R2 configuration is valid")
	fmt.Printf("  Bucket Name: %s\n", cfg.R2.BucketName)
	fmt.Printf("  Public URL: %s\n", cfg.R2.PublicURL)
	fmt.Printf("  Fallback Path: %s\n", cfg.Storage.UploadDir)

	if len(os.Args) < 2 || os.Args[1] != "setup" {
		fmt.Println("\nTo set up the R2 bucket, run: go run ./cmd/setup-r2 setup")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	fmt.Println("\nSetting up R2 bucket...")
	if err := factory.SetupR2Bucket(ctx); err != nil {
		logger.Fatal("failed to set up R2 bucket", zap.Error(err))
	}
	fmt.Println("R2 bucket setup completed successfully!")
}
