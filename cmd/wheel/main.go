package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/godilite/wheel-of-life/internal/config"
)

func main() {
	_ = godotenv.Load(".env")

	cfg := config.LoadFromEnv()

	root, c := newRootCmd(cfg)
	if err := root.ExecuteContext(context.Background()); err != nil {
		if c.logger != nil {
			c.logger.Error("command failed", zap.Error(err))
			_ = c.logger.Sync()
		} else {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
	if c.logger != nil {
		_ = c.logger.Sync()
	}
}
