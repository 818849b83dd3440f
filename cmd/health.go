package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"avdash/internal/config"
	"avdash/pkg/logger"
)

func healthCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Checks backend connectivity",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			controller, cleanup, err := buildController(ctx, cfg)
			if err != nil {
				logger.Fatal(ctx, "could not build controller", zap.Error(err))
			}
			defer cleanup()

			if err := controller.Client().Health(ctx); err != nil {
				fmt.Printf("backend unhealthy: %v\n", err)
				os.Exit(1)
			}

			fmt.Println("backend healthy")
		},
	}

	return cmd
}
