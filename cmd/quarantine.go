package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"avdash/internal/config"
	"avdash/pkg/logger"
)

func quarantineCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quarantine",
		Short: "Manages quarantined files",
	}

	cmd.AddCommand(
		quarantineListCommand(cfg),
		quarantineRestoreCommand(cfg),
		quarantineDeleteCommand(cfg),
	)

	return cmd
}

func quarantineListCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Lists quarantined files",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			controller, cleanup, err := buildController(ctx, cfg)
			if err != nil {
				logger.Fatal(ctx, "could not build controller", zap.Error(err))
			}
			defer cleanup()

			entries, err := controller.Client().Quarantine(ctx)
			if err != nil {
				logger.Fatal(ctx, "could not fetch quarantine", zap.Error(err))
			}

			if len(entries) == 0 {
				fmt.Println("quarantine is empty")

				return
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tFILE\tTHREAT\tVIRUSES\tRESTORED")
			for i := range entries {
				e := &entries[i]
				restored := ""
				if e.Restored {
					restored = "yes"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", e.ID, e.OriginalPath, e.ThreatLevel, strings.Join(e.VirusNames, ","), restored)
			}
			w.Flush()
		},
	}

	return cmd
}

func quarantineRestoreCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore <quarantine-id>",
		Short: "Restores a quarantined file to its original path",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			controller, cleanup, err := buildController(ctx, cfg)
			if err != nil {
				logger.Fatal(ctx, "could not build controller", zap.Error(err))
			}
			defer cleanup()

			if err := controller.RestoreQuarantine(ctx, args[0]); err != nil {
				logger.Fatal(ctx, "could not restore file", zap.Error(err))
			}

			fmt.Println("file restored")
		},
	}

	return cmd
}

func quarantineDeleteCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <quarantine-id>",
		Short: "Permanently deletes a quarantined file",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			controller, cleanup, err := buildController(ctx, cfg)
			if err != nil {
				logger.Fatal(ctx, "could not build controller", zap.Error(err))
			}
			defer cleanup()

			if err := controller.DeleteQuarantine(ctx, args[0]); err != nil {
				logger.Fatal(ctx, "could not delete file", zap.Error(err))
			}

			fmt.Println("file deleted")
		},
	}

	return cmd
}
