package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"avdash/internal/config"
	"avdash/pkg/domain"
	"avdash/pkg/logger"
)

func printHistory(jobs []domain.ScanJob) {
	if len(jobs) == 0 {
		fmt.Println("no scans recorded")

		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCAN ID\tSTATUS\tDIRECTORY\tINFECTED\tSTARTED")
	for i := range jobs {
		j := &jobs[i]
		started := ""
		if !j.StartedAt.IsZero() {
			started = j.StartedAt.Format("2006-01-02 15:04:05")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d/%d\t%s\n", j.ID, j.Status, j.DirectoryPath, j.InfectedFiles, j.TotalFiles, started)
	}
	w.Flush()
}

func historyCommand(cfg *config.Config) *cobra.Command {
	var (
		limit   int
		offline bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Lists recent scans",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			controller, cleanup, err := buildController(ctx, cfg)
			if err != nil {
				logger.Fatal(ctx, "could not build controller", zap.Error(err))
			}
			defer cleanup()

			var jobs []domain.ScanJob
			if offline {
				jobs, err = controller.OfflineHistory(ctx, limit)
			} else {
				jobs, err = controller.Client().ScanHistory(ctx, limit)
			}
			if err != nil {
				logger.Fatal(ctx, "could not fetch scan history", zap.Error(err))
			}

			printHistory(jobs)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of scans to return, 0 for the server default")
	cmd.Flags().BoolVar(&offline, "offline", false, "Read from the local history cache instead of the backend")

	return cmd
}

func statsCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Shows aggregate dashboard statistics",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			controller, cleanup, err := buildController(ctx, cfg)
			if err != nil {
				logger.Fatal(ctx, "could not build controller", zap.Error(err))
			}
			defer cleanup()

			stats, err := controller.Client().Stats(ctx)
			if err != nil {
				logger.Fatal(ctx, "could not fetch dashboard stats", zap.Error(err))
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Total scans:\t%d\n", stats.TotalScans)
			fmt.Fprintf(w, "Files scanned:\t%d\n", stats.TotalFilesScanned)
			fmt.Fprintf(w, "Threats found:\t%d\n", stats.TotalThreatsFound)
			fmt.Fprintf(w, "In quarantine:\t%d\n", stats.QuarantineCount)
			w.Flush()

			if len(stats.RecentScans) > 0 {
				fmt.Println("\nRecent scans:")
				w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				for i := range stats.RecentScans {
					s := &stats.RecentScans[i]
					state := "in progress"
					if s.Completed {
						state = "completed"
					}
					fmt.Fprintf(w, "%s\t%s\t%s\n", s.ScanID, state, s.DirectoryPath)
				}
				w.Flush()
			}
		},
	}

	return cmd
}
