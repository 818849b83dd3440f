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
	"avdash/internal/poller"
	"avdash/pkg/avapi"
	"avdash/pkg/domain"
	"avdash/pkg/logger"
)

func printJob(job *domain.ScanJob) {
	if job == nil {
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Scan ID:\t%s\n", job.ID)
	fmt.Fprintf(w, "Status:\t%s\n", job.Status)
	fmt.Fprintf(w, "Directory:\t%s\n", job.DirectoryPath)
	fmt.Fprintf(w, "Type:\t%s\n", job.ScanType)
	if job.Progress != "" {
		fmt.Fprintf(w, "Progress:\t%s\n", job.Progress)
	}
	fmt.Fprintf(w, "Files:\t%d total, %d infected, %d clean\n", job.TotalFiles, job.InfectedFiles, job.CleanFiles)
	if !job.StartedAt.IsZero() {
		fmt.Fprintf(w, "Started:\t%s\n", job.StartedAt.Time)
	}
	if !job.CompletedAt.IsZero() {
		fmt.Fprintf(w, "Completed:\t%s\n", job.CompletedAt.Time)
	}
	w.Flush()
}

func printResults(results []domain.ScanResultEntry) {
	if len(results) == 0 {
		fmt.Println("no results")

		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FILE\tTHREAT\tVIRUSES\tSIZE")
	for i := range results {
		r := &results[i]
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", r.FilePath, r.ThreatLevel, strings.Join(r.VirusNames, ","), r.FileSize)
	}
	w.Flush()
}

func scanCommand(cfg *config.Config) *cobra.Command {
	var (
		scanType string
		noWait   bool
	)

	cmd := &cobra.Command{
		Use:   "scan <directory>",
		Short: "Starts a directory scan and follows it to completion",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			controller, cleanup, err := buildController(ctx, cfg)
			if err != nil {
				logger.Fatal(ctx, "could not build controller", zap.Error(err))
			}
			defer cleanup()

			loop, err := controller.StartScan(ctx, args[0], domain.ScanType(scanType))
			if err != nil {
				logger.Fatal(ctx, "could not start scan", zap.Error(err))
			}

			fmt.Printf("scan started: %s\n", loop.ScanID())
			if noWait {
				return
			}

			go func() {
				// stop polling on interrupt, the scan keeps running server side.
				<-ctx.Done()
				controller.CancelScan()
			}()

			for ev := range loop.Events() {
				switch ev.Type {
				case poller.EventStatus:
					fmt.Printf("%s: %d files, %d infected\n", ev.Job.Status, ev.Job.TotalFiles, ev.Job.InfectedFiles)
				case poller.EventStatusError:
					fmt.Printf("status check failed, retrying: %v\n", ev.Err)
				case poller.EventRefreshError:
					logger.Warn(ctx, "refresh failed", zap.String("target", ev.Target), zap.Error(ev.Err))
				case poller.EventCompleted, poller.EventFailed, poller.EventCancelled:
				}
			}
			<-loop.Done()

			switch loop.State() {
			case poller.StateCompleted:
				fmt.Println()
				printJob(loop.Job())
				fmt.Println()
				_, results := controller.Store().Results()
				printResults(results)
			case poller.StateFailed:
				logger.Fatal(ctx, "scan failed", zap.Error(loop.Err()))
			case poller.StateCancelled:
				fmt.Println("scan polling cancelled")
			case poller.StateIdle, poller.StatePolling:
			}
		},
	}

	cmd.Flags().StringVarP(&scanType, "type", "t", string(domain.ScanTypeQuick), "Scan type (quick, full, custom)")
	cmd.Flags().BoolVar(&noWait, "no-wait", false, "Start the scan and exit without polling")

	return cmd
}

func statusCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status <scan-id>",
		Short: "Shows the current status of a scan",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			controller, cleanup, err := buildController(ctx, cfg)
			if err != nil {
				logger.Fatal(ctx, "could not build controller", zap.Error(err))
			}
			defer cleanup()

			job, err := controller.Client().ScanStatus(ctx, args[0])
			if err != nil {
				logger.Fatal(ctx, "could not fetch scan status", zap.Error(err))
			}

			printJob(job)
		},
	}

	return cmd
}

func resultsCommand(cfg *config.Config) *cobra.Command {
	var (
		skip  int
		limit int
	)

	cmd := &cobra.Command{
		Use:   "results <scan-id>",
		Short: "Lists per-file results of a scan",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			controller, cleanup, err := buildController(ctx, cfg)
			if err != nil {
				logger.Fatal(ctx, "could not build controller", zap.Error(err))
			}
			defer cleanup()

			results, err := controller.Client().ScanResults(ctx, args[0], avapi.Page{Skip: skip, Limit: limit})
			if err != nil {
				logger.Fatal(ctx, "could not fetch scan results", zap.Error(err))
			}

			printResults(results)
		},
	}

	cmd.Flags().IntVar(&skip, "skip", 0, "Number of results to skip")
	cmd.Flags().IntVar(&limit, "limit", 100, "Maximum number of results to return")

	return cmd
}
