// Command callsight runs the call-analysis service.
//
// The serve subcommand starts the HTTP API; the batch subcommand runs
// the local sentiment pipeline over a directory of recordings and
// writes a CSV report.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skillsenselab/callsight/app"
	"github.com/skillsenselab/callsight/bootstrap"
	"github.com/skillsenselab/callsight/calls"
	"github.com/skillsenselab/callsight/config"
	"github.com/skillsenselab/callsight/logger"
	"github.com/skillsenselab/callsight/server"
)

func main() {
	root := &cobra.Command{
		Use:           "callsight",
		Short:         "Customer call sentiment and quality analysis service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(serveCmd(), batchCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newApp() (*bootstrap.App[*app.Config], error) {
	cfg := &app.Config{}
	if err := config.LoadConfig(app.ServiceName, cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return bootstrap.NewApp(cfg)
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			obs, err := app.InitObservability(ctx, a.Cfg)
			if err != nil {
				a.Logger.Warn("observability disabled", logger.Fields("error", err.Error()))
				obs = &app.Observability{}
			}
			defer obs.Shutdown(context.Background())

			handler, err := app.Wire(a, obs.Metrics)
			if err != nil {
				return err
			}

			srv := server.New(a.Cfg.Server, a.Logger)
			srv.ApplyDefaults(a.Name, handler.ProviderHealth())
			handler.RegisterRoutes(srv.GinEngine())
			srv.TrackRoutes(a.Summary)

			if err := a.RegisterComponent(server.NewComponent(srv)); err != nil {
				return err
			}
			return a.Run(ctx)
		},
	}
}

func batchCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "batch <dir>",
		Short: "Analyze a directory of call recordings with the local pipeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			dir := args[0]
			return a.RunTask(cmd.Context(), func(ctx context.Context) error {
				providers := app.BuildProviders(a.Cfg)
				analyzer := calls.NewLocalAnalyzer(providers.LocalSTT, providers.Sentiment, a.Logger)

				records, err := analyzer.AnalyzeDir(ctx, dir)
				if err != nil {
					return err
				}

				stats := calls.ComputeStatistics(records)
				printStatistics(stats)

				if output != "" {
					if err := calls.SaveCSV(output, records); err != nil {
						return fmt.Errorf("writing report: %w", err)
					}
					fmt.Printf("Report written to %s\n", output)
					return nil
				}
				return calls.WriteCSV(os.Stdout, records)
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the CSV report to a file instead of stdout")
	return cmd
}

func printStatistics(stats calls.Statistics) {
	fmt.Printf("Processed %d file(s)\n", stats.TotalFiles)
	if stats.Message != "" {
		fmt.Println(stats.Message)
		return
	}
	fmt.Println("Sentiment distribution:")
	for label, d := range stats.SentimentDistribution {
		fmt.Printf("  %-10s %3d (%.1f%%)\n", label, d.Count, d.Percentage)
	}
	fmt.Println("Satisfaction distribution:")
	for label, d := range stats.SatisfactionDistribution {
		fmt.Printf("  %-13s %3d (%.1f%%)\n", label, d.Count, d.Percentage)
	}
}
