package commands

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/bukabox/M4tracking-sub000/internal/bus"
	"github.com/bukabox/M4tracking-sub000/internal/dashboard"
	"github.com/bukabox/M4tracking-sub000/internal/dataset"
)

func newReportCommand() *cobra.Command {
	var configPath string
	var months int

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print a one-shot dashboard summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, configPath, months)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "m4track.yaml", "configuration file")
	cmd.Flags().IntVar(&months, "months", 6, "number of recent months to show")

	return cmd
}

func runReport(cmd *cobra.Command, configPath string, months int) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	log := zerolog.New(os.Stderr).With().Timestamp().Logger()
	svc := dashboard.NewService(cfg, bus.New(), log)

	cols, err := dataset.NewLoader(cfg.Server.DataDir).Load()
	if err != nil {
		log.Warn().Err(err).Msg("loading collections")
	}
	svc.SetCollections(cols)
	svc.Rebuild()

	snap, _ := svc.Snapshot()
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Summary")
	fmt.Fprintf(out, "  Net profit:         %s\n", snap.Summary.NetProfitIDR)
	fmt.Fprintf(out, "  ROI:                %.2f%%\n", snap.Summary.ROIPercent)
	fmt.Fprintf(out, "  Depreciation/month: %s\n", snap.Summary.TotalDepreciationIDR)

	if len(snap.Months) > 0 {
		fmt.Fprintln(out, "\nRecent months")
		shown := snap.Months
		if months > 0 && len(shown) > months {
			shown = shown[:months]
		}
		for _, m := range shown {
			fmt.Fprintf(out, "  %s  income %14.0f  expense %14.0f  investment %14.0f\n",
				m.Key, m.Income, m.Expense, m.Investment)
		}
	}

	if len(snap.Products) > 0 {
		fmt.Fprintln(out, "\nRevenue by product")
		for _, p := range snap.Products {
			fmt.Fprintf(out, "  %-24s %s (%d transactions)\n", p.Name, p.RevenueIDR, p.Count)
		}
	}

	if len(snap.Holdings) > 0 {
		fmt.Fprintln(out, "\nHoldings")
		for _, h := range snap.Holdings {
			fmt.Fprintf(out, "  %-8s %s units, invested %s\n", h.Symbol, h.Units, h.InvestedIDR)
		}
	}

	return nil
}
