package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/plantmetrics/plantpulse/pkg/types"
)

// NewOrdersCmd creates the orders command.
func NewOrdersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "orders",
		Short: "Show production order status and schedule risk",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrders()
		},
	}
}

func runOrders() error {
	ctx := context.Background()

	eng, st, _, err := buildEngine(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = st.Stop(ctx) }()

	rows, err := eng.OrderSchedule(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("loading order schedule: %w", err)
	}
	if len(rows) == 0 {
		color.Yellow("No orders found")
		return nil
	}

	bold := color.New(color.Bold)
	_, _ = bold.Printf("%-10s %-12s %5s %-12s %7s %s\n",
		"ORDER", "SKU", "QTY", "STATUS", "STEPS", "FLAGS")
	for _, r := range rows {
		statusStr := string(r.Status)
		switch r.Status {
		case types.OrderCompleted:
			statusStr = color.GreenString(statusStr)
		case types.OrderInProgress:
			statusStr = color.CyanString(statusStr)
		}

		var flags []string
		if r.Overdue {
			flags = append(flags, color.RedString("OVERDUE"))
		}
		if len(r.AtRiskMachines) > 0 {
			flags = append(flags, color.YellowString("at-risk: %s", strings.Join(r.AtRiskMachines, ",")))
		}

		fmt.Printf("%-10s %-12s %5d %-12s %3d/%-3d %s\n",
			r.OrderID, r.SKU, r.PlannedQty, statusStr,
			r.StepsCompleted, r.StepsTotal, strings.Join(flags, " "))
	}
	return nil
}
