package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/gamotph/adr-intelligence/pkg/client"
	"github.com/gamotph/adr-intelligence/pkg/errors"
)

// labelTable adapts a label distribution for table output.
type labelTable struct {
	Items []client.NormalizedLabel `json:"items"`
}

func (t labelTable) TableHeaders() []string { return []string{"LABEL", "COUNT"} }

func (t labelTable) TableRows() [][]string {
	rows := make([][]string, 0, len(t.Items))
	for _, it := range t.Items {
		rows = append(rows, []string{it.Label, strconv.Itoa(it.Count)})
	}
	return rows
}

type medicineTable struct {
	Items []client.MedicineCount `json:"items"`
}

func (t medicineTable) TableHeaders() []string { return []string{"MEDICINE", "COUNT"} }

func (t medicineTable) TableRows() [][]string {
	rows := make([][]string, 0, len(t.Items))
	for _, it := range t.Items {
		rows = append(rows, []string{it.Name, strconv.Itoa(it.Count)})
	}
	return rows
}

type summaryTable struct {
	Total int                    `json:"total"`
	Items []client.ReactionShare `json:"items"`
}

func (t summaryTable) TableHeaders() []string { return []string{"LABEL", "COUNT", "PERCENT"} }

func (t summaryTable) TableRows() [][]string {
	rows := make([][]string, 0, len(t.Items))
	for _, it := range t.Items {
		rows = append(rows, []string{it.Label, strconv.Itoa(it.Count), fmt.Sprintf("%.2f", it.Percent)})
	}
	return rows
}

func commandContext(cmd *cobra.Command, cliCtx *CLIContext) (context.Context, context.CancelFunc) {
	timeout := cliCtx.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return context.WithTimeout(cmd.Context(), timeout)
}

func requireClient(cliCtx *CLIContext) (*client.Client, error) {
	if cliCtx.Client == nil {
		return nil, errors.Unavailable("API client not configured; check --server or the config file")
	}
	return cliCtx.Client, nil
}

// NewTopADRsCmd creates the top-adrs command.
func NewTopADRsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "top-adrs",
		Short: "Show the most frequently reported normalized reactions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			api, err := requireClient(cliCtx)
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd, cliCtx)
			defer cancel()

			dist, err := api.Analytics().TopADRs(ctx, limit)
			if err != nil {
				return err
			}
			return PrintResult(cmd, labelTable{Items: dist.Items})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "maximum number of labels (1-100)")
	return cmd
}

// NewTopMedicinesCmd creates the top-medicines command.
func NewTopMedicinesCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "top-medicines",
		Short: "Show the most-reported medicines by canonical name",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			api, err := requireClient(cliCtx)
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd, cliCtx)
			defer cancel()

			counts, err := api.Analytics().TopMedicines(ctx, limit)
			if err != nil {
				return err
			}
			return PrintResult(cmd, medicineTable{Items: counts})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum number of medicines (1-500)")
	return cmd
}

// NewMedicineNamesCmd creates the medicine-names command.
func NewMedicineNamesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "medicine-names",
		Short: "List the distinct canonical medicine names",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			api, err := requireClient(cliCtx)
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd, cliCtx)
			defer cancel()

			names, err := api.Analytics().MedicineNames(ctx)
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

// NewSummaryCmd creates the summary command.
func NewSummaryCmd() *cobra.Command {
	var (
		from       string
		to         string
		medicineID string
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show the reaction summary with percentage shares",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			api, err := requireClient(cliCtx)
			if err != nil {
				return err
			}

			query := client.SummaryQuery{MedicineID: medicineID}
			if from != "" {
				t, parseErr := time.Parse(time.RFC3339, from)
				if parseErr != nil {
					return errors.InvalidParam("--from must be an RFC 3339 timestamp")
				}
				query.From = t
			}
			if to != "" {
				t, parseErr := time.Parse(time.RFC3339, to)
				if parseErr != nil {
					return errors.InvalidParam("--to must be an RFC 3339 timestamp")
				}
				query.To = t
			}

			ctx, cancel := commandContext(cmd, cliCtx)
			defer cancel()

			sum, err := api.Analytics().Summary(ctx, query)
			if err != nil {
				return err
			}
			return PrintResult(cmd, summaryTable{Total: sum.Total, Items: sum.Items})
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "window start (RFC 3339)")
	cmd.Flags().StringVar(&to, "to", "", "window end (RFC 3339)")
	cmd.Flags().StringVar(&medicineID, "medicine-id", "", "restrict to one medicine (UUID)")
	return cmd
}
