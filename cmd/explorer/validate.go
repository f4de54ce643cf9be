package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"wageconv.org/explorer/internal/results"
)

func validateCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load every configured mode and report table and chart problems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			charts := results.NewChartResolver(rt.config.Data, rt.logger)

			var errs []error
			for _, mode := range rt.config.Data.Modes {
				table, err := results.LoadTables(rt.config.Data, mode, rt.logger)
				if err != nil {
					fmt.Fprintf(out, "%s: FAILED: %v\n", mode, err)
					errs = append(errs, err)
					continue
				}

				missing := 0
				for _, country := range table.Countries(results.AllCountries) {
					if _, err := charts.Resolve(country, mode); err != nil {
						missing++
					}
				}
				fmt.Fprintf(out, "%s: %d convergers, %d divergers, %d countries, %d charts missing\n",
					mode, len(table.Convergers), len(table.Divergers), len(table.Countries(results.AllCountries)), missing)
			}

			return errors.Join(errs...)
		},
	}
}
