package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func countriesCommand(rt *runtime) *cobra.Command {
	var flags selectionFlags

	cmd := &cobra.Command{
		Use:   "countries",
		Short: "List the countries available in a mode and group",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request(rt.config.Data.DefaultMode(), "")
			if err != nil {
				return err
			}

			application, err := rt.newApplication(nil)
			if err != nil {
				return err
			}

			table, err := application.Results.Tables(cmd.Context(), req.Mode)
			if err != nil {
				return err
			}
			for _, country := range table.Countries(req.Group) {
				fmt.Fprintln(cmd.OutOrStdout(), country)
			}
			return nil
		},
	}

	flags.register(cmd, false)
	return cmd
}
