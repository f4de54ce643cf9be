package main

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"wageconv.org/explorer/internal/results"
	"wageconv.org/explorer/internal/utils"
)

// selectionFlags are the dashboard selections exposed as command flags.
type selectionFlags struct {
	mode      string
	group     string
	scenario  string
	threshold string
}

func (f *selectionFlags) register(cmd *cobra.Command, withCell bool) {
	cmd.Flags().StringVar(&f.mode, "mode", "", "Model mode: linear-only or best-model (default: first configured)")
	cmd.Flags().StringVar(&f.group, "group", "all", "Country group: all, convergers-only or divergers-only")
	if withCell {
		cmd.Flags().StringVar(&f.scenario, "scenario", "low", "Growth scenario: low, medium or high")
		cmd.Flags().StringVar(&f.threshold, "threshold", "70", "Convergence threshold: 70, 80 or 90")
	}
}

// request turns the flags into a request through the same parser the web UI uses.
func (f *selectionFlags) request(defaultMode results.Mode, country string) (results.Request, error) {
	params := url.Values{}
	for key, value := range map[string]string{
		"mode":      f.mode,
		"group":     f.group,
		"scenario":  f.scenario,
		"threshold": f.threshold,
		"country":   country,
	} {
		if value != "" {
			params.Set(key, value)
		}
	}

	req, fieldErrors := utils.ParseRequest(params, defaultMode)
	if len(fieldErrors) > 0 {
		var msgs []string
		for field, errs := range fieldErrors {
			msgs = append(msgs, field+": "+strings.Join(errs, ", "))
		}
		return req, fmt.Errorf("%w: %s", results.ErrInvalidParameter, strings.Join(msgs, "; "))
	}
	return req, nil
}

func lookupCommand(rt *runtime) *cobra.Command {
	var flags selectionFlags

	cmd := &cobra.Command{
		Use:   "lookup <country>",
		Short: "Print the convergence result for one country",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request(rt.config.Data.DefaultMode(), args[0])
			if err != nil {
				return err
			}

			application, err := rt.newApplication(nil)
			if err != nil {
				return err
			}

			view, err := application.Presenter.Render(cmd.Context(), req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Mode: %s\n", view.ModeLabel)
			fmt.Fprintln(out, view.Result.Message)
			if !view.Result.Found {
				return nil
			}
			fmt.Fprintf(out, "Gap in 2080: %s\n", view.Result.Gap)
			if view.Result.BestModel != "" {
				fmt.Fprintf(out, "Best model: %s\n", view.Result.BestModel)
			}
			if view.Result.CVMSE != "" {
				fmt.Fprintf(out, "CV MSE: %s\n", view.Result.CVMSE)
			}
			if view.Chart.Available {
				fmt.Fprintf(out, "Chart: %s (%dx%d), download as %s\n",
					view.Chart.Chart.Path, view.Chart.Chart.Width, view.Chart.Chart.Height, view.Chart.DownloadName)
			} else {
				fmt.Fprintln(out, view.Chart.Message)
			}
			return nil
		},
	}

	flags.register(cmd, true)
	return cmd
}
