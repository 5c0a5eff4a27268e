package cli

import (
	"context"

	"github.com/spf13/cobra"
)

func newGetCurrentActivityCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "get-current-activity",
		Short:   "Print the current activity",
		Args:    cobra.NoArgs,
		GroupID: groupQuery,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.exclusive(cmd, func(_ context.Context, e *env) error {
				printInfo(stdout(cmd), e.ctrl.Store().CurrentActivity())
				return nil
			})
		},
	}
}

func newGetAllActivitiesCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:     "get-all-activities",
		Short:   "List every known activity",
		Args:    cobra.NoArgs,
		GroupID: groupQuery,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.exclusive(cmd, func(_ context.Context, e *env) error {
				st := e.ctrl.Store().State()
				if asJSON {
					return outputJSON(stdout(cmd), struct {
						Current    string   `json:"current"`
						Activities []string `json:"activities"`
					}{st.CurrentActivity, st.Activities})
				}
				for _, a := range st.Activities {
					printInfo(stdout(cmd), a)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output in JSON format")
	return cmd
}
