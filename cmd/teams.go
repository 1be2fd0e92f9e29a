package main

import "github.com/spf13/cobra"

func newTeamsCmd(c *cli) *cobra.Command {
	var size int

	cmd := &cobra.Command{
		Use:   "teams",
		Short: "Form teams from the roster candidates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			r, err := c.loadRoster(ctx)
			if err != nil {
				return err
			}

			teamSize := c.cfg.TeamSize
			if cmd.Flags().Changed("size") {
				teamSize = size
			}

			out, err := c.svc.FormTeams(ctx, r.Candidates, teamSize, r.Requirement)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().IntVarP(&size, "size", "s", 0, "members per team (overrides team_size)")
	return cmd
}
