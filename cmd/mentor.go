package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okian/squad/internal/domain/model"
)

func newMentorCmd(c *cli) *cobra.Command {
	var studentID string

	cmd := &cobra.Command{
		Use:   "mentor",
		Short: "Match roster students with their best mentors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			r, err := c.loadRoster(ctx)
			if err != nil {
				return err
			}

			students := r.Students
			if studentID != "" {
				st, ok := r.Student(studentID)
				if !ok {
					return fmt.Errorf("student %q not found in roster", studentID)
				}
				students = []model.Candidate{st}
			}

			out, err := c.svc.AssignMentors(ctx, students, r.Mentors)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().StringVar(&studentID, "student", "", "match only the student with this id")
	return cmd
}
