package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/traceviz/internal/model"
)

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update fields of a work item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		var patch model.WorkItemPatch
		if cmd.Flags().Changed("title") {
			v, _ := cmd.Flags().GetString("title")
			patch.Title = &v
		}
		if cmd.Flags().Changed("description") {
			v, _ := cmd.Flags().GetString("description")
			patch.Description = &v
		}
		if cmd.Flags().Changed("status") {
			v, _ := cmd.Flags().GetString("status")
			s := model.Status(v)
			if !s.IsValid() {
				return fmt.Errorf("invalid status %q", v)
			}
			patch.Status = &s
		}
		if cmd.Flags().Changed("priority") {
			v, _ := cmd.Flags().GetInt("priority")
			patch.Priority = &v
		}
		if patch.Title == nil && patch.Description == nil && patch.Status == nil && patch.Priority == nil {
			return fmt.Errorf("nothing to update: pass at least one of --title, --description, --status, --priority")
		}

		if err := svc.UpdateWorkItem(context.Background(), id, patch); err != nil {
			return err
		}
		fmt.Printf("updated %s\n", id)
		return nil
	},
}

func init() {
	updateCmd.Flags().String("title", "", "new title")
	updateCmd.Flags().String("description", "", "new description")
	updateCmd.Flags().String("status", "", "new status (open, in_progress, blocked, done)")
	updateCmd.Flags().Int("priority", 0, "new priority")
}
