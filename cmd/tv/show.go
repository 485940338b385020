package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a single work item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		item, err := svc.GetWorkItem(context.Background(), args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(item)
			return nil
		}

		fmt.Printf("ID:          %s\n", item.ID)
		fmt.Printf("Type:        %s\n", item.Type)
		fmt.Printf("Title:       %s\n", item.Title)
		fmt.Printf("Status:      %s\n", item.Status)
		fmt.Printf("Priority:    %d\n", item.Priority)
		if item.Description != "" {
			fmt.Printf("Description: %s\n", item.Description)
		}
		if item.Position != nil {
			fmt.Printf("Position:    (%.1f, %.1f)\n", item.Position.X, item.Position.Y)
		}
		fmt.Printf("Created At:  %s\n", item.CreatedAt.Format("2006-01-02 15:04:05"))
		fmt.Printf("Updated At:  %s\n", item.UpdatedAt.Format("2006-01-02 15:04:05"))
		return nil
	},
}
