package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/traceviz/internal/model"
)

var linkCmd = &cobra.Command{
	Use:   "link <from-id> <to-id>",
	Short: "Create a relationship between two work items",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		fromID, toID := args[0], args[1]
		relType, _ := cmd.Flags().GetString("type")

		err := svc.CreateRelationship(context.Background(), fromID, toID, model.RelationshipType(relType))
		if err != nil {
			return err
		}
		fmt.Printf("linked %s -%s-> %s\n", fromID, relType, toID)
		return nil
	},
}

var unlinkCmd = &cobra.Command{
	Use:   "unlink <relationship-id>",
	Short: "Delete a relationship",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := svc.DeleteRelationship(context.Background(), args[0]); err != nil {
			return err
		}
		fmt.Printf("unlinked %s\n", args[0])
		return nil
	},
}

func init() {
	linkCmd.Flags().String("type", string(model.RelRelatesTo), "relationship type")
}
