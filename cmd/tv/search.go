package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/traceviz/internal/model"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search work items by id or title",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		nodes, err := svc.Search(context.Background(), args[0])
		if err != nil {
			return err
		}

		results := make([]model.SearchResult, 0, len(nodes))
		for _, n := range nodes {
			results = append(results, model.SearchResult{
				ID:         n.ID,
				Type:       n.Type,
				Label:      n.Label,
				Properties: n.Properties,
			})
		}

		if jsonOutput {
			printJSON(results)
			return nil
		}
		if len(results) == 0 {
			fmt.Println("no matches")
			return nil
		}
		printSearchResults(results)
		return nil
	},
}
