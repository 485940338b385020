package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alfredjeanlab/traceviz/internal/model"
)

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func printGraphJSON(nodes []model.Node, edges []model.Edge) {
	printJSON(map[string]any{
		"nodes": nodes,
		"edges": edges,
	})
}

func printSearchResults(results []model.SearchResult) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tLABEL")
	for _, r := range results {
		label := r.Label
		if len(label) > 60 {
			label = label[:57] + "..."
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", r.ID, r.Type, label)
	}
	w.Flush()
	fmt.Printf("\n%d results\n", len(results))
}
