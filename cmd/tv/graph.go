package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/traceviz/internal/graphstore"
	"github.com/alfredjeanlab/traceviz/internal/model"
	"github.com/alfredjeanlab/traceviz/internal/ui"
)

var graphCmd = &cobra.Command{
	Use:   "graph [root-id]",
	Short: "Show the work item graph as an adjacency listing",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rootID := ""
		if len(args) == 1 {
			rootID = args[0]
		}
		depth, _ := cmd.Flags().GetInt("depth")
		limit, _ := cmd.Flags().GetInt("limit")
		types, _ := cmd.Flags().GetString("types")
		isolate, _ := cmd.Flags().GetString("isolate")
		isolateDepth, _ := cmd.Flags().GetInt("isolate-depth")
		mode, _ := cmd.Flags().GetString("mode")

		gs := graphstore.New(svc, graphstore.WithLimit(limit))
		if err := gs.LoadGraph(context.Background(), rootID, depth); err != nil {
			return err
		}

		if types != "" {
			patch := make(map[model.NodeType]bool)
			for _, t := range model.KnownNodeTypes() {
				patch[t] = false
			}
			for _, t := range strings.Split(types, ",") {
				patch[model.NodeType(strings.TrimSpace(t))] = true
			}
			gs.SetNodeTypeFilters(patch)
		}

		if isolate != "" {
			gs.EnterIsolationMode(isolate)
			if cmd.Flags().Changed("isolate-depth") {
				gs.UpdateIsolationDepth(isolateDepth)
			}
		}

		viewMode := graphstore.ViewMode(mode)
		if viewMode.IsValid() {
			gs.SetViewMode(viewMode)
		}

		nodes := gs.FilteredNodes()
		edges := gs.FilteredEdges()
		if jsonOutput {
			printGraphJSON(nodes, edges)
			return nil
		}
		printGraphListing(gs, nodes, edges)
		return nil
	},
}

// printGraphListing renders each visible node with its position in the
// active view, followed by its outgoing edges.
func printGraphListing(gs *graphstore.Store, nodes []model.Node, edges []model.Edge) {
	outgoing := make(map[string][]model.Edge)
	for _, e := range edges {
		outgoing[e.Source] = append(outgoing[e.Source], e)
	}
	labels := make(map[string]string, len(nodes))
	for _, n := range nodes {
		labels[n.ID] = n.Data.Label
	}

	for _, n := range nodes {
		pos := formatPosition(gs, n.ID)
		fmt.Printf("%s [%s] %s %s\n",
			ui.RenderAccent(n.ID),
			ui.RenderType(n.EffectiveType(), n.EffectiveType().String()),
			n.Data.Label,
			ui.RenderMuted(pos),
		)
		out := outgoing[n.ID]
		for i, e := range out {
			connector := "├── "
			if i == len(out)-1 {
				connector = "└── "
			}
			fmt.Printf("%s%s: %s %s\n",
				connector,
				ui.RenderMuted(string(e.Type)),
				e.Target,
				labels[e.Target],
			)
		}
	}
	fmt.Printf("\n%d nodes, %d edges (%s view)\n", len(nodes), len(edges), gs.ViewMode())
}

func formatPosition(gs *graphstore.Store, id string) string {
	vp, ok := gs.NodePositionForView(id, gs.ViewMode())
	if !ok {
		return ""
	}
	if vp.Mode == graphstore.View3D {
		return fmt.Sprintf("(%.2f, %.2f, %.2f)", vp.Pos3D.X, vp.Pos3D.Y, vp.Pos3D.Z)
	}
	return fmt.Sprintf("(%.1f, %.1f)", vp.Pos2D.X, vp.Pos2D.Y)
}

func init() {
	graphCmd.Flags().Int("depth", 0, "neighborhood depth when a root id is given")
	graphCmd.Flags().Int("limit", 500, "maximum nodes to fetch")
	graphCmd.Flags().String("types", "", "comma-separated node types to show (default all)")
	graphCmd.Flags().String("isolate", "", "isolate the neighborhood of this node id")
	graphCmd.Flags().Int("isolate-depth", 1, "isolation neighborhood depth")
	graphCmd.Flags().String("mode", "2d", "view mode for positions (2d or 3d)")
}
