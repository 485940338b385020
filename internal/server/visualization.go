package server

import (
	"context"
	"fmt"

	"github.com/alfredjeanlab/traceviz/internal/model"
)

const (
	defaultLimit = 500
	maxLimit     = 5000
	defaultDepth = 2
)

// buildVisualization assembles the visualization payload. With an empty
// RootID the whole graph is returned, capped at Limit nodes in creation
// order. With a RootID only the nodes reachable from it within Depth hops
// are included, traversing relationships in both directions. Edges are kept
// only when both endpoints made the cut.
func (s *Server) buildVisualization(ctx context.Context, req model.VisualizationRequest) (*model.VisualizationResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	// The neighborhood query needs the full item set to traverse; the cap is
	// applied to the result, not the fetch.
	fetchLimit := limit
	if req.RootID != "" {
		fetchLimit = maxLimit
	}

	items, err := s.store.ListWorkItems(ctx, fetchLimit)
	if err != nil {
		return nil, fmt.Errorf("list work items: %w", err)
	}
	rels, err := s.store.ListRelationships(ctx)
	if err != nil {
		return nil, fmt.Errorf("list relationships: %w", err)
	}

	included := make(map[string]bool, len(items))
	if req.RootID == "" {
		for i, item := range items {
			if i >= limit {
				break
			}
			included[item.ID] = true
		}
	} else {
		depth := req.Depth
		if depth <= 0 {
			depth = defaultDepth
		}
		for _, id := range reachableWithin(req.RootID, depth, items, rels) {
			included[id] = true
		}
	}

	resp := &model.VisualizationResponse{
		Nodes: make([]model.RawNode, 0, len(included)),
		Edges: []model.RawEdge{},
	}
	for _, item := range items {
		if !included[item.ID] {
			continue
		}
		resp.Nodes = append(resp.Nodes, model.RawNode{
			ID:         item.ID,
			Type:       string(item.Type),
			Label:      item.Title,
			Properties: item.Properties,
			Position:   item.Position,
		})
	}
	for _, rel := range rels {
		if !included[rel.FromID] || !included[rel.ToID] {
			continue
		}
		resp.Edges = append(resp.Edges, model.RawEdge{
			ID:     rel.ID,
			Source: rel.FromID,
			Target: rel.ToID,
			Type:   string(rel.Type),
			Label:  rel.Label,
		})
	}
	return resp, nil
}

// reachableWithin runs a breadth-first traversal from root over the
// relationship set, ignoring edge direction, and returns every node id
// within depth hops. An unknown root yields an empty result.
func reachableWithin(root string, depth int, items []*model.WorkItem, rels []*model.Relationship) []string {
	known := make(map[string]bool, len(items))
	for _, item := range items {
		known[item.ID] = true
	}
	if !known[root] {
		return nil
	}

	adjacency := make(map[string][]string)
	for _, rel := range rels {
		adjacency[rel.FromID] = append(adjacency[rel.FromID], rel.ToID)
		adjacency[rel.ToID] = append(adjacency[rel.ToID], rel.FromID)
	}

	visited := map[string]bool{root: true}
	result := []string{root}
	frontier := []string{root}
	for hop := 0; hop < depth && len(frontier) > 0; hop++ {
		var next []string
		for _, id := range frontier {
			for _, neighbor := range adjacency[id] {
				if visited[neighbor] || !known[neighbor] {
					continue
				}
				visited[neighbor] = true
				result = append(result, neighbor)
				next = append(next, neighbor)
			}
		}
		frontier = next
	}
	return result
}
