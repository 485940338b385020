package model

// RawNode is a node as delivered by the visualization endpoint. Position is
// optional; consumers must assign a fallback placement when it is absent so
// no node is ever positionless.
type RawNode struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Label      string         `json:"label"`
	Properties map[string]any `json:"properties,omitempty"`
	Position   *Position2D    `json:"position,omitempty"`
}

// RawEdge is an edge as delivered by the visualization endpoint.
type RawEdge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"type"`
	Label  string `json:"label,omitempty"`
}

// VisualizationResponse is the payload of the graph visualization endpoint.
type VisualizationResponse struct {
	Nodes []RawNode `json:"nodes"`
	Edges []RawEdge `json:"edges"`
}

// VisualizationRequest bounds a visualization query. When RootID is empty the
// whole graph is returned up to Limit nodes; otherwise the neighborhood of
// RootID up to Depth hops.
type VisualizationRequest struct {
	RootID string
	Depth  int
	Limit  int
}

// SearchResult is a read-only projection of a node returned by search.
// Label may legitimately be the empty string.
type SearchResult struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Label      string         `json:"label"`
	Properties map[string]any `json:"properties,omitempty"`
}
