// Package client provides a transport-agnostic interface for the traceviz
// backend and an HTTP/JSON implementation that talks to its REST API.
package client

import (
	"context"

	"github.com/alfredjeanlab/traceviz/internal/model"
)

// Service is the backend collaborator consumed by the graph store. It is
// implemented by HTTPClient (default) and can be backed by any transport.
type Service interface {
	// GetVisualization fetches the renderable graph. When req.RootID is set
	// the result is the depth-bounded neighborhood of that node; otherwise
	// the whole graph capped at req.Limit nodes.
	GetVisualization(ctx context.Context, req model.VisualizationRequest) (*model.VisualizationResponse, error)

	// Search returns nodes whose id or label contains the query,
	// case-insensitively.
	Search(ctx context.Context, query string) ([]model.RawNode, error)

	// GetWorkItem fetches a single work item by id.
	GetWorkItem(ctx context.Context, id string) (*model.WorkItem, error)

	// CreateRelationship links two work items with a typed edge.
	CreateRelationship(ctx context.Context, fromID, toID string, relType model.RelationshipType) error

	// DeleteRelationship removes an edge by id.
	DeleteRelationship(ctx context.Context, edgeID string) error

	// UpdateWorkItem applies a partial update; nil patch fields are left
	// untouched server-side.
	UpdateWorkItem(ctx context.Context, id string, patch model.WorkItemPatch) error

	// Health reports backend liveness.
	Health(ctx context.Context) (string, error)

	// Close releases transport resources.
	Close() error
}
