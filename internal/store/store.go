package store

import (
	"context"
	"errors"

	"github.com/alfredjeanlab/traceviz/internal/model"
)

// ErrNotFound is returned when a work item or relationship does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the persistence interface for work items and relationships.
type Store interface {
	// Work items
	CreateWorkItem(ctx context.Context, item *model.WorkItem) error
	GetWorkItem(ctx context.Context, id string) (*model.WorkItem, error)
	ListWorkItems(ctx context.Context, limit int) ([]*model.WorkItem, error)
	UpdateWorkItem(ctx context.Context, id string, patch model.WorkItemPatch) (*model.WorkItem, error)
	DeleteWorkItem(ctx context.Context, id string) error
	SearchWorkItems(ctx context.Context, query string, limit int) ([]*model.WorkItem, error)

	// Relationships
	CreateRelationship(ctx context.Context, rel *model.Relationship) error
	DeleteRelationship(ctx context.Context, id string) error
	ListRelationships(ctx context.Context) ([]*model.Relationship, error)

	// Lifecycle
	Close() error
}
