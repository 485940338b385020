package events

import (
	"context"

	"github.com/alfredjeanlab/traceviz/internal/model"
)

// Event topic constants
const (
	TopicItemUpdated         = "traceviz.item.updated"
	TopicRelationshipCreated = "traceviz.relationship.created"
	TopicRelationshipDeleted = "traceviz.relationship.deleted"
)

// Event types

type ItemUpdated struct {
	Item    *model.WorkItem `json:"item"`
	Changes map[string]any  `json:"changes"` // field name -> new value
}

type RelationshipCreated struct {
	Relationship *model.Relationship `json:"relationship"`
}

type RelationshipDeleted struct {
	RelationshipID string `json:"relationship_id"`
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}
