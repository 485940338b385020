package model

import "time"

// Status represents the workflow state of a work item.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusBlocked    Status = "blocked"
	StatusDone       Status = "done"
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsValid checks whether the status is a known value.
func (s Status) IsValid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusBlocked, StatusDone:
		return true
	}
	return false
}

// WorkItem is the persisted form of a graph node: a requirement, task, test,
// risk or document, plus the structural entities (projects, users, sprints)
// stored in the same table.
type WorkItem struct {
	ID          string         `json:"id"`
	Type        NodeType       `json:"type"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Status      Status         `json:"status"`
	Priority    int            `json:"priority"`
	Properties  map[string]any `json:"properties,omitempty"`
	Position    *Position2D    `json:"position,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// WorkItemPatch is a partial update. Nil fields are left untouched.
type WorkItemPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *Status `json:"status,omitempty"`
	Priority    *int    `json:"priority,omitempty"`
}

// Relationship is the persisted form of a graph edge.
type Relationship struct {
	ID        string           `json:"id"`
	FromID    string           `json:"from_id"`
	ToID      string           `json:"to_id"`
	Type      RelationshipType `json:"type"`
	Label     string           `json:"label,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}
