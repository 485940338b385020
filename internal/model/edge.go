package model

// RelationshipType labels a directed edge between two work items.
// Well-known constants below; relationship types are extensible.
type RelationshipType string

const (
	RelRelatesTo  RelationshipType = "RELATES_TO"
	RelImplements RelationshipType = "IMPLEMENTS"
	RelTestedBy   RelationshipType = "TESTED_BY"
	RelMitigates  RelationshipType = "MITIGATES"
	RelDependsOn  RelationshipType = "DEPENDS_ON"
	RelLeadsTo    RelationshipType = "LEADS_TO"
)

// String returns the string representation of the relationship type.
func (t RelationshipType) String() string {
	return string(t)
}

// IsValid reports whether the relationship type is a non-empty string.
func (t RelationshipType) IsValid() bool {
	return t != ""
}

// Edge is a directed relationship between two nodes. An edge is only
// renderable when both endpoints resolve to currently-visible nodes.
type Edge struct {
	ID     string           `json:"id"`
	Source string           `json:"source"`
	Target string           `json:"target"`
	Type   RelationshipType `json:"type"`
	Label  string           `json:"label,omitempty"`
	Data   map[string]any   `json:"data,omitempty"`
}
