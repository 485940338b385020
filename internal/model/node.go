package model

// NodeType categorizes a graph node.
// Well-known constants are provided below, but node types are extensible;
// the backend may introduce new types at any time and consumers must treat
// unrecognized values as valid (fail-open).
type NodeType string

// Work-item types.
const (
	TypeRequirement NodeType = "requirement"
	TypeTask        NodeType = "task"
	TypeTest        NodeType = "test"
	TypeRisk        NodeType = "risk"
	TypeDocument    NodeType = "document"
)

// Structural types.
const (
	TypeProject  NodeType = "Project"
	TypeUser     NodeType = "User"
	TypeSprint   NodeType = "Sprint"
	TypeWorkItem NodeType = "WorkItem"
)

// String returns the string representation of the node type.
func (t NodeType) String() string {
	return string(t)
}

// IsValid reports whether the node type is a non-empty string.
// Node types are extensible, so any non-empty value is accepted.
func (t NodeType) IsValid() bool {
	return t != ""
}

// IsStructuralWrapper reports whether the type is a generic container whose
// effective subtype lives in the node's properties (properties["type"]).
func (t NodeType) IsStructuralWrapper() bool {
	return t == TypeWorkItem
}

// KnownNodeTypes lists the types seeded into a fresh type-filter table.
func KnownNodeTypes() []NodeType {
	return []NodeType{
		TypeRequirement, TypeTask, TypeTest, TypeRisk, TypeDocument,
		TypeProject, TypeUser, TypeSprint, TypeWorkItem,
	}
}

// Position2D is a planar position in the 2D view's coordinate space.
type Position2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Position3D is a spatial position in the 3D view's coordinate space.
// Y is height; transform-derived positions always have Y == 0.
type Position3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// NodeData is the display payload attached to a node.
type NodeData struct {
	Label      string         `json:"label"`
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties,omitempty"`
}

// Node is a graph node as held by the store and consumed by both renderers.
// Nodes are replaced wholesale on every successful load; identity is carried
// by ID across reloads.
type Node struct {
	ID       string     `json:"id"`
	Type     NodeType   `json:"nodeType"`
	Position Position2D `json:"position"`
	Data     NodeData   `json:"data"`
}

// EffectiveType resolves the node's primary type: the data payload type when
// present, otherwise the node's own type.
func (n *Node) EffectiveType() NodeType {
	if n.Data.Type != "" {
		return NodeType(n.Data.Type)
	}
	return n.Type
}

// Subtype returns the nested properties["type"] value for structural wrapper
// nodes, or "" when absent.
func (n *Node) Subtype() NodeType {
	if n.Data.Properties == nil {
		return ""
	}
	if s, ok := n.Data.Properties["type"].(string); ok {
		return NodeType(s)
	}
	return ""
}
