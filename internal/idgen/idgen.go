// Package idgen provides short, URL-safe unique ID generation backed by nanoid.
package idgen

import (
	"fmt"

	nanoid "github.com/matoous/go-nanoid/v2"
)

// Prefixes for the two persisted entity kinds.
const (
	WorkItemPrefix     = "wi-"
	RelationshipPrefix = "rel-"
)

// Alphabet defines the character set used for the random portion of the ID.
var Alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Length is the number of random characters generated (excluding the prefix).
var Length = 10

// NewWorkItemID returns a new unique work item ID.
func NewWorkItemID() (string, error) {
	return generate(WorkItemPrefix)
}

// NewRelationshipID returns a new unique relationship ID.
func NewRelationshipID() (string, error) {
	return generate(RelationshipPrefix)
}

func generate(prefix string) (string, error) {
	id, err := nanoid.Generate(Alphabet, Length)
	if err != nil {
		return "", fmt.Errorf("idgen: %w", err)
	}
	return prefix + id, nil
}
