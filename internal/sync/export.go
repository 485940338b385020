package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/alfredjeanlab/traceviz/internal/store"
)

// exportFetchLimit bounds the snapshot size. Matches the server's maximum
// visualization payload.
const exportFetchLimit = 5000

// header is the first JSONL record written by ExportJSONL.
type header struct {
	Version           string    `json:"version"`
	Type              string    `json:"type"`
	Timestamp         time.Time `json:"timestamp"`
	ItemCount         int       `json:"item_count"`
	RelationshipCount int       `json:"relationship_count"`
}

// record wraps a single JSONL line with a type discriminator.
type record struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// ExportJSONL writes all work items and relationships from the store as
// JSONL to w. Items and relationships are sorted by ID.
func ExportJSONL(ctx context.Context, s store.Store, w io.Writer) error {
	items, err := s.ListWorkItems(ctx, exportFetchLimit)
	if err != nil {
		return fmt.Errorf("list work items: %w", err)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].ID < items[j].ID
	})

	rels, err := s.ListRelationships(ctx)
	if err != nil {
		return fmt.Errorf("list relationships: %w", err)
	}
	sort.Slice(rels, func(i, j int) bool {
		return rels[i].ID < rels[j].ID
	})

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(header{
		Version:           "1",
		Type:              "header",
		Timestamp:         time.Now().UTC(),
		ItemCount:         len(items),
		RelationshipCount: len(rels),
	}); err != nil {
		return fmt.Errorf("encode header: %w", err)
	}

	for _, item := range items {
		if err := enc.Encode(record{Type: "item", Data: item}); err != nil {
			return fmt.Errorf("encode item %s: %w", item.ID, err)
		}
	}
	for _, rel := range rels {
		if err := enc.Encode(record{Type: "relationship", Data: rel}); err != nil {
			return fmt.Errorf("encode relationship %s: %w", rel.ID, err)
		}
	}

	return nil
}
