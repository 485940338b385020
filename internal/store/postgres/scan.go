package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/alfredjeanlab/traceviz/internal/model"
)

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanWorkItem scans a single work item row in workItemColumns order.
func scanWorkItem(row rowScanner) (*model.WorkItem, error) {
	var (
		item       model.WorkItem
		itemType   string
		status     string
		properties []byte
		posX, posY sql.NullFloat64
	)
	err := row.Scan(
		&item.ID,
		&itemType,
		&item.Title,
		&item.Description,
		&status,
		&item.Priority,
		&properties,
		&posX,
		&posY,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	item.Type = model.NodeType(itemType)
	item.Status = model.Status(status)
	if len(properties) > 0 {
		if err := json.Unmarshal(properties, &item.Properties); err != nil {
			return nil, fmt.Errorf("decode properties for %s: %w", item.ID, err)
		}
	}
	if posX.Valid && posY.Valid {
		item.Position = &model.Position2D{X: posX.Float64, Y: posY.Float64}
	}
	return &item, nil
}

func scanWorkItems(rows *sql.Rows) ([]*model.WorkItem, error) {
	var items []*model.WorkItem
	for rows.Next() {
		item, err := scanWorkItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanRelationship(row rowScanner) (*model.Relationship, error) {
	var (
		rel     model.Relationship
		relType string
	)
	err := row.Scan(
		&rel.ID,
		&rel.FromID,
		&rel.ToID,
		&relType,
		&rel.Label,
		&rel.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	rel.Type = model.RelationshipType(relType)
	return &rel, nil
}
