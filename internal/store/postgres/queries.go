package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alfredjeanlab/traceviz/internal/model"
	"github.com/alfredjeanlab/traceviz/internal/store"
)

// workItemColumns is the column list used for SELECT statements on work_items.
const workItemColumns = `id, item_type, title, description, status, priority,
	properties, pos_x, pos_y, created_at, updated_at`

// executor is the interface satisfied by both *sql.DB and *sql.Tx.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func queryCreateWorkItem(ctx context.Context, db executor, item *model.WorkItem) error {
	var posX, posY any
	if item.Position != nil {
		posX, posY = item.Position.X, item.Position.Y
	}
	_, err := db.ExecContext(ctx, `
		INSERT INTO work_items (
			id, item_type, title, description, status, priority,
			properties, pos_x, pos_y, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11
		)`,
		item.ID,
		string(item.Type),
		item.Title,
		item.Description,
		string(item.Status),
		item.Priority,
		jsonbValue(item.Properties),
		posX,
		posY,
		item.CreatedAt,
		item.UpdatedAt,
	)
	return err
}

func queryGetWorkItem(ctx context.Context, db executor, id string) (*model.WorkItem, error) {
	row := db.QueryRowContext(ctx, `SELECT `+workItemColumns+` FROM work_items WHERE id = $1`, id)
	item, err := scanWorkItem(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	return item, err
}

func queryListWorkItems(ctx context.Context, db executor, limit int) ([]*model.WorkItem, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+workItemColumns+` FROM work_items ORDER BY created_at LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanWorkItems(rows)
}

// queryUpdateWorkItem applies a partial update. COALESCE leaves columns with
// NULL patch arguments untouched.
func queryUpdateWorkItem(ctx context.Context, db executor, id string, patch model.WorkItemPatch) (*model.WorkItem, error) {
	var status *string
	if patch.Status != nil {
		s := string(*patch.Status)
		status = &s
	}
	row := db.QueryRowContext(ctx, `
		UPDATE work_items SET
			title = COALESCE($2, title),
			description = COALESCE($3, description),
			status = COALESCE($4, status),
			priority = COALESCE($5, priority),
			updated_at = $6
		WHERE id = $1
		RETURNING `+workItemColumns,
		id,
		patch.Title,
		patch.Description,
		status,
		patch.Priority,
		time.Now().UTC(),
	)
	item, err := scanWorkItem(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	return item, err
}

func queryDeleteWorkItem(ctx context.Context, db executor, id string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM work_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRows(res)
}

// querySearchWorkItems matches the query case-insensitively against id and
// title, mirroring the client-side search semantics.
func querySearchWorkItems(ctx context.Context, db executor, query string, limit int) ([]*model.WorkItem, error) {
	pattern := "%" + query + "%"
	rows, err := db.QueryContext(ctx, `
		SELECT `+workItemColumns+` FROM work_items
		WHERE id ILIKE $1 OR title ILIKE $1
		ORDER BY created_at LIMIT $2`,
		pattern, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanWorkItems(rows)
}

func queryCreateRelationship(ctx context.Context, db executor, rel *model.Relationship) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO relationships (id, from_id, to_id, rel_type, label, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		rel.ID,
		rel.FromID,
		rel.ToID,
		string(rel.Type),
		rel.Label,
		rel.CreatedAt,
	)
	return err
}

func queryDeleteRelationship(ctx context.Context, db executor, id string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM relationships WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRows(res)
}

func queryListRelationships(ctx context.Context, db executor) ([]*model.Relationship, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, from_id, to_id, rel_type, label, created_at FROM relationships ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rels []*model.Relationship
	for rows.Next() {
		rel, err := scanRelationship(rows)
		if err != nil {
			return nil, err
		}
		rels = append(rels, rel)
	}
	return rels, rows.Err()
}

// requireRows maps a zero-row mutation to store.ErrNotFound.
func requireRows(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// jsonbValue marshals a properties map for a JSONB column, passing NULL for
// an empty map.
func jsonbValue(m map[string]any) any {
	if len(m) == 0 {
		return nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		// Properties come from validated JSON payloads; this is unreachable
		// for anything the API accepts.
		return fmt.Sprintf(`{"marshal_error": %q}`, err.Error())
	}
	return data
}
