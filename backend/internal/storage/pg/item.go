package pg

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/taskboard-dev/taskboard/shared/domain"
	sharedpg "github.com/taskboard-dev/taskboard/shared/storage/pg"
)

const itemColumns = "id, card_id, title, completed, priority, created_time"

func scanItem(row rowScanner) (*domain.Item, error) {
	var i domain.Item
	if err := row.Scan(&i.Id, &i.CardId, &i.Title, &i.Completed, &i.Priority, &i.CreatedTime.Time); err != nil {
		return nil, err
	}
	return &i, nil
}

func (s *Storage) CreateItem(ctx context.Context, data domain.ItemCreationData) (*domain.Item, error) {
	item, err := scanItem(s.db.QueryRowContext(ctx,
		"INSERT INTO items (id, card_id, title, priority, completed) VALUES ($1, $2, $3, $4, false) RETURNING "+itemColumns,
		uuid.NewString(), data.CardId, data.Title, data.Priority,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}
	return item, nil
}

// GetItems returns one page of a card's items in insertion order.
func (s *Storage) GetItems(ctx context.Context, cardId domain.CardId, page domain.Page) ([]domain.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+itemColumns+" FROM items WHERE card_id = $1 ORDER BY seq LIMIT $2 OFFSET $3",
		cardId, page.Limit, page.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	return collectItems(rows)
}

// getItemsOfCards loads the items of several cards in one query. It takes a
// Querier so it can run on the pool or inside a transaction.
func getItemsOfCards(ctx context.Context, q sharedpg.Querier, cardIds []string) ([]domain.Item, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT "+itemColumns+" FROM items WHERE card_id = ANY($1) ORDER BY seq",
		pq.Array(cardIds),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	return collectItems(rows)
}

func collectItems(rows *sql.Rows) ([]domain.Item, error) {
	defer rows.Close()

	items := []domain.Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}
	return items, nil
}

// UpdateItem writes the fields present in patch. Absent fields keep their
// stored value through COALESCE, so the statement text never changes.
func (s *Storage) UpdateItem(ctx context.Context, id domain.ItemId, patch domain.ItemPatch) (*domain.Item, error) {
	var completed sql.NullBool
	if patch.Completed != nil {
		completed = sql.NullBool{Bool: *patch.Completed, Valid: true}
	}
	var priority sql.NullString
	if patch.Priority != nil {
		priority = sql.NullString{String: string(*patch.Priority), Valid: true}
	}

	item, err := scanItem(s.db.QueryRowContext(ctx, `
		UPDATE items SET
			completed = COALESCE($2::boolean, completed),
			priority = COALESCE($3::text, priority)
		WHERE id = $1
		RETURNING `+itemColumns,
		id, completed, priority,
	))
	if err != nil {
		return nil, notFoundOr(err, "Item not found", "failed to update item")
	}
	return item, nil
}

// MoveItem reassigns the owning card and nothing else.
func (s *Storage) MoveItem(ctx context.Context, id domain.ItemId, targetCardId domain.CardId) (*domain.Item, error) {
	item, err := scanItem(s.db.QueryRowContext(ctx,
		"UPDATE items SET card_id = $2 WHERE id = $1 RETURNING "+itemColumns,
		id, targetCardId,
	))
	if err != nil {
		return nil, notFoundOr(err, "Item not found", "failed to move item")
	}
	return item, nil
}

func (s *Storage) ItemExists(ctx context.Context, id domain.ItemId) (bool, error) {
	var exists bool
	if err := s.db.QueryRowContext(ctx, "SELECT EXISTS (SELECT 1 FROM items WHERE id = $1)", id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to look up item: %w", err)
	}
	return exists, nil
}

// DeleteItem is a no-op for unknown ids.
func (s *Storage) DeleteItem(ctx context.Context, id domain.ItemId) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM items WHERE id = $1", id); err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return nil
}
