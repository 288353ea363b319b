package pg

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/taskboard-dev/taskboard/shared/domain"
	sharedpg "github.com/taskboard-dev/taskboard/shared/storage/pg"
)

const cardColumns = "id, board_id, title, color"

func scanCard(row rowScanner) (*domain.Card, error) {
	var c domain.Card
	if err := row.Scan(&c.Id, &c.BoardId, &c.Title, &c.Color); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Storage) CreateCard(ctx context.Context, data domain.CardCreationData) (*domain.Card, error) {
	card, err := scanCard(s.db.QueryRowContext(ctx,
		"INSERT INTO cards (id, board_id, title, color) VALUES ($1, $2, $3, $4) RETURNING "+cardColumns,
		uuid.NewString(), data.BoardId, data.Title, data.Color,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create card: %w", err)
	}
	card.Items = []domain.Item{}
	return card, nil
}

// UpdateCardColor sets the color and returns the card with its items. Both
// reads share one transaction so the items match the updated row.
func (s *Storage) UpdateCardColor(ctx context.Context, id domain.CardId, color domain.Color) (*domain.Card, error) {
	var card *domain.Card
	err := sharedpg.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		var err error
		card, err = scanCard(tx.QueryRowContext(ctx,
			"UPDATE cards SET color = $2 WHERE id = $1 RETURNING "+cardColumns,
			id, color,
		))
		if err != nil {
			return notFoundOr(err, "Card not found", "failed to update card color")
		}
		card.Items, err = getItemsOfCards(ctx, tx, []string{card.Id})
		return err
	})
	if err != nil {
		return nil, err
	}
	return card, nil
}

// DeleteCard removes the card with its items. Unknown ids are not an error.
func (s *Storage) DeleteCard(ctx context.Context, id domain.CardId) error {
	return sharedpg.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM items WHERE card_id = $1", id); err != nil {
			return fmt.Errorf("failed to delete card items: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM cards WHERE id = $1", id); err != nil {
			return fmt.Errorf("failed to delete card: %w", err)
		}
		return nil
	})
}
