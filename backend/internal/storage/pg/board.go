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

func (s *Storage) CreateBoard(ctx context.Context, data domain.BoardCreationData) (*domain.Board, error) {
	board := domain.Board{Cards: []domain.Card{}}
	err := s.db.QueryRowContext(ctx,
		"INSERT INTO boards (id, title) VALUES ($1, $2) RETURNING id, title, created_at",
		uuid.NewString(), data.Title,
	).Scan(&board.Id, &board.Title, &board.CreatedAt.Time)
	if err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}
	return &board, nil
}

// GetBoards returns every board, newest first, with nested cards and items.
// The tree is assembled from three batched reads, not one read per parent.
func (s *Storage) GetBoards(ctx context.Context) ([]domain.Board, error) {
	boards, err := s.getBoardRows(ctx)
	if err != nil {
		return nil, err
	}
	if len(boards) == 0 {
		return boards, nil
	}

	boardIds := make([]string, len(boards))
	for i, b := range boards {
		boardIds[i] = b.Id
	}
	cards, err := getCardsOfBoards(ctx, s.db, boardIds)
	if err != nil {
		return nil, err
	}

	cardIds := make([]string, len(cards))
	for i, c := range cards {
		cardIds[i] = c.Id
	}
	itemsByCard := make(map[domain.CardId][]domain.Item, len(cards))
	if len(cards) > 0 {
		items, err := getItemsOfCards(ctx, s.db, cardIds)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			itemsByCard[item.CardId] = append(itemsByCard[item.CardId], item)
		}
	}

	cardsByBoard := make(map[domain.BoardId][]domain.Card, len(boards))
	for _, card := range cards {
		card.Items = itemsByCard[card.Id]
		if card.Items == nil {
			card.Items = []domain.Item{}
		}
		cardsByBoard[card.BoardId] = append(cardsByBoard[card.BoardId], card)
	}
	for i := range boards {
		boards[i].Cards = cardsByBoard[boards[i].Id]
		if boards[i].Cards == nil {
			boards[i].Cards = []domain.Card{}
		}
	}
	return boards, nil
}

func (s *Storage) getBoardRows(ctx context.Context) ([]domain.Board, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, title, created_at FROM boards ORDER BY created_at DESC, id")
	if err != nil {
		return nil, fmt.Errorf("failed to query boards: %w", err)
	}
	defer rows.Close()

	boards := []domain.Board{}
	for rows.Next() {
		var b domain.Board
		if err := rows.Scan(&b.Id, &b.Title, &b.CreatedAt.Time); err != nil {
			return nil, fmt.Errorf("failed to scan board: %w", err)
		}
		boards = append(boards, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate boards: %w", err)
	}
	return boards, nil
}

func getCardsOfBoards(ctx context.Context, q sharedpg.Querier, boardIds []string) ([]domain.Card, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT "+cardColumns+" FROM cards WHERE board_id = ANY($1) ORDER BY seq",
		pq.Array(boardIds),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query cards: %w", err)
	}
	defer rows.Close()

	var cards []domain.Card
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		cards = append(cards, *card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cards: %w", err)
	}
	return cards, nil
}

// DeleteBoard removes the board with its cards and their items. Unknown ids are not an error.
func (s *Storage) DeleteBoard(ctx context.Context, id domain.BoardId) error {
	return sharedpg.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM items USING cards WHERE items.card_id = cards.id AND cards.board_id = $1", id); err != nil {
			return fmt.Errorf("failed to delete board items: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM cards WHERE board_id = $1", id); err != nil {
			return fmt.Errorf("failed to delete board cards: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM boards WHERE id = $1", id); err != nil {
			return fmt.Errorf("failed to delete board: %w", err)
		}
		return nil
	})
}
