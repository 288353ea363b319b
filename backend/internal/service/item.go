package service

import (
	"context"
	"strings"

	"github.com/taskboard-dev/taskboard/shared/domain"
	"github.com/taskboard-dev/taskboard/shared/errors"
)

type ItemService interface {
	Create(ctx context.Context, cardId domain.CardId, title string, priority domain.Priority) (*domain.Item, error)
	List(ctx context.Context, cardId domain.CardId, page domain.Page) ([]domain.Item, error)
	Update(ctx context.Context, id domain.ItemId, patch domain.ItemPatch) (*domain.Item, error)
	Move(ctx context.Context, id domain.ItemId, targetCardId domain.CardId) (*domain.Item, error)
	Delete(ctx context.Context, id domain.ItemId) error
	Reject(ctx context.Context, id domain.ItemId, err error) error
}

type Item struct {
	storage      ItemStorage
	validator    TitleValidator
	maxPageLimit int
}

type ItemStorage interface {
	CreateItem(ctx context.Context, data domain.ItemCreationData) (*domain.Item, error)
	GetItems(ctx context.Context, cardId domain.CardId, page domain.Page) ([]domain.Item, error)
	UpdateItem(ctx context.Context, id domain.ItemId, patch domain.ItemPatch) (*domain.Item, error)
	MoveItem(ctx context.Context, id domain.ItemId, targetCardId domain.CardId) (*domain.Item, error)
	ItemExists(ctx context.Context, id domain.ItemId) (bool, error)
	DeleteItem(ctx context.Context, id domain.ItemId) error
}

func NewItem(storage ItemStorage, validator TitleValidator, maxPageLimit int) ItemService {
	return &Item{storage, validator, maxPageLimit}
}

func (s *Item) Create(ctx context.Context, cardId domain.CardId, title string, priority domain.Priority) (*domain.Item, error) {
	title, err := s.validator.Title(title)
	if err != nil {
		return nil, err
	}
	if priority == "" {
		priority = domain.PriorityLow
	}
	if !priority.Valid() {
		return nil, errInvalidPriority
	}
	return s.storage.CreateItem(ctx, domain.ItemCreationData{CardId: cardId, Title: title, Priority: priority})
}

func (s *Item) List(ctx context.Context, cardId domain.CardId, page domain.Page) ([]domain.Item, error) {
	page.Limit = min(page.Limit, s.maxPageLimit)
	page.Offset = max(page.Offset, 0)
	return s.storage.GetItems(ctx, cardId, page)
}

var (
	errEmptyPatch      = errors.BadRequest("completed or priority is required")
	errInvalidPriority = errors.BadRequest("priority must be one of low, medium, high")
	errMissingTarget   = errors.BadRequest("targetCardId is required")
)

func (s *Item) Update(ctx context.Context, id domain.ItemId, patch domain.ItemPatch) (*domain.Item, error) {
	if patch.IsEmpty() {
		return nil, s.rejectExisting(ctx, id, errEmptyPatch)
	}
	if patch.Priority != nil && !patch.Priority.Valid() {
		return nil, s.rejectExisting(ctx, id, errInvalidPriority)
	}
	return s.storage.UpdateItem(ctx, id, patch)
}

// Move changes the owning card only. The target card is not looked up.
func (s *Item) Move(ctx context.Context, id domain.ItemId, targetCardId domain.CardId) (*domain.Item, error) {
	targetCardId = strings.TrimSpace(targetCardId)
	if targetCardId == "" {
		return nil, s.rejectExisting(ctx, id, errMissingTarget)
	}
	return s.storage.MoveItem(ctx, id, targetCardId)
}

func (s *Item) Delete(ctx context.Context, id domain.ItemId) error {
	return s.storage.DeleteItem(ctx, id)
}

// Reject is used when a request for item id failed before reaching the service,
// e.g. an unparsable body. A missing item still wins with not found.
func (s *Item) Reject(ctx context.Context, id domain.ItemId, err error) error {
	return s.rejectExisting(ctx, id, err)
}

// rejectExisting reports a missing item as not found before the validation
// error. Only reads, so a rejected request never mutates a row.
func (s *Item) rejectExisting(ctx context.Context, id domain.ItemId, validationErr error) error {
	exists, err := s.storage.ItemExists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return errors.NotFound("Item not found")
	}
	return validationErr
}
