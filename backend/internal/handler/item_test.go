package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskboard-dev/taskboard/shared/api"
	"github.com/taskboard-dev/taskboard/shared/domain"
	internal_errors "github.com/taskboard-dev/taskboard/shared/errors"
)

type MockItemService struct {
	MockCreate func(ctx context.Context, cardId domain.CardId, title string, priority domain.Priority) (*domain.Item, error)
	MockList   func(ctx context.Context, cardId domain.CardId, page domain.Page) ([]domain.Item, error)
	MockUpdate func(ctx context.Context, id domain.ItemId, patch domain.ItemPatch) (*domain.Item, error)
	MockMove   func(ctx context.Context, id domain.ItemId, targetCardId domain.CardId) (*domain.Item, error)
	MockDelete func(ctx context.Context, id domain.ItemId) error
	MockReject func(ctx context.Context, id domain.ItemId, err error) error
}

func (m *MockItemService) Create(ctx context.Context, cardId domain.CardId, title string, priority domain.Priority) (*domain.Item, error) {
	if m.MockCreate != nil {
		return m.MockCreate(ctx, cardId, title, priority)
	}
	return &domain.Item{CardId: cardId, Title: title, Priority: priority}, nil
}

func (m *MockItemService) List(ctx context.Context, cardId domain.CardId, page domain.Page) ([]domain.Item, error) {
	if m.MockList != nil {
		return m.MockList(ctx, cardId, page)
	}
	return []domain.Item{}, nil
}

func (m *MockItemService) Update(ctx context.Context, id domain.ItemId, patch domain.ItemPatch) (*domain.Item, error) {
	if m.MockUpdate != nil {
		return m.MockUpdate(ctx, id, patch)
	}
	return &domain.Item{Id: id}, nil
}

func (m *MockItemService) Move(ctx context.Context, id domain.ItemId, targetCardId domain.CardId) (*domain.Item, error) {
	if m.MockMove != nil {
		return m.MockMove(ctx, id, targetCardId)
	}
	return &domain.Item{Id: id, CardId: targetCardId}, nil
}

func (m *MockItemService) Delete(ctx context.Context, id domain.ItemId) error {
	if m.MockDelete != nil {
		return m.MockDelete(ctx, id)
	}
	return nil
}

func (m *MockItemService) Reject(ctx context.Context, id domain.ItemId, err error) error {
	if m.MockReject != nil {
		return m.MockReject(ctx, id, err)
	}
	return err
}

func TestCreateItemHandler(t *testing.T) {
	route := "/api/cards/c1/items"

	t.Run("successful request", func(t *testing.T) {
		var gotPriority domain.Priority
		mockService := &MockItemService{
			MockCreate: func(ctx context.Context, cardId domain.CardId, title string, priority domain.Priority) (*domain.Item, error) {
				gotPriority = priority
				return &domain.Item{Id: "i1", CardId: cardId, Title: title, Priority: priority}, nil
			},
		}
		_, router := setupTestHandler(&MockBoardService{}, &MockCardService{}, mockService)

		rr := doRequest(router, http.MethodPost, route, []byte(`{"title": "write", "priority": "high"}`))

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, domain.PriorityHigh, gotPriority)
		var item domain.Item
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&item))
		assert.Equal(t, "i1", item.Id)
		assert.Equal(t, "c1", item.CardId)
		assert.False(t, item.Completed)
	})

	t.Run("missing title", func(t *testing.T) {
		_, router := setupTestHandler(&MockBoardService{}, &MockCardService{}, &MockItemService{})

		rr := doRequest(router, http.MethodPost, route, []byte(`{"priority": "low"}`))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "title is required", decodeError(t, rr))
	})

	t.Run("invalid priority from service", func(t *testing.T) {
		mockService := &MockItemService{
			MockCreate: func(ctx context.Context, cardId domain.CardId, title string, priority domain.Priority) (*domain.Item, error) {
				return nil, internal_errors.BadRequest("priority must be one of low, medium, high")
			},
		}
		_, router := setupTestHandler(&MockBoardService{}, &MockCardService{}, mockService)

		rr := doRequest(router, http.MethodPost, route, []byte(`{"title": "write", "priority": "urgent"}`))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestListItemsHandler(t *testing.T) {
	t.Run("empty page keeps envelope", func(t *testing.T) {
		_, router := setupTestHandler(&MockBoardService{}, &MockCardService{}, &MockItemService{})

		rr := doRequest(router, http.MethodGet, "/api/cards/c1/items", nil)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"success": true, "data": []}`, rr.Body.String())
	})

	t.Run("passes parsed page to service", func(t *testing.T) {
		var gotCard domain.CardId
		var gotPage domain.Page
		mockService := &MockItemService{
			MockList: func(ctx context.Context, cardId domain.CardId, page domain.Page) ([]domain.Item, error) {
				gotCard, gotPage = cardId, page
				return []domain.Item{{Id: "i11"}, {Id: "i12"}}, nil
			},
		}
		_, router := setupTestHandler(&MockBoardService{}, &MockCardService{}, mockService)

		rr := doRequest(router, http.MethodGet, "/api/cards/c1/items?limit=5&offset=10", nil)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "c1", gotCard)
		assert.Equal(t, domain.Page{Limit: 5, Offset: 10}, gotPage)

		var resp api.ItemListResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.True(t, resp.Success)
		assert.Len(t, resp.Data, 2)
	})

	t.Run("garbage paging falls back to defaults", func(t *testing.T) {
		var gotPage domain.Page
		mockService := &MockItemService{
			MockList: func(ctx context.Context, cardId domain.CardId, page domain.Page) ([]domain.Item, error) {
				gotPage = page
				return []domain.Item{}, nil
			},
		}
		_, router := setupTestHandler(&MockBoardService{}, &MockCardService{}, mockService)

		rr := doRequest(router, http.MethodGet, "/api/cards/c1/items?limit=abc&offset=-1", nil)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, domain.Page{Limit: 10, Offset: 0}, gotPage)
	})
}

func TestUpdateItemHandler(t *testing.T) {
	route := "/api/items/i1"

	t.Run("completion only", func(t *testing.T) {
		var gotPatch domain.ItemPatch
		mockService := &MockItemService{
			MockUpdate: func(ctx context.Context, id domain.ItemId, patch domain.ItemPatch) (*domain.Item, error) {
				gotPatch = patch
				return &domain.Item{Id: id, Completed: true, Priority: domain.PriorityLow}, nil
			},
		}
		_, router := setupTestHandler(&MockBoardService{}, &MockCardService{}, mockService)

		rr := doRequest(router, http.MethodPatch, route, []byte(`{"completed": true}`))

		assert.Equal(t, http.StatusOK, rr.Code)
		require.NotNil(t, gotPatch.Completed)
		assert.True(t, *gotPatch.Completed)
		assert.Nil(t, gotPatch.Priority)
	})

	t.Run("explicit false is kept", func(t *testing.T) {
		var gotPatch domain.ItemPatch
		mockService := &MockItemService{
			MockUpdate: func(ctx context.Context, id domain.ItemId, patch domain.ItemPatch) (*domain.Item, error) {
				gotPatch = patch
				return &domain.Item{Id: id}, nil
			},
		}
		_, router := setupTestHandler(&MockBoardService{}, &MockCardService{}, mockService)

		rr := doRequest(router, http.MethodPatch, route, []byte(`{"completed": false, "priority": "medium"}`))

		assert.Equal(t, http.StatusOK, rr.Code)
		require.NotNil(t, gotPatch.Completed)
		assert.False(t, *gotPatch.Completed)
		require.NotNil(t, gotPatch.Priority)
		assert.Equal(t, domain.PriorityMedium, *gotPatch.Priority)
	})

	t.Run("empty body is rejected by service", func(t *testing.T) {
		mockService := &MockItemService{
			MockUpdate: func(ctx context.Context, id domain.ItemId, patch domain.ItemPatch) (*domain.Item, error) {
				assert.True(t, patch.IsEmpty())
				return nil, internal_errors.BadRequest("completed or priority is required")
			},
		}
		_, router := setupTestHandler(&MockBoardService{}, &MockCardService{}, mockService)

		rr := doRequest(router, http.MethodPatch, route, []byte(`{}`))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "completed or priority is required", decodeError(t, rr))
	})

	t.Run("invalid json on existing item", func(t *testing.T) {
		_, router := setupTestHandler(&MockBoardService{}, &MockCardService{}, &MockItemService{})

		rr := doRequest(router, http.MethodPatch, route, []byte(`{bad`))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Body is invalid json", decodeError(t, rr))
	})

	t.Run("invalid json on unknown item", func(t *testing.T) {
		var gotId domain.ItemId
		mockService := &MockItemService{
			MockReject: func(ctx context.Context, id domain.ItemId, err error) error {
				gotId = id
				return internal_errors.NotFound("Item not found")
			},
		}
		_, router := setupTestHandler(&MockBoardService{}, &MockCardService{}, mockService)

		rr := doRequest(router, http.MethodPatch, route, []byte(`{bad`))

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "i1", gotId)
	})

	t.Run("unknown item", func(t *testing.T) {
		mockService := &MockItemService{
			MockUpdate: func(ctx context.Context, id domain.ItemId, patch domain.ItemPatch) (*domain.Item, error) {
				return nil, internal_errors.NotFound("Item not found")
			},
		}
		_, router := setupTestHandler(&MockBoardService{}, &MockCardService{}, mockService)

		rr := doRequest(router, http.MethodPatch, route, []byte(`{"completed": true}`))

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "Item not found", decodeError(t, rr))
	})
}

func TestMoveItemHandler(t *testing.T) {
	route := "/api/items/i1/move"

	t.Run("successful request", func(t *testing.T) {
		_, router := setupTestHandler(&MockBoardService{}, &MockCardService{}, &MockItemService{})

		rr := doRequest(router, http.MethodPatch, route, []byte(`{"targetCardId": "c2"}`))

		assert.Equal(t, http.StatusOK, rr.Code)
		var item domain.Item
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&item))
		assert.Equal(t, "i1", item.Id)
		assert.Equal(t, "c2", item.CardId)
	})

	t.Run("missing target", func(t *testing.T) {
		var gotTarget domain.CardId = "unset"
		mockService := &MockItemService{
			MockMove: func(ctx context.Context, id domain.ItemId, targetCardId domain.CardId) (*domain.Item, error) {
				gotTarget = targetCardId
				return nil, internal_errors.BadRequest("targetCardId is required")
			},
		}
		_, router := setupTestHandler(&MockBoardService{}, &MockCardService{}, mockService)

		rr := doRequest(router, http.MethodPatch, route, []byte(`{}`))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Empty(t, gotTarget)
	})

	t.Run("unknown target card", func(t *testing.T) {
		mockService := &MockItemService{
			MockMove: func(ctx context.Context, id domain.ItemId, targetCardId domain.CardId) (*domain.Item, error) {
				return nil, errors.New("pq: violates foreign key constraint")
			},
		}
		_, router := setupTestHandler(&MockBoardService{}, &MockCardService{}, mockService)

		rr := doRequest(router, http.MethodPatch, route, []byte(`{"targetCardId": "nope"}`))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestDeleteItemHandler(t *testing.T) {
	var gotId domain.ItemId
	mockService := &MockItemService{
		MockDelete: func(ctx context.Context, id domain.ItemId) error {
			gotId = id
			return nil
		},
	}
	_, router := setupTestHandler(&MockBoardService{}, &MockCardService{}, mockService)

	rr := doRequest(router, http.MethodDelete, "/api/items/i1", nil)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "i1", gotId)
}
