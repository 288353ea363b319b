package pg

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/taskboard-dev/taskboard/shared/config"
	"github.com/taskboard-dev/taskboard/shared/domain"
	internal_errors "github.com/taskboard-dev/taskboard/shared/errors"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

var storage *Storage

func TestMain(m *testing.M) {
	ctx := context.Background()
	var container *postgres.PostgresContainer
	storage, container = mustSetup(ctx)

	exitCode := m.Run()
	teardown(ctx, storage, container)
	os.Exit(exitCode)
}

func mustSetup(ctx context.Context) (*Storage, *postgres.PostgresContainer) {
	dbName := "taskboard"
	dbUser := "user"
	dbPassword := "password"
	container, err := postgres.Run(ctx,
		"postgres:15.3-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		testcontainers.WithWaitStrategy(
			// First, we wait for the container to log readiness twice.
			// This is because it will restart itself after the first startup.
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		log.Fatalf("failed to start container: %s", err)
	}
	containerPort, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		log.Fatalf("failed to obtain container port: %s", err)
	}
	port, err := strconv.Atoi(containerPort.Port())
	if err != nil {
		log.Fatalf("failed to obtain int container port: %s", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		log.Fatalf("failed to obtain container host: %s", err)
	}

	cfg := config.Default()
	cfg.Private.Pg = config.Pg{Host: host, Port: port, User: dbUser, Password: dbPassword, Dbname: dbName}
	storage, err := New(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to connect to postgres container: %s", err)
	}
	if err := storage.EnsureSchema(ctx); err != nil {
		log.Fatalf("failed to create schema: %s", err)
	}
	return storage, container
}

func teardown(ctx context.Context, storage *Storage, container *postgres.PostgresContainer) {
	if err := storage.Cleanup(); err != nil {
		log.Printf("failed to close storage connection: %s", err)
	}
	if err := container.Terminate(ctx); err != nil {
		log.Printf("failed to terminate container: %s", err)
	}
}

// =========================================================================
// Helpers
// =========================================================================

func resetDB(t *testing.T) {
	t.Helper()
	_, err := storage.db.Exec("TRUNCATE items, cards, boards")
	require.NoError(t, err)
}

func requireNotFoundError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, http.StatusNotFound, internal_errors.StatusCode(err), "expected not found, got %v", err)
}

func createTestBoard(t *testing.T, title string) *domain.Board {
	t.Helper()
	board, err := storage.CreateBoard(context.Background(), domain.BoardCreationData{Title: title})
	require.NoError(t, err)
	return board
}

func createTestCard(t *testing.T, boardId domain.BoardId, title string) *domain.Card {
	t.Helper()
	card, err := storage.CreateCard(context.Background(), domain.CardCreationData{BoardId: boardId, Title: title, Color: domain.DefaultCardColor})
	require.NoError(t, err)
	return card
}

func createTestItem(t *testing.T, cardId domain.CardId, title string) *domain.Item {
	t.Helper()
	item, err := storage.CreateItem(context.Background(), domain.ItemCreationData{CardId: cardId, Title: title, Priority: domain.PriorityLow})
	require.NoError(t, err)
	return item
}

func countRows(t *testing.T, query string, args ...any) int {
	t.Helper()
	var n int
	require.NoError(t, storage.db.QueryRow(query, args...).Scan(&n))
	return n
}
