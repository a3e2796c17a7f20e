package repositories

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atolye-takip/migrations"
	apperrors "atolye-takip/pkg/errors"
)

var testPool *pgxpool.Pool

// TestMain connects to the database named by TEST_DATABASE_URL and applies
// the migrations. Without the variable the integration tests are skipped.
func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		os.Exit(m.Run())
	}

	if err := migrations.Run(dsn); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	var err error
	testPool, err = pgxpool.New(context.Background(), dsn)
	if err != nil {
		log.Fatalf("test database connection failed: %v", err)
	}
	defer testPool.Close()

	os.Exit(m.Run())
}

func requireDB(t *testing.T) {
	t.Helper()
	if testPool == nil {
		t.Skip("TEST_DATABASE_URL not set")
	}
}

func uniqueName(prefix string) string {
	return fmt.Sprintf("%s %d", prefix, time.Now().UnixNano())
}

func TestWorkshopRepository_Integration_CRUD(t *testing.T) {
	requireDB(t)
	repo := NewWorkshopRepository(testPool)
	ctx := context.Background()

	name := uniqueName("Dikim Atölyesi")
	created, err := repo.CreateWorkshop(ctx, name, "Merter", "Hasan Bey", "0532 000 00 00")
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	assert.Equal(t, name, created.Name)
	assert.True(t, created.IsActive)

	found, err := repo.FindWorkshop(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Name, found.Name)
	assert.Equal(t, "Merter", found.Location)

	newLocation := "Zeytinburnu"
	updated, err := repo.UpdateWorkshop(ctx, created.ID, nil, &newLocation, nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, newLocation, updated.Location)
	assert.Equal(t, name, updated.Name, "unset fields stay untouched")

	require.NoError(t, repo.DeactivateWorkshop(ctx, created.ID))

	active, err := repo.GetWorkshops(ctx, true)
	require.NoError(t, err)
	for _, w := range active {
		assert.NotEqual(t, created.ID, w.ID, "deactivated workshops leave the active list")
	}

	all, err := repo.GetWorkshops(ctx, false)
	require.NoError(t, err)
	var seen bool
	for _, w := range all {
		if w.ID == created.ID {
			seen = true
			assert.False(t, w.IsActive)
		}
	}
	assert.True(t, seen)
}

func TestWorkshopRepository_Integration_DuplicateName(t *testing.T) {
	requireDB(t)
	repo := NewWorkshopRepository(testPool)
	ctx := context.Background()

	name := uniqueName("Kesim Atölyesi")
	_, err := repo.CreateWorkshop(ctx, name, "", "", "")
	require.NoError(t, err)

	_, err = repo.CreateWorkshop(ctx, name, "", "", "")
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestWorkshopRepository_Integration_NotFound(t *testing.T) {
	requireDB(t)
	repo := NewWorkshopRepository(testPool)

	_, err := repo.FindWorkshop(context.Background(), 999999999)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
