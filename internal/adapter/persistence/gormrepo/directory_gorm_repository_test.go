package gormrepo

import (
	"context"
	"testing"
	"time"

	"brcargo_cotacoes/internal/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserGormRepository(t *testing.T) {
	repo := NewUserGormRepository(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, entities.User{ID: "u-2", Name: "Olga", Role: entities.RoleOperador, Active: true}))
	require.NoError(t, repo.Save(ctx, entities.User{ID: "u-1", Name: "Gina", Role: entities.RoleGerente, Active: true}))
	require.NoError(t, repo.Save(ctx, entities.User{ID: "u-3", Name: "Carla", Role: entities.RoleConsultor, Active: true}))

	t.Run("save overwrites an existing user", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, entities.User{ID: "u-2", Name: "Olga S.", Role: entities.RoleOperador, Active: false}))
		got, err := repo.GetByID(ctx, "u-2")
		require.NoError(t, err)
		assert.Equal(t, "Olga S.", got.Name)
		assert.False(t, got.Active)
	})

	t.Run("unknown id returns the zero user", func(t *testing.T) {
		got, err := repo.GetByID(ctx, "missing")
		require.NoError(t, err)
		assert.Empty(t, got.ID)
	})

	t.Run("lists by roles ordered by id", func(t *testing.T) {
		got, err := repo.ListByRoles(ctx, []entities.Role{entities.RoleOperador, entities.RoleGerente})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "u-1", got[0].ID)
		assert.Equal(t, "u-2", got[1].ID)

		none, err := repo.ListByRoles(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, none)
	})
}

func TestCompanyGormRepository(t *testing.T) {
	repo := NewCompanyGormRepository(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, entities.Company{ID: "co-1", Name: "BR Cargo", TaxID: "11222333000181", Active: true}))

	got, err := repo.GetByID(ctx, "co-1")
	require.NoError(t, err)
	assert.Equal(t, "BR Cargo", got.Name)
	assert.True(t, got.Active)

	missing, err := repo.GetByID(ctx, "co-2")
	require.NoError(t, err)
	assert.Empty(t, missing.ID)
}

func TestNotificationGormRepository(t *testing.T) {
	repo := NewNotificationGormRepository(setupTestDB(t))
	ctx := context.Background()
	base := time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC)

	for i, id := range []string{"n-1", "n-2", "n-3"} {
		require.NoError(t, repo.Create(ctx, entities.Notification{
			ID:          id,
			RecipientID: "u-1",
			QuoteID:     "q-1",
			Kind:        entities.NotificationNovaCotacao,
			Title:       "Nova cotação",
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, repo.Create(ctx, entities.Notification{ID: "n-x", RecipientID: "u-2", CreatedAt: base}))

	list, err := repo.ListByRecipient(ctx, "u-1", false, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "n-3", list[0].ID)
	assert.Equal(t, "n-2", list[1].ID)

	ok, err := repo.MarkRead(ctx, "u-2", "n-1")
	require.NoError(t, err)
	assert.False(t, ok, "another user's notification must not be marked")

	ok, err = repo.MarkRead(ctx, "u-1", "n-1")
	require.NoError(t, err)
	assert.True(t, ok)

	unread, err := repo.CountUnread(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), unread)

	onlyUnread, err := repo.ListByRecipient(ctx, "u-1", true, 0)
	require.NoError(t, err)
	assert.Len(t, onlyUnread, 2)

	n, err := repo.MarkAllRead(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	unread, err = repo.CountUnread(ctx, "u-1")
	require.NoError(t, err)
	assert.Zero(t, unread)

	other, err := repo.CountUnread(ctx, "u-2")
	require.NoError(t, err)
	assert.Equal(t, int64(1), other)
}
