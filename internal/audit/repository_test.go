package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"backoffice-console/internal/role"
	"backoffice-console/internal/session"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEntry(t *testing.T) {
	s := &session.Session{User: session.User{ID: "u-1", Role: role.Admin}}
	e := NewEntry(s, ActionApproveCancellation, "o-1", "")

	assert.NotEqual(t, uuid.Nil, e.ID)
	assert.Equal(t, "u-1", e.ActorID)
	assert.Equal(t, role.Admin.String(), e.ActorRole)
	assert.Equal(t, ActionApproveCancellation, e.Action)
	assert.Equal(t, "o-1", e.TargetID)
	assert.WithinDuration(t, time.Now(), e.CreatedAt, time.Second)
}

func TestRepository_Record(t *testing.T) {
	ctx := context.Background()
	e := Entry{
		ID:        uuid.New(),
		ActorID:   "u-1",
		ActorRole: "admin",
		Action:    ActionDeleteProduct,
		TargetID:  "p-9",
		CreatedAt: time.Now().UTC(),
	}

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectExec(`INSERT INTO console_audit`).
			WithArgs(e.ID.String(), "u-1", "admin", "product.delete", "p-9", "", e.CreatedAt).
			WillReturnResult(sqlmock.NewResult(1, 1))

		assert.NoError(t, repo.Record(ctx, e))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ExecError", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectExec(`INSERT INTO console_audit`).WillReturnError(errors.New("db down"))

		err = repo.Record(ctx, e)
		assert.ErrorContains(t, err, "insert audit entry")
	})
}

func TestRepository_List(t *testing.T) {
	ctx := context.Background()
	cols := []string{"id", "actor_id", "actor_role", "action", "target_id", "detail", "created_at"}

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		id := uuid.New()
		now := time.Now().UTC()
		mock.ExpectQuery(`(?s)SELECT .* FROM console_audit .* LIMIT \$1`).
			WithArgs(DefaultListLimit).
			WillReturnRows(sqlmock.NewRows(cols).AddRow(id.String(), "u-1", "admin", "order.deliver_item", "o-1", "p-1", now))

		entries, err := repo.List(ctx, 0)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, id, entries[0].ID)
		assert.Equal(t, ActionDeliverItem, entries[0].Action)
		assert.Equal(t, "p-1", entries[0].Detail)
	})

	t.Run("ClampsLimit", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectQuery(`(?s)SELECT .* FROM console_audit`).
			WithArgs(MaxListLimit).
			WillReturnRows(sqlmock.NewRows(cols))

		entries, err := repo.List(ctx, 10000)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("QueryError", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectQuery(`(?s)SELECT .*`).WillReturnError(errors.New("db error"))
		_, err = repo.List(ctx, 10)
		assert.Error(t, err)
	})
}
