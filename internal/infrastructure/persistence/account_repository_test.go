package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/storeboard/backend/internal/domain/account"
	"github.com/storeboard/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockAccountRepository creates a GormAccountRepository with a mocked SQL connection
func newMockAccountRepository(t *testing.T) (*GormAccountRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	// TranslateError matches the production gorm.Config so driver errors
	// reach the repository the way they do against a real database.
	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	return NewGormAccountRepository(gormDB), mock, mockDB
}

func accountRows() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "email", "password_hash", "display_name", "store_url",
		"consumer_key_enc", "consumer_secret_enc", "trial_expiration_date",
		"created_at", "updated_at",
	}).AddRow(
		int64(1), "user@example.com", "$2a$12$hash", "Jane", "https://shop.example.com",
		"aa:bb", "cc:dd", nil, now, now,
	)
}

func TestNewGormAccountRepository(t *testing.T) {
	repo, _, mockDB := newMockAccountRepository(t)
	defer mockDB.Close()

	assert.NotNil(t, repo)
	assert.NotNil(t, repo.db)
}

func TestGormAccountRepository_Create(t *testing.T) {
	t.Run("creates account and assigns generated ID", func(t *testing.T) {
		repo, mock, mockDB := newMockAccountRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`INSERT INTO "accounts"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

		acc, err := account.NewAccount("user@example.com", "password1")
		require.NoError(t, err)

		err = repo.Create(context.Background(), acc)

		assert.NoError(t, err)
		assert.Equal(t, int64(7), acc.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps unique violation to ErrAlreadyExists", func(t *testing.T) {
		repo, mock, mockDB := newMockAccountRepository(t)
		defer mockDB.Close()

		// Raw driver error, as postgres returns it when two registrations
		// race past the ExistsByEmail pre-check.
		mock.ExpectQuery(`INSERT INTO "accounts"`).
			WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})

		acc, err := account.NewAccount("user@example.com", "password1")
		require.NoError(t, err)

		err = repo.Create(context.Background(), acc)

		assert.Equal(t, shared.ErrAlreadyExists, err)
	})
}

func TestGormAccountRepository_FindByID(t *testing.T) {
	t.Run("finds existing account", func(t *testing.T) {
		repo, mock, mockDB := newMockAccountRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(int64(1), 1).
			WillReturnRows(accountRows())

		acc, err := repo.FindByID(context.Background(), 1)

		assert.NoError(t, err)
		require.NotNil(t, acc)
		assert.Equal(t, int64(1), acc.ID)
		assert.Equal(t, "user@example.com", acc.Email)
		assert.True(t, acc.StoreLinked())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing account", func(t *testing.T) {
		repo, mock, mockDB := newMockAccountRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(int64(99), 1).
			WillReturnError(gorm.ErrRecordNotFound)

		acc, err := repo.FindByID(context.Background(), 99)

		assert.Nil(t, acc)
		assert.Equal(t, shared.ErrNotFound, err)
	})
}

func TestGormAccountRepository_FindByEmail(t *testing.T) {
	t.Run("finds account case-insensitively", func(t *testing.T) {
		repo, mock, mockDB := newMockAccountRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE LOWER\(email\) = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("user@example.com", 1).
			WillReturnRows(accountRows())

		acc, err := repo.FindByEmail(context.Background(), "User@Example.com")

		assert.NoError(t, err)
		require.NotNil(t, acc)
		assert.Equal(t, "user@example.com", acc.Email)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty email short-circuits to ErrNotFound", func(t *testing.T) {
		repo, _, mockDB := newMockAccountRepository(t)
		defer mockDB.Close()

		acc, err := repo.FindByEmail(context.Background(), "")

		assert.Nil(t, acc)
		assert.Equal(t, shared.ErrNotFound, err)
	})
}

func TestGormAccountRepository_ExistsByEmail(t *testing.T) {
	t.Run("returns true when a row matches", func(t *testing.T) {
		repo, mock, mockDB := newMockAccountRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "accounts" WHERE LOWER\(email\) = \$1`).
			WithArgs("user@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(1)))

		exists, err := repo.ExistsByEmail(context.Background(), "user@example.com")

		assert.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("returns false when no row matches", func(t *testing.T) {
		repo, mock, mockDB := newMockAccountRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "accounts" WHERE LOWER\(email\) = \$1`).
			WithArgs("other@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(0)))

		exists, err := repo.ExistsByEmail(context.Background(), "other@example.com")

		assert.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestGormAccountRepository_Update(t *testing.T) {
	t.Run("updates existing account", func(t *testing.T) {
		repo, mock, mockDB := newMockAccountRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "accounts" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		acc, err := account.NewAccount("user@example.com", "password1")
		require.NoError(t, err)
		acc.ID = 1

		err = repo.Update(context.Background(), acc)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps unique violation to ErrAlreadyExists", func(t *testing.T) {
		repo, mock, mockDB := newMockAccountRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "accounts" SET`).
			WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})

		acc, err := account.NewAccount("user@example.com", "password1")
		require.NoError(t, err)
		acc.ID = 1

		err = repo.Update(context.Background(), acc)

		assert.Equal(t, shared.ErrAlreadyExists, err)
	})

	t.Run("returns ErrNotFound when no rows affected", func(t *testing.T) {
		repo, mock, mockDB := newMockAccountRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "accounts" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		acc, err := account.NewAccount("user@example.com", "password1")
		require.NoError(t, err)
		acc.ID = 99

		err = repo.Update(context.Background(), acc)

		assert.Equal(t, shared.ErrNotFound, err)
	})
}
