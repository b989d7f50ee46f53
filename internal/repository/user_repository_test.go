package repository

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGormUserRepository_ListEmails(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	rows := sqlmock.NewRows([]string{"email"}).
		AddRow("ram@example.com").
		AddRow("sita@example.com")
	mock.ExpectQuery(`SELECT "email" FROM "users"`).WillReturnRows(rows)

	emails, err := repo.ListEmails()
	require.NoError(t, err)
	assert.Equal(t, []string{"ram@example.com", "sita@example.com"}, emails)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormUserRepository_FindByEmail_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email =`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}))

	user, err := repo.FindByEmail("nobody@example.com")
	assert.Nil(t, user)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	assert.NoError(t, mock.ExpectationsWereMet())
}
