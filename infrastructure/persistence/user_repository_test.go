package persistence

import (
	"context"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"content-ops/domain/model"
)

func TestUserRepository_GetById(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repository := NewUserRepository(db)

	createdAt := time.Date(2025, 11, 4, 1, 2, 10, 0, time.UTC)
	updatedAt := createdAt

	mock.ExpectPrepare(regexp.QuoteMeta(`SELECT u.id, u.name, u.user_name, u.password, u.created_at, u.updated_at
	FROM public.user AS u
	WHERE u.id = $1`)).
		ExpectQuery().WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "user_name", "password", "created_at", "updated_at"}).
			AddRow(1, "Content Ops Admin", "contentops", "a252f77af72638ea5a0f9e5fbe5f2b2e", createdAt, updatedAt))

	res, err := repository.GetById(context.Background(), 1)
	expected := model.User{
		ID:        1,
		Name:      "Content Ops Admin",
		UserName:  "contentops",
		Password:  "a252f77af72638ea5a0f9e5fbe5f2b2e",
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}

	require.NoError(t, err)
	require.Equal(t, expected, res)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByUserName(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repository := NewUserRepository(db)

	createdAt := time.Date(2025, 11, 4, 1, 2, 10, 0, time.UTC)

	mock.ExpectPrepare(regexp.QuoteMeta(`SELECT u.id, u.name, u.user_name, u.password, u.created_at, u.updated_at
	FROM public.user AS u
	WHERE u.user_name = $1`)).
		ExpectQuery().WithArgs("contentops").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "user_name", "password", "created_at", "updated_at"}).
			AddRow(1, "Content Ops Admin", "contentops", "a252f77af72638ea5a0f9e5fbe5f2b2e", createdAt, createdAt))

	res, err := repository.GetByUserName(context.Background(), "contentops")

	require.NoError(t, err)
	require.Equal(t, "contentops", res.UserName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CreateUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repository := NewUserRepository(db)

	mock.ExpectPrepare(regexp.QuoteMeta(`INSERT INTO public.user (name, user_name, password) VALUES ($1, $2, $3)`)).
		ExpectExec().WithArgs("Content Ops Admin", "contentops", "a252f77af72638ea5a0f9e5fbe5f2b2e").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = repository.CreateUser(context.Background(), model.User{
		Name:     "Content Ops Admin",
		UserName: "contentops",
		Password: "a252f77af72638ea5a0f9e5fbe5f2b2e",
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetById_PrepareError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repository := NewUserRepository(db)

	mock.ExpectPrepare(regexp.QuoteMeta(`SELECT u.id, u.name, u.user_name, u.password, u.created_at, u.updated_at
	FROM public.user AS u
	WHERE u.id = $1`)).
		WillReturnError(fmt.Errorf("prepare error"))

	res, err := repository.GetById(context.Background(), 1)

	require.Error(t, err)
	require.Equal(t, model.User{}, res)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CreateUser_PrepareError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repository := NewUserRepository(db)

	mock.ExpectPrepare(regexp.QuoteMeta(`INSERT INTO public.user (name, user_name, password) VALUES ($1, $2, $3)`)).
		WillReturnError(fmt.Errorf("prepare error"))

	err = repository.CreateUser(context.Background(), model.User{
		Name:     "Test User",
		UserName: "testuser",
		Password: "testpass",
	})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
