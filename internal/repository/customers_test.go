package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CSCI-GA-2820-SP25-003/customers/internal/model"
	"github.com/CSCI-GA-2820-SP25-003/customers/internal/repository"
)

var errBoom = errors.New("boom")

var columns = []string{"id", "name", "address", "email", "phonenumber"}

func newRepo(t *testing.T, driver string) (*repository.CustomersRepositoryImpl, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return repository.NewCustomersRepository(sqlx.NewDb(db, driver)), mock
}

func albert() *model.Customer {
	return &model.Customer{Name: "Albert", Address: "NYU101", Email: "a@nyu.edu", PhoneNumber: "9999999999"}
}

func TestCreate_AssignsGeneratedID(t *testing.T) {
	repo, mock := newRepo(t, "mysql")
	c := albert()
	c.ID = 99

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO customers`).
		WithArgs("Albert", "NYU101", "a@nyu.edu", "9999999999").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Create(context.Background(), c))
	assert.Equal(t, int64(7), c.ID)
}

func TestCreate_ReturningOnPostgres(t *testing.T) {
	repo, mock := newRepo(t, "pgx")
	c := albert()

	mock.ExpectBegin()
	mock.ExpectQuery(`(?s)INSERT INTO customers.*VALUES \(\$1, \$2, \$3, \$4\).*RETURNING id`).
		WithArgs("Albert", "NYU101", "a@nyu.edu", "9999999999").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectCommit()

	require.NoError(t, repo.Create(context.Background(), c))
	assert.Equal(t, int64(11), c.ID)
}

func TestCreate_RollsBackOnFailure(t *testing.T) {
	repo, mock := newRepo(t, "mysql")
	c := albert()
	c.ID = 5

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO customers`).WillReturnError(errBoom)
	mock.ExpectRollback()

	err := repo.Create(context.Background(), c)
	require.Error(t, err)

	var perr *repository.PersistenceError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "create", perr.Op)
	assert.ErrorIs(t, err, errBoom)
	assert.Zero(t, c.ID)
}

func TestUpdate_RequiresID(t *testing.T) {
	repo, _ := newRepo(t, "mysql")

	err := repo.Update(context.Background(), albert())
	assert.ErrorIs(t, err, repository.ErrMissingID)
}

func TestUpdate(t *testing.T) {
	repo, mock := newRepo(t, "mysql")
	c := albert()
	c.ID = 3
	c.Name = "John Doe"

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE customers`).
		WithArgs("John Doe", "NYU101", "a@nyu.edu", "9999999999", int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Update(context.Background(), c))
}

func TestUpdate_RollsBackOnFailure(t *testing.T) {
	repo, mock := newRepo(t, "mysql")
	c := albert()
	c.ID = 3

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE customers`).WillReturnError(errBoom)
	mock.ExpectRollback()

	err := repo.Update(context.Background(), c)

	var perr *repository.PersistenceError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "update", perr.Op)
	assert.Equal(t, int64(3), perr.ID)
}

func TestDelete(t *testing.T) {
	repo, mock := newRepo(t, "mysql")

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM customers WHERE id = \?`).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), &model.Customer{ID: 4}))
}

func TestDelete_RollsBackOnFailure(t *testing.T) {
	repo, mock := newRepo(t, "mysql")

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM customers`).WillReturnError(errBoom)
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), &model.Customer{ID: 4})
	assert.ErrorIs(t, err, errBoom)
}

func TestFindByID(t *testing.T) {
	repo, mock := newRepo(t, "mysql")

	mock.ExpectQuery(`FROM customers\s+WHERE id = \?`).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(2, "Albert", "NYU101", "a@nyu.edu", "9999999999"))

	c, err := repo.FindByID(context.Background(), 2)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, model.Customer{ID: 2, Name: "Albert", Address: "NYU101", Email: "a@nyu.edu", PhoneNumber: "9999999999"}, *c)
}

func TestFindByID_Absent(t *testing.T) {
	repo, mock := newRepo(t, "mysql")

	mock.ExpectQuery(`FROM customers\s+WHERE id = \?`).
		WithArgs(int64(999999)).
		WillReturnRows(sqlmock.NewRows(columns))

	c, err := repo.FindByID(context.Background(), 999999)
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestFindByID_QueryError(t *testing.T) {
	repo, mock := newRepo(t, "mysql")

	mock.ExpectQuery(`FROM customers`).WillReturnError(errBoom)

	_, err := repo.FindByID(context.Background(), 1)
	assert.ErrorIs(t, err, errBoom)
}

func TestFindAll(t *testing.T) {
	repo, mock := newRepo(t, "mysql")

	mock.ExpectQuery(`SELECT id, name, address, email, phonenumber FROM customers`).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(1, "a", "b", "c", "d").
			AddRow(2, "e", "f", "g", "h"))

	list, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(1), list[0].ID)
	assert.Equal(t, "h", list[1].PhoneNumber)
}

func TestFindAll_Empty(t *testing.T) {
	repo, mock := newRepo(t, "mysql")

	mock.ExpectQuery(`FROM customers`).WillReturnRows(sqlmock.NewRows(columns))

	list, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestFindByField(t *testing.T) {
	for _, f := range model.Fields {
		t.Run(f.String(), func(t *testing.T) {
			repo, mock := newRepo(t, "mysql")

			mock.ExpectQuery(`FROM customers WHERE ` + f.String() + ` = \?`).
				WithArgs("x").
				WillReturnRows(sqlmock.NewRows(columns).AddRow(1, "x", "x", "x", "x"))

			list, err := repo.FindByField(context.Background(), f, "x")
			require.NoError(t, err)
			assert.Len(t, list, 1)
		})
	}
}

func TestFindByField_Postgres(t *testing.T) {
	repo, mock := newRepo(t, "pgx")

	mock.ExpectQuery(`FROM customers WHERE email = \$1`).
		WithArgs("a@nyu.edu").
		WillReturnRows(sqlmock.NewRows(columns))

	_, err := repo.FindByField(context.Background(), model.FieldEmail, "a@nyu.edu")
	require.NoError(t, err)
}

func TestFindByField_UnknownField(t *testing.T) {
	repo, _ := newRepo(t, "mysql")

	_, err := repo.FindByField(context.Background(), model.Field("id"), "1")
	assert.ErrorIs(t, err, model.ErrUnknownField)
}
