package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/CSCI-GA-2820-SP25-003/customers/internal/model"
	"github.com/jmoiron/sqlx"
)

// ErrMissingID is returned by Update when the customer was never persisted.
var ErrMissingID = errors.New("cannot update a customer with no id")

// PersistenceError wraps a failed write after its transaction was rolled back.
type PersistenceError struct {
	Op  string // create | update | delete
	ID  int64
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s customer id=%d: %v", e.Op, e.ID, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

type CustomersRepository interface {
	Create(ctx context.Context, c *model.Customer) error
	Update(ctx context.Context, c *model.Customer) error
	Delete(ctx context.Context, c *model.Customer) error
	FindByID(ctx context.Context, id int64) (*model.Customer, error)
	FindAll(ctx context.Context) ([]model.Customer, error)
	FindByField(ctx context.Context, field model.Field, value string) ([]model.Customer, error)
}

type CustomersRepositoryImpl struct {
	db *sqlx.DB
}

func NewCustomersRepository(db *sqlx.DB) *CustomersRepositoryImpl {
	return &CustomersRepositoryImpl{db: db}
}

var _ CustomersRepository = (*CustomersRepositoryImpl)(nil)

const customerColumns = `id, name, address, email, phonenumber`

// withTx runs fn inside a new transaction, rolling back unless fn and Commit succeed.
func (r *CustomersRepositoryImpl) withTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// Create inserts c and assigns the store-generated id. Any caller-supplied id is discarded.
func (r *CustomersRepositoryImpl) Create(ctx context.Context, c *model.Customer) error {
	c.ID = 0

	var id int64
	err := r.withTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		id, err = r.insert(ctx, tx, c)
		return err
	})
	if err != nil {
		return &PersistenceError{Op: "create", Err: err}
	}

	c.ID = id
	return nil
}

// insert uses RETURNING on $-placeholder drivers (postgres), LastInsertId elsewhere (mysql).
func (r *CustomersRepositoryImpl) insert(ctx context.Context, tx *sqlx.Tx, c *model.Customer) (int64, error) {
	const q = `
		INSERT INTO customers (name, address, email, phonenumber)
		VALUES (?, ?, ?, ?)
	`
	args := []any{c.Name, c.Address, c.Email, c.PhoneNumber}

	if sqlx.BindType(tx.DriverName()) == sqlx.DOLLAR {
		var id int64
		err := tx.QueryRowxContext(ctx, tx.Rebind(q+" RETURNING id"), args...).Scan(&id)
		return id, err
	}

	res, err := tx.ExecContext(ctx, tx.Rebind(q), args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Update writes the business fields of an already persisted customer.
func (r *CustomersRepositoryImpl) Update(ctx context.Context, c *model.Customer) error {
	if c.ID == 0 {
		return ErrMissingID
	}

	const q = `
		UPDATE customers
		   SET name = ?, address = ?, email = ?, phonenumber = ?
		 WHERE id = ?
	`
	err := r.withTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, tx.Rebind(q), c.Name, c.Address, c.Email, c.PhoneNumber, c.ID)
		return err
	})
	if err != nil {
		return &PersistenceError{Op: "update", ID: c.ID, Err: err}
	}
	return nil
}

// Delete removes the row for c.ID. A missing row is not an error.
func (r *CustomersRepositoryImpl) Delete(ctx context.Context, c *model.Customer) error {
	err := r.withTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM customers WHERE id = ?`), c.ID)
		return err
	})
	if err != nil {
		return &PersistenceError{Op: "delete", ID: c.ID, Err: err}
	}
	return nil
}

// FindByID returns nil, nil when no row matches.
func (r *CustomersRepositoryImpl) FindByID(ctx context.Context, id int64) (*model.Customer, error) {
	var c model.Customer
	err := r.db.GetContext(ctx, &c, r.db.Rebind(`
		SELECT `+customerColumns+`
		  FROM customers
		 WHERE id = ?
	`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find customer %d: %w", id, err)
	}
	return &c, nil
}

// FindAll returns every row in storage order.
func (r *CustomersRepositoryImpl) FindAll(ctx context.Context) ([]model.Customer, error) {
	rows := make([]model.Customer, 0)
	if err := r.db.SelectContext(ctx, &rows, `SELECT `+customerColumns+` FROM customers`); err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return rows, nil
}

// FindByField returns the rows whose field equals value exactly.
func (r *CustomersRepositoryImpl) FindByField(ctx context.Context, field model.Field, value string) ([]model.Customer, error) {
	col, err := field.Column()
	if err != nil {
		return nil, err
	}

	q := `SELECT ` + customerColumns + ` FROM customers WHERE ` + col + ` = ?`
	rows := make([]model.Customer, 0)
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(q), value); err != nil {
		return nil, fmt.Errorf("find customers by %s: %w", field, err)
	}
	return rows, nil
}
