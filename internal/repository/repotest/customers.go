// Package repotest provides an in-memory CustomersRepository for tests.
package repotest

import (
	"context"
	"sort"
	"sync"

	"github.com/CSCI-GA-2820-SP25-003/customers/internal/model"
	"github.com/CSCI-GA-2820-SP25-003/customers/internal/repository"
)

var _ repository.CustomersRepository = (*Customers)(nil)

// Customers keeps rows in a map keyed by id. Setting Err makes every call fail
// with a PersistenceError (writes) or the bare error (reads).
type Customers struct {
	mu     sync.Mutex
	byID   map[int64]model.Customer
	nextID int64

	Err error
}

func NewCustomers(seed ...model.Customer) *Customers {
	m := &Customers{byID: make(map[int64]model.Customer)}
	for i := range seed {
		_ = m.Create(context.Background(), &seed[i])
	}
	return m
}

func (m *Customers) Create(_ context.Context, c *model.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = 0
	if m.Err != nil {
		return &repository.PersistenceError{Op: "create", Err: m.Err}
	}
	m.nextID++
	c.ID = m.nextID
	m.byID[c.ID] = *c
	return nil
}

func (m *Customers) Update(_ context.Context, c *model.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.ID == 0 {
		return repository.ErrMissingID
	}
	if m.Err != nil {
		return &repository.PersistenceError{Op: "update", ID: c.ID, Err: m.Err}
	}
	if _, ok := m.byID[c.ID]; ok {
		m.byID[c.ID] = *c
	}
	return nil
}

func (m *Customers) Delete(_ context.Context, c *model.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return &repository.PersistenceError{Op: "delete", ID: c.ID, Err: m.Err}
	}
	delete(m.byID, c.ID)
	return nil
}

func (m *Customers) FindByID(_ context.Context, id int64) (*model.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	c, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (m *Customers) FindAll(_ context.Context) ([]model.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return m.sorted(func(model.Customer) bool { return true }), nil
}

func (m *Customers) FindByField(_ context.Context, f model.Field, value string) ([]model.Customer, error) {
	if _, err := f.Column(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return m.sorted(func(c model.Customer) bool { return c.Get(f) == value }), nil
}

// Len reports how many rows are stored.
func (m *Customers) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byID)
}

func (m *Customers) sorted(keep func(model.Customer) bool) []model.Customer {
	out := make([]model.Customer, 0, len(m.byID))
	for _, c := range m.byID {
		if keep(c) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
