package customer_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/CSCI-GA-2820-SP25-003/customers/internal/metrics"
	"github.com/CSCI-GA-2820-SP25-003/customers/internal/model"
	"github.com/CSCI-GA-2820-SP25-003/customers/internal/repository"
	"github.com/CSCI-GA-2820-SP25-003/customers/internal/repository/repotest"
	"github.com/CSCI-GA-2820-SP25-003/customers/internal/service/customer"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []model.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev model.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func (p *recordingPublisher) types() []model.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]model.EventType, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Type)
	}
	return out
}

func newService(t *testing.T, seed ...model.Customer) (*customer.Service, *repotest.Customers, *recordingPublisher) {
	t.Helper()
	repo := repotest.NewCustomers(seed...)
	pub := &recordingPublisher{}
	return customer.New(repo, pub, zap.NewNop()), repo, pub
}

func alice() model.Customer {
	return model.Customer{Name: "Alice", Address: "1 Main St", Email: "a@x.io", PhoneNumber: "555"}
}

func TestService_CreateAssignsIDAndPublishes(t *testing.T) {
	svc, repo, pub := newService(t)
	c := alice()

	require.NoError(t, svc.Create(context.Background(), &c))
	assert.NotZero(t, c.ID)
	assert.Equal(t, 1, repo.Len())

	require.Len(t, pub.events, 1)
	ev := pub.events[0]
	assert.Equal(t, model.EventCreated, ev.Type)
	assert.Equal(t, c.ID, ev.CustomerID)
	assert.Equal(t, "Alice", ev.Customer.Name)
	assert.Len(t, ev.ID, 26)
	assert.False(t, ev.OccurredAt.IsZero())
}

func TestService_CreateFailureLeavesNoIDAndNoEvent(t *testing.T) {
	svc, repo, pub := newService(t)
	repo.Err = errors.New("disk full")
	c := alice()

	err := svc.Create(context.Background(), &c)

	var pe *repository.PersistenceError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "create", pe.Op)
	assert.Zero(t, c.ID)
	assert.Empty(t, pub.events)
}

func TestService_PublishFailureDoesNotFailOperation(t *testing.T) {
	svc, _, pub := newService(t)
	pub.err = errors.New("broker down")
	before := testutil.ToFloat64(metrics.EventPublishFailuresTotal)

	c := alice()
	require.NoError(t, svc.Create(context.Background(), &c))
	assert.NotZero(t, c.ID)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.EventPublishFailuresTotal))
}

func TestService_GetNotFound(t *testing.T) {
	svc, _, _ := newService(t)

	c, err := svc.Get(context.Background(), 42)
	assert.Nil(t, c)
	assert.ErrorIs(t, err, customer.ErrNotFound)
}

func TestService_UpdateKeepsID(t *testing.T) {
	svc, _, pub := newService(t, alice())

	c, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	c.Name = "Alicia"
	require.NoError(t, svc.Update(context.Background(), c))

	got, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Alicia", got.Name)
	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, []model.EventType{model.EventCreated, model.EventUpdated}, pub.types())
}

func TestService_DeleteIsIdempotent(t *testing.T) {
	svc, repo, pub := newService(t, alice())

	require.NoError(t, svc.Delete(context.Background(), 1))
	require.NoError(t, svc.Delete(context.Background(), 1))
	require.NoError(t, svc.Delete(context.Background(), 99))

	assert.Zero(t, repo.Len())
	assert.Equal(t, []model.EventType{model.EventCreated, model.EventDeleted}, pub.types())
}

func TestService_List(t *testing.T) {
	bob := model.Customer{Name: "Bob", Address: "2 Side St", Email: "b@x.io", PhoneNumber: "777"}
	svc, _, _ := newService(t, alice(), bob)
	ctx := context.Background()

	all, err := svc.List(ctx, customer.Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byID, err := svc.List(ctx, customer.Filter{Kind: customer.FilterByID, ID: 2})
	require.NoError(t, err)
	require.Len(t, byID, 1)
	assert.Equal(t, "Bob", byID[0].Name)

	missing, err := svc.List(ctx, customer.Filter{Kind: customer.FilterByID, ID: 7})
	require.NoError(t, err)
	assert.NotNil(t, missing)
	assert.Empty(t, missing)

	byEmail, err := svc.List(ctx, customer.Filter{Kind: customer.FilterByField, Field: model.FieldEmail, Value: "a@x.io"})
	require.NoError(t, err)
	require.Len(t, byEmail, 1)
	assert.Equal(t, "Alice", byEmail[0].Name)

	none, err := svc.List(ctx, customer.Filter{Kind: customer.FilterNone})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestService_SuspendDoesNotChangeStoredRow(t *testing.T) {
	svc, _, pub := newService(t, alice())
	ctx := context.Background()

	c, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	svc.Suspend(ctx, c)

	again, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, *c, *again)
	assert.Equal(t, []model.EventType{model.EventCreated, model.EventSuspended}, pub.types())
}

func TestService_LifecycleCounter(t *testing.T) {
	svc, _, _ := newService(t, alice())
	ctx := context.Background()
	suspended := metrics.LifecycleTotal.WithLabelValues(model.EventSuspended.String())
	deleted := metrics.LifecycleTotal.WithLabelValues(model.EventDeleted.String())
	beforeSuspended, beforeDeleted := testutil.ToFloat64(suspended), testutil.ToFloat64(deleted)

	c, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	svc.Suspend(ctx, c)
	require.NoError(t, svc.Delete(ctx, 1))
	require.NoError(t, svc.Delete(ctx, 1))

	assert.Equal(t, beforeSuspended+1, testutil.ToFloat64(suspended))
	assert.Equal(t, beforeDeleted+1, testutil.ToFloat64(deleted))
}

func TestNew_DefaultsToNopPublisher(t *testing.T) {
	svc := customer.New(repotest.NewCustomers(), nil, nil)
	c := alice()
	assert.NoError(t, svc.Create(context.Background(), &c))
}
