package customer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/CSCI-GA-2820-SP25-003/customers/internal/metrics"
	"github.com/CSCI-GA-2820-SP25-003/customers/internal/model"
	"github.com/CSCI-GA-2820-SP25-003/customers/internal/repository"
	"github.com/CSCI-GA-2820-SP25-003/customers/internal/util"
	"go.uber.org/zap"
)

var ErrNotFound = errors.New("customer not found")

// Publisher receives lifecycle events once the change is committed.
type Publisher interface {
	Publish(ctx context.Context, ev model.Event) error
}

// NopPublisher drops every event. Used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, model.Event) error { return nil }

type FilterKind int

const (
	FilterAll FilterKind = iota
	FilterByID
	FilterByField
	FilterNone // a filter value that can never match, e.g. a non-numeric id
)

// Filter selects which customers List returns. At most one criterion applies.
type Filter struct {
	Kind  FilterKind
	ID    int64
	Field model.Field
	Value string
}

// Service runs customer operations against the gateway and reports committed changes.
type Service struct {
	repo   repository.CustomersRepository
	events Publisher
	log    *zap.Logger
	now    func() time.Time
}

func New(repo repository.CustomersRepository, events Publisher, log *zap.Logger) *Service {
	if events == nil {
		events = NopPublisher{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		repo:   repo,
		events: events,
		log:    log,
		now:    time.Now,
	}
}

// Create persists a validated customer; c.ID is set on success.
func (s *Service) Create(ctx context.Context, c *model.Customer) error {
	s.log.Info("creating customer", zap.String("name", c.Name))
	if err := s.repo.Create(ctx, c); err != nil {
		return err
	}
	s.log.Info("customer saved", zap.Int64("id", c.ID))
	s.emit(ctx, model.EventCreated, *c)
	return nil
}

// Get returns ErrNotFound when the id is unknown.
func (s *Service) Get(ctx context.Context, id int64) (*model.Customer, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("id %d: %w", id, ErrNotFound)
	}
	return c, nil
}

// Update saves the business fields of a customer previously loaded with Get.
func (s *Service) Update(ctx context.Context, c *model.Customer) error {
	s.log.Info("saving customer", zap.Int64("id", c.ID), zap.String("name", c.Name))
	if err := s.repo.Update(ctx, c); err != nil {
		return err
	}
	s.emit(ctx, model.EventUpdated, *c)
	return nil
}

// Delete removes the customer if it exists. Unknown ids are not an error.
func (s *Service) Delete(ctx context.Context, id int64) error {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		s.log.Info("customer already absent", zap.Int64("id", id))
		return nil
	}
	if err := s.repo.Delete(ctx, c); err != nil {
		return err
	}
	s.log.Info("customer deleted", zap.Int64("id", id))
	s.emit(ctx, model.EventDeleted, *c)
	return nil
}

// List applies f and never returns a nil slice on success.
func (s *Service) List(ctx context.Context, f Filter) ([]model.Customer, error) {
	switch f.Kind {
	case FilterNone:
		return []model.Customer{}, nil
	case FilterByID:
		c, err := s.repo.FindByID(ctx, f.ID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return []model.Customer{}, nil
		}
		return []model.Customer{*c}, nil
	case FilterByField:
		s.log.Debug("find by field", zap.Stringer("field", f.Field), zap.String("value", f.Value))
		return s.repo.FindByField(ctx, f.Field, f.Value)
	default:
		return s.repo.FindAll(ctx)
	}
}

// Suspend records the suspend action for c. The stored row is not changed.
func (s *Service) Suspend(ctx context.Context, c *model.Customer) {
	s.log.Info("suspending customer", zap.Int64("id", c.ID))
	s.emit(ctx, model.EventSuspended, *c)
}

// emit counts a lifecycle event and publishes it. It runs after the store
// operation, if any, has committed; publishing failures are logged only.
func (s *Service) emit(ctx context.Context, typ model.EventType, c model.Customer) {
	metrics.LifecycleTotal.WithLabelValues(typ.String()).Inc()

	ev := model.Event{
		ID:         util.NewID(),
		Type:       typ,
		CustomerID: c.ID,
		Customer:   c.Serialize(),
		OccurredAt: s.now().UTC(),
	}
	if err := s.events.Publish(ctx, ev); err != nil {
		metrics.EventPublishFailuresTotal.Inc()
		s.log.Warn("publish event failed",
			zap.String("event", typ.String()),
			zap.Int64("id", c.ID),
			zap.Error(err),
		)
	}
}
