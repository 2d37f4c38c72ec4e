package service

import (
	"context"
	"io"

	"crm/internal/model"
	"crm/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// customerRepoMock implements repository.CustomerRepository for service tests.
type customerRepoMock struct {
	mock.Mock
}

func (m *customerRepoMock) Create(ctx context.Context, customer *model.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *customerRepoMock) Update(ctx context.Context, customer *model.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *customerRepoMock) FindByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Customer), args.Error(1)
}

func (m *customerRepoMock) FindByIDWithActivities(ctx context.Context, id uuid.UUID, limit int) (*model.Customer, error) {
	args := m.Called(ctx, id, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Customer), args.Error(1)
}

func (m *customerRepoMock) List(ctx context.Context, filter repository.CustomerFilter) ([]model.Customer, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Customer), args.Error(1)
}

func (m *customerRepoMock) FindDuplicate(ctx context.Context, companyName, phone string) (*model.Customer, error) {
	args := m.Called(ctx, companyName, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Customer), args.Error(1)
}

// activityRepoMock implements repository.ActivityRepository for service tests.
type activityRepoMock struct {
	mock.Mock
}

func (m *activityRepoMock) Create(ctx context.Context, activity *model.Activity) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}

func (m *activityRepoMock) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.Activity, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Activity), args.Error(1)
}

// inlineTx runs the callback without a database.
type inlineTx struct{}

func (inlineTx) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

type publisherMock struct {
	mock.Mock
}

func (m *publisherMock) Publish(event string, data interface{}) {
	m.Called(event, data)
}

type objectStoreMock struct {
	mock.Mock
}

func (m *objectStoreMock) Put(ctx context.Context, key, contentType string, size int64, body io.Reader) (string, error) {
	args := m.Called(ctx, key, contentType, size, body)
	return args.String(0), args.Error(1)
}
