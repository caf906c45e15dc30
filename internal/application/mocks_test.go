package application

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sanosuguru/fit365-classes/internal/domain/class"
	"github.com/sanosuguru/fit365-classes/internal/domain/inquiry"
	"github.com/sanosuguru/fit365-classes/internal/domain/registration"
)

// === Mock implementations ===

// MockClassRepository implements class.Repository
type MockClassRepository struct {
	mock.Mock
}

func (m *MockClassRepository) Create(ctx context.Context, c *class.Class) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockClassRepository) GetByID(ctx context.Context, id string) (*class.Class, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*class.Class), args.Error(1)
}

func (m *MockClassRepository) List(ctx context.Context) ([]*class.Class, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*class.Class), args.Error(1)
}

func (m *MockClassRepository) Update(ctx context.Context, c *class.Class) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockClassRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockClassRepository) ReserveSpot(ctx context.Context, id string) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func (m *MockClassRepository) ReleaseSpot(ctx context.Context, id string) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

// MockRegistrationRepository implements registration.Repository
type MockRegistrationRepository struct {
	mock.Mock
}

func (m *MockRegistrationRepository) Create(ctx context.Context, r *registration.Registration) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRegistrationRepository) ListByClassID(ctx context.Context, classID string) ([]*registration.Registration, error) {
	args := m.Called(ctx, classID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*registration.Registration), args.Error(1)
}

func (m *MockRegistrationRepository) CountByClassID(ctx context.Context, classID string) (int, error) {
	args := m.Called(ctx, classID)
	return args.Int(0), args.Error(1)
}

func (m *MockRegistrationRepository) DeleteByClassID(ctx context.Context, classID string) error {
	args := m.Called(ctx, classID)
	return args.Error(0)
}

// MockNotifier implements RegistrationNotifier and InquirySender
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyRegistrationConfirmed(ctx context.Context, c *class.Class, r *registration.Registration) error {
	args := m.Called(ctx, c, r)
	return args.Error(0)
}

func (m *MockNotifier) NotifyAdminNewRegistration(ctx context.Context, c *class.Class, r *registration.Registration) error {
	args := m.Called(ctx, c, r)
	return args.Error(0)
}

func (m *MockNotifier) SendInquiry(ctx context.Context, q *inquiry.Inquiry) (string, error) {
	args := m.Called(ctx, q)
	return args.String(0), args.Error(1)
}

func intPtr(n int) *int {
	return &n
}

func strPtr(s string) *string {
	return &s
}

func boolPtr(b bool) *bool {
	return &b
}
