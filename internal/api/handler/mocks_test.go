package handler

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/sanosuguru/fit365-classes/internal/application"
	"github.com/sanosuguru/fit365-classes/internal/domain/class"
	"github.com/sanosuguru/fit365-classes/internal/domain/inquiry"
)

// MockClassService はClassServiceInterfaceのモック
type MockClassService struct {
	mock.Mock
}

func (m *MockClassService) ListActive(ctx context.Context) ([]*class.Class, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*class.Class), args.Error(1)
}

func (m *MockClassService) ListAll(ctx context.Context) ([]application.ClassSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]application.ClassSummary), args.Error(1)
}

func (m *MockClassService) GetClass(ctx context.Context, id string) (*application.ClassDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*application.ClassDetail), args.Error(1)
}

func (m *MockClassService) CreateClass(ctx context.Context, input application.CreateClassInput) (*class.Class, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*class.Class), args.Error(1)
}

func (m *MockClassService) UpdateClass(ctx context.Context, input application.UpdateClassInput) (*class.Class, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*class.Class), args.Error(1)
}

func (m *MockClassService) DeleteClass(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockRSVPService はRSVPServiceInterfaceのモック
type MockRSVPService struct {
	mock.Mock
}

func (m *MockRSVPService) Book(ctx context.Context, input application.BookInput) (*application.BookingResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*application.BookingResult), args.Error(1)
}

// MockContactService はContactServiceInterfaceのモック
type MockContactService struct {
	mock.Mock
}

func (m *MockContactService) Submit(ctx context.Context, q *inquiry.Inquiry) (string, error) {
	args := m.Called(ctx, q)
	return args.String(0), args.Error(1)
}

// MockSessionMinter はSessionMinterのモック
type MockSessionMinter struct {
	mock.Mock
}

func (m *MockSessionMinter) Mint(password string) (string, time.Duration, error) {
	args := m.Called(password)
	return args.String(0), args.Get(1).(time.Duration), args.Error(2)
}
