package handler

import (
	"context"
	"time"

	"github.com/sanosuguru/fit365-classes/internal/application"
	"github.com/sanosuguru/fit365-classes/internal/domain/class"
	"github.com/sanosuguru/fit365-classes/internal/domain/inquiry"
)

// ClassServiceInterface はクラスサービスのインターフェース
type ClassServiceInterface interface {
	ListActive(ctx context.Context) ([]*class.Class, error)
	ListAll(ctx context.Context) ([]application.ClassSummary, error)
	GetClass(ctx context.Context, id string) (*application.ClassDetail, error)
	CreateClass(ctx context.Context, input application.CreateClassInput) (*class.Class, error)
	UpdateClass(ctx context.Context, input application.UpdateClassInput) (*class.Class, error)
	DeleteClass(ctx context.Context, id string) error
}

// RSVPServiceInterface は予約サービスのインターフェース
type RSVPServiceInterface interface {
	Book(ctx context.Context, input application.BookInput) (*application.BookingResult, error)
}

// ContactServiceInterface は問い合わせサービスのインターフェース
type ContactServiceInterface interface {
	Submit(ctx context.Context, q *inquiry.Inquiry) (string, error)
}

// SessionMinter は管理者トークンを発行する
type SessionMinter interface {
	Mint(password string) (string, time.Duration, error)
}

// StoreChecker はストアへの疎通を確認する
type StoreChecker func(ctx context.Context) error
