package application

import "errors"

// アプリケーション層のエラー定義
var (
	// ErrClassBusy はクラス単位ロックをリトライ内に取得できなかった場合に返される
	ErrClassBusy = errors.New("class is busy, please retry")

	ErrPasswordRequired = errors.New("password is required")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrInvalidToken     = errors.New("invalid or expired token")

	// ErrInquiryDelivery は問い合わせメールの送信に失敗した場合に返される
	ErrInquiryDelivery = errors.New("failed to send message")
)
