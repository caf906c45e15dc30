package registration

import "errors"

// Registration ドメインのエラー定義
var (
	ErrMissingRequiredFields = errors.New("missing required fields")
	ErrInvalidEmail          = errors.New("invalid email format")
	ErrAlreadyRegistered     = errors.New("you have already registered for this class")
)
