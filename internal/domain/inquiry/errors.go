package inquiry

import "errors"

// Inquiry ドメインのエラー定義
var (
	ErrMissingRequiredFields = errors.New("missing required fields")
	ErrInvalidEmail          = errors.New("invalid email format")
	ErrUnknownKind           = errors.New("unknown inquiry type")
)
