package class

import "errors"

// Class ドメインのエラー定義
var (
	ErrClassNotFound         = errors.New("class not found")
	ErrMissingRequiredFields = errors.New("missing required fields")
	ErrInvalidCapacity       = errors.New("capacity must be a non-negative integer")
	ErrInvalidSpotsRemaining = errors.New("spots remaining must be between 0 and capacity")
	ErrClassFull             = errors.New("this class is full")
)
