package domain

import "errors"

var (
	ErrEmptyName          = errors.New("item name is empty")
	ErrInvalidDays        = errors.New("days threshold must be at least 1")
	ErrUnknownKind        = errors.New("unknown space kind")
	ErrSpaceNotFound      = errors.New("space not found")
	ErrItemNotFound       = errors.New("item not found")
	ErrThresholdNotFound  = errors.New("threshold not found")
	ErrLastSpace          = errors.New("cannot delete the last remaining space")
	ErrThresholdProtected = errors.New("non-custom thresholds cannot be deleted")
	ErrProRequired        = errors.New("pro capability required")
	ErrSnapshotNotFound   = errors.New("snapshot not found")
)
