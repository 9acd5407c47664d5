package repository

import "errors"

var (
	ErrInvalidThresholdData = errors.New("invalid threshold snapshot data")
	ErrInvalidSpaceData     = errors.New("invalid space snapshot data")
)
