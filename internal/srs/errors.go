package srs

import "errors"

var (
	ErrInvalidQuality    = errors.New("srs: quality out of range [0,5]")
	ErrInvalidConfidence = errors.New("srs: confidence out of range [0,1]")
	ErrUnknownOutcome    = errors.New("srs: unknown review outcome")
)
