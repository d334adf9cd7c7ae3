package services

import "errors"

// Sentinel errors for the conditions the HTTP layer maps to distinct
// response codes. Wrap them with fmt.Errorf("%w: ...", ...) so errors.Is
// keeps working through the call chain.
var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrExtractionFailed  = errors.New("extraction failed")
	ErrEmbeddingFailed   = errors.New("embedding failed")
)
