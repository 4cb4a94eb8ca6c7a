package domain

import "errors"

// Sentinel errors shared by every domain service. Callers match them with errors.Is;
// services wrap them with context using fmt.Errorf("...: %w", ...).
var (
	ErrUnauthorized        = errors.New("not entitled to administer this guild")
	ErrNotFound            = errors.New("not found")
	ErrQuotaExceeded       = errors.New("sound limit reached")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrTranscodeFailed     = errors.New("transcode failed")
	ErrNothingToApply      = errors.New("no changes to apply")
	ErrInvalidInput        = errors.New("invalid input")
)
