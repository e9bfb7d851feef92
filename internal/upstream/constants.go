package upstream

import "time"

// Defaults applied by NewClient when Options leaves a field zero
const (
	DefaultTimeout   = 10 * time.Second
	DefaultUserAgent = "xiv-market/1.0"
	DefaultRPS       = 10.0
	DefaultBurst     = 20

	// maxBodyBytes caps how much of a provider response is read
	maxBodyBytes = 8 << 20
)

// Log messages
const (
	LogMsgRequest       = "Upstream request"
	LogMsgRequestFailed = "Upstream request failed"
	LogMsgBadStatus     = "Upstream returned non-success status"
)

// Error message formats
const (
	ErrMsgBuildRequestFmt = "failed to build %s request: %w"
	ErrMsgRateLimitFmt    = "%s rate limiter: %w"
	ErrMsgDoRequestFmt    = "%s %s: %w"
	ErrMsgStatusFmt       = "%s %s returned status %d: %w"
	ErrMsgReadBodyFmt     = "failed to read %s response: %w"
	ErrMsgDecodeFmt       = "failed to decode %s response: %w"
)
