package service

import "time"

// ReadingFilter narrows reading-history queries.
type ReadingFilter struct {
	From   time.Time // inclusive; zero means no lower bound
	To     time.Time // inclusive; zero means no upper bound
	Limit  int       // defaulted/clamped by the service
	Offset int
}

// FaultFilter narrows fault-log queries.
type FaultFilter struct {
	Resolved *bool  // nil means both resolved and unresolved
	Severity string // "", "minor", "major" or "critical"
	Limit    int    // defaulted/clamped by the service
}
