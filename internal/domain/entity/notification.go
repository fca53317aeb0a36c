package entity

import "time"

type SuccessDetails struct {
	TaskID        string
	DocumentName  string
	DocumentURL   string
	ExecutionTime time.Time
	// LinkTTL is zero when DocumentURL does not expire.
	LinkTTL time.Duration
}

type FailureDetails struct {
	TaskID string
	Error  string
}

type Email struct {
	From     string
	To       []string
	Subject  string
	HTMLBody string
	TextBody string
}
