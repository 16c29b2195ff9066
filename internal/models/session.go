package models

import "time"

// SessionCredentials holds the short-lived credentials returned by an
// assumed-role call. They exist only for the lifetime of one promotion
// and are never persisted.
type SessionCredentials struct {
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	Expires         time.Time
}

// SessionInfo describes an assumed-role session for operator output.
type SessionInfo struct {
	RoleARN   string
	MFASerial string
	Expires   time.Time
}
