package models

import "time"

// RegistryAuth holds decoded basic credentials for one ECR registry endpoint.
type RegistryAuth struct {
	Host      string
	Username  string
	Password  string
	ExpiresAt *time.Time
}

// ImageInfo holds information about a pushed image, used for summaries.
type ImageInfo struct {
	Registry   string
	Repository string
	Tag        string
	Digest     string
	SizeBytes  int64
	PushedAt   *time.Time // Pointer to handle images the registry has not timestamped yet
}
