package domain

import "time"

type VaultFile struct {
	ID           int64
	UserID       int64
	StoredName   string
	OriginalName string
	Category     string
	DateAdded    time.Time
}
