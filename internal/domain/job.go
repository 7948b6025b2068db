package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Job struct {
	ID        int64
	UserID    int64
	Company   string
	Role      string
	Status    string
	Link      string
	Notes     string
	Salary    *decimal.Decimal
	DateAdded time.Time
}
