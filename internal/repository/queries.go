// Package repository holds the hand-written query layer over pgx. Every
// method opens a short-lived operation against the pool; nothing holds a
// connection across a model call.
package repository

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

type Queries struct {
	db *pgxpool.Pool
}

func New(db *pgxpool.Pool) *Queries {
	return &Queries{db: db}
}
