package repository

import (
	"database/sql"
)

// Repository defines the app's persistence layer. It is composed of one
// capability interface per entity type.
type Repository interface {
	authors
	books
}

type repository struct {
	db *sql.DB
}

// New creates a new instance of Repository backed by a PostgreSQL pool.
func New(db *sql.DB) Repository {
	return &repository{db: db}
}
