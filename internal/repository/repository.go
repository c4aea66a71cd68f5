package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("not found")

type Repository struct {
	Handle *HandleRepository
	Stats  *StatsRepository
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{
		Handle: &HandleRepository{db: db},
		Stats:  &StatsRepository{db: db},
	}
}
