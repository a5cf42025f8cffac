package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrNotFound is wrapped by every lookup that matches no row
var ErrNotFound = errors.New("not found")

func notFound(entity string) error {
	return fmt.Errorf("%s %w", entity, ErrNotFound)
}

// translate maps gorm's not-found error to ErrNotFound for the given entity
func translate(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(entity)
	}
	return err
}

// ListOptions narrows list queries; zero values mean "no filter"
type ListOptions struct {
	Limit  int
	Offset int
}

func (o ListOptions) apply(db *gorm.DB) *gorm.DB {
	if o.Limit > 0 {
		db = db.Limit(o.Limit)
	}
	if o.Offset > 0 {
		db = db.Offset(o.Offset)
	}
	return db
}
