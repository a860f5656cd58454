package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ListOptions control ordering and windowing of collection queries.
// SortColumn must already be a vetted column name: handlers resolve client
// sort keys through a per-resource allow-list before it gets here, so no
// caller-controlled string ever reaches the SQL text.
type ListOptions struct {
	SortColumn string
	Desc       bool
	Offset     int
	Limit      int
}

func (o ListOptions) apply(db *gorm.DB) *gorm.DB {
	column := o.SortColumn
	if column == "" {
		column = "id"
	}

	db = db.Order(clause.OrderByColumn{
		Column: clause.Column{Name: column},
		Desc:   o.Desc,
	})

	if o.Limit > 0 {
		db = db.Limit(o.Limit).Offset(o.Offset)
	}

	return db
}
