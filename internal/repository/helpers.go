package repository

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func lower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// forUpdate locks the selected rows until the surrounding transaction ends.
// Dialects without row locks (SQLite) drop the clause and rely on the database-wide write lock.
func forUpdate(db *gorm.DB) *gorm.DB {
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}

// unscoped lets preloads reach soft-deleted employees so history stays readable.
func unscoped(db *gorm.DB) *gorm.DB {
	return db.Unscoped()
}
