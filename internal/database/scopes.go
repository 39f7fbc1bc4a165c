package database

import "gorm.io/gorm"

// Active restricts a query to rows without a soft-delete marker.
func Active(db *gorm.DB) *gorm.DB {
	return db.Where("deleted_at IS NULL")
}

// Deleted restricts a query to soft-deleted rows.
func Deleted(db *gorm.DB) *gorm.DB {
	return db.Where("deleted_at IS NOT NULL")
}
