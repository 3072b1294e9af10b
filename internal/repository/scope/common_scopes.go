package scope

import "gorm.io/gorm"

// Default list orderings applied by repositories. Callers can layer
// additional ordering through specifications.

func OrderByCreatedDesc(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC")
}

func OrderByIssuedDesc(db *gorm.DB) *gorm.DB {
	return db.Order("issued_at DESC")
}
