package mapper

import (
	"time"

	"gorm.io/gorm"
)

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	out := t
	return &out
}

func deletedTime(d gorm.DeletedAt) *time.Time {
	if !d.Valid {
		return nil
	}
	t := d.Time
	return &t
}
