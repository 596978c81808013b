package scope

import "gorm.io/gorm"

func OrderByCreatedDesc(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC")
}

func OrderByCreatedAsc(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC")
}

func OrderByStartAsc(db *gorm.DB) *gorm.DB {
	return db.Order("start_time ASC, created_at ASC")
}
