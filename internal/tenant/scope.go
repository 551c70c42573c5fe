package tenant

import "gorm.io/gorm"

// Scope membatasi query ke satu organisasi.
func Scope(orgID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("org_id = ?", orgID)
	}
}

// ScopeShared matches records owned by the organization plus global records
// (org_id NULL): shared leave types and nation-wide holidays.
func ScopeShared(orgID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("org_id = ? OR org_id IS NULL", orgID)
	}
}
