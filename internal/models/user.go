package models

import "gorm.io/gorm"

// User represents a storefront identity.
type User struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty"`
	Email      string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	FirstName  string `json:"firstName" gorm:"type:varchar(100)" validate:"required,min=1,max=100"`
	LastName   string `json:"lastName" gorm:"type:varchar(100)" validate:"required,min=1,max=100"`
	Password   string `json:"-" gorm:"type:varchar(255)" validate:"required,min=6"` // bcrypt hash at rest
	gorm.Model        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// FullName is the display name used in welcome notices.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}
