package domain

import "time" // Timestamps

// User Model
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`                         // Primary key
	Username     string    `gorm:"size:80;uniqueIndex;not null" json:"username"` // Unique username (lower-cased)
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`   // Unique email or generated placeholder
	PasswordHash string    `gorm:"column:password_hash;not null" json:"-"`       // Bcrypt hash, never serialized
	CreatedAt    time.Time `json:"-"`                                            // Registration time
}

// TableName pins the users table name
func (User) TableName() string {
	return "users"
}
