// File: internal/user/model.go
package user

import (
	"time"

	"foodshare_backend/internal/common"

	"github.com/google/uuid"
)

// User is a registered account, created lazily the first time a Firebase
// identity is exchanged for session tokens.
type User struct {
	common.BaseModel
	Email       string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	DisplayName string     `gorm:"type:varchar(255)" json:"displayName"`
	AvatarURL   string     `gorm:"type:text" json:"avatarUrl"`
	FirebaseUID string     `gorm:"type:varchar(128);uniqueIndex;not null" json:"-"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}

// GetID returns the user's ID.
func (u *User) GetID() uuid.UUID {
	return u.ID
}

// GetEmail returns the user's email.
func (u *User) GetEmail() string {
	return u.Email
}
