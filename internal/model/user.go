package model

import (
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Username     string         `json:"username" gorm:"not null;uniqueIndex"`
	Email        string         `json:"email"`
	FullName     string         `json:"full_name"`
	PasswordHash string         `json:"-" gorm:"not null"`
	IsStaff      bool           `json:"is_staff" gorm:"default:false"` // admin fallback when no profile row exists
	Profile      *Profile       `json:"profile,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

type Profile struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	UserID    uint           `json:"user_id" gorm:"not null;uniqueIndex"`
	Role      Role           `json:"role" gorm:"type:varchar(10);default:'student'"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// RoleOf resolves the effective role of a user. The per-user profile row wins;
// users without a profile fall back to the staff flag.
func RoleOf(u *User) Role {
	if u == nil {
		return RoleStudent
	}
	if u.Profile != nil && u.Profile.Role == RoleAdmin {
		return RoleAdmin
	}
	if u.IsStaff {
		return RoleAdmin
	}
	return RoleStudent
}

func (u *User) IsAdmin() bool {
	return RoleOf(u) == RoleAdmin
}
