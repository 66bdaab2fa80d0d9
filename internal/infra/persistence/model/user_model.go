package model

import (
	"time"
)

// UserModel mirrors the 'users' table. The id is an auto-increment integer on every driver.
type UserModel struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	Email      string    `gorm:"type:varchar(254);uniqueIndex:idx_users_email;not null"`
	Username   string    `gorm:"type:varchar(150);not null;default:''"`
	Phone      string    `gorm:"type:varchar(15);not null;default:''"`
	FirstName  string    `gorm:"type:varchar(150);not null;default:''"`
	LastName   string    `gorm:"type:varchar(150);not null;default:''"`
	Password   string    `gorm:"type:varchar(128);not null"`
	IsActive   bool      `gorm:"not null;default:false"`
	DateJoined time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// All lists every model managed by AutoMigrate.
func All() []any {
	return []any{&UserModel{}}
}
