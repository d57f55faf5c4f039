package entity

// IsActive carries no column default on purpose, gorm would skip a false
// value on insert otherwise. Callers set it explicitly.
type User struct {
	Base
	Email          string `gorm:"unique;not null"`
	Username       string `gorm:"unique;not null"`
	HashedPassword string `gorm:"not null"`
	IsActive       bool
	IsAdmin        bool
}
