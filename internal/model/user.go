package model

import "time"

// User represents a painter account in the timesheet system.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:50;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	FullName     string    `json:"full_name" gorm:"size:255;not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Locations []Location   `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Entries   []DailyEntry `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
