package model

import "time"

// Location is a work site owned by a user. Locations are soft-disabled via
// the Active flag rather than deleted, so historical itineraries stay intact.
type Location struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_locations_user_name"`
	Name      string    `json:"name" gorm:"size:50;not null;uniqueIndex:idx_locations_user_name"`
	Address   string    `json:"address,omitempty" gorm:"size:100"`
	Active    bool      `json:"active" gorm:"default:true;index"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID"`
}
