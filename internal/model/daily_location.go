package model

// DailyLocation joins a daily entry to a location with its position in the
// day's itinerary. Sequence numbers are dense and 1-based, generated from
// list position on save. A location appears at most once per entry and each
// position is used at most once per entry.
type DailyLocation struct {
	ID            uint `json:"id" gorm:"primaryKey"`
	EntryID       uint `json:"entry_id" gorm:"not null;uniqueIndex:idx_visits_entry_location;uniqueIndex:idx_visits_entry_seq"`
	LocationID    uint `json:"location_id" gorm:"not null;uniqueIndex:idx_visits_entry_location"`
	SequenceOrder int  `json:"sequence_order" gorm:"not null;uniqueIndex:idx_visits_entry_seq;check:chk_sequence_positive,sequence_order > 0"`

	// Relations
	Entry    DailyEntry `json:"-" gorm:"foreignKey:EntryID"`
	// The location FK carries no ON DELETE action: deleting a referenced
	// location directly fails the constraint at statement end, while a
	// user-level cascade that clears the visit rows in the same statement
	// goes through. RESTRICT would fire mid-cascade and abort it.
	Location Location   `json:"location" gorm:"foreignKey:LocationID"`
}
