package model

import "time"

// Clock and date layouts used throughout the entry tables. Times are stored
// as zero-padded wall clock strings, which order lexicographically, so the
// CHECK constraints below compare them directly.
const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// DailyEntry is one day's timesheet for a user, unique per (user, entry date).
// The break window, when present, must sit strictly inside the shift.
type DailyEntry struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_entries_user_date"`
	EntryDate  string    `json:"entry_date" gorm:"size:10;not null;uniqueIndex:idx_entries_user_date"`
	StartTime  string    `json:"start_time" gorm:"size:5;not null;check:chk_shift_order,start_time < end_time"`
	EndTime    string    `json:"end_time" gorm:"size:5;not null"`
	BreakStart *string   `json:"break_start,omitempty" gorm:"size:5;check:chk_break_pair,(break_start IS NULL) = (break_end IS NULL)"`
	BreakEnd   *string   `json:"break_end,omitempty" gorm:"size:5;check:chk_break_window,break_start IS NULL OR (break_start > start_time AND break_end < end_time AND break_start < break_end)"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relations
	User   User            `json:"-" gorm:"foreignKey:UserID"`
	Visits []DailyLocation `json:"visits,omitempty" gorm:"foreignKey:EntryID;constraint:OnDelete:CASCADE"`
}
