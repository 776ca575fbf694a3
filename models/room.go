package models

import "time"

// Displayed room status values. The status column is persisted for the client
// schema but every read path recomputes the effective value from bookings.
const (
	RoomAvailable = "AVAILABLE"
	RoomOccupied  = "OCCUPIED"
)

type Room struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	Name          string `gorm:"index;size:255" json:"name"`
	Capacity      int    `gorm:"column:capacity" json:"capacity"`
	Location      string `gorm:"size:64" json:"location"` // 'FACILITY' or 'LIBRARY'
	Description   string `gorm:"type:text" json:"description"`
	Equipment     string `gorm:"type:text" json:"equipment"`
	IsFacultyOnly bool   `gorm:"column:is_faculty_only;default:false" json:"is_faculty_only"`
	Status        string `gorm:"size:32;default:AVAILABLE" json:"status"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
