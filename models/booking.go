package models

import "time"

// Booking status values. The admin surface may set any of these; only the
// check-in transition is precondition-guarded.
const (
	BookingPending   = "PENDING"
	BookingApproved  = "APPROVED"
	BookingRejected  = "REJECTED"
	BookingCheckedIn = "CHECKED_IN"
	BookingCompleted = "COMPLETED"
)

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"column:user_id;index" json:"user_id"`
	RoomID uint `gorm:"column:room_id;index" json:"room_id"`

	// Kept indexed alongside room_id so an interval-overlap check can be
	// added later as a localized change.
	StartTime time.Time `gorm:"column:start_time;index" json:"start_time"`
	EndTime   time.Time `gorm:"column:end_time;index" json:"end_time"`

	Status          string `gorm:"column:status;size:32;default:PENDING" json:"status"`
	Purpose         string `gorm:"type:text" json:"purpose"`
	QRCodeToken     string `gorm:"column:qr_code_token;uniqueIndex;size:64" json:"qr_code_token"`
	RejectionReason string `gorm:"column:rejection_reason;type:text" json:"rejection_reason,omitempty"`
	StudentCount    int    `gorm:"column:student_count;default:1" json:"student_count"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	User User `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
	Room Room `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
}

// Reservation is the generic hold record for non-room items (equipment).
type Reservation struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	UserID   uint   `gorm:"column:user_id;index" json:"user_id"`
	ItemType string `gorm:"column:item_type;size:32" json:"item_type"` // 'ROOM' or 'EQUIPMENT'
	ItemID   uint   `gorm:"column:item_id" json:"item_id"`
	Status   string `gorm:"size:32" json:"status"`
}
