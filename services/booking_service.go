package services

import (
	"errors"
	"fmt"
	"time"

	"icrrus-backend/models"
	"icrrus-backend/utils"

	"gorm.io/gorm"
)

type BookingService struct {
	DB *gorm.DB

	// newToken generates qr_code_token values; swapped out in tests to
	// provoke collisions.
	newToken func() string
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{DB: db, newToken: utils.NewReservationToken}
}

// tokenMaxRetries bounds regeneration attempts when a generated token
// collides with an existing booking's.
const tokenMaxRetries = 5

// CreateBookingInput carries the raw /book payload. Timestamps arrive as
// strings because the mobile client sends ISO-8601 with either "Z" or an
// explicit offset.
type CreateBookingInput struct {
	UserID       uint
	RoomID       uint
	StartTime    string
	EndTime      string
	Purpose      string
	StudentCount int
	Status       string
}

// BookingSummary is a booking joined with user/room display fields for the
// admin dashboard.
type BookingSummary struct {
	ID           uint   `json:"id"`
	UserID       uint   `json:"user_id"`
	UserName     string `json:"user_name"`
	RoomName     string `json:"room_name"`
	RoomCapacity int    `json:"room_capacity"`
	Location     string `json:"location"`
	StudentCount int    `json:"student_count"`
	Status       string `json:"status"`
	Purpose      string `json:"purpose"`
}

// timestampLayouts are tried in order; the first covers "Z" and offset
// suffixes, the second a bare local timestamp.
var timestampLayouts = []string{time.RFC3339, "2006-01-02T15:04:05"}

func parseTimestamp(value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparsable timestamp %q", value)
}

// Create validates the input in one pass and persists the booking in the
// requested status. Auto-approval is the caller's policy decision: a supplied
// APPROVED status is stored as-is and not re-validated here. No overlap check
// is performed; overlapping bookings for one room are accepted.
func (s *BookingService) Create(input CreateBookingInput) (models.Booking, error) {
	var problems []string

	if input.UserID == 0 {
		problems = append(problems, "user_id is required")
	}
	if input.RoomID == 0 {
		problems = append(problems, "room_id is required")
	}
	if input.Purpose == "" {
		problems = append(problems, "purpose is required")
	}

	start, err := parseTimestamp(input.StartTime)
	if err != nil {
		problems = append(problems, "start_time: "+err.Error())
	}
	end, err := parseTimestamp(input.EndTime)
	if err != nil {
		problems = append(problems, "end_time: "+err.Error())
	}

	if len(problems) > 0 {
		return models.Booking{}, &ValidationError{Problems: problems}
	}

	status := input.Status
	if status == "" {
		status = models.BookingPending
	}
	studentCount := input.StudentCount
	if studentCount <= 0 {
		studentCount = 1
	}

	booking := models.Booking{
		UserID:       input.UserID,
		RoomID:       input.RoomID,
		StartTime:    start,
		EndTime:      end,
		Purpose:      input.Purpose,
		StudentCount: studentCount,
		Status:       status,
	}

	// The token is short, so a collision with an existing booking is a
	// normal outcome; regenerate and retry instead of failing the request.
	var createErr error
	for attempt := 0; attempt < tokenMaxRetries; attempt++ {
		booking.ID = 0
		booking.QRCodeToken = s.newToken()
		createErr = s.DB.Create(&booking).Error
		if createErr == nil {
			return booking, nil
		}
		if !isDuplicateEntry(createErr) {
			return models.Booking{}, fmt.Errorf("failed to create booking: %w", createErr)
		}
	}
	return models.Booking{}, fmt.Errorf("failed to create booking after %d token retries: %w", tokenMaxRetries, createErr)
}

// List returns every booking with user/room display fields resolved, falling
// back to placeholders when a referenced record is gone.
func (s *BookingService) List() ([]BookingSummary, error) {
	var bookings []models.Booking
	if err := s.DB.Preload("User").Preload("Room").Find(&bookings).Error; err != nil {
		return nil, err
	}

	summaries := make([]BookingSummary, 0, len(bookings))
	for _, b := range bookings {
		summary := BookingSummary{
			ID:           b.ID,
			UserID:       b.UserID,
			UserName:     "Unknown User",
			RoomName:     "Unknown",
			RoomCapacity: 0,
			Location:     "FACILITY",
			StudentCount: b.StudentCount,
			Status:       b.Status,
			Purpose:      b.Purpose,
		}
		if b.User.ID != 0 {
			summary.UserName = b.User.FullName
		}
		if b.Room.ID != 0 {
			summary.RoomName = b.Room.Name
			summary.RoomCapacity = b.Room.Capacity
			summary.Location = b.Room.Location
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// SetStatus applies any status from any state. The admin surface uses this
// for approve, reject and manual overrides, so no transition table is
// enforced here; check-in is the only guarded transition.
func (s *BookingService) SetStatus(id uint, status, rejectionReason string) error {
	var booking models.Booking
	if err := s.DB.First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookingNotFound
		}
		return err
	}

	updates := map[string]interface{}{"status": status}
	if rejectionReason != "" {
		updates["rejection_reason"] = rejectionReason
	}
	return s.DB.Model(&booking).Updates(updates).Error
}

// CheckIn transitions the first APPROVED booking for (userID, roomID) to
// CHECKED_IN. The update is conditioned on the status still being APPROVED at
// commit time, so two racing check-ins for the same booking cannot both
// succeed; the loser gets ErrNoApprovedBooking and nothing is mutated.
func (s *BookingService) CheckIn(userID, roomID uint) (models.Booking, error) {
	var booking models.Booking
	err := s.DB.
		Where("user_id = ? AND room_id = ? AND status = ?", userID, roomID, models.BookingApproved).
		Order("id").
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Booking{}, ErrNoApprovedBooking
		}
		return models.Booking{}, fmt.Errorf("failed to find approved booking: %w", err)
	}

	res := s.DB.Model(&models.Booking{}).
		Where("id = ? AND status = ?", booking.ID, models.BookingApproved).
		Update("status", models.BookingCheckedIn)
	if res.Error != nil {
		return models.Booking{}, fmt.Errorf("failed to check in: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// Lost the race: the booking left APPROVED between read and update.
		return models.Booking{}, ErrNoApprovedBooking
	}

	booking.Status = models.BookingCheckedIn
	return booking, nil
}
