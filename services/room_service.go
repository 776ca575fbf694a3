package services

import (
	"errors"
	"fmt"

	"icrrus-backend/models"

	"gorm.io/gorm"
)

type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

// RoomView is a room as the client sees it: the status field holds the
// derived occupancy, never the persisted column.
type RoomView struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	Capacity      int    `json:"capacity"`
	Status        string `json:"status"`
	Location      string `json:"location"`
	Description   string `json:"description"`
	Equipment     string `json:"equipment"`
	IsFacultyOnly bool   `json:"is_faculty_only"`
}

func (s *RoomService) Create(room models.Room) (models.Room, error) {
	if room.Status == "" {
		room.Status = models.RoomAvailable
	}
	if err := s.DB.Create(&room).Error; err != nil {
		return models.Room{}, err
	}
	return room, nil
}

// ResolveStatus derives a room's occupancy from current booking state. The
// persisted status column is never consulted; a room is OCCUPIED exactly when
// a CHECKED_IN booking for it exists right now.
func (s *RoomService) ResolveStatus(roomID uint) (string, error) {
	var count int64
	err := s.DB.Model(&models.Booking{}).
		Where("room_id = ? AND status = ?", roomID, models.BookingCheckedIn).
		Count(&count).Error
	if err != nil {
		return "", fmt.Errorf("failed to resolve room status: %w", err)
	}
	if count > 0 {
		return models.RoomOccupied, nil
	}
	return models.RoomAvailable, nil
}

// List returns every room with its occupancy re-derived on this read.
func (s *RoomService) List() ([]RoomView, error) {
	var rooms []models.Room
	if err := s.DB.Find(&rooms).Error; err != nil {
		return nil, err
	}

	views := make([]RoomView, 0, len(rooms))
	for _, r := range rooms {
		status, err := s.ResolveStatus(r.ID)
		if err != nil {
			return nil, err
		}
		views = append(views, RoomView{
			ID:            r.ID,
			Name:          r.Name,
			Capacity:      r.Capacity,
			Status:        status,
			Location:      r.Location,
			Description:   r.Description,
			Equipment:     r.Equipment,
			IsFacultyOnly: r.IsFacultyOnly,
		})
	}
	return views, nil
}

// Update applies only the provided fields. Identity, timestamps and the
// status column are stripped; occupancy is derived, not written.
func (s *RoomService) Update(id uint, fields map[string]interface{}) error {
	delete(fields, "id")
	delete(fields, "created_at")
	delete(fields, "updated_at")
	delete(fields, "status")

	var room models.Room
	if err := s.DB.First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoomNotFound
		}
		return err
	}

	if len(fields) == 0 {
		return nil
	}
	return s.DB.Model(&room).Updates(fields).Error
}
