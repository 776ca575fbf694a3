package services

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"icrrus-backend/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database per test and applies the
// schema the services touch.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		// Tests exercise dangling user/room references on purpose.
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Room{}, &models.Booking{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func createUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	user := models.User{
		Email:    email,
		FullName: "Test User",
		Role:     models.RoleStudent,
		IsActive: true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func createRoom(t *testing.T, db *gorm.DB, name string, capacity int) models.Room {
	t.Helper()
	room := models.Room{
		Name:     name,
		Capacity: capacity,
		Location: "LIBRARY",
		Status:   models.RoomAvailable,
	}
	if err := db.Create(&room).Error; err != nil {
		t.Fatalf("failed to create room: %v", err)
	}
	return room
}

var tokenSeq atomic.Uint64

func createBooking(t *testing.T, db *gorm.DB, userID, roomID uint, status string) models.Booking {
	t.Helper()
	now := time.Now().UTC()
	booking := models.Booking{
		UserID:       userID,
		RoomID:       roomID,
		StartTime:    now,
		EndTime:      now.Add(time.Hour),
		Purpose:      "test",
		StudentCount: 1,
		Status:       status,
		QRCodeToken:  fmt.Sprintf("RES-%06d", tokenSeq.Add(1)),
	}
	if err := db.Create(&booking).Error; err != nil {
		t.Fatalf("failed to create booking: %v", err)
	}
	return booking
}
