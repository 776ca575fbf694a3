package controllers

import (
	"log"
	"net/http"
	"strconv"

	"icrrus-backend/services"

	"github.com/gin-gonic/gin"
)

type BookingController struct {
	BookingSvc *services.BookingService
}

func NewBookingController(svc *services.BookingService) *BookingController {
	return &BookingController{BookingSvc: svc}
}

type createBookingPayload struct {
	UserID       uint   `json:"user_id"`
	RoomID       uint   `json:"room_id"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	Purpose      string `json:"purpose"`
	StudentCount int    `json:"student_count"`
	// PENDING by default; the client sends APPROVED when its own policy
	// decided the booking is auto-approved.
	Status string `json:"status"`
}

type updateBookingPayload struct {
	Status          string `json:"status" validate:"required"`
	RejectionReason string `json:"rejection_reason"`
}

type checkInPayload struct {
	UserID uint `json:"user_id" validate:"required"`
	RoomID uint `json:"room_id" validate:"required"`
}

// CreateBooking handles POST /book. Field validation happens in the service
// so one pass reports every problem.
func (bc *BookingController) CreateBooking(c *gin.Context) {
	var payload createBookingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request payload",
			"details": err.Error(),
		})
		return
	}

	_, err := bc.BookingSvc.Create(services.CreateBookingInput{
		UserID:       payload.UserID,
		RoomID:       payload.RoomID,
		StartTime:    payload.StartTime,
		EndTime:      payload.EndTime,
		Purpose:      payload.Purpose,
		StudentCount: payload.StudentCount,
		Status:       payload.Status,
	})
	if err != nil {
		log.Printf("booking create failed: %v", err)
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// GetAllBookings handles GET /admin/bookings.
func (bc *BookingController) GetAllBookings(c *gin.Context) {
	summaries, err := bc.BookingSvc.List()
	if err != nil {
		log.Printf("failed to list bookings: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summaries)
}

// UpdateBookingStatus handles PUT /bookings/:id. Any status may be set from
// any state; the admin dashboard uses this for approve and reject.
func (bc *BookingController) UpdateBookingStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid booking id",
		})
		return
	}

	var payload updateBookingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request payload",
			"details": err.Error(),
		})
		return
	}
	if problems := validationProblems(payload); problems != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request payload",
			"details": problems,
		})
		return
	}

	if err := bc.BookingSvc.SetStatus(uint(id), payload.Status, payload.RejectionReason); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// CheckIn handles POST /checkin: gated on an APPROVED booking for the
// (user, room) pair.
func (bc *BookingController) CheckIn(c *gin.Context) {
	var payload checkInPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request payload",
			"details": err.Error(),
		})
		return
	}
	if problems := validationProblems(payload); problems != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request payload",
			"details": problems,
		})
		return
	}

	if _, err := bc.BookingSvc.CheckIn(payload.UserID, payload.RoomID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
