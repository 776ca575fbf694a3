package controllers

import (
	"log"
	"net/http"
	"strconv"

	"icrrus-backend/models"
	"icrrus-backend/services"

	"github.com/gin-gonic/gin"
)

type RoomController struct {
	RoomSvc *services.RoomService
}

func NewRoomController(svc *services.RoomService) *RoomController {
	return &RoomController{RoomSvc: svc}
}

type addRoomPayload struct {
	Name          string `json:"name" validate:"required"`
	Capacity      int    `json:"capacity" validate:"required,gt=0"`
	Description   string `json:"description"`
	Equipment     string `json:"equipment"`
	Location      string `json:"location"`
	IsFacultyOnly bool   `json:"is_faculty_only"`
}

// GetRooms lists rooms with occupancy derived per room (GET /rooms).
func (rc *RoomController) GetRooms(c *gin.Context) {
	views, err := rc.RoomSvc.List()
	if err != nil {
		log.Printf("failed to list rooms: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, views)
}

// AddRoom creates a room (POST /admin/rooms/add).
func (rc *RoomController) AddRoom(c *gin.Context) {
	var payload addRoomPayload
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

	room, err := rc.RoomSvc.Create(models.Room{
		Name:          payload.Name,
		Capacity:      payload.Capacity,
		Description:   payload.Description,
		Equipment:     payload.Equipment,
		Location:      payload.Location,
		IsFacultyOnly: payload.IsFacultyOnly,
		Status:        models.RoomAvailable,
	})
	if err != nil {
		log.Printf("failed to create room: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "room_id": room.ID})
}

// UpdateRoom applies a partial update (PUT /admin/rooms/update/:id). Absent
// fields keep their stored values.
func (rc *RoomController) UpdateRoom(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid room id",
		})
		return
	}

	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request payload",
			"details": err.Error(),
		})
		return
	}

	if err := rc.RoomSvc.Update(uint(id), fields); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
