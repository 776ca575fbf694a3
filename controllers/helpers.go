package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"icrrus-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// validate is shared across handlers; payload structs carry `validate` tags
// and every problem is reported in one pass.
var validate = validator.New()

func validationProblems(payload interface{}) []string {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}

	problems := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			problems = append(problems, fmt.Sprintf("%s is required", fe.Field()))
		case "gt":
			problems = append(problems, fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param()))
		default:
			problems = append(problems, fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag()))
		}
	}
	return problems
}

// respondServiceError maps typed service failures onto HTTP responses.
func respondServiceError(c *gin.Context, err error) {
	if ve, ok := services.AsValidationError(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request payload",
			"details": ve.Problems,
		})
		return
	}

	switch {
	case errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": "User not found."})
	case errors.Is(err, services.ErrRoomNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": "Room not found"})
	case errors.Is(err, services.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": "Booking not found"})
	case errors.Is(err, services.ErrNoApprovedBooking):
		c.JSON(http.StatusBadRequest, gin.H{"detail": "No approved reservation found."})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
	}
}
