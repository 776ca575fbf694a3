package controllers

import (
	"net/http"

	"icrrus-backend/services"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	UserSvc *services.UserService
}

func NewAuthController(svc *services.UserService) *AuthController {
	return &AuthController{UserSvc: svc}
}

type loginPayload struct {
	Email string `json:"email" validate:"required"`
	// Accepted for forward compatibility with the client's login form;
	// credential verification is outside this service.
	Password string `json:"password"`
}

// Login looks the user up by email (POST /login).
func (ac *AuthController) Login(c *gin.Context) {
	var payload loginPayload
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

	user, err := ac.UserSvc.FindByEmail(payload.Email)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":        user.ID,
		"email":     user.Email,
		"full_name": user.FullName,
		"role":      user.Role,
		"school_id": user.SchoolID,
	})
}
