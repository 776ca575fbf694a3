package services

import (
	"errors"
	"fmt"
	"strings"

	"icrrus-backend/models"

	"gorm.io/gorm"
)

type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

// FindByEmail is the login lookup. Credential checks live with the identity
// provider, not here.
func (s *UserService) FindByEmail(email string) (models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return models.User{}, &ValidationError{Problems: []string{"email is required"}}
	}

	var user models.User
	if err := s.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, fmt.Errorf("failed to look up user: %w", err)
	}
	return user, nil
}
