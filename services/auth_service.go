package services

import (
	"errors"

	"alertwatch/config"
	"alertwatch/models"
	"alertwatch/utils"
)

var (
	ErrUsernameTaken      = errors.New("A user with that username already exists.")
	ErrEmailTaken         = errors.New("A user with that email already exists.")
	ErrInvalidCredentials = errors.New("No active account found with the given credentials")
)

// RegisterUser creates a new account with a hashed password.
func RegisterUser(username, email, password, firstName, lastName string) (*models.User, error) {
	var count int64
	if err := config.DB.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrUsernameTaken
	}
	if err := config.DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:  username,
		Email:     email,
		Password:  hashed,
		FirstName: firstName,
		LastName:  lastName,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// AuthenticateUser exchanges credentials for the matching user.
func AuthenticateUser(username, password string) (*models.User, error) {
	var user models.User
	if err := config.DB.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// FindUserByID loads a user by primary key.
func FindUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := config.DB.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
