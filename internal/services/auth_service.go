package services

import (
	"errors"
	"time"

	"github.com/terraincognita07/samaan/internal/models"
	"github.com/terraincognita07/samaan/internal/security"
	"golang.org/x/crypto/bcrypt"
)

const temporaryPasswordLength = 12

var (
	ErrOwnerAlreadyExists = errors.New("owner already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserLoadFailed     = errors.New("load user failed")
	ErrUserSaveFailed     = errors.New("save user failed")
)

type AuthUserRepository interface {
	CountUsers() (int64, error)
	FindByID(userID uint) (models.User, error)
	FindByNormalizedEmail(email string) (models.User, bool, error)
	Create(user *models.User) error
	UpdatePassword(userID uint, passwordHash string, mustChangePassword bool) error
}

type AuthService struct {
	users AuthUserRepository
	now   func() time.Time
}

func NewAuthService(users AuthUserRepository) *AuthService {
	return &AuthService{users: users, now: time.Now}
}

// Authenticate returns the user for a matching email and password. Unknown
// emails and wrong passwords report the same error.
func (service *AuthService) Authenticate(emailRaw string, passwordRaw string) (models.User, error) {
	email, password, err := NormalizeCredentialsInput(emailRaw, passwordRaw)
	if err != nil {
		return models.User{}, err
	}

	user, found, err := service.users.FindByNormalizedEmail(email)
	if err != nil {
		return models.User{}, ErrUserLoadFailed
	}
	if !found {
		return models.User{}, ErrAuthCredentialsInvalid
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrAuthCredentialsInvalid
	}
	return user, nil
}

// CreateOwner creates the single owner account. It fails once any user exists.
func (service *AuthService) CreateOwner(emailRaw string, password string) (models.User, error) {
	email := NormalizeAuthEmail(emailRaw)
	if email == "" {
		return models.User{}, ErrInvalidEmail
	}
	if err := ValidatePasswordStrength(password); err != nil {
		return models.User{}, err
	}

	count, err := service.users.CountUsers()
	if err != nil {
		return models.User{}, ErrUserLoadFailed
	}
	if count > 0 {
		return models.User{}, ErrOwnerAlreadyExists
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}
	user := models.User{
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleOwner,
		CreatedAt:    service.now().UTC(),
	}
	if err := service.users.Create(&user); err != nil {
		return models.User{}, ErrUserSaveFailed
	}
	return user, nil
}

// ResetPassword replaces the password of emailRaw with a generated temporary
// one that must be changed on next login.
func (service *AuthService) ResetPassword(emailRaw string) (string, error) {
	email := NormalizeAuthEmail(emailRaw)
	if email == "" {
		return "", ErrInvalidEmail
	}

	user, found, err := service.users.FindByNormalizedEmail(email)
	if err != nil {
		return "", ErrUserLoadFailed
	}
	if !found {
		return "", ErrUserNotFound
	}

	temporary, err := security.TemporaryPassword(temporaryPasswordLength)
	if err != nil {
		return "", err
	}
	hash, err := security.HashPassword(temporary)
	if err != nil {
		return "", err
	}
	if err := service.users.UpdatePassword(user.ID, hash, true); err != nil {
		return "", ErrUserSaveFailed
	}
	return temporary, nil
}

func (service *AuthService) ChangePassword(userID uint, current string, next string) (models.User, error) {
	user, err := service.users.FindByID(userID)
	if err != nil {
		return models.User{}, ErrUserNotFound
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return models.User{}, ErrAuthCredentialsInvalid
	}
	if err := ValidatePasswordStrength(next); err != nil {
		return models.User{}, err
	}

	hash, err := security.HashPassword(next)
	if err != nil {
		return models.User{}, err
	}
	if err := service.users.UpdatePassword(user.ID, hash, false); err != nil {
		return models.User{}, ErrUserSaveFailed
	}
	user.PasswordHash = hash
	user.MustChangePassword = false
	return user, nil
}

func (service *AuthService) FindByID(userID uint) (models.User, error) {
	return service.users.FindByID(userID)
}
