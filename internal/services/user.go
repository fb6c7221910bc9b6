package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"love-diary-backend/internal/models"
	"love-diary-backend/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	jwtExpDays        = 7
	defaultAvatarFile = "avatars/default.png"
)

// phoneRegexp matches mainland mobile numbers: 11 digits, leading 1,
// second digit 3-9.
var phoneRegexp = regexp.MustCompile(`^1[3-9]\d{9}$`)

var (
	ErrInvalidPhone    = errors.New("invalid phone number")
	ErrInvalidPassword = errors.New("password must be 6-20 characters")
	ErrPhoneTaken      = errors.New("phone number already registered")
	ErrWrongPassword   = errors.New("wrong password")
	ErrUserNotFound    = errors.New("user not found")
)

// UserService handles account and profile business logic
type UserService struct {
	userRepo  *repository.UserRepository
	jwtSecret string
}

// NewUserService creates a new user service
func NewUserService(userRepo *repository.UserRepository, jwtSecret string) *UserService {
	return &UserService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
	}
}

// ValidatePhone reports whether the phone number has a valid format
func ValidatePhone(phone string) bool {
	return phoneRegexp.MatchString(phone)
}

// ValidatePassword reports whether the password length is acceptable
func ValidatePassword(password string) bool {
	return len(password) >= 6 && len(password) <= 20
}

// LoveDays counts inclusive whole days from the start date to today.
// Returns 0 for an empty or unparseable date, or one still in the future.
func LoveDays(startDate string, today time.Time) int {
	if startDate == "" {
		return 0
	}
	start, err := time.ParseInLocation("2006-01-02", startDate, today.Location())
	if err != nil {
		return 0
	}
	startDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, today.Location())
	todayDay := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	diff := int(todayDay.Sub(startDay).Hours() / 24)
	if diff < 0 {
		return 0
	}
	return diff + 1
}

// Register creates a new account after phone/password validation
func (s *UserService) Register(ctx context.Context, phone, password, gender string) (*models.User, error) {
	if !ValidatePhone(phone) {
		return nil, ErrInvalidPhone
	}
	if !ValidatePassword(password) {
		return nil, ErrInvalidPassword
	}

	exists, err := s.userRepo.PhoneExists(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("failed to check phone: %w", err)
	}
	if exists {
		return nil, ErrPhoneTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &models.User{
		ID:           uuid.New().String(),
		Phone:        phone,
		PasswordHash: string(hash),
		Gender:       gender,
		Username:     defaultUsername(gender, phone),
		AvatarFileID: defaultAvatarFile,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// defaultUsername derives the initial display name from gender and the
// last four phone digits.
func defaultUsername(gender, phone string) string {
	label := "user"
	switch gender {
	case "male":
		label = "him"
	case "female":
		label = "her"
	}
	return fmt.Sprintf("%s_%s", label, phone[len(phone)-4:])
}

// Login verifies credentials and returns the account
func (s *UserService) Login(ctx context.Context, phone, password string) (*models.User, error) {
	if !ValidatePhone(phone) {
		return nil, ErrInvalidPhone
	}

	user, err := s.userRepo.GetByPhone(ctx, phone)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrWrongPassword
	}
	return user, nil
}

// GenerateJWT generates a JWT token for a user
func (s *UserService) GenerateJWT(userID string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().AddDate(0, 0, jwtExpDays).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// ValidateJWT validates a JWT token and returns the user ID
func (s *UserService) ValidateJWT(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return "", fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid token claims")
	}
	userID, ok := claims["user_id"].(string)
	if !ok {
		return "", fmt.Errorf("user_id not found in token")
	}
	return userID, nil
}

// GetByID returns the user with the given ID
func (s *UserService) GetByID(ctx context.Context, userID string) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// GetPartner returns the paired partner of a user, or nil when unpaired
func (s *UserService) GetPartner(ctx context.Context, user *models.User) (*models.User, error) {
	if user.PartnerID == nil {
		return nil, nil
	}
	partner, err := s.userRepo.GetByID(ctx, *user.PartnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get partner: %w", err)
	}
	return partner, nil
}

// UpdateProfile changes the display name and avatar of a user
func (s *UserService) UpdateProfile(ctx context.Context, userID, username, avatarFileID string) (*models.User, error) {
	if username == "" {
		return nil, errors.New("username is required")
	}
	if err := s.userRepo.UpdateProfile(ctx, userID, username, avatarFileID); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, userID)
}

// UpdatePushToken stores the device push token for a user
func (s *UserService) UpdatePushToken(ctx context.Context, userID string, token *string) error {
	return s.userRepo.UpdatePushToken(ctx, userID, token)
}
