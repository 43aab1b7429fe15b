package services

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/souma9830/travel-agency-website/internal/models"
	"github.com/souma9830/travel-agency-website/internal/repositories"
)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type UserService interface {
	Register(name, email, password string) (*models.User, error)
	// Login never mutates the user record.
	Login(email, password string) (*models.User, string, error)

	// RequestOtp issues a fresh code for the user behind email and returns
	// the user plus the code for mail transport.
	RequestOtp(email string, purpose OtpPurpose) (*models.User, string, error)
	ResetPassword(email, otp, newPassword string) error

	GetProfile(userID int) (*models.User, error)
	UpdateProfile(userID int, req *models.UpdateProfileRequest) error
}

type userService struct {
	repo   repositories.UserRepository
	auth   AuthService
	tokens TokenService
	otp    OtpService
}

func NewUserService(repo repositories.UserRepository, auth AuthService, tokens TokenService, otp OtpService) UserService {
	return &userService{
		repo:   repo,
		auth:   auth,
		tokens: tokens,
		otp:    otp,
	}
}

func (s *userService) Register(name, email, password string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	existing, err := s.repo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	hash, err := s.auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.repo.Create(user); err != nil {
		// the unique index catches the check-then-create race
		if errors.Is(err, repositories.ErrEmailTaken) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	log.Printf("[user][register] created id=%d", user.ID)
	return user, nil
}

func (s *userService) Login(email, password string) (*models.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.repo.GetByEmail(email)
	if err != nil {
		return nil, "", err
	}
	// unknown email and wrong password report identically
	if user == nil || !s.auth.CheckPassword(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}
	log.Printf("[user][login] success id=%d", user.ID)
	return user, token, nil
}

func (s *userService) RequestOtp(email string, purpose OtpPurpose) (*models.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.repo.GetByEmail(email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrUserNotFound
	}

	code, err := s.otp.Issue(user, purpose)
	if err != nil {
		return nil, "", err
	}
	return user, code, nil
}

func (s *userService) ResetPassword(email, otp, newPassword string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.repo.GetByEmail(email)
	if err != nil {
		return err
	}
	// unknown user, wrong code and expired code all collapse into one error
	if user == nil || !s.otp.Verify(user, otp, time.Now()) {
		return ErrOtpInvalid
	}

	hash, err := s.auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	// new hash and OTP clear land in one mutation: the code is single-use
	if err := s.repo.ResetPasswordClearOtp(user.ID, hash); err != nil {
		return err
	}
	log.Printf("[user][reset-password] success id=%d", user.ID)
	return nil
}

func (s *userService) GetProfile(userID int) (*models.User, error) {
	user, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *userService) UpdateProfile(userID int, req *models.UpdateProfileRequest) error {
	user, err := s.repo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if strings.TrimSpace(req.Name) != "" {
		user.Name = strings.TrimSpace(req.Name)
	}
	user.Bio = req.Bio
	user.Phone = req.Phone
	user.Address = req.Address
	if req.Interests != nil {
		user.Interests = req.Interests
	}
	return s.repo.UpdateProfile(user)
}
