package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/souma9830/travel-agency-website/internal/models"
	"github.com/souma9830/travel-agency-website/internal/repositories"
)

var ErrOtpInvalid = errors.New("invalid or expired OTP")

// OtpPurpose selects the expiry window. The two purposes deliberately have
// distinct windows and must never share a constant.
type OtpPurpose int

const (
	OtpPasswordReset OtpPurpose = iota
	OtpVerificationResend
)

const (
	passwordResetOtpTTL      = 15 * time.Minute
	verificationResendOtpTTL = 10 * time.Minute
)

func (p OtpPurpose) TTL() time.Duration {
	if p == OtpPasswordReset {
		return passwordResetOtpTTL
	}
	return verificationResendOtpTTL
}

// OtpService manages the per-user one-time codes. Only the most recently
// issued code is valid: issuing overwrites whatever was outstanding.
type OtpService interface {
	// Issue stores a fresh 6-digit code on the user record and returns it for
	// mail transport. The code must never be logged or sent in a response body.
	Issue(user *models.User, purpose OtpPurpose) (string, error)
	// Verify checks the supplied code against the stored one at the given
	// instant. A user with no outstanding code always fails.
	Verify(user *models.User, code string, now time.Time) bool
}

type otpService struct {
	repo repositories.UserRepository
}

func NewOtpService(repo repositories.UserRepository) OtpService {
	return &otpService{repo: repo}
}

// generateCode draws uniformly from 000000-999999 using crypto/rand.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("otp generate: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func (s *otpService) Issue(user *models.User, purpose OtpPurpose) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", err
	}

	expireAt := time.Now().Add(purpose.TTL()).UnixMilli()
	if err := s.repo.SetOtp(user.ID, code, expireAt); err != nil {
		return "", err
	}
	user.OtpCode = code
	user.OtpExpireAt = expireAt
	return code, nil
}

func (s *otpService) Verify(user *models.User, code string, now time.Time) bool {
	if user.OtpCode == "" || code == "" {
		return false
	}
	// exact string match, not numeric
	if user.OtpCode != code {
		return false
	}
	return now.UnixMilli() < user.OtpExpireAt
}
