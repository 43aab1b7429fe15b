package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/souma9830/travel-agency-website/internal/models"
	"github.com/souma9830/travel-agency-website/internal/services"
)

type AuthHandler struct {
	users services.UserService
	mail  services.EmailService
}

func NewAuthHandler(users services.UserService, mail services.EmailService) *AuthHandler {
	return &AuthHandler{users: users, mail: mail}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	if _, err := h.users.Register(req.Name, req.Email, req.Password); err != nil {
		if errors.Is(err, services.ErrUserExists) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "User already exists"})
			return
		}
		log.Printf("[auth][register] failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Registration failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Registration successful"})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	user, token, err := h.users.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid credentials"})
			return
		}
		log.Printf("[auth][login] failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Login failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"token":   token,
		"userData": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
		},
	})
}

// SendResetOtp issues a password-reset code (15 minute window) and delivers
// it synchronously: a mail failure is surfaced to the caller.
func (h *AuthHandler) SendResetOtp(c *gin.Context) {
	var req models.OtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email is required"})
		return
	}

	user, code, err := h.users.RequestOtp(req.Email, services.OtpPasswordReset)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
			return
		}
		log.Printf("[auth][send-reset-otp] failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Could not send OTP"})
		return
	}

	if err := h.mail.SendOtpEmail(user.Email, code, services.OtpPasswordReset); err != nil {
		log.Printf("[auth][send-reset-otp] mail failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Could not send OTP"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "OTP sent to your email"})
}

// ForgotOtp re-issues the verification code (10 minute window). Delivery is
// dispatched in the background; failures are logged by the email service, and
// the caller is acknowledged regardless.
func (h *AuthHandler) ForgotOtp(c *gin.Context) {
	var req models.OtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email is required"})
		return
	}

	user, code, err := h.users.RequestOtp(req.Email, services.OtpVerificationResend)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
			return
		}
		log.Printf("[auth][forgot-otp] failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Could not send OTP"})
		return
	}

	h.mail.DispatchOtpEmail(user.Email, code, services.OtpVerificationResend)

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "OTP sent to your email", "next": "verify"})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	if err := h.users.ResetPassword(req.Email, req.Otp, req.NewPassword); err != nil {
		if errors.Is(err, services.ErrOtpInvalid) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid or expired OTP"})
			return
		}
		log.Printf("[auth][reset-password] failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Password reset failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password reset successful"})
}

// Logout is symbolic: tokens are stateless and the client discards its copy.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out successfully"})
}
