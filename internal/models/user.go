package models

import "time"

type User struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // never serialized

	Bio       string   `json:"bio"`
	Phone     string   `json:"phone"`
	Address   string   `json:"address"`
	Interests []string `json:"interests"`

	// OTP challenge state. OtpCode is "" when no code is outstanding;
	// OtpExpireAt is unix milliseconds, 0 meaning none.
	OtpCode     string `json:"-"`
	OtpExpireAt int64  `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type OtpRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Otp         string `json:"otp" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

type UpdateProfileRequest struct {
	Name      string   `json:"name"`
	Bio       string   `json:"bio"`
	Phone     string   `json:"phone"`
	Address   string   `json:"address"`
	Interests []string `json:"interests"`
}

// PublicUser is the shape returned by get-profile and embedded in the OAuth
// callback redirect: everything except credential material.
type PublicUser struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Bio       string   `json:"bio"`
	Phone     string   `json:"phone"`
	Address   string   `json:"address"`
	Interests []string `json:"interests"`
}

func (u *User) Public() *PublicUser {
	interests := u.Interests
	if interests == nil {
		interests = []string{}
	}
	return &PublicUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Bio:       u.Bio,
		Phone:     u.Phone,
		Address:   u.Address,
		Interests: interests,
	}
}
