package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/souma9830/travel-agency-website/internal/models"
)

// ErrEmailTaken surfaces the unique index on users.email. Concurrent
// registrations with the same address race past the pre-check; the index is
// the backstop and the loser must see a duplicate-account error, not a 500.
var ErrEmailTaken = errors.New("email already registered")

type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id int) (*models.User, error)
	UpdateProfile(user *models.User) error

	// OTP helpers. SetOtp overwrites any outstanding code (last write wins).
	SetOtp(userID int, code string, expireAtMs int64) error
	ClearOtp(userID int) error

	// ResetPasswordClearOtp writes the new hash and clears the OTP fields in
	// a single statement so a used code can never be replayed.
	ResetPasswordClearOtp(userID int, passwordHash string) error
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

func (r *userRepository) Create(user *models.User) error {
	const q = `
		INSERT INTO users (name, email, password_hash, bio, phone, address, interests, otp_code, otp_expire_at)
		VALUES ($1,$2,$3,'','','','{}','',0)
		RETURNING id, created_at, updated_at
	`
	err := r.DB.QueryRow(q, user.Name, user.Email, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrEmailTaken
		}
		return fmt.Errorf("user create: %w", err)
	}
	return nil
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	return r.getOne(`email = $1`, email)
}

func (r *userRepository) GetByID(id int) (*models.User, error) {
	return r.getOne(`id = $1`, id)
}

func (r *userRepository) getOne(where string, arg interface{}) (*models.User, error) {
	q := `
		SELECT id, name, email, password_hash, bio, phone, address, interests,
		       otp_code, otp_expire_at, created_at, updated_at
		FROM users
		WHERE ` + where
	u := &models.User{}
	err := r.DB.QueryRow(q, arg).Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash,
		&u.Bio, &u.Phone, &u.Address, pq.Array(&u.Interests),
		&u.OtpCode, &u.OtpExpireAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("user get: %w", err)
	}
	return u, nil
}

func (r *userRepository) UpdateProfile(user *models.User) error {
	const q = `
		UPDATE users
		SET name=$1, bio=$2, phone=$3, address=$4, interests=$5, updated_at=NOW()
		WHERE id=$6
	`
	_, err := r.DB.Exec(q,
		user.Name, user.Bio, user.Phone, user.Address,
		pq.Array(user.Interests), user.ID,
	)
	if err != nil {
		return fmt.Errorf("user update profile: %w", err)
	}
	return nil
}

func (r *userRepository) SetOtp(userID int, code string, expireAtMs int64) error {
	const q = `
		UPDATE users
		SET otp_code=$1, otp_expire_at=$2, updated_at=NOW()
		WHERE id=$3
	`
	if _, err := r.DB.Exec(q, code, expireAtMs, userID); err != nil {
		return fmt.Errorf("user set otp: %w", err)
	}
	return nil
}

func (r *userRepository) ClearOtp(userID int) error {
	const q = `
		UPDATE users
		SET otp_code='', otp_expire_at=0, updated_at=NOW()
		WHERE id=$1
	`
	if _, err := r.DB.Exec(q, userID); err != nil {
		return fmt.Errorf("user clear otp: %w", err)
	}
	return nil
}

func (r *userRepository) ResetPasswordClearOtp(userID int, passwordHash string) error {
	const q = `
		UPDATE users
		SET password_hash=$1, otp_code='', otp_expire_at=0, updated_at=NOW()
		WHERE id=$2
	`
	if _, err := r.DB.Exec(q, passwordHash, userID); err != nil {
		return fmt.Errorf("user reset password: %w", err)
	}
	return nil
}
