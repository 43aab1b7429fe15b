package services

import (
	"context"
	"time"

	"github.com/souma9830/travel-agency-website/internal/models"
	"github.com/souma9830/travel-agency-website/internal/repositories"
)

// fakeUserRepo is an in-memory stand-in for the postgres-backed repository.
type fakeUserRepo struct {
	nextID    int
	byEmail   map[string]*models.User
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, byEmail: map[string]*models.User{}}
}

func (r *fakeUserRepo) Create(user *models.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	if _, ok := r.byEmail[user.Email]; ok {
		return repositories.ErrEmailTaken
	}
	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	r.byEmail[user.Email] = &cp
	return nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByID(id int) (*models.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) UpdateProfile(user *models.User) error {
	stored := r.mustByID(user.ID)
	stored.Name = user.Name
	stored.Bio = user.Bio
	stored.Phone = user.Phone
	stored.Address = user.Address
	stored.Interests = user.Interests
	stored.UpdatedAt = time.Now()
	return nil
}

func (r *fakeUserRepo) SetOtp(userID int, code string, expireAtMs int64) error {
	stored := r.mustByID(userID)
	stored.OtpCode = code
	stored.OtpExpireAt = expireAtMs
	return nil
}

func (r *fakeUserRepo) ClearOtp(userID int) error {
	stored := r.mustByID(userID)
	stored.OtpCode = ""
	stored.OtpExpireAt = 0
	return nil
}

func (r *fakeUserRepo) ResetPasswordClearOtp(userID int, passwordHash string) error {
	stored := r.mustByID(userID)
	stored.PasswordHash = passwordHash
	stored.OtpCode = ""
	stored.OtpExpireAt = 0
	return nil
}

func (r *fakeUserRepo) mustByID(id int) *models.User {
	for _, u := range r.byEmail {
		if u.ID == id {
			return u
		}
	}
	panic("fakeUserRepo: unknown user id")
}

// fakeStateRepo records saved nonces in memory.
type fakeStateRepo struct {
	saved map[string]bool
}

func newFakeStateRepo() *fakeStateRepo {
	return &fakeStateRepo{saved: map[string]bool{}}
}

func (r *fakeStateRepo) Save(_ context.Context, state string, _ time.Duration) error {
	r.saved[state] = true
	return nil
}

func (r *fakeStateRepo) Consume(_ context.Context, state string) error {
	if !r.saved[state] {
		return repositories.ErrStateNotFound
	}
	delete(r.saved, state)
	return nil
}
