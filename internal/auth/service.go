// Package auth implements the mock identity provider and the route-access
// guard. It simulates session issuance against a local key-value store; it is
// a demo system, not production authentication.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"callme/internal/models"
)

const (
	usersKey   = "callme-users"
	sessionKey = "callme-auth"

	authDelay    = 800 * time.Millisecond
	profileDelay = 500 * time.Millisecond
)

var (
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrEmailTaken         = errors.New("User with this email already exists")
	ErrNotAuthenticated   = errors.New("Not authenticated")
)

// Service simulates login/registration/profile-update against records held in
// the injected store. Credentials are compared in plaintext; the artificial
// delays imitate a round trip to a real backend.
type Service struct {
	store        Store
	authDelay    time.Duration
	profileDelay time.Duration
	now          func() time.Time
	mu           sync.Mutex
}

// NewService creates an identity service over the given store.
func NewService(store Store) *Service {
	return &Service{
		store:        store,
		authDelay:    authDelay,
		profileDelay: profileDelay,
		now:          time.Now,
	}
}

// Login matches email and password against the user directory, seeding the
// demo user into an empty directory first. On success the session record is
// written as a side effect.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, error) {
	if err := s.pause(ctx, s.authDelay); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers()
	if err != nil {
		return nil, err
	}
	users, err = s.seedDemoUser(users)
	if err != nil {
		return nil, err
	}

	for _, u := range users {
		if u.Email == email && u.Password == password {
			user := u.Profile()
			if err := s.writeSession(user); err != nil {
				return nil, err
			}
			return &user, nil
		}
	}
	return nil, ErrInvalidCredentials
}

// Register adds a new directory entry and logs the user in. Fails when the
// email is already taken.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	if err := s.pause(ctx, s.authDelay); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers()
	if err != nil {
		return nil, err
	}
	users, err = s.seedDemoUser(users)
	if err != nil {
		return nil, err
	}

	for _, u := range users {
		if u.Email == req.Email {
			return nil, ErrEmailTaken
		}
	}

	record := models.StoredUser{
		ID:        uuid.NewString(),
		Email:     req.Email,
		Password:  req.Password,
		Name:      req.Name,
		CreatedAt: s.now(),
	}
	if err := s.saveUsers(append(users, record)); err != nil {
		return nil, err
	}

	user := record.Profile()
	if err := s.writeSession(user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout removes the session record.
func (s *Service) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Delete(sessionKey)
}

// CurrentUser returns the session's user, or ErrNotAuthenticated.
func (s *Service) CurrentUser() (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentUser()
}

// UpdateProfile patches the session user's name/avatar, mirroring the change
// into the directory entry.
func (s *Service) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (*models.User, error) {
	if err := s.pause(ctx, s.profileDelay); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.currentUser()
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}

	if err := s.writeSession(*user); err != nil {
		return nil, err
	}

	users, err := s.loadUsers()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == user.ID {
			users[i].Name = user.Name
			users[i].Avatar = user.Avatar
			if err := s.saveUsers(users); err != nil {
				return nil, err
			}
			break
		}
	}
	return user, nil
}

func (s *Service) currentUser() (*models.User, error) {
	raw, err := s.store.Get(sessionKey)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrNotAuthenticated
	}
	if err != nil {
		return nil, err
	}
	var session models.SessionRecord
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, ErrNotAuthenticated
	}
	return &session.User, nil
}

func (s *Service) loadUsers() ([]models.StoredUser, error) {
	raw, err := s.store.Get(usersKey)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var users []models.StoredUser
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, fmt.Errorf("corrupt user directory: %w", err)
	}
	return users, nil
}

func (s *Service) saveUsers(users []models.StoredUser) error {
	raw, err := json.Marshal(users)
	if err != nil {
		return err
	}
	return s.store.Set(usersKey, raw)
}

// seedDemoUser writes the demo account into an empty directory so a fresh
// install can log in immediately.
func (s *Service) seedDemoUser(users []models.StoredUser) ([]models.StoredUser, error) {
	if len(users) > 0 {
		return users, nil
	}
	users = []models.StoredUser{{
		ID:        "1",
		Email:     "demo@example.com",
		Password:  "demo123",
		Name:      "Demo User",
		CreatedAt: s.now(),
	}}
	if err := s.saveUsers(users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Service) writeSession(user models.User) error {
	raw, err := json.Marshal(models.SessionRecord{User: user})
	if err != nil {
		return err
	}
	return s.store.Set(sessionKey, raw)
}

// pause simulates backend latency, honoring context cancellation.
func (s *Service) pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
