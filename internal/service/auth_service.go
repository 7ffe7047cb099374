package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"veloxtrade/internal/domain"
	"veloxtrade/internal/middleware"
)

// AuthService manages the user directory and session issuance
type AuthService struct {
	userRepo      domain.UserRepository
	trialDays     int
	autoProvision bool
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo domain.UserRepository, trialDays int, autoProvision bool) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		trialDays:     trialDays,
		autoProvision: autoProvision,
	}
}

// RegisterInput carries the fields collected at signup
type RegisterInput struct {
	Name              string
	Email             string
	Password          string
	Phone             string
	Broker            string
	TradingExperience string
}

// Register creates a new trial user and logs them in. Returns
// domain.ErrEmailExists when the email is already in the directory.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, "", domain.ErrInvalidCredentials
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, "", domain.ErrEmailExists
	}

	user, err := s.createUser(ctx, input.Name, email, input.Password)
	if err != nil {
		return nil, "", err
	}
	user.Phone = input.Phone
	user.Broker = input.Broker
	user.TradingExperience = input.TradingExperience
	if input.Phone != "" || input.Broker != "" || input.TradingExperience != "" {
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, "", err
		}
	}

	token, err := middleware.GenerateJWT(user.ID, user.SubscriptionStatus)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	log.Printf("[OK] Registered user %s (%s)", user.ID, user.Email)
	return user, token, nil
}

// Login verifies credentials and issues a session token. An unknown email
// auto-provisions a trial account when the service is configured to allow it.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		if !s.autoProvision {
			return nil, "", domain.ErrInvalidCredentials
		}

		// Legacy dashboard behavior: a login with an unseen email
		// creates a trial account on the spot.
		user, err = s.createUser(ctx, "", email, password)
		if err != nil {
			return nil, "", err
		}
		log.Printf("[OK] Auto-provisioned trial user for %s", email)
	} else if err != nil {
		return nil, "", err
	} else {
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
			return nil, "", domain.ErrInvalidCredentials
		}
	}

	token, err := middleware.GenerateJWT(user.ID, user.SubscriptionStatus)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return user, token, nil
}

// CurrentUser returns the directory entry for a session's user
func (s *AuthService) CurrentUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// UpdateProfile merges the provided fields into the user's directory entry
func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, update domain.ProfileUpdate) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Phone != nil {
		user.Phone = *update.Phone
	}
	if update.Broker != nil {
		user.Broker = *update.Broker
	}
	if update.TradingExperience != nil {
		user.TradingExperience = *update.TradingExperience
	}
	if update.Password != nil && *update.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*update.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(hashed)
	}
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ExpireTrials downgrades trial accounts that have outlived their trial
// window. Returns the number of accounts downgraded.
func (s *AuthService) ExpireTrials(ctx context.Context) (int, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	expired := 0
	for _, user := range users {
		if !user.TrialExpired(now) {
			continue
		}
		user.SubscriptionStatus = domain.SubscriptionExpired
		user.UpdatedAt = now
		if err := s.userRepo.Update(ctx, user); err != nil {
			log.Printf("ERROR: Failed to expire trial for user %s: %v", user.ID, err)
			continue
		}
		expired++
		log.Printf("[OK] Trial expired for user %s (%s)", user.ID, user.Email)
	}
	return expired, nil
}

func (s *AuthService) createUser(ctx context.Context, name, email, password string) (*domain.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:                 uuid.New(),
		Name:               name,
		Email:              email,
		PasswordHash:       string(hashed),
		SubscriptionStatus: domain.SubscriptionTrial,
		TrialDays:          s.trialDays,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
