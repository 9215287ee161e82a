package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/carpediction/server/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ErrBadCredentials covers both unknown email and wrong password, so the
// login response never reveals which one failed.
var ErrBadCredentials = errors.New("invalid email or password")

// Registration is the validated input to Register.
type Registration struct {
	Username     string
	Email        string
	Password     string
	PasswordConf string
}

// ValidationErrors maps field names to human-readable messages.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string { return "validation failed" }

// Service owns registration and login.
type Service struct {
	store Store
	log   *zap.Logger
}

// NewService builds the user service.
func NewService(store Store, log *zap.Logger) *Service {
	return &Service{store: store, log: log.Named("user")}
}

func validate(reg Registration) ValidationErrors {
	errs := ValidationErrors{}
	if len(reg.Username) < 2 {
		errs["userName"] = "Username must be at least 2 characters."
	}
	if !strings.Contains(reg.Email, "@") || strings.HasPrefix(reg.Email, "@") || strings.HasSuffix(reg.Email, "@") {
		errs["email"] = "A valid email is required."
	}
	if len(reg.Password) < 8 {
		errs["password"] = "Password must be at least 8 characters."
	}
	if reg.Password != reg.PasswordConf {
		errs["passwordConf"] = "Passwords must match."
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Register validates the input, hashes the password, and persists the new
// user. Returns ValidationErrors or ErrEmailTaken on rejection.
func (s *Service) Register(ctx context.Context, reg Registration) (*models.UserModel, error) {
	reg.Username = strings.TrimSpace(reg.Username)
	reg.Email = strings.ToLower(strings.TrimSpace(reg.Email))
	if errs := validate(reg); errs != nil {
		return nil, errs
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	rec := &models.UserModel{
		ID:        primitive.NewObjectID(),
		Username:  reg.Username,
		Email:     reg.Email,
		Password:  string(hash),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.Insert(ctx, rec); err != nil {
		return nil, err
	}
	s.log.Info("user registered", zap.String("username", rec.Username))
	return rec, nil
}

// Login verifies the email/password pair.
func (s *Service) Login(ctx context.Context, email, password string) (*models.UserModel, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	rec, err := s.store.ByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrBadCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(rec.Password), []byte(password)) != nil {
		return nil, ErrBadCredentials
	}
	return rec, nil
}
