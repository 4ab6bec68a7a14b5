package service

import (
	"context"
	"errors"
	"time"

	"github.com/aargibay-evolmind/excusator-3000/internal/config"
	"github.com/aargibay-evolmind/excusator-3000/internal/dto"
	"github.com/aargibay-evolmind/excusator-3000/internal/model"
	"github.com/aargibay-evolmind/excusator-3000/internal/repository"
	"github.com/aargibay-evolmind/excusator-3000/internal/worker"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	// ErrEmailTaken maps to 409 on register.
	ErrEmailTaken = errors.New("Email already in use")
	// ErrInvalidCredentials maps to 401 on login. Same error for unknown
	// email and wrong password — no account probing.
	ErrInvalidCredentials = errors.New("Invalid credentials")
)

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.TokenResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenResponse, error)
	Me(ctx context.Context, userID uint) (*dto.MeResponse, error)
}

type authService struct {
	repo       repository.UserRepository
	cfg        *config.Config
	dispatcher *worker.Dispatcher
}

func NewAuthService(repo repository.UserRepository, cfg *config.Config, dispatcher *worker.Dispatcher) AuthService {
	return &authService{repo: repo, cfg: cfg, dispatcher: dispatcher}
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.TokenResponse, error) {
	existing, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		Roles:        []string{model.RoleUser},
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	// Welcome mail is best-effort: a full queue or downed redis must not
	// fail the registration.
	if s.dispatcher != nil {
		if err := s.dispatcher.EnqueueEmail(ctx, worker.WelcomeEmailPayload{ToEmail: user.Email}); err != nil {
			log.Warn().Err(err).Str("email", user.Email).Msg("failed to enqueue welcome email")
		}
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{Token: token, Email: user.Email}, nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{Token: token, Email: user.Email}, nil
}

func (s *authService) Me(ctx context.Context, userID uint) (*dto.MeResponse, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.MeResponse{ID: user.ID, Email: user.Email, Roles: user.Roles}, nil
}

func (s *authService) generateToken(user *model.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"roles":   user.Roles,
		"exp":     now.Add(time.Duration(s.cfg.JWTExpirationHours) * time.Hour).Unix(),
		"iat":     now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
