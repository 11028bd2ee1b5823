package services

import (
	"errors"
	"jafa-app/models"
	"jafa-app/repositories"
	"jafa-app/validation"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type UserService struct {
	repo       *repositories.UserRepository
	secret     []byte
	expiration time.Duration
	now        func() time.Time
	log        *zap.Logger
}

func NewUserService(repo *repositories.UserRepository, secret string, expiration time.Duration, now func() time.Time, log *zap.Logger) *UserService {
	return &UserService{repo: repo, secret: []byte(secret), expiration: expiration, now: now, log: log}
}

type LoginResult struct {
	AccessToken string       `json:"access_token"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        *models.User `json:"user"`
}

// Login checks the password and issues an HS256 access token.
func (s *UserService) Login(in LoginInput) (*LoginResult, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	user, err := s.repo.GetByUsername(in.Username)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	expiresAt := now.Add(s.expiration)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"iat":      now.Unix(),
		"exp":      expiresAt.Unix(),
		"jti":      uuid.NewString(),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, err
	}

	if err := s.repo.TouchLastLogin(user.ID, now); err != nil {
		s.log.Warn("Could not record last login", zap.Uint("user_id", user.ID), zap.Error(err))
	}
	return &LoginResult{AccessToken: signed, ExpiresAt: expiresAt, User: user}, nil
}

func (s *UserService) GetUserByID(id uint) (*models.User, error) {
	return s.repo.GetByID(id)
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}
