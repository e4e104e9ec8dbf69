package services

import (
	"context"
	"errors"
	"time"

	"staffsync/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for a bad email/password pair or a
// deactivated account; callers must not tell the two apart.
var ErrInvalidCredentials = errors.New("invalid credentials")

// TokenResponse is the login payload.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (*TokenResponse, error)
}

type authService struct {
	employeeRepo repositories.EmployeeRepository
	jwtSecret    []byte
	tokenTTL     time.Duration
}

func NewAuthService(employeeRepo repositories.EmployeeRepository, jwtSecret string, tokenTTL time.Duration) AuthService {
	return &authService{
		employeeRepo: employeeRepo,
		jwtSecret:    []byte(jwtSecret),
		tokenTTL:     tokenTTL,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (*TokenResponse, error) {
	employee, err := s.employeeRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !employee.Active {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    "staffsync",
		Subject:   employee.ID.String(),
		Audience:  jwt.ClaimStrings{"staffsync-api"},
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &TokenResponse{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   int(s.tokenTTL.Seconds()),
	}, nil
}

// HashPassword is used by seeding and account creation.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
