package services

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"match-service/internal/models"
	"match-service/internal/uow"
	"match-service/pkg/apperr"
)

// AuthService registers members and issues tokens. The member id in the
// token's subject claim is the identity everything downstream trusts.
type AuthService struct {
	uowFactory uow.Factory
	jwtSecret  string
	jwtExpire  time.Duration
}

func NewAuthService(uowFactory uow.Factory, secret string, expire time.Duration) *AuthService {
	return &AuthService{
		uowFactory: uowFactory,
		jwtSecret:  secret,
		jwtExpire:  expire,
	}
}

// Register handles member registration
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.LoginResponse, error) {
	unit, err := s.uowFactory.New(ctx)
	if err != nil {
		return nil, err
	}
	defer unit.Rollback()

	existing, err := unit.Members().FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.New(apperr.Validation, "email is already taken")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	member := &models.Member{
		ID:          uuid.NewString(),
		Email:       req.Email,
		Password:    string(hashedPassword),
		DisplayName: req.DisplayName,
		City:        req.City,
		Country:     req.Country,
	}
	if err := unit.Members().Create(ctx, member); err != nil {
		return nil, apperr.Wrap(apperr.Persistence, "failed to register", err)
	}

	if err := unit.Complete(ctx); err != nil {
		return nil, err
	}

	return s.loginResponse(member)
}

// Login handles member authentication
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	unit, err := s.uowFactory.New(ctx)
	if err != nil {
		return nil, err
	}
	defer unit.Rollback()

	member, err := unit.Members().FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, apperr.New(apperr.Validation, "invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.Password), []byte(req.Password)); err != nil {
		return nil, apperr.New(apperr.Validation, "invalid credentials")
	}

	return s.loginResponse(member)
}

func (s *AuthService) loginResponse(member *models.Member) (*models.LoginResponse, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   member.ID,
		"email": member.Email,
		"exp":   time.Now().Add(s.jwtExpire).Unix(),
	})

	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}

	return &models.LoginResponse{
		Token:  tokenString,
		Member: member.ToResponse(),
	}, nil
}
