package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/seu-repo/sigep-parking/internal/domain"
	"github.com/seu-repo/sigep-parking/internal/ports"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

type Service struct {
	userRepo  ports.UserRepository
	cache     ports.Cache
	jwtSecret []byte
	log       *zap.Logger
}

func NewService(userRepo ports.UserRepository, cache ports.Cache, jwtSecret string, log *zap.Logger) ports.AuthService {
	return &Service{
		userRepo:  userRepo,
		cache:     cache,
		jwtSecret: []byte(jwtSecret),
		log:       log,
	}
}

func (s *Service) Login(ctx context.Context, email, password string) (string, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil || user == nil {
		return "", "", errors.New("invalid credentials")
	}
	if !user.Active {
		return "", "", errors.New("user deactivated")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", "", errors.New("invalid credentials")
	}

	// A fresh login supersedes any earlier logout revocation.
	if s.cache != nil {
		if err := s.cache.Delete(ctx, "auth:revoked:"+user.ID); err != nil {
			s.log.Warn("failed to clear revocation mark", zap.Error(err))
		}
	}

	return s.generateTokens(user)
}

func (s *Service) Register(ctx context.Context, user *domain.User) error {
	if existing, err := s.userRepo.FindByEmail(ctx, user.Email); err != nil {
		return err
	} else if existing != nil {
		return domain.ErrDuplicateEmail
	}
	if existing, err := s.userRepo.FindByDocument(ctx, user.Document); err != nil {
		return err
	} else if existing != nil {
		return domain.ErrDuplicateDocument
	}

	hashedPwd, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.Password = string(hashedPwd)
	user.Active = true
	if user.Role == "" {
		user.Role = domain.UserRoleOperator
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	return s.userRepo.Save(ctx, user)
}

// ToggleActive flips the active flag of the user holding the document. A
// deactivated user keeps the record but can no longer log in or refresh.
func (s *Service) ToggleActive(ctx context.Context, document string) (*domain.User, error) {
	user, err := s.userRepo.FindByDocument(ctx, document)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	user.Active = !user.Active
	user.UpdatedAt = time.Now()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	// Deactivation revokes outstanding access tokens; reactivation clears
	// the mark so a fresh login is not rejected by a stale entry.
	if s.cache != nil {
		if user.Active {
			if err := s.cache.Delete(ctx, "auth:revoked:"+user.ID); err != nil {
				s.log.Warn("failed to clear revocation mark", zap.Error(err))
			}
		} else {
			if err := s.cache.Set(ctx, "auth:revoked:"+user.ID, "1", accessTokenTTL); err != nil {
				s.log.Warn("failed to set revocation mark", zap.Error(err))
			}
		}
	}
	return user, nil
}

// Logout revokes the user's outstanding access tokens. The mark lives as long
// as the longest-lived token could.
func (s *Service) Logout(ctx context.Context, userID string) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Set(ctx, "auth:revoked:"+userID, "1", accessTokenTTL)
}

func (s *Service) SetRole(ctx context.Context, document string, role domain.UserRole) (*domain.User, error) {
	user, err := s.userRepo.FindByDocument(ctx, document)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	user.Role = role
	user.UpdatedAt = time.Now()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid refresh token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid token claims")
	}
	if t, _ := claims["type"].(string); t != "refresh" {
		return "", errors.New("not a refresh token")
	}
	userID, ok := claims["sub"].(string)
	if !ok {
		return "", errors.New("invalid user id in token")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil || user == nil {
		return "", errors.New("user not found")
	}
	if !user.Active {
		return "", errors.New("user deactivated")
	}

	return s.generateAccessToken(user)
}

func (s *Service) ValidateToken(ctx context.Context, tokenStr string) (*domain.User, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	userID, ok := claims["sub"].(string)
	if !ok {
		return nil, errors.New("invalid sub")
	}

	// A revoked mark in the cache invalidates the token before expiry.
	if s.cache != nil {
		if _, err := s.cache.Get(ctx, "auth:revoked:"+userID); err == nil {
			return nil, errors.New("token revoked")
		}
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}
	if !user.Active {
		return nil, errors.New("user deactivated")
	}
	return user, nil
}

func (s *Service) generateTokens(user *domain.User) (string, string, error) {
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return "", "", err
	}

	refreshToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.ID,
		"exp":  time.Now().Add(refreshTokenTTL).Unix(),
		"type": "refresh",
	})
	refreshTokenStr, err := refreshToken.SignedString(s.jwtSecret)
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshTokenStr, nil
}

func (s *Service) generateAccessToken(user *domain.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"exp":  time.Now().Add(accessTokenTTL).Unix(),
		"type": "access",
	})
	return token.SignedString(s.jwtSecret)
}
