package service

import (
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/campus-ops/reservation-console/internal/models"
	"github.com/campus-ops/reservation-console/pkg/config"
	appErrors "github.com/campus-ops/reservation-console/pkg/errors"
)

// AuthService validates access tokens issued by the upstream auth service.
// The console never issues or refreshes tokens itself.
type AuthService struct {
	cfg    config.JWTConfig
	logger *zap.Logger
}

// NewAuthService constructs the validator.
func NewAuthService(cfg config.JWTConfig, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{cfg: cfg, logger: logger}
}

// ValidateToken parses and verifies a bearer token and returns its claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	if tokenString == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "missing token")
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if s.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.cfg.Issuer))
	}
	for _, aud := range s.cfg.Audience {
		opts = append(opts, jwt.WithAudience(aud))
	}

	claims := &models.JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.Secret), nil
	}, opts...)
	if err != nil {
		s.logger.Debug("token rejected", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}
	if !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token")
	}
	return claims, nil
}
