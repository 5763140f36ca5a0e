// Package services provides technical concerns shared by the HTTP layer, such as staff tokens
package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/amirphl/ppp-rental/utils"
	"github.com/golang-jwt/jwt/v5"
)

// Token service error constants
var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("invalid token")
	ErrUnknownRole  = errors.New("unknown role")
)

var staffRoles = []string{utils.RoleAdmin, utils.RoleKierownik, utils.RoleEmployee}

// TokenService issues and validates staff access tokens
type TokenService interface {
	GenerateToken(userID, name, role string) (string, error)
	ValidateToken(token string) (*StaffClaims, error)
}

// StaffClaims are the facts a staff token carries
type StaffClaims struct {
	UserID    string    `json:"sub"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	TokenID   string    `json:"jti"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// TokenServiceImpl implements TokenService with HS256 tokens
type TokenServiceImpl struct {
	accessTokenTTL time.Duration
	secretKey      []byte
	issuer         string
	audience       string
	now            func() time.Time
}

// NewTokenService creates a new token service
func NewTokenService(accessTokenTTL time.Duration, issuer, audience, secretKey string) (TokenService, error) {
	if secretKey == "" {
		return nil, fmt.Errorf("secret key is required")
	}
	if accessTokenTTL <= 0 {
		accessTokenTTL = utils.AccessTokenTTL
	}
	return &TokenServiceImpl{
		accessTokenTTL: accessTokenTTL,
		secretKey:      []byte(secretKey),
		issuer:         issuer,
		audience:       audience,
		now:            utils.UTCNow,
	}, nil
}

// GenerateToken signs an access token for a staff member with one of the known roles
func (s *TokenServiceImpl) GenerateToken(userID, name, role string) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("user id is required")
	}
	if !slices.Contains(staffRoles, role) {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}

	tokenID, err := generateTokenID()
	if err != nil {
		return "", err
	}

	now := s.now()
	claims := jwt.MapClaims{
		"sub":  userID,
		"name": name,
		"role": role,
		"jti":  tokenID,
		"iat":  now.Unix(),
		"exp":  now.Add(s.accessTokenTTL).Unix(),
		"iss":  s.issuer,
		"aud":  s.audience,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secretKey)
}

// ValidateToken validates a JWT token and returns claims
func (s *TokenServiceImpl) ValidateToken(token string) (*StaffClaims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}
	if s.audience != "" {
		opts = append(opts, jwt.WithAudience(s.audience))
	}

	parsedToken, err := jwt.Parse(token, func(*jwt.Token) (any, error) {
		return s.secretKey, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !parsedToken.Valid {
		return nil, ErrTokenInvalid
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrTokenInvalid
	}

	userID, err := claims.GetSubject()
	if err != nil || userID == "" {
		return nil, ErrTokenInvalid
	}
	role, ok := claims["role"].(string)
	if !ok || !slices.Contains(staffRoles, role) {
		return nil, ErrTokenInvalid
	}
	tokenID, ok := claims["jti"].(string)
	if !ok {
		return nil, ErrTokenInvalid
	}
	name, _ := claims["name"].(string)

	issuedAt, err := claims.GetIssuedAt()
	if err != nil || issuedAt == nil {
		return nil, ErrTokenInvalid
	}
	expiresAt, err := claims.GetExpirationTime()
	if err != nil || expiresAt == nil {
		return nil, ErrTokenInvalid
	}

	return &StaffClaims{
		UserID:    userID,
		Name:      name,
		Role:      role,
		TokenID:   tokenID,
		IssuedAt:  issuedAt.Time,
		ExpiresAt: expiresAt.Time,
	}, nil
}

// generateTokenID generates a unique token ID
func generateTokenID() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", bytes), nil
}
