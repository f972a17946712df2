package service

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"github.com/SlavaShagalov/rental-booking/internal/models"
	pkgErrors "github.com/SlavaShagalov/rental-booking/internal/pkg/errors"
)

const tokenType = "Bearer"

var ErrEmptySecret = errors.New("jwt secret must not be empty")

type Claims struct {
	Role models.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 access tokens.
type TokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService refuses an empty secret: an HMAC key of zero bytes lets
// anyone sign tokens.
func NewTokenService(secret, issuer string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &TokenService{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

func (s *TokenService) Generate(user models.User) (models.TokenResponse, error) {
	now := s.now()
	claims := Claims{
		Role: user.Role(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(user.ID),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return models.TokenResponse{}, errors.Wrap(err, "sign token")
	}

	return models.TokenResponse{
		AccessToken: signed,
		TokenType:   tokenType,
		ExpiresIn:   int(s.ttl.Seconds()),
	}, nil
}

// Validate checks signature, issuer and expiry and returns the user id the
// token was issued to.
func (s *TokenService) Validate(tokenString string) (int, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(tokenString, &claims,
		func(*jwt.Token) (interface{}, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return 0, errors.Wrap(pkgErrors.ErrInvalidToken, err.Error())
	}

	userID, err := strconv.Atoi(claims.Subject)
	if err != nil {
		return 0, pkgErrors.ErrInvalidToken
	}

	return userID, nil
}
