package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"

	authDomain "github.com/allisson/credvault/internal/auth/domain"
	"github.com/allisson/credvault/internal/authz"
)

// Claims is the access token payload.
type Claims struct {
	UserID    string   `json:"id"`
	Username  string   `json:"username"`
	Role      string   `json:"role"`
	Divisions []string `json:"divisions"`
	OUs       []string `json:"OUs"`
	jwt.RegisteredClaims
}

type jwtTokenService struct {
	secret     []byte
	issuer     string
	expiration time.Duration
	now        func() time.Time
}

// NewTokenService creates an HS256 TokenService.
func NewTokenService(secret []byte, issuer string, expiration time.Duration) TokenService {
	return newTokenService(secret, issuer, expiration, time.Now)
}

func newTokenService(
	secret []byte,
	issuer string,
	expiration time.Duration,
	now func() time.Time,
) *jwtTokenService {
	return &jwtTokenService{secret: secret, issuer: issuer, expiration: expiration, now: now}
}

func (j *jwtTokenService) Issue(snapshot *authz.Snapshot) (string, time.Time, error) {
	if snapshot == nil {
		return "", time.Time{}, errors.New("snapshot is required")
	}
	role, err := snapshot.Role.MarshalText()
	if err != nil {
		return "", time.Time{}, err
	}

	// NumericDate has second precision; truncating keeps ExpiresAt equal to the encoded claim.
	now := j.now().UTC().Truncate(time.Second)
	expiresAt := now.Add(j.expiration)

	claims := Claims{
		UserID:    snapshot.UserID.String(),
		Username:  snapshot.Username,
		Role:      string(role),
		Divisions: snapshot.Divisions.Strings(),
		OUs:       snapshot.OUs.Strings(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.issuer,
			Subject:   snapshot.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        ulid.Make().String(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (j *jwtTokenService) Parse(token string) (*authz.Snapshot, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, authDomain.ErrMissingToken
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(
		token,
		&claims,
		func(*jwt.Token) (any, error) { return j.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(j.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return nil, authDomain.ErrInvalidToken
	}

	return claims.snapshot()
}

func (c *Claims) snapshot() (*authz.Snapshot, error) {
	if c.IssuedAt == nil || c.ExpiresAt == nil {
		return nil, authDomain.ErrInvalidToken
	}
	userID, err := authz.ParseRef(c.UserID)
	if err != nil {
		return nil, authDomain.ErrInvalidToken
	}
	role, err := authz.ParseRole(c.Role)
	if err != nil {
		return nil, authDomain.ErrInvalidToken
	}
	ous, err := authz.ParseRefs(c.OUs)
	if err != nil {
		return nil, authDomain.ErrInvalidToken
	}
	divisions, err := authz.ParseRefs(c.Divisions)
	if err != nil {
		return nil, authDomain.ErrInvalidToken
	}

	return &authz.Snapshot{
		UserID:    userID,
		Username:  c.Username,
		Role:      role,
		OUs:       ous,
		Divisions: divisions,
		IssuedAt:  c.IssuedAt.Time,
		ExpiresAt: c.ExpiresAt.Time,
	}, nil
}
