package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	ClaimEmail     = "email"
	ClaimRole      = "role"
	ClaimGroupCode = "group_code"
)

var ErrEmptySecret = errors.New("token secret is empty")

type Claims struct {
	UserID    int64
	Email     string
	Role      string
	GroupCode string
}

// Issuer signs HS256 access tokens. The same secret verifies them in the
// HTTP middleware.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) (*Issuer, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Issuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

func (i *Issuer) Issue(claims Claims) (string, time.Time, error) {
	issuedAt := i.now().UTC()
	expiresAt := issuedAt.Add(i.ttl)

	mapClaims := jwt.MapClaims{
		"sub":          strconv.FormatInt(claims.UserID, 10),
		"jti":          uuid.NewString(),
		"iat":          issuedAt.Unix(),
		"exp":          expiresAt.Unix(),
		ClaimEmail:     claims.Email,
		ClaimRole:      claims.Role,
		ClaimGroupCode: claims.GroupCode,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, mapClaims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Parse verifies a token signed by this issuer.
func (i *Issuer) Parse(raw string) (Claims, error) {
	parsed, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(i.now))
	if err != nil {
		return Claims{}, err
	}
	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, errors.New("unexpected claims type")
	}
	return FromMap(mapClaims)
}

// FromMap reads claims produced by Issue from a decoded claim set.
func FromMap(values map[string]interface{}) (Claims, error) {
	sub, _ := values["sub"].(string)
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil || userID <= 0 {
		return Claims{}, fmt.Errorf("invalid subject %q", sub)
	}

	claims := Claims{UserID: userID}
	claims.Email, _ = values[ClaimEmail].(string)
	claims.Role, _ = values[ClaimRole].(string)
	claims.GroupCode, _ = values[ClaimGroupCode].(string)
	return claims, nil
}
