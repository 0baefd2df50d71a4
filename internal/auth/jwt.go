package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretLength is the shortest accepted HMAC secret.
const MinSecretLength = 16

// JWTVerifier validates HS256 tokens signed with a shared secret.
type JWTVerifier struct {
	secret []byte
	parser *jwt.Parser
}

// NewJWTVerifier configures a verifier. An empty issuer disables the
// issuer check.
func NewJWTVerifier(secret, issuer string) (*JWTVerifier, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("jwt secret must be at least %d characters", MinSecretLength)
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(30 * time.Second),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}

	return &JWTVerifier{
		secret: []byte(secret),
		parser: jwt.NewParser(opts...),
	}, nil
}

// Verify parses the token and returns its subject as the caller UID.
func (v *JWTVerifier) Verify(ctx context.Context, token string) (Claims, error) {
	if err := ctx.Err(); err != nil {
		return Claims{}, err
	}

	var claims jwt.RegisteredClaims
	_, err := v.parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, errors.New("token has no subject"))
	}

	return Claims{UID: claims.Subject}, nil
}
