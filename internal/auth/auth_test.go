package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "0123456789abcdef-secret"

func signToken(t *testing.T, secret string, claims jwt.RegisteredClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestParseBearer(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{name: "missing", header: "", wantErr: ErrMissingCredentials},
		{name: "no scheme", header: "abc", wantErr: ErrMalformedCredentials},
		{name: "wrong scheme", header: "Basic abc", wantErr: ErrMalformedCredentials},
		{name: "empty token", header: "Bearer   ", wantErr: ErrMalformedCredentials},
		{name: "valid", header: "Bearer abc.def", want: "abc.def"},
		{name: "case insensitive", header: "bearer  abc ", want: "abc"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseBearer(tc.header)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) || !errors.Is(err, ErrUnauthorized) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestJWTVerifier(t *testing.T) {
	v, err := NewJWTVerifier(testSecret, "tour-auth")
	if err != nil {
		t.Fatalf("NewJWTVerifier error: %v", err)
	}
	future := jwt.NewNumericDate(time.Now().Add(time.Hour))
	past := jwt.NewNumericDate(time.Now().Add(-time.Hour))

	tests := []struct {
		name    string
		token   string
		wantUID string
	}{
		{
			name:    "valid",
			token:   signToken(t, testSecret, jwt.RegisteredClaims{Subject: "user-1", Issuer: "tour-auth", ExpiresAt: future}),
			wantUID: "user-1",
		},
		{name: "expired", token: signToken(t, testSecret, jwt.RegisteredClaims{Subject: "user-1", Issuer: "tour-auth", ExpiresAt: past})},
		{name: "wrong issuer", token: signToken(t, testSecret, jwt.RegisteredClaims{Subject: "user-1", Issuer: "other", ExpiresAt: future})},
		{name: "wrong secret", token: signToken(t, "another-secret-value-123", jwt.RegisteredClaims{Subject: "user-1", Issuer: "tour-auth"})},
		{name: "no subject", token: signToken(t, testSecret, jwt.RegisteredClaims{Issuer: "tour-auth"})},
		{name: "garbage", token: "not-a-jwt"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			claims, err := v.Verify(context.Background(), tc.token)
			if tc.wantUID == "" {
				if !errors.Is(err, ErrInvalidToken) || !errors.Is(err, ErrUnauthorized) {
					t.Fatalf("expected ErrInvalidToken, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if claims.UID != tc.wantUID {
				t.Fatalf("expected uid %q, got %q", tc.wantUID, claims.UID)
			}
		})
	}
}

func TestNewJWTVerifierRejectsShortSecret(t *testing.T) {
	if _, err := NewJWTVerifier("short", ""); err == nil {
		t.Fatal("expected error for short secret")
	}
}

func TestProviderInitializesOnce(t *testing.T) {
	calls := 0
	p := NewProvider(func() (Verifier, error) {
		calls++
		return NewJWTVerifier(testSecret, "")
	})

	token := signToken(t, testSecret, jwt.RegisteredClaims{Subject: "user-1"})
	for i := 0; i < 3; i++ {
		claims, err := p.Authenticate(context.Background(), "Bearer "+token)
		if err != nil {
			t.Fatalf("Authenticate error: %v", err)
		}
		if claims.UID != "user-1" {
			t.Fatalf("unexpected uid %q", claims.UID)
		}
	}
	if calls != 1 {
		t.Fatalf("expected one initialisation, got %d", calls)
	}
}

func TestProviderInitFailureIsNotUnauthorized(t *testing.T) {
	boom := errors.New("no secret configured")
	p := NewProvider(func() (Verifier, error) { return nil, boom })

	_, err := p.Authenticate(context.Background(), "Bearer abc")
	if !errors.Is(err, boom) {
		t.Fatalf("expected init error, got %v", err)
	}
	if errors.Is(err, ErrUnauthorized) {
		t.Fatal("init failure must not map to unauthorized")
	}
}

func TestProviderMissingHeader(t *testing.T) {
	p := NewProvider(func() (Verifier, error) { return NewJWTVerifier(testSecret, "") })

	_, err := p.Authenticate(context.Background(), "")
	if !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
}
