package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/denizatik/edutrack/internal/app/models"
)

func newTestJWTService() *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:     "test-secret",
		LoginTokenTTL: 30 * time.Minute,
		TokenIssuer:   "edutrack.test",
	})
}

func testUser() *models.User {
	return &models.User{
		ID:       42,
		Username: "mrs.yilmaz",
		RoleType: models.RoleTeacher,
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestJWTService()

	token, expiresIn, err := svc.GenerateToken(testUser(), 15*time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	if expiresIn != int((15 * time.Minute).Seconds()) {
		t.Errorf("expiresIn = %d, want %d", expiresIn, int((15*time.Minute).Seconds()))
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Username != "mrs.yilmaz" {
		t.Errorf("Username = %q, want %q", claims.Username, "mrs.yilmaz")
	}
	if claims.RoleType != string(models.RoleTeacher) {
		t.Errorf("RoleType = %q, want %q", claims.RoleType, models.RoleTeacher)
	}
	if claims.Issuer != "edutrack.test" {
		t.Errorf("Issuer = %q, want %q", claims.Issuer, "edutrack.test")
	}
}

func TestGenerateTokenDefaultTTL(t *testing.T) {
	svc := newTestJWTService()

	// A zero TTL falls back to the default validity window
	_, expiresIn, err := svc.GenerateToken(testUser(), 0)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	if expiresIn != int(DefaultTokenTTL.Seconds()) {
		t.Errorf("expiresIn = %d, want %d", expiresIn, int(DefaultTokenTTL.Seconds()))
	}
}

func TestGenerateTokenConfiguredTTL(t *testing.T) {
	svc := NewJWTService(JWTConfig{
		SecretKey: "test-secret",
		TokenTTL:  20 * time.Minute,
	})

	// The configured fallback wins over the compiled-in default
	_, expiresIn, err := svc.GenerateToken(testUser(), 0)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	if expiresIn != int((20 * time.Minute).Seconds()) {
		t.Errorf("expiresIn = %d, want %d", expiresIn, int((20*time.Minute).Seconds()))
	}

	// An explicit TTL still overrides both fallbacks
	_, expiresIn, err = svc.GenerateToken(testUser(), 5*time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	if expiresIn != int((5 * time.Minute).Seconds()) {
		t.Errorf("expiresIn = %d, want %d", expiresIn, int((5*time.Minute).Seconds()))
	}
}

func TestGenerateLoginTokenUsesConfiguredTTL(t *testing.T) {
	svc := newTestJWTService()

	_, expiresIn, err := svc.GenerateLoginToken(testUser())
	if err != nil {
		t.Fatalf("GenerateLoginToken() error = %v", err)
	}
	if expiresIn != int((30 * time.Minute).Seconds()) {
		t.Errorf("expiresIn = %d, want %d", expiresIn, int((30*time.Minute).Seconds()))
	}
}

func TestValidateTokenExpired(t *testing.T) {
	svc := newTestJWTService()

	token, _, err := svc.GenerateToken(testUser(), -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	// An expired token must be distinguishable from a malformed one
	if _, err := svc.ValidateToken(token); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("ValidateToken() error = %v, want ErrExpiredToken", err)
	}
}

func TestValidateTokenTampered(t *testing.T) {
	svc := newTestJWTService()

	token, _, err := svc.GenerateToken(testUser(), 15*time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	tampered := token[:len(token)-4] + "AAAA"
	if _, err := svc.ValidateToken(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("ValidateToken(tampered) error = %v, want ErrInvalidToken", err)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	svc := newTestJWTService()
	other := NewJWTService(JWTConfig{SecretKey: "other-secret", LoginTokenTTL: time.Hour})

	token, _, err := other.GenerateToken(testUser(), 15*time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if _, err := svc.ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("ValidateToken(wrong secret) error = %v, want ErrInvalidToken", err)
	}
}

func TestValidateAndExtractClaims(t *testing.T) {
	svc := newTestJWTService()

	if _, err := svc.ValidateAndExtractClaims(""); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("ValidateAndExtractClaims(\"\") error = %v, want ErrInvalidToken", err)
	}

	token, _, err := svc.GenerateToken(testUser(), 15*time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	claims, err := svc.ValidateAndExtractClaims(token)
	if err != nil {
		t.Fatalf("ValidateAndExtractClaims() error = %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{name: "empty header", header: "", wantErr: ErrInvalidFormat},
		{name: "missing prefix", header: "abc.def.ghi", wantErr: ErrInvalidFormat},
		{name: "wrong scheme", header: "Basic abc", wantErr: ErrInvalidFormat},
		{name: "valid", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractBearerToken(tt.header)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ExtractBearerToken() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ExtractBearerToken() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTokenIsWellFormedJWT(t *testing.T) {
	svc := newTestJWTService()

	token, _, err := svc.GenerateToken(testUser(), 15*time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	if parts := strings.Split(token, "."); len(parts) != 3 {
		t.Errorf("token has %d segments, want 3", len(parts))
	}
}
