// file: internals/features/users/auth/controller/auth_controller_test.go
package controller

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"edupro_backend/internals/configs"
	dto "edupro_backend/internals/features/users/auth/dto"
	model "edupro_backend/internals/features/users/user/model"
)

func TestFieldErrorsNamesFailingFields(t *testing.T) {
	v := validator.New()
	req := dto.RegisterRequest{
		Name:     "Rahim",
		Email:    "not-an-email",
		Password: "short",
		Role:     "teacher",
	}

	err := v.Struct(req)
	if err == nil {
		t.Fatal("expected validation to fail")
	}

	got := fieldErrors(err)
	if _, ok := got["email"]; !ok {
		t.Fatalf("fieldErrors missing 'email': %v", got)
	}
	if _, ok := got["password"]; !ok {
		t.Fatalf("fieldErrors missing 'password': %v", got)
	}
	if _, ok := got["name"]; ok {
		t.Fatalf("fieldErrors flags passing field 'name': %v", got)
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	configs.JWTRefreshSecret = "test-refresh-secret"

	user := &model.UserModel{UserID: uuid.New(), UserRole: "teacher"}
	signed, err := signRefreshToken(user)
	if err != nil {
		t.Fatalf("signRefreshToken: %v", err)
	}

	tok, err := jwt.Parse(signed, func(t *jwt.Token) (any, error) {
		return []byte(configs.JWTRefreshSecret), nil
	})
	if err != nil || !tok.Valid {
		t.Fatalf("parse: err=%v valid=%v", err, tok != nil && tok.Valid)
	}

	claims := tok.Claims.(jwt.MapClaims)
	if claims["typ"] != "refresh" {
		t.Fatalf("typ = %v, want refresh", claims["typ"])
	}
	if claims["sub"] != user.UserID.String() {
		t.Fatalf("sub = %v, want %s", claims["sub"], user.UserID)
	}
}

// An access token presented to the refresh endpoint must not pass the typ
// check even though both tokens are HMAC-signed.
func TestAccessTokenIsNotARefreshToken(t *testing.T) {
	configs.JWTSecret = "test-access-secret"

	user := &model.UserModel{UserID: uuid.New(), UserRole: "admin"}
	signed, err := signAccessToken(user)
	if err != nil {
		t.Fatalf("signAccessToken: %v", err)
	}

	tok, err := jwt.Parse(signed, func(t *jwt.Token) (any, error) {
		return []byte(configs.JWTSecret), nil
	})
	if err != nil || !tok.Valid {
		t.Fatalf("parse: %v", err)
	}
	claims := tok.Claims.(jwt.MapClaims)
	if claims["typ"] == "refresh" {
		t.Fatal("access token carries the refresh typ claim")
	}
}
