// file: internals/features/users/auth/controller/auth_controller.go
package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"edupro_backend/internals/configs"
	dto "edupro_backend/internals/features/users/auth/dto"
	model "edupro_backend/internals/features/users/user/model"
	helper "edupro_backend/internals/helpers"
)

const (
	accessTokenTTL  = 24 * time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

type AuthController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewAuthController(db *gorm.DB, v *validator.Validate) *AuthController {
	if v == nil {
		v = validator.New()
	}
	return &AuthController{DB: db, Validator: v}
}

// fieldErrors flattens validator output into the field → messages shape of
// the validation envelope.
func fieldErrors(err error) map[string][]string {
	out := map[string][]string{}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			field := strings.ToLower(fe.Field())
			out[field] = append(out[field], "failed the '"+fe.Tag()+"' rule")
		}
		return out
	}
	out["body"] = []string{err.Error()}
	return out
}

/* ============================================
   REGISTER
   POST /auth/register
============================================ */

func (ctl *AuthController) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, fieldErrors(err))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "operation failed")
	}

	user := model.UserModel{
		UserName:     req.Name,
		UserEmail:    req.Email,
		UserPassword: string(hash),
		UserRole:     req.Role,
	}
	if err := ctl.DB.Create(&user).Error; err != nil {
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "uq_users_email") || strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique") {
			return helper.JsonError(c, fiber.StatusConflict, "Email is already registered")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "operation failed")
	}

	return helper.JsonCreated(c, "Account created", dto.FromUserModel(&user))
}

/* ============================================
   LOGIN
   POST /auth/login
============================================ */

func (ctl *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, fieldErrors(err))
	}

	var user model.UserModel
	if err := ctl.DB.Where("user_email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid email or password")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "operation failed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.UserPassword), []byte(req.Password)); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid email or password")
	}

	resp, err := tokenPair(&user)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "operation failed")
	}
	return helper.JsonOK(c, "Logged in", resp)
}

/* ============================================
   REFRESH
   POST /auth/refresh
============================================ */

// Refresh trades a valid refresh token for a new token pair. The user row is
// re-read so a role change or removal takes effect on rotation.
func (ctl *AuthController) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, fieldErrors(err))
	}

	tok, err := jwt.Parse(req.RefreshToken, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(configs.JWTRefreshSecret), nil
	})
	if err != nil || !tok.Valid {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid refresh token")
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok || claims["typ"] != "refresh" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid refresh token")
	}
	sub, _ := claims["sub"].(string)
	uid, err := uuid.Parse(strings.TrimSpace(sub))
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid refresh token")
	}

	var user model.UserModel
	if err := ctl.DB.Where("user_id = ?", uid).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid refresh token")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "operation failed")
	}

	resp, err := tokenPair(&user)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "operation failed")
	}
	return helper.JsonOK(c, "Token refreshed", resp)
}

/* ============================================
   token helpers
============================================ */

func tokenPair(u *model.UserModel) (dto.AuthResponse, error) {
	access, err := signAccessToken(u)
	if err != nil {
		return dto.AuthResponse{}, err
	}
	refresh, err := signRefreshToken(u)
	if err != nil {
		return dto.AuthResponse{}, err
	}
	return dto.AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         dto.FromUserModel(u),
	}, nil
}

func signAccessToken(u *model.UserModel) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  u.UserID.String(),
		"role": u.UserRole,
		"iat":  now.Unix(),
		"exp":  now.Add(accessTokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(configs.JWTSecret))
}

func signRefreshToken(u *model.UserModel) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": u.UserID.String(),
		"typ": "refresh",
		"iat": now.Unix(),
		"exp": now.Add(refreshTokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(configs.JWTRefreshSecret))
}
