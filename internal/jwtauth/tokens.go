package jwtauth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/pancakehouse/backend/internal/models"
)

const (
	accessTTL  = 15 * time.Minute
	refreshTTL = 7 * 24 * time.Hour

	RoleUser  = "user"
	RoleAdmin = "admin"
)

type TokenService struct {
	DB            *gorm.DB
	JWTSecret     []byte
	RefreshSecret []byte
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
	AccessExp    time.Time
	RefreshExp   time.Time
}

func roleOf(user *models.User) string {
	if user.IsAdmin {
		return RoleAdmin
	}
	return RoleUser
}

func signAccessToken(userID uint, role string, secret []byte) (string, error) {
	exp := time.Now().Add(accessTTL)
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"exp":  exp.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

func signRefreshToken(userID uint, role string, secret []byte) (string, error) {
	exp := time.Now().Add(refreshTTL)
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"exp":  exp.Unix(),
		"typ":  "refresh",
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

func (t *TokenService) Issue(ctx context.Context, user *models.User) (*TokenPair, error) {
	role := roleOf(user)

	access, err := signAccessToken(user.ID, role, t.JWTSecret)
	if err != nil {
		return nil, err
	}
	refresh, err := signRefreshToken(user.ID, role, t.RefreshSecret)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	stored := models.RefreshToken{
		Token:     refresh,
		UserID:    user.ID,
		ExpiresAt: now.Add(refreshTTL).Unix(),
		Revoked:   false,
	}
	if err := t.DB.WithContext(ctx).Create(&stored).Error; err != nil {
		return nil, fmt.Errorf("save refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		AccessExp:    now.Add(accessTTL),
		RefreshExp:   now.Add(refreshTTL),
	}, nil
}

func (t *TokenService) validateRefresh(ctx context.Context, rawToken string) (jwt.MapClaims, error) {
	parsed, err := jwt.Parse(rawToken, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signature method: %v", tok.Header["alg"])
		}
		return t.RefreshSecret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("cannot parse claims")
	}
	if typ, ok := claims["typ"]; !ok || typ != "refresh" {
		return nil, errors.New("not a refresh token")
	}

	var stored models.RefreshToken
	if err := t.DB.WithContext(ctx).Where("token = ?", rawToken).First(&stored).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("refresh token not found")
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if stored.Revoked {
		return nil, errors.New("refresh token revoked")
	}
	if time.Now().Unix() > stored.ExpiresAt {
		return nil, errors.New("refresh token expired")
	}

	return claims, nil
}

// Rotate exchanges a valid refresh token for a new access/refresh pair.
func (t *TokenService) Rotate(ctx context.Context, rawRefresh string) (*TokenPair, error) {
	claims, err := t.validateRefresh(ctx, rawRefresh)
	if err != nil {
		return nil, err
	}

	userID := uint(claims["sub"].(float64))
	role, _ := claims["role"].(string)

	access, err := signAccessToken(userID, role, t.JWTSecret)
	if err != nil {
		return nil, err
	}
	refresh, err := signRefreshToken(userID, role, t.RefreshSecret)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	stored := models.RefreshToken{
		Token:     refresh,
		UserID:    userID,
		ExpiresAt: now.Add(refreshTTL).Unix(),
		Revoked:   false,
	}
	if err := t.DB.WithContext(ctx).Create(&stored).Error; err != nil {
		return nil, fmt.Errorf("save refresh token: %w", err)
	}

	if err := t.DB.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("token = ?", rawRefresh).
		Update("revoked", true).Error; err != nil {
		return nil, fmt.Errorf("revoke old refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		AccessExp:    now.Add(accessTTL),
		RefreshExp:   now.Add(refreshTTL),
	}, nil
}

func (t *TokenService) Revoke(ctx context.Context, rawRefresh string) error {
	return t.DB.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("token = ?", rawRefresh).
		Update("revoked", true).Error
}
