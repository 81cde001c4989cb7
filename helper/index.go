package helper

import (
	"cinema_booking/config"
	"cinema_booking/model"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenTTL  = time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

func jwtSecret() []byte {
	return []byte(config.Config("JWT_SECRET"))
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func GenerateAccessToken(tokenClaim model.TokenClaim) (string, error) {
	return signToken(tokenClaim, accessTokenTTL)
}

func GenerateRefreshToken(tokenClaim model.TokenClaim) (string, error) {
	return signToken(tokenClaim, refreshTokenTTL)
}

func signToken(tokenClaim model.TokenClaim, ttl time.Duration) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["username"] = tokenClaim.Username
	claims["accountId"] = tokenClaim.AccountId
	claims["role"] = tokenClaim.Role
	claims["exp"] = time.Now().Add(ttl).Unix()

	return token.SignedString(jwtSecret())
}

func ParseToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecret(), nil
	})
}

// ClaimsFromToken reads the account claims of a parsed token.
func ClaimsFromToken(token *jwt.Token) (model.TokenClaim, bool) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return model.TokenClaim{}, false
	}
	accountId, ok := claims["accountId"].(float64)
	if !ok || accountId <= 0 {
		return model.TokenClaim{}, false
	}
	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)
	return model.TokenClaim{AccountId: uint(accountId), Username: username, Role: role}, true
}

// GetInfoAccountFromToken returns the claims stored by the auth middleware.
// ok is false for guests.
func GetInfoAccountFromToken(c *fiber.Ctx) (model.TokenClaim, bool) {
	claim, ok := c.Locals("claims").(model.TokenClaim)
	return claim, ok && claim.AccountId > 0
}

// AccountIdPtr is the caller's account id, or nil for guests.
func AccountIdPtr(c *fiber.Ctx) *uint {
	claim, ok := GetInfoAccountFromToken(c)
	if !ok {
		return nil
	}
	id := claim.AccountId
	return &id
}
