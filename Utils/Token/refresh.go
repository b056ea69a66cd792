package Token

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// Refresh tokens are long-lived bearer credentials accepted only by the
// refresh endpoint, marked by the "refresh" claim.
func GenerateRefreshToken(user_id uint) (string, error) {

	token_lifespan, err := strconv.Atoi(os.Getenv("REFRESH_TOKEN_HOUR_LIFESPAN"))

	if err != nil {
		token_lifespan = 24 * 7
	}

	claims := jwt.MapClaims{}
	claims["refresh"] = true
	claims["user_id"] = user_id
	claims["exp"] = time.Now().Add(time.Hour * time.Duration(token_lifespan)).Unix()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(os.Getenv("API_SECRET")))
}

// RefreshTokenID validates a refresh token string and returns the user it was
// issued for.
func RefreshTokenID(tokenString string) (uint, error) {
	token, err := parse(tokenString)
	if err != nil {
		return 0, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, errors.New("invalid token claims")
	}
	if isRefresh, _ := claims["refresh"].(bool); !isRefresh {
		return 0, errors.New("not a refresh token")
	}
	uid, err := strconv.ParseUint(fmt.Sprintf("%.0f", claims["user_id"]), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(uid), nil
}
