package jwt

import (
	"errors"
	"fmt"
	"time"

	"Go-Recipe-Hub/domain"

	"github.com/golang-jwt/jwt/v4"
)

const defaultTokenTTL = 120 * time.Minute

type (
	JWTService interface {
		GenerateTokenUser(userID uint, email string) (string, error)
		ValidateTokenUser(token string) (*jwt.Token, error)
		GetUserByToken(token string) (uint, string, error)
	}

	jwtUserClaim struct {
		UserID uint   `json:"user_id"`
		Email  string `json:"email"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey string
		issuer    string
		ttl       time.Duration
	}
)

func NewJWTService(secretKey string) JWTService {
	return &jwtService{
		secretKey: secretKey,
		issuer:    "RECIPE-HUB",
		ttl:       defaultTokenTTL,
	}
}

func (j *jwtService) GenerateTokenUser(userID uint, email string) (string, error) {
	claims := jwtUserClaim{
		userID,
		email,
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(j.ttl)),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

func (j *jwtService) parseToken(t_ *jwt.Token) (any, error) {
	if _, ok := t_.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t_.Header["alg"])
	}
	return []byte(j.secretKey), nil
}

func (j *jwtService) ValidateTokenUser(token string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(token, &jwtUserClaim{}, j.parseToken)
}

// GetUserByToken returns the session user id and email carried by token.
func (j *jwtService) GetUserByToken(token string) (uint, string, error) {
	t_Token, err := j.ValidateTokenUser(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, "", domain.ErrTokenExpired
		}
		return 0, "", domain.ErrTokenInvalid
	}
	if !t_Token.Valid {
		return 0, "", domain.ErrTokenInvalid
	}

	claims := t_Token.Claims.(*jwtUserClaim)
	if claims.UserID == 0 && claims.Email == "" {
		return 0, "", domain.ErrTokenInvalid
	}
	return claims.UserID, claims.Email, nil
}
