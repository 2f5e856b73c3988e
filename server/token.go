package server

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// token points the download proxy at an indexer link without exposing the link itself.
type token struct {
	IndexName string `json:"s"`
	Link      string `json:"l"`
	jwt.StandardClaims
}

// Encode signs the token with the given secret.
func (t *token) Encode(secret []byte) (string, error) {
	if t.IssuedAt == 0 {
		t.IssuedAt = time.Now().Unix()
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, t).SignedString(secret)
}

func decodeToken(raw string, secret []byte) (*token, error) {
	if raw == "" {
		return nil, errors.New("empty token")
	}
	t := &token{}
	parsed, err := jwt.ParseWithClaims(raw, t, func(tk *jwt.Token) (interface{}, error) {
		if _, ok := tk.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tk.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, errors.New("invalid token")
	}
	return t, nil
}
