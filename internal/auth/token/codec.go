package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"homestay/pkg/model"
)

var (
	// ErrInvalidToken covers absent, malformed and tampered credentials.
	ErrInvalidToken = errors.New("credential is invalid")

	// ErrExpiredToken marks a structurally valid credential past its expiry.
	ErrExpiredToken = errors.New("credential is expired")
)

// Claims is the minimal identity embedded in a credential. Nothing beyond
// these fields ever goes into a token.
type Claims struct {
	Subject   string `json:"sub"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// Codec signs and verifies compact HS256 credentials. The secret and TTL
// are injected at construction; there is no package-level signing state.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewCodec(secret string, ttl time.Duration) *Codec {
	return &Codec{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue signs a credential for the given user, expiring TTL from now.
func (c *Codec) Issue(user model.PublicUser) (string, Claims, error) {
	now := c.now()
	claims := Claims{
		Subject:   user.ID,
		Email:     user.Email,
		Username:  user.Username,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(c.ttl).Unix(),
	}

	headerRaw, err := json.Marshal(map[string]string{"alg": "HS256", "typ": "JWT"})
	if err != nil {
		return "", Claims{}, err
	}
	claimsRaw, err := json.Marshal(claims)
	if err != nil {
		return "", Claims{}, err
	}

	signed := base64.RawURLEncoding.EncodeToString(headerRaw) +
		"." + base64.RawURLEncoding.EncodeToString(claimsRaw)

	return signed + "." + c.sign(signed), claims, nil
}

// Verify checks structure, signature and expiry. Any mutation of the token
// invalidates the signature check.
func (c *Codec) Verify(raw string) (Claims, error) {
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return Claims{}, ErrInvalidToken
	}

	signed := parts[0] + "." + parts[1]
	if !hmac.Equal([]byte(c.sign(signed)), []byte(parts[2])) {
		return Claims{}, ErrInvalidToken
	}

	claimsRaw, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return Claims{}, ErrInvalidToken
	}

	var claims Claims
	if err := json.Unmarshal(claimsRaw, &claims); err != nil {
		return Claims{}, ErrInvalidToken
	}
	if claims.Subject == "" {
		return Claims{}, ErrInvalidToken
	}

	if c.now().Unix() >= claims.ExpiresAt {
		return Claims{}, ErrExpiredToken
	}

	return claims, nil
}

func (c *Codec) sign(payload string) string {
	mac := hmac.New(sha256.New, c.secret)
	_, _ = mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
