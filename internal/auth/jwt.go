package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const defaultSubjectClaim = "sub"

// JWTAuthenticator validates signed JWTs and reads the subject from a
// configurable claim.
type JWTAuthenticator struct {
	key          any
	methods      []string
	issuer       string
	audience     string
	subjectClaim string
	nowFunc      func() time.Time
}

// JWTOption configures a JWTAuthenticator.
type JWTOption func(*JWTAuthenticator)

// WithIssuer requires the iss claim to equal issuer.
func WithIssuer(issuer string) JWTOption {
	return func(a *JWTAuthenticator) {
		a.issuer = issuer
	}
}

// WithAudience requires the aud claim to contain audience.
func WithAudience(audience string) JWTOption {
	return func(a *JWTAuthenticator) {
		a.audience = audience
	}
}

// WithSubjectClaim sets the claim holding the user id. Empty keeps "sub".
func WithSubjectClaim(claim string) JWTOption {
	return func(a *JWTAuthenticator) {
		if claim != "" {
			a.subjectClaim = claim
		}
	}
}

// WithJWTNowFunc overrides the clock used for exp/nbf checks.
func WithJWTNowFunc(fn func() time.Time) JWTOption {
	return func(a *JWTAuthenticator) {
		a.nowFunc = fn
	}
}

// NewHMACAuthenticator validates HS256/384/512 tokens signed with secret.
func NewHMACAuthenticator(secret []byte, opts ...JWTOption) (*JWTAuthenticator, error) {
	if len(secret) == 0 {
		return nil, errors.New("hmac secret is empty")
	}
	return newJWTAuthenticator(secret, []string{"HS256", "HS384", "HS512"}, opts), nil
}

// NewPublicKeyAuthenticator validates RS* or ES* tokens against a PEM encoded
// public key.
func NewPublicKeyAuthenticator(pemData []byte, opts ...JWTOption) (*JWTAuthenticator, error) {
	if rsaKey, err := jwt.ParseRSAPublicKeyFromPEM(pemData); err == nil {
		return newJWTAuthenticator(rsaKey, []string{"RS256", "RS384", "RS512"}, opts), nil
	}
	ecKey, err := jwt.ParseECPublicKeyFromPEM(pemData)
	if err != nil {
		return nil, fmt.Errorf("parsing public key: %w", err)
	}
	return newJWTAuthenticator(ecKey, []string{"ES256", "ES384", "ES512"}, opts), nil
}

func newJWTAuthenticator(key any, methods []string, opts []JWTOption) *JWTAuthenticator {
	a := &JWTAuthenticator{
		key:          key,
		methods:      methods,
		subjectClaim: defaultSubjectClaim,
		nowFunc:      time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Authenticate parses and verifies token. Every failure is reported as
// ErrUnauthorized wrapping the cause.
func (a *JWTAuthenticator) Authenticate(_ context.Context, token string) (string, error) {
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods(a.methods),
		jwt.WithTimeFunc(a.nowFunc),
		jwt.WithExpirationRequired(),
	}
	if a.issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(a.issuer))
	}
	if a.audience != "" {
		parserOpts = append(parserOpts, jwt.WithAudience(a.audience))
	}

	claims := jwt.MapClaims{}
	_, err := jwt.NewParser(parserOpts...).ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return a.key, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}

	subject, _ := claims[a.subjectClaim].(string)
	if subject == "" {
		return "", fmt.Errorf("%w: claim %q missing", ErrUnauthorized, a.subjectClaim)
	}
	return subject, nil
}
