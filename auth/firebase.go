package auth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	firebase "firebase.google.com/go"
	fbauth "firebase.google.com/go/auth"
	"google.golang.org/api/option"

	"github.com/batibatii/textilecom-sub000/models"
)

// SessionTTL is the validity window of a session cookie. Kept short on
// purpose: a role change propagates at the latest when the session expires,
// and revocation closes the window before that.
const SessionTTL = time.Hour

var (
	ErrNoSession          = errors.New("no session")
	ErrVerificationFailed = errors.New("session verification failed")
)

// Claims is what a verified session credential carries.
type Claims struct {
	UID   string
	Email string
	Role  models.Role
}

// Service wraps the identity provider. Constructed once in main and passed
// down explicitly; nothing reaches into package-level state.
type Service struct {
	client    *fbauth.Client
	projectID string
}

func NewService(ctx context.Context) (*Service, error) {
	credsJSON := os.Getenv("FIREBASE_CREDENTIALS_JSON")
	if credsJSON == "" {
		return nil, errors.New("FIREBASE_CREDENTIALS_JSON must be set")
	}
	projectID := os.Getenv("FIREBASE_PROJECT_ID")
	if projectID == "" {
		return nil, errors.New("FIREBASE_PROJECT_ID must be set")
	}

	opt := option.WithCredentialsJSON([]byte(credsJSON))
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opt)
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firebase auth client: %w", err)
	}

	return &Service{client: client, projectID: projectID}, nil
}

// VerifySession validates a session cookie with revocation checking. A
// revoked-but-not-yet-expired credential is rejected here, which is what
// makes forced logout on role change work. Callers must treat
// ErrVerificationFailed exactly like ErrNoSession.
func (s *Service) VerifySession(ctx context.Context, cookie string) (Claims, error) {
	if cookie == "" {
		return Claims{}, ErrNoSession
	}

	tok, err := s.client.VerifySessionCookieAndCheckRevoked(ctx, cookie)
	if err != nil {
		return Claims{}, ErrVerificationFailed
	}

	return claimsFromToken(tok), nil
}

// MintSession exchanges a short-lived, revocation-checked ID token for a
// session cookie value.
func (s *Service) MintSession(ctx context.Context, idToken string) (string, *fbauth.Token, error) {
	tok, err := s.client.VerifyIDTokenAndCheckRevoked(ctx, idToken)
	if err != nil {
		return "", nil, ErrVerificationFailed
	}
	if tok.Audience != s.projectID {
		return "", nil, ErrVerificationFailed
	}

	cookie, err := s.client.SessionCookie(ctx, idToken, SessionTTL)
	if err != nil {
		return "", nil, fmt.Errorf("mint session cookie: %w", err)
	}
	return cookie, tok, nil
}

// RevokeSessions invalidates every outstanding session for the user. Used by
// the role-change flow so a demoted admin cannot ride out a live session.
func (s *Service) RevokeSessions(ctx context.Context, uid string) error {
	return s.client.RevokeRefreshTokens(ctx, uid)
}

// SetRoleClaim stamps the role custom claim picked up by future sessions.
func (s *Service) SetRoleClaim(ctx context.Context, uid string, role models.Role) error {
	return s.client.SetCustomUserClaims(ctx, uid, map[string]interface{}{"role": string(role)})
}

func claimsFromToken(tok *fbauth.Token) Claims {
	email, _ := tok.Claims["email"].(string)
	// The role claim is a point-in-time snapshot; absent means customer,
	// never a database lookup.
	roleStr, _ := tok.Claims["role"].(string)
	return Claims{
		UID:   tok.UID,
		Email: email,
		Role:  models.ParseRole(roleStr),
	}
}
