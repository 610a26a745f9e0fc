package sessionapp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"blogcap/internal/core/access"
	"blogcap/internal/core/errs"
	"blogcap/internal/core/user"
	sessionPort "blogcap/internal/ports/session"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

const issuer = "blogcap"

// Claims is the token body. Id names the server-side session record.
type Claims struct {
	Kind string `json:"kind"`
	Role string `json:"role"`
	jwt.StandardClaims
}

// SessionService binds identities to tokens. A token is only honoured while
// its session record exists, so logout takes effect before expiry.
type SessionService struct {
	Store  sessionPort.SessionStore
	jwtKey []byte
	ttl    time.Duration
	Logger *zap.Logger
}

func NewSessionService(store sessionPort.SessionStore, jwtKey []byte, ttl time.Duration, logger *zap.Logger) *SessionService {
	return &SessionService{
		Store:  store,
		jwtKey: jwtKey,
		ttl:    ttl,
		Logger: logger,
	}
}

// Issue starts a session for id and returns its signed token.
func (s *SessionService) Issue(ctx context.Context, id access.Identity) (*sessionPort.LoginResponse, error) {
	if !id.Authenticated() {
		return nil, errs.ErrUnauthenticated
	}

	sid := uuid.Must(uuid.NewV4()).String()
	now := time.Now()
	expiresAt := now.Add(s.ttl)

	claims := &Claims{
		Kind: id.Kind.String(),
		Role: string(id.Role),
		StandardClaims: jwt.StandardClaims{
			Id:        sid,
			Subject:   id.UserID.String(),
			Issuer:    issuer,
			IssuedAt:  now.Unix(),
			ExpiresAt: expiresAt.Unix(),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtKey)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	record := sessionPort.Session{UserID: id.UserID.String(), Kind: id.Kind.String(), Role: string(id.Role)}
	if err := s.Store.Save(ctx, sid, record, s.ttl); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	return &sessionPort.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
		Kind:      id.Kind.String(),
	}, nil
}

// Resolve turns a token back into the identity it was issued for.
func (s *SessionService) Resolve(ctx context.Context, token string) (access.Identity, error) {
	claims, err := s.parse(token)
	if err != nil {
		return access.Anonymous, errs.ErrUnauthenticated
	}

	record, err := s.Store.Get(ctx, claims.Id)
	if errors.Is(err, sessionPort.ErrSessionNotFound) {
		return access.Anonymous, errs.ErrUnauthenticated
	}
	if err != nil {
		return access.Anonymous, fmt.Errorf("load session: %w", err)
	}
	// the record is authoritative; a token whose claims disagree with it was
	// not minted by Issue
	if record.UserID != claims.Subject || record.Kind != claims.Kind {
		s.Logger.Warn("⚠️ Session record does not match token", zap.String("sessionID", claims.Id))
		return access.Anonymous, errs.ErrUnauthenticated
	}

	uid, err := uuid.FromString(record.UserID)
	if err != nil {
		return access.Anonymous, errs.ErrUnauthenticated
	}
	role, ok := user.ParseRole(record.Role)
	if !ok {
		return access.Anonymous, errs.ErrUnauthenticated
	}
	kind := access.ParseKind(record.Kind)
	if kind == access.KindAnonymous {
		return access.Anonymous, errs.ErrUnauthenticated
	}
	return access.Identity{Kind: kind, UserID: uid, Role: role}, nil
}

// Revoke ends the session behind token. Unknown tokens are not an error.
func (s *SessionService) Revoke(ctx context.Context, token string) error {
	claims, err := s.parse(token)
	if err != nil {
		return errs.ErrUnauthenticated
	}
	if err := s.Store.Delete(ctx, claims.Id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	s.Logger.Info("Session revoked", zap.String("sessionID", claims.Id))
	return nil
}

func (s *SessionService) parse(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtKey, nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid || claims.Id == "" || claims.Issuer != issuer {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
