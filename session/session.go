/*
Package session holds the authentication state of a caller.

PURPOSE:
  There is no process-wide "current user". Every request gets its own
  *Context, derived from its bearer token by the API middleware, and
  handlers read it with FromContext.

TOKENS:
  HS256 JWTs carrying user id, login, role and employee id. Logout revokes
  the token id until the token would have expired anyway.

ROLES:
  employee < manager < hr, plus admin. Admin passes every role check;
  the other roles only match themselves.

USAGE:
  m := session.NewManager(users, secret, 12*time.Hour)
  auth := m.NewContext()
  token, err := auth.Login(ctx, "anna", "secret")
  auth.HasRole(session.RoleHR)
  auth.Logout()
*/
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid login or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenRevoked       = errors.New("token revoked")
)

type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
	RoleHR       Role = "hr"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleEmployee, RoleManager, RoleHR, RoleAdmin:
		return true
	}
	return false
}

// User is an account allowed to sign in. EmployeeID links the account to
// an employee record, empty for service accounts.
type User struct {
	ID           string
	Login        string
	PasswordHash string
	Role         Role
	EmployeeID   string
}

type UserStore interface {
	SaveUser(ctx context.Context, u User) error
	// GetUserByLogin returns (nil, nil) when no user has the login.
	GetUserByLogin(ctx context.Context, login string) (*User, error)
}

// Auth is the authentication state handed to handlers.
type Auth interface {
	CurrentUser() (User, bool)
	HasRole(role Role) bool
	Login(ctx context.Context, login, password string) (string, error)
	Logout()
}

type Claims struct {
	UserID     string `json:"uid"`
	Login      string `json:"login"`
	Role       Role   `json:"role"`
	EmployeeID string `json:"eid,omitempty"`
	jwt.RegisteredClaims
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// =============================================================================
// MANAGER - Issues and verifies tokens
// =============================================================================

type Manager struct {
	users  UserStore
	secret []byte
	ttl    time.Duration
	now    func() time.Time

	mu      sync.Mutex
	revoked map[string]time.Time // token id -> expiry
}

func NewManager(users UserStore, secret string, ttl time.Duration) *Manager {
	return &Manager{
		users:   users,
		secret:  []byte(secret),
		ttl:     ttl,
		now:     time.Now,
		revoked: make(map[string]time.Time),
	}
}

// NewContext returns an anonymous session.
func (m *Manager) NewContext() *Context {
	return &Context{manager: m}
}

// Authenticate builds a session from a bearer token.
func (m *Manager) Authenticate(token string) (*Context, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if m.isRevoked(claims.ID) {
		return nil, ErrTokenRevoked
	}

	c := m.NewContext()
	c.user = &User{ID: claims.UserID, Login: claims.Login, Role: claims.Role, EmployeeID: claims.EmployeeID}
	c.tokenID = claims.ID
	if claims.ExpiresAt != nil {
		c.expires = claims.ExpiresAt.Time
	}
	return c, nil
}

func (m *Manager) login(ctx context.Context, login, password string) (*User, *Claims, string, error) {
	u, err := m.users.GetUserByLogin(ctx, login)
	if err != nil {
		return nil, nil, "", fmt.Errorf("get user: %w", err)
	}
	if u == nil {
		return nil, nil, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, nil, "", ErrInvalidCredentials
	}

	now := m.now()
	claims := &Claims{
		UserID:     u.ID,
		Login:      u.Login,
		Role:       u.Role,
		EmployeeID: u.EmployeeID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return nil, nil, "", fmt.Errorf("sign token: %w", err)
	}
	return u, claims, token, nil
}

func (m *Manager) revoke(id string, until time.Time) {
	if id == "" {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for k, exp := range m.revoked {
		if exp.Before(now) {
			delete(m.revoked, k)
		}
	}
	m.revoked[id] = until
}

func (m *Manager) isRevoked(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.revoked[id]
	return ok
}

// =============================================================================
// CONTEXT - Per-caller authentication state
// =============================================================================

type Context struct {
	manager *Manager
	user    *User
	tokenID string
	expires time.Time
}

var _ Auth = (*Context)(nil)

func (c *Context) CurrentUser() (User, bool) {
	if c == nil || c.user == nil {
		return User{}, false
	}
	u := *c.user
	u.PasswordHash = ""
	return u, true
}

// HasRole reports whether the signed-in user has the role. Admins have all.
func (c *Context) HasRole(role Role) bool {
	u, ok := c.CurrentUser()
	if !ok {
		return false
	}
	return u.Role == role || u.Role == RoleAdmin
}

// HasAnyRole reports whether HasRole holds for at least one role.
func (c *Context) HasAnyRole(roles ...Role) bool {
	for _, r := range roles {
		if c.HasRole(r) {
			return true
		}
	}
	return false
}

// IsEmployee reports whether the signed-in user is linked to the employee.
func (c *Context) IsEmployee(employeeID string) bool {
	u, ok := c.CurrentUser()
	return ok && employeeID != "" && u.EmployeeID == employeeID
}

func (c *Context) Login(ctx context.Context, login, password string) (string, error) {
	u, claims, token, err := c.manager.login(ctx, login, password)
	if err != nil {
		return "", err
	}
	c.user = u
	c.tokenID = claims.ID
	c.expires = claims.ExpiresAt.Time
	return token, nil
}

func (c *Context) Logout() {
	if c == nil || c.user == nil {
		return
	}
	c.manager.revoke(c.tokenID, c.expires)
	c.user = nil
	c.tokenID = ""
}

// =============================================================================
// REQUEST CONTEXT
// =============================================================================

type contextKey struct{}

func WithContext(ctx context.Context, c *Context) context.Context {
	return context.WithValue(ctx, contextKey{}, c)
}

// FromContext returns the session attached by the API middleware, or nil.
func FromContext(ctx context.Context) *Context {
	c, _ := ctx.Value(contextKey{}).(*Context)
	return c
}
