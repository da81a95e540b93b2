package services

import (
	"errors"
	"log"

	"minibank/internal/adapters/persistence/repositories"
	"minibank/internal/config"
	"minibank/internal/core/domain"
	"minibank/internal/pkg/jwt"
	"minibank/internal/pkg/password"
)

var (
	ErrAccountLocked      = errors.New("account is locked after too many failed attempts")
	ErrAccountNotLocked   = errors.New("account is not locked")
	ErrWrongOldPassword   = errors.New("old password is incorrect")
	ErrConfirmationNeeded = errors.New("operation requires confirmation")
)

const maxFailedAttempts = 3

// Bootstrap operator credentials. Seeded on first start so the system is
// never without an administrator.
const (
	bootstrapAdminUsername = "q"
	bootstrapAdminPassword = "q"
)

// TokenPair bundles the credentials handed out on login
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type AuthService struct {
	users    *repositories.UserRepository
	sessions *SessionService
}

func NewAuthService(users *repositories.UserRepository, sessions *SessionService) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
	}
}

// EnsureBootstrapAdmin seeds the built-in administrator if missing and
// marks it exempt from the lockout policy
func (s *AuthService) EnsureBootstrapAdmin() error {
	if existing, err := s.users.GetByUsernameAndRole(bootstrapAdminUsername, domain.RoleAdmin); err == nil {
		if !existing.LockoutExempt {
			existing.LockoutExempt = true
			return s.users.Update(existing)
		}
		return nil
	}

	admin := &domain.User{
		Username:       bootstrapAdminUsername,
		PasswordDigest: password.Digest(bootstrapAdminPassword),
		Role:           domain.RoleAdmin,
		LockoutExempt:  true,
	}
	if err := s.users.Create(admin); err != nil {
		return err
	}

	log.Println("✅ Bootstrap administrator seeded")
	return nil
}

// Login authenticates a user and opens a session.
//
// Failed attempts are counted per user; the third consecutive failure
// locks the account. A successful login resets the counter. The
// bootstrap administrator is exempt and can never be locked out.
func (s *AuthService) Login(username, pass string, role domain.Role) (*domain.User, *TokenPair, error) {
	// 1. Find the user for the requested role
	user, err := s.users.GetByUsernameAndRole(username, role)
	if err != nil {
		return nil, nil, domain.ErrInvalidCredentials
	}

	// 2. Locked accounts are refused even with the correct password
	if user.IsLocked {
		return nil, nil, ErrAccountLocked
	}

	// 3. Verify the password
	if !password.Verify(pass, user.PasswordDigest) {
		if !user.LockoutExempt {
			user.FailedAttempts++
			if user.FailedAttempts >= maxFailedAttempts {
				user.IsLocked = true
				s.sessions.RevokeUser(user.Username)
				log.Printf("🔒 Account locked after %d failed attempts: %s", user.FailedAttempts, user.Username)
			}
			if err := s.users.Update(user); err != nil {
				log.Printf("❌ Failed to persist lockout state for %s: %v", user.Username, err)
			}
			if user.IsLocked {
				return nil, nil, ErrAccountLocked
			}
		}
		return nil, nil, domain.ErrInvalidCredentials
	}

	// 4. Success resets the failure counter
	if user.FailedAttempts != 0 {
		user.FailedAttempts = 0
		if err := s.users.Update(user); err != nil {
			return nil, nil, err
		}
	}

	// 5. Open a session and issue tokens
	sessionID := s.sessions.Create(user.Username, string(user.Role))

	cfg := config.AppConfig.JWT
	access, err := jwt.GenerateAccessToken(user.Username, string(user.Role), sessionID, cfg.Secret, cfg.AccessTokenMins)
	if err != nil {
		return nil, nil, err
	}
	refresh, err := jwt.GenerateRefreshToken(user.Username, sessionID, cfg.RefreshSecret, cfg.RefreshTokenDays)
	if err != nil {
		return nil, nil, err
	}

	return user, &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh exchanges a valid refresh token for a new access token. The
// underlying session must still be live.
func (s *AuthService) Refresh(refreshToken string) (string, error) {
	cfg := config.AppConfig.JWT

	claims, err := jwt.ValidateRefreshToken(refreshToken, cfg.RefreshSecret)
	if err != nil {
		return "", err
	}

	sess, err := s.sessions.Get(claims.SessionID)
	if err != nil {
		return "", err
	}
	if err := s.sessions.Touch(sess.ID); err != nil {
		return "", err
	}

	return jwt.GenerateAccessToken(sess.Username, sess.Role, sess.ID, cfg.Secret, cfg.AccessTokenMins)
}

// Logout ends the session
func (s *AuthService) Logout(sessionID string) {
	s.sessions.Revoke(sessionID)
}

// ChangePassword verifies the old password before setting the new one
func (s *AuthService) ChangePassword(username, oldPass, newPass string) error {
	if err := password.Validate(newPass); err != nil {
		return err
	}

	user, err := s.users.GetByUsername(username)
	if err != nil {
		return err
	}

	if !password.Verify(oldPass, user.PasswordDigest) {
		return ErrWrongOldPassword
	}

	user.PasswordDigest = password.Digest(newPass)
	return s.users.Update(user)
}

// Unlock clears the lock flag and failure counter on a locked account.
// Destructive-adjacent admin action, so it requires explicit confirmation.
func (s *AuthService) Unlock(username string, confirm bool) error {
	if !confirm {
		return ErrConfirmationNeeded
	}

	user, err := s.users.GetByUsername(username)
	if err != nil {
		return err
	}
	if !user.IsLocked {
		return ErrAccountNotLocked
	}

	user.IsLocked = false
	user.FailedAttempts = 0
	if err := s.users.Update(user); err != nil {
		return err
	}

	log.Printf("🔓 Account unlocked: %s", username)
	return nil
}

// ListLocked returns every currently locked account
func (s *AuthService) ListLocked() []*domain.User {
	return s.users.ListLocked()
}
