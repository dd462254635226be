// Package auth is the identity provider boundary: credential storage, session
// tokens, and the current-session feed that gates the device agent.
package auth

import (
	"errors"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"lostfound.dev/device-finder-service/pkg/common"
	"lostfound.dev/device-finder-service/pkg/db"
	"lostfound.dev/device-finder-service/pkg/models"
)

const MinPasswordLen = 6

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Session identifies a signed-in user. A nil session means signed out.
type Session struct {
	UserID string
	Email  string
	Token  string
}

type Service struct {
	Db        db.DB
	JwtSecret []byte
	TokenTTL  time.Duration
	Mailer    *Mailer

	mu          sync.Mutex
	current     *Session
	watchers    map[int]chan *Session
	nextWatcher int
	resetTokens map[string]string
}

func NewService(dbInstance db.DB, jwtSecret []byte, tokenTTL time.Duration) *Service {
	return &Service{
		Db:          dbInstance,
		JwtSecret:   jwtSecret,
		TokenTTL:    tokenTTL,
		watchers:    make(map[int]chan *Session),
		resetTokens: make(map[string]string),
	}
}

func (s *Service) logger() *zap.Logger {
	return common.GetLoggerWith(common.LoggerNameAuth)
}

// SignUp creates a user and signs them in. Validation failures surface as
// coded errors so the UI can show the fixed friendly strings.
func (s *Service) SignUp(email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, common.NewCodedError("auth/missing-email", "email is empty")
	}
	if !emailPattern.MatchString(email) {
		return nil, common.NewCodedError("auth/invalid-email", "malformed email: "+email)
	}
	if len(password) < MinPasswordLen {
		return nil, common.NewCodedError("auth/weak-password", "password shorter than 6 characters")
	}

	var existing models.User
	err := s.Db.Conn.First(&existing, "email = ?", email).Error
	if err == nil {
		return nil, common.NewCodedError("auth/email-already-in-use", "account exists for "+email)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		UserID:       uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := s.Db.Conn.Create(&user).Error; err != nil {
		return nil, err
	}

	s.logger().Info("User signed up", zap.String("user_id", user.UserID))
	return s.establishSession(&user)
}

func (s *Service) SignIn(email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, common.NewCodedError("auth/missing-email", "email is empty")
	}

	var user models.User
	if err := s.Db.Conn.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewCodedError("auth/user-not-found", "no account for "+email)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, common.NewCodedError("auth/wrong-password", "password mismatch")
	}

	s.logger().Info("User signed in", zap.String("user_id", user.UserID))
	return s.establishSession(&user)
}

func (s *Service) SignOut() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	s.notifyWatchers(nil)
	s.logger().Info("User signed out")
}

// Verify parses a session token back into a Session.
func (s *Service) Verify(token string) (*Session, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.JwtSecret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, common.NewCodedError("auth/invalid-credential", "invalid session token")
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, common.NewCodedError("auth/invalid-credential", "malformed session claims")
	}
	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	if sub == "" {
		return nil, common.NewCodedError("auth/invalid-credential", "missing subject claim")
	}
	return &Session{UserID: sub, Email: email, Token: token}, nil
}

// ResetPassword mints a one-time reset token and sends it by email. Delivery
// failure is logged, not surfaced; the token stays valid either way.
func (s *Service) ResetPassword(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return common.NewCodedError("auth/missing-email", "email is empty")
	}

	var user models.User
	if err := s.Db.Conn.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.NewCodedError("auth/user-not-found", "no account for "+email)
		}
		return err
	}

	token := uuid.NewString()
	s.mu.Lock()
	s.resetTokens[token] = user.UserID
	s.mu.Unlock()

	if s.Mailer != nil {
		if err := s.Mailer.SendPasswordReset(email, token); err != nil {
			s.logger().Warn("Password reset mail failed", zap.String("email", email), zap.Error(err))
		}
	} else {
		s.logger().Info("Password reset requested (no mailer configured)",
			zap.String("email", email),
			zap.String("token", token),
		)
	}
	return nil
}

// CompletePasswordReset redeems a reset token and stores the new credential.
func (s *Service) CompletePasswordReset(token, newPassword string) error {
	if len(newPassword) < MinPasswordLen {
		return common.NewCodedError("auth/weak-password", "password shorter than 6 characters")
	}

	s.mu.Lock()
	userID, ok := s.resetTokens[token]
	if ok {
		delete(s.resetTokens, token)
	}
	s.mu.Unlock()
	if !ok {
		return common.NewCodedError("auth/invalid-credential", "unknown or spent reset token")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.Db.Conn.Model(&models.User{}).
		Where("user_id = ?", userID).
		Update("password_hash", string(hash)).Error
}

// CurrentSession returns the most recent in-process session, nil if signed
// out.
func (s *Service) CurrentSession() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Watch subscribes to session changes: a non-nil value on sign-in, nil on
// sign-out. The cancel func must be called when the owner goes away.
func (s *Service) Watch() (<-chan *Session, func()) {
	ch := make(chan *Session, 4)

	s.mu.Lock()
	id := s.nextWatcher
	s.nextWatcher++
	s.watchers[id] = ch
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.watchers[id]; ok {
			delete(s.watchers, id)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

func (s *Service) establishSession(user *models.User) (*Session, error) {
	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}
	session := &Session{UserID: user.UserID, Email: user.Email, Token: token}

	s.mu.Lock()
	s.current = session
	s.mu.Unlock()
	s.notifyWatchers(session)
	return session, nil
}

func (s *Service) issueToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.UserID,
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(s.TokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.JwtSecret)
}

func (s *Service) notifyWatchers(session *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.watchers {
		select {
		case ch <- session:
		default:
		}
	}
}
