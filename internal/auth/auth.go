package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/priyakashinagar/ReelPostCity--sub001/internal/database"
	"github.com/priyakashinagar/ReelPostCity--sub001/internal/logger"
	"github.com/priyakashinagar/ReelPostCity--sub001/internal/models"
	"github.com/priyakashinagar/ReelPostCity--sub001/internal/store"
	"github.com/priyakashinagar/ReelPostCity--sub001/internal/tier"
)

const (
	SessionExpiration = 24 * time.Hour // Сессии действительны 24 часа по умолчанию
	SessionCookieName = "session_token"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidPassword = errors.New("invalid password")
	ErrEmailExists     = errors.New("email already exists")
	ErrUsernameExists  = errors.New("username already exists")
	ErrInvalidInput    = errors.New("invalid input")
	ErrSessionNotFound = errors.New("session not found or expired")
)

// Regex patterns for validation
var (
	usernameRegex = regexp.MustCompile(`^[\p{L}0-9_]{3,20}$`) // Unicode letters, numbers, underscore
	passwordRegex = regexp.MustCompile(`^.{6,32}$`)           // 6-32 characters
)

var validate = validator.New()

var log = logger.StdLogger().With("auth")

// ValidateUserCredentials проверяет входные данные при регистрации
func ValidateUserCredentials(email, username, password string) error {
	if err := validate.Var(email, "required,email,min=5,max=50"); err != nil {
		return fmt.Errorf("%w: invalid email format or length (5-50 characters)", ErrInvalidInput)
	}
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("%w: invalid username format or length (3-20 characters, letters, numbers, underscore only)", ErrInvalidInput)
	}
	if !passwordRegex.MatchString(password) {
		return fmt.Errorf("%w: invalid password format or length (6-32 characters)", ErrInvalidInput)
	}
	return nil
}

// Service регистрирует пользователей и управляет их сессиями.
type Service struct {
	records      *store.Records
	sessionTTL   time.Duration
	cookieSecure bool
	now          func() time.Time
}

// Option настраивает Service.
type Option func(*Service)

func WithSessionTTL(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.sessionTTL = d
		}
	}
}

func WithCookieSecure(secure bool) Option {
	return func(s *Service) { s.cookieSecure = secure }
}

// WithClock подменяет источник времени (для тестов).
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(records *store.Records, opts ...Option) *Service {
	s := &Service{records: records, sessionTTL: SessionExpiration, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// RegisterUser регистрирует нового пользователя на бесплатном тарифе.
func (s *Service) RegisterUser(ctx context.Context, email, username, password string) (*models.User, error) {
	email = strings.TrimSpace(email)
	username = strings.TrimSpace(username)
	if err := ValidateUserCredentials(email, username, password); err != nil {
		return nil, err
	}

	hashedPassword, err := database.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("auth: failed to hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		Username:     username,
		PasswordHash: hashedPassword,
		Tier:         tier.Free,
		CreatedAt:    s.now().UTC(),
	}

	err = s.records.UpdateUsers(ctx, func(users []models.User) ([]models.User, error) {
		// Username is case-insensitive, email is exact.
		for _, u := range users {
			if u.Email == email {
				return nil, ErrEmailExists
			}
			if strings.EqualFold(u.Username, username) {
				return nil, ErrUsernameExists
			}
		}
		return append(users, user), nil
	})
	if err != nil {
		if errors.Is(err, ErrEmailExists) || errors.Is(err, ErrUsernameExists) {
			return nil, err
		}
		return nil, fmt.Errorf("auth: failed to insert user: %w", err)
	}

	public := user.Public()
	return &public, nil
}

// LoginUser аутентифицирует пользователя (по email или username) и создает новую сессию.
func (s *Service) LoginUser(ctx context.Context, login, password string) (*models.User, *models.Session, error) {
	users, err := s.records.Users(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("auth: failed to query user: %w", err)
	}

	var user *models.User
	for i := range users {
		if users[i].Email == login || strings.EqualFold(users[i].Username, login) {
			user = &users[i]
			break
		}
	}
	if user == nil {
		return nil, nil, ErrUserNotFound
	}

	if err = database.CheckPasswordHash(user.PasswordHash, password); err != nil {
		log.Debugf(ctx, "Password check failed for user %s (ID: %s)", user.Username, user.ID)
		return nil, nil, ErrInvalidPassword
	}

	session := models.Session{
		UUID:    uuid.NewString(),
		UserID:  user.ID,
		Expires: s.now().Add(s.sessionTTL).UTC(),
	}

	// Старые сессии пользователя удаляются: активна только одна.
	err = s.records.UpdateSessions(ctx, func(sessions []models.Session) ([]models.Session, error) {
		kept := sessions[:0]
		for _, sess := range sessions {
			if sess.UserID != user.ID {
				kept = append(kept, sess)
			}
		}
		return append(kept, session), nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("auth: failed to create new session: %w", err)
	}

	public := user.Public()
	return &public, &session, nil
}

// LogoutUser удаляет сессию.
func (s *Service) LogoutUser(ctx context.Context, sessionUUID string) error {
	removed := false
	err := s.records.UpdateSessions(ctx, func(sessions []models.Session) ([]models.Session, error) {
		kept := sessions[:0]
		for _, sess := range sessions {
			if sess.UUID == sessionUUID {
				removed = true
				continue
			}
			kept = append(kept, sess)
		}
		return kept, nil
	})
	if err != nil {
		return fmt.Errorf("auth: failed to delete session: %w", err)
	}
	if !removed {
		return ErrSessionNotFound
	}
	return nil
}

// GetUserBySession проверяет сессию и возвращает пользователя.
func (s *Service) GetUserBySession(ctx context.Context, sessionUUID string) (*models.User, error) {
	sessions, err := s.records.Sessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("auth: failed to query session: %w", err)
	}

	var session *models.Session
	for i := range sessions {
		if sessions[i].UUID == sessionUUID {
			session = &sessions[i]
			break
		}
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if session.Expired(s.now()) {
		// Сессия истекла, удаляем ее
		if err := s.LogoutUser(ctx, sessionUUID); err != nil && !errors.Is(err, ErrSessionNotFound) {
			log.Warnf(ctx, "Failed to delete expired session: %v", err)
		}
		return nil, ErrSessionNotFound
	}

	user, err := s.UserByID(ctx, session.UserID)
	if err != nil {
		return nil, err // Пользователь сессии не найден, возможно, удален
	}
	return user, nil
}

// UserByID returns the user without its password hash.
func (s *Service) UserByID(ctx context.Context, id string) (*models.User, error) {
	users, err := s.records.Users(ctx)
	if err != nil {
		return nil, fmt.Errorf("auth: failed to query user: %w", err)
	}
	for _, u := range users {
		if u.ID == id {
			public := u.Public()
			return &public, nil
		}
	}
	return nil, ErrUserNotFound
}

// CleanupExpiredSessions удаляет просроченные сессии раз в interval, пока ctx не отменен.
func (s *Service) CleanupExpiredSessions(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.PruneSessions(ctx)
			if err != nil {
				log.Errorf(ctx, "Error cleaning up expired sessions: %v", err)
				continue
			}
			if n > 0 {
				log.Infof(ctx, "Cleaned up %d expired sessions.", n)
			}
		}
	}
}

// PruneSessions удаляет все просроченные сессии и возвращает их количество.
func (s *Service) PruneSessions(ctx context.Context) (int, error) {
	now := s.now()
	removed := 0
	err := s.records.UpdateSessions(ctx, func(sessions []models.Session) ([]models.Session, error) {
		kept := sessions[:0]
		for _, sess := range sessions {
			if sess.Expired(now) {
				removed++
				continue
			}
			kept = append(kept, sess)
		}
		return kept, nil
	})
	return removed, err
}

// SetSessionCookie устанавливает HTTP-cookie для сессии.
func (s *Service) SetSessionCookie(w http.ResponseWriter, sessionUUID string, expirationTime time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    sessionUUID,
		Path:     "/",
		Expires:  expirationTime,
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie очищает HTTP-cookie сессии.
func (s *Service) ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1, // Удаляет cookie немедленно
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ContextKey для хранения User в контексте запроса
type contextKey string

const UserContextKey contextKey = "user"

// WithUser кладет пользователя в контекст.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, UserContextKey, user)
}

// GetUserFromContext извлекает пользователя из контекста запроса.
func GetUserFromContext(ctx context.Context) *models.User {
	user, ok := ctx.Value(UserContextKey).(*models.User)
	if !ok {
		return nil
	}
	return user
}
