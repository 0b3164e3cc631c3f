package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"overcooked-pos/pos-svc/internal/domain"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	ConfirmUserPrefix    = "confirm-user:"
	ForgetPasswordPrefix = "forget-password:"

	codeTTL        = 24 * time.Hour
	codeDigits     = 6
	minPasswordLen = 6
)

type RegisterInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type UserService struct {
	users          UserRepository
	codes          CodeStore
	mailer         Mailer
	validate       *validator.Validate
	bcryptCost     int
	frontendOrigin string
	logger         *zap.Logger
}

func NewUserService(users UserRepository, codes CodeStore, mailer Mailer, bcryptCost int, frontendOrigin string, logger *zap.Logger) *UserService {
	if bcryptCost < bcrypt.MinCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserService{
		users:          users,
		codes:          codes,
		mailer:         mailer,
		validate:       validator.New(),
		bcryptCost:     bcryptCost,
		frontendOrigin: strings.TrimRight(frontendOrigin, "/"),
		logger:         logger,
	}
}

func (s *UserService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Name:     strings.TrimSpace(input.Name),
		Email:    input.Email,
		Password: string(hash),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, fmt.Errorf("%w: email %s is taken", ErrConflict, input.Email)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.sendVerificationCode(ctx, user)
	s.logger.Info("user registered", zap.Int("user_id", user.ID))
	return user, nil
}

// Login returns nil when the email is unknown or the password does not match.
func (s *UserService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil
	}
	return user, nil
}

func (s *UserService) Me(ctx context.Context, userID int) (*domain.User, error) {
	user, err := s.users.GetUser(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (s *UserService) ConfirmUser(ctx context.Context, code string) (bool, error) {
	key := ConfirmUserPrefix + strings.TrimSpace(code)
	value, err := s.codes.Get(ctx, key)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get verification code: %w", err)
	}

	userID, err := strconv.Atoi(value)
	if err != nil {
		return false, fmt.Errorf("parse user id %q: %w", value, err)
	}
	if err := s.users.ConfirmUser(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("confirm user: %w", err)
	}

	if err := s.codes.Del(ctx, key); err != nil {
		s.logger.Warn("failed to delete verification code", zap.Error(err))
	}
	return true, nil
}

func (s *UserService) ResendVerificationCode(ctx context.Context, userID int) (bool, error) {
	user, err := s.Me(ctx, userID)
	if err != nil || user == nil {
		return false, err
	}

	s.sendVerificationCode(ctx, user)
	return true, nil
}

// ForgotPassword always reports true so callers cannot probe which emails
// are registered.
func (s *UserService) ForgotPassword(ctx context.Context, email string) (bool, error) {
	user, err := s.users.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, domain.ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("get user: %w", err)
	}

	token := uuid.NewString()
	if err := s.codes.Set(ctx, ForgetPasswordPrefix+token, strconv.Itoa(user.ID), codeTTL); err != nil {
		return false, fmt.Errorf("store reset token: %w", err)
	}

	link := fmt.Sprintf("%s/user/change-password/%s", s.frontendOrigin, token)
	s.mail(ctx, user.Email, link)
	return true, nil
}

// ChangePassword consumes a reset token. It returns nil when the token is
// unknown or expired.
func (s *UserService) ChangePassword(ctx context.Context, token, password string) (*domain.User, error) {
	if len(password) < minPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLen)
	}

	key := ForgetPasswordPrefix + strings.TrimSpace(token)
	value, err := s.codes.Get(ctx, key)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get reset token: %w", err)
	}

	userID, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("parse user id %q: %w", value, err)
	}
	user, err := s.Me(ctx, userID)
	if err != nil || user == nil {
		return nil, err
	}

	if err := s.codes.Del(ctx, key); err != nil {
		s.logger.Warn("failed to delete reset token", zap.Error(err))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return nil, fmt.Errorf("update password: %w", err)
	}
	user.Password = string(hash)

	s.logger.Info("password changed", zap.Int("user_id", user.ID))
	return user, nil
}

func (s *UserService) sendVerificationCode(ctx context.Context, user *domain.User) {
	code, err := newVerificationCode()
	if err != nil {
		s.logger.Error("failed to generate verification code", zap.Error(err))
		return
	}
	if err := s.codes.Set(ctx, ConfirmUserPrefix+code, strconv.Itoa(user.ID), codeTTL); err != nil {
		s.logger.Error("failed to store verification code", zap.Int("user_id", user.ID), zap.Error(err))
		return
	}
	s.mail(ctx, user.Email, code)
}

// mail hands the message to the mailer. Delivery failures never fail the
// calling operation.
func (s *UserService) mail(ctx context.Context, to, body string) {
	if s.mailer == nil {
		return
	}
	if err := s.mailer.SendMail(ctx, to, body); err != nil {
		s.logger.Error("failed to send mail", zap.String("to", to), zap.Error(err))
	}
}

func newVerificationCode() (string, error) {
	var b strings.Builder
	for i := 0; i < codeDigits; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		b.WriteString(n.String())
	}
	return b.String(), nil
}
