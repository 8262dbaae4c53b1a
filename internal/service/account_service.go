package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/eats-service/internal/api/dto"
	"github.com/spec-kit/eats-service/internal/auth"
	"github.com/spec-kit/eats-service/internal/config"
	"github.com/spec-kit/eats-service/internal/domain"
	"github.com/spec-kit/eats-service/internal/events"
	"github.com/spec-kit/eats-service/internal/repository"
)

// Fixed user-facing messages. Resolvers surface these verbatim inside the
// envelope; raw faults never cross the API boundary.
const (
	msgEmailTaken          = "There is a user with that email already."
	msgCreateFailed        = "Couldn't create account."
	msgUserNotFound        = "User not found."
	msgWrongPassword       = "Wrong password."
	msgLoginFailed         = "Can't log in to server."
	msgEditProfileFailed   = "Could not update profile"
	msgVerificationMissing = "Not found verification."
	msgVerifyFailed        = "Could not verify email."
	msgFindUserFailed      = "Could not find user."
)

// AccountService coordinates the account lifecycle: signup, login, profile
// edits and email verification. Every operation returns a result envelope.
type AccountService struct {
	users         repository.UserRepository
	verifications repository.VerificationRepository
	mailer        EmailSender
	tokenMgr      *auth.TokenManager
	dispatcher    events.Dispatcher
	logger        *zap.Logger
	bcryptCost    int
}

// AccountDependencies encapsulates collaborator requirements.
type AccountDependencies struct {
	UserRepo         repository.UserRepository
	VerificationRepo repository.VerificationRepository
	Mailer           EmailSender
	Dispatcher       events.Dispatcher
	Logger           *zap.Logger
}

// NewAccountService builds the service.
func NewAccountService(cfg config.Config, deps AccountDependencies) *AccountService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccountService{
		users:         deps.UserRepo,
		verifications: deps.VerificationRepo,
		mailer:        deps.Mailer,
		tokenMgr:      auth.NewTokenManager(cfg.Auth.SecretKey),
		dispatcher:    deps.Dispatcher,
		logger:        logger,
		bcryptCost:    cfg.Auth.BcryptCost,
	}
}

// CreateAccount registers a new, unverified user and sends the verification
// email best effort. The email pre-check is an optimization; races are caught
// by the store's unique constraint and mapped to the same message.
func (s *AccountService) CreateAccount(ctx context.Context, in dto.CreateAccountInput) dto.CoreOutput {
	role := domain.UserRole(in.Role)
	if !role.Valid() {
		return dto.FailOutput(msgCreateFailed)
	}

	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return dto.FailOutput(msgEmailTaken)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		s.logger.Error("signup email lookup failed", zap.Error(err))
		return dto.FailOutput(msgCreateFailed)
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		s.logger.Error("password hashing failed", zap.Error(err))
		return dto.FailOutput(msgCreateFailed)
	}

	user := &domain.User{Email: in.Email, PasswordHash: hash, Role: role}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return dto.FailOutput(msgEmailTaken)
		}
		s.logger.Error("user insert failed", zap.Error(err))
		return dto.FailOutput(msgCreateFailed)
	}

	verification := &domain.Verification{Code: uuid.NewString(), UserID: user.ID}
	if err := s.verifications.Create(ctx, verification); err != nil {
		s.logger.Error("verification insert failed", zap.Error(err))
		return dto.FailOutput(msgCreateFailed)
	}

	// Fire and forget: a lost email never rolls back the account.
	if !s.mailer.SendVerificationEmail(ctx, user.Email, verification.Code) {
		s.logger.Warn("verification email not delivered", zap.String("email", user.Email))
	}

	s.publish(ctx, events.EventAccountCreated, user.ID, events.AccountCreatedPayload{
		Email: user.Email,
		Role:  user.Role,
	})
	return dto.OKOutput()
}

// Login checks credentials and issues an identity token.
func (s *AccountService) Login(ctx context.Context, in dto.LoginInput) dto.LoginOutput {
	user, err := s.existsUser(ctx, in.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dto.LoginOutput{CoreOutput: dto.FailOutput(msgUserNotFound)}
		}
		s.logger.Error("login lookup failed", zap.Error(err))
		return dto.LoginOutput{CoreOutput: dto.FailOutput(msgLoginFailed)}
	}

	if err := auth.ComparePassword(user.PasswordHash, in.Password); err != nil {
		return dto.LoginOutput{CoreOutput: dto.FailOutput(msgWrongPassword)}
	}

	token, err := s.tokenMgr.Sign(user.ID)
	if err != nil {
		s.logger.Error("token signing failed", zap.Error(err))
		return dto.LoginOutput{CoreOutput: dto.FailOutput(msgLoginFailed)}
	}
	return dto.LoginOutput{CoreOutput: dto.OKOutput(), Token: &token}
}

// EditProfile updates email and/or password for an authenticated user. A new
// email resets verification and triggers a fresh code; any prior unconsumed
// codes stay live.
func (s *AccountService) EditProfile(ctx context.Context, userID int64, in dto.EditProfileInput) dto.CoreOutput {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		s.logger.Error("profile load failed", zap.Int64("user_id", userID), zap.Error(err))
		return dto.FailOutput(msgEditProfileFailed)
	}

	emailChanged := in.Email != ""
	if emailChanged {
		user.Email = in.Email
		user.Verified = false

		verification := &domain.Verification{Code: uuid.NewString(), UserID: user.ID}
		if err := s.verifications.Create(ctx, verification); err != nil {
			s.logger.Error("verification insert failed", zap.Error(err))
			return dto.FailOutput(msgEditProfileFailed)
		}
		if !s.mailer.SendVerificationEmail(ctx, user.Email, verification.Code) {
			s.logger.Warn("verification email not delivered", zap.String("email", user.Email))
		}
	}

	passwordChanged := in.Password != ""
	if passwordChanged {
		hash, err := auth.HashPassword(in.Password, s.bcryptCost)
		if err != nil {
			s.logger.Error("password hashing failed", zap.Error(err))
			return dto.FailOutput(msgEditProfileFailed)
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		s.logger.Error("profile update failed", zap.Int64("user_id", userID), zap.Error(err))
		return dto.FailOutput(msgEditProfileFailed)
	}

	s.publish(ctx, events.EventProfileUpdated, user.ID, events.ProfileUpdatedPayload{
		EmailChanged:    emailChanged,
		PasswordChanged: passwordChanged,
	})
	return dto.OKOutput()
}

// VerifyEmail consumes a verification code at most once: it flips the owning
// user's verified flag and deletes the code.
func (s *AccountService) VerifyEmail(ctx context.Context, code string) dto.CoreOutput {
	verification, err := s.verifications.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dto.FailOutput(msgVerificationMissing)
		}
		s.logger.Error("verification lookup failed", zap.Error(err))
		return dto.FailOutput(msgVerifyFailed)
	}

	if err := s.users.SetVerified(ctx, verification.UserID, true); err != nil {
		s.logger.Error("verified flag update failed", zap.Int64("user_id", verification.UserID), zap.Error(err))
		return dto.FailOutput(msgVerifyFailed)
	}
	if err := s.verifications.Delete(ctx, verification.ID); err != nil {
		s.logger.Error("verification delete failed", zap.Int64("verification_id", verification.ID), zap.Error(err))
		return dto.FailOutput(msgVerifyFailed)
	}

	s.publish(ctx, events.EventEmailVerified, verification.UserID, events.EmailVerifiedPayload{Code: code})
	return dto.OKOutput()
}

// FindUserByID looks up a user and returns its external view.
func (s *AccountService) FindUserByID(ctx context.Context, id int64) dto.UserOutput {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dto.UserOutput{CoreOutput: dto.FailOutput(msgUserNotFound)}
		}
		s.logger.Error("user lookup failed", zap.Int64("user_id", id), zap.Error(err))
		return dto.UserOutput{CoreOutput: dto.FailOutput(msgFindUserFailed)}
	}
	return dto.UserOutput{CoreOutput: dto.OKOutput(), User: dto.NewUserView(user)}
}

// ResolveUser implements auth.UserResolver for the identity middleware.
// Failures collapse to "no user" so the request degrades to anonymous.
func (s *AccountService) ResolveUser(ctx context.Context, id int64) (*domain.User, bool) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, false
	}
	return user, true
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AccountService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AccountService) existsUser(ctx context.Context, email string) (*domain.User, error) {
	return s.users.GetByEmail(ctx, email)
}

func (s *AccountService) publish(ctx context.Context, eventType events.EventType, userID int64, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		UserID:    userID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
