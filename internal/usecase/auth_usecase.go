package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/TheLMNTRIX/Sangath/internal/delivery/dto"
	"github.com/TheLMNTRIX/Sangath/internal/domain/entity"
	"github.com/TheLMNTRIX/Sangath/internal/domain/repository"
	"github.com/TheLMNTRIX/Sangath/internal/infrastructure/docstore"
	"github.com/TheLMNTRIX/Sangath/internal/infrastructure/identity"

	"github.com/sirupsen/logrus"
)

var (
	ErrAlreadyRegistered    = errors.New("phone number already registered")
	ErrAccountNotFound      = errors.New("account not found")
	ErrResetTicketNotFound  = errors.New("no active reset code")
	ErrResetCodeMismatch    = errors.New("reset code does not match")
	ErrTooManyResetAttempts = errors.New("too many reset attempts")
)

type AuthUsecase interface {
	RegisterSupervisor(ctx context.Context, req *dto.RegisterSupervisorRequest) error
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	RequestReset(ctx context.Context, req *dto.ResetRequestRequest) error
	VerifyReset(ctx context.Context, req *dto.ResetVerifyRequest) (*dto.TokenResponse, error)
}

type authUsecase struct {
	log       *logrus.Logger
	identity  identity.Client
	exchanger identity.TokenExchanger
	userRepo  repository.UserRepository
	tickets   repository.ResetTicketRepository
	resetTTL  time.Duration

	// newCode is swapped out by tests to force known codes.
	newCode func() string
}

func NewAuthUsecase(
	log *logrus.Logger,
	identityClient identity.Client,
	exchanger identity.TokenExchanger,
	userRepo repository.UserRepository,
	tickets repository.ResetTicketRepository,
	resetTTL time.Duration,
) AuthUsecase {
	return &authUsecase{
		log:       log,
		identity:  identityClient,
		exchanger: exchanger,
		userRepo:  userRepo,
		tickets:   tickets,
		resetTTL:  resetTTL,
		newCode: newResetCode,
	}
}

// newResetCode draws a 6-digit one-time code from crypto/rand. The code
// grants a login, so it must not come from a predictable source.
func newResetCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		panic(fmt.Sprintf("reset code generation: %v", err))
	}
	return fmt.Sprintf("%06d", n.Int64())
}

func (u *authUsecase) RegisterSupervisor(ctx context.Context, req *dto.RegisterSupervisorRequest) error {
	if _, err := u.userRepo.FindByKey(ctx, req.Phone); err == nil {
		return ErrAlreadyRegistered
	} else if !errors.Is(err, docstore.ErrNotFound) {
		u.log.Warnf("Failed to check existing registration: %+v", err)
		return err
	}

	account, err := u.identity.CreateAccount(ctx, identity.CreateParams{
		Phone:       req.Phone,
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.Name,
	})
	if err != nil {
		u.log.Warnf("Failed to create identity account: %+v", err)
		return err
	}

	user := &entity.User{
		UID:        account.UID,
		Phone:      req.Phone,
		Email:      req.Email,
		Name:       req.Name,
		Role:       entity.RoleSupervisor,
		IsActive:   true,
		FirstLogin: true,
		CreatedAt:  time.Now().UTC(),
	}

	if err := u.userRepo.Create(ctx, req.Phone, user); err != nil {
		// Roll back the provider account so no orphaned credential
		// survives a failed registration.
		if delErr := u.identity.DeleteAccount(ctx, account.UID); delErr != nil {
			u.log.Errorf("Failed to roll back identity account %s: %+v", account.UID, delErr)
		}
		if errors.Is(err, docstore.ErrAlreadyExists) {
			return ErrAlreadyRegistered
		}
		u.log.Warnf("Failed to store supervisor document: %+v", err)
		return err
	}

	return nil
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	var (
		account *identity.Account
		err     error
	)
	if strings.HasPrefix(req.Identifier, "+") {
		account, err = u.identity.AccountByPhone(ctx, req.Identifier)
	} else {
		account, err = u.identity.AccountByEmail(ctx, req.Identifier)
	}
	if errors.Is(err, identity.ErrAccountNotFound) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		u.log.Warnf("Failed to look up account: %+v", err)
		return nil, err
	}

	return u.issueToken(ctx, account.UID)
}

func (u *authUsecase) RequestReset(ctx context.Context, req *dto.ResetRequestRequest) error {
	userKey, _, err := u.resolveByPhone(ctx, req.Phone)
	if err != nil {
		return err
	}

	code := u.newCode()
	if err := u.tickets.Put(ctx, userKey, code, u.resetTTL); err != nil {
		u.log.Warnf("Failed to store reset ticket: %+v", err)
		return err
	}

	// Delivery of the code happens out of band (SMS gateway); it is
	// never part of the response.
	u.log.WithField("user", userKey).Info("Reset code issued")
	return nil
}

func (u *authUsecase) VerifyReset(ctx context.Context, req *dto.ResetVerifyRequest) (*dto.TokenResponse, error) {
	userKey, user, err := u.resolveByPhone(ctx, req.Phone)
	if err != nil {
		return nil, err
	}

	ticket, err := u.tickets.Get(ctx, userKey)
	if errors.Is(err, repository.ErrTicketNotFound) {
		return nil, ErrResetTicketNotFound
	}
	if err != nil {
		u.log.Warnf("Failed to load reset ticket: %+v", err)
		return nil, err
	}

	if ticket.Attempts >= entity.MaxResetAttempts {
		_ = u.tickets.Delete(ctx, userKey)
		return nil, ErrTooManyResetAttempts
	}

	if ticket.Code != req.Code {
		attempts, incErr := u.tickets.IncrementAttempts(ctx, userKey)
		if incErr != nil {
			u.log.Warnf("Failed to record reset attempt: %+v", incErr)
			return nil, incErr
		}
		if attempts >= entity.MaxResetAttempts {
			_ = u.tickets.Delete(ctx, userKey)
			return nil, ErrTooManyResetAttempts
		}
		return nil, ErrResetCodeMismatch
	}

	if err := u.tickets.Delete(ctx, userKey); err != nil {
		u.log.Warnf("Failed to delete used reset ticket: %+v", err)
		return nil, err
	}

	now := time.Now().UTC()
	if err := u.userRepo.Update(ctx, userKey, map[string]interface{}{
		"last_login": now.Format(time.RFC3339Nano),
	}); err != nil {
		u.log.Warnf("Failed to stamp last login: %+v", err)
	}

	return u.issueToken(ctx, user.UID)
}

// resolveByPhone finds the user document for a phone number: direct key
// lookup first, then a uid query through the identity provider for
// workers keyed by their generated id.
func (u *authUsecase) resolveByPhone(ctx context.Context, phone string) (string, *entity.User, error) {
	user, err := u.userRepo.FindByKey(ctx, phone)
	if err == nil {
		return phone, user, nil
	}
	if !errors.Is(err, docstore.ErrNotFound) {
		return "", nil, err
	}

	account, err := u.identity.AccountByPhone(ctx, phone)
	if errors.Is(err, identity.ErrAccountNotFound) {
		return "", nil, ErrAccountNotFound
	}
	if err != nil {
		return "", nil, err
	}

	key, user, err := u.userRepo.FindByUID(ctx, account.UID)
	if errors.Is(err, docstore.ErrNotFound) {
		return "", nil, ErrAccountNotFound
	}
	if err != nil {
		return "", nil, err
	}
	return key, user, nil
}

func (u *authUsecase) issueToken(ctx context.Context, uid string) (*dto.TokenResponse, error) {
	customToken, err := u.identity.CustomToken(ctx, uid)
	if err != nil {
		u.log.Warnf("Failed to mint custom token: %+v", err)
		return nil, err
	}

	idToken, err := u.exchanger.Exchange(ctx, customToken)
	if err != nil {
		u.log.Warnf("Failed to exchange custom token: %+v", err)
		return nil, err
	}

	return &dto.TokenResponse{AccessToken: idToken, TokenType: "bearer"}, nil
}
