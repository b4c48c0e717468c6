package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/TheLMNTRIX/Sangath/internal/domain/entity"
	"github.com/TheLMNTRIX/Sangath/internal/domain/repository"
	"github.com/TheLMNTRIX/Sangath/internal/infrastructure/docstore"
	"github.com/TheLMNTRIX/Sangath/internal/infrastructure/identity"

	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// fakeIdentity is an in-memory identity provider recording mutations so
// tests can assert rollback and revocation ordering.
type fakeIdentity struct {
	accounts map[string]*identity.Account // uid -> account
	nextUID  int

	created []identity.CreateParams
	deleted []string
	pwByUID map[string]string

	createErr      error
	deleteErr      error
	customTokenErr error
}

func newFakeIdentity() *fakeIdentity {
	return &fakeIdentity{
		accounts: make(map[string]*identity.Account),
		pwByUID:  make(map[string]string),
	}
}

func (f *fakeIdentity) addAccount(uid, phone, email string) {
	f.accounts[uid] = &identity.Account{UID: uid, Phone: phone, Email: email}
}

func (f *fakeIdentity) VerifyToken(ctx context.Context, token string) (string, error) {
	return "", errors.New("not used")
}

func (f *fakeIdentity) Account(ctx context.Context, uid string) (*identity.Account, error) {
	account, ok := f.accounts[uid]
	if !ok {
		return nil, identity.ErrAccountNotFound
	}
	return account, nil
}

func (f *fakeIdentity) AccountByPhone(ctx context.Context, phone string) (*identity.Account, error) {
	for _, account := range f.accounts {
		if account.Phone == phone {
			return account, nil
		}
	}
	return nil, identity.ErrAccountNotFound
}

func (f *fakeIdentity) AccountByEmail(ctx context.Context, email string) (*identity.Account, error) {
	for _, account := range f.accounts {
		if account.Email == email {
			return account, nil
		}
	}
	return nil, identity.ErrAccountNotFound
}

func (f *fakeIdentity) CreateAccount(ctx context.Context, params identity.CreateParams) (*identity.Account, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextUID++
	uid := fmt.Sprintf("uid-%d", f.nextUID)
	account := &identity.Account{UID: uid, Phone: params.Phone, Email: params.Email, DisplayName: params.DisplayName}
	f.accounts[uid] = account
	f.created = append(f.created, params)
	return account, nil
}

func (f *fakeIdentity) UpdatePassword(ctx context.Context, uid, password string) error {
	if _, ok := f.accounts[uid]; !ok {
		return identity.ErrAccountNotFound
	}
	f.pwByUID[uid] = password
	return nil
}

func (f *fakeIdentity) DeleteAccount(ctx context.Context, uid string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.accounts[uid]; !ok {
		return identity.ErrAccountNotFound
	}
	delete(f.accounts, uid)
	f.deleted = append(f.deleted, uid)
	return nil
}

func (f *fakeIdentity) CustomToken(ctx context.Context, uid string) (string, error) {
	if f.customTokenErr != nil {
		return "", f.customTokenErr
	}
	return "custom-" + uid, nil
}

// fakeExchanger swaps a custom token for a deterministic bearer token.
type fakeExchanger struct{}

func (fakeExchanger) Exchange(ctx context.Context, customToken string) (string, error) {
	return "id-" + customToken, nil
}

// fakeTickets is a map-backed reset-ticket store; TTLs are ignored.
type fakeTickets struct {
	tickets map[string]*entity.ResetTicket
}

func newFakeTickets() *fakeTickets {
	return &fakeTickets{tickets: make(map[string]*entity.ResetTicket)}
}

func (f *fakeTickets) Put(ctx context.Context, userKey, code string, ttl time.Duration) error {
	f.tickets[userKey] = &entity.ResetTicket{Code: code}
	return nil
}

func (f *fakeTickets) Get(ctx context.Context, userKey string) (*entity.ResetTicket, error) {
	ticket, ok := f.tickets[userKey]
	if !ok {
		return nil, repository.ErrTicketNotFound
	}
	return &entity.ResetTicket{Code: ticket.Code, Attempts: ticket.Attempts}, nil
}

func (f *fakeTickets) IncrementAttempts(ctx context.Context, userKey string) (int, error) {
	ticket, ok := f.tickets[userKey]
	if !ok {
		return 0, repository.ErrTicketNotFound
	}
	ticket.Attempts++
	return ticket.Attempts, nil
}

func (f *fakeTickets) Delete(ctx context.Context, userKey string) error {
	delete(f.tickets, userKey)
	return nil
}

// failingCreateStore rejects every Create, leaving reads intact.
type failingCreateStore struct {
	docstore.Store
	err error
}

func (s *failingCreateStore) Create(ctx context.Context, collection, key string, data map[string]interface{}) error {
	return s.err
}

func seedDoc(t *testing.T, store docstore.Store, collection, key string, v interface{}) {
	t.Helper()
	data, err := docstore.Encode(v)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if err := store.Set(context.Background(), collection, key, data); err != nil {
		t.Fatalf("Set: %v", err)
	}
}

func strptr(s string) *string { return &s }

func boolptr(b bool) *bool { return &b }
