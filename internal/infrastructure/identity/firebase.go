package identity

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

// FirebaseClient implements Client on top of the Firebase Admin SDK.
type FirebaseClient struct {
	auth *auth.Client
}

func NewFirebaseClient(ctx context.Context, projectID, credentialsFile string) (*FirebaseClient, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase auth client: %w", err)
	}

	logrus.Info("Successfully connected to Firebase Auth")

	return &FirebaseClient{auth: authClient}, nil
}

func (c *FirebaseClient) VerifyToken(ctx context.Context, token string) (string, error) {
	decoded, err := c.auth.VerifyIDToken(ctx, token)
	if err != nil {
		return "", fmt.Errorf("token verification failed: %w", err)
	}
	return decoded.UID, nil
}

func (c *FirebaseClient) Account(ctx context.Context, uid string) (*Account, error) {
	record, err := c.auth.GetUser(ctx, uid)
	if err != nil {
		if auth.IsUserNotFound(err) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to fetch account %s: %w", uid, err)
	}
	return toAccount(record), nil
}

func (c *FirebaseClient) AccountByPhone(ctx context.Context, phone string) (*Account, error) {
	record, err := c.auth.GetUserByPhoneNumber(ctx, phone)
	if err != nil {
		if auth.IsUserNotFound(err) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to fetch account by phone: %w", err)
	}
	return toAccount(record), nil
}

func (c *FirebaseClient) AccountByEmail(ctx context.Context, email string) (*Account, error) {
	record, err := c.auth.GetUserByEmail(ctx, email)
	if err != nil {
		if auth.IsUserNotFound(err) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to fetch account by email: %w", err)
	}
	return toAccount(record), nil
}

func (c *FirebaseClient) CreateAccount(ctx context.Context, params CreateParams) (*Account, error) {
	create := &auth.UserToCreate{}
	if params.Phone != "" {
		create = create.PhoneNumber(params.Phone)
	}
	if params.Email != "" {
		create = create.Email(params.Email)
	}
	if params.Password != "" {
		create = create.Password(params.Password)
	}
	if params.DisplayName != "" {
		create = create.DisplayName(params.DisplayName)
	}

	record, err := c.auth.CreateUser(ctx, create)
	if err != nil {
		return nil, fmt.Errorf("failed to create identity account: %w", err)
	}
	return toAccount(record), nil
}

func (c *FirebaseClient) UpdatePassword(ctx context.Context, uid, password string) error {
	update := (&auth.UserToUpdate{}).Password(password)
	if _, err := c.auth.UpdateUser(ctx, uid, update); err != nil {
		return fmt.Errorf("failed to update account password: %w", err)
	}
	return nil
}

func (c *FirebaseClient) DeleteAccount(ctx context.Context, uid string) error {
	if err := c.auth.DeleteUser(ctx, uid); err != nil {
		if auth.IsUserNotFound(err) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("failed to delete identity account: %w", err)
	}
	return nil
}

func (c *FirebaseClient) CustomToken(ctx context.Context, uid string) (string, error) {
	token, err := c.auth.CustomToken(ctx, uid)
	if err != nil {
		return "", fmt.Errorf("failed to mint custom token: %w", err)
	}
	return token, nil
}

func toAccount(record *auth.UserRecord) *Account {
	return &Account{
		UID:         record.UID,
		Phone:       record.PhoneNumber,
		Email:       record.Email,
		DisplayName: record.DisplayName,
	}
}
