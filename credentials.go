package auth

import (
	"context"
	"strings"

	"github.com/goliatone/go-errors"
)

// CredentialProvider backs registration and login against the Accounts
// store. The password check is pluggable so a hash based verifier can
// replace equality matching without touching the auth control flow.
type CredentialProvider struct {
	accounts Accounts
	verifier PasswordVerifier
	logger   Logger
}

var (
	_ CredentialStore  = (*CredentialProvider)(nil)
	_ AccountRegistrar = (*CredentialProvider)(nil)
)

// NewCredentialProvider will create a new CredentialProvider
func NewCredentialProvider(accounts Accounts, verifier PasswordVerifier) *CredentialProvider {
	if verifier == nil {
		verifier = BcryptVerifier{}
	}
	return &CredentialProvider{
		accounts: accounts,
		verifier: verifier,
		logger:   defLogger{},
	}
}

func (p *CredentialProvider) WithLogger(logger Logger) *CredentialProvider {
	p.logger = logger
	return p
}

// Register stores a new account. No token is issued on registration.
func (p *CredentialProvider) Register(ctx context.Context, name, email, password string) (*Account, error) {
	hash, err := p.verifier.Hash(password)
	if err != nil {
		return nil, err
	}

	record := &Account{
		Name:         strings.TrimSpace(name),
		Email:        strings.TrimSpace(email),
		PasswordHash: hash,
	}

	return p.accounts.Create(ctx, record)
}

// VerifyCredentials resolves email and password into an Identity. Both
// an unknown email and a bad password surface as ErrInvalidCredentials
// so the response never reveals which field was wrong.
func (p *CredentialProvider) VerifyCredentials(ctx context.Context, email, password string) (Identity, error) {
	account, err := p.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.IsNotFound(err) {
			return Identity{}, ErrInvalidCredentials
		}
		return Identity{}, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve account during verification")
	}

	if err := p.verifier.Compare(password, account.PasswordHash); err != nil {
		return Identity{}, ErrInvalidCredentials
	}

	return account.Identity(), nil
}
