package auth

import (
	"context"
	"database/sql"
	"strings"

	"github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// Accounts is the persistence surface for registered accounts.
type Accounts interface {
	Create(ctx context.Context, record *Account) (*Account, error)
	GetByEmail(ctx context.Context, email string) (*Account, error)
}

type accounts struct {
	db *bun.DB
}

var _ Accounts = (*accounts)(nil)

// NewAccountsRepository returns a bun backed Accounts store.
func NewAccountsRepository(db *bun.DB) Accounts {
	return &accounts{db: db}
}

func (a *accounts) Create(ctx context.Context, record *Account) (*Account, error) {
	if _, err := a.db.NewInsert().Model(record).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAccountExists
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to create account")
	}
	return record, nil
}

func (a *accounts) GetByEmail(ctx context.Context, email string) (*Account, error) {
	record := &Account{}
	err := a.db.NewSelect().
		Model(record).
		Where("email = ?", strings.TrimSpace(email)).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.New("account not found", errors.CategoryNotFound).
				WithCode(errors.CodeNotFound)
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load account")
	}

	return record, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "duplicate key value")
}
