package auth

import (
	"time"

	"github.com/uptrace/bun"
)

// Account is the persisted account model. Created on register, read on
// login, never mutated here.
type Account struct {
	bun.BaseModel `bun:"table:accounts,alias:acc"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id,omitempty"`
	Name          string    `bun:"name,notnull" json:"name,omitempty"`
	Email         string    `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash  string    `bun:"password_hash,notnull" json:"-"`
	CreatedAt     time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at,omitempty"`
}

// Identity resolves the account into the minimal identity attached to
// authenticated requests.
func (a *Account) Identity() Identity {
	return Identity{ID: a.ID, Name: a.Name}
}

// TokenSession is one refresh session entry: refresh id to raw refresh
// token value. Written at login, read during refresh, never updated.
type TokenSession struct {
	bun.BaseModel `bun:"table:token_sessions,alias:ts"`
	RefreshID     string    `bun:"refresh_id,pk" json:"refresh_id,omitempty"`
	RefreshToken  string    `bun:"refresh_token,notnull" json:"-"`
	CreatedAt     time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at,omitempty"`
}
