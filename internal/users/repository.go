package users

import (
	"context"

	"github.com/dmitrijs2005/credtable/internal/credtable"
)

type Repository interface {
	Create(ctx context.Context, userName, password string) (*User, error)
	GetUserByLogin(ctx context.Context, userName string) (*User, error)
	CheckPassword(ctx context.Context, userName, password string) error
	UpdatePassword(ctx context.Context, userName, currentPassword, newPassword string) error
}

// InMemoryRepository keeps accounts in a credential table.
type InMemoryRepository struct {
	table *credtable.SyncTable
}

func NewInMemoryRepository(table *credtable.SyncTable) *InMemoryRepository {
	return &InMemoryRepository{table: table}
}

func (r *InMemoryRepository) Create(ctx context.Context, userName, password string) (*User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := r.table.AddUser(userName, password); err != nil {
		return nil, err
	}
	return r.GetUserByLogin(ctx, userName)
}

func (r *InMemoryRepository) GetUserByLogin(ctx context.Context, userName string) (*User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rec, err := r.table.Get(userName)
	if err != nil {
		return nil, err
	}
	return &User{UserName: rec.Username, Salt: rec.Salt, Verifier: rec.PasswordDigest}, nil
}

func (r *InMemoryRepository) CheckPassword(ctx context.Context, userName, password string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.table.Verify(userName, password)
}

func (r *InMemoryRepository) UpdatePassword(ctx context.Context, userName, currentPassword, newPassword string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.table.UpdatePassword(userName, currentPassword, newPassword)
}
