package domain

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

type User struct {
	ID        int
	Name      string
	Email     string
	Password  Password
	Role      Role
	CreatedAt time.Time
}

type Password struct {
	Hash []byte
}

func (p *Password) Set(plaintext string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), 12)
	if err != nil {
		return err
	}

	p.Hash = hash

	return nil
}

func (p *Password) Matches(plaintext string) bool {
	return bcrypt.CompareHashAndPassword(p.Hash, []byte(plaintext)) == nil
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetById(ctx context.Context, id int) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetAll(ctx context.Context) ([]User, error)
	UpdateRole(ctx context.Context, id int, role Role) (*User, error)
	Delete(ctx context.Context, id int) error
}
