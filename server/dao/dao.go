// Package dao provides data access objects for use in the relang server.
package dao

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrConstraintViolation = errors.New("a uniqueness constraint was violated")
	ErrNotFound            = errors.New("the requested resource was not found")
	ErrDecodingFailure     = errors.New("field could not be decoded from DB storage format to model format")
)

// Store holds all the repositories.
type Store interface {
	Users() UserRepository
	Library() LibraryRepository
	Close() error
}

type UserRepository interface {

	// Create creates a new User. All attributes except for auto-generated
	// fields are taken from the provided User.
	Create(ctx context.Context, user User) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	GetAll(ctx context.Context) ([]User, error)
	Update(ctx context.Context, id uuid.UUID, user User) (User, error)
	Delete(ctx context.Context, id uuid.UUID) (User, error)

	// Close closes the connection.
	Close() error
}

type Role int

const (
	Guest Role = iota
	Unverified
	Normal

	Admin Role = 100
)

func (r Role) String() string {
	switch r {
	case Guest:
		return "guest"
	case Unverified:
		return "unverified"
	case Normal:
		return "normal"
	case Admin:
		return "admin"
	default:
		return fmt.Sprintf("Role(%d)", r)
	}
}

func ParseRole(s string) (Role, error) {
	check := strings.ToLower(s)
	switch check {
	case "guest":
		return Guest, nil
	case "unverified":
		return Unverified, nil
	case "normal":
		return Normal, nil
	case "admin":
		return Admin, nil
	default:
		return Guest, fmt.Errorf("must be one of 'guest', 'unverified', 'normal', or 'admin'")
	}
}

type User struct {
	ID             uuid.UUID     // PK, NOT NULL
	Username       string        // UNIQUE, NOT NULL
	Password       string        // NOT NULL
	Email          *mail.Address // NOT NULL
	Role           Role          // NOT NULL
	Created        time.Time     // NOT NULL
	Modified       time.Time
	LastLogoutTime time.Time // NOT NULL DEFAULT NOW()
	LastLoginTime  time.Time // NOT NULL
}

// ItemKind identifies what kind of entity a LibraryItem's Source holds.
type ItemKind string

const (
	KindAutomaton ItemKind = "automaton"
	KindRegex     ItemKind = "regex"
	KindGrammar   ItemKind = "grammar"
)

func (k ItemKind) String() string {
	return string(k)
}

// ParseItemKind parses a string into an ItemKind.
func ParseItemKind(s string) (ItemKind, error) {
	switch strings.ToLower(s) {
	case "automaton":
		return KindAutomaton, nil
	case "regex":
		return KindRegex, nil
	case "grammar":
		return KindGrammar, nil
	default:
		return "", fmt.Errorf("must be one of 'automaton', 'regex', or 'grammar'")
	}
}

// LibraryRepository stores named automata, regexes, and grammars owned by
// users.
type LibraryRepository interface {
	Create(ctx context.Context, item LibraryItem) (LibraryItem, error)
	GetByID(ctx context.Context, id uuid.UUID) (LibraryItem, error)
	GetByOwnerAndName(ctx context.Context, ownerID uuid.UUID, name string) (LibraryItem, error)
	GetAllByOwner(ctx context.Context, ownerID uuid.UUID) ([]LibraryItem, error)
	Update(ctx context.Context, id uuid.UUID, item LibraryItem) (LibraryItem, error)
	Delete(ctx context.Context, id uuid.UUID) (LibraryItem, error)
	Close() error
}

// LibraryItem is a single named automaton, regex, or grammar saved by a user,
// analogous to one entry in a .rll library file but addressable over the API.
type LibraryItem struct {
	ID       uuid.UUID // PK, NOT NULL
	OwnerID  uuid.UUID // FK (Many-to-One User.ID), NOT NULL
	Name     string    // NOT NULL
	Kind     ItemKind  // NOT NULL
	Source   string    // NOT NULL; regex text, grammar text, or automaton JSON
	Created  time.Time // NOT NULL
	Modified time.Time // NOT NULL
}
