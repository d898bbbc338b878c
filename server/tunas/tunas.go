// Package tunas holds the business logic for the relang server, decoupled
// from the HTTP API that exposes it.
package tunas

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dekarrin/relang/server/dao"
	"github.com/dekarrin/relang/server/serr"
)

// Service is a service for interacting with and modifying the relang server
// backend. It performs the actions requested and makes calls to server
// persistence to preserve the backend state.
//
// The zero-value of Service is not ready to be used; assign a valid DAO store
// to DB before attempting to use it.
type Service struct {

	// DB is the persistence store of the service.
	DB dao.Store
}

// Login checks username and password against stored credentials and, if they
// match, updates the user's last-login time and returns the user.
func (svc Service) Login(ctx context.Context, username, password string) (dao.User, error) {
	user, err := svc.DB.Users().GetByUsername(ctx, username)
	if err != nil {
		if err == dao.ErrNotFound {
			return dao.User{}, serr.New("", serr.ErrBadCredentials)
		}
		return dao.User{}, serr.New("get user", err, serr.ErrDB)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return dao.User{}, serr.New("", serr.ErrBadCredentials)
	}

	user.LastLoginTime = time.Now()
	user, err = svc.DB.Users().Update(ctx, user.ID, user)
	if err != nil {
		return dao.User{}, serr.New("update last login time", err, serr.ErrDB)
	}

	return user, nil
}

// Logout invalidates every token issued to the given user by bumping their
// last-logout time, then returns the updated user.
func (svc Service) Logout(ctx context.Context, id uuid.UUID) (dao.User, error) {
	user, err := svc.DB.Users().GetByID(ctx, id)
	if err != nil {
		if err == dao.ErrNotFound {
			return dao.User{}, serr.New("", serr.ErrNotFound)
		}
		return dao.User{}, serr.New("get user", err, serr.ErrDB)
	}

	user.LastLogoutTime = time.Now()
	user, err = svc.DB.Users().Update(ctx, user.ID, user)
	if err != nil {
		return dao.User{}, serr.New("update last logout time", err, serr.ErrDB)
	}

	return user, nil
}

// CreateUser creates a new user with the given credentials, hashing password
// with bcrypt before it ever reaches persistence.
func (svc Service) CreateUser(ctx context.Context, username, password, email string, role dao.Role) (dao.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return dao.User{}, serr.New("hash password", err)
	}

	var addr *mail.Address
	if email != "" {
		addr, err = mail.ParseAddress(email)
		if err != nil {
			return dao.User{}, serr.New(fmt.Sprintf("email %q is invalid", email), err, serr.ErrBadArgument)
		}
	}

	user := dao.User{
		Username: username,
		Password: string(hash),
		Email:    addr,
		Role:     role,
	}

	created, err := svc.DB.Users().Create(ctx, user)
	if err != nil {
		if err == dao.ErrConstraintViolation {
			return dao.User{}, serr.New(fmt.Sprintf("user %q already exists", username), err, serr.ErrAlreadyExists)
		}
		return dao.User{}, serr.New("create user", err, serr.ErrDB)
	}

	return created, nil
}

// GetUser looks up a user by its string-form UUID.
func (svc Service) GetUser(ctx context.Context, id string) (dao.User, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return dao.User{}, serr.New(fmt.Sprintf("%q is not a valid ID", id), err, serr.ErrBadArgument)
	}

	user, err := svc.DB.Users().GetByID(ctx, parsed)
	if err != nil {
		if err == dao.ErrNotFound {
			return dao.User{}, serr.New("", serr.ErrNotFound)
		}
		return dao.User{}, serr.New("get user", err, serr.ErrDB)
	}

	return user, nil
}

// GetAllUsers returns every registered user.
func (svc Service) GetAllUsers(ctx context.Context) ([]dao.User, error) {
	all, err := svc.DB.Users().GetAll(ctx)
	if err != nil {
		return nil, serr.New("get all users", err, serr.ErrDB)
	}
	return all, nil
}

// DeleteUser removes a user by its string-form UUID.
func (svc Service) DeleteUser(ctx context.Context, id string) (dao.User, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return dao.User{}, serr.New(fmt.Sprintf("%q is not a valid ID", id), err, serr.ErrBadArgument)
	}

	deleted, err := svc.DB.Users().Delete(ctx, parsed)
	if err != nil {
		if err == dao.ErrNotFound {
			return dao.User{}, serr.New("", serr.ErrNotFound)
		}
		return dao.User{}, serr.New("delete user", err, serr.ErrDB)
	}
	return deleted, nil
}

// UpdateUser applies the given field values to the user identified by id.
// newID allows the user's ID itself to be changed (used by replace-style
// updates); pass the existing ID to leave it as-is.
func (svc Service) UpdateUser(ctx context.Context, id, newID, newUsername, newEmail string, newRole dao.Role) (dao.User, error) {
	parsedID, err := uuid.Parse(id)
	if err != nil {
		return dao.User{}, serr.New(fmt.Sprintf("%q is not a valid ID", id), err, serr.ErrBadArgument)
	}

	existing, err := svc.DB.Users().GetByID(ctx, parsedID)
	if err != nil {
		if err == dao.ErrNotFound {
			return dao.User{}, serr.New("", serr.ErrNotFound)
		}
		return dao.User{}, serr.New("get user", err, serr.ErrDB)
	}

	parsedNewID, err := uuid.Parse(newID)
	if err != nil {
		return dao.User{}, serr.New(fmt.Sprintf("%q is not a valid ID", newID), err, serr.ErrBadArgument)
	}
	existing.ID = parsedNewID
	existing.Username = newUsername
	existing.Role = newRole

	var addr *mail.Address
	if newEmail != "" {
		addr, err = mail.ParseAddress(newEmail)
		if err != nil {
			return dao.User{}, serr.New(fmt.Sprintf("email %q is invalid", newEmail), err, serr.ErrBadArgument)
		}
	}
	existing.Email = addr

	updated, err := svc.DB.Users().Update(ctx, parsedID, existing)
	if err != nil {
		if err == dao.ErrConstraintViolation {
			return dao.User{}, serr.New(fmt.Sprintf("user %q already exists", newUsername), err, serr.ErrAlreadyExists)
		}
		return dao.User{}, serr.New("update user", err, serr.ErrDB)
	}
	return updated, nil
}

// UpdatePassword sets a new password for the user identified by id, hashing
// it with bcrypt before it reaches persistence.
func (svc Service) UpdatePassword(ctx context.Context, id, newPassword string) (dao.User, error) {
	parsedID, err := uuid.Parse(id)
	if err != nil {
		return dao.User{}, serr.New(fmt.Sprintf("%q is not a valid ID", id), err, serr.ErrBadArgument)
	}

	existing, err := svc.DB.Users().GetByID(ctx, parsedID)
	if err != nil {
		if err == dao.ErrNotFound {
			return dao.User{}, serr.New("", serr.ErrNotFound)
		}
		return dao.User{}, serr.New("get user", err, serr.ErrDB)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return dao.User{}, serr.New("hash password", err)
	}
	existing.Password = string(hash)

	updated, err := svc.DB.Users().Update(ctx, parsedID, existing)
	if err != nil {
		return dao.User{}, serr.New("update password", err, serr.ErrDB)
	}
	return updated, nil
}
