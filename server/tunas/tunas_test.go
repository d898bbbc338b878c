package tunas

import (
	"context"
	"errors"
	"testing"

	"github.com/dekarrin/relang/server/dao"
	"github.com/dekarrin/relang/server/dao/inmem"
	"github.com/dekarrin/relang/server/serr"
	"github.com/stretchr/testify/assert"
)

func newTestService() Service {
	return Service{DB: inmem.NewDatastore()}
}

func Test_Service_CreateUser_And_Login(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, "alice", "hunter2", "alice@example.com", dao.Normal)
	assert.NoError(t, err)
	assert.NotEqual(t, "hunter2", created.Password, "password must be hashed before storage")

	logged, err := svc.Login(ctx, "alice", "hunter2")
	assert.NoError(t, err)
	assert.Equal(t, created.ID, logged.ID)
}

func Test_Service_Login_RejectsBadPassword(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, "alice", "hunter2", "", dao.Normal)
	assert.NoError(t, err)

	_, err = svc.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, serr.ErrBadCredentials)
}

func Test_Service_Login_RejectsUnknownUser(t *testing.T) {
	svc := newTestService()

	_, err := svc.Login(context.Background(), "nobody", "whatever")
	assert.ErrorIs(t, err, serr.ErrBadCredentials)
}

func Test_Service_CreateUser_RejectsDuplicateUsername(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, "alice", "hunter2", "", dao.Normal)
	assert.NoError(t, err)

	_, err = svc.CreateUser(ctx, "alice", "different", "", dao.Normal)
	assert.ErrorIs(t, err, serr.ErrAlreadyExists)
}

func Test_Service_CreateUser_RejectsInvalidEmail(t *testing.T) {
	svc := newTestService()

	_, err := svc.CreateUser(context.Background(), "alice", "hunter2", "not-an-email", dao.Normal)
	var serrErr serr.Error
	assert.True(t, errors.As(err, &serrErr))
	assert.ErrorIs(t, err, serr.ErrBadArgument)
}

func Test_Service_GetUser_And_DeleteUser_ByStringID(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, "alice", "hunter2", "", dao.Normal)
	assert.NoError(t, err)

	fetched, err := svc.GetUser(ctx, created.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)

	deleted, err := svc.DeleteUser(ctx, created.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)

	_, err = svc.GetUser(ctx, created.ID.String())
	assert.ErrorIs(t, err, serr.ErrNotFound)
}

func Test_Service_GetUser_RejectsMalformedID(t *testing.T) {
	svc := newTestService()

	_, err := svc.GetUser(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, serr.ErrBadArgument)
}

func Test_Service_UpdateUser(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, "alice", "hunter2", "", dao.Normal)
	assert.NoError(t, err)

	updated, err := svc.UpdateUser(ctx, created.ID.String(), created.ID.String(), "alicia", "alicia@example.com", dao.Admin)
	assert.NoError(t, err)
	assert.Equal(t, "alicia", updated.Username)
	assert.Equal(t, dao.Admin, updated.Role)
	assert.Equal(t, "alicia@example.com", updated.Email.Address)
}

func Test_Service_UpdatePassword_ChangesHash(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, "alice", "hunter2", "", dao.Normal)
	assert.NoError(t, err)

	_, err = svc.UpdatePassword(ctx, created.ID.String(), "newpassword")
	assert.NoError(t, err)

	_, err = svc.Login(ctx, "alice", "hunter2")
	assert.ErrorIs(t, err, serr.ErrBadCredentials)

	logged, err := svc.Login(ctx, "alice", "newpassword")
	assert.NoError(t, err)
	assert.Equal(t, created.ID, logged.ID)
}

func Test_Service_Logout_BumpsLastLogoutTime(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, "alice", "hunter2", "", dao.Normal)
	assert.NoError(t, err)

	updated, err := svc.Logout(ctx, created.ID)
	assert.NoError(t, err)
	assert.True(t, updated.LastLogoutTime.After(created.LastLogoutTime) || updated.LastLogoutTime.Equal(created.LastLogoutTime))
}

func Test_Service_GetAllUsers(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, "alice", "hunter2", "", dao.Normal)
	assert.NoError(t, err)
	_, err = svc.CreateUser(ctx, "bob", "hunter2", "", dao.Normal)
	assert.NoError(t, err)

	all, err := svc.GetAllUsers(ctx)
	assert.NoError(t, err)
	assert.Len(t, all, 2)
}
