package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/relang/server/dao"
)

func Test_EpCreateLogin_Success(t *testing.T) {
	a := newTestAPI()

	_, err := a.Backend.CreateUser(context.Background(), "alice", "hunter2", "", dao.Normal)
	assert.NoError(t, err)

	req := requestAsUser(http.MethodPost, "/api/v1/login", LoginRequest{Username: "alice", Password: "hunter2"}, dao.User{})
	res := a.epCreateLogin(req)
	assert.Equal(t, http.StatusCreated, res.Status)
}

func Test_EpCreateLogin_RejectsMissingUsername(t *testing.T) {
	a := newTestAPI()

	req := requestAsUser(http.MethodPost, "/api/v1/login", LoginRequest{Password: "hunter2"}, dao.User{})
	res := a.epCreateLogin(req)
	assert.Equal(t, http.StatusBadRequest, res.Status)
}

func Test_EpCreateLogin_RejectsBadCredentials(t *testing.T) {
	a := newTestAPI()

	_, err := a.Backend.CreateUser(context.Background(), "alice", "hunter2", "", dao.Normal)
	assert.NoError(t, err)

	req := requestAsUser(http.MethodPost, "/api/v1/login", LoginRequest{Username: "alice", Password: "wrong"}, dao.User{})
	res := a.epCreateLogin(req)
	assert.Equal(t, http.StatusUnauthorized, res.Status)
}

func Test_EpDeleteLogin_SelfLogoutAllowed(t *testing.T) {
	a := newTestAPI()
	ctx := context.Background()

	created, err := a.Backend.CreateUser(ctx, "alice", "hunter2", "", dao.Normal)
	assert.NoError(t, err)

	req := requestAsUser(http.MethodDelete, "/api/v1/login/"+created.ID.String(), nil, created)
	req = withURLParam(req, "id", created.ID.String())

	res := a.epDeleteLogin(req)
	assert.Equal(t, http.StatusNoContent, res.Status)
}

func Test_EpDeleteLogin_ForbiddenForOtherNonAdmin(t *testing.T) {
	a := newTestAPI()
	ctx := context.Background()

	target, err := a.Backend.CreateUser(ctx, "alice", "hunter2", "", dao.Normal)
	assert.NoError(t, err)
	requester := dao.User{ID: uuid.New(), Username: "bob", Role: dao.Normal}

	req := requestAsUser(http.MethodDelete, "/api/v1/login/"+target.ID.String(), nil, requester)
	req = withURLParam(req, "id", target.ID.String())

	res := a.epDeleteLogin(req)
	assert.Equal(t, http.StatusForbidden, res.Status)
}

func Test_EpDeleteLogin_AdminCanLogoutOthers(t *testing.T) {
	a := newTestAPI()
	ctx := context.Background()

	target, err := a.Backend.CreateUser(ctx, "alice", "hunter2", "", dao.Normal)
	assert.NoError(t, err)
	admin := dao.User{ID: uuid.New(), Username: "root", Role: dao.Admin}

	req := requestAsUser(http.MethodDelete, "/api/v1/login/"+target.ID.String(), nil, admin)
	req = withURLParam(req, "id", target.ID.String())

	res := a.epDeleteLogin(req)
	assert.Equal(t, http.StatusNoContent, res.Status)
}
