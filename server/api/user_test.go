package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/relang/server/dao"
)

func Test_EpGetAllUsers_RequiresAdmin(t *testing.T) {
	a := newTestAPI()
	normal := dao.User{ID: uuid.New(), Username: "alice", Role: dao.Normal}

	req := requestAsUser(http.MethodGet, "/api/v1/users", nil, normal)
	res := a.epGetAllUsers(req)
	assert.Equal(t, http.StatusForbidden, res.Status)
}

func Test_EpGetAllUsers_AdminSeesEveryone(t *testing.T) {
	a := newTestAPI()
	admin := dao.User{ID: uuid.New(), Username: "root", Role: dao.Admin}

	_, err := a.Backend.CreateUser(context.Background(), "alice", "hunter2", "", dao.Normal)
	assert.NoError(t, err)

	req := requestAsUser(http.MethodGet, "/api/v1/users", nil, admin)
	res := a.epGetAllUsers(req)
	assert.Equal(t, http.StatusOK, res.Status)
}

func Test_EpCreateUser_RequiresAdmin(t *testing.T) {
	a := newTestAPI()
	normal := dao.User{ID: uuid.New(), Username: "alice", Role: dao.Normal}

	req := requestAsUser(http.MethodPost, "/api/v1/users", UserModel{Username: "bob", Password: "pw"}, normal)
	res := a.epCreateUser(req)
	assert.Equal(t, http.StatusForbidden, res.Status)
}

func Test_EpCreateUser_RejectsMissingPassword(t *testing.T) {
	a := newTestAPI()
	admin := dao.User{ID: uuid.New(), Username: "root", Role: dao.Admin}

	req := requestAsUser(http.MethodPost, "/api/v1/users", UserModel{Username: "bob"}, admin)
	res := a.epCreateUser(req)
	assert.Equal(t, http.StatusBadRequest, res.Status)
}

func Test_EpCreateUser_Success(t *testing.T) {
	a := newTestAPI()
	admin := dao.User{ID: uuid.New(), Username: "root", Role: dao.Admin}

	req := requestAsUser(http.MethodPost, "/api/v1/users", UserModel{Username: "bob", Password: "pw", Role: "normal"}, admin)
	res := a.epCreateUser(req)
	assert.Equal(t, http.StatusCreated, res.Status)
}

func Test_EpCreateUser_RejectsDuplicate(t *testing.T) {
	a := newTestAPI()
	admin := dao.User{ID: uuid.New(), Username: "root", Role: dao.Admin}

	_, err := a.Backend.CreateUser(context.Background(), "bob", "pw", "", dao.Normal)
	assert.NoError(t, err)

	req := requestAsUser(http.MethodPost, "/api/v1/users", UserModel{Username: "bob", Password: "pw"}, admin)
	res := a.epCreateUser(req)
	assert.Equal(t, http.StatusConflict, res.Status)
}
