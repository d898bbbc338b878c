package token

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dekarrin/relang/server/dao"
	"github.com/dekarrin/relang/server/dao/inmem"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func Test_Get_ParsesBearerHeader(t *testing.T) {
	req, err := http.NewRequest(http.MethodGet, "/", nil)
	assert.NoError(t, err)
	req.Header.Set("Authorization", "Bearer abc123")

	tok, err := Get(req)
	assert.NoError(t, err)
	assert.Equal(t, "abc123", tok)
}

func Test_Get_RejectsMissingHeader(t *testing.T) {
	req, err := http.NewRequest(http.MethodGet, "/", nil)
	assert.NoError(t, err)

	_, err = Get(req)
	assert.Error(t, err)
}

func Test_Get_RejectsNonBearerScheme(t *testing.T) {
	req, err := http.NewRequest(http.MethodGet, "/", nil)
	assert.NoError(t, err)
	req.Header.Set("Authorization", "Basic abc123")

	_, err = Get(req)
	assert.Error(t, err)
}

func Test_Generate_And_Validate(t *testing.T) {
	repo := inmem.NewUsersRepository()
	ctx := context.Background()
	u, err := repo.Create(ctx, dao.User{Username: "alice", Password: "hashed", Role: dao.Normal})
	assert.NoError(t, err)

	secret := []byte("super-secret-value-for-signing")
	tok, err := Generate(secret, u)
	assert.NoError(t, err)
	assert.NotEmpty(t, tok)

	validated, err := Validate(ctx, tok, secret, repo)
	assert.NoError(t, err)
	assert.Equal(t, u.ID, validated.ID)
}

func Test_Validate_RejectsTokenAfterLogout(t *testing.T) {
	repo := inmem.NewUsersRepository()
	ctx := context.Background()
	u, err := repo.Create(ctx, dao.User{Username: "alice", Password: "hashed", Role: dao.Normal})
	assert.NoError(t, err)

	secret := []byte("super-secret-value-for-signing")
	tok, err := Generate(secret, u)
	assert.NoError(t, err)

	u.LastLogoutTime = time.Now().Add(time.Minute)
	_, err = repo.Update(ctx, u.ID, u)
	assert.NoError(t, err)

	_, err = Validate(ctx, tok, secret, repo)
	assert.Error(t, err)
}

func Test_Validate_RejectsUnknownSubject(t *testing.T) {
	repo := inmem.NewUsersRepository()
	secret := []byte("super-secret-value-for-signing")

	ghost := dao.User{ID: uuid.New(), Password: "hashed"}
	tok, err := Generate(secret, ghost)
	assert.NoError(t, err)

	_, err = Validate(context.Background(), tok, secret, repo)
	assert.Error(t, err)
}

func Test_Validate_RejectsWrongSecret(t *testing.T) {
	repo := inmem.NewUsersRepository()
	ctx := context.Background()
	u, err := repo.Create(ctx, dao.User{Username: "alice", Password: "hashed"})
	assert.NoError(t, err)

	tok, err := Generate([]byte("secret-one-value-for-signing-x"), u)
	assert.NoError(t, err)

	_, err = Validate(ctx, tok, []byte("secret-two-value-for-signing-y"), repo)
	assert.Error(t, err)
}
