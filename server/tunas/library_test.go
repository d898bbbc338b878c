package tunas

import (
	"context"
	"testing"

	"github.com/dekarrin/relang/server/dao"
	"github.com/dekarrin/relang/server/serr"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func Test_Service_CreateLibraryItem_ValidatesSource(t *testing.T) {
	svc := newTestService()
	owner := uuid.New()

	created, err := svc.CreateLibraryItem(context.Background(), owner, "evens", dao.KindRegex, "(0|1)*0")
	assert.NoError(t, err)
	assert.Equal(t, "evens", created.Name)
	assert.Equal(t, owner, created.OwnerID)
}

func Test_Service_CreateLibraryItem_RejectsBadRegex(t *testing.T) {
	svc := newTestService()
	owner := uuid.New()

	_, err := svc.CreateLibraryItem(context.Background(), owner, "bad", dao.KindRegex, "(0|1")
	assert.ErrorIs(t, err, serr.ErrBadArgument)
}

func Test_Service_CreateLibraryItem_RejectsDuplicateName(t *testing.T) {
	svc := newTestService()
	owner := uuid.New()
	ctx := context.Background()

	_, err := svc.CreateLibraryItem(ctx, owner, "evens", dao.KindRegex, "(0|1)*0")
	assert.NoError(t, err)

	_, err = svc.CreateLibraryItem(ctx, owner, "evens", dao.KindRegex, "1*")
	assert.ErrorIs(t, err, serr.ErrAlreadyExists)
}

func Test_Service_Operate_Union(t *testing.T) {
	svc := newTestService()
	owner := uuid.New()
	ctx := context.Background()

	left, err := svc.CreateLibraryItem(ctx, owner, "a", dao.KindRegex, "a")
	assert.NoError(t, err)
	right, err := svc.CreateLibraryItem(ctx, owner, "b", dao.KindRegex, "b")
	assert.NoError(t, err)

	res, err := svc.Operate(ctx, OperateRequest{Op: "union", Left: left.ID, Right: right.ID})
	assert.NoError(t, err)
	assert.NotNil(t, res.Automaton)
}

func Test_Service_Operate_Evaluate(t *testing.T) {
	svc := newTestService()
	owner := uuid.New()
	ctx := context.Background()

	item, err := svc.CreateLibraryItem(ctx, owner, "aplus", dao.KindRegex, "aa*")
	assert.NoError(t, err)

	res, err := svc.Operate(ctx, OperateRequest{Op: "evaluate", Left: item.ID, Sentence: "aaa"})
	assert.NoError(t, err)
	assert.NotNil(t, res.Accepted)
	assert.True(t, *res.Accepted)

	res, err = svc.Operate(ctx, OperateRequest{Op: "evaluate", Left: item.ID, Sentence: "b"})
	assert.NoError(t, err)
	assert.False(t, *res.Accepted)
}

func Test_Service_Operate_Equivalent(t *testing.T) {
	svc := newTestService()
	owner := uuid.New()
	ctx := context.Background()

	left, err := svc.CreateLibraryItem(ctx, owner, "g1", dao.KindGrammar, "S -> aS | &")
	assert.NoError(t, err)
	right, err := svc.CreateLibraryItem(ctx, owner, "g2", dao.KindRegex, "a*")
	assert.NoError(t, err)

	res, err := svc.Operate(ctx, OperateRequest{Op: "equivalent", Left: left.ID, Right: right.ID})
	assert.NoError(t, err)
	assert.NotNil(t, res.Equal)
	assert.True(t, *res.Equal)
}

func Test_Service_Operate_Complete(t *testing.T) {
	svc := newTestService()
	owner := uuid.New()
	ctx := context.Background()

	item, err := svc.CreateLibraryItem(ctx, owner, "ab", dao.KindRegex, "ab")
	assert.NoError(t, err)

	res, err := svc.Operate(ctx, OperateRequest{Op: "complete", Left: item.ID})
	assert.NoError(t, err)
	assert.NotNil(t, res.Automaton)
	assert.True(t, res.Automaton.IsComplete())
}

func Test_Service_Operate_UnknownOp(t *testing.T) {
	svc := newTestService()
	owner := uuid.New()
	ctx := context.Background()

	item, err := svc.CreateLibraryItem(ctx, owner, "a", dao.KindRegex, "a")
	assert.NoError(t, err)

	_, err = svc.Operate(ctx, OperateRequest{Op: "bogus", Left: item.ID})
	assert.ErrorIs(t, err, serr.ErrBadArgument)
}

func Test_Service_UpdateLibraryItem_RejectsBadSourceForExistingKind(t *testing.T) {
	svc := newTestService()
	owner := uuid.New()
	ctx := context.Background()

	item, err := svc.CreateLibraryItem(ctx, owner, "a", dao.KindRegex, "a")
	assert.NoError(t, err)

	_, err = svc.UpdateLibraryItem(ctx, item.ID, "a", "(a")
	assert.ErrorIs(t, err, serr.ErrBadArgument)
}

func Test_Service_DeleteLibraryItem(t *testing.T) {
	svc := newTestService()
	owner := uuid.New()
	ctx := context.Background()

	item, err := svc.CreateLibraryItem(ctx, owner, "a", dao.KindRegex, "a")
	assert.NoError(t, err)

	deleted, err := svc.DeleteLibraryItem(ctx, item.ID)
	assert.NoError(t, err)
	assert.Equal(t, item.ID, deleted.ID)

	_, err = svc.GetLibraryItem(ctx, item.ID)
	assert.ErrorIs(t, err, serr.ErrNotFound)
}
