package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bidmarket/goapi/base/ctx"
	"github.com/bidmarket/goapi/stores/auth/usecase"
)

func TestSignAndParseToken(t *testing.T) {
	ctx := ctx.Background()
	u := usecase.New("jwt-secret")
	tkn, err := u.SignToken(ctx, "market.alice")
	assert.NoError(t, err)
	assert.NotEmpty(t, tkn)
	acc, err := u.ParseToken(ctx, tkn)
	assert.NoError(t, err)
	assert.Equal(t, "market.alice", acc)
}

func TestSignTokenRejectsMalformedAccount(t *testing.T) {
	ctx := ctx.Background()
	u := usecase.New("jwt-secret")
	_, err := u.SignToken(ctx, "Not A Valid Account")
	assert.Error(t, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	ctx := ctx.Background()
	u := usecase.New("jwt-secret")
	_, err := u.ParseToken(ctx, "not-a-token")
	assert.Error(t, err)
}

func TestParseTokenRejectsForeignSecret(t *testing.T) {
	ctx := ctx.Background()
	signer := usecase.New("jwt-secret")
	verifier := usecase.New("other-secret")
	tkn, err := signer.SignToken(ctx, "market.alice")
	assert.NoError(t, err)
	_, err = verifier.ParseToken(ctx, tkn)
	assert.Error(t, err)
}
