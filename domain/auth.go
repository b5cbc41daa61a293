package domain

import (
	"github.com/golang-jwt/jwt"

	"github.com/bidmarket/goapi/base/ctx"
)

type JwtCustomClaims struct {
	Account string `json:"account"`
	jwt.StandardClaims
}

type AuthUsecase interface {
	SignToken(ctx ctx.Ctx, account AccountId) (string, error)
	ParseToken(ctx ctx.Ctx, token string) (string, error)
}
