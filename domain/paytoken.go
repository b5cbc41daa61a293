package domain

import (
	"github.com/bidmarket/goapi/base/ctx"
)

// PayToken is a settlement currency registered with the market. The native
// currency is implicitly registered at bootstrap.
type PayToken struct {
	CurrencyId CurrencyId `json:"currencyId" bson:"currencyId"`
	Name       string     `json:"name" bson:"name"`
	Symbol     string     `json:"symbol" bson:"symbol"`
	// Decimals is used to render base units as display prices
	Decimals int32 `json:"decimals" bson:"decimals"`
	// TransferServiceUrl is the fungible-balance transfer collaborator for
	// this currency; empty for native
	TransferServiceUrl string `json:"transferServiceUrl" bson:"transferServiceUrl"`
}

type PayTokenRepo interface {
	FindOne(ctx.Ctx, CurrencyId) (*PayToken, error)
	FindAll(ctx.Ctx) ([]*PayToken, error)
	Upsert(ctx.Ctx, *PayToken) error
}
