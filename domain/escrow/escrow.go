// Package escrow defines the custodial balance ledger backing bids.
// Balances are keyed by (owner, currency); funds enter by explicit deposit
// and leave by withdrawal or settlement debit only.
package escrow

import (
	"math/big"

	"github.com/bidmarket/goapi/base/ctx"
	"github.com/bidmarket/goapi/domain"
)

type Balance struct {
	Owner    domain.AccountId  `json:"owner" bson:"owner"`
	Currency domain.CurrencyId `json:"currency" bson:"currency"`
	// Amount is a decimal string of base units
	Amount string `json:"amount" bson:"amount"`
}

func (b *Balance) ToId() BalanceId {
	return BalanceId{Owner: b.Owner, Currency: b.Currency}
}

type BalanceId struct {
	Owner    domain.AccountId  `json:"owner" bson:"owner"`
	Currency domain.CurrencyId `json:"currency" bson:"currency"`
}

type Repo interface {
	FindOne(ctx ctx.Ctx, id BalanceId) (*Balance, error)
	Upsert(ctx ctx.Ctx, balance *Balance) error
}

type UseCase interface {
	// Deposit credits the balance, creating it on first use.
	Deposit(ctx ctx.Ctx, id BalanceId, amount *big.Int) error
	// Withdraw returns funds to the owner. Fails with
	// domain.ErrInsufficientFunds when amount exceeds the balance.
	Withdraw(ctx ctx.Ctx, id BalanceId, amount *big.Int) error
	// Balance reads the current amount; missing balances read as zero.
	Balance(ctx ctx.Ctx, id BalanceId) (*big.Int, error)
	// DebitForSettlement is invoked by the settlement protocol only. It is
	// the lazy sufficiency check: a bid may have been placed against funds
	// that are no longer there, in which case the debit fails and the
	// caller treats the bid as unselectable.
	DebitForSettlement(ctx ctx.Ctx, id BalanceId, amount *big.Int) error
	// Credit books a refund or an incoming settlement payout.
	Credit(ctx ctx.Ctx, id BalanceId, amount *big.Int) error
}
