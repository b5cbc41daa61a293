package usecase

import (
	"math/big"

	bCtx "github.com/bidmarket/goapi/base/ctx"
	"github.com/bidmarket/goapi/base/log"
	"github.com/bidmarket/goapi/domain"
	"github.com/bidmarket/goapi/domain/escrow"
)

type impl struct {
	repo escrow.Repo
}

func New(repo escrow.Repo) escrow.UseCase {
	return &impl{repo}
}

func (im *impl) Balance(ctx bCtx.Ctx, id escrow.BalanceId) (*big.Int, error) {
	balance, err := im.repo.FindOne(ctx, id)
	if err == domain.ErrNotFound {
		return big.NewInt(0), nil
	} else if err != nil {
		return nil, err
	}

	v, err := domain.ParseAmount(balance.Amount)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":    err,
			"id":     id,
			"amount": balance.Amount,
		}).Error("stored balance is malformed")
		return nil, err
	}
	return v, nil
}

func (im *impl) Deposit(ctx bCtx.Ctx, id escrow.BalanceId, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return domain.ErrBadParamInput
	}
	return im.Credit(ctx, id, amount)
}

func (im *impl) Withdraw(ctx bCtx.Ctx, id escrow.BalanceId, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return domain.ErrBadParamInput
	}
	return im.debit(ctx, id, amount)
}

func (im *impl) DebitForSettlement(ctx bCtx.Ctx, id escrow.BalanceId, amount *big.Int) error {
	return im.debit(ctx, id, amount)
}

func (im *impl) Credit(ctx bCtx.Ctx, id escrow.BalanceId, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return domain.ErrBadParamInput
	}

	current, err := im.Balance(ctx, id)
	if err != nil {
		return err
	}

	next := new(big.Int).Add(current, amount)
	return im.repo.Upsert(ctx, &escrow.Balance{
		Owner:    id.Owner,
		Currency: id.Currency,
		Amount:   next.String(),
	})
}

func (im *impl) debit(ctx bCtx.Ctx, id escrow.BalanceId, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return domain.ErrBadParamInput
	}

	current, err := im.Balance(ctx, id)
	if err != nil {
		return err
	}

	if current.Cmp(amount) < 0 {
		return domain.ErrInsufficientFunds
	}

	next := new(big.Int).Sub(current, amount)
	return im.repo.Upsert(ctx, &escrow.Balance{
		Owner:    id.Owner,
		Currency: id.Currency,
		Amount:   next.String(),
	})
}
