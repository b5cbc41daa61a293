// Package usecase implements two-phase settlement. Settle secures the
// buyer's funds and fires the asset transfer; Resolve consumes the
// pending record exactly once and either disburses the reported payout
// or refunds the buyer in full.
package usecase

import (
	"math/big"
	"time"

	"github.com/google/uuid"

	bCtx "github.com/bidmarket/goapi/base/ctx"
	"github.com/bidmarket/goapi/base/goroutine"
	"github.com/bidmarket/goapi/base/log"
	"github.com/bidmarket/goapi/base/metrics"
	"github.com/bidmarket/goapi/domain"
	"github.com/bidmarket/goapi/domain/activity"
	"github.com/bidmarket/goapi/domain/escrow"
	"github.com/bidmarket/goapi/domain/fee"
	"github.com/bidmarket/goapi/domain/settlement"
)

var timeNow = time.Now

type impl struct {
	repo       settlement.Repo
	escrow     escrow.UseCase
	activities activity.Repo
	registry   settlement.AssetRegistry
	transfers  settlement.TokenTransfer
	met        metrics.Service
	// async controls whether the transfer leg runs on its own goroutine;
	// tests run it inline
	async bool
}

func New(repo settlement.Repo, escrowUC escrow.UseCase, activities activity.Repo, registry settlement.AssetRegistry, transfers settlement.TokenTransfer) settlement.UseCase {
	return &impl{
		repo:       repo,
		escrow:     escrowUC,
		activities: activities,
		registry:   registry,
		transfers:  transfers,
		met:        metrics.New("settlement"),
		async:      true,
	}
}

func (im *impl) Settle(ctx bCtx.Ctx, payload settlement.SettlePayload) (*settlement.PendingSettlement, error) {
	price, err := domain.ParseAmount(payload.Price)
	if err != nil {
		return nil, err
	}

	if !payload.FundsHeld {
		buyerId := escrow.BalanceId{Owner: payload.Buyer, Currency: payload.Currency}
		if err := im.escrow.DebitForSettlement(ctx, buyerId, price); err != nil {
			return nil, err
		}
	}

	pending := &settlement.PendingSettlement{
		Id:            uuid.NewString(),
		ListingId:     payload.ListingId.ToLower(),
		Seller:        payload.Seller.ToLower(),
		Buyer:         payload.Buyer.ToLower(),
		ApprovalId:    payload.ApprovalId,
		Currency:      payload.Currency.ToLower(),
		Price:         payload.Price,
		SellerOrigins: payload.SellerOrigins,
		BuyerOrigins:  payload.BuyerOrigins,
		FundsHeld:     payload.FundsHeld,
		CreatedAt:     timeNow(),
	}

	if err := im.repo.Insert(ctx, pending); err != nil {
		// funds already debited; credit them back rather than strand them
		if !payload.FundsHeld {
			buyerId := escrow.BalanceId{Owner: payload.Buyer, Currency: payload.Currency}
			if cerr := im.escrow.Credit(ctx, buyerId, price); cerr != nil {
				ctx.WithFields(log.Fields{
					"err": cerr,
					"id":  pending.Id,
				}).Error("escrow.Credit rollback failed")
			}
		}
		return nil, err
	}

	transfer := func() {
		im.runTransferLeg(ctx, pending)
	}
	if im.async {
		goroutine.RecoverableGo(transfer)
	} else {
		transfer()
	}

	return pending, nil
}

func (im *impl) runTransferLeg(ctx bCtx.Ctx, pending *settlement.PendingSettlement) {
	req := settlement.TransferRequest{
		SettlementId:     pending.Id,
		Receiver:         pending.Buyer,
		ListingId:        pending.ListingId,
		ApprovalId:       pending.ApprovalId,
		Origins:          fee.MergeOrigins(pending.SellerOrigins, pending.BuyerOrigins),
		Price:            pending.Price,
		MaxPayoutEntries: fee.MaxPayoutEntries,
		Currency:         pending.Currency,
	}

	payout, err := im.registry.TransferAndReportPayout(ctx, req)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  pending.Id,
		}).Error("registry.TransferAndReportPayout failed")
	}

	transferOk := err == nil && payout != nil
	if rerr := im.Resolve(ctx, pending.Id, payout, transferOk); rerr != nil && rerr != domain.ErrNotFound {
		ctx.WithFields(log.Fields{
			"err": rerr,
			"id":  pending.Id,
		}).Error("Resolve failed")
	}
}

func (im *impl) Resolve(ctx bCtx.Ctx, id string, payout fee.Payout, transferOk bool) error {
	pending, err := im.repo.FindOne(ctx, id)
	if err != nil {
		return err
	}

	// consume first; a concurrent Resolve loses with ErrNotFound
	if err := im.repo.Remove(ctx, id); err != nil {
		return err
	}

	price, err := domain.ParseAmount(pending.Price)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("stored settlement price is malformed")
		return err
	}

	if !transferOk || fee.ValidatePayout(payout, price) != nil {
		return im.refund(ctx, pending, price)
	}

	for receiver, share := range payout {
		v, err := domain.ParseAmount(share)
		if err != nil {
			// unreachable after ValidatePayout; keep disbursing
			continue
		}
		if pending.Currency.IsNative() {
			balanceId := escrow.BalanceId{Owner: receiver, Currency: pending.Currency}
			if err := im.escrow.Credit(ctx, balanceId, v); err != nil {
				ctx.WithFields(log.Fields{
					"err":      err,
					"id":       id,
					"receiver": receiver,
				}).Error("escrow.Credit failed")
			}
		} else {
			// fire and forget, there is no confirmation channel downstream
			if err := im.transfers.Transfer(ctx, pending.Currency, receiver, share, id); err != nil {
				ctx.WithFields(log.Fields{
					"err":      err,
					"id":       id,
					"receiver": receiver,
				}).Error("transfers.Transfer failed")
				im.met.BumpSum("transfer.err", 1, "currency", string(pending.Currency))
			}
		}
	}

	im.recordActivity(ctx, pending, activity.TypeSold, pending.Seller)
	im.met.BumpSum("resolved", 1)
	return nil
}

func (im *impl) refund(ctx bCtx.Ctx, pending *settlement.PendingSettlement, price *big.Int) error {
	buyerId := escrow.BalanceId{Owner: pending.Buyer, Currency: pending.Currency}
	if err := im.escrow.Credit(ctx, buyerId, price); err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  pending.Id,
		}).Error("escrow.Credit refund failed")
		return err
	}

	im.recordActivity(ctx, pending, activity.TypeSettlementRefund, pending.Buyer)
	im.met.BumpSum("refunded", 1)
	return nil
}

func (im *impl) recordActivity(ctx bCtx.Ctx, pending *settlement.PendingSettlement, typ activity.Type, account domain.AccountId) {
	err := im.activities.Insert(ctx, &activity.Activity{
		Type:      typ,
		ListingId: pending.ListingId,
		Account:   account,
		Currency:  pending.Currency,
		Amount:    pending.Price,
		CreatedAt: timeNow(),
	})
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  pending.Id,
		}).Warn("activities.Insert failed")
	}
}
