// Package usecase implements time-boxed auctions. Unlike offer bids, an
// auction bid escrows its funds immediately: placing one debits the
// bidder and refunds the bidder it displaces.
package usecase

import (
	"math/big"
	"time"

	bCtx "github.com/bidmarket/goapi/base/ctx"
	"github.com/bidmarket/goapi/base/log"
	"github.com/bidmarket/goapi/domain"
	"github.com/bidmarket/goapi/domain/activity"
	"github.com/bidmarket/goapi/domain/auction"
	"github.com/bidmarket/goapi/domain/escrow"
	"github.com/bidmarket/goapi/domain/fee"
	"github.com/bidmarket/goapi/domain/settlement"
)

var timeNow = time.Now

type impl struct {
	repo            auction.Repo
	escrow          escrow.UseCase
	settlements     settlement.UseCase
	payTokens       domain.PayTokenRepo
	activities      activity.Repo
	protocolAccount domain.AccountId
}

func New(repo auction.Repo, escrowUC escrow.UseCase, settlements settlement.UseCase, payTokens domain.PayTokenRepo, activities activity.Repo, protocolAccount domain.AccountId) auction.UseCase {
	return &impl{
		repo:            repo,
		escrow:          escrowUC,
		settlements:     settlements,
		payTokens:       payTokens,
		activities:      activities,
		protocolAccount: protocolAccount.ToLower(),
	}
}

func (im *impl) currencySupported(ctx bCtx.Ctx, currency domain.CurrencyId) error {
	if currency.IsNative() {
		return nil
	}
	if _, err := im.payTokens.FindOne(ctx, currency); err == domain.ErrNotFound {
		return domain.ErrInvalidCurrency
	} else if err != nil {
		return err
	}
	return nil
}

func (im *impl) Create(ctx bCtx.Ctx, payload auction.CreatePayload) (*auction.Auction, error) {
	now := timeNow()

	startPrice, err := domain.ParseAmount(payload.StartPrice)
	if err != nil {
		return nil, err
	}
	if _, err := domain.ParseAmount(payload.MinimalStep); err != nil {
		return nil, err
	}
	if payload.BuyOutPrice != nil {
		buyOut, err := domain.ParseAmount(*payload.BuyOutPrice)
		if err != nil {
			return nil, err
		}
		if buyOut.Cmp(startPrice) <= 0 {
			return nil, domain.ErrBadParamInput
		}
	}

	if err := im.currencySupported(ctx, payload.Currency); err != nil {
		return nil, err
	}

	if err := fee.ValidateOrigins(payload.Origins); err != nil {
		return nil, err
	}

	if payload.Duration < auction.ExtensionDuration || payload.Duration > auction.MaxDuration {
		return nil, domain.ErrInvalidDuration
	}

	start := now
	if payload.Start != nil {
		start = *payload.Start
		if start.Before(now) {
			return nil, domain.ErrInvalidStartTime
		}
	}

	id, err := im.repo.NextId(ctx)
	if err != nil {
		return nil, err
	}

	a := &auction.Auction{
		AuctionId:   id,
		Owner:       payload.Owner.ToLower(),
		ApprovalId:  payload.ApprovalId,
		ListingId:   payload.ListingId.ToLower(),
		CreatedAt:   now,
		Currency:    payload.Currency.ToLower(),
		MinimalStep: payload.MinimalStep,
		StartPrice:  payload.StartPrice,
		BuyOutPrice: payload.BuyOutPrice,
		Start:       start,
		End:         start.Add(payload.Duration),
		Origins:     payload.Origins,
	}

	if err := im.repo.Insert(ctx, a); err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"auctionId": id,
		}).Error("repo.Insert failed")
		return nil, err
	}
	return a, nil
}

func (im *impl) minimalNextBid(a *auction.Auction) (*big.Int, error) {
	if a.Bid == nil {
		return domain.ParseAmount(a.StartPrice)
	}

	price, err := domain.ParseAmount(a.Bid.Price)
	if err != nil {
		return nil, err
	}
	step, err := domain.ParseAmount(a.MinimalStep)
	if err != nil {
		return nil, err
	}
	return price.Add(price, step), nil
}

func (im *impl) PlaceBid(ctx bCtx.Ctx, id domain.AuctionId, bidder domain.AccountId, price string) (*auction.Auction, error) {
	now := timeNow()
	bidder = bidder.ToLower()

	a, err := im.repo.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	if !a.InProgress(now) {
		return nil, domain.ErrListingNotActive
	}

	if a.Owner.Equals(bidder) {
		return nil, domain.ErrOwnListing
	}

	v, err := domain.ParseAmount(price)
	if err != nil {
		return nil, err
	}

	min, err := im.minimalNextBid(a)
	if err != nil {
		return nil, err
	}
	if v.Cmp(min) < 0 {
		return nil, domain.ErrBidTooLow
	}

	buyout := false
	if a.BuyOutPrice != nil {
		buyOut, err := domain.ParseAmount(*a.BuyOutPrice)
		if err != nil {
			return nil, err
		}
		buyout = v.Cmp(buyOut) >= 0
	}

	// funds are held while the bid stands
	bidderId := escrow.BalanceId{Owner: bidder, Currency: a.Currency}
	if err := im.escrow.DebitForSettlement(ctx, bidderId, v); err != nil {
		return nil, err
	}

	if a.Bid != nil {
		prev := a.Bid
		prevPrice, err := domain.ParseAmount(prev.Price)
		if err != nil {
			return nil, err
		}
		prevId := escrow.BalanceId{Owner: prev.Owner, Currency: a.Currency}
		if err := im.escrow.Credit(ctx, prevId, prevPrice); err != nil {
			ctx.WithFields(log.Fields{
				"err":       err,
				"auctionId": id,
				"owner":     prev.Owner,
			}).Error("escrow.Credit refund failed")
			return nil, err
		}
		im.recordRefund(ctx, a, prev)
	}

	a.Bid = &auction.CurrentBid{Owner: bidder, Price: price}

	if buyout {
		// force the auction to a close; Finish settles it
		a.End = now
	} else if a.End.Sub(now) < auction.ExtensionDuration {
		a.End = now.Add(auction.ExtensionDuration)
	}

	if err := im.repo.Upsert(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (im *impl) recordRefund(ctx bCtx.Ctx, a *auction.Auction, prev *auction.CurrentBid) {
	err := im.activities.Insert(ctx, &activity.Activity{
		Type:      activity.TypeBidRefund,
		ListingId: a.ListingId,
		Account:   prev.Owner,
		Currency:  a.Currency,
		Amount:    prev.Price,
		CreatedAt: timeNow(),
	})
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"auctionId": a.AuctionId,
		}).Warn("activities.Insert failed")
	}
}

func (im *impl) Cancel(ctx bCtx.Ctx, id domain.AuctionId, caller domain.AccountId) error {
	a, err := im.repo.FindOne(ctx, id)
	if err != nil {
		return err
	}

	if !a.Owner.Equals(caller) {
		return domain.ErrNotOwner
	}

	if a.Bid != nil {
		return domain.ErrListingHasBid
	}

	return im.repo.Remove(ctx, id)
}

func (im *impl) Finish(ctx bCtx.Ctx, id domain.AuctionId) error {
	now := timeNow()

	a, err := im.repo.FindOne(ctx, id)
	if err != nil {
		return err
	}

	if now.Before(a.End) {
		return domain.ErrListingNotEnded
	}

	if a.Bid == nil {
		return domain.ErrNoActiveBid
	}

	if err := im.repo.Remove(ctx, id); err != nil {
		return err
	}

	_, err = im.settlements.Settle(ctx, settlement.SettlePayload{
		ListingId:     a.ListingId,
		Seller:        a.Owner,
		Buyer:         a.Bid.Owner,
		ApprovalId:    a.ApprovalId,
		Currency:      a.Currency,
		Price:         a.Bid.Price,
		SellerOrigins: fee.SellerSide(a.Origins, im.protocolAccount),
		FundsHeld:     true,
	})
	if err != nil {
		// put the auction back so Finish can be retried
		if uerr := im.repo.Upsert(ctx, a); uerr != nil {
			ctx.WithFields(log.Fields{
				"err":       uerr,
				"auctionId": id,
			}).Error("repo.Upsert rollback failed")
		}
		return err
	}
	return nil
}

func (im *impl) Get(ctx bCtx.Ctx, id domain.AuctionId) (*auction.Auction, error) {
	return im.repo.FindOne(ctx, id)
}

func (im *impl) FindAll(ctx bCtx.Ctx, opts ...auction.FindAllOptionsFunc) ([]*auction.Auction, error) {
	return im.repo.FindAll(ctx, opts...)
}

func (im *impl) MinimalNextBid(ctx bCtx.Ctx, id domain.AuctionId) (string, error) {
	a, err := im.repo.FindOne(ctx, id)
	if err != nil {
		return "", err
	}

	min, err := im.minimalNextBid(a)
	if err != nil {
		return "", err
	}
	return min.String(), nil
}

func (im *impl) InProgress(ctx bCtx.Ctx, id domain.AuctionId) (bool, error) {
	a, err := im.repo.FindOne(ctx, id)
	if err != nil {
		return false, err
	}
	return a.InProgress(timeNow()), nil
}
