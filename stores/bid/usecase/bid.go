// Package usecase implements the offer-bid ledger. Bids placed here move
// no funds; solvency is checked lazily when a bid is selected for
// settlement, so a stale bid whose backing escrow is gone simply loses.
package usecase

import (
	"time"

	bCtx "github.com/bidmarket/goapi/base/ctx"
	"github.com/bidmarket/goapi/base/log"
	"github.com/bidmarket/goapi/domain"
	"github.com/bidmarket/goapi/domain/activity"
	"github.com/bidmarket/goapi/domain/bid"
	"github.com/bidmarket/goapi/domain/escrow"
	"github.com/bidmarket/goapi/domain/fee"
)

var timeNow = time.Now

type impl struct {
	repo       bid.Repo
	escrow     escrow.UseCase
	payTokens  domain.PayTokenRepo
	activities activity.Repo
}

func New(repo bid.Repo, escrowUC escrow.UseCase, payTokens domain.PayTokenRepo, activities activity.Repo) bid.UseCase {
	return &impl{
		repo:       repo,
		escrow:     escrowUC,
		payTokens:  payTokens,
		activities: activities,
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

func (im *impl) recordRefund(ctx bCtx.Ctx, b *bid.Bid) {
	err := im.activities.Insert(ctx, &activity.Activity{
		Type:      activity.TypeBidRefund,
		ListingId: b.ListingId,
		Account:   b.Owner,
		Currency:  b.Currency,
		Amount:    b.Price,
		CreatedAt: timeNow(),
	})
	if err != nil {
		// the bid removal already happened; losing the audit entry is
		// preferable to failing the operation
		ctx.WithFields(log.Fields{
			"err":   err,
			"bidId": b.BidId,
		}).Warn("activities.Insert failed")
	}
}

func (im *impl) PlaceBid(ctx bCtx.Ctx, payload bid.PlaceBidPayload) (*bid.Bid, error) {
	now := timeNow()

	priceHex, err := domain.AmountStringToHex(payload.Price)
	if err != nil {
		return nil, err
	}

	if err := im.currencySupported(ctx, payload.Currency); err != nil {
		return nil, err
	}

	if err := fee.ValidateOrigins(payload.Origins); err != nil {
		return nil, err
	}

	start := now
	if payload.Start != nil {
		start = *payload.Start
	}
	if payload.End != nil && !payload.End.After(start) {
		return nil, domain.ErrInvalidDuration
	}

	listingId := payload.ListingId.ToLower()
	owner := payload.Owner.ToLower()

	// one open bid per owner per listing key; a rebid retracts the old one
	if prev, err := im.repo.FindOneByOwner(ctx, owner, listingId); err != nil && err != domain.ErrNotFound {
		return nil, err
	} else if err == nil {
		if err := im.repo.Remove(ctx, prev.BidId); err != nil && err != domain.ErrNotFound {
			return nil, err
		}
		im.recordRefund(ctx, prev)
	}

	id, err := im.repo.NextId(ctx)
	if err != nil {
		return nil, err
	}

	b := &bid.Bid{
		BidId:     id,
		ListingId: listingId,
		Owner:     owner,
		Currency:  payload.Currency.ToLower(),
		Price:     payload.Price,
		PriceHex:  priceHex,
		Start:     start,
		End:       payload.End,
		Origins:   payload.Origins,
		CreatedAt: now,
	}

	if err := im.repo.Insert(ctx, b); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"bidId": id,
		}).Error("repo.Insert failed")
		return nil, err
	}
	return b, nil
}

func (im *impl) WithdrawBid(ctx bCtx.Ctx, id domain.BidId, caller domain.AccountId) error {
	b, err := im.repo.FindOne(ctx, id)
	if err != nil {
		return err
	}

	if !b.Owner.Equals(caller) {
		return domain.ErrNotOwner
	}

	if err := im.repo.Remove(ctx, id); err != nil {
		return err
	}
	im.recordRefund(ctx, b)
	return nil
}

func (im *impl) CancelExpiredBid(ctx bCtx.Ctx, id domain.BidId) error {
	b, err := im.repo.FindOne(ctx, id)
	if err != nil {
		return err
	}

	if !b.Expired(timeNow()) {
		return domain.ErrBidNotExpired
	}

	if err := im.repo.Remove(ctx, id); err != nil {
		return err
	}
	im.recordRefund(ctx, b)
	return nil
}

func (im *impl) SweepExpired(ctx bCtx.Ctx, listingId domain.ListingId, currency domain.CurrencyId) (int, error) {
	expired, err := im.repo.FindAll(ctx,
		bid.WithListingId(listingId),
		bid.WithCurrency(currency),
		bid.WithEndBefore(timeNow()),
	)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, b := range expired {
		if err := im.repo.Remove(ctx, b.BidId); err == domain.ErrNotFound {
			continue
		} else if err != nil {
			return removed, err
		}
		im.recordRefund(ctx, b)
		removed++
	}
	return removed, nil
}

func (im *impl) SelectBest(ctx bCtx.Ctx, listingId domain.ListingId, currency domain.CurrencyId) (*bid.Bid, error) {
	candidates, err := im.repo.FindAll(ctx,
		bid.WithListingId(listingId),
		bid.WithCurrency(currency),
		bid.WithSortByPriceDesc(),
	)
	if err != nil {
		return nil, err
	}

	now := timeNow()
	for _, b := range candidates {
		if !b.InLimits(now) {
			continue
		}

		price, err := domain.ParseAmount(b.Price)
		if err != nil {
			ctx.WithFields(log.Fields{
				"err":   err,
				"bidId": b.BidId,
			}).Warn("stored bid price is malformed")
			continue
		}

		balance, err := im.escrow.Balance(ctx, escrow.BalanceId{Owner: b.Owner, Currency: b.Currency})
		if err != nil {
			return nil, err
		}
		if balance.Cmp(price) < 0 {
			continue
		}

		return b, nil
	}
	return nil, domain.ErrNoActiveBid
}

func (im *impl) FindAll(ctx bCtx.Ctx, opts ...bid.FindAllOptionsFunc) ([]*bid.Bid, error) {
	return im.repo.FindAll(ctx, opts...)
}
