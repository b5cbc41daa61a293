// Package usecase implements offer listings. A sale quotes an ask per
// currency; an offer either books a ledger bid or, when it covers the ask
// with fees and the buyer's escrow can pay, settles on the spot.
package usecase

import (
	"time"

	bCtx "github.com/bidmarket/goapi/base/ctx"
	"github.com/bidmarket/goapi/base/log"
	"github.com/bidmarket/goapi/domain"
	"github.com/bidmarket/goapi/domain/auction"
	"github.com/bidmarket/goapi/domain/bid"
	"github.com/bidmarket/goapi/domain/escrow"
	"github.com/bidmarket/goapi/domain/fee"
	"github.com/bidmarket/goapi/domain/sale"
	"github.com/bidmarket/goapi/domain/settlement"
)

var timeNow = time.Now

type impl struct {
	repo            sale.Repo
	auctions        auction.Repo
	bids            bid.UseCase
	bidRepo         bid.Repo
	escrow          escrow.UseCase
	settlements     settlement.UseCase
	payTokens       domain.PayTokenRepo
	protocolAccount domain.AccountId
}

func New(repo sale.Repo, auctions auction.Repo, bids bid.UseCase, bidRepo bid.Repo, escrowUC escrow.UseCase, settlements settlement.UseCase, payTokens domain.PayTokenRepo, protocolAccount domain.AccountId) sale.UseCase {
	return &impl{
		repo:            repo,
		auctions:        auctions,
		bids:            bids,
		bidRepo:         bidRepo,
		escrow:          escrowUC,
		settlements:     settlements,
		payTokens:       payTokens,
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

func (im *impl) Create(ctx bCtx.Ctx, payload sale.CreatePayload) (*sale.Sale, error) {
	now := timeNow()

	if len(payload.Conditions) == 0 {
		return nil, domain.ErrBadParamInput
	}
	for currency, price := range payload.Conditions {
		if _, err := domain.ParseAmount(price); err != nil {
			return nil, err
		}
		if err := im.currencySupported(ctx, currency); err != nil {
			return nil, err
		}
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

	// one listing type per listing key
	if _, err := im.repo.FindOne(ctx, listingId); err == nil {
		return nil, domain.ErrConflict
	} else if err != domain.ErrNotFound {
		return nil, err
	}
	if n, err := im.auctions.Count(ctx, auction.WithListingId(listingId)); err != nil {
		return nil, err
	} else if n > 0 {
		return nil, domain.ErrConflict
	}

	s := &sale.Sale{
		Owner:      payload.Owner.ToLower(),
		ApprovalId: payload.ApprovalId,
		ListingId:  listingId,
		Conditions: payload.Conditions,
		CreatedAt:  now,
		Start:      start,
		End:        payload.End,
		Origins:    payload.Origins,
	}

	if err := im.repo.Insert(ctx, s); err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"listingId": listingId,
		}).Error("repo.Insert failed")
		return nil, err
	}
	return s, nil
}

func (im *impl) UpdatePrice(ctx bCtx.Ctx, id domain.ListingId, caller domain.AccountId, currency domain.CurrencyId, price string) error {
	if _, err := domain.ParseAmount(price); err != nil {
		return err
	}

	s, err := im.repo.FindOne(ctx, id)
	if err != nil {
		return err
	}

	if !s.Owner.Equals(caller) {
		return domain.ErrNotOwner
	}

	currency = currency.ToLower()
	if _, ok := s.Conditions[currency]; !ok {
		return domain.ErrInvalidCurrency
	}

	s.Conditions[currency] = price
	return im.repo.Upsert(ctx, s)
}

func (im *impl) Remove(ctx bCtx.Ctx, id domain.ListingId, caller domain.AccountId) error {
	s, err := im.repo.FindOne(ctx, id)
	if err != nil {
		return err
	}

	// anyone may reclaim an elapsed listing
	if s.InLimits(timeNow()) && !s.Owner.Equals(caller) {
		return domain.ErrNotOwner
	}

	return im.repo.Remove(ctx, id)
}

func (im *impl) Offer(ctx bCtx.Ctx, payload sale.OfferPayload) (*sale.OfferResult, error) {
	now := timeNow()
	listingId := payload.ListingId.ToLower()
	buyer := payload.Buyer.ToLower()
	currency := payload.Currency.ToLower()

	s, err := im.repo.FindOne(ctx, listingId)
	if err != nil {
		return nil, err
	}

	if !s.InLimits(now) {
		return nil, domain.ErrListingNotActive
	}

	if s.Owner.Equals(buyer) {
		return nil, domain.ErrOwnListing
	}

	ask, ok := s.Conditions[currency]
	if !ok {
		return nil, domain.ErrInvalidCurrency
	}

	offered, err := domain.ParseAmount(payload.Price)
	if err != nil {
		return nil, err
	}
	askPrice, err := domain.ParseAmount(ask)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"listingId": listingId,
		}).Error("stored ask price is malformed")
		return nil, err
	}

	if err := fee.ValidateOrigins(payload.Origins); err != nil {
		return nil, err
	}

	// buy-now requires an exact match of the ask with fees; anything else,
	// over-offers included, books a bid
	gross := fee.PriceWithFees(askPrice, payload.Origins)
	if offered.Cmp(gross) == 0 {
		balance, err := im.escrow.Balance(ctx, escrow.BalanceId{Owner: buyer, Currency: currency})
		if err != nil {
			return nil, err
		}
		if balance.Cmp(offered) >= 0 {
			if err := im.purchase(ctx, s, buyer, currency, payload.Price, payload.Origins); err == domain.ErrInsufficientFunds {
				// the balance moved under us; book the bid instead
			} else if err != nil {
				return nil, err
			} else {
				return &sale.OfferResult{Purchased: true}, nil
			}
		}
	}

	var end *time.Time
	if payload.Duration != nil {
		start := now
		if payload.Start != nil {
			start = *payload.Start
		}
		e := start.Add(*payload.Duration)
		end = &e
	}

	b, err := im.bids.PlaceBid(ctx, bid.PlaceBidPayload{
		ListingId: listingId,
		Owner:     buyer,
		Currency:  currency,
		Price:     payload.Price,
		Start:     payload.Start,
		End:       end,
		Origins:   payload.Origins,
	})
	if err != nil {
		return nil, err
	}
	return &sale.OfferResult{Bid: &b.BidId}, nil
}

func (im *impl) purchase(ctx bCtx.Ctx, s *sale.Sale, buyer domain.AccountId, currency domain.CurrencyId, price string, buyerOrigins domain.Origins) error {
	if err := im.repo.Remove(ctx, s.ListingId); err != nil {
		return err
	}

	_, err := im.settlements.Settle(ctx, settlement.SettlePayload{
		ListingId:     s.ListingId,
		Seller:        s.Owner,
		Buyer:         buyer,
		ApprovalId:    s.ApprovalId,
		Currency:      currency,
		Price:         price,
		SellerOrigins: fee.SellerSide(s.Origins, im.protocolAccount),
		BuyerOrigins:  buyerOrigins,
	})
	if err != nil {
		// put the listing back so the sale survives a failed settlement
		if uerr := im.repo.Upsert(ctx, s); uerr != nil {
			ctx.WithFields(log.Fields{
				"err":       uerr,
				"listingId": s.ListingId,
			}).Error("repo.Upsert rollback failed")
		}
		return err
	}
	return nil
}

func (im *impl) AcceptBestBid(ctx bCtx.Ctx, id domain.ListingId, caller domain.AccountId, currency domain.CurrencyId) error {
	now := timeNow()
	id = id.ToLower()

	s, err := im.repo.FindOne(ctx, id)
	if err != nil {
		return err
	}

	if !s.Owner.Equals(caller) {
		return domain.ErrNotOwner
	}

	if !s.InLimits(now) {
		return domain.ErrListingNotActive
	}

	best, err := im.bids.SelectBest(ctx, id, currency)
	if err != nil {
		return err
	}

	if err := im.purchase(ctx, s, best.Owner, best.Currency, best.Price, best.Origins); err != nil {
		return err
	}

	if err := im.bidRepo.Remove(ctx, best.BidId); err != nil && err != domain.ErrNotFound {
		ctx.WithFields(log.Fields{
			"err":   err,
			"bidId": best.BidId,
		}).Warn("bidRepo.Remove failed")
	}
	return nil
}

func (im *impl) Get(ctx bCtx.Ctx, id domain.ListingId) (*sale.Sale, error) {
	return im.repo.FindOne(ctx, id)
}

func (im *impl) FindAll(ctx bCtx.Ctx, opts ...sale.FindAllOptionsFunc) ([]*sale.Sale, error) {
	return im.repo.FindAll(ctx, opts...)
}
