// Package bid defines the price-ordered bid ledger for offer listings.
//
// A bid is stored once but indexed three ways: by its globally unique id,
// by (listing, currency, price) for highest-price selection, and by
// (owner, listing) which enforces at most one open bid per owner per
// listing key regardless of currency.
package bid

import (
	"time"

	"github.com/bidmarket/goapi/base/ctx"
	"github.com/bidmarket/goapi/domain"
)

type Bid struct {
	BidId            domain.BidId `json:"bidId" bson:"bidId"`
	domain.ListingId `bson:",inline"`
	Owner            domain.AccountId  `json:"owner" bson:"owner"`
	Currency         domain.CurrencyId `json:"currency" bson:"currency"`
	// Price is a decimal string of base units; PriceHex is the zero-padded
	// hex rendering used as the mongo sort key
	Price    string    `json:"price" bson:"price"`
	PriceHex string    `json:"-" bson:"priceHex"`
	Start    time.Time `json:"start" bson:"start"`
	// End is nil for open-ended bids; those can be withdrawn but never
	// cancelled by third parties
	End       *time.Time     `json:"end,omitempty" bson:"end,omitempty"`
	Origins   domain.Origins `json:"origins,omitempty" bson:"origins,omitempty"`
	CreatedAt time.Time      `json:"createdAt" bson:"createdAt"`
}

// InLimits reports whether the bid's validity window contains now.
func (b *Bid) InLimits(now time.Time) bool {
	return domain.InWindow(now, b.Start, b.End)
}

// Expired reports whether the bid has an end time that has passed.
func (b *Bid) Expired(now time.Time) bool {
	return b.End != nil && !now.Before(*b.End)
}

type FindAllOptions struct {
	ListingId *domain.ListingId
	Currency  *domain.CurrencyId
	Owner     *domain.AccountId
	EndBefore *time.Time
	Offset    *int32
	Limit     *int32
	// SortByPriceDesc orders by priceHex descending then start ascending,
	// the selection order of the price tree
	SortByPriceDesc bool
}

type FindAllOptionsFunc func(*FindAllOptions) error

func GetFindAllOptions(opts ...FindAllOptionsFunc) (FindAllOptions, error) {
	res := FindAllOptions{}
	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}
	return res, nil
}

func WithListingId(id domain.ListingId) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		id = id.ToLower()
		options.ListingId = &id
		return nil
	}
}

func WithCurrency(currency domain.CurrencyId) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		currency = currency.ToLower()
		options.Currency = &currency
		return nil
	}
}

func WithOwner(owner domain.AccountId) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		owner = owner.ToLower()
		options.Owner = &owner
		return nil
	}
}

func WithEndBefore(t time.Time) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.EndBefore = &t
		return nil
	}
}

func WithPagination(offset, limit int32) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

func WithSortByPriceDesc() FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.SortByPriceDesc = true
		return nil
	}
}

type Repo interface {
	FindAll(ctx ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Bid, error)
	FindOne(ctx ctx.Ctx, id domain.BidId) (*Bid, error)
	// FindOneByOwner resolves the per-owner index entry for a listing key.
	FindOneByOwner(ctx ctx.Ctx, owner domain.AccountId, listingId domain.ListingId) (*Bid, error)
	Insert(ctx ctx.Ctx, bid *Bid) error
	Remove(ctx ctx.Ctx, id domain.BidId) error
	RemoveAll(ctx ctx.Ctx, opts ...FindAllOptionsFunc) error
	// NextId allocates the next monotonically increasing bid id.
	NextId(ctx ctx.Ctx) (domain.BidId, error)
}

type PlaceBidPayload struct {
	ListingId domain.ListingId
	Owner     domain.AccountId
	Currency  domain.CurrencyId
	Price     string
	Start     *time.Time
	End       *time.Time
	Origins   domain.Origins
}

type UseCase interface {
	// PlaceBid books a bid without moving funds. Any prior bid by the same
	// owner on the same listing key is retracted and refunded first.
	PlaceBid(ctx ctx.Ctx, payload PlaceBidPayload) (*Bid, error)
	// WithdrawBid removes the caller's own bid at any time.
	WithdrawBid(ctx ctx.Ctx, id domain.BidId, caller domain.AccountId) error
	// CancelExpiredBid removes someone else's bid once its validity window
	// has elapsed. Fails for open-ended or still-valid bids.
	CancelExpiredBid(ctx ctx.Ctx, id domain.BidId) error
	// SweepExpired reclaims every expired bid on a listing and currency.
	SweepExpired(ctx ctx.Ctx, listingId domain.ListingId, currency domain.CurrencyId) (int, error)
	// SelectBest returns the highest-priced, earliest-started bid that is
	// window-valid and solvent right now, or domain.ErrNoActiveBid.
	SelectBest(ctx ctx.Ctx, listingId domain.ListingId, currency domain.CurrencyId) (*Bid, error)
	FindAll(ctx ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Bid, error)
}
