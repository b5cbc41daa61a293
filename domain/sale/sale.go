// Package sale defines continuous offer listings. A sale quotes a price
// per currency; competing bids live in the bid ledger under the same
// listing key and are resolved by the owner's explicit acceptance.
package sale

import (
	"time"

	"github.com/bidmarket/goapi/base/ctx"
	"github.com/bidmarket/goapi/domain"
)

// Conditions maps a settlement currency to the ask price in base units.
type Conditions map[domain.CurrencyId]string

type Sale struct {
	Owner            domain.AccountId `json:"owner" bson:"owner"`
	ApprovalId       uint64           `json:"approvalId" bson:"approvalId"`
	domain.ListingId `bson:",inline"`
	Conditions       Conditions     `json:"conditions" bson:"conditions"`
	CreatedAt        time.Time      `json:"createdAt" bson:"createdAt"`
	Start            time.Time      `json:"start" bson:"start"`
	End              *time.Time     `json:"end,omitempty" bson:"end,omitempty"`
	Origins          domain.Origins `json:"origins,omitempty" bson:"origins,omitempty"`
}

// InLimits reports whether the sale window contains now. A nil end means
// the sale is open ended.
func (s *Sale) InLimits(now time.Time) bool {
	return domain.InWindow(now, s.Start, s.End)
}

type FindAllOptions struct {
	Owner      *domain.AccountId
	Collection *domain.CollectionId
	Offset     *int32
	Limit      *int32
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

func WithOwner(owner domain.AccountId) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		owner = owner.ToLower()
		options.Owner = &owner
		return nil
	}
}

func WithCollection(collection domain.CollectionId) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		collection = collection.ToLower()
		options.Collection = &collection
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

type Repo interface {
	FindAll(ctx ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Sale, error)
	FindOne(ctx ctx.Ctx, id domain.ListingId) (*Sale, error)
	Insert(ctx ctx.Ctx, sale *Sale) error
	Upsert(ctx ctx.Ctx, sale *Sale) error
	Remove(ctx ctx.Ctx, id domain.ListingId) error
	Count(ctx ctx.Ctx, opts ...FindAllOptionsFunc) (int, error)
}

type CreatePayload struct {
	Owner      domain.AccountId
	ApprovalId uint64
	ListingId  domain.ListingId
	Conditions Conditions
	Start      *time.Time
	End        *time.Time
	Origins    domain.Origins
}

type OfferPayload struct {
	ListingId domain.ListingId
	Buyer     domain.AccountId
	Currency  domain.CurrencyId
	Price     string
	Start     *time.Time
	Duration  *time.Duration
	Origins   domain.Origins
}

// OfferResult reports what an offer call did: a booked bid, or an
// immediate purchase when the offer matched the ask with fees and the
// buyer's escrow covered it.
type OfferResult struct {
	Bid       *domain.BidId `json:"bidId,omitempty"`
	Purchased bool          `json:"purchased"`
}

type UseCase interface {
	Create(ctx ctx.Ctx, payload CreatePayload) (*Sale, error)
	// UpdatePrice sets the ask for one currency; owner only.
	UpdatePrice(ctx ctx.Ctx, id domain.ListingId, caller domain.AccountId, currency domain.CurrencyId, price string) error
	// Remove deletes the listing. While the sale window is open only the
	// owner may remove it; an elapsed sale can be removed by anyone.
	Remove(ctx ctx.Ctx, id domain.ListingId, caller domain.AccountId) error
	// Offer books a bid, or settles immediately on an exact match against
	// the ask price with fees when the buyer's escrow is sufficient.
	Offer(ctx ctx.Ctx, payload OfferPayload) (*OfferResult, error)
	// AcceptBestBid selects the best active solvent bid and hands the sale
	// to the settlement protocol; owner only.
	AcceptBestBid(ctx ctx.Ctx, id domain.ListingId, caller domain.AccountId, currency domain.CurrencyId) error
	Get(ctx ctx.Ctx, id domain.ListingId) (*Sale, error)
	FindAll(ctx ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Sale, error)
}
