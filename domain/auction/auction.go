// Package auction defines the single-bid, time-boxed listing type. An
// auction holds at most one live bid; each accepted bid escrows the
// bidder's funds and refunds the previous bidder immediately.
package auction

import (
	"time"

	"github.com/bidmarket/goapi/base/ctx"
	"github.com/bidmarket/goapi/domain"
)

const (
	// ExtensionDuration is both the minimum auction duration and the
	// anti-snipe window: a bid landing closer than this to the end pushes
	// the end out to now + ExtensionDuration.
	ExtensionDuration = 15 * time.Minute
	MaxDuration       = 1000 * 24 * time.Hour
)

// CurrentBid is the live bid of an auction. Funds equal to Price are
// already debited from the bidder's escrow while the bid stands.
type CurrentBid struct {
	Owner domain.AccountId `json:"owner" bson:"owner"`
	Price string           `json:"price" bson:"price"`
}

type Auction struct {
	AuctionId        domain.AuctionId `json:"auctionId" bson:"auctionId"`
	Owner            domain.AccountId `json:"owner" bson:"owner"`
	ApprovalId       uint64           `json:"approvalId" bson:"approvalId"`
	domain.ListingId `bson:",inline"`
	Bid              *CurrentBid       `json:"bid,omitempty" bson:"bid,omitempty"`
	CreatedAt        time.Time         `json:"createdAt" bson:"createdAt"`
	Currency         domain.CurrencyId `json:"currency" bson:"currency"`
	MinimalStep      string            `json:"minimalStep" bson:"minimalStep"`
	StartPrice       string            `json:"startPrice" bson:"startPrice"`
	BuyOutPrice      *string           `json:"buyOutPrice,omitempty" bson:"buyOutPrice,omitempty"`
	Start            time.Time         `json:"start" bson:"start"`
	End              time.Time         `json:"end" bson:"end"`
	Origins          domain.Origins    `json:"origins,omitempty" bson:"origins,omitempty"`
}

// InProgress reports whether bids are currently accepted.
func (a *Auction) InProgress(now time.Time) bool {
	return !now.Before(a.Start) && now.Before(a.End)
}

type FindAllOptions struct {
	Owner     *domain.AccountId
	ListingId *domain.ListingId
	Offset    *int32
	Limit     *int32
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

func WithListingId(id domain.ListingId) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		id = id.ToLower()
		options.ListingId = &id
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
	FindAll(ctx ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Auction, error)
	FindOne(ctx ctx.Ctx, id domain.AuctionId) (*Auction, error)
	Insert(ctx ctx.Ctx, auction *Auction) error
	Upsert(ctx ctx.Ctx, auction *Auction) error
	Remove(ctx ctx.Ctx, id domain.AuctionId) error
	Count(ctx ctx.Ctx, opts ...FindAllOptionsFunc) (int, error)
	NextId(ctx ctx.Ctx) (domain.AuctionId, error)
}

// CreatePayload is the approval handoff from the asset registry: the
// registry confirms the owner still controls the item and forwards the
// listing arguments.
type CreatePayload struct {
	Owner       domain.AccountId
	ApprovalId  uint64
	ListingId   domain.ListingId
	Currency    domain.CurrencyId
	MinimalStep string
	StartPrice  string
	BuyOutPrice *string
	Start       *time.Time
	Duration    time.Duration
	Origins     domain.Origins
}

type UseCase interface {
	Create(ctx ctx.Ctx, payload CreatePayload) (*Auction, error)
	// PlaceBid debits the bidder's escrow, refunds the previous bidder,
	// extends the end on late bids and force-closes on buyout.
	PlaceBid(ctx ctx.Ctx, id domain.AuctionId, bidder domain.AccountId, price string) (*Auction, error)
	// Cancel removes a bidless auction; owner only.
	Cancel(ctx ctx.Ctx, id domain.AuctionId, caller domain.AccountId) error
	// Finish hands the auction to the settlement protocol. Callable by
	// anyone once the end time has passed; requires a live bid.
	Finish(ctx ctx.Ctx, id domain.AuctionId) error
	Get(ctx ctx.Ctx, id domain.AuctionId) (*Auction, error)
	FindAll(ctx ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Auction, error)
	// MinimalNextBid is start price with no bid, else price + minimal step.
	MinimalNextBid(ctx ctx.Ctx, id domain.AuctionId) (string, error)
	InProgress(ctx ctx.Ctx, id domain.AuctionId) (bool, error)
}
