// Package settlement defines the two-phase handoff that finalizes a sale
// or auction: transfer the item through the asset registry, then either
// disburse the payout table or refund the buyer in full. The pending
// record between the two phases is consumed exactly once.
package settlement

import (
	"time"

	"github.com/bidmarket/goapi/base/ctx"
	"github.com/bidmarket/goapi/domain"
	"github.com/bidmarket/goapi/domain/fee"
)

// PendingSettlement snapshots everything the resolve phase needs. The
// listing record is already removed by the time this exists.
type PendingSettlement struct {
	Id               string           `json:"id" bson:"id"`
	domain.ListingId `bson:",inline"`
	Seller           domain.AccountId  `json:"seller" bson:"seller"`
	Buyer            domain.AccountId  `json:"buyer" bson:"buyer"`
	ApprovalId       uint64            `json:"approvalId" bson:"approvalId"`
	Currency         domain.CurrencyId `json:"currency" bson:"currency"`
	// Price in base units; the amount debited from (or held for) the buyer
	Price string `json:"price" bson:"price"`
	// SellerOrigins already includes the protocol principal
	SellerOrigins domain.Origins `json:"sellerOrigins,omitempty" bson:"sellerOrigins,omitempty"`
	BuyerOrigins  domain.Origins `json:"buyerOrigins,omitempty" bson:"buyerOrigins,omitempty"`
	// FundsHeld is true for auction settlements, whose price was debited
	// from the buyer's escrow at bid time
	FundsHeld bool      `json:"fundsHeld" bson:"fundsHeld"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

type Repo interface {
	FindOne(ctx ctx.Ctx, id string) (*PendingSettlement, error)
	Insert(ctx ctx.Ctx, pending *PendingSettlement) error
	// Remove consumes the pending record; returns domain.ErrNotFound when
	// it was consumed already.
	Remove(ctx ctx.Ctx, id string) error
}

// SettlePayload is what the listing side hands over on finalize. For sales
// the price is debited from the buyer's escrow inside Settle; for auctions
// FundsHeld is set and no debit happens.
type SettlePayload struct {
	ListingId     domain.ListingId
	Seller        domain.AccountId
	Buyer         domain.AccountId
	ApprovalId    uint64
	Currency      domain.CurrencyId
	Price         string
	SellerOrigins domain.Origins
	BuyerOrigins  domain.Origins
	FundsHeld     bool
}

type UseCase interface {
	// Settle debits the buyer (unless FundsHeld), records the pending
	// settlement and issues the asynchronous transfer request. The listing
	// record must already be gone when this is called.
	Settle(ctx ctx.Ctx, payload SettlePayload) (*PendingSettlement, error)
	// Resolve is the single synchronization point. With a valid payout it
	// disburses every share; with a failed transfer or an invalid table it
	// refunds the full price to the buyer's escrow. Either way the pending
	// record is consumed and a second Resolve fails with ErrNotFound.
	Resolve(ctx ctx.Ctx, id string, payout fee.Payout, transferOk bool) error
}

// TransferRequest asks the asset registry to move the item and report the
// payout split for the given price. Origins is the merged fee table of both
// trade sides, protocol share included.
type TransferRequest struct {
	SettlementId     string            `json:"settlementId"`
	Receiver         domain.AccountId  `json:"receiver"`
	ListingId        domain.ListingId  `json:"listingId"`
	ApprovalId       uint64            `json:"approvalId"`
	Origins          domain.Origins    `json:"origins"`
	Price            string            `json:"price"`
	MaxPayoutEntries int               `json:"maxPayoutEntries"`
	Currency         domain.CurrencyId `json:"currency"`
}

// AssetRegistry is the external collaborator owning the traded items.
type AssetRegistry interface {
	// TransferAndReportPayout is the outbound leg of the protocol. The
	// returned payout table may be nil when the transfer failed.
	TransferAndReportPayout(ctx ctx.Ctx, req TransferRequest) (fee.Payout, error)
}

// TokenTransfer moves non-native currency to a receiver. Fire and forget:
// the engine has no confirmation channel and cannot retry or roll back a
// transfer that fails downstream.
type TokenTransfer interface {
	Transfer(ctx ctx.Ctx, currency domain.CurrencyId, receiver domain.AccountId, amount string, memo string) error
}
