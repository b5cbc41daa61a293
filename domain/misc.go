package domain

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"golang.org/x/xerrors"
)

// AccountId identifies a principal: a buyer, a seller, a referral
// beneficiary or the marketplace operator itself.
type AccountId string

func (a AccountId) ToLower() AccountId {
	return AccountId(strings.ToLower(string(a)))
}

func (a AccountId) IsEmpty() bool {
	return len(a) == 0
}

func (a AccountId) Equals(b AccountId) bool {
	return a.ToLower() == b.ToLower()
}

// CollectionId identifies the asset collection that owns a token.
type CollectionId string

func (c CollectionId) ToLower() CollectionId {
	return CollectionId(strings.ToLower(string(c)))
}

type TokenId string

func (i TokenId) String() string {
	return string(i)
}

// CurrencyId identifies a settlement currency. CurrencyNative is always
// supported; everything else has to be registered as a pay token.
type CurrencyId string

const CurrencyNative = CurrencyId("native")

func (c CurrencyId) ToLower() CurrencyId {
	return CurrencyId(strings.ToLower(string(c)))
}

func (c CurrencyId) IsNative() bool {
	return c == CurrencyNative
}

// ListingId is the composite key of a tradable item. At most one sale and
// one auction may be open per listing id, mutually exclusive.
type ListingId struct {
	Collection CollectionId `json:"collection" bson:"collection"`
	TokenId    TokenId      `json:"tokenId" bson:"tokenID"`
}

func (l ListingId) ToLower() ListingId {
	return ListingId{l.Collection.ToLower(), l.TokenId}
}

type BidId uint64

type AuctionId uint64

// Origins maps referral principals to their basis-point share of a sale.
type Origins map[AccountId]uint32

func (o Origins) TotalBps() uint32 {
	total := uint32(0)
	for _, bps := range o {
		total += bps
	}
	return total
}

// amounts travel as decimal strings since bson has no 128-bit integer

func ParseAmount(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok || v.Sign() < 0 {
		return nil, xerrors.Errorf("invalid amount %q: %w", s, ErrInvalidNumberFormat)
	}
	return v, nil
}

// AmountToHex renders an amount as a 64-digit zero-padded hex string so
// that lexicographic order in mongo matches numeric order.
func AmountToHex(v *big.Int) string {
	return fmt.Sprintf("%064x", v)
}

func AmountStringToHex(s string) (string, error) {
	v, err := ParseAmount(s)
	if err != nil {
		return "", err
	}
	return AmountToHex(v), nil
}

type SortDir int8

const (
	SortDirAsc  SortDir = 1
	SortDirDesc SortDir = -1
)

// Table is a mongo collection name
type Table string

const (
	TableAuctions           Table = "auctions"
	TableSales              Table = "sales"
	TableBids               Table = "bids"
	TableEscrowBalances     Table = "escrow_balances"
	TablePendingSettlements Table = "pending_settlements"
	TablePayTokens          Table = "pay_tokens"
	TableActivities         Table = "activities"
	TableCounters           Table = "counters"
)

// InWindow reports whether now falls inside [start, end). A nil end means
// the window is open ended.
func InWindow(now, start time.Time, end *time.Time) bool {
	if now.Before(start) {
		return false
	}
	if end != nil && !now.Before(*end) {
		return false
	}
	return true
}
