// Package fee computes protocol, referral ("origin") and royalty splits.
// All shares are expressed in basis points of a 10000 denominator and all
// arithmetic is integer with truncating division.
package fee

import (
	"math/big"

	"github.com/bidmarket/goapi/domain"
)

const (
	// PayoutTotalValue is the basis-point denominator, 10000 == 100%.
	PayoutTotalValue = 10000
	// ProtocolFeeBps is the share retained by the marketplace operator.
	ProtocolFeeBps = 300
	// MaxOriginFeeBps caps the total referral share on either side.
	MaxOriginFeeBps = 4700
	// MaxPayoutEntries bounds the payout table reported by the asset
	// registry, referrals included.
	MaxPayoutEntries = 10
)

var (
	bpsDenominator = big.NewInt(PayoutTotalValue)
	protocolFee    = big.NewInt(ProtocolFeeBps)
)

// PriceWithFees returns the gross amount a buyer pays for the given ask
// price: price * (10000 + protocol + origins) / 10000.
func PriceWithFees(price *big.Int, origins domain.Origins) *big.Int {
	mul := big.NewInt(PayoutTotalValue + ProtocolFeeBps + int64(origins.TotalBps()))
	res := new(big.Int).Mul(price, mul)
	return res.Div(res, bpsDenominator)
}

// ProtocolFee returns the operator share of an amount.
func ProtocolFee(amount *big.Int) *big.Int {
	res := new(big.Int).Mul(amount, protocolFee)
	return res.Div(res, bpsDenominator)
}

// Share returns amount * bps / 10000.
func Share(amount *big.Int, bps uint32) *big.Int {
	res := new(big.Int).Mul(amount, big.NewInt(int64(bps)))
	return res.Div(res, bpsDenominator)
}

// ValidateOrigins rejects referral tables whose total exceeds the protocol
// cap. Checked at bid and offer time, never at settlement time.
func ValidateOrigins(origins domain.Origins) error {
	if origins.TotalBps() > MaxOriginFeeBps {
		return domain.ErrOriginFeeTooHigh
	}
	return nil
}

// Payout is the table reported back by the asset registry after an item
// transfer: receiver -> amount, royalty and referral shares included.
type Payout map[domain.AccountId]string

// ValidatePayout checks a payout table against the settled price. The table
// is rejected when it is empty, has more than MaxPayoutEntries entries, any
// share fails to parse, the shares overshoot the price, or more than one
// unit of the price is left unaccounted for. Fail closed: an invalid table
// triggers a full refund upstream.
func ValidatePayout(payout Payout, price *big.Int) error {
	if len(payout) == 0 || len(payout) > MaxPayoutEntries {
		return domain.ErrInvalidPayout
	}
	remainder := new(big.Int).Set(price)
	for _, share := range payout {
		v, err := domain.ParseAmount(share)
		if err != nil {
			return domain.ErrInvalidPayout
		}
		remainder.Sub(remainder, v)
		if remainder.Sign() < 0 {
			return domain.ErrInvalidPayout
		}
	}
	if remainder.Cmp(big.NewInt(1)) > 0 {
		return domain.ErrInvalidPayout
	}
	return nil
}

// MergeOrigins combines the referral tables of both trade sides into the
// single table handed to the asset registry. A principal named on both
// sides gets one entry with the summed share.
func MergeOrigins(tables ...domain.Origins) domain.Origins {
	merged := domain.Origins{}
	for _, table := range tables {
		for account, bps := range table {
			merged[account] += bps
		}
	}
	return merged
}

// SellerSide augments the seller referral table with the protocol principal.
// The merged table is handed to the asset registry so royalty computation
// can subtract every fee-side share at once.
func SellerSide(origins domain.Origins, protocolAccount domain.AccountId) domain.Origins {
	merged := make(domain.Origins, len(origins)+1)
	for account, bps := range origins {
		merged[account] = bps
	}
	merged[protocolAccount] = ProtocolFeeBps
	return merged
}
