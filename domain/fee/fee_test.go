package fee

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bidmarket/goapi/domain"
)

func TestPriceWithFees(t *testing.T) {
	req := require.New(t)

	price := big.NewInt(10000)
	req.Equal(int64(10300), PriceWithFees(price, nil).Int64())

	origins := domain.Origins{"referrer": 200}
	req.Equal(int64(10500), PriceWithFees(price, origins).Int64())

	// integer division truncates
	req.Equal(int64(103), PriceWithFees(big.NewInt(100), nil).Int64())
	req.Equal(int64(1), PriceWithFees(big.NewInt(1), nil).Int64())
}

func TestProtocolFee(t *testing.T) {
	req := require.New(t)
	req.Equal(int64(300), ProtocolFee(big.NewInt(10000)).Int64())
	req.Equal(int64(0), ProtocolFee(big.NewInt(1)).Int64())
}

func TestValidateOrigins(t *testing.T) {
	req := require.New(t)

	req.NoError(ValidateOrigins(nil))
	req.NoError(ValidateOrigins(domain.Origins{"a": 4700}))
	req.ErrorIs(ValidateOrigins(domain.Origins{"a": 4701}), domain.ErrOriginFeeTooHigh)
	req.ErrorIs(ValidateOrigins(domain.Origins{"a": 3000, "b": 1800}), domain.ErrOriginFeeTooHigh)
}

func TestValidatePayout(t *testing.T) {
	req := require.New(t)
	price := big.NewInt(10000)

	// shares sum to price exactly
	req.NoError(ValidatePayout(Payout{
		"seller":   "9400",
		"market":   "300",
		"royalty1": "300",
	}, price))

	// remainder of one unit is tolerated
	req.NoError(ValidatePayout(Payout{
		"seller": "9999",
	}, price))

	// remainder of two units is not
	req.ErrorIs(ValidatePayout(Payout{
		"seller": "9998",
	}, price), domain.ErrInvalidPayout)

	// overshooting the price is rejected
	req.ErrorIs(ValidatePayout(Payout{
		"seller": "9000",
		"market": "2000",
	}, price), domain.ErrInvalidPayout)

	// empty and oversized tables are rejected
	req.ErrorIs(ValidatePayout(Payout{}, price), domain.ErrInvalidPayout)
	tooMany := Payout{}
	for i := 0; i < MaxPayoutEntries+1; i++ {
		tooMany[domain.AccountId(rune('a'+i))] = "0"
	}
	req.ErrorIs(ValidatePayout(tooMany, price), domain.ErrInvalidPayout)

	// malformed share
	req.ErrorIs(ValidatePayout(Payout{"seller": "abc"}, price), domain.ErrInvalidPayout)
}

func TestFeeConservation(t *testing.T) {
	req := require.New(t)

	for _, priceVal := range []int64{1, 3, 9999, 10000, 123456789} {
		price := big.NewInt(priceVal)
		origins := domain.Origins{"ref1": 150, "ref2": 250}

		payout := Payout{}
		remainder := new(big.Int).Set(price)
		protocol := ProtocolFee(price)
		remainder.Sub(remainder, protocol)
		payout["market"] = protocol.String()
		for account, bps := range origins {
			share := Share(price, bps)
			remainder.Sub(remainder, share)
			payout[account] = share.String()
		}
		payout["seller"] = remainder.String()

		req.NoError(ValidatePayout(payout, price), "price %d", priceVal)
	}
}

func TestMergeOrigins(t *testing.T) {
	req := require.New(t)

	merged := MergeOrigins(
		domain.Origins{"seller.ref": 100, "market": 300},
		domain.Origins{"buyer.ref": 200},
	)
	req.Equal(uint32(100), merged["seller.ref"])
	req.Equal(uint32(200), merged["buyer.ref"])
	req.Equal(uint32(300), merged["market"])
	req.Len(merged, 3)

	// a principal on both sides keeps a single summed entry
	merged = MergeOrigins(domain.Origins{"ref": 100}, domain.Origins{"ref": 50})
	req.Equal(uint32(150), merged["ref"])
	req.Len(merged, 1)

	req.Empty(MergeOrigins(nil, nil))
}

func TestSellerSide(t *testing.T) {
	req := require.New(t)

	merged := SellerSide(domain.Origins{"ref": 100}, "market")
	req.Equal(uint32(100), merged["ref"])
	req.Equal(uint32(ProtocolFeeBps), merged["market"])
	req.Len(merged, 2)

	merged = SellerSide(nil, "market")
	req.Equal(uint32(ProtocolFeeBps), merged["market"])
	req.Len(merged, 1)
}
