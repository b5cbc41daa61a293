package usecase

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	bCtx "github.com/bidmarket/goapi/base/ctx"
	"github.com/bidmarket/goapi/domain"
	mAuction "github.com/bidmarket/goapi/domain/auction/mocks"
	"github.com/bidmarket/goapi/domain/bid"
	mBid "github.com/bidmarket/goapi/domain/bid/mocks"
	"github.com/bidmarket/goapi/domain/escrow"
	mEscrow "github.com/bidmarket/goapi/domain/escrow/mocks"
	mDomain "github.com/bidmarket/goapi/domain/mocks"
	"github.com/bidmarket/goapi/domain/sale"
	mSale "github.com/bidmarket/goapi/domain/sale/mocks"
	"github.com/bidmarket/goapi/domain/settlement"
	mSettlement "github.com/bidmarket/goapi/domain/settlement/mocks"
)

var (
	mockListing = domain.ListingId{Collection: "punks.market", TokenId: "42"}
	mockNow     = time.Date(2023, 4, 1, 12, 0, 0, 0, time.UTC)
)

type testSuite struct {
	suite.Suite

	ctx         bCtx.Ctx
	repo        *mSale.Repo
	auctions    *mAuction.Repo
	bids        *mBid.UseCase
	bidRepo     *mBid.Repo
	escrowUC    *mEscrow.UseCase
	settlements *mSettlement.UseCase
	payTokens   *mDomain.PayTokenRepo
	im          sale.UseCase
}

func TestSuite(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) SetupTest() {
	s.ctx = bCtx.Background()
	s.repo = &mSale.Repo{}
	s.auctions = &mAuction.Repo{}
	s.bids = &mBid.UseCase{}
	s.bidRepo = &mBid.Repo{}
	s.escrowUC = &mEscrow.UseCase{}
	s.settlements = &mSettlement.UseCase{}
	s.payTokens = &mDomain.PayTokenRepo{}
	s.im = New(s.repo, s.auctions, s.bids, s.bidRepo, s.escrowUC, s.settlements, s.payTokens, "market.protocol")
	timeNow = func() time.Time { return mockNow }
}

func (s *testSuite) TearDownTest() {
	timeNow = time.Now
}

func (s *testSuite) openSale() *sale.Sale {
	return &sale.Sale{
		Owner:      "seller",
		ListingId:  mockListing,
		Conditions: sale.Conditions{domain.CurrencyNative: "10000"},
		Start:      mockNow.Add(-time.Hour),
	}
}

func (s *testSuite) TestCreate() {
	s.repo.On("FindOne", mock.Anything, mockListing).Return(nil, domain.ErrNotFound)
	s.auctions.On("Count", mock.Anything, mock.Anything).Return(0, nil)
	s.repo.On("Insert", mock.Anything, mock.MatchedBy(func(got *sale.Sale) bool {
		return got.Owner == "seller" && got.Conditions[domain.CurrencyNative] == "10000"
	})).Return(nil)

	_, err := s.im.Create(s.ctx, sale.CreatePayload{
		Owner:      "seller",
		ListingId:  mockListing,
		Conditions: sale.Conditions{domain.CurrencyNative: "10000"},
	})
	s.Require().NoError(err)
	s.repo.AssertExpectations(s.T())
}

func (s *testSuite) TestCreateConflictsWithExistingSale() {
	s.repo.On("FindOne", mock.Anything, mockListing).Return(s.openSale(), nil)

	_, err := s.im.Create(s.ctx, sale.CreatePayload{
		Owner:      "seller",
		ListingId:  mockListing,
		Conditions: sale.Conditions{domain.CurrencyNative: "10000"},
	})
	s.Equal(domain.ErrConflict, err)
}

func (s *testSuite) TestCreateConflictsWithAuction() {
	s.repo.On("FindOne", mock.Anything, mockListing).Return(nil, domain.ErrNotFound)
	s.auctions.On("Count", mock.Anything, mock.Anything).Return(1, nil)

	_, err := s.im.Create(s.ctx, sale.CreatePayload{
		Owner:      "seller",
		ListingId:  mockListing,
		Conditions: sale.Conditions{domain.CurrencyNative: "10000"},
	})
	s.Equal(domain.ErrConflict, err)
}

func (s *testSuite) TestUpdatePrice() {
	s.repo.On("FindOne", mock.Anything, mockListing).Return(s.openSale(), nil)
	s.repo.On("Upsert", mock.Anything, mock.MatchedBy(func(got *sale.Sale) bool {
		return got.Conditions[domain.CurrencyNative] == "20000"
	})).Return(nil)

	s.Require().NoError(s.im.UpdatePrice(s.ctx, mockListing, "seller", domain.CurrencyNative, "20000"))
}

func (s *testSuite) TestUpdatePriceNotOwner() {
	s.repo.On("FindOne", mock.Anything, mockListing).Return(s.openSale(), nil)

	s.Equal(domain.ErrNotOwner, s.im.UpdatePrice(s.ctx, mockListing, "intruder", domain.CurrencyNative, "20000"))
}

func (s *testSuite) TestUpdatePriceUnknownCurrency() {
	s.repo.On("FindOne", mock.Anything, mockListing).Return(s.openSale(), nil)

	s.Equal(domain.ErrInvalidCurrency, s.im.UpdatePrice(s.ctx, mockListing, "seller", "usdc.token", "20000"))
}

func (s *testSuite) TestRemoveElapsedByAnyone() {
	elapsed := s.openSale()
	end := mockNow.Add(-time.Minute)
	elapsed.End = &end
	s.repo.On("FindOne", mock.Anything, mockListing).Return(elapsed, nil)
	s.repo.On("Remove", mock.Anything, mockListing).Return(nil)

	s.Require().NoError(s.im.Remove(s.ctx, mockListing, "anyone"))
}

func (s *testSuite) TestRemoveOpenOnlyByOwner() {
	s.repo.On("FindOne", mock.Anything, mockListing).Return(s.openSale(), nil)

	s.Equal(domain.ErrNotOwner, s.im.Remove(s.ctx, mockListing, "anyone"))
}

func (s *testSuite) TestOfferBooksBid() {
	s.repo.On("FindOne", mock.Anything, mockListing).Return(s.openSale(), nil)
	s.bids.On("PlaceBid", mock.Anything, mock.MatchedBy(func(p bid.PlaceBidPayload) bool {
		return p.Owner == "buyer" && p.Price == "9000"
	})).Return(&bid.Bid{BidId: 11}, nil)

	res, err := s.im.Offer(s.ctx, sale.OfferPayload{
		ListingId: mockListing,
		Buyer:     "buyer",
		Currency:  domain.CurrencyNative,
		Price:     "9000",
	})
	s.Require().NoError(err)
	s.False(res.Purchased)
	s.Equal(domain.BidId(11), *res.Bid)
}

func (s *testSuite) TestOfferBuysOutright() {
	// ask 10000 plus 3% protocol fee = 10300
	s.repo.On("FindOne", mock.Anything, mockListing).Return(s.openSale(), nil)
	s.escrowUC.On("Balance", mock.Anything, escrow.BalanceId{Owner: "buyer", Currency: domain.CurrencyNative}).Return(big.NewInt(20000), nil)
	s.repo.On("Remove", mock.Anything, mockListing).Return(nil)
	s.settlements.On("Settle", mock.Anything, mock.MatchedBy(func(p settlement.SettlePayload) bool {
		return !p.FundsHeld && p.Buyer == "buyer" && p.Price == "10300"
	})).Return(&settlement.PendingSettlement{Id: "x"}, nil)

	res, err := s.im.Offer(s.ctx, sale.OfferPayload{
		ListingId: mockListing,
		Buyer:     "buyer",
		Currency:  domain.CurrencyNative,
		Price:     "10300",
	})
	s.Require().NoError(err)
	s.True(res.Purchased)
	s.settlements.AssertExpectations(s.T())
}

func (s *testSuite) TestOfferHighPriceLowBalanceBooksBid() {
	s.repo.On("FindOne", mock.Anything, mockListing).Return(s.openSale(), nil)
	s.escrowUC.On("Balance", mock.Anything, escrow.BalanceId{Owner: "buyer", Currency: domain.CurrencyNative}).Return(big.NewInt(1), nil)
	s.bids.On("PlaceBid", mock.Anything, mock.Anything).Return(&bid.Bid{BidId: 12}, nil)

	res, err := s.im.Offer(s.ctx, sale.OfferPayload{
		ListingId: mockListing,
		Buyer:     "buyer",
		Currency:  domain.CurrencyNative,
		Price:     "10300",
	})
	s.Require().NoError(err)
	s.False(res.Purchased)
	s.settlements.AssertNotCalled(s.T(), "Settle", mock.Anything, mock.Anything)
}

func (s *testSuite) TestOfferAboveAskBooksBid() {
	s.repo.On("FindOne", mock.Anything, mockListing).Return(s.openSale(), nil)
	s.bids.On("PlaceBid", mock.Anything, mock.MatchedBy(func(p bid.PlaceBidPayload) bool {
		return p.Price == "10301"
	})).Return(&bid.Bid{BidId: 13}, nil)

	res, err := s.im.Offer(s.ctx, sale.OfferPayload{
		ListingId: mockListing,
		Buyer:     "buyer",
		Currency:  domain.CurrencyNative,
		Price:     "10301",
	})
	s.Require().NoError(err)
	s.False(res.Purchased)
	s.Equal(domain.BidId(13), *res.Bid)
	s.settlements.AssertNotCalled(s.T(), "Settle", mock.Anything, mock.Anything)
}

func (s *testSuite) TestOfferOwnListing() {
	s.repo.On("FindOne", mock.Anything, mockListing).Return(s.openSale(), nil)

	_, err := s.im.Offer(s.ctx, sale.OfferPayload{
		ListingId: mockListing,
		Buyer:     "seller",
		Currency:  domain.CurrencyNative,
		Price:     "9000",
	})
	s.Equal(domain.ErrOwnListing, err)
}

func (s *testSuite) TestOfferUnsupportedCurrency() {
	s.repo.On("FindOne", mock.Anything, mockListing).Return(s.openSale(), nil)

	_, err := s.im.Offer(s.ctx, sale.OfferPayload{
		ListingId: mockListing,
		Buyer:     "buyer",
		Currency:  "usdc.token",
		Price:     "9000",
	})
	s.Equal(domain.ErrInvalidCurrency, err)
}

func (s *testSuite) TestAcceptBestBid() {
	best := &bid.Bid{
		BidId:     21,
		ListingId: mockListing,
		Owner:     "buyer",
		Currency:  domain.CurrencyNative,
		Price:     "9500",
	}
	s.repo.On("FindOne", mock.Anything, mockListing).Return(s.openSale(), nil)
	s.bids.On("SelectBest", mock.Anything, mockListing, domain.CurrencyNative).Return(best, nil)
	s.repo.On("Remove", mock.Anything, mockListing).Return(nil)
	s.settlements.On("Settle", mock.Anything, mock.MatchedBy(func(p settlement.SettlePayload) bool {
		return p.Buyer == "buyer" && p.Price == "9500" && !p.FundsHeld
	})).Return(&settlement.PendingSettlement{Id: "x"}, nil)
	s.bidRepo.On("Remove", mock.Anything, domain.BidId(21)).Return(nil)

	s.Require().NoError(s.im.AcceptBestBid(s.ctx, mockListing, "seller", domain.CurrencyNative))
	s.bidRepo.AssertExpectations(s.T())
}

func (s *testSuite) TestAcceptBestBidNoneActive() {
	s.repo.On("FindOne", mock.Anything, mockListing).Return(s.openSale(), nil)
	s.bids.On("SelectBest", mock.Anything, mockListing, domain.CurrencyNative).Return(nil, domain.ErrNoActiveBid)

	s.Equal(domain.ErrNoActiveBid, s.im.AcceptBestBid(s.ctx, mockListing, "seller", domain.CurrencyNative))
}

func (s *testSuite) TestAcceptBestBidNotOwner() {
	s.repo.On("FindOne", mock.Anything, mockListing).Return(s.openSale(), nil)

	s.Equal(domain.ErrNotOwner, s.im.AcceptBestBid(s.ctx, mockListing, "intruder", domain.CurrencyNative))
}
