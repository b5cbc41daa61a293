package usecase

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	bCtx "github.com/bidmarket/goapi/base/ctx"
	"github.com/bidmarket/goapi/base/ptr"
	"github.com/bidmarket/goapi/domain"
	mActivity "github.com/bidmarket/goapi/domain/activity/mocks"
	"github.com/bidmarket/goapi/domain/auction"
	mAuction "github.com/bidmarket/goapi/domain/auction/mocks"
	"github.com/bidmarket/goapi/domain/escrow"
	mEscrow "github.com/bidmarket/goapi/domain/escrow/mocks"
	mDomain "github.com/bidmarket/goapi/domain/mocks"
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
	repo        *mAuction.Repo
	escrowUC    *mEscrow.UseCase
	settlements *mSettlement.UseCase
	payTokens   *mDomain.PayTokenRepo
	activities  *mActivity.Repo
	im          auction.UseCase
}

func TestSuite(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) SetupTest() {
	s.ctx = bCtx.Background()
	s.repo = &mAuction.Repo{}
	s.escrowUC = &mEscrow.UseCase{}
	s.settlements = &mSettlement.UseCase{}
	s.payTokens = &mDomain.PayTokenRepo{}
	s.activities = &mActivity.Repo{}
	s.im = New(s.repo, s.escrowUC, s.settlements, s.payTokens, s.activities, "market.protocol")
	timeNow = func() time.Time { return mockNow }
}

func (s *testSuite) TearDownTest() {
	timeNow = time.Now
}

func (s *testSuite) openAuction() *auction.Auction {
	return &auction.Auction{
		AuctionId:   1,
		Owner:       "seller",
		ListingId:   mockListing,
		Currency:    domain.CurrencyNative,
		MinimalStep: "100",
		StartPrice:  "1000",
		Start:       mockNow.Add(-time.Hour),
		End:         mockNow.Add(time.Hour),
	}
}

func (s *testSuite) TestCreate() {
	s.repo.On("NextId", mock.Anything).Return(domain.AuctionId(9), nil)
	s.repo.On("Insert", mock.Anything, mock.MatchedBy(func(a *auction.Auction) bool {
		return a.AuctionId == 9 && a.End.Equal(mockNow.Add(time.Hour))
	})).Return(nil)

	a, err := s.im.Create(s.ctx, auction.CreatePayload{
		Owner:       "seller",
		ListingId:   mockListing,
		Currency:    domain.CurrencyNative,
		MinimalStep: "100",
		StartPrice:  "1000",
		Duration:    time.Hour,
	})
	s.Require().NoError(err)
	s.Equal(domain.AuctionId(9), a.AuctionId)
}

func (s *testSuite) TestCreateDurationBounds() {
	_, err := s.im.Create(s.ctx, auction.CreatePayload{
		Owner:       "seller",
		ListingId:   mockListing,
		Currency:    domain.CurrencyNative,
		MinimalStep: "100",
		StartPrice:  "1000",
		Duration:    10 * time.Minute,
	})
	s.Equal(domain.ErrInvalidDuration, err)

	_, err = s.im.Create(s.ctx, auction.CreatePayload{
		Owner:       "seller",
		ListingId:   mockListing,
		Currency:    domain.CurrencyNative,
		MinimalStep: "100",
		StartPrice:  "1000",
		Duration:    auction.MaxDuration + time.Second,
	})
	s.Equal(domain.ErrInvalidDuration, err)
}

func (s *testSuite) TestCreateRejectsPastStart() {
	past := mockNow.Add(-time.Minute)
	_, err := s.im.Create(s.ctx, auction.CreatePayload{
		Owner:       "seller",
		ListingId:   mockListing,
		Currency:    domain.CurrencyNative,
		MinimalStep: "100",
		StartPrice:  "1000",
		Start:       &past,
		Duration:    time.Hour,
	})
	s.Equal(domain.ErrInvalidStartTime, err)
}

func (s *testSuite) TestCreateRejectsBuyOutBelowStart() {
	_, err := s.im.Create(s.ctx, auction.CreatePayload{
		Owner:       "seller",
		ListingId:   mockListing,
		Currency:    domain.CurrencyNative,
		MinimalStep: "100",
		StartPrice:  "1000",
		BuyOutPrice: ptr.String("900"),
		Duration:    time.Hour,
	})
	s.Equal(domain.ErrBadParamInput, err)
}

func (s *testSuite) TestPlaceBidFirst() {
	a := s.openAuction()
	s.repo.On("FindOne", mock.Anything, domain.AuctionId(1)).Return(a, nil)
	s.escrowUC.On("DebitForSettlement", mock.Anything, escrow.BalanceId{Owner: "bidder", Currency: domain.CurrencyNative}, big.NewInt(1000)).Return(nil)
	s.repo.On("Upsert", mock.Anything, mock.MatchedBy(func(got *auction.Auction) bool {
		return got.Bid != nil && got.Bid.Owner == "bidder" && got.Bid.Price == "1000"
	})).Return(nil)

	got, err := s.im.PlaceBid(s.ctx, 1, "bidder", "1000")
	s.Require().NoError(err)
	s.NotNil(got.Bid)
}

func (s *testSuite) TestPlaceBidTooLow() {
	a := s.openAuction()
	a.Bid = &auction.CurrentBid{Owner: "first", Price: "1000"}
	s.repo.On("FindOne", mock.Anything, domain.AuctionId(1)).Return(a, nil)

	_, err := s.im.PlaceBid(s.ctx, 1, "bidder", "1099")
	s.Equal(domain.ErrBidTooLow, err)
}

func (s *testSuite) TestPlaceBidRefundsPrevious() {
	a := s.openAuction()
	a.Bid = &auction.CurrentBid{Owner: "first", Price: "1000"}
	s.repo.On("FindOne", mock.Anything, domain.AuctionId(1)).Return(a, nil)
	s.escrowUC.On("DebitForSettlement", mock.Anything, escrow.BalanceId{Owner: "bidder", Currency: domain.CurrencyNative}, big.NewInt(1100)).Return(nil)
	s.escrowUC.On("Credit", mock.Anything, escrow.BalanceId{Owner: "first", Currency: domain.CurrencyNative}, big.NewInt(1000)).Return(nil)
	s.activities.On("Insert", mock.Anything, mock.Anything).Return(nil)
	s.repo.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	_, err := s.im.PlaceBid(s.ctx, 1, "bidder", "1100")
	s.Require().NoError(err)
	s.escrowUC.AssertExpectations(s.T())
}

func (s *testSuite) TestPlaceBidSelfRejected() {
	a := s.openAuction()
	s.repo.On("FindOne", mock.Anything, domain.AuctionId(1)).Return(a, nil)

	_, err := s.im.PlaceBid(s.ctx, 1, "seller", "1000")
	s.Equal(domain.ErrOwnListing, err)
}

func (s *testSuite) TestPlaceBidOutsideWindow() {
	a := s.openAuction()
	a.End = mockNow.Add(-time.Minute)
	s.repo.On("FindOne", mock.Anything, domain.AuctionId(1)).Return(a, nil)

	_, err := s.im.PlaceBid(s.ctx, 1, "bidder", "1000")
	s.Equal(domain.ErrListingNotActive, err)
}

func (s *testSuite) TestPlaceBidAntiSnipeExtends() {
	a := s.openAuction()
	a.End = mockNow.Add(5 * time.Minute)
	s.repo.On("FindOne", mock.Anything, domain.AuctionId(1)).Return(a, nil)
	s.escrowUC.On("DebitForSettlement", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	s.repo.On("Upsert", mock.Anything, mock.MatchedBy(func(got *auction.Auction) bool {
		return got.End.Equal(mockNow.Add(auction.ExtensionDuration))
	})).Return(nil)

	_, err := s.im.PlaceBid(s.ctx, 1, "bidder", "1000")
	s.Require().NoError(err)
	s.repo.AssertExpectations(s.T())
}

func (s *testSuite) TestPlaceBidEarlyKeepsEnd() {
	a := s.openAuction()
	s.repo.On("FindOne", mock.Anything, domain.AuctionId(1)).Return(a, nil)
	s.escrowUC.On("DebitForSettlement", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	s.repo.On("Upsert", mock.Anything, mock.MatchedBy(func(got *auction.Auction) bool {
		// an hour left is outside the anti-snipe window, End stays put
		return got.End.Equal(mockNow.Add(time.Hour))
	})).Return(nil)

	_, err := s.im.PlaceBid(s.ctx, 1, "bidder", "1000")
	s.Require().NoError(err)
	s.repo.AssertExpectations(s.T())
}

func (s *testSuite) TestPlaceBidBuyOutForcesEnd() {
	a := s.openAuction()
	a.BuyOutPrice = ptr.String("5000")
	s.repo.On("FindOne", mock.Anything, domain.AuctionId(1)).Return(a, nil)
	s.escrowUC.On("DebitForSettlement", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	s.repo.On("Upsert", mock.Anything, mock.MatchedBy(func(got *auction.Auction) bool {
		return got.End.Equal(mockNow)
	})).Return(nil)

	_, err := s.im.PlaceBid(s.ctx, 1, "bidder", "5000")
	s.Require().NoError(err)
	s.repo.AssertExpectations(s.T())
}

func (s *testSuite) TestPlaceBidInsufficientEscrow() {
	a := s.openAuction()
	s.repo.On("FindOne", mock.Anything, domain.AuctionId(1)).Return(a, nil)
	s.escrowUC.On("DebitForSettlement", mock.Anything, mock.Anything, mock.Anything).Return(domain.ErrInsufficientFunds)

	_, err := s.im.PlaceBid(s.ctx, 1, "bidder", "1000")
	s.Equal(domain.ErrInsufficientFunds, err)
	s.repo.AssertNotCalled(s.T(), "Upsert", mock.Anything, mock.Anything)
}

func (s *testSuite) TestCancelWithBidFails() {
	a := s.openAuction()
	a.Bid = &auction.CurrentBid{Owner: "first", Price: "1000"}
	s.repo.On("FindOne", mock.Anything, domain.AuctionId(1)).Return(a, nil)

	s.Equal(domain.ErrListingHasBid, s.im.Cancel(s.ctx, 1, "seller"))
}

func (s *testSuite) TestCancelNotOwner() {
	a := s.openAuction()
	s.repo.On("FindOne", mock.Anything, domain.AuctionId(1)).Return(a, nil)

	s.Equal(domain.ErrNotOwner, s.im.Cancel(s.ctx, 1, "intruder"))
}

func (s *testSuite) TestFinishBeforeEnd() {
	a := s.openAuction()
	a.Bid = &auction.CurrentBid{Owner: "bidder", Price: "1000"}
	s.repo.On("FindOne", mock.Anything, domain.AuctionId(1)).Return(a, nil)

	s.Equal(domain.ErrListingNotEnded, s.im.Finish(s.ctx, 1))
}

func (s *testSuite) TestFinishWithoutBid() {
	a := s.openAuction()
	a.End = mockNow.Add(-time.Minute)
	s.repo.On("FindOne", mock.Anything, domain.AuctionId(1)).Return(a, nil)

	s.Equal(domain.ErrNoActiveBid, s.im.Finish(s.ctx, 1))
}

func (s *testSuite) TestFinishSettlesWithHeldFunds() {
	a := s.openAuction()
	a.End = mockNow.Add(-time.Minute)
	a.Bid = &auction.CurrentBid{Owner: "bidder", Price: "1200"}
	s.repo.On("FindOne", mock.Anything, domain.AuctionId(1)).Return(a, nil)
	s.repo.On("Remove", mock.Anything, domain.AuctionId(1)).Return(nil)
	s.settlements.On("Settle", mock.Anything, mock.MatchedBy(func(p settlement.SettlePayload) bool {
		return p.FundsHeld && p.Buyer == "bidder" && p.Price == "1200" && p.SellerOrigins["market.protocol"] == 300
	})).Return(&settlement.PendingSettlement{Id: "x"}, nil)

	s.Require().NoError(s.im.Finish(s.ctx, 1))
	s.settlements.AssertExpectations(s.T())
}

func (s *testSuite) TestMinimalNextBid() {
	a := s.openAuction()
	s.repo.On("FindOne", mock.Anything, domain.AuctionId(1)).Return(a, nil).Once()

	min, err := s.im.MinimalNextBid(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal("1000", min)

	a2 := s.openAuction()
	a2.Bid = &auction.CurrentBid{Owner: "first", Price: "1000"}
	s.repo.On("FindOne", mock.Anything, domain.AuctionId(1)).Return(a2, nil).Once()

	min, err = s.im.MinimalNextBid(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal("1100", min)
}
