package usecase

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	bCtx "github.com/bidmarket/goapi/base/ctx"
	"github.com/bidmarket/goapi/base/metrics"
	"github.com/bidmarket/goapi/domain"
	"github.com/bidmarket/goapi/domain/activity"
	mActivity "github.com/bidmarket/goapi/domain/activity/mocks"
	"github.com/bidmarket/goapi/domain/escrow"
	mEscrow "github.com/bidmarket/goapi/domain/escrow/mocks"
	"github.com/bidmarket/goapi/domain/fee"
	"github.com/bidmarket/goapi/domain/settlement"
	mSettlement "github.com/bidmarket/goapi/domain/settlement/mocks"
)

var (
	mockListing = domain.ListingId{Collection: "punks.market", TokenId: "42"}
	mockNow     = time.Date(2023, 4, 1, 12, 0, 0, 0, time.UTC)
)

type noopMetrics struct{}

func (noopMetrics) BumpAvg(string, float64, ...string)       {}
func (noopMetrics) BumpSum(string, float64, ...string)       {}
func (noopMetrics) BumpHistogram(string, float64, ...string) {}
func (noopMetrics) BumpTime(string, ...string) metrics.Ender { return noopEnder{} }

type noopEnder struct{}

func (noopEnder) End() {}

type testSuite struct {
	suite.Suite

	ctx        bCtx.Ctx
	repo       *mSettlement.Repo
	escrowUC   *mEscrow.UseCase
	activities *mActivity.Repo
	registry   *mSettlement.AssetRegistry
	transfers  *mSettlement.TokenTransfer
	im         *impl
}

func TestSuite(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) SetupTest() {
	s.ctx = bCtx.Background()
	s.repo = &mSettlement.Repo{}
	s.escrowUC = &mEscrow.UseCase{}
	s.activities = &mActivity.Repo{}
	s.registry = &mSettlement.AssetRegistry{}
	s.transfers = &mSettlement.TokenTransfer{}
	s.im = &impl{
		repo:       s.repo,
		escrow:     s.escrowUC,
		activities: s.activities,
		registry:   s.registry,
		transfers:  s.transfers,
		met:        noopMetrics{},
		async:      false,
	}
	timeNow = func() time.Time { return mockNow }
}

func (s *testSuite) TearDownTest() {
	timeNow = time.Now
}

func (s *testSuite) pending(fundsHeld bool) *settlement.PendingSettlement {
	return &settlement.PendingSettlement{
		Id:        "settlement-1",
		ListingId: mockListing,
		Seller:    "seller",
		Buyer:     "buyer",
		Currency:  domain.CurrencyNative,
		Price:     "1000",
		FundsHeld: fundsHeld,
		CreatedAt: mockNow,
	}
}

func (s *testSuite) TestSettleDebitsBuyerForSales() {
	buyerId := escrow.BalanceId{Owner: "buyer", Currency: domain.CurrencyNative}
	s.escrowUC.On("DebitForSettlement", mock.Anything, buyerId, big.NewInt(1000)).Return(nil)
	s.repo.On("Insert", mock.Anything, mock.Anything).Return(nil)
	s.registry.On("TransferAndReportPayout", mock.Anything, mock.Anything).Return(nil, domain.ErrInternalServerError)
	s.repo.On("FindOne", mock.Anything, mock.Anything).Return(s.pending(false), nil)
	s.repo.On("Remove", mock.Anything, mock.Anything).Return(nil)
	s.escrowUC.On("Credit", mock.Anything, buyerId, big.NewInt(1000)).Return(nil)
	s.activities.On("Insert", mock.Anything, mock.Anything).Return(nil)

	p, err := s.im.Settle(s.ctx, settlement.SettlePayload{
		ListingId: mockListing,
		Seller:    "seller",
		Buyer:     "buyer",
		Currency:  domain.CurrencyNative,
		Price:     "1000",
	})
	s.Require().NoError(err)
	s.False(p.FundsHeld)
	s.escrowUC.AssertCalled(s.T(), "DebitForSettlement", mock.Anything, buyerId, big.NewInt(1000))
}

func (s *testSuite) TestSettleSkipsDebitWhenFundsHeld() {
	s.repo.On("Insert", mock.Anything, mock.Anything).Return(nil)
	s.registry.On("TransferAndReportPayout", mock.Anything, mock.Anything).Return(nil, domain.ErrInternalServerError)
	s.repo.On("FindOne", mock.Anything, mock.Anything).Return(s.pending(true), nil)
	s.repo.On("Remove", mock.Anything, mock.Anything).Return(nil)
	s.escrowUC.On("Credit", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	s.activities.On("Insert", mock.Anything, mock.Anything).Return(nil)

	_, err := s.im.Settle(s.ctx, settlement.SettlePayload{
		ListingId: mockListing,
		Seller:    "seller",
		Buyer:     "buyer",
		Currency:  domain.CurrencyNative,
		Price:     "1000",
		FundsHeld: true,
	})
	s.Require().NoError(err)
	s.escrowUC.AssertNotCalled(s.T(), "DebitForSettlement", mock.Anything, mock.Anything, mock.Anything)
}

func (s *testSuite) TestSettleForwardsBuyerOrigins() {
	buyerId := escrow.BalanceId{Owner: "buyer", Currency: domain.CurrencyNative}
	s.escrowUC.On("DebitForSettlement", mock.Anything, buyerId, big.NewInt(1000)).Return(nil)
	s.repo.On("Insert", mock.Anything, mock.Anything).Return(nil)
	var got settlement.TransferRequest
	s.registry.On("TransferAndReportPayout", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		got = args.Get(1).(settlement.TransferRequest)
	}).Return(nil, domain.ErrInternalServerError)
	s.repo.On("FindOne", mock.Anything, mock.Anything).Return(s.pending(false), nil)
	s.repo.On("Remove", mock.Anything, mock.Anything).Return(nil)
	s.escrowUC.On("Credit", mock.Anything, buyerId, big.NewInt(1000)).Return(nil)
	s.activities.On("Insert", mock.Anything, mock.Anything).Return(nil)

	_, err := s.im.Settle(s.ctx, settlement.SettlePayload{
		ListingId:     mockListing,
		Seller:        "seller",
		Buyer:         "buyer",
		Currency:      domain.CurrencyNative,
		Price:         "1000",
		SellerOrigins: domain.Origins{"market.protocol": 300},
		BuyerOrigins:  domain.Origins{"buyer.referrer": 200},
	})
	s.Require().NoError(err)
	s.Equal(uint32(200), got.Origins["buyer.referrer"])
	s.Equal(uint32(300), got.Origins["market.protocol"])
}

func (s *testSuite) TestSettleInsufficientFunds() {
	buyerId := escrow.BalanceId{Owner: "buyer", Currency: domain.CurrencyNative}
	s.escrowUC.On("DebitForSettlement", mock.Anything, buyerId, big.NewInt(1000)).Return(domain.ErrInsufficientFunds)

	_, err := s.im.Settle(s.ctx, settlement.SettlePayload{
		ListingId: mockListing,
		Seller:    "seller",
		Buyer:     "buyer",
		Currency:  domain.CurrencyNative,
		Price:     "1000",
	})
	s.Equal(domain.ErrInsufficientFunds, err)
	s.repo.AssertNotCalled(s.T(), "Insert", mock.Anything, mock.Anything)
}

func (s *testSuite) TestResolveDisbursesValidPayout() {
	s.repo.On("FindOne", mock.Anything, "settlement-1").Return(s.pending(false), nil)
	s.repo.On("Remove", mock.Anything, "settlement-1").Return(nil)
	s.escrowUC.On("Credit", mock.Anything, escrow.BalanceId{Owner: "seller", Currency: domain.CurrencyNative}, big.NewInt(900)).Return(nil)
	s.escrowUC.On("Credit", mock.Anything, escrow.BalanceId{Owner: "market", Currency: domain.CurrencyNative}, big.NewInt(100)).Return(nil)
	s.activities.On("Insert", mock.Anything, mock.MatchedBy(func(a *activity.Activity) bool {
		return a.Type == activity.TypeSold
	})).Return(nil)

	payout := fee.Payout{"seller": "900", "market": "100"}
	s.Require().NoError(s.im.Resolve(s.ctx, "settlement-1", payout, true))
	s.escrowUC.AssertExpectations(s.T())
}

func (s *testSuite) TestResolveRefundsOnFailedTransfer() {
	s.repo.On("FindOne", mock.Anything, "settlement-1").Return(s.pending(false), nil)
	s.repo.On("Remove", mock.Anything, "settlement-1").Return(nil)
	s.escrowUC.On("Credit", mock.Anything, escrow.BalanceId{Owner: "buyer", Currency: domain.CurrencyNative}, big.NewInt(1000)).Return(nil)
	s.activities.On("Insert", mock.Anything, mock.MatchedBy(func(a *activity.Activity) bool {
		return a.Type == activity.TypeSettlementRefund
	})).Return(nil)

	s.Require().NoError(s.im.Resolve(s.ctx, "settlement-1", nil, false))
	s.escrowUC.AssertExpectations(s.T())
}

func (s *testSuite) TestResolveRefundsOnInvalidPayout() {
	s.repo.On("FindOne", mock.Anything, "settlement-1").Return(s.pending(false), nil)
	s.repo.On("Remove", mock.Anything, "settlement-1").Return(nil)
	s.escrowUC.On("Credit", mock.Anything, escrow.BalanceId{Owner: "buyer", Currency: domain.CurrencyNative}, big.NewInt(1000)).Return(nil)
	s.activities.On("Insert", mock.Anything, mock.Anything).Return(nil)

	// shares overshoot the price
	payout := fee.Payout{"seller": "900", "market": "200"}
	s.Require().NoError(s.im.Resolve(s.ctx, "settlement-1", payout, true))
	s.escrowUC.AssertCalled(s.T(), "Credit", mock.Anything, escrow.BalanceId{Owner: "buyer", Currency: domain.CurrencyNative}, big.NewInt(1000))
}

func (s *testSuite) TestResolveConsumedOnce() {
	s.repo.On("FindOne", mock.Anything, "settlement-1").Return(nil, domain.ErrNotFound)

	err := s.im.Resolve(s.ctx, "settlement-1", nil, false)
	s.Equal(domain.ErrNotFound, err)
}

func (s *testSuite) TestResolveNonNativeUsesTokenTransfer() {
	pending := s.pending(false)
	pending.Currency = "usdc.token"
	s.repo.On("FindOne", mock.Anything, "settlement-1").Return(pending, nil)
	s.repo.On("Remove", mock.Anything, "settlement-1").Return(nil)
	s.transfers.On("Transfer", mock.Anything, domain.CurrencyId("usdc.token"), domain.AccountId("seller"), "1000", "settlement-1").Return(nil)
	s.activities.On("Insert", mock.Anything, mock.Anything).Return(nil)

	payout := fee.Payout{"seller": "1000"}
	s.Require().NoError(s.im.Resolve(s.ctx, "settlement-1", payout, true))
	s.transfers.AssertExpectations(s.T())
}
