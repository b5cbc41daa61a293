package usecase

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	bCtx "github.com/bidmarket/goapi/base/ctx"
	"github.com/bidmarket/goapi/domain"
	"github.com/bidmarket/goapi/domain/escrow"
	mEscrow "github.com/bidmarket/goapi/domain/escrow/mocks"
)

type testSuite struct {
	suite.Suite

	ctx  bCtx.Ctx
	repo *mEscrow.Repo
	im   escrow.UseCase
}

func TestSuite(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) SetupTest() {
	s.ctx = bCtx.Background()
	s.repo = &mEscrow.Repo{}
	s.im = New(s.repo)
}

func (s *testSuite) TestBalanceMissingReadsZero() {
	id := escrow.BalanceId{Owner: "alice", Currency: domain.CurrencyNative}
	s.repo.On("FindOne", mock.Anything, id).Return(nil, domain.ErrNotFound)

	v, err := s.im.Balance(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(0, v.Sign())
}

func (s *testSuite) TestDepositAddsToExisting() {
	id := escrow.BalanceId{Owner: "alice", Currency: domain.CurrencyNative}
	s.repo.On("FindOne", mock.Anything, id).Return(&escrow.Balance{
		Owner:    "alice",
		Currency: domain.CurrencyNative,
		Amount:   "100",
	}, nil)
	s.repo.On("Upsert", mock.Anything, &escrow.Balance{
		Owner:    "alice",
		Currency: domain.CurrencyNative,
		Amount:   "150",
	}).Return(nil)

	s.Require().NoError(s.im.Deposit(s.ctx, id, big.NewInt(50)))
	s.repo.AssertExpectations(s.T())
}

func (s *testSuite) TestDepositRejectsNonPositive() {
	id := escrow.BalanceId{Owner: "alice", Currency: domain.CurrencyNative}
	s.Equal(domain.ErrBadParamInput, s.im.Deposit(s.ctx, id, big.NewInt(0)))
	s.Equal(domain.ErrBadParamInput, s.im.Deposit(s.ctx, id, big.NewInt(-1)))
}

func (s *testSuite) TestWithdrawInsufficient() {
	id := escrow.BalanceId{Owner: "alice", Currency: domain.CurrencyNative}
	s.repo.On("FindOne", mock.Anything, id).Return(&escrow.Balance{
		Owner:    "alice",
		Currency: domain.CurrencyNative,
		Amount:   "30",
	}, nil)

	s.Equal(domain.ErrInsufficientFunds, s.im.Withdraw(s.ctx, id, big.NewInt(31)))
	s.repo.AssertNotCalled(s.T(), "Upsert", mock.Anything, mock.Anything)
}

func (s *testSuite) TestWithdrawExact() {
	id := escrow.BalanceId{Owner: "alice", Currency: domain.CurrencyNative}
	s.repo.On("FindOne", mock.Anything, id).Return(&escrow.Balance{
		Owner:    "alice",
		Currency: domain.CurrencyNative,
		Amount:   "30",
	}, nil)
	s.repo.On("Upsert", mock.Anything, &escrow.Balance{
		Owner:    "alice",
		Currency: domain.CurrencyNative,
		Amount:   "0",
	}).Return(nil)

	s.Require().NoError(s.im.Withdraw(s.ctx, id, big.NewInt(30)))
	s.repo.AssertExpectations(s.T())
}

func (s *testSuite) TestDebitForSettlementInsufficient() {
	id := escrow.BalanceId{Owner: "bob", Currency: "usdc.token"}
	s.repo.On("FindOne", mock.Anything, id).Return(nil, domain.ErrNotFound)

	s.Equal(domain.ErrInsufficientFunds, s.im.DebitForSettlement(s.ctx, id, big.NewInt(1)))
}

func (s *testSuite) TestCreditAllowsZero() {
	id := escrow.BalanceId{Owner: "bob", Currency: domain.CurrencyNative}
	s.repo.On("FindOne", mock.Anything, id).Return(nil, domain.ErrNotFound)
	s.repo.On("Upsert", mock.Anything, &escrow.Balance{
		Owner:    "bob",
		Currency: domain.CurrencyNative,
		Amount:   "0",
	}).Return(nil)

	s.Require().NoError(s.im.Credit(s.ctx, id, big.NewInt(0)))
}
