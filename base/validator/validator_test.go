package validator

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type ValidatorTestSuite struct {
	suite.Suite
}

func (s *ValidatorTestSuite) SetupTest() {
}

func (s *ValidatorTestSuite) TearDownTest() {
}

func (s *ValidatorTestSuite) SetupSuite() {
}

func (s *ValidatorTestSuite) TearDownSuite() {
}

func (s *ValidatorTestSuite) TestIsValidAccountId() {
	tests := []struct {
		desc       string
		account    string
		expIsValid bool
	}{
		{
			desc:       "too short",
			account:    "a",
			expIsValid: false,
		},
		{
			desc:       "valid top level account",
			account:    "alice",
			expIsValid: true,
		},
		{
			desc:       "valid sub account",
			account:    "market.alice",
			expIsValid: true,
		},
		{
			desc:       "separated segments",
			account:    "ok_b-c.dd",
			expIsValid: true,
		},
		{
			desc:       "upper case rejected",
			account:    "Alice",
			expIsValid: false,
		},
		{
			desc:       "trailing separator rejected",
			account:    "alice-",
			expIsValid: false,
		},
		{
			desc:       "empty segment rejected",
			account:    "alice..market",
			expIsValid: false,
		},
	}
	for _, t := range tests {
		s.Equal(t.expIsValid, IsValidAccountId(t.account), t.desc)
	}
}

func TestValidatorTestSuite(t *testing.T) {
	suite.Run(t, new(ValidatorTestSuite))
}
