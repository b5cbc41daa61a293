// Package activity records market events for audit and display: bid
// refunds, completed sales, settlement refunds.
package activity

import (
	"time"

	"github.com/bidmarket/goapi/base/ctx"
	"github.com/bidmarket/goapi/domain"
)

type Type string

const (
	TypeBidRefund        Type = "bidRefund"
	TypeSold             Type = "sold"
	TypeSettlementRefund Type = "settlementRefund"
)

type Activity struct {
	Type             Type `json:"type" bson:"type"`
	domain.ListingId `bson:",inline"`
	Account          domain.AccountId  `json:"account" bson:"account"`
	Currency         domain.CurrencyId `json:"currency" bson:"currency"`
	Amount           string            `json:"amount" bson:"amount"`
	CreatedAt        time.Time         `json:"createdAt" bson:"createdAt"`
}

type FindAllOptions struct {
	Account   *domain.AccountId
	ListingId *domain.ListingId
	Type      *Type
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

func WithAccount(account domain.AccountId) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		account = account.ToLower()
		options.Account = &account
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

func WithType(t Type) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Type = &t
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
	Insert(ctx ctx.Ctx, activity *Activity) error
	FindAll(ctx ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Activity, error)
	Count(ctx ctx.Ctx, opts ...FindAllOptionsFunc) (int, error)
}
