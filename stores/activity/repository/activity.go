package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	bCtx "github.com/bidmarket/goapi/base/ctx"
	"github.com/bidmarket/goapi/base/log"
	"github.com/bidmarket/goapi/domain"
	"github.com/bidmarket/goapi/domain/activity"
	"github.com/bidmarket/goapi/service/query"
)

type impl struct {
	q query.Mongo
}

func New(q query.Mongo) activity.Repo {
	return &impl{q}
}

func (im *impl) makeQuery(options activity.FindAllOptions) bson.M {
	query := bson.M{}

	if options.Account != nil {
		query["account"] = *options.Account
	}

	if options.ListingId != nil {
		query["collection"] = options.ListingId.Collection
		query["tokenID"] = options.ListingId.TokenId
	}

	if options.Type != nil {
		query["type"] = *options.Type
	}

	return query
}

func (im *impl) Insert(ctx bCtx.Ctx, a *activity.Activity) error {
	if err := im.q.Insert(ctx, domain.TableActivities, a); err != nil {
		ctx.WithFields(log.Fields{
			"err":      err,
			"activity": a,
		}).Error("q.Insert failed")
		return err
	}
	return nil
}

func (im *impl) FindAll(ctx bCtx.Ctx, opts ...activity.FindAllOptionsFunc) ([]*activity.Activity, error) {
	options, err := activity.GetFindAllOptions(opts...)
	if err != nil {
		return nil, err
	}

	offset := 0
	if options.Offset != nil {
		offset = int(*options.Offset)
	}

	limit := 0
	if options.Limit != nil {
		limit = int(*options.Limit)
	}

	res := []*activity.Activity{}
	if err := im.q.Search(ctx, domain.TableActivities, offset, limit, "-createdAt", im.makeQuery(options), &res); err != nil {
		ctx.WithField("err", err).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) Count(ctx bCtx.Ctx, opts ...activity.FindAllOptionsFunc) (int, error) {
	options, err := activity.GetFindAllOptions(opts...)
	if err != nil {
		return 0, err
	}

	n, err := im.q.Count(ctx, domain.TableActivities, im.makeQuery(options))
	if err != nil {
		ctx.WithField("err", err).Error("q.Count failed")
		return 0, err
	}
	return n, nil
}
