package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	bCtx "github.com/bidmarket/goapi/base/ctx"
	"github.com/bidmarket/goapi/base/log"
	"github.com/bidmarket/goapi/domain"
	"github.com/bidmarket/goapi/domain/sale"
	"github.com/bidmarket/goapi/service/query"
)

type impl struct {
	q query.Mongo
}

func New(q query.Mongo) sale.Repo {
	return &impl{q}
}

func (im *impl) makeQuery(options sale.FindAllOptions) bson.M {
	query := bson.M{}

	if options.Owner != nil {
		query["owner"] = *options.Owner
	}

	if options.Collection != nil {
		query["collection"] = *options.Collection
	}

	return query
}

func makeSelector(id domain.ListingId) bson.M {
	id = id.ToLower()
	return bson.M{
		"collection": id.Collection,
		"tokenID":    id.TokenId,
	}
}

func (im *impl) FindAll(ctx bCtx.Ctx, opts ...sale.FindAllOptionsFunc) ([]*sale.Sale, error) {
	options, err := sale.GetFindAllOptions(opts...)
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

	res := []*sale.Sale{}
	if err := im.q.Search(ctx, domain.TableSales, offset, limit, "-createdAt", im.makeQuery(options), &res); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": im.makeQuery(options),
		}).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) FindOne(ctx bCtx.Ctx, id domain.ListingId) (*sale.Sale, error) {
	res := sale.Sale{}
	if err := im.q.FindOne(ctx, domain.TableSales, makeSelector(id), &res); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"listingId": id,
		}).Error("q.FindOne failed")
		return nil, err
	}
	return &res, nil
}

func (im *impl) Insert(ctx bCtx.Ctx, s *sale.Sale) error {
	if err := im.q.Insert(ctx, domain.TableSales, s); err == query.ErrDuplicateKey {
		return domain.ErrConflict
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"listingId": s.ListingId,
		}).Error("q.Insert failed")
		return err
	}
	return nil
}

func (im *impl) Upsert(ctx bCtx.Ctx, s *sale.Sale) error {
	if err := im.q.Upsert(ctx, domain.TableSales, makeSelector(s.ListingId), s); err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"listingId": s.ListingId,
		}).Error("q.Upsert failed")
		return err
	}
	return nil
}

func (im *impl) Remove(ctx bCtx.Ctx, id domain.ListingId) error {
	if err := im.q.Remove(ctx, domain.TableSales, makeSelector(id)); err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"listingId": id,
		}).Error("q.Remove failed")
		return err
	}
	return nil
}

func (im *impl) Count(ctx bCtx.Ctx, opts ...sale.FindAllOptionsFunc) (int, error) {
	options, err := sale.GetFindAllOptions(opts...)
	if err != nil {
		return 0, err
	}

	n, err := im.q.Count(ctx, domain.TableSales, im.makeQuery(options))
	if err != nil {
		ctx.WithField("err", err).Error("q.Count failed")
		return 0, err
	}
	return n, nil
}
