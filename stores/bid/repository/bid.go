package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	bCtx "github.com/bidmarket/goapi/base/ctx"
	"github.com/bidmarket/goapi/base/log"
	"github.com/bidmarket/goapi/domain"
	"github.com/bidmarket/goapi/domain/bid"
	"github.com/bidmarket/goapi/service/query"
)

const counterName = "bids"

type counter struct {
	Name string `bson:"name"`
	Seq  uint64 `bson:"seq"`
}

type impl struct {
	q query.Mongo
}

func New(q query.Mongo) bid.Repo {
	return &impl{q}
}

func (im *impl) makeQuery(options bid.FindAllOptions) bson.M {
	query := bson.M{}

	if options.ListingId != nil {
		query["collection"] = options.ListingId.Collection
		query["tokenID"] = options.ListingId.TokenId
	}

	if options.Currency != nil {
		query["currency"] = *options.Currency
	}

	if options.Owner != nil {
		query["owner"] = *options.Owner
	}

	if options.EndBefore != nil {
		query["end"] = bson.M{"$lt": *options.EndBefore}
	}

	return query
}

func (im *impl) FindAll(ctx bCtx.Ctx, opts ...bid.FindAllOptionsFunc) ([]*bid.Bid, error) {
	options, err := bid.GetFindAllOptions(opts...)
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

	sorts := []string{"bidId"}
	if options.SortByPriceDesc {
		sorts = []string{"-priceHex", "start"}
	}

	res := []*bid.Bid{}
	if err := im.q.SearchNSorts(ctx, domain.TableBids, offset, limit, sorts, im.makeQuery(options), &res); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": im.makeQuery(options),
		}).Error("q.SearchNSorts failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) FindOne(ctx bCtx.Ctx, id domain.BidId) (*bid.Bid, error) {
	res := bid.Bid{}
	if err := im.q.FindOne(ctx, domain.TableBids, bson.M{"bidId": id}, &res); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"bidId": id,
		}).Error("q.FindOne failed")
		return nil, err
	}
	return &res, nil
}

func (im *impl) FindOneByOwner(ctx bCtx.Ctx, owner domain.AccountId, listingId domain.ListingId) (*bid.Bid, error) {
	listingId = listingId.ToLower()
	qry := bson.M{
		"owner":      owner.ToLower(),
		"collection": listingId.Collection,
		"tokenID":    listingId.TokenId,
	}
	res := bid.Bid{}
	if err := im.q.FindOne(ctx, domain.TableBids, qry, &res); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("q.FindOne failed")
		return nil, err
	}
	return &res, nil
}

func (im *impl) Insert(ctx bCtx.Ctx, b *bid.Bid) error {
	if err := im.q.Insert(ctx, domain.TableBids, b); err == query.ErrDuplicateKey {
		return domain.ErrConflict
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"bidId": b.BidId,
		}).Error("q.Insert failed")
		return err
	}
	return nil
}

func (im *impl) Remove(ctx bCtx.Ctx, id domain.BidId) error {
	if err := im.q.Remove(ctx, domain.TableBids, bson.M{"bidId": id}); err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"bidId": id,
		}).Error("q.Remove failed")
		return err
	}
	return nil
}

func (im *impl) RemoveAll(ctx bCtx.Ctx, opts ...bid.FindAllOptionsFunc) error {
	options, err := bid.GetFindAllOptions(opts...)
	if err != nil {
		return err
	}

	if _, err := im.q.RemoveAll(ctx, domain.TableBids, im.makeQuery(options)); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": im.makeQuery(options),
		}).Error("q.RemoveAll failed")
		return err
	}
	return nil
}

func (im *impl) NextId(ctx bCtx.Ctx) (domain.BidId, error) {
	res := counter{}
	if err := im.q.Increment(ctx, domain.TableCounters, bson.M{"name": counterName}, &res, "seq", 1); err != nil {
		ctx.WithField("err", err).Error("q.Increment failed")
		return 0, err
	}
	return domain.BidId(res.Seq), nil
}
