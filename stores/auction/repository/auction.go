package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	bCtx "github.com/bidmarket/goapi/base/ctx"
	"github.com/bidmarket/goapi/base/log"
	"github.com/bidmarket/goapi/domain"
	"github.com/bidmarket/goapi/domain/auction"
	"github.com/bidmarket/goapi/service/query"
)

const counterName = "auctions"

type counter struct {
	Name string `bson:"name"`
	Seq  uint64 `bson:"seq"`
}

type impl struct {
	q query.Mongo
}

func New(q query.Mongo) auction.Repo {
	return &impl{q}
}

func (im *impl) makeQuery(options auction.FindAllOptions) bson.M {
	query := bson.M{}

	if options.Owner != nil {
		query["owner"] = *options.Owner
	}

	if options.ListingId != nil {
		query["collection"] = options.ListingId.Collection
		query["tokenID"] = options.ListingId.TokenId
	}

	return query
}

func (im *impl) FindAll(ctx bCtx.Ctx, opts ...auction.FindAllOptionsFunc) ([]*auction.Auction, error) {
	options, err := auction.GetFindAllOptions(opts...)
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

	res := []*auction.Auction{}
	if err := im.q.Search(ctx, domain.TableAuctions, offset, limit, "auctionId", im.makeQuery(options), &res); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": im.makeQuery(options),
		}).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) FindOne(ctx bCtx.Ctx, id domain.AuctionId) (*auction.Auction, error) {
	res := auction.Auction{}
	if err := im.q.FindOne(ctx, domain.TableAuctions, bson.M{"auctionId": id}, &res); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"auctionId": id,
		}).Error("q.FindOne failed")
		return nil, err
	}
	return &res, nil
}

func (im *impl) Insert(ctx bCtx.Ctx, a *auction.Auction) error {
	if err := im.q.Insert(ctx, domain.TableAuctions, a); err == query.ErrDuplicateKey {
		return domain.ErrConflict
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"auctionId": a.AuctionId,
		}).Error("q.Insert failed")
		return err
	}
	return nil
}

func (im *impl) Upsert(ctx bCtx.Ctx, a *auction.Auction) error {
	if err := im.q.Upsert(ctx, domain.TableAuctions, bson.M{"auctionId": a.AuctionId}, a); err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"auctionId": a.AuctionId,
		}).Error("q.Upsert failed")
		return err
	}
	return nil
}

func (im *impl) Remove(ctx bCtx.Ctx, id domain.AuctionId) error {
	if err := im.q.Remove(ctx, domain.TableAuctions, bson.M{"auctionId": id}); err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"auctionId": id,
		}).Error("q.Remove failed")
		return err
	}
	return nil
}

func (im *impl) Count(ctx bCtx.Ctx, opts ...auction.FindAllOptionsFunc) (int, error) {
	options, err := auction.GetFindAllOptions(opts...)
	if err != nil {
		return 0, err
	}

	n, err := im.q.Count(ctx, domain.TableAuctions, im.makeQuery(options))
	if err != nil {
		ctx.WithField("err", err).Error("q.Count failed")
		return 0, err
	}
	return n, nil
}

func (im *impl) NextId(ctx bCtx.Ctx) (domain.AuctionId, error) {
	res := counter{}
	if err := im.q.Increment(ctx, domain.TableCounters, bson.M{"name": counterName}, &res, "seq", 1); err != nil {
		ctx.WithField("err", err).Error("q.Increment failed")
		return 0, err
	}
	return domain.AuctionId(res.Seq), nil
}
