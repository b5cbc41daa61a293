package repository

import (
	bCtx "github.com/bidmarket/goapi/base/ctx"
	"github.com/bidmarket/goapi/base/database/mongoclient"
	"github.com/bidmarket/goapi/base/log"
	"github.com/bidmarket/goapi/domain"
	"github.com/bidmarket/goapi/domain/escrow"
	"github.com/bidmarket/goapi/service/query"
)

type impl struct {
	q query.Mongo
}

func New(q query.Mongo) escrow.Repo {
	return &impl{q}
}

func (im *impl) FindOne(ctx bCtx.Ctx, id escrow.BalanceId) (*escrow.Balance, error) {
	qry, err := mongoclient.MakeBsonM(id)
	if err != nil {
		ctx.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return nil, err
	}

	res := escrow.Balance{}
	if err := im.q.FindOne(ctx, domain.TableEscrowBalances, qry, &res); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("q.FindOne failed")
		return nil, err
	}
	return &res, nil
}

func (im *impl) Upsert(ctx bCtx.Ctx, balance *escrow.Balance) error {
	selector, err := mongoclient.MakeBsonM(balance.ToId())
	if err != nil {
		ctx.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return err
	}

	if err := im.q.Upsert(ctx, domain.TableEscrowBalances, selector, balance); err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  balance.ToId(),
		}).Error("q.Upsert failed")
		return err
	}
	return nil
}
