package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	bCtx "github.com/bidmarket/goapi/base/ctx"
	"github.com/bidmarket/goapi/base/log"
	"github.com/bidmarket/goapi/domain"
	"github.com/bidmarket/goapi/domain/settlement"
	"github.com/bidmarket/goapi/service/query"
)

type impl struct {
	q query.Mongo
}

func New(q query.Mongo) settlement.Repo {
	return &impl{q}
}

func (im *impl) FindOne(ctx bCtx.Ctx, id string) (*settlement.PendingSettlement, error) {
	res := settlement.PendingSettlement{}
	if err := im.q.FindOne(ctx, domain.TablePendingSettlements, bson.M{"id": id}, &res); err == query.ErrNotFound {
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

func (im *impl) Insert(ctx bCtx.Ctx, pending *settlement.PendingSettlement) error {
	if err := im.q.Insert(ctx, domain.TablePendingSettlements, pending); err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  pending.Id,
		}).Error("q.Insert failed")
		return err
	}
	return nil
}

func (im *impl) Remove(ctx bCtx.Ctx, id string) error {
	if err := im.q.Remove(ctx, domain.TablePendingSettlements, bson.M{"id": id}); err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("q.Remove failed")
		return err
	}
	return nil
}
