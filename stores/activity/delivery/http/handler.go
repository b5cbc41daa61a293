package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	bCtx "github.com/bidmarket/goapi/base/ctx"
	"github.com/bidmarket/goapi/base/delivery"
	"github.com/bidmarket/goapi/domain"
	"github.com/bidmarket/goapi/domain/activity"
)

type handler struct {
	activities activity.Repo
}

func New(e *echo.Echo, activities activity.Repo) {
	h := &handler{activities: activities}

	e.GET("/activities", h.findAll)
}

func (h *handler) findAll(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	p := struct {
		Account    *domain.AccountId    `query:"account"`
		Collection *domain.CollectionId `query:"collection"`
		TokenId    *domain.TokenId      `query:"tokenId"`
		Type       *activity.Type       `query:"type"`
		Offset     int32                `query:"offset"`
		Limit      int32                `query:"limit"`
	}{}

	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	opts := []activity.FindAllOptionsFunc{}
	if p.Account != nil {
		opts = append(opts, activity.WithAccount(*p.Account))
	}
	if p.Collection != nil && p.TokenId != nil {
		opts = append(opts, activity.WithListingId(domain.ListingId{Collection: *p.Collection, TokenId: *p.TokenId}))
	}
	if p.Type != nil {
		opts = append(opts, activity.WithType(*p.Type))
	}
	if p.Limit > 0 {
		opts = append(opts, activity.WithPagination(p.Offset, p.Limit))
	}

	items, err := h.activities.FindAll(ctx, opts...)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	total, err := h.activities.Count(ctx, opts...)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	res := struct {
		Items []*activity.Activity `json:"items"`
		Total int                  `json:"total"`
	}{items, total}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
