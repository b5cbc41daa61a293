package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	bCtx "github.com/bidmarket/goapi/base/ctx"
	"github.com/bidmarket/goapi/base/delivery"
	"github.com/bidmarket/goapi/domain"
	"github.com/bidmarket/goapi/domain/sale"
)

type handler struct {
	sales sale.UseCase
}

func New(e *echo.Echo, sales sale.UseCase, authMiddleware echo.MiddlewareFunc) {
	h := &handler{sales: sales}

	g := e.Group("/sales")
	g.GET("", h.findAll)
	g.POST("", h.create, authMiddleware)
	g.GET("/:collection/:tokenId", h.get)
	g.PATCH("/:collection/:tokenId/price", h.updatePrice, authMiddleware)
	g.DELETE("/:collection/:tokenId", h.remove, authMiddleware)
	g.POST("/:collection/:tokenId/offers", h.offer, authMiddleware)
	g.POST("/:collection/:tokenId/accept", h.acceptBestBid, authMiddleware)
}

func (h *handler) findAll(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	p := struct {
		Owner      *domain.AccountId    `query:"owner"`
		Collection *domain.CollectionId `query:"collection"`
		Offset     int32                `query:"offset"`
		Limit      int32                `query:"limit"`
	}{}

	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	opts := []sale.FindAllOptionsFunc{}
	if p.Owner != nil {
		opts = append(opts, sale.WithOwner(*p.Owner))
	}
	if p.Collection != nil {
		opts = append(opts, sale.WithCollection(*p.Collection))
	}
	if p.Limit > 0 {
		opts = append(opts, sale.WithPagination(p.Offset, p.Limit))
	}

	res, err := h.sales.FindAll(ctx, opts...)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)
	account := c.Get("account").(domain.AccountId)

	p := struct {
		Collection domain.CollectionId `json:"collection" validate:"required"`
		TokenId    domain.TokenId      `json:"tokenId" validate:"required"`
		ApprovalId uint64              `json:"approvalId"`
		Conditions sale.Conditions     `json:"conditions" validate:"required"`
		Start      *time.Time          `json:"start"`
		End        *time.Time          `json:"end"`
		Origins    domain.Origins      `json:"origins"`
	}{}

	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	s, err := h.sales.Create(ctx, sale.CreatePayload{
		Owner:      account,
		ApprovalId: p.ApprovalId,
		ListingId:  domain.ListingId{Collection: p.Collection, TokenId: p.TokenId},
		Conditions: p.Conditions,
		Start:      p.Start,
		End:        p.End,
		Origins:    p.Origins,
	})
	switch err {
	case nil:
		return delivery.MakeJsonResp(c, http.StatusCreated, s)
	case domain.ErrConflict:
		return delivery.MakeJsonResp(c, http.StatusConflict, err)
	case domain.ErrInvalidNumberFormat, domain.ErrInvalidCurrency, domain.ErrInvalidDuration,
		domain.ErrOriginFeeTooHigh, domain.ErrBadParamInput:
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	default:
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
}

func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	p := struct {
		Collection domain.CollectionId `param:"collection" validate:"required"`
		TokenId    domain.TokenId      `param:"tokenId" validate:"required"`
	}{}

	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	s, err := h.sales.Get(ctx, domain.ListingId{Collection: p.Collection, TokenId: p.TokenId})
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, s)
}

func (h *handler) updatePrice(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)
	account := c.Get("account").(domain.AccountId)

	p := struct {
		Collection domain.CollectionId `param:"collection" validate:"required"`
		TokenId    domain.TokenId      `param:"tokenId" validate:"required"`
		Currency   domain.CurrencyId   `json:"currency" validate:"required"`
		Price      string              `json:"price" validate:"required"`
	}{}

	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	id := domain.ListingId{Collection: p.Collection, TokenId: p.TokenId}
	switch err := h.sales.UpdatePrice(ctx, id, account, p.Currency, p.Price); err {
	case nil:
		return delivery.MakeJsonResp(c, http.StatusOK, "ok")
	case domain.ErrNotOwner:
		return delivery.MakeJsonResp(c, http.StatusForbidden, err)
	case domain.ErrInvalidCurrency, domain.ErrInvalidNumberFormat:
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	default:
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
}

func (h *handler) remove(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)
	account := c.Get("account").(domain.AccountId)

	p := struct {
		Collection domain.CollectionId `param:"collection" validate:"required"`
		TokenId    domain.TokenId      `param:"tokenId" validate:"required"`
	}{}

	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	id := domain.ListingId{Collection: p.Collection, TokenId: p.TokenId}
	if err := h.sales.Remove(ctx, id, account); err == domain.ErrNotOwner {
		return delivery.MakeJsonResp(c, http.StatusForbidden, err)
	} else if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) offer(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)
	account := c.Get("account").(domain.AccountId)

	p := struct {
		Collection  domain.CollectionId `param:"collection" validate:"required"`
		TokenId     domain.TokenId      `param:"tokenId" validate:"required"`
		Currency    domain.CurrencyId   `json:"currency" validate:"required"`
		Price       string              `json:"price" validate:"required"`
		Start       *time.Time          `json:"start"`
		DurationSec *int64              `json:"durationSec"`
		Origins     domain.Origins      `json:"origins"`
	}{}

	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	var duration *time.Duration
	if p.DurationSec != nil {
		d := time.Duration(*p.DurationSec) * time.Second
		duration = &d
	}

	res, err := h.sales.Offer(ctx, sale.OfferPayload{
		ListingId: domain.ListingId{Collection: p.Collection, TokenId: p.TokenId},
		Buyer:     account,
		Currency:  p.Currency,
		Price:     p.Price,
		Start:     p.Start,
		Duration:  duration,
		Origins:   p.Origins,
	})
	switch err {
	case nil:
		return delivery.MakeJsonResp(c, http.StatusCreated, res)
	case domain.ErrListingNotActive, domain.ErrOwnListing, domain.ErrInvalidCurrency,
		domain.ErrInvalidNumberFormat, domain.ErrInvalidDuration, domain.ErrOriginFeeTooHigh,
		domain.ErrInsufficientFunds:
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	default:
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
}

func (h *handler) acceptBestBid(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)
	account := c.Get("account").(domain.AccountId)

	p := struct {
		Collection domain.CollectionId `param:"collection" validate:"required"`
		TokenId    domain.TokenId      `param:"tokenId" validate:"required"`
		Currency   domain.CurrencyId   `json:"currency" validate:"required"`
	}{}

	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	id := domain.ListingId{Collection: p.Collection, TokenId: p.TokenId}
	switch err := h.sales.AcceptBestBid(ctx, id, account, p.Currency); err {
	case nil:
		return delivery.MakeJsonResp(c, http.StatusOK, "ok")
	case domain.ErrNotOwner:
		return delivery.MakeJsonResp(c, http.StatusForbidden, err)
	case domain.ErrListingNotActive, domain.ErrNoActiveBid:
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	default:
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
}
