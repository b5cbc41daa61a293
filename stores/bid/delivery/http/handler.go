package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	bCtx "github.com/bidmarket/goapi/base/ctx"
	"github.com/bidmarket/goapi/base/delivery"
	"github.com/bidmarket/goapi/domain"
	"github.com/bidmarket/goapi/domain/bid"
)

type handler struct {
	bids bid.UseCase
}

func New(e *echo.Echo, bids bid.UseCase, authMiddleware echo.MiddlewareFunc) {
	h := &handler{bids: bids}

	g := e.Group("/bids")
	g.GET("", h.findAll)
	g.POST("", h.placeBid, authMiddleware)
	g.DELETE("/:bidId", h.withdraw, authMiddleware)
	g.POST("/:bidId/cancel", h.cancelExpired)
	g.POST("/sweep", h.sweepExpired)
}

func (h *handler) findAll(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	p := struct {
		Collection *domain.CollectionId `query:"collection"`
		TokenId    *domain.TokenId      `query:"tokenId"`
		Owner      *domain.AccountId    `query:"owner"`
		Currency   *domain.CurrencyId   `query:"currency"`
		Offset     int32                `query:"offset"`
		Limit      int32                `query:"limit"`
	}{}

	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	opts := []bid.FindAllOptionsFunc{}
	if p.Collection != nil && p.TokenId != nil {
		opts = append(opts, bid.WithListingId(domain.ListingId{Collection: *p.Collection, TokenId: *p.TokenId}))
	}
	if p.Owner != nil {
		opts = append(opts, bid.WithOwner(*p.Owner))
	}
	if p.Currency != nil {
		opts = append(opts, bid.WithCurrency(*p.Currency))
	}
	if p.Limit > 0 {
		opts = append(opts, bid.WithPagination(p.Offset, p.Limit))
	}

	res, err := h.bids.FindAll(ctx, opts...)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) placeBid(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)
	account := c.Get("account").(domain.AccountId)

	p := struct {
		Collection domain.CollectionId `json:"collection" validate:"required"`
		TokenId    domain.TokenId      `json:"tokenId" validate:"required"`
		Currency   domain.CurrencyId   `json:"currency" validate:"required"`
		Price      string              `json:"price" validate:"required"`
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

	b, err := h.bids.PlaceBid(ctx, bid.PlaceBidPayload{
		ListingId: domain.ListingId{Collection: p.Collection, TokenId: p.TokenId},
		Owner:     account,
		Currency:  p.Currency,
		Price:     p.Price,
		Start:     p.Start,
		End:       p.End,
		Origins:   p.Origins,
	})
	switch err {
	case nil:
		return delivery.MakeJsonResp(c, http.StatusCreated, b)
	case domain.ErrInvalidNumberFormat, domain.ErrInvalidCurrency, domain.ErrInvalidDuration, domain.ErrOriginFeeTooHigh:
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	default:
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
}

func (h *handler) withdraw(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)
	account := c.Get("account").(domain.AccountId)

	p := struct {
		BidId domain.BidId `param:"bidId" validate:"required"`
	}{}

	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.bids.WithdrawBid(ctx, p.BidId, account); err == domain.ErrNotOwner {
		return delivery.MakeJsonResp(c, http.StatusForbidden, err)
	} else if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) cancelExpired(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	p := struct {
		BidId domain.BidId `param:"bidId" validate:"required"`
	}{}

	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.bids.CancelExpiredBid(ctx, p.BidId); err == domain.ErrBidNotExpired {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	} else if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) sweepExpired(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	p := struct {
		Collection domain.CollectionId `json:"collection" validate:"required"`
		TokenId    domain.TokenId      `json:"tokenId" validate:"required"`
		Currency   domain.CurrencyId   `json:"currency" validate:"required"`
	}{}

	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	n, err := h.bids.SweepExpired(ctx, domain.ListingId{Collection: p.Collection, TokenId: p.TokenId}, p.Currency)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	res := struct {
		Removed int `json:"removed"`
	}{n}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
