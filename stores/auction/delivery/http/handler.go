package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	bCtx "github.com/bidmarket/goapi/base/ctx"
	"github.com/bidmarket/goapi/base/delivery"
	"github.com/bidmarket/goapi/base/pricefmt"
	"github.com/bidmarket/goapi/domain"
	"github.com/bidmarket/goapi/domain/auction"
)

type handler struct {
	auctions  auction.UseCase
	payTokens domain.PayTokenRepo
}

func New(e *echo.Echo, auctions auction.UseCase, payTokens domain.PayTokenRepo, authMiddleware echo.MiddlewareFunc) {
	h := &handler{auctions: auctions, payTokens: payTokens}

	g := e.Group("/auctions")
	g.GET("", h.findAll)
	g.POST("", h.create, authMiddleware)
	g.GET("/:auctionId", h.get)
	g.GET("/:auctionId/minimalNextBid", h.minimalNextBid)
	g.GET("/:auctionId/inProgress", h.inProgress)
	g.POST("/:auctionId/bids", h.placeBid, authMiddleware)
	g.POST("/:auctionId/finish", h.finish)
	g.DELETE("/:auctionId", h.cancel, authMiddleware)
}

type auctionView struct {
	*auction.Auction
	DisplayStartPrice string `json:"displayStartPrice,omitempty"`
}

func (h *handler) view(ctx bCtx.Ctx, a *auction.Auction) *auctionView {
	v := &auctionView{Auction: a}
	if !a.Currency.IsNative() {
		if tkn, err := h.payTokens.FindOne(ctx, a.Currency); err == nil {
			v.DisplayStartPrice = pricefmt.Format(a.StartPrice, tkn.Decimals)
		}
	}
	return v
}

func (h *handler) findAll(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	p := struct {
		Owner      *domain.AccountId    `query:"owner"`
		Collection *domain.CollectionId `query:"collection"`
		TokenId    *domain.TokenId      `query:"tokenId"`
		Offset     int32                `query:"offset"`
		Limit      int32                `query:"limit"`
	}{}

	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	opts := []auction.FindAllOptionsFunc{}
	if p.Owner != nil {
		opts = append(opts, auction.WithOwner(*p.Owner))
	}
	if p.Collection != nil && p.TokenId != nil {
		opts = append(opts, auction.WithListingId(domain.ListingId{Collection: *p.Collection, TokenId: *p.TokenId}))
	}
	if p.Limit > 0 {
		opts = append(opts, auction.WithPagination(p.Offset, p.Limit))
	}

	res, err := h.auctions.FindAll(ctx, opts...)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)
	account := c.Get("account").(domain.AccountId)

	p := struct {
		Collection  domain.CollectionId `json:"collection" validate:"required"`
		TokenId     domain.TokenId      `json:"tokenId" validate:"required"`
		ApprovalId  uint64              `json:"approvalId"`
		Currency    domain.CurrencyId   `json:"currency" validate:"required"`
		MinimalStep string              `json:"minimalStep" validate:"required"`
		StartPrice  string              `json:"startPrice" validate:"required"`
		BuyOutPrice *string             `json:"buyOutPrice"`
		Start       *time.Time          `json:"start"`
		DurationSec int64               `json:"durationSec" validate:"required"`
		Origins     domain.Origins      `json:"origins"`
	}{}

	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	a, err := h.auctions.Create(ctx, auction.CreatePayload{
		Owner:       account,
		ApprovalId:  p.ApprovalId,
		ListingId:   domain.ListingId{Collection: p.Collection, TokenId: p.TokenId},
		Currency:    p.Currency,
		MinimalStep: p.MinimalStep,
		StartPrice:  p.StartPrice,
		BuyOutPrice: p.BuyOutPrice,
		Start:       p.Start,
		Duration:    time.Duration(p.DurationSec) * time.Second,
		Origins:     p.Origins,
	})
	switch err {
	case nil:
		return delivery.MakeJsonResp(c, http.StatusCreated, h.view(ctx, a))
	case domain.ErrInvalidNumberFormat, domain.ErrInvalidCurrency, domain.ErrInvalidDuration,
		domain.ErrInvalidStartTime, domain.ErrOriginFeeTooHigh, domain.ErrBadParamInput:
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	default:
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
}

func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	p := struct {
		AuctionId domain.AuctionId `param:"auctionId" validate:"required"`
	}{}

	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	a, err := h.auctions.Get(ctx, p.AuctionId)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, h.view(ctx, a))
}

func (h *handler) minimalNextBid(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	p := struct {
		AuctionId domain.AuctionId `param:"auctionId" validate:"required"`
	}{}

	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	min, err := h.auctions.MinimalNextBid(ctx, p.AuctionId)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	res := struct {
		MinimalNextBid string `json:"minimalNextBid"`
	}{min}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) inProgress(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	p := struct {
		AuctionId domain.AuctionId `param:"auctionId" validate:"required"`
	}{}

	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	inProgress, err := h.auctions.InProgress(ctx, p.AuctionId)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	res := struct {
		InProgress bool `json:"inProgress"`
	}{inProgress}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) placeBid(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)
	account := c.Get("account").(domain.AccountId)

	p := struct {
		AuctionId domain.AuctionId `param:"auctionId" validate:"required"`
		Price     string           `json:"price" validate:"required"`
	}{}

	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	a, err := h.auctions.PlaceBid(ctx, p.AuctionId, account, p.Price)
	switch err {
	case nil:
		return delivery.MakeJsonResp(c, http.StatusCreated, h.view(ctx, a))
	case domain.ErrListingNotActive, domain.ErrOwnListing, domain.ErrBidTooLow,
		domain.ErrInvalidNumberFormat, domain.ErrInsufficientFunds:
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	default:
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
}

func (h *handler) finish(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	p := struct {
		AuctionId domain.AuctionId `param:"auctionId" validate:"required"`
	}{}

	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.auctions.Finish(ctx, p.AuctionId); err == domain.ErrListingNotEnded || err == domain.ErrNoActiveBid {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	} else if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) cancel(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)
	account := c.Get("account").(domain.AccountId)

	p := struct {
		AuctionId domain.AuctionId `param:"auctionId" validate:"required"`
	}{}

	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.auctions.Cancel(ctx, p.AuctionId, account); err == domain.ErrNotOwner {
		return delivery.MakeJsonResp(c, http.StatusForbidden, err)
	} else if err == domain.ErrListingHasBid {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	} else if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}
