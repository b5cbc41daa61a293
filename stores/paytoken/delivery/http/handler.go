package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	bCtx "github.com/bidmarket/goapi/base/ctx"
	"github.com/bidmarket/goapi/base/delivery"
	"github.com/bidmarket/goapi/base/pricefmt"
	"github.com/bidmarket/goapi/domain"
)

type handler struct {
	payTokens domain.PayTokenRepo
}

func New(e *echo.Echo, payTokens domain.PayTokenRepo) {
	h := &handler{payTokens: payTokens}

	g := e.Group("/paytokens")
	g.GET("", h.findAll)
	g.GET("/:currency", h.get)
	g.GET("/:currency/format", h.format)
}

func (h *handler) findAll(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	res, err := h.payTokens.FindAll(ctx)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	p := struct {
		Currency domain.CurrencyId `param:"currency" validate:"required"`
	}{}

	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	tkn, err := h.payTokens.FindOne(ctx, p.Currency)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, tkn)
}

// format renders a base-unit amount as a display price using the token's
// registered decimals.
func (h *handler) format(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	p := struct {
		Currency domain.CurrencyId `param:"currency" validate:"required"`
		Amount   string            `query:"amount" validate:"required"`
	}{}

	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	tkn, err := h.payTokens.FindOne(ctx, p.Currency)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	display := pricefmt.Format(p.Amount, tkn.Decimals)
	if display == "" {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidNumberFormat)
	}

	res := struct {
		Currency domain.CurrencyId `json:"currency"`
		Amount   string            `json:"amount"`
		Display  string            `json:"display"`
	}{tkn.CurrencyId, p.Amount, display}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
