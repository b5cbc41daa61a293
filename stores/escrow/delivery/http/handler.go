package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	bCtx "github.com/bidmarket/goapi/base/ctx"
	"github.com/bidmarket/goapi/base/delivery"
	"github.com/bidmarket/goapi/domain"
	"github.com/bidmarket/goapi/domain/escrow"
	mmiddleware "github.com/bidmarket/goapi/middleware"
)

type handler struct {
	escrow escrow.UseCase
}

// New registers escrow routes. Deposits and withdrawals act on the
// authenticated account only.
func New(e *echo.Echo, escrowUC escrow.UseCase, authMiddleware echo.MiddlewareFunc) {
	h := &handler{escrow: escrowUC}

	g := e.Group("/escrow")
	g.GET("/:account/:currency", h.balance, mmiddleware.IsValidAccountId("account"))
	g.POST("/deposit", h.deposit, authMiddleware)
	g.POST("/withdraw", h.withdraw, authMiddleware)
}

func (h *handler) balance(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	p := struct {
		Account  domain.AccountId  `param:"account" validate:"required"`
		Currency domain.CurrencyId `param:"currency" validate:"required"`
	}{}

	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	v, err := h.escrow.Balance(ctx, escrow.BalanceId{Owner: p.Account.ToLower(), Currency: p.Currency.ToLower()})
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	res := struct {
		Account  domain.AccountId  `json:"account"`
		Currency domain.CurrencyId `json:"currency"`
		Amount   string            `json:"amount"`
	}{p.Account.ToLower(), p.Currency.ToLower(), v.String()}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) deposit(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)
	account := c.Get("account").(domain.AccountId)

	p := struct {
		Currency domain.CurrencyId `json:"currency" validate:"required"`
		Amount   string            `json:"amount" validate:"required"`
	}{}

	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	amount, err := domain.ParseAmount(p.Amount)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidNumberFormat)
	}

	id := escrow.BalanceId{Owner: account.ToLower(), Currency: p.Currency.ToLower()}
	if err := h.escrow.Deposit(ctx, id, amount); err == domain.ErrBadParamInput {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	} else if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, "ok")
}

func (h *handler) withdraw(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)
	account := c.Get("account").(domain.AccountId)

	p := struct {
		Currency domain.CurrencyId `json:"currency" validate:"required"`
		Amount   string            `json:"amount" validate:"required"`
	}{}

	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	amount, err := domain.ParseAmount(p.Amount)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidNumberFormat)
	}

	id := escrow.BalanceId{Owner: account.ToLower(), Currency: p.Currency.ToLower()}
	if err := h.escrow.Withdraw(ctx, id, amount); err == domain.ErrInsufficientFunds || err == domain.ErrBadParamInput {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	} else if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}
