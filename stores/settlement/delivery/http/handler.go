package http

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"

	bCtx "github.com/bidmarket/goapi/base/ctx"
	"github.com/bidmarket/goapi/base/delivery"
	"github.com/bidmarket/goapi/domain"
	"github.com/bidmarket/goapi/domain/fee"
	"github.com/bidmarket/goapi/domain/settlement"
)

type handler struct {
	settlements  settlement.UseCase
	callbackAuth string
}

// New registers the resolve callback. The asset registry authenticates
// with a shared key in the X-Registry-Key header.
func New(e *echo.Echo, settlements settlement.UseCase, callbackAuth string) {
	h := &handler{settlements: settlements, callbackAuth: callbackAuth}

	e.POST("/settlements/:settlementId/resolve", h.resolve, h.registryKeyAuth)
}

func (h *handler) registryKeyAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		key := c.Request().Header.Get("X-Registry-Key")
		if subtle.ConstantTimeCompare([]byte(key), []byte(h.callbackAuth)) != 1 {
			return delivery.MakeJsonResp(c, http.StatusUnauthorized, echo.ErrUnauthorized)
		}
		return next(c)
	}
}

func (h *handler) resolve(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	p := struct {
		SettlementId string     `param:"settlementId" validate:"required"`
		Payout       fee.Payout `json:"payout"`
		TransferOk   bool       `json:"transferOk"`
	}{}

	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.settlements.Resolve(ctx, p.SettlementId, p.Payout, p.TransferOk); err == domain.ErrNotFound {
		return delivery.MakeJsonResp(c, http.StatusNotFound, err)
	} else if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}
