package fttransfer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	bCtx "github.com/bidmarket/goapi/base/ctx"
	"github.com/bidmarket/goapi/base/log"
	"github.com/bidmarket/goapi/domain"
)

type client struct {
	client    http.Client
	timeout   time.Duration
	payTokens domain.PayTokenRepo
}

type transferReq struct {
	Receiver domain.AccountId `json:"receiver"`
	Amount   string           `json:"amount"`
	Memo     string           `json:"memo"`
}

func (c *client) Transfer(ctx bCtx.Ctx, currency domain.CurrencyId, receiver domain.AccountId, amount string, memo string) error {
	tkn, err := c.payTokens.FindOne(ctx, currency)
	if err != nil {
		ctx.WithFields(log.Fields{
			"currency": currency,
			"err":      err,
		}).Error("payTokens.FindOne failed")
		return err
	}
	if tkn.TransferServiceUrl == "" {
		return ErrNoTransferEndpoint
	}

	url := fmt.Sprintf("%s/transfers", tkn.TransferServiceUrl)

	body, err := json.Marshal(transferReq{Receiver: receiver, Amount: amount, Memo: memo})
	if err != nil {
		return err
	}

	ctx, cancel := bCtx.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("NewRequestWithContext failed")
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("client.Do failed")
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		ctx.WithFields(log.Fields{
			"url":        url,
			"statusCode": resp.StatusCode,
		}).Error("resp.StatusCode != 200")
		return ErrStatusCodeNotOk
	}
	return nil
}
