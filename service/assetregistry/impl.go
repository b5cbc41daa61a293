package assetregistry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	bCtx "github.com/bidmarket/goapi/base/ctx"
	"github.com/bidmarket/goapi/base/log"
	"github.com/bidmarket/goapi/domain/fee"
	"github.com/bidmarket/goapi/domain/settlement"
)

const keyHeader = "X-Registry-Key"

type client struct {
	client   http.Client
	timeout  time.Duration
	endpoint string
	apikey   string
}

type transferResp struct {
	Payout fee.Payout `json:"payout"`
}

func (c *client) TransferAndReportPayout(ctx bCtx.Ctx, req settlement.TransferRequest) (fee.Payout, error) {
	url := fmt.Sprintf("%s/transfers", c.endpoint)

	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	ctx, cancel := bCtx.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("NewRequestWithContext failed")
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(keyHeader, c.apikey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("client.Do failed")
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		ctx.WithFields(log.Fields{
			"url":        url,
			"statusCode": resp.StatusCode,
		}).Error("resp.StatusCode != 200")
		return nil, ErrStatusCodeNotOk
	}

	res := transferResp{}
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("failed to decode body")
		return nil, err
	}
	return res.Payout, nil
}
