// Package assetregistry talks to the external service that owns the traded
// items. It performs the outbound leg of the settlement protocol: transfer
// the item and report the payout table.
package assetregistry

import (
	"errors"
	"net/http"
	"time"

	"github.com/bidmarket/goapi/domain/settlement"
)

var (
	ErrStatusCodeNotOk = errors.New("http.status != 200")
)

type ClientCfg struct {
	HttpClient http.Client
	Timeout    time.Duration
	// Endpoint is the registry base url, e.g. http://registry:8080
	Endpoint string
	// Apikey is sent as X-Registry-Key on every request
	Apikey string
}

func NewClient(cfg *ClientCfg) settlement.AssetRegistry {
	return &client{
		client:   cfg.HttpClient,
		timeout:  cfg.Timeout,
		endpoint: cfg.Endpoint,
		apikey:   cfg.Apikey,
	}
}
