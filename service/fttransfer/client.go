// Package fttransfer disburses non-native payout shares. Each registered
// pay token names its own transfer collaborator; the share is posted there
// and never retried.
package fttransfer

import (
	"errors"
	"net/http"
	"time"

	"github.com/bidmarket/goapi/domain"
	"github.com/bidmarket/goapi/domain/settlement"
)

var (
	ErrStatusCodeNotOk    = errors.New("http.status != 200")
	ErrNoTransferEndpoint = errors.New("pay token has no transfer endpoint")
)

type ClientCfg struct {
	HttpClient http.Client
	Timeout    time.Duration
	PayTokens  domain.PayTokenRepo
}

func NewClient(cfg *ClientCfg) settlement.TokenTransfer {
	return &client{
		client:    cfg.HttpClient,
		timeout:   cfg.Timeout,
		payTokens: cfg.PayTokens,
	}
}
