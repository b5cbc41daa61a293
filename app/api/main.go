package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/viper"

	"github.com/go-playground/validator/v10"
	"github.com/bidmarket/goapi/base/ctx"
	"github.com/bidmarket/goapi/base/database/mongoclient"
	"github.com/bidmarket/goapi/base/log"
	bValidator "github.com/bidmarket/goapi/base/validator"
	"github.com/bidmarket/goapi/domain"
	mmiddleware "github.com/bidmarket/goapi/middleware"
	"github.com/bidmarket/goapi/service/assetregistry"
	"github.com/bidmarket/goapi/service/fttransfer"
	"github.com/bidmarket/goapi/service/query"
	activity_delivery "github.com/bidmarket/goapi/stores/activity/delivery/http"
	activity_repository "github.com/bidmarket/goapi/stores/activity/repository"
	auction_delivery "github.com/bidmarket/goapi/stores/auction/delivery/http"
	auction_repository "github.com/bidmarket/goapi/stores/auction/repository"
	auction_usecase "github.com/bidmarket/goapi/stores/auction/usecase"
	auth_delivery "github.com/bidmarket/goapi/stores/auth/delivery/http"
	auth_middleware "github.com/bidmarket/goapi/stores/auth/delivery/http/middleware"
	auth_usecase "github.com/bidmarket/goapi/stores/auth/usecase"
	bid_delivery "github.com/bidmarket/goapi/stores/bid/delivery/http"
	bid_repository "github.com/bidmarket/goapi/stores/bid/repository"
	bid_usecase "github.com/bidmarket/goapi/stores/bid/usecase"
	escrow_delivery "github.com/bidmarket/goapi/stores/escrow/delivery/http"
	escrow_repository "github.com/bidmarket/goapi/stores/escrow/repository"
	escrow_usecase "github.com/bidmarket/goapi/stores/escrow/usecase"
	paytoken_delivery "github.com/bidmarket/goapi/stores/paytoken/delivery/http"
	paytoken_repository "github.com/bidmarket/goapi/stores/paytoken/repository"
	sale_delivery "github.com/bidmarket/goapi/stores/sale/delivery/http"
	sale_repository "github.com/bidmarket/goapi/stores/sale/repository"
	sale_usecase "github.com/bidmarket/goapi/stores/sale/usecase"
	settlement_delivery "github.com/bidmarket/goapi/stores/settlement/delivery/http"
	settlement_repository "github.com/bidmarket/goapi/stores/settlement/repository"
	settlement_usecase "github.com/bidmarket/goapi/stores/settlement/usecase"
)

func init() {
	viper.SetConfigType("yaml")
	viper.SetConfigFile(`infra/configs/config.yaml`)
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

func main() {
	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(validator.New())

	context := ctx.Background()

	// init mongo client
	context.Info("init mongo")
	uri := viper.GetString("mongo.uri")
	authDBName := viper.GetString("mongo.authDBName")
	dbName := viper.GetString("mongo.dbName")
	enableSSL := viper.GetBool("mongo.enableSSL")
	checkIndex := viper.GetBool("mongo.checkIndex")
	mongoClient := mongoclient.MustConnectMongoClient(uri, authDBName, dbName, enableSSL, true, 2)
	q := query.New(mongoClient, checkIndex)

	httpTimeout := viper.GetDuration("http.timeout")
	protocolAccount := domain.AccountId(viper.GetString("market.protocolAccount")).ToLower()

	// construct repository, usecase and delivery
	paytokenRepo := paytoken_repository.NewPayTokenRepo(q)
	activityRepo := activity_repository.New(q)
	escrowRepo := escrow_repository.New(q)
	bidRepo := bid_repository.New(q)
	auctionRepo := auction_repository.New(q)
	saleRepo := sale_repository.New(q)
	pendingRepo := settlement_repository.New(q)

	// register configured pay tokens
	payTokens := viper.Sub("paytokens")
	if payTokens != nil {
		for k := range payTokens.AllSettings() {
			tkn := &domain.PayToken{
				CurrencyId:         domain.CurrencyId(payTokens.GetString(fmt.Sprintf("%s.currencyId", k))).ToLower(),
				Name:               payTokens.GetString(fmt.Sprintf("%s.name", k)),
				Symbol:             payTokens.GetString(fmt.Sprintf("%s.symbol", k)),
				Decimals:           payTokens.GetInt32(fmt.Sprintf("%s.decimals", k)),
				TransferServiceUrl: payTokens.GetString(fmt.Sprintf("%s.transferServiceUrl", k)),
			}
			if err := paytokenRepo.Upsert(context, tkn); err != nil {
				context.WithField("err", err).WithField("currency", tkn.CurrencyId).Error("paytokenRepo.Upsert failed")
			}
		}
	}

	registryClient := assetregistry.NewClient(&assetregistry.ClientCfg{
		HttpClient: http.Client{},
		Timeout:    httpTimeout,
		Endpoint:   viper.GetString("registry.endpoint"),
		Apikey:     viper.GetString("registry.apikey"),
	})
	transferClient := fttransfer.NewClient(&fttransfer.ClientCfg{
		HttpClient: http.Client{},
		Timeout:    httpTimeout,
		PayTokens:  paytokenRepo,
	})

	escrowUC := escrow_usecase.New(escrowRepo)
	bidUC := bid_usecase.New(bidRepo, escrowUC, paytokenRepo, activityRepo)
	settlementUC := settlement_usecase.New(pendingRepo, escrowUC, activityRepo, registryClient, transferClient)
	auctionUC := auction_usecase.New(auctionRepo, escrowUC, settlementUC, paytokenRepo, activityRepo, protocolAccount)
	saleUC := sale_usecase.New(saleRepo, auctionRepo, bidUC, bidRepo, escrowUC, settlementUC, paytokenRepo, protocolAccount)
	authUC := auth_usecase.New(viper.GetString("auth.jwtSecret"))

	authMiddleware := auth_middleware.New(authUC)

	auth_delivery.New(e, authUC)
	paytoken_delivery.New(e, paytokenRepo)
	activity_delivery.New(e, activityRepo)
	escrow_delivery.New(e, escrowUC, authMiddleware.Auth())
	bid_delivery.New(e, bidUC, authMiddleware.Auth())
	auction_delivery.New(e, auctionUC, paytokenRepo, authMiddleware.Auth())
	sale_delivery.New(e, saleUC, authMiddleware.Auth())
	settlement_delivery.New(e, settlementUC, viper.GetString("registry.callbackKey"))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{"status": "ok"})
	})

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
