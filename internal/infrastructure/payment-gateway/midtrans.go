package paymentgateway

import (
	"net/http"
	"time"

	"github.com/AatishKamble/swapify/config"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func CreateMidtransClient(config *config.Config) *coreapi.Client {
	environment := midtrans.Sandbox
	if config.MidtransConfig.Production {
		environment = midtrans.Production
	}

	midtrans.DefaultGoHttpClient = &http.Client{
		Timeout:   30 * time.Second,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	midtransClient := &coreapi.Client{}
	midtransClient.New(config.MidtransConfig.ServerKey, environment)

	return midtransClient
}
