package resthttp

import (
	"context"
	"fmt"
	"sync"
	"time"

	"blue/pkg/logger"

	"github.com/go-resty/resty/v2"
)

var runOnce sync.Once
var restyClient *resty.Client

// Client resty client
func Client() *resty.Client {
	runOnce.Do(func() {
		restyClient = resty.New().
			SetHeader("Charset", "utf-8").
			SetRetryCount(2).
			SetTimeout(10 * time.Second)
	})

	return restyClient
}

// Request new resty request, forwarding the request id carried by ctx
func Request(ctx context.Context) *resty.Request {
	r := Client().R().SetContext(ctx)
	if id := logger.RequestID(ctx); id != "" {
		r.SetHeader(logger.RequestIDHeader, id)
	}

	return r
}

// Get body of url, non 2xx responses are errors
func Get(ctx context.Context, url string) ([]byte, error) {
	log := logger.FromContext(ctx).WithField("url", url)

	r, err := Request(ctx).Get(url)
	if err != nil {
		log.WithError(err).Errorln("resthttp.Get")
		return nil, err
	}

	if !r.IsSuccess() {
		log.WithField("status", r.Status()).Errorln("resthttp.Get")
		return nil, fmt.Errorf("GET %s: %s", url, r.Status())
	}

	return r.Body(), nil
}
