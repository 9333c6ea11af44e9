package resolver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/terafetch/internal/config"
	"github.com/mamadbah2/terafetch/internal/domain/models"
)

// Client resolves share links into directly playable media URLs.
type Client interface {
	Resolve(ctx context.Context, link string) (models.Resolution, error)
}

// RapidAPIClient is a resty-backed implementation of Client for the RapidAPI
// Terabox downloader.
type RapidAPIClient struct {
	httpClient *resty.Client
}

// NewClient builds a resolver client with the RapidAPI authentication headers.
func NewClient(cfg config.ResolverConfig, timeout time.Duration) *RapidAPIClient {
	restyClient := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("x-rapidapi-host", cfg.Host).
		SetHeader("x-rapidapi-key", cfg.APIKey).
		SetTimeout(timeout)

	return &RapidAPIClient{httpClient: restyClient}
}

type resolveResponse struct {
	Data *struct {
		DownloadLink string `json:"download_link"`
	} `json:"data"`
}

// Resolve asks the resolver for the download link of a share link.
//
// Upstream failures are reported through the returned Resolution. An error is
// only returned when the caller's context is done, in which case no reply
// should be attempted either.
func (c *RapidAPIClient) Resolve(ctx context.Context, link string) (models.Resolution, error) {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("url", link).
		Get("/url")
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return models.Resolution{}, fmt.Errorf("resolve link: %w", ctxErr)
		}
		return transportError(fmt.Sprintf("request failed: %v", err)), nil
	}

	// A download link is trusted whatever the status; the status only
	// classifies responses without one.
	var body resolveResponse
	decodeErr := json.Unmarshal(resp.Body(), &body)
	if decodeErr == nil && body.Data != nil && body.Data.DownloadLink != "" {
		return models.Resolution{Outcome: models.OutcomeResolved, DirectURL: body.Data.DownloadLink}, nil
	}

	switch {
	case resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices:
		return transportError(fmt.Sprintf("unexpected status %d", resp.StatusCode())), nil
	case decodeErr != nil:
		return transportError(fmt.Sprintf("malformed response: %v", decodeErr)), nil
	default:
		return models.Resolution{Outcome: models.OutcomeUnresolvable, Reason: "response has no data.download_link"}, nil
	}
}

func transportError(reason string) models.Resolution {
	return models.Resolution{Outcome: models.OutcomeTransportError, Reason: reason}
}
