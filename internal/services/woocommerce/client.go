package woocommerce

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"felmel/internal/logger"
)

// Client talks to the store's product endpoint, directly or through a relay.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *resty.Client
	logger  *logger.Logger
}

func NewClient(baseURL, consumerKey, consumerSecret string, timeout time.Duration, logger *logger.Logger) *Client {
	httpClient := resty.New().
		SetTimeout(timeout).
		SetBasicAuth(consumerKey, consumerSecret).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{
		baseURL: baseURL,
		timeout: timeout,
		http:    httpClient,
		logger:  logger,
	}
}

// FetchPage requests one page of products ordered by modification date, newest first.
func (c *Client) FetchPage(ctx context.Context, page, perPage int) ([]json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"page":     strconv.Itoa(page),
			"per_page": strconv.Itoa(perPage),
			"orderby":  "modified",
			"order":    "desc",
		}).
		Get(c.baseURL)
	if err != nil {
		if isTimeout(err) {
			return nil, &FetchError{
				Page:    page,
				Message: fmt.Sprintf("request timed out after %s", c.timeout),
				Timeout: true,
				Err:     err,
			}
		}
		return nil, &FetchError{Page: page, Message: fmt.Sprintf("failed to make request: %v", err), Err: err}
	}

	if !resp.IsSuccess() {
		return nil, &FetchError{
			Page:    page,
			Status:  resp.StatusCode(),
			Message: fmt.Sprintf("API request failed: %s", strings.TrimSpace(string(resp.Body()))),
		}
	}

	var records []json.RawMessage
	if err := json.Unmarshal(resp.Body(), &records); err != nil {
		return nil, &FetchError{
			Page:    page,
			Status:  resp.StatusCode(),
			Message: fmt.Sprintf("failed to decode response: %v", err),
			Err:     err,
		}
	}

	c.logger.Debug("Page %d fetched: %d products", page, len(records))
	return records, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
