package mvg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
)

const DefaultLimit = 10
const DefaultMaxConcurrency = 32

const userAgent = "travigo-mvg/1.0"

type Client struct {
	HTTPClient *http.Client

	// Base URL overrides, the public MVG endpoints are used when empty
	FIBURL string
	ZDMURL string

	// Upper bound on concurrent requests when collecting lines for every station
	MaxConcurrency int

	// Called for every per-station lines fetch that gets dropped from the aggregate
	OnLineFetchError func(stationID string, err error)
}

func NewClient() *Client {
	return &Client{
		HTTPClient:     &http.Client{},
		MaxConcurrency: DefaultMaxConcurrency,
	}
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient == nil {
		return http.DefaultClient
	}

	return c.HTTPClient
}

func (c *Client) baseURL(base Base) string {
	switch {
	case base == BaseFIB && c.FIBURL != "":
		return c.FIBURL
	case base == BaseZDM && c.ZDMURL != "":
		return c.ZDMURL
	default:
		return string(base)
	}
}

func (c *Client) buildURL(definition EndpointDefinition, args map[string]string, pathParam string) (string, error) {
	path := definition.Path
	if pathParam != "" {
		if !definition.PathParam {
			return "", &APIError{
				Message: fmt.Sprintf("Bad API call: %s does not take a path parameter", definition.Name),
			}
		}

		path = fmt.Sprintf("%s/%s", path, url.PathEscape(pathParam))
	}

	requestURL, err := url.Parse(c.baseURL(definition.Base) + path)
	if err != nil {
		return "", &APIError{
			Message: fmt.Sprintf("Bad API call: Could not build URL for %s", definition.Name),
			Err:     err,
		}
	}

	if len(args) > 0 {
		query := url.Values{}
		for name, value := range args {
			if !definition.acceptsArg(name) {
				return "", &APIError{
					Message: fmt.Sprintf("Bad API call: %s does not accept argument %q", definition.Name, name),
				}
			}

			query.Set(name, value)
		}

		requestURL.RawQuery = query.Encode()
	}

	return requestURL.String(), nil
}

// execute performs a single GET against an endpoint and returns the raw JSON body.
// Transport failures, non-200 responses and non-JSON content all become an APIError.
func (c *Client) execute(ctx context.Context, endpoint Endpoint, args map[string]string, pathParam string) ([]byte, error) {
	definition, exists := endpoint.Definition()
	if !exists {
		return nil, &APIError{Message: fmt.Sprintf("Bad API call: unknown endpoint %d", endpoint)}
	}

	requestURL, err := c.buildURL(definition, args, pathParam)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, &APIError{
			Message: fmt.Sprintf("Bad API call: Got %T from %s", err, requestURL),
			URL:     requestURL,
			Err:     err,
		}
	}
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("User-Agent", userAgent)

	startTime := time.Now()
	resp, err := c.httpClient().Do(req)

	if err != nil {
		return nil, &APIError{
			Message: fmt.Sprintf("Bad API call: Got %s from %s", transportErrorType(err), requestURL),
			URL:     requestURL,
			Err:     err,
		}
	}
	defer resp.Body.Close()

	log.Debug().
		Str("endpoint", definition.Name).
		Str("url", requestURL).
		Int("status", resp.StatusCode).
		Str("latency", time.Since(startTime).String()).
		Msg("MVG API request")

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{
			Message:    fmt.Sprintf("Bad API call: Got response (%d) from %s", resp.StatusCode, requestURL),
			URL:        requestURL,
			StatusCode: resp.StatusCode,
		}
	}

	contentType := responseContentType(resp)
	if contentType != "application/json" {
		return nil, &APIError{
			Message:     fmt.Sprintf("Bad API call: Got content type %s from %s", contentType, requestURL),
			URL:         requestURL,
			StatusCode:  resp.StatusCode,
			ContentType: contentType,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{
			Message:     fmt.Sprintf("Bad API call: Got %s from %s", transportErrorType(err), requestURL),
			URL:         requestURL,
			StatusCode:  resp.StatusCode,
			ContentType: contentType,
			Err:         err,
		}
	}

	if !json.Valid(body) {
		return nil, &APIError{
			Message:     fmt.Sprintf("Bad API call: Got invalid JSON from %s", requestURL),
			URL:         requestURL,
			StatusCode:  resp.StatusCode,
			ContentType: contentType,
		}
	}

	return body, nil
}

func responseContentType(resp *http.Response) string {
	header := resp.Header.Get("Content-Type")
	if header == "" {
		return "application/octet-stream"
	}

	mediaType, _, err := mime.ParseMediaType(header)
	if err != nil {
		return header
	}

	return mediaType
}

func transportErrorType(err error) string {
	var urlError *url.Error
	if errors.As(err, &urlError) && urlError.Err != nil {
		err = urlError.Err
	}

	return fmt.Sprintf("%T", err)
}
