package feed

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/umputun/wikifeedia/pkg/domain"
)

//go:generate moq -out mocks/querier.go -pkg mocks -skip-ensure -fmt goimports . Querier

// Page is a single page of the feed as returned by the backend
type Page struct {
	AsOf     string           `json:"asOf"`
	Articles []domain.Article `json:"articles"`
}

// Querier executes the feed query against the backend
type Querier interface {
	Query(ctx context.Context, params Params) (*Page, error)
}

// feedQuery is the graphql document sent for every page
const feedQuery = `query Feed(
  $project: String!, $offset: Int, $limit: Int, $followerRead: Boolean, $asOf: String
) {
  articles(
    project: $project, offset: $offset, limit: $limit,
    followerRead: $followerRead, asOf: $asOf
  ) {
    asOf
    articles {
      project
      abstract
      article
      articleURL
      dailyViews
      imageURL
      thumbnailURL
      title
    }
  }
}`

// QueryError is returned when the backend reports graphql errors
type QueryError struct {
	Messages []string
}

func (e *QueryError) Error() string {
	return "graphql: " + strings.Join(e.Messages, "; ")
}

// ErrMalformedResponse is returned when the response has no usable articles payload
var ErrMalformedResponse = errors.New("malformed feed response")

// Client is a graphql-over-http implementation of Querier
type Client struct {
	endpoint   string
	httpClient *http.Client
}

type gqlRequest struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName,omitempty"`
	Variables     map[string]any `json:"variables"`
}

type gqlResponse struct {
	Data *struct {
		Articles json.RawMessage `json:"articles"`
	} `json:"data"`
	Errors []json.RawMessage `json:"errors"`
}

// NewClient makes a feed client for the given graphql endpoint
func NewClient(endpoint string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Query fetches a single page of articles
func (c *Client) Query(ctx context.Context, params Params) (*Page, error) {
	vars := map[string]any{
		"project":      params.Project,
		"offset":       params.Offset,
		"limit":        params.Limit,
		"followerRead": params.FollowerRead,
	}
	if params.AsOf != "" {
		vars["asOf"] = params.AsOf
	}

	body, err := json.Marshal(gqlRequest{Query: feedQuery, OperationName: "Feed", Variables: vars})
	if err != nil {
		return nil, fmt.Errorf("marshal query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("make request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var gr gqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if len(gr.Errors) > 0 {
		qe := &QueryError{Messages: make([]string, 0, len(gr.Errors))}
		for _, raw := range gr.Errors {
			qe.Messages = append(qe.Messages, errorMessage(raw))
		}
		return nil, qe
	}

	if gr.Data == nil {
		return nil, fmt.Errorf("%w: no data", ErrMalformedResponse)
	}
	return decodePage(gr.Data.Articles)
}

// decodePage accepts both the {asOf, articles} envelope and the legacy bare list of articles
func decodePage(raw json.RawMessage) (*Page, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, fmt.Errorf("%w: no articles", ErrMalformedResponse)
	}

	if trimmed[0] == '[' {
		var articles []domain.Article
		if err := json.Unmarshal(trimmed, &articles); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		return &Page{Articles: articles}, nil
	}

	var page Page
	if err := json.Unmarshal(trimmed, &page); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return &page, nil
}

// errorMessage extracts text from a graphql error, which is either a plain string
// or an object with a message field
func errorMessage(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Message != "" {
		return obj.Message
	}
	return string(raw)
}
