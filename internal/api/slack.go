package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"guardian-beam/internal/config"

	"github.com/valyala/fasthttp"
)

var ErrSlackAuth = errors.New("slack rejected token")

// SlackClient talks to the Slack Web API on behalf of the workspace app.
type SlackClient struct {
	baseURL string
	creds   config.Slack
	client  *fasthttp.Client
}

func NewSlackClient(cfg *config.Config) *SlackClient {
	return newSlackClient(cfg.Slack, &fasthttp.Client{
		MaxConnsPerHost:     100,
		ReadTimeout:         10 * time.Second,
		WriteTimeout:        10 * time.Second,
		MaxIdleConnDuration: 1 * time.Minute,
	})
}

func newSlackClient(creds config.Slack, client *fasthttp.Client) *SlackClient {
	return &SlackClient{
		baseURL: strings.TrimRight(creds.APIURL, "/"),
		creds:   creds,
		client:  client,
	}
}

// TeamID is the workspace this app is installed in.
func (c *SlackClient) TeamID() string {
	return c.creds.TeamID
}

// AuthTest resolves the identity behind a user token.
func (c *SlackClient) AuthTest(ctx context.Context, token string) (*AuthTestResponse, error) {
	resp, err := doRequest[AuthTestResponse](ctx, c, "auth.test", token)
	if err != nil {
		return nil, err
	}
	if !resp.OK {
		return nil, fmt.Errorf("%w: %s", ErrSlackAuth, resp.Error)
	}
	return resp, nil
}

func doRequest[T any](ctx context.Context, client *SlackClient, method, token string) (*T, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(client.baseURL + "/" + method)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.SetContentType("application/x-www-form-urlencoded")

	deadline, ok := ctx.Deadline()
	if ok {
		if err := client.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, err
		}
	} else {
		if err := client.client.Do(req, resp); err != nil {
			return nil, err
		}
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("slack API error: %d", resp.StatusCode())
	}

	var result T
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

type AuthTestResponse struct {
	OK     bool   `json:"ok"`
	Error  string `json:"error,omitempty"`
	URL    string `json:"url"`
	Team   string `json:"team"`
	User   string `json:"user"`
	TeamID string `json:"team_id"`
	UserID string `json:"user_id"`
}
