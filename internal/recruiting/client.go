package recruiting

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	userAgent = "lodteam/screening-bot (lod-hr@lodteam.dev)"
)

// Client talks to the employee recruiting API: screening tests, questions,
// candidates and their results.
type Client struct {
	// ctx used only for http requests right now
	ctx        context.Context
	token      string
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
}

func New(ctx context.Context, logger *zap.Logger, apiURL, token string) *Client {
	return &Client{
		ctx:    ctx,
		token:  token,
		APIURL: apiURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger:    logger,
		UserAgent: userAgent,
	}
}
