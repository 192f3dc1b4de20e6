package analyzer

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

const (
	relevantOpeningsPath = "/get-relevant-vacancies"
	contentType          = "application/json"
	contentEncoding      = "gzip, deflate, br"
)

// Client talks to the resume analysis service which ranks job openings
// against a raw resume payload.
type Client struct {
	// ctx used only for http requests right now
	ctx        context.Context
	logger     *zap.Logger
	HTTPClient *http.Client
	APIURL     string
}

func New(ctx context.Context, logger *zap.Logger, apiURL string) *Client {
	return &Client{
		ctx:    ctx,
		logger: logger,
		APIURL: apiURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// RankOpenings sends the resume payload to the analysis service and returns
// the ranked openings. Order of the response is preserved.
func (c *Client) RankOpenings(resume []byte) (*Openings, error) {
	payload, err := json.Marshal(map[string]string{"resume": string(resume)})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s%s", c.APIURL, relevantOpeningsPath)

	req, err := http.NewRequestWithContext(c.ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept-Encoding", contentEncoding)

	c.logger.Debug("make request", zap.String("url", req.URL.String()))

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}

	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gzipReader.Close()
		reader = gzipReader
	}

	var response struct {
		Vacancies []map[string]any `json:"vacancies"`
	}
	if err := json.NewDecoder(reader).Decode(&response); err != nil {
		return nil, err
	}

	var openings []*Opening
	cfg := &mapstructure.DecoderConfig{
		Result:  &openings,
		TagName: "json",
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(response.Vacancies); err != nil {
		return nil, err
	}

	c.logger.Debug("got ranked openings from analyzer", zap.Int("count", len(openings)))

	return &Openings{Items: openings}, nil
}
