package loadgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Client is a thin HTTP client for the assessment API.
type Client struct {
	baseURL string
	hc      *http.Client
}

// NewClient creates a client against the given base URL.
func NewClient(cfg *Config) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		hc:      &http.Client{Timeout: cfg.RequestTimeout},
	}
}

// catalogResponse mirrors the fields of GET /catalog the driver needs.
type catalogResponse struct {
	Competencies []struct {
		Name string `json:"name"`
	} `json:"competencies"`
	Scale map[string]int `json:"scale"`
}

// FetchCatalog returns the competency names and the scale maximum.
func (c *Client) FetchCatalog(ctx context.Context) ([]string, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/catalog", nil)
	if err != nil {
		return nil, 0, err
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, 0, fmt.Errorf("catalog request failed: %s", resp.Status)
	}

	var cat catalogResponse
	if err := json.NewDecoder(resp.Body).Decode(&cat); err != nil {
		return nil, 0, err
	}
	names := make([]string, len(cat.Competencies))
	for i, comp := range cat.Competencies {
		names[i] = comp.Name
	}
	var scaleMax int
	for _, v := range cat.Scale {
		if v > scaleMax {
			scaleMax = v
		}
	}
	return names, scaleMax, nil
}

// PostRating submits one rating and returns the HTTP status code.
func (c *Client) PostRating(ctx context.Context, sub Submission) (int, error) {
	body, err := json.Marshal(sub)
	if err != nil {
		return 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/ratings", bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, nil
}

// reportResponse mirrors the fields of GET /report/{ratee} the driver needs.
type reportResponse struct {
	Results []struct {
		Competency string  `json:"competency"`
		State      string  `json:"state"`
		Percent    float64 `json:"percent"`
		Tier       string  `json:"tier"`
	} `json:"results"`
}

// FetchReport fetches one ratee's report and returns the count of scored
// competencies.
func (c *Client) FetchReport(ctx context.Context, ratee string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/report/"+ratee, nil)
	if err != nil {
		return 0, err
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("report request failed: %s", resp.Status)
	}

	var rep reportResponse
	if err := json.NewDecoder(resp.Body).Decode(&rep); err != nil {
		return 0, err
	}
	var scored int
	for _, res := range rep.Results {
		if res.State == "scored" {
			scored++
		}
	}
	return scored, nil
}
