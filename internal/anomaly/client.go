// Package anomaly proxies vitals readings to the external ML anomaly
// detection service.
package anomaly

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Reading is one set of patient vitals to score.
type Reading struct {
	HeartRate  float64 `json:"heart_rate"`
	SystolicBP float64 `json:"systolic_bp"`
	SpO2       float64 `json:"spo2"`
}

// Prediction is the service's verdict on a reading.
type Prediction struct {
	Anomaly bool    `json:"anomaly"`
	Score   float64 `json:"score"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Enabled reports whether a service URL was configured.
func (c *Client) Enabled() bool {
	return c.baseURL != ""
}

// Predict scores one reading. Any non-200 response is an error.
func (c *Client) Predict(ctx context.Context, r Reading) (*Prediction, error) {
	body, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("anomaly service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("anomaly service: status %d: %s", resp.StatusCode, b)
	}

	var p Prediction
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("anomaly service: decode response: %w", err)
	}
	return &p, nil
}
