package zalopay

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/zcartvn/zcart/internal/core/domain"
)

type queryResponse struct {
	ReturnCode    int    `json:"return_code"`
	ReturnMessage string `json:"return_message"`
	IsProcessing  bool   `json:"is_processing"`
}

const (
	queryCodePaid       = 1
	queryCodeProcessing = 3
)

// QueryStatus asks the gateway for the state of one transaction. The result
// is for manual reconciliation only and never mutates local records.
func (c *Client) QueryStatus(ctx context.Context, transID string) (*domain.GatewayStatus, error) {
	canonical := strings.Join([]string{c.cfg.AppID, transID, c.cfg.Key1}, "|")
	mac := signHex(canonical, c.cfg.Key1)

	form := url.Values{}
	form.Set("app_id", c.cfg.AppID)
	form.Set("app_trans_id", transID)
	form.Set("mac", mac)

	body, err := c.postForm(ctx, c.cfg.QueryURL, form)
	if err != nil {
		return nil, err
	}

	var resp queryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode query response: %w", err)
	}

	return &domain.GatewayStatus{
		TransID:    transID,
		Paid:       resp.ReturnCode == queryCodePaid,
		Processing: resp.IsProcessing || resp.ReturnCode == queryCodeProcessing,
		Raw:        body,
	}, nil
}

func (c *Client) QueryStatusBatch(ctx context.Context, transIDs []string) ([]*domain.GatewayStatus, error) {
	statuses := make([]*domain.GatewayStatus, 0, len(transIDs))
	for _, transID := range transIDs {
		if err := ctx.Err(); err != nil {
			return statuses, err
		}
		status, err := c.QueryStatus(ctx, transID)
		if err != nil {
			return statuses, fmt.Errorf("query %s: %w", transID, err)
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}
