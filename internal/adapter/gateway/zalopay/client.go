// Package zalopay signs outbound payment requests and authenticates inbound
// callbacks for the ZaloPay-style HMAC form-post protocol.
package zalopay

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/zcartvn/zcart/internal/adapter/config"
	"github.com/zcartvn/zcart/internal/core/domain"
	"github.com/zcartvn/zcart/internal/core/port"
	"go.uber.org/zap"
)

type Client struct {
	cfg    *config.ZaloPay
	clock  port.Clock
	client *http.Client
	logger *zap.Logger
}

func NewClient(cfg *config.ZaloPay, clock port.Clock, logger *zap.Logger) (*Client, error) {
	return &Client{
		cfg:    cfg,
		clock:  clock,
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger,
	}, nil
}

type itemPayload struct {
	ProductID uint64  `json:"product_id"`
	VariantID *uint64 `json:"variant_id,omitempty"`
	Quantity  int32   `json:"quantity"`
	Price     string  `json:"price"`
}

type embedPayload struct {
	SKU        string `json:"sku"`
	ShippingID uint64 `json:"shipping_id"`
}

type createResponse struct {
	ReturnCode    int    `json:"return_code"`
	ReturnMessage string `json:"return_message"`
	OrderURL      string `json:"order_url"`
}

// TransID derives the gateway transaction id from the order SKU and a date.
// The derivation is deterministic so a same-day retry reuses the id.
func TransID(day time.Time, sku string) string {
	return fmt.Sprintf("%s_%s", day.Format("060102"), sku)
}

func (c *Client) CreatePaymentRequest(ctx context.Context, order *domain.Order) (*domain.PaymentRequestResult, error) {
	now := c.clock.Now()

	transID := TransID(now, order.SKU)
	if order.Payment != nil && order.Payment.TransID != "" {
		transID = order.Payment.TransID
	}

	amount, _, ok := order.Total.Int64(0)
	if !ok {
		return nil, fmt.Errorf("order %s total %s does not fit the gateway amount field", order.SKU, order.Total)
	}

	items := make([]itemPayload, 0, len(order.Items))
	for _, it := range order.Items {
		items = append(items, itemPayload{
			ProductID: it.ProductID,
			VariantID: it.VariantID,
			Quantity:  it.Quantity,
			Price:     it.UnitPrice.String(),
		})
	}
	itemJSON, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("marshal item list: %w", err)
	}
	embedJSON, err := json.Marshal(embedPayload{SKU: order.SKU, ShippingID: order.ShippingID})
	if err != nil {
		return nil, fmt.Errorf("marshal embed data: %w", err)
	}

	appUser := strconv.FormatUint(order.UserID, 10)
	appTime := strconv.FormatInt(now.UnixMilli(), 10)
	amountStr := strconv.FormatInt(amount, 10)

	// Canonical order is fixed by the gateway contract:
	// app_id|app_trans_id|app_user|amount|app_time|embed_data|item
	canonical := strings.Join([]string{
		c.cfg.AppID,
		transID,
		appUser,
		amountStr,
		appTime,
		string(embedJSON),
		string(itemJSON),
	}, "|")
	mac := signHex(canonical, c.cfg.Key1)

	form := url.Values{}
	form.Set("app_id", c.cfg.AppID)
	form.Set("app_time", appTime)
	form.Set("app_trans_id", transID)
	form.Set("app_user", appUser)
	form.Set("item", string(itemJSON))
	form.Set("embed_data", string(embedJSON))
	form.Set("amount", amountStr)
	form.Set("description", fmt.Sprintf("zcart - payment for order %s", order.SKU))
	form.Set("bank_code", "zalopayapp")
	form.Set("callback_url", c.cfg.CallbackURL)
	form.Set("mac", mac)

	body, err := c.postForm(ctx, c.cfg.CreateURL, form)
	if err != nil {
		return nil, err
	}

	var resp createResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode create response: %w", err)
	}
	if resp.ReturnCode != 1 {
		c.logger.Error("gateway rejected payment request",
			zap.String("trans_id", transID),
			zap.Int("return_code", resp.ReturnCode),
			zap.String("return_message", resp.ReturnMessage))
		return nil, fmt.Errorf("%w: %s", domain.ErrGatewayRequest, resp.ReturnMessage)
	}

	return &domain.PaymentRequestResult{
		TransID: transID,
		PayURL:  resp.OrderURL,
		Raw:     body,
	}, nil
}

func (c *Client) postForm(ctx context.Context, endpoint string, form url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build gateway request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", domain.ErrGatewayRequest, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read gateway response: %w", err)
	}
	return body, nil
}

func signHex(canonical string, key string) string {
	h := hmac.New(sha256.New, []byte(key))
	h.Write([]byte(canonical))
	return hex.EncodeToString(h.Sum(nil))
}
