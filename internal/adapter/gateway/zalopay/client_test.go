package zalopay_test

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zcartvn/zcart/internal/adapter/config"
	"github.com/zcartvn/zcart/internal/adapter/gateway/zalopay"
	"github.com/zcartvn/zcart/internal/core/domain"
	"go.uber.org/zap"
)

const (
	testKey1 = "key-one-secret"
	testKey2 = "key-two-secret"
)

var clientNow = time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func hmacHex(key, canonical string) string {
	h := hmac.New(sha256.New, []byte(key))
	h.Write([]byte(canonical))
	return hex.EncodeToString(h.Sum(nil))
}

func newTestClient(t *testing.T, createURL, queryURL string) *zalopay.Client {
	t.Helper()

	cfg := &config.ZaloPay{
		AppID:       "553",
		Key1:        testKey1,
		Key2:        testKey2,
		CreateURL:   createURL,
		QueryURL:    queryURL,
		CallbackURL: "https://zcart.example/api/payment/callback",
	}
	logger, _ := zap.NewDevelopment()
	client, err := zalopay.NewClient(cfg, fixedClock{clientNow}, logger)
	require.NoError(t, err)
	return client
}

func TestTransID(t *testing.T) {
	day := time.Date(2024, 5, 20, 23, 59, 0, 0, time.UTC)

	id := zalopay.TransID(day, "ZC-240520-AAAA1111")
	assert.Equal(t, "240520_ZC-240520-AAAA1111", id)

	// Same day, same SKU, same id.
	assert.Equal(t, id, zalopay.TransID(day.Add(-time.Hour), "ZC-240520-AAAA1111"))
	assert.NotEqual(t, id, zalopay.TransID(day.AddDate(0, 0, 1), "ZC-240520-AAAA1111"))
}

func testOrder() *domain.Order {
	return &domain.Order{
		ID:         1,
		SKU:        "ZC-240520-AAAA1111",
		UserID:     7,
		Status:     domain.OrderStatusPending,
		Total:      decimal.MustParse("180000"),
		ShippingID: 10,
		Items: []*domain.OrderItem{
			{ProductID: 100, Quantity: 2, UnitPrice: decimal.MustParse("100000")},
		},
		Payment: &domain.Payment{Method: domain.PaymentMethodZaloPay, Status: domain.PaymentStatusPending},
	}
}

func TestClient_CreatePaymentRequest(t *testing.T) {
	var received map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		received = map[string]string{}
		for name := range r.PostForm {
			received[name] = r.PostForm.Get(name)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"return_code":1,"return_message":"success","order_url":"https://pay.example/x"}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, srv.URL)

	result, err := client.CreatePaymentRequest(context.Background(), testOrder())

	require.NoError(t, err)
	assert.Equal(t, "240520_ZC-240520-AAAA1111", result.TransID)
	assert.Equal(t, "https://pay.example/x", result.PayURL)

	require.NotNil(t, received)
	assert.Equal(t, "553", received["app_id"])
	assert.Equal(t, "180000", received["amount"])
	assert.Equal(t, "7", received["app_user"])
	assert.Equal(t, "zalopayapp", received["bank_code"])
	assert.Equal(t, "https://zcart.example/api/payment/callback", received["callback_url"])

	canonical := strings.Join([]string{
		received["app_id"],
		received["app_trans_id"],
		received["app_user"],
		received["amount"],
		received["app_time"],
		received["embed_data"],
		received["item"],
	}, "|")
	assert.Equal(t, hmacHex(testKey1, canonical), received["mac"])
}

func TestClient_CreatePaymentRequest_ReusesTransID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"return_code":1,"order_url":"https://pay.example/x"}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, srv.URL)

	order := testOrder()
	order.Payment.TransID = "240519_ZC-240519-BBBB2222"

	result, err := client.CreatePaymentRequest(context.Background(), order)

	require.NoError(t, err)
	assert.Equal(t, "240519_ZC-240519-BBBB2222", result.TransID)
}

func TestClient_CreatePaymentRequest_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"return_code":2,"return_message":"invalid mac"}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, srv.URL)

	result, err := client.CreatePaymentRequest(context.Background(), testOrder())

	assert.ErrorIs(t, err, domain.ErrGatewayRequest)
	assert.Nil(t, result)
}

func callbackFields(key string) map[string]string {
	fields := map[string]string{
		"merchant_id":        "553",
		"transaction_id":     "240520_ZC-240520-AAAA1111",
		"payment_channel_id": "38",
		"bank_code":          "ZPVISA",
		"amount":             "180000",
		"discount_amount":    "0",
		"status":             "1",
	}
	canonical := strings.Join([]string{
		fields["merchant_id"],
		fields["transaction_id"],
		fields["payment_channel_id"],
		fields["bank_code"],
		fields["amount"],
		fields["discount_amount"],
		fields["status"],
	}, "|")
	fields["checksum"] = hmacHex(key, canonical)
	return fields
}

func TestClient_VerifyCallback(t *testing.T) {
	client := newTestClient(t, "", "")

	t.Run("valid checksum", func(t *testing.T) {
		cb, err := client.VerifyCallback(callbackFields(testKey2))

		require.NoError(t, err)
		assert.Equal(t, "240520_ZC-240520-AAAA1111", cb.TransID)
		assert.True(t, cb.Succeeded)
		assert.Equal(t, "180000", cb.Amount.String())
	})

	t.Run("failed payment status", func(t *testing.T) {
		fields := map[string]string{
			"merchant_id":        "553",
			"transaction_id":     "240520_ZC-240520-AAAA1111",
			"payment_channel_id": "38",
			"bank_code":          "ZPVISA",
			"amount":             "180000",
			"status":             "0",
		}
		// discount_amount absent defaults to "0" in the canonical string.
		canonical := "553|240520_ZC-240520-AAAA1111|38|ZPVISA|180000|0|0"
		fields["checksum"] = hmacHex(testKey2, canonical)

		cb, err := client.VerifyCallback(fields)

		require.NoError(t, err)
		assert.False(t, cb.Succeeded)
	})

	t.Run("single flipped character", func(t *testing.T) {
		fields := callbackFields(testKey2)
		checksum := []byte(fields["checksum"])
		if checksum[0] == 'a' {
			checksum[0] = 'b'
		} else {
			checksum[0] = 'a'
		}
		fields["checksum"] = string(checksum)

		cb, err := client.VerifyCallback(fields)

		assert.ErrorIs(t, err, domain.ErrChecksumInvalid)
		assert.Nil(t, cb)
	})

	t.Run("signed with the wrong key", func(t *testing.T) {
		cb, err := client.VerifyCallback(callbackFields(testKey1))

		assert.ErrorIs(t, err, domain.ErrChecksumInvalid)
		assert.Nil(t, cb)
	})

	t.Run("tampered amount", func(t *testing.T) {
		fields := callbackFields(testKey2)
		fields["amount"] = "1"

		cb, err := client.VerifyCallback(fields)

		assert.ErrorIs(t, err, domain.ErrChecksumInvalid)
		assert.Nil(t, cb)
	})

	t.Run("missing field", func(t *testing.T) {
		fields := callbackFields(testKey2)
		delete(fields, "bank_code")

		cb, err := client.VerifyCallback(fields)

		assert.ErrorIs(t, err, domain.ErrCallbackMissingField)
		assert.Nil(t, cb)
	})
}

func TestClient_QueryStatus(t *testing.T) {
	tests := []struct {
		name          string
		response      string
		expPaid       bool
		expProcessing bool
	}{
		{"paid", `{"return_code":1}`, true, false},
		{"processing code", `{"return_code":3}`, false, true},
		{"processing flag", `{"return_code":2,"is_processing":true}`, false, true},
		{"failed", `{"return_code":2}`, false, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.NoError(t, r.ParseForm())
				canonical := strings.Join([]string{"553", r.PostForm.Get("app_trans_id"), testKey1}, "|")
				assert.Equal(t, hmacHex(testKey1, canonical), r.PostForm.Get("mac"))
				_, _ = w.Write([]byte(test.response))
			}))
			defer srv.Close()

			client := newTestClient(t, srv.URL, srv.URL)

			status, err := client.QueryStatus(context.Background(), "240520_ZC-240520-AAAA1111")

			require.NoError(t, err)
			assert.Equal(t, test.expPaid, status.Paid)
			assert.Equal(t, test.expProcessing, status.Processing)
		})
	}
}
