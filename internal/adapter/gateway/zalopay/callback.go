package zalopay

import (
	"crypto/hmac"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/govalues/decimal"
	"github.com/zcartvn/zcart/internal/core/domain"
)

// callbackFields are required on every callback, in canonical order.
// discount_amount is optional and defaults to "0".
var callbackFields = []string{
	"merchant_id",
	"transaction_id",
	"payment_channel_id",
	"bank_code",
	"amount",
	"status",
	"checksum",
}

const callbackStatusPaid = "1"

// VerifyCallback reconstructs the canonical string from the callback fields
// and compares the supplied checksum in constant time. Nothing is mutated
// here; a rejected callback never reaches the state machine.
func (c *Client) VerifyCallback(fields map[string]string) (*domain.PaymentCallback, error) {
	for _, name := range callbackFields {
		if fields[name] == "" {
			return nil, fmt.Errorf("%w: %s", domain.ErrCallbackMissingField, name)
		}
	}

	discountAmount := fields["discount_amount"]
	if discountAmount == "" {
		discountAmount = "0"
	}

	canonical := strings.Join([]string{
		fields["merchant_id"],
		fields["transaction_id"],
		fields["payment_channel_id"],
		fields["bank_code"],
		fields["amount"],
		discountAmount,
		fields["status"],
	}, "|")

	expected := signHex(canonical, c.cfg.Key2)
	if !hmac.Equal([]byte(expected), []byte(fields["checksum"])) {
		return nil, domain.ErrChecksumInvalid
	}

	amount, err := decimal.Parse(fields["amount"])
	if err != nil {
		return nil, fmt.Errorf("%w: amount", domain.ErrCallbackMissingField)
	}
	discount, err := decimal.Parse(discountAmount)
	if err != nil {
		return nil, fmt.Errorf("%w: discount_amount", domain.ErrCallbackMissingField)
	}

	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("marshal callback fields: %w", err)
	}

	return &domain.PaymentCallback{
		TransID:        fields["transaction_id"],
		ChannelID:      fields["payment_channel_id"],
		BankCode:       fields["bank_code"],
		Amount:         amount,
		DiscountAmount: discount,
		Succeeded:      fields["status"] == callbackStatusPaid,
		Raw:            raw,
	}, nil
}
