package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"brytashop-be/internal/logger"

	"go.uber.org/zap"
)

const paystackBaseURL = "https://api.paystack.co"

// SignatureHeader carries the HMAC-SHA512 of a webhook body.
const SignatureHeader = "x-paystack-signature"

type paystackGateway struct {
	secretKey  string
	baseURL    string
	httpClient *http.Client
}

func NewPaystackGateway(secretKey string) VerifyGateway {
	if secretKey == "" {
		logger.L().Warn("Paystack secret key is empty")
	}
	return &paystackGateway{
		secretKey:  secretKey,
		baseURL:    paystackBaseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type paystackEnvelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// ----------------- Verify -----------------

func (p *paystackGateway) Verify(ctx context.Context, reference string) (*Verification, error) {
	log := logger.FromCtx(ctx).With(zap.String("provider", "paystack"), zap.String("reference", reference))

	if reference == "" {
		return nil, ErrEmptyReference
	}

	var v Verification
	if err := p.do(ctx, http.MethodGet, "/transaction/verify/"+url.PathEscape(reference), nil, &v); err != nil {
		log.Error("paystack verify failed", zap.Error(err))
		return nil, err
	}

	log.Info("paystack transaction verified", zap.String("status", v.Status), zap.Int("amount", v.Amount))
	return &v, nil
}

// ----------------- Refund -----------------

func (p *paystackGateway) Refund(ctx context.Context, reference string) (*Refund, error) {
	var res struct {
		ID     int64  `json:"id"`
		Status string `json:"status"`
	}
	payload := map[string]string{"transaction": reference}
	if err := p.do(ctx, http.MethodPost, "/refund", payload, &res); err != nil {
		logger.FromCtx(ctx).Error("paystack refund failed", zap.String("reference", reference), zap.Error(err))
		return nil, err
	}

	logger.FromCtx(ctx).Info("paystack refund issued", zap.String("reference", reference))
	return &Refund{ID: fmt.Sprint(res.ID), Status: res.Status}, nil
}

// ----------------- Verify Signature -----------------

func (p *paystackGateway) VerifySignature(signature string, body []byte) error {
	if p.secretKey == "" {
		return ErrMissingSecretKey
	}

	mac := hmac.New(sha512.New, []byte(p.secretKey))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrInvalidSignature
	}
	return nil
}

func (p *paystackGateway) do(ctx context.Context, method, path string, payload interface{}, out interface{}) error {
	if p.secretKey == "" {
		return ErrMissingSecretKey
	}

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+p.secretKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read paystack response: %w", err)
	}

	var env paystackEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("paystack error: status %d", resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !env.Status {
		return fmt.Errorf("paystack error: %s", env.Message)
	}

	return json.Unmarshal(env.Data, out)
}
