package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockRoundTripper allows us to mock the HTTP response
type MockRoundTripper func(req *http.Request) *http.Response

func (f MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req), nil
}

type MockRoundTripperWithError func(req *http.Request) (*http.Response, error)

func (f MockRoundTripperWithError) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Header:     make(http.Header),
	}
}

func stripeWith(rt http.RoundTripper) *stripeGateway {
	return newStripeGateway("sk_test", &http.Client{Transport: rt})
}

func TestStripeGateway_Charge(t *testing.T) {
	params := ChargeParams{Amount: 4500, Currency: "NGN", Source: "tok_visa", IdempotencyKey: "tok_visa"}

	t.Run("Success", func(t *testing.T) {
		gw := stripeWith(MockRoundTripper(func(req *http.Request) *http.Response {
			assert.Equal(t, http.MethodPost, req.Method)
			assert.Equal(t, "https://api.stripe.com/v1/charges", req.URL.String())
			assert.Equal(t, "tok_visa", req.Header.Get("Idempotency-Key"))
			assert.Equal(t, "Bearer sk_test", req.Header.Get("Authorization"))

			require.NoError(t, req.ParseForm())
			assert.Equal(t, "4500", req.PostForm.Get("amount"))
			assert.Equal(t, "ngn", req.PostForm.Get("currency"))
			assert.Equal(t, "tok_visa", req.PostForm.Get("source"))

			return jsonResponse(http.StatusOK, `{"id":"ch_1","object":"charge","amount":4500,"currency":"ngn","status":"succeeded","paid":true}`)
		}))

		ch, err := gw.Charge(context.Background(), params)
		require.NoError(t, err)
		assert.Equal(t, "ch_1", ch.ID)
		assert.Equal(t, 4500, ch.Amount)
		assert.Equal(t, "succeeded", ch.Status)
	})

	t.Run("CardDeclined", func(t *testing.T) {
		gw := stripeWith(MockRoundTripper(func(req *http.Request) *http.Response {
			return jsonResponse(http.StatusPaymentRequired, `{"error":{"type":"card_error","code":"card_declined","message":"Your card was declined."}}`)
		}))

		_, err := gw.Charge(context.Background(), params)
		assert.EqualError(t, err, "stripe error: Your card was declined.")
	})

	t.Run("NotPaid", func(t *testing.T) {
		gw := stripeWith(MockRoundTripper(func(req *http.Request) *http.Response {
			return jsonResponse(http.StatusOK, `{"id":"ch_2","object":"charge","status":"failed","paid":false}`)
		}))

		_, err := gw.Charge(context.Background(), params)
		assert.ErrorIs(t, err, ErrChargeNotPaid)
	})

	t.Run("NetworkError", func(t *testing.T) {
		gw := stripeWith(MockRoundTripperWithError(func(req *http.Request) (*http.Response, error) {
			return nil, errors.New("connection reset")
		}))

		_, err := gw.Charge(context.Background(), params)
		assert.ErrorContains(t, err, "connection reset")
	})

	t.Run("MissingKey", func(t *testing.T) {
		_, err := NewStripeGateway("").Charge(context.Background(), params)
		assert.ErrorIs(t, err, ErrMissingSecretKey)
	})
}

func TestStripeGateway_Refund(t *testing.T) {
	gw := stripeWith(MockRoundTripper(func(req *http.Request) *http.Response {
		assert.Equal(t, "https://api.stripe.com/v1/refunds", req.URL.String())
		assert.Equal(t, "refund-ch_1", req.Header.Get("Idempotency-Key"))
		require.NoError(t, req.ParseForm())
		assert.Equal(t, "ch_1", req.PostForm.Get("charge"))
		return jsonResponse(http.StatusOK, `{"id":"re_1","object":"refund","status":"succeeded"}`)
	}))

	r, err := gw.Refund(context.Background(), "ch_1")
	require.NoError(t, err)
	assert.Equal(t, "re_1", r.ID)
	assert.Equal(t, "succeeded", r.Status)
}

func TestPaystackGateway_Verify(t *testing.T) {
	gw := NewPaystackGateway("sk_paystack").(*paystackGateway)

	t.Run("Success", func(t *testing.T) {
		gw.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			assert.Equal(t, http.MethodGet, req.Method)
			assert.Equal(t, "https://api.paystack.co/transaction/verify/ref-123", req.URL.String())
			assert.Equal(t, "Bearer sk_paystack", req.Header.Get("Authorization"))
			return jsonResponse(http.StatusOK, `{
				"status": true,
				"message": "Verification successful",
				"data": {"reference": "ref-123", "status": "success", "amount": 4500, "currency": "NGN", "paid_at": "2024-01-01T10:00:00Z"}
			}`)
		})

		v, err := gw.Verify(context.Background(), "ref-123")
		require.NoError(t, err)
		assert.True(t, v.Succeeded())
		assert.Equal(t, 4500, v.Amount)
		require.NotNil(t, v.PaidAt)
	})

	t.Run("Abandoned", func(t *testing.T) {
		gw.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			return jsonResponse(http.StatusOK, `{"status":true,"message":"ok","data":{"reference":"ref-123","status":"abandoned","amount":4500}}`)
		})

		v, err := gw.Verify(context.Background(), "ref-123")
		require.NoError(t, err)
		assert.False(t, v.Succeeded())
	})

	t.Run("UnknownReference", func(t *testing.T) {
		gw.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			return jsonResponse(http.StatusBadRequest, `{"status":false,"message":"Transaction reference not found"}`)
		})

		_, err := gw.Verify(context.Background(), "nope")
		assert.EqualError(t, err, "paystack error: Transaction reference not found")
	})

	t.Run("EmptyReference", func(t *testing.T) {
		_, err := gw.Verify(context.Background(), "")
		assert.ErrorIs(t, err, ErrEmptyReference)
	})
}

func TestPaystackGateway_Refund(t *testing.T) {
	gw := NewPaystackGateway("sk_paystack").(*paystackGateway)
	gw.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
		assert.Equal(t, "https://api.paystack.co/refund", req.URL.String())

		var body map[string]string
		require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
		assert.Equal(t, "ref-123", body["transaction"])

		return jsonResponse(http.StatusOK, `{"status":true,"message":"Refund has been queued","data":{"id":77,"status":"pending"}}`)
	})

	r, err := gw.Refund(context.Background(), "ref-123")
	require.NoError(t, err)
	assert.Equal(t, "77", r.ID)
	assert.Equal(t, "pending", r.Status)
}

func TestPaystackGateway_VerifySignature(t *testing.T) {
	gw := NewPaystackGateway("sk_paystack")
	body := []byte(`{"event":"charge.success"}`)

	mac := hmac.New(sha512.New, []byte("sk_paystack"))
	mac.Write(body)
	valid := hex.EncodeToString(mac.Sum(nil))

	assert.NoError(t, gw.VerifySignature(valid, body))
	assert.ErrorIs(t, gw.VerifySignature("bogus", body), ErrInvalidSignature)
	assert.ErrorIs(t, NewPaystackGateway("").VerifySignature(valid, body), ErrMissingSecretKey)
}
