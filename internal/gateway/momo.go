// Package gateway holds the MoMo payment processor client. The request wire
// format (field set, raw-signature key order, HMAC) must stay bit-exact for
// interop with the gateway.
package gateway

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/kweeen04/EandP/pkg/utils"

	"go.uber.org/zap"
)

// MomoClient submits signed create-payment requests to the MoMo gateway.
// Configuration is injected so tests can point it at a fake endpoint with
// fake secrets.
type MomoClient interface {
	CreatePayment(ctx context.Context, orderID string, amount int64) (*CreateResponse, error)
	OrderInfo() string
	PartnerCode() string
}

type momoClient struct {
	config utils.MomoConfig
	client *http.Client
	log    *zap.Logger
}

func NewMomoClient(config utils.MomoConfig, log *zap.Logger) MomoClient {
	timeout := time.Duration(config.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &momoClient{
		config: config,
		client: &http.Client{Timeout: timeout},
		log:    log.With(zap.String("gateway", "momo")),
	}
}

// createRequest is the outbound body. Field names and the set itself are
// fixed by the gateway contract.
type createRequest struct {
	PartnerCode  string `json:"partnerCode"`
	PartnerName  string `json:"partnerName"`
	StoreID      string `json:"storeId"`
	RequestID    string `json:"requestId"`
	Amount       int64  `json:"amount"`
	OrderID      string `json:"orderId"`
	OrderInfo    string `json:"orderInfo"`
	RedirectURL  string `json:"redirectUrl"`
	IpnURL       string `json:"ipnUrl"`
	Lang         string `json:"lang"`
	RequestType  string `json:"requestType"`
	AutoCapture  bool   `json:"autoCapture"`
	ExtraData    string `json:"extraData"`
	OrderGroupID string `json:"orderGroupId"`
	Signature    string `json:"signature"`
}

// CreateResponse is the gateway's answer to a create request.
type CreateResponse struct {
	PartnerCode string `json:"partnerCode"`
	OrderID     string `json:"orderId"`
	RequestID   string `json:"requestId"`
	Amount      int64  `json:"amount"`
	ResultCode  int    `json:"resultCode"`
	Message     string `json:"message"`
	PayURL      string `json:"payUrl"`
}

// CallbackPayload is the asynchronous payment-result notification (IPN).
type CallbackPayload struct {
	OrderID    string `json:"orderId"`
	ResultCode int    `json:"resultCode"`
	Amount     int64  `json:"amount"`
	Message    string `json:"message"`
}

func (c *momoClient) OrderInfo() string {
	return c.config.OrderInfo
}

func (c *momoClient) PartnerCode() string {
	return c.config.PartnerCode
}

// rawSignature builds the canonical parameter string. The key order is fixed
// by the gateway contract and must not change.
func (c *momoClient) rawSignature(orderID, requestID string, amount int64) string {
	return fmt.Sprintf(
		"accessKey=%s&amount=%d&extraData=%s&ipnUrl=%s&orderId=%s&orderInfo=%s&partnerCode=%s&redirectUrl=%s&requestId=%s&requestType=%s",
		c.config.AccessKey,
		amount,
		"",
		c.config.IpnURL,
		orderID,
		c.config.OrderInfo,
		c.config.PartnerCode,
		c.config.RedirectURL,
		requestID,
		c.config.RequestType,
	)
}

func (c *momoClient) sign(raw string) string {
	mac := hmac.New(sha256.New, []byte(c.config.SecretKey))
	mac.Write([]byte(raw))
	return hex.EncodeToString(mac.Sum(nil))
}

// CreatePayment submits a signed create request. The request id mirrors the
// order id, matching the gateway examples.
func (c *momoClient) CreatePayment(ctx context.Context, orderID string, amount int64) (*CreateResponse, error) {
	requestID := orderID
	signature := c.sign(c.rawSignature(orderID, requestID, amount))

	body := createRequest{
		PartnerCode:  c.config.PartnerCode,
		PartnerName:  c.config.PartnerName,
		StoreID:      c.config.StoreID,
		RequestID:    requestID,
		Amount:       amount,
		OrderID:      orderID,
		OrderInfo:    c.config.OrderInfo,
		RedirectURL:  c.config.RedirectURL,
		IpnURL:       c.config.IpnURL,
		Lang:         c.config.Lang,
		RequestType:  c.config.RequestType,
		AutoCapture:  true,
		ExtraData:    "",
		OrderGroupID: "",
		Signature:    signature,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal momo request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build momo request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Error("MoMo create request failed",
			zap.Error(err),
			zap.String("order_id", orderID),
		)
		return nil, fmt.Errorf("submit momo request for order %s: %w", orderID, err)
	}
	defer resp.Body.Close()

	var result CreateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode momo response for order %s: %w", orderID, err)
	}

	if resp.StatusCode != http.StatusOK || result.ResultCode != 0 {
		c.log.Warn("MoMo rejected create request",
			zap.String("order_id", orderID),
			zap.Int("http_status", resp.StatusCode),
			zap.Int("result_code", result.ResultCode),
			zap.String("message", result.Message),
		)
		return nil, fmt.Errorf("momo rejected order %s: %s (code %d)", orderID, result.Message, result.ResultCode)
	}

	c.log.Info("MoMo payment created",
		zap.String("order_id", orderID),
		zap.Int64("amount", amount),
	)

	return &result, nil
}
