package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vladima-ai/payment-service/internal/config"
	"github.com/vladima-ai/payment-service/internal/domain"
	"github.com/vladima-ai/payment-service/internal/usecase"
)

// The gateway's protocol signals failure by body content, not status code:
// every verification failure answers HTTP 200 with this sentinel.
const failureToken = "ERROR"

type RobokassaHandler struct {
	uc  *usecase.PaymentUsecase
	cfg *config.PaymentConfig
}

func NewRobokassaHandler(uc *usecase.PaymentUsecase, cfg *config.PaymentConfig) *RobokassaHandler {
	return &RobokassaHandler{uc: uc, cfg: cfg}
}

// collectParams flattens the query string and the form-encoded body into one
// map. The gateway may deliver parameters via either transport.
func collectParams(c echo.Context) map[string]string {
	params := make(map[string]string)
	for k, v := range c.QueryParams() {
		if len(v) > 0 {
			params[k] = v[0]
		}
	}
	if form, err := c.FormParams(); err == nil {
		for k, v := range form {
			if len(v) > 0 {
				params[k] = v[0]
			}
		}
	}
	return params
}

// HandleResult serves the ResultURL webhook. Success acknowledgment is
// "OK{InvId}" and must be identical on retries; otherwise the gateway keeps
// retrying forever.
func (h *RobokassaHandler) HandleResult(c echo.Context) error {
	params := collectParams(c)

	res, err := h.uc.ConfirmPayment(c.Request().Context(), params)
	if err != nil {
		if domain.IsCallbackRejection(err) {
			return c.String(http.StatusOK, failureToken)
		}
		// Storage failure: must not be acknowledged as success, the gateway
		// will retry.
		slog.Error("result callback failed", "error", err.Error())
		return echo.NewHTTPError(http.StatusInternalServerError)
	}

	return c.String(http.StatusOK, fmt.Sprintf("OK%d", res.InvID))
}

// HandleSuccess serves the user-facing redirect after payment. Informational
// only — confirmation arrives on the ResultURL.
func (h *RobokassaHandler) HandleSuccess(c echo.Context) error {
	if _, err := h.uc.VerifySuccessRedirect(collectParams(c)); err != nil {
		return c.HTML(http.StatusOK, unverifiedPage())
	}
	return c.HTML(http.StatusOK, successPage(h.cfg.Telegram.BotUsername))
}

func (h *RobokassaHandler) HandleFail(c echo.Context) error {
	return c.HTML(http.StatusOK, failPage(h.cfg.Telegram.BotUsername))
}

type createPaymentRequest struct {
	UserID  int64  `json:"user_id"`
	ChatID  int64  `json:"chat_id"`
	Product string `json:"product"`
	Email   string `json:"email"`
}

type createPaymentResponse struct {
	InvID      int64  `json:"inv_id"`
	Amount     string `json:"amount"`
	PaymentURL string `json:"payment_url"`
}

// HandleCreatePayment is the seam for the bot: it creates an order at the
// configured product price and returns the signed payment URL.
func (h *RobokassaHandler) HandleCreatePayment(c echo.Context) error {
	var req createPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.UserID == 0 || req.ChatID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id and chat_id are required")
	}

	product, err := h.cfg.ProductByCode(req.Product)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("unknown product %q", req.Product))
	}

	order, err := h.uc.CreateOrder(c.Request().Context(), usecase.CreateOrderInput{
		UserID:      req.UserID,
		ChatID:      req.ChatID,
		ProductCode: req.Product,
		Amount:      product.Price,
		Description: product.Description,
	})
	if err != nil {
		slog.Error("create order failed", "error", err.Error())
		return echo.NewHTTPError(http.StatusInternalServerError)
	}

	paymentURL, err := h.uc.PaymentURL(order, req.Email)
	if err != nil {
		slog.Error("payment url build failed", "inv_id", order.InvID, "error", err.Error())
		return echo.NewHTTPError(http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, createPaymentResponse{
		InvID:      order.InvID,
		Amount:     order.Amount,
		PaymentURL: paymentURL,
	})
}
