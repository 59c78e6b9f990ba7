package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/movieplatform/movie-api/internal/api/metrics"
	"github.com/movieplatform/movie-api/internal/core/domain"
	"github.com/movieplatform/movie-api/internal/core/ports"
)

type SubscriptionHandler struct {
	service ports.SubscriptionService
}

func NewSubscriptionHandler(service ports.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{service: service}
}

// Create handles POST /sub/create. It persists the subscription and charges
// the subscriber's wallet.
//
// @Summary      Create and pay for a subscription
// @Tags         subscription
// @Accept       json,mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createSubscriptionRequest  true  "Subscription details"
// @Success      201   {object}  createSubscriptionResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  paymentFailedResponse
// @Router       /sub/create [post]
func (h *SubscriptionHandler) Create(c echo.Context) error {
	var req createSubscriptionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	start := time.Now()
	res, err := h.service.Create(c.Request().Context(), ports.CreateSubscriptionInput{
		Name:             req.Name,
		Description:      req.Description,
		Price:            req.Price,
		Duration:         req.Duration,
		UserNumber:       req.UserNumber,
		SubscriptionType: req.SubscriptionType,
	})
	if err != nil {
		var pe *domain.PaymentError
		if errors.As(err, &pe) {
			metrics.SubscriptionsCreatedTotal.WithLabelValues(req.SubscriptionType).Inc()
			metrics.PaymentDuration.WithLabelValues("failed").Observe(time.Since(start).Seconds())
			return c.JSON(http.StatusInternalServerError, paymentFailedResponse{
				Error:        domain.ErrPaymentFailed.Error(),
				Subscription: pe.Subscription,
			})
		}
		return err
	}

	metrics.SubscriptionsCreatedTotal.WithLabelValues(req.SubscriptionType).Inc()
	metrics.PaymentDuration.WithLabelValues("paid").Observe(time.Since(start).Seconds())
	return c.JSON(http.StatusCreated, createSubscriptionResponse{
		Message:      "Subscription created successfully",
		Subscription: res.Subscription,
		Payment:      res.Payment,
	})
}

// List handles GET /sub/all.
//
// @Summary      List subscriptions, newest first
// @Tags         subscription
// @Produce      json
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Page size (default 10, max 100)"
// @Success      200    {object}  subscriptionPageResponse
// @Router       /sub/all [get]
func (h *SubscriptionHandler) List(c echo.Context) error {
	var q listSubscriptionsQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "page and limit must be integers")
	}

	res, err := h.service.List(c.Request().Context(), ports.ListSubscriptionsInput{Page: q.Page, Limit: q.Limit})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSubscriptionPage(res))
}

// Get handles GET /sub/:id.
//
// @Summary      Get a subscription by id
// @Tags         subscription
// @Produce      json
// @Param        id   path      string  true  "Subscription id"
// @Success      200  {object}  subscriptionResponse
// @Failure      404  {object}  errorResponse
// @Router       /sub/{id} [get]
func (h *SubscriptionHandler) Get(c echo.Context) error {
	sub, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, subscriptionResponse{Message: "Subscription fetched successfully", Subscription: sub})
}

// Update handles PUT /sub/update/:id and reprices the subscription.
//
// @Summary      Update a subscription
// @Tags         subscription
// @Accept       json,mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                     true  "Subscription id"
// @Param        body  body      updateSubscriptionRequest  true  "New plan and contact details"
// @Success      200   {object}  subscriptionResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /sub/update/{id} [put]
func (h *SubscriptionHandler) Update(c echo.Context) error {
	var req updateSubscriptionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	sub, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateSubscriptionInput{
		Name:             req.Name,
		Email:            req.Email,
		Phone:            req.Phone,
		SubscriptionType: req.SubscriptionType,
		Duration:         req.SubscriptionDuration,
		PaymentMethod:    req.SubscriptionPaymentMethod,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, subscriptionResponse{Message: "Subscription updated successfully", Subscription: sub})
}

// UpdateStatus handles PUT /sub/updateStatus/:id. Admin only.
//
// @Summary      Set subscription and payment status
// @Tags         subscription
// @Accept       json,mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                           true  "Subscription id"
// @Param        body  body      updateSubscriptionStatusRequest  true  "Statuses"
// @Success      200   {object}  subscriptionResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /sub/updateStatus/{id} [put]
func (h *SubscriptionHandler) UpdateStatus(c echo.Context) error {
	var req updateSubscriptionStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	sub, err := h.service.UpdateStatus(c.Request().Context(), c.Param("id"), req.SubscriptionStatus, req.SubscriptionPaymentStatus)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, subscriptionResponse{Message: "Subscription status updated", Subscription: sub})
}
