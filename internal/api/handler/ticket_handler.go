package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/madahotspot/voucher-console/internal/api/metrics"
	"github.com/madahotspot/voucher-console/internal/core/domain"
	"github.com/madahotspot/voucher-console/internal/core/ports"
	"github.com/madahotspot/voucher-console/internal/core/store"
)

// TicketHandler drives the sell flow: purchase a voucher, show the code,
// clear it for the next customer.
type TicketHandler struct {
	registry *store.Registry
	audit    ports.AuditRecorder
}

func NewTicketHandler(registry *store.Registry, audit ports.AuditRecorder) *TicketHandler {
	return &TicketHandler{registry: registry, audit: audit}
}

type purchaseRequest struct {
	PlanID        string `json:"planId"        validate:"required"`
	PaymentMethod string `json:"paymentMethod" validate:"required"`
	PhoneNumber   string `json:"phoneNumber"`
	CustomerEmail string `json:"customerEmail" validate:"omitempty,email"`
}

// Purchase buys a voucher for the selected plan and returns the ticket code.
//
// @Summary      Purchase a ticket
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Param        body  body      purchaseRequest  true  "Purchase details"
// @Success      201   {object}  map[string]domain.Ticket
// @Router       /tickets/purchase [post]
func (h *TicketHandler) Purchase(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req purchaseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	st := h.registry.StateFor(session.ID)
	ticket, err := st.Tickets.Purchase(c.Request().Context(), session.UpstreamCookie, ports.PurchaseInput{
		PlanID:        req.PlanID,
		PaymentMethod: req.PaymentMethod,
		PhoneNumber:   req.PhoneNumber,
		CustomerEmail: req.CustomerEmail,
	})
	if err != nil {
		return err
	}

	metrics.TicketsSoldTotal.WithLabelValues(req.PaymentMethod).Inc()
	h.audit.Record(domain.AuditEntry{
		Actor:      session.Principal.Username,
		Role:       session.Role(),
		Action:     "purchase",
		Resource:   "ticket",
		ResourceID: ticket.Code,
		At:         time.Now().UTC(),
	})
	return c.JSON(http.StatusCreated, map[string]*domain.Ticket{"ticket": ticket})
}

// Verify checks whether a voucher code is valid and how much time remains.
//
// @Summary      Verify a ticket code
// @Tags         tickets
// @Produce      json
// @Param        code  path  string  true  "Ticket code"
// @Success      200   {object}  map[string]domain.TicketVerification
// @Router       /tickets/verify/{code} [get]
func (h *TicketHandler) Verify(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	st := h.registry.StateFor(session.ID)
	verification, err := st.Tickets.Verify(c.Request().Context(), session.UpstreamCookie, c.Param("code"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]*domain.TicketVerification{"verification": verification})
}

// Current renders the last purchased ticket, if any.
//
// @Summary      Current ticket
// @Tags         tickets
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /tickets/current [get]
func (h *TicketHandler) Current(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	st := h.registry.StateFor(session.ID)
	ticket, lastErr := st.Tickets.Current()
	resp := map[string]any{"ticket": ticket}
	if lastErr != "" {
		resp["lastError"] = lastErr
	}
	return c.JSON(http.StatusOK, resp)
}

// Clear discards the displayed ticket so the next sale starts clean.
//
// @Summary      Clear the current ticket
// @Tags         tickets
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /tickets/current [delete]
func (h *TicketHandler) Clear(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	h.registry.StateFor(session.ID).Tickets.Clear()
	return c.JSON(http.StatusOK, map[string]string{"status": "cleared"})
}
