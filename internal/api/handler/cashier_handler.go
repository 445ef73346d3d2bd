package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/madahotspot/voucher-console/internal/core/domain"
	"github.com/madahotspot/voucher-console/internal/core/ports"
	"github.com/madahotspot/voucher-console/internal/core/store"
)

// CashierHandler renders the cashier management views.
type CashierHandler struct {
	registry *store.Registry
	audit    ports.AuditRecorder
}

func NewCashierHandler(registry *store.Registry, audit ports.AuditRecorder) *CashierHandler {
	return &CashierHandler{registry: registry, audit: audit}
}

type cashierRequest struct {
	Username      string `json:"username"      validate:"required"`
	Email         string `json:"email"         validate:"required,email"`
	Password      string `json:"password"`
	PointOfSaleID string `json:"pointOfSaleId" validate:"required"`
	IsActive      *bool  `json:"isActive"`
}

func (r cashierRequest) payload() ports.CashierPayload {
	return ports.CashierPayload{
		Username:      r.Username,
		Email:         r.Email,
		Password:      r.Password,
		PointOfSaleID: r.PointOfSaleID,
		IsActive:      r.IsActive,
	}
}

type cashierListResponse struct {
	Cashiers  []domain.Cashier `json:"cashiers"`
	IsLoading bool             `json:"isLoading"`
	LastError string           `json:"lastError,omitempty"`
}

// List fetches the cashier collection and renders its state.
//
// @Summary      List cashiers
// @Tags         cashiers
// @Produce      json
// @Success      200  {object}  cashierListResponse
// @Router       /cashier [get]
func (h *CashierHandler) List(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	st := h.registry.StateFor(session.ID)
	if _, err := st.Cashiers.FetchAll(c.Request().Context(), session.UpstreamCookie); err != nil {
		return err
	}

	cashiers, loading, lastErr := st.Cashiers.Snapshot()
	return c.JSON(http.StatusOK, cashierListResponse{Cashiers: cashiers, IsLoading: loading, LastError: lastErr})
}

// Create adds a cashier account. Password is required on create only.
//
// @Summary      Create a cashier
// @Tags         cashiers
// @Accept       json
// @Produce      json
// @Param        body  body      cashierRequest  true  "Cashier details"
// @Success      201   {object}  map[string]domain.Cashier
// @Router       /cashier [post]
func (h *CashierHandler) Create(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req cashierRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if req.Password == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "password is required"})
	}

	st := h.registry.StateFor(session.ID)
	created, err := st.Cashiers.Create(c.Request().Context(), session.UpstreamCookie, req.payload())
	if err != nil {
		return err
	}

	h.recordAudit(session, "create", created.ID)
	return c.JSON(http.StatusCreated, map[string]*domain.Cashier{"cashier": created})
}

// Update modifies a cashier account. An empty password leaves it unchanged.
//
// @Summary      Update a cashier
// @Tags         cashiers
// @Accept       json
// @Produce      json
// @Param        id    path      string          true  "Cashier id"
// @Param        body  body      cashierRequest  true  "Cashier details"
// @Success      200   {object}  map[string]domain.Cashier
// @Router       /cashier/{id} [put]
func (h *CashierHandler) Update(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req cashierRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	st := h.registry.StateFor(session.ID)
	updated, err := st.Cashiers.Update(c.Request().Context(), session.UpstreamCookie, c.Param("id"), req.payload())
	if err != nil {
		return err
	}

	h.recordAudit(session, "update", updated.ID)
	return c.JSON(http.StatusOK, map[string]*domain.Cashier{"cashier": updated})
}

// Delete removes a cashier account.
//
// @Summary      Delete a cashier
// @Tags         cashiers
// @Produce      json
// @Param        id  path  string  true  "Cashier id"
// @Success      200  {object}  map[string]string
// @Router       /cashier/{id} [delete]
func (h *CashierHandler) Delete(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	st := h.registry.StateFor(session.ID)
	if err := st.Cashiers.Delete(c.Request().Context(), session.UpstreamCookie, c.Param("id")); err != nil {
		return err
	}

	h.recordAudit(session, "delete", c.Param("id"))
	return c.JSON(http.StatusOK, map[string]string{"status": "deleted"})
}

// Stats renders the per-cashier sales aggregate.
//
// @Summary      Cashier statistics
// @Tags         cashiers
// @Produce      json
// @Param        id  path  string  true  "Cashier id"
// @Success      200  {object}  map[string]any
// @Router       /cashier/{id}/stats [get]
func (h *CashierHandler) Stats(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	q := statsQueryFrom(c)
	q.CashierID = c.Param("id")

	st := h.registry.StateFor(session.ID)
	stats, err := st.Sales.CashierStats(c.Request().Context(), session.UpstreamCookie, q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"stats": stats})
}

func (h *CashierHandler) recordAudit(session *domain.Session, action, id string) {
	h.audit.Record(domain.AuditEntry{
		Actor:      session.Principal.Username,
		Role:       session.Role(),
		Action:     action,
		Resource:   "cashier",
		ResourceID: id,
		At:         time.Now().UTC(),
	})
}
