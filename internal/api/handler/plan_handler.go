package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/madahotspot/voucher-console/internal/core/domain"
	"github.com/madahotspot/voucher-console/internal/core/ports"
	"github.com/madahotspot/voucher-console/internal/core/store"
)

// PlanHandler renders the pricing-plan views.
type PlanHandler struct {
	registry *store.Registry
	audit    ports.AuditRecorder
}

func NewPlanHandler(registry *store.Registry, audit ports.AuditRecorder) *PlanHandler {
	return &PlanHandler{registry: registry, audit: audit}
}

type planRequest struct {
	Name        string  `json:"name"        validate:"required"`
	Duration    int     `json:"duration"    validate:"required,gt=0"`
	Price       float64 `json:"price"       validate:"required,gt=0"`
	Description string  `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

func (r planRequest) payload() ports.PlanPayload {
	return ports.PlanPayload{
		Name:        r.Name,
		Duration:    r.Duration,
		Price:       r.Price,
		Description: r.Description,
		IsActive:    r.IsActive,
	}
}

type planListResponse struct {
	Plans     []domain.Plan `json:"plans"`
	IsLoading bool          `json:"isLoading"`
	LastError string        `json:"lastError,omitempty"`
}

// List fetches the plan collection and renders its state.
//
// @Summary      List pricing plans
// @Tags         plans
// @Produce      json
// @Success      200  {object}  planListResponse
// @Router       /plans [get]
func (h *PlanHandler) List(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	st := h.registry.StateFor(session.ID)
	if _, err := st.Plans.FetchAll(c.Request().Context(), session.UpstreamCookie); err != nil {
		return err
	}

	plans, loading, lastErr := st.Plans.Snapshot()
	return c.JSON(http.StatusOK, planListResponse{Plans: plans, IsLoading: loading, LastError: lastErr})
}

// ListActive renders only active plans, used by the sell view.
//
// @Summary      List active plans
// @Tags         plans
// @Produce      json
// @Success      200  {object}  planListResponse
// @Router       /plans/active [get]
func (h *PlanHandler) ListActive(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	st := h.registry.StateFor(session.ID)
	plans, err := st.Plans.FetchAll(c.Request().Context(), session.UpstreamCookie)
	if err != nil {
		return err
	}

	active := make([]domain.Plan, 0, len(plans))
	for _, p := range plans {
		if p.IsActive {
			active = append(active, p)
		}
	}
	return c.JSON(http.StatusOK, planListResponse{Plans: active})
}

// Create adds a plan.
//
// @Summary      Create a pricing plan
// @Tags         plans
// @Accept       json
// @Produce      json
// @Param        body  body      planRequest  true  "Plan details"
// @Success      201   {object}  map[string]domain.Plan
// @Failure      400   {object}  map[string]string
// @Router       /plans [post]
func (h *PlanHandler) Create(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req planRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	st := h.registry.StateFor(session.ID)
	created, err := st.Plans.Create(c.Request().Context(), session.UpstreamCookie, req.payload())
	if err != nil {
		return err
	}

	h.recordAudit(session, "create", created.ID)
	return c.JSON(http.StatusCreated, map[string]*domain.Plan{"plan": created})
}

// Update modifies a plan.
//
// @Summary      Update a pricing plan
// @Tags         plans
// @Accept       json
// @Produce      json
// @Param        id    path      string       true  "Plan id"
// @Param        body  body      planRequest  true  "Plan details"
// @Success      200   {object}  map[string]domain.Plan
// @Router       /plans/{id} [put]
func (h *PlanHandler) Update(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req planRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	st := h.registry.StateFor(session.ID)
	updated, err := st.Plans.Update(c.Request().Context(), session.UpstreamCookie, c.Param("id"), req.payload())
	if err != nil {
		return err
	}

	h.recordAudit(session, "update", updated.ID)
	return c.JSON(http.StatusOK, map[string]*domain.Plan{"plan": updated})
}

// Delete removes a plan.
//
// @Summary      Delete a pricing plan
// @Tags         plans
// @Produce      json
// @Param        id  path  string  true  "Plan id"
// @Success      200  {object}  map[string]string
// @Router       /plans/{id} [delete]
func (h *PlanHandler) Delete(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	st := h.registry.StateFor(session.ID)
	if err := st.Plans.Delete(c.Request().Context(), session.UpstreamCookie, c.Param("id")); err != nil {
		return err
	}

	h.recordAudit(session, "delete", c.Param("id"))
	return c.JSON(http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *PlanHandler) recordAudit(session *domain.Session, action, id string) {
	h.audit.Record(domain.AuditEntry{
		Actor:      session.Principal.Username,
		Role:       session.Role(),
		Action:     action,
		Resource:   "plan",
		ResourceID: id,
		At:         time.Now().UTC(),
	})
}
