package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/madahotspot/voucher-console/internal/core/domain"
	"github.com/madahotspot/voucher-console/internal/core/ports"
	"github.com/madahotspot/voucher-console/internal/core/store"
)

// POSHandler renders the points-of-sale views.
type POSHandler struct {
	registry *store.Registry
	audit    ports.AuditRecorder
}

func NewPOSHandler(registry *store.Registry, audit ports.AuditRecorder) *POSHandler {
	return &POSHandler{registry: registry, audit: audit}
}

type mikrotikRequest struct {
	Host     string `json:"host"     validate:"required"`
	User     string `json:"user"     validate:"required"`
	Password string `json:"password"`
}

type posRequest struct {
	Name     string          `json:"name"     validate:"required"`
	Location string          `json:"location" validate:"required"`
	Mikrotik mikrotikRequest `json:"mikrotikConfig"`
	IsActive *bool           `json:"isActive"`
}

func (r posRequest) payload() ports.POSPayload {
	return ports.POSPayload{
		Name:     r.Name,
		Location: r.Location,
		Mikrotik: domain.MikrotikConfig{
			Host:     r.Mikrotik.Host,
			User:     r.Mikrotik.User,
			Password: r.Mikrotik.Password,
		},
		IsActive: r.IsActive,
	}
}

type posListResponse struct {
	PointsOfSale []domain.PointOfSale `json:"pointsOfSale"`
	IsLoading    bool                 `json:"isLoading"`
	LastError    string               `json:"lastError,omitempty"`
}

// List fetches the points-of-sale collection and renders its state.
//
// @Summary      List points of sale
// @Tags         pos
// @Produce      json
// @Success      200  {object}  posListResponse
// @Router       /pos [get]
func (h *POSHandler) List(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	st := h.registry.StateFor(session.ID)
	if _, err := st.POS.FetchAll(c.Request().Context(), session.UpstreamCookie); err != nil {
		return err
	}

	points, loading, lastErr := st.POS.Snapshot()
	return c.JSON(http.StatusOK, posListResponse{PointsOfSale: points, IsLoading: loading, LastError: lastErr})
}

// Create adds a point of sale.
//
// @Summary      Create a point of sale
// @Tags         pos
// @Accept       json
// @Produce      json
// @Param        body  body      posRequest  true  "Point of sale details"
// @Success      201   {object}  map[string]domain.PointOfSale
// @Router       /pos [post]
func (h *POSHandler) Create(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req posRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	st := h.registry.StateFor(session.ID)
	created, err := st.POS.Create(c.Request().Context(), session.UpstreamCookie, req.payload())
	if err != nil {
		return err
	}

	h.recordAudit(session, "create", created.ID)
	return c.JSON(http.StatusCreated, map[string]*domain.PointOfSale{"pointOfSale": created})
}

// Update modifies a point of sale.
//
// @Summary      Update a point of sale
// @Tags         pos
// @Accept       json
// @Produce      json
// @Param        id    path      string      true  "Point of sale id"
// @Param        body  body      posRequest  true  "Point of sale details"
// @Success      200   {object}  map[string]domain.PointOfSale
// @Router       /pos/{id} [put]
func (h *POSHandler) Update(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req posRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	st := h.registry.StateFor(session.ID)
	updated, err := st.POS.Update(c.Request().Context(), session.UpstreamCookie, c.Param("id"), req.payload())
	if err != nil {
		return err
	}

	h.recordAudit(session, "update", updated.ID)
	return c.JSON(http.StatusOK, map[string]*domain.PointOfSale{"pointOfSale": updated})
}

// Delete removes a point of sale.
//
// @Summary      Delete a point of sale
// @Tags         pos
// @Produce      json
// @Param        id  path  string  true  "Point of sale id"
// @Success      200  {object}  map[string]string
// @Router       /pos/{id} [delete]
func (h *POSHandler) Delete(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	st := h.registry.StateFor(session.ID)
	if err := st.POS.Delete(c.Request().Context(), session.UpstreamCookie, c.Param("id")); err != nil {
		return err
	}

	h.recordAudit(session, "delete", c.Param("id"))
	return c.JSON(http.StatusOK, map[string]string{"status": "deleted"})
}

// Stats renders the statistics report for one point of sale.
//
// @Summary      Point of sale statistics
// @Tags         pos
// @Produce      json
// @Param        id      path   string  true   "Point of sale id"
// @Param        period  query  string  false  "Aggregation period (day, week, month)"
// @Success      200  {object}  map[string]any
// @Router       /pos/{id}/stats [get]
func (h *POSHandler) Stats(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	st := h.registry.StateFor(session.ID)
	stats, err := st.POS.Stats(c.Request().Context(), session.UpstreamCookie, c.Param("id"), statsQueryFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"stats": stats})
}

func (h *POSHandler) recordAudit(session *domain.Session, action, id string) {
	h.audit.Record(domain.AuditEntry{
		Actor:      session.Principal.Username,
		Role:       session.Role(),
		Action:     action,
		Resource:   "pos",
		ResourceID: id,
		At:         time.Now().UTC(),
	})
}

// statsQueryFrom collects the shared statistics filters from the query string.
func statsQueryFrom(c echo.Context) ports.StatsQuery {
	return ports.StatsQuery{
		Period:        c.QueryParam("period"),
		StartDate:     c.QueryParam("startDate"),
		EndDate:       c.QueryParam("endDate"),
		PointOfSaleID: c.QueryParam("pointOfSaleId"),
		CashierID:     c.QueryParam("cashierId"),
	}
}
