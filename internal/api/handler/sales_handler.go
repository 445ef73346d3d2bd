package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/madahotspot/voucher-console/internal/core/domain"
	"github.com/madahotspot/voucher-console/internal/core/ports"
	"github.com/madahotspot/voucher-console/internal/core/store"
)

// SalesHandler renders sales history and statistics views.
type SalesHandler struct {
	registry *store.Registry
}

func NewSalesHandler(registry *store.Registry) *SalesHandler {
	return &SalesHandler{registry: registry}
}

type salesHistoryResponse struct {
	Sales     []domain.Sale `json:"sales"`
	IsLoading bool          `json:"isLoading"`
	LastError string        `json:"lastError,omitempty"`
}

// History fetches the sales list. Cashiers only ever see their own sales;
// the scope is forced server side regardless of what the query asks for.
//
// @Summary      Sales history
// @Tags         sales
// @Produce      json
// @Param        limit          query  int     false  "Maximum rows"
// @Param        pointOfSaleId  query  string  false  "Filter by point of sale"
// @Param        cashierId      query  string  false  "Filter by cashier"
// @Success      200  {object}  salesHistoryResponse
// @Router       /sales/history [get]
func (h *SalesHandler) History(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	q := ports.HistoryQuery{
		PointOfSaleID: c.QueryParam("pointOfSaleId"),
		CashierID:     c.QueryParam("cashierId"),
	}
	if raw := c.QueryParam("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 {
			q.Limit = limit
		}
	}
	if session.Role() == domain.RoleCashier {
		q.CashierID = session.Principal.ID
		q.PointOfSaleID = ""
	}

	st := h.registry.StateFor(session.ID)
	if _, err := st.Sales.FetchHistory(c.Request().Context(), session.UpstreamCookie, q); err != nil {
		return err
	}

	sales, loading, lastErr := st.Sales.Snapshot()
	return c.JSON(http.StatusOK, salesHistoryResponse{Sales: sales, IsLoading: loading, LastError: lastErr})
}

// Stats fetches the aggregated sales statistics for the dashboard. Cashiers
// get their own aggregate only, same scoping rule as History.
//
// @Summary      Sales statistics
// @Tags         sales
// @Produce      json
// @Param        period         query  string  false  "Aggregation period (day, week, month)"
// @Param        startDate      query  string  false  "Range start, ISO date"
// @Param        endDate        query  string  false  "Range end, ISO date"
// @Param        pointOfSaleId  query  string  false  "Filter by point of sale"
// @Success      200  {object}  map[string]any
// @Router       /sales/stats [get]
func (h *SalesHandler) Stats(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	q := statsQueryFrom(c)
	if session.Role() == domain.RoleCashier {
		q.CashierID = session.Principal.ID
		q.PointOfSaleID = ""
	}

	st := h.registry.StateFor(session.ID)
	if _, err := st.Sales.FetchStats(c.Request().Context(), session.UpstreamCookie, q); err != nil {
		return err
	}

	stats, statsErr := st.Sales.Stats()
	resp := map[string]any{"stats": stats}
	if statsErr != "" {
		resp["lastError"] = statsErr
	}
	return c.JSON(http.StatusOK, resp)
}
