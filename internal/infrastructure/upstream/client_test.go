package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/madahotspot/voucher-console/internal/core/domain"
	"github.com/madahotspot/voucher-console/internal/core/ports"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 0, zerolog.Nop())
}

func TestAuthAPI_LoginCapturesUpstreamCookie(t *testing.T) {
	var gotBody map[string]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" || r.Method != http.MethodPost {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		http.SetCookie(w, &http.Cookie{Name: "connect.sid", Value: "abc123"})
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": true,
			"user": {"_id": "u1", "username": "admin", "email": "admin@example.com", "role": "super_admin"}
		}`))
	})

	principal, cookies, err := NewAuthAPI(client).Login(context.Background(), "admin@example.com", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if gotBody["email"] != "admin@example.com" || gotBody["password"] != "secret" {
		t.Fatalf("credentials not forwarded: %v", gotBody)
	}
	if principal.ID != "u1" || principal.Role != "super_admin" {
		t.Fatalf("unexpected principal: %+v", principal)
	}
	if cookies != "connect.sid=abc123" {
		t.Fatalf("upstream cookie not captured, got %q", cookies)
	}
}

func TestClient_CookieReplayedOnRequests(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Cookie"); got != "connect.sid=abc123" {
			t.Fatalf("expected session cookie replayed, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": true, "plans": []}`))
	})

	if _, err := NewPlanAPI(client).List(context.Background(), "connect.sid=abc123"); err != nil {
		t.Fatalf("list: %v", err)
	}
}

func TestClient_UpstreamMessageSurfacedVerbatim(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"success": false, "message": "plan not found"}`))
	})

	_, err := NewPlanAPI(client).List(context.Background(), "")
	if !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
	if got := err.Error(); got != "upstream request failed: plan not found" {
		t.Fatalf("upstream message not surfaced verbatim, got %q", got)
	}
}

func TestClient_SuccessFalseWithOKStatusIsAnError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": false, "message": "insufficient stock"}`))
	})

	_, err := NewPlanAPI(client).List(context.Background(), "")
	if !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("expected ErrUpstream on success=false, got %v", err)
	}
}

func TestClient_UnauthorizedMapsToInvalidCredentials(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success": false, "message": "wrong password"}`))
	})

	_, _, err := NewAuthAPI(client).Login(context.Background(), "a@b.c", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestSalesAPI_HistoryQueryParams(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("limit") != "50" || q.Get("cashierId") != "c1" {
			t.Fatalf("unexpected query: %v", q)
		}
		if q.Has("pointOfSaleId") {
			t.Fatalf("zero-value filter must be omitted")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": true,
			"sales": [{
				"_id": "s1",
				"ticketId": {"code": "WIFI-1"},
				"planId": {"name": "5 Heures"},
				"cashierId": {"username": "rakoto"},
				"paymentMethod": "cash",
				"amount": 2000
			}]
		}`))
	})

	sales, err := NewSalesAPI(client).History(context.Background(), "", ports.HistoryQuery{Limit: 50, CashierID: "c1"})
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(sales) != 1 {
		t.Fatalf("expected 1 sale, got %d", len(sales))
	}
	sale := sales[0]
	if sale.ID != "s1" || sale.TicketCode != "WIFI-1" || sale.PlanName != "5 Heures" || sale.CashierUsername != "rakoto" {
		t.Fatalf("populated references not flattened: %+v", sale)
	}
	if sale.Amount != 2000 {
		t.Fatalf("unexpected amount: %v", sale.Amount)
	}
}

func TestSalesAPI_HistoryUnpopulatedReferences(t *testing.T) {
	// The upstream may return plain id strings instead of populated objects.
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": true,
			"sales": [{"_id": "s1", "ticketId": "t1", "planId": "p1", "paymentMethod": "mvola", "amount": 500}]
		}`))
	})

	sales, err := NewSalesAPI(client).History(context.Background(), "", ports.HistoryQuery{})
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if sales[0].PaymentMethod != "mvola" || sales[0].Amount != 500 {
		t.Fatalf("unexpected sale: %+v", sales[0])
	}
}

func TestPlanAPI_CreateDecodesServerCopy(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/plans" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{
			"success": true,
			"plan": {"_id": "p9", "name": "5 Heures", "duration": 5, "price": 2000, "isActive": true}
		}`))
	})

	plan, err := NewPlanAPI(client).Create(context.Background(), "", ports.PlanPayload{Name: "5 Heures", Duration: 5, Price: 2000})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if plan.ID != "p9" || plan.Duration != 5 || plan.Price != 2000 || !plan.IsActive {
		t.Fatalf("unexpected plan: %+v", plan)
	}
}

func TestTicketAPI_VerifyEscapesCode(t *testing.T) {
	// A code with path and query metacharacters must stay one path segment.
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.EscapedPath(); got != "/tickets/verify/WIFI%2F1%3Fadmin=1" {
			t.Fatalf("code not escaped in path, got %q", got)
		}
		if r.URL.RawQuery != "" {
			t.Fatalf("code must not smuggle a query string, got %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": true, "valid": false, "message": "unknown code"}`))
	})

	verdict, err := NewTicketAPI(client).Verify(context.Background(), "", "WIFI/1?admin=1")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if verdict.Valid {
		t.Fatalf("expected invalid verdict")
	}
}

func TestResourceLabel(t *testing.T) {
	cases := map[string]string{
		"/auth/login":         "auth",
		"/plans":              "plans",
		"/sales/cashier-stats": "sales",
		"":                    "",
	}
	for path, want := range cases {
		if got := resourceLabel(path); got != want {
			t.Fatalf("resourceLabel(%q) = %q, want %q", path, got, want)
		}
	}
}
