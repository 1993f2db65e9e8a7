package parkapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type staticTokens string

func (s staticTokens) Token(ctx context.Context) (string, error) { return string(s), nil }

func TestCatalogDecodesEnvelope(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/park/attractions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "" {
			t.Error("catalog reads must not require a credential")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"id":"A1","name":"Dragon Coaster","type":"attraction","rating":4.7}]}`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, nil, time.Second)
	pois, err := c.Attractions(context.Background())
	if err != nil {
		t.Fatalf("Attractions() error = %v", err)
	}
	if len(pois) != 1 || pois[0].ID != "A1" || pois[0].Rating != 4.7 {
		t.Errorf("Attractions() = %+v, want one A1 entry", pois)
	}
}

func TestAuthenticatedRequestsCarryBearer(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("Authorization = %q, want Bearer tok-123", got)
		}
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, staticTokens("tok-123"), time.Second)
	if _, err := c.Tickets(context.Background()); err != nil {
		t.Fatalf("Tickets() error = %v", err)
	}
}

func TestMissingCredentialShortCircuits(t *testing.T) {
	called := false
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer ts.Close()

	c := NewClient(ts.URL, staticTokens(""), time.Second)
	_, err := c.PlannerItems(context.Background(), "2026-08-31")
	if err == nil {
		t.Fatal("PlannerItems() without credential should error")
	}
	if called {
		t.Error("no request should reach the backend without a credential")
	}
}

func TestPlannerItemsQuery(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("date"); got != "2026-08-31" {
			t.Errorf("date query = %q, want 2026-08-31", got)
		}
		_, _ = w.Write([]byte(`{"data":[{"id":"srv-1","name":"Dragon Coaster","type":"attraction","priority":"medium"}]}`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, staticTokens("tok"), time.Second)
	items, err := c.PlannerItems(context.Background(), "2026-08-31")
	if err != nil {
		t.Fatalf("PlannerItems() error = %v", err)
	}
	if len(items) != 1 || items[0].ID != "srv-1" {
		t.Errorf("PlannerItems() = %+v, want one srv-1 entry", items)
	}
}

func TestNonOKStatusIsError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "backend down", http.StatusBadGateway)
	}))
	defer ts.Close()

	c := NewClient(ts.URL, staticTokens("tok"), time.Second)
	if _, err := c.Orders(context.Background()); err == nil {
		t.Fatal("Orders() on 502 should error")
	}
}

func TestBookShow(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/bookings/shows" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"data":{"booking_id":"b-9","status":"confirmed"}}`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, staticTokens("tok"), time.Second)
	resp, err := c.BookShow(context.Background(), BookShowRequest{ShowID: "S1", Date: "2026-08-31", Time: "18:00", Seats: 2})
	if err != nil {
		t.Fatalf("BookShow() error = %v", err)
	}
	if resp.BookingID != "b-9" || resp.Status != "confirmed" {
		t.Errorf("BookShow() = %+v, want b-9/confirmed", resp)
	}
}
