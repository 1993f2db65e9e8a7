package domain

import "testing"

func TestProjectTicketStatus(t *testing.T) {
	tests := []struct {
		backend string
		want    HistoryStatus
	}{
		{"valid", StatusPending},
		{"used", StatusCompleted},
		{"refunded", StatusCancelled},
		{"", StatusCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			got := ProjectTicket(TicketRecord{ID: "t1", Status: tt.backend, VisitDate: "2024-02-14"})
			if got.Status != tt.want {
				t.Errorf("ticket status %q -> %q, want %q", tt.backend, got.Status, tt.want)
			}
		})
	}
}

func TestProjectTicketDefaults(t *testing.T) {
	got := ProjectTicket(TicketRecord{ID: "t1", TicketType: "Standard", Status: "valid", VisitDate: "2024-02-14", QRCode: "QR-123"})

	if got.Type != HistoryVisit {
		t.Errorf("Type = %q, want visit", got.Type)
	}
	if got.Date != "2024-02-14" {
		t.Errorf("Date = %q, want 2024-02-14", got.Date)
	}
	if got.Time != DefaultVisitTime {
		t.Errorf("Time = %q, want default %q", got.Time, DefaultVisitTime)
	}
	if got.TicketNumber != "QR-123" {
		t.Errorf("TicketNumber = %q, want QR-123", got.TicketNumber)
	}
	if got.Location == "" {
		t.Error("visit entries should carry a location")
	}
}

func TestProjectOrder(t *testing.T) {
	got := ProjectOrder(OrderRecord{
		ID:           "o1",
		OrderNumber:  "EP-1042",
		Status:       "pending",
		PurchaseDate: "2024-02-15T09:30:00",
		TotalPrice:   59.9,
	})

	if got.Type != HistoryPurchase {
		t.Errorf("Type = %q, want purchase", got.Type)
	}
	if got.Status != StatusPending {
		t.Errorf("Status = %q, want pending", got.Status)
	}
	if got.Date != "2024-02-15" || got.Time != "09:30" {
		t.Errorf("Date/Time = %q/%q, want 2024-02-15/09:30", got.Date, got.Time)
	}
	if got.Amount != 59.9 {
		t.Errorf("Amount = %v, want 59.9", got.Amount)
	}
}

func TestProjectOrderStatus(t *testing.T) {
	tests := []struct {
		backend string
		want    HistoryStatus
	}{
		{"confirmed", StatusCompleted},
		{"pending", StatusPending},
		{"failed", StatusCancelled},
	}

	for _, tt := range tests {
		got := ProjectOrder(OrderRecord{ID: "o", Status: tt.backend, PurchaseDate: "2024-01-01T00:00:00"})
		if got.Status != tt.want {
			t.Errorf("order status %q -> %q, want %q", tt.backend, got.Status, tt.want)
		}
	}
}

func TestSplitTimestamp(t *testing.T) {
	tests := []struct {
		in       string
		wantDate string
		wantTime string
	}{
		{"2024-02-15T09:00:00", "2024-02-15", "09:00"},
		{"2024-02-15 09:00", "2024-02-15", "09:00"},
		{"2024-02-14", "2024-02-14", ""},
		{"", "", ""},
	}

	for _, tt := range tests {
		date, tod := SplitTimestamp(tt.in)
		if date != tt.wantDate || tod != tt.wantTime {
			t.Errorf("SplitTimestamp(%q) = %q/%q, want %q/%q", tt.in, date, tod, tt.wantDate, tt.wantTime)
		}
	}
}

func TestSortFeed(t *testing.T) {
	visit := ProjectTicket(TicketRecord{ID: "t1", Status: "used", VisitDate: "2024-02-14"})
	purchase := ProjectOrder(OrderRecord{ID: "o1", Status: "confirmed", PurchaseDate: "2024-02-15T09:00:00"})

	feed := []HistoryItem{visit, purchase}
	SortFeed(feed)

	if feed[0].ID != "o1" {
		t.Errorf("most recent entry should come first, got %s", feed[0].ID)
	}
	if feed[1].ID != "t1" {
		t.Errorf("older entry should come last, got %s", feed[1].ID)
	}
}

func TestSortFeedStableOnTies(t *testing.T) {
	a := HistoryItem{ID: "a", Date: "2024-02-14", Time: "09:00"}
	b := HistoryItem{ID: "b", Date: "2024-02-14", Time: "09:00"}

	feed := []HistoryItem{a, b}
	SortFeed(feed)

	if feed[0].ID != "a" || feed[1].ID != "b" {
		t.Errorf("ties should keep input order, got %s,%s", feed[0].ID, feed[1].ID)
	}
}
