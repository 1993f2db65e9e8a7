package domain

import (
	"sort"
	"strings"
)

// HistoryType tags the source resource a feed entry was projected from.
type HistoryType string

const (
	HistoryVisit    HistoryType = "visit"
	HistoryPurchase HistoryType = "purchase"
	HistoryBooking  HistoryType = "booking"
)

// HistoryStatus is the normalized status shared by all feed entries.
// Each backend resource names its states differently; the projection
// functions below collapse them into this set.
type HistoryStatus string

const (
	StatusCompleted HistoryStatus = "completed"
	StatusPending   HistoryStatus = "pending"
	StatusCancelled HistoryStatus = "cancelled"
)

// DefaultVisitTime is used when a ticket carries no time of day.
const DefaultVisitTime = "09:00"

// HistoryItem is a derived, read-only projection. It is computed fresh on
// every read and never persisted by this service.
type HistoryItem struct {
	ID           string        `json:"id"`
	Type         HistoryType   `json:"type"`
	Title        string        `json:"title"`
	Description  string        `json:"description,omitempty"`
	Date         string        `json:"date"`
	Time         string        `json:"time"`
	Location     string        `json:"location,omitempty"`
	Amount       float64       `json:"amount,omitempty"`
	TicketNumber string        `json:"ticket_number,omitempty"`
	Status       HistoryStatus `json:"status"`
}

// TicketRecord is the ticket resource as the backend serves it.
type TicketRecord struct {
	ID         string  `json:"id"`
	TicketType string  `json:"ticket_type"`
	Status     string  `json:"status"`
	VisitDate  string  `json:"visit_date"`
	QRCode     string  `json:"qr_code,omitempty"`
	Price      float64 `json:"price,omitempty"`
}

// OrderRecord is the order resource as the backend serves it.
type OrderRecord struct {
	ID           string  `json:"id"`
	OrderNumber  string  `json:"order_number"`
	Status       string  `json:"status"`
	PurchaseDate string  `json:"purchase_date"`
	TotalPrice   float64 `json:"total_price"`
}

// ProjectTicket maps a ticket to a visit entry.
func ProjectTicket(t TicketRecord) HistoryItem {
	date, tod := SplitTimestamp(t.VisitDate)
	if tod == "" {
		tod = DefaultVisitTime
	}

	var status HistoryStatus
	switch t.Status {
	case "valid":
		status = StatusPending
	case "used":
		status = StatusCompleted
	default:
		status = StatusCancelled
	}

	ticketNumber := t.QRCode
	if ticketNumber == "" {
		ticketNumber = t.ID
	}

	return HistoryItem{
		ID:           t.ID,
		Type:         HistoryVisit,
		Title:        "Park visit",
		Description:  t.TicketType + " ticket",
		Date:         date,
		Time:         tod,
		Location:     "EnjoyPark",
		TicketNumber: ticketNumber,
		Status:       status,
	}
}

// ProjectOrder maps an order to a purchase entry.
func ProjectOrder(o OrderRecord) HistoryItem {
	date, tod := SplitTimestamp(o.PurchaseDate)

	var status HistoryStatus
	switch o.Status {
	case "confirmed":
		status = StatusCompleted
	case "pending":
		status = StatusPending
	default:
		status = StatusCancelled
	}

	return HistoryItem{
		ID:          o.ID,
		Type:        HistoryPurchase,
		Title:       "Shop order " + o.OrderNumber,
		Description: "Online purchase",
		Date:        date,
		Time:        tod,
		Amount:      o.TotalPrice,
		Status:      status,
	}
}

// SplitTimestamp separates a backend timestamp into its date and
// time-of-day parts. Accepts "2006-01-02T15:04:05", the space-separated
// variant, and bare dates (empty time part).
func SplitTimestamp(ts string) (date, tod string) {
	sep := strings.IndexAny(ts, "T ")
	if sep < 0 {
		return ts, ""
	}
	date, tod = ts[:sep], ts[sep+1:]
	if len(tod) > 5 {
		tod = tod[:5] // HH:MM is enough for feed ordering and display
	}
	return date, tod
}

// SortFeed orders entries most recent first. The sort is stable, so
// same-timestamp entries keep their tickets-then-orders input order.
func SortFeed(items []HistoryItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Date+"T"+items[i].Time > items[j].Date+"T"+items[j].Time
	})
}
