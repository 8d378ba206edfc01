package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrderMailEscapesInterpolatedFields(t *testing.T) {
	var received struct {
		To      string `json:"to"`
		Subject string `json:"subject"`
		HTML    string `json:"html"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	svc := NewEmailService(server.URL, "secret-token", "admin@printly.shop")

	order := OrderEmail{
		OrderNumber:   "PL-123",
		CustomerName:  `<script>alert("x")</script>`,
		CustomerEmail: "buyer@example.com",
		Street:        "1 Filament <b>Way</b>",
		City:          "Lyon",
		Items: []OrderEmailItem{
			{Name: `Benchy "special" & rare`, Quantity: 2, UnitPrice: 9.5},
		},
		Total: 19,
		Notes: "<img src=x onerror=alert(1)>",
	}

	require.NoError(t, svc.NotifyCustomerConfirmation(order))

	require.Equal(t, "buyer@example.com", received.To)
	require.Contains(t, received.Subject, "PL-123")
	require.NotContains(t, received.HTML, "<script>")
	require.NotContains(t, received.HTML, "<img src=x")
	require.NotContains(t, received.HTML, "<b>Way</b>")
	require.Contains(t, received.HTML, "&lt;script&gt;")
	require.Contains(t, received.HTML, "Benchy &#34;special&#34; &amp; rare")
}

func TestNotifyLowStockRendersTable(t *testing.T) {
	var html string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			To   string `json:"to"`
			HTML string `json:"html"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Equal(t, "admin@printly.shop", payload.To)
		html = payload.HTML
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	svc := NewEmailService(server.URL, "", "admin@printly.shop")

	err := svc.NotifyLowStock([]LowStockProduct{
		{Name: "PLA Spool", Stock: 0},
		{Name: "Nozzle 0.4mm", Stock: 3},
	}, 5)
	require.NoError(t, err)

	require.Contains(t, html, "PLA Spool")
	require.Contains(t, html, "Nozzle 0.4mm")
	require.Contains(t, html, "threshold of 5")
}

func TestSendReportsNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	svc := NewEmailService(server.URL, "", "admin@printly.shop")
	err := svc.NotifyAdminNewOrder(OrderEmail{OrderNumber: "PL-9", CustomerName: "x"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "502")
}

func TestSendSkippedWhenUnconfigured(t *testing.T) {
	svc := NewEmailService("", "", "admin@printly.shop")
	require.NoError(t, svc.NotifyAdminNewOrder(OrderEmail{OrderNumber: "PL-1"}))
}
