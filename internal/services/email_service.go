package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"log"
	"net/http"
)

// EmailService renders HTML notification mails and forwards them to the
// external email-sending function. All sends are best-effort: callers
// treat failures as log-and-continue.
type EmailService struct {
	functionURL string
	token       string
	adminEmail  string
	client      *http.Client
}

// NewEmailService creates a new EmailService.
func NewEmailService(functionURL, token, adminEmail string) *EmailService {
	return &EmailService{
		functionURL: functionURL,
		token:       token,
		adminEmail:  adminEmail,
		client:      http.DefaultClient,
	}
}

// OrderEmail carries the order snapshot interpolated into mail bodies.
// It is also the wire shape of the notify endpoint's order_data field.
type OrderEmail struct {
	OrderNumber   string           `json:"order_number"`
	CustomerName  string           `json:"customer_name"`
	CustomerEmail string           `json:"customer_email"`
	Street        string           `json:"street"`
	City          string           `json:"city"`
	PostalCode    string           `json:"postal_code"`
	Country       string           `json:"country"`
	Items         []OrderEmailItem `json:"items"`
	Total         float64          `json:"total"`
	ShippingCost  float64          `json:"shipping_cost"`
	Discount      float64          `json:"discount"`
	Notes         string           `json:"notes"`
}

// OrderEmailItem is one snapshotted line item.
type OrderEmailItem struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// LowStockProduct is one row of the low-stock alert table.
type LowStockProduct struct {
	Name  string `json:"name"`
	Stock int    `json:"stock"`
}

type emailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// Mail templates use html/template so every interpolated field is
// escaped before it lands in the generated markup.
var orderTemplate = template.Must(template.New("order").Parse(`<h2>{{.Heading}}</h2>
<p>Order <b>{{.Order.OrderNumber}}</b> for {{.Order.CustomerName}}</p>
<table border="1" cellpadding="6" cellspacing="0">
<tr><th>Item</th><th>Qty</th><th>Unit price</th></tr>
{{range .Order.Items}}<tr><td>{{.Name}}</td><td>{{.Quantity}}</td><td>{{printf "%.2f" .UnitPrice}}</td></tr>
{{end}}</table>
<p>Shipping: {{printf "%.2f" .Order.ShippingCost}}{{if gt .Order.Discount 0.0}} &middot; Discount: -{{printf "%.2f" .Order.Discount}}{{end}}</p>
<p><b>Total: {{printf "%.2f" .Order.Total}}</b></p>
<p>Ships to: {{.Order.Street}}, {{.Order.City}} {{.Order.PostalCode}}, {{.Order.Country}}</p>
{{if .Order.Notes}}<p>Notes: {{.Order.Notes}}</p>{{end}}
{{if .Footer}}<p>{{.Footer}}</p>{{end}}`))

var lowStockTemplate = template.Must(template.New("lowstock").Parse(`<h2>Low stock alert</h2>
<p>{{len .Products}} product(s) at or below the threshold of {{.Threshold}}:</p>
<table border="1" cellpadding="6" cellspacing="0">
<tr><th>Product</th><th>Stock</th></tr>
{{range .Products}}<tr><td>{{.Name}}</td><td>{{.Stock}}</td></tr>
{{end}}</table>`))

// NotifyCustomerConfirmation mails the customer their order confirmation.
func (s *EmailService) NotifyCustomerConfirmation(order OrderEmail) error {
	return s.sendOrderMail(order.CustomerEmail, "Your Printly order "+order.OrderNumber, "Thanks for your order!",
		"We'll let you know as soon as your prints are on the way.", order)
}

// NotifyAdminNewOrder mails the admin address about a new order.
func (s *EmailService) NotifyAdminNewOrder(order OrderEmail) error {
	return s.sendOrderMail(s.adminEmail, "New order "+order.OrderNumber, "New order received", "", order)
}

// NotifyProcessingStarted mails the customer when their order moves from
// paid to processing.
func (s *EmailService) NotifyProcessingStarted(order OrderEmail) error {
	return s.sendOrderMail(order.CustomerEmail, "Order "+order.OrderNumber+" is being printed", "Your order is in production",
		"Our printers are warming up. We'll mail you again once it ships.", order)
}

// NotifyAutoCancelled mails the customer when a stale pending order was
// cancelled by the maintenance job.
func (s *EmailService) NotifyAutoCancelled(order OrderEmail) error {
	return s.sendOrderMail(order.CustomerEmail, "Order "+order.OrderNumber+" was cancelled", "Your order was cancelled",
		"This order stayed unpaid for too long and was cancelled automatically. Feel free to order again any time.", order)
}

// NotifyLowStock mails the admin address a summary table of products at
// or below the stock threshold.
func (s *EmailService) NotifyLowStock(products []LowStockProduct, threshold int) error {
	var buf bytes.Buffer
	err := lowStockTemplate.Execute(&buf, struct {
		Products  []LowStockProduct
		Threshold int
	}{products, threshold})
	if err != nil {
		return err
	}

	return s.send(s.adminEmail, "Low stock alert", buf.String())
}

func (s *EmailService) sendOrderMail(to, subject, heading, footer string, order OrderEmail) error {
	var buf bytes.Buffer
	err := orderTemplate.Execute(&buf, struct {
		Heading string
		Footer  string
		Order   OrderEmail
	}{heading, footer, order})
	if err != nil {
		return err
	}

	return s.send(to, subject, buf.String())
}

func (s *EmailService) send(to, subject, html string) error {
	if s.functionURL == "" {
		log.Println("[Email] function URL not configured, skipping send")
		return nil
	}
	if to == "" {
		return fmt.Errorf("email recipient missing")
	}

	body, err := json.Marshal(emailPayload{To: to, Subject: subject, HTML: html})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, s.functionURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("[Email] failed to send to %s: %v", to, err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("[Email] unexpected status %d sending to %s", resp.StatusCode, to)
		return fmt.Errorf("email function returned status %d", resp.StatusCode)
	}

	return nil
}
