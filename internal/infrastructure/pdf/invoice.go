package pdf

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/storefront/backend/internal/domain/ordering"
)

// invoiceTemplate is the HTML layout for order invoices
const invoiceTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>Invoice {{.OrderNumber}}</title>
<style>
  body { font-family: "Helvetica Neue", Arial, sans-serif; font-size: 12px; color: #1a1a1a; }
  h1 { font-size: 22px; margin-bottom: 2px; }
  .muted { color: #666; }
  .header { display: flex; justify-content: space-between; margin-bottom: 24px; }
  .addresses { display: flex; gap: 40px; margin-bottom: 24px; }
  .address-block { flex: 1; }
  .address-block h3 { font-size: 11px; text-transform: uppercase; color: #666; margin-bottom: 4px; }
  table.items { width: 100%; border-collapse: collapse; margin-bottom: 24px; }
  table.items th { text-align: left; font-size: 11px; text-transform: uppercase; color: #666;
    border-bottom: 2px solid #1a1a1a; padding: 6px 4px; }
  table.items td { padding: 6px 4px; border-bottom: 1px solid #ddd; }
  td.num, th.num { text-align: right; }
  table.totals { margin-left: auto; width: 260px; }
  table.totals td { padding: 3px 4px; }
  table.totals tr.grand td { font-weight: bold; font-size: 14px; border-top: 2px solid #1a1a1a; }
  .badge { display: inline-block; padding: 2px 8px; border-radius: 3px; font-size: 11px;
    text-transform: uppercase; }
  .badge.paid { background: #d4edda; color: #155724; }
  .badge.unpaid { background: #fff3cd; color: #856404; }
  .notes { margin-top: 24px; font-size: 11px; }
</style>
</head>
<body>
<div class="header">
  <div>
    <h1>Invoice</h1>
    <div class="muted">{{.OrderNumber}}</div>
  </div>
  <div style="text-align: right;">
    <div>Date: {{.OrderDate}}</div>
    <div>Status: {{.Status}}</div>
    <div>Payment: <span class="badge {{if .Paid}}paid{{else}}unpaid{{end}}">{{.PaymentStatus}}</span></div>
  </div>
</div>

<div class="addresses">
  <div class="address-block">
    <h3>Bill To</h3>
    <div>{{.BillingName}}</div>
    {{range .BillingLines}}<div>{{.}}</div>
    {{end}}
  </div>
  <div class="address-block">
    <h3>Ship To</h3>
    <div>{{.ShippingName}}</div>
    {{range .ShippingLines}}<div>{{.}}</div>
    {{end}}
  </div>
</div>

<table class="items">
  <thead>
    <tr>
      <th>Item</th>
      <th>SKU</th>
      <th class="num">Qty</th>
      <th class="num">Unit Price</th>
      <th class="num">Total</th>
    </tr>
  </thead>
  <tbody>
    {{range .Items}}
    <tr>
      <td>{{.Name}}{{if .Variant}} <span class="muted">({{.Variant}})</span>{{end}}</td>
      <td>{{.SKU}}</td>
      <td class="num">{{.Quantity}}</td>
      <td class="num">{{.UnitPrice}}</td>
      <td class="num">{{.TotalPrice}}</td>
    </tr>
    {{end}}
  </tbody>
</table>

<table class="totals">
  <tr><td>Subtotal</td><td class="num">{{.Subtotal}}</td></tr>
  {{if .HasDiscount}}<tr><td>Discount</td><td class="num">-{{.Discount}}</td></tr>{{end}}
  <tr><td>Shipping</td><td class="num">{{.Shipping}}</td></tr>
  <tr><td>Tax</td><td class="num">{{.Tax}}</td></tr>
  <tr class="grand"><td>Total</td><td class="num">{{.Total}}</td></tr>
</table>

{{if .Notes}}
<div class="notes">
  <strong>Notes</strong>
  <div>{{.Notes}}</div>
</div>
{{end}}
</body>
</html>`

var invoiceTmpl = template.Must(template.New("invoice").Parse(invoiceTemplate))

// invoiceLine is a single item row on the invoice
type invoiceLine struct {
	Name       string
	Variant    string
	SKU        string
	Quantity   int
	UnitPrice  string
	TotalPrice string
}

// invoiceData is the template context for the invoice layout
type invoiceData struct {
	OrderNumber   string
	OrderDate     string
	Status        string
	PaymentStatus string
	Paid          bool
	BillingName   string
	BillingLines  []string
	ShippingName  string
	ShippingLines []string
	Items         []invoiceLine
	Subtotal      string
	HasDiscount   bool
	Discount      string
	Shipping      string
	Tax           string
	Total         string
	Notes         string
}

// BuildInvoiceHTML renders the invoice HTML document for an order
func BuildInvoiceHTML(order *ordering.Order) (string, error) {
	if order == nil {
		return "", fmt.Errorf("order is nil")
	}

	data := invoiceData{
		OrderNumber:   order.OrderNumber,
		OrderDate:     order.CreatedAt.Format("January 2, 2006"),
		Status:        string(order.Status),
		PaymentStatus: string(order.PaymentStatus),
		Paid:          order.PaymentStatus == ordering.PaymentStatusPaid,
		BillingName:   order.BillingAddress.FullName(),
		BillingLines:  addressLines(order.BillingAddress),
		ShippingName:  order.ShippingAddress.FullName(),
		ShippingLines: addressLines(order.ShippingAddress),
		Subtotal:      order.Subtotal.StringFixed(2),
		HasDiscount:   order.DiscountAmount.IsPositive(),
		Discount:      order.DiscountAmount.StringFixed(2),
		Shipping:      order.ShippingAmount.StringFixed(2),
		Tax:           order.TaxAmount.StringFixed(2),
		Total:         order.TotalAmount.StringFixed(2),
		Notes:         order.Notes,
	}

	for _, item := range order.Items {
		data.Items = append(data.Items, invoiceLine{
			Name:       item.ProductName,
			Variant:    item.VariantName,
			SKU:        item.SKU,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice.StringFixed(2),
			TotalPrice: item.TotalPrice.StringFixed(2),
		})
	}

	var buf bytes.Buffer
	if err := invoiceTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render invoice template: %w", err)
	}
	return buf.String(), nil
}

// addressLines formats an address into display lines, skipping blanks
func addressLines(addr ordering.OrderAddress) []string {
	lines := make([]string, 0, 5)
	if addr.AddressLine1 != "" {
		lines = append(lines, addr.AddressLine1)
	}
	if addr.AddressLine2 != "" {
		lines = append(lines, addr.AddressLine2)
	}
	cityLine := addr.City
	if addr.State != "" {
		cityLine += ", " + addr.State
	}
	if addr.PostalCode != "" {
		cityLine += " " + addr.PostalCode
	}
	if cityLine != "" {
		lines = append(lines, cityLine)
	}
	if addr.Country != "" {
		lines = append(lines, addr.Country)
	}
	if addr.Phone != "" {
		lines = append(lines, addr.Phone)
	}
	return lines
}
