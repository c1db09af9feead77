package sendgrid

import (
	"bytes"
	"context"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"github.com/Muppalavinisree/vibecommerce/internal/models"
)

var templateFuncs = map[string]any{
	"lineTotal": func(l models.CartLine) int64 { return l.LineTotal() },
	"date":      func(r *models.Receipt) string { return r.Timestamp.Format("2006-01-02 15:04 MST") },
}

var receiptText = texttemplate.Must(texttemplate.New("receipt.txt").Funcs(templateFuncs).Parse(
	`Hi {{.Name}},

Thanks for your order. Receipt {{.ID}} ({{date .}})
{{range .Items}}
  {{.Qty}} x {{.Name}} @ {{.Price}} = {{lineTotal .}}{{end}}

Total: {{.Total}}
`))

var receiptHTML = htmltemplate.Must(htmltemplate.New("receipt.html").Funcs(templateFuncs).Parse(
	`<h2>Thanks for your order, {{.Name}}!</h2>
<p>Receipt <strong>{{.ID}}</strong> &middot; {{date .}}</p>
<table>
<tr><th align="left">Item</th><th>Qty</th><th>Price</th><th>Subtotal</th></tr>
{{range .Items}}<tr><td>{{.Name}}</td><td>{{.Qty}}</td><td>{{.Price}}</td><td>{{lineTotal .}}</td></tr>
{{end}}</table>
<p><strong>Total: {{.Total}}</strong></p>
`))

// ReceiptMailer e-mails checkout receipts through an EmailService.
type ReceiptMailer struct {
	email EmailService
}

func NewReceiptMailer(email EmailService) *ReceiptMailer {
	return &ReceiptMailer{email: email}
}

func (m *ReceiptMailer) SendReceipt(ctx context.Context, receipt *models.Receipt) error {
	if strings.TrimSpace(receipt.Email) == "" {
		return nil
	}

	var text, html bytes.Buffer

	if err := receiptText.Execute(&text, receipt); err != nil {
		return fmt.Errorf("rendering text receipt: %w", err)
	}

	if err := receiptHTML.Execute(&html, receipt); err != nil {
		return fmt.Errorf("rendering html receipt: %w", err)
	}

	return m.email.Send(ctx, &models.EmailNotificationRequest{
		To:          receipt.Email,
		ToName:      receipt.Name,
		Subject:     fmt.Sprintf("Your VibeCommerce receipt %s", receipt.ID),
		Content:     text.String(),
		HTMLContent: html.String(),
	})
}
