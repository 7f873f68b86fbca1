package render

import (
	"bytes"
	"fmt"
	"html/template"
	"regexp"
	"strings"
	"time"
)

const invoiceHTMLTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>Subscription Invoice {{monthLabel .Period.Year .Period.Month}}</title>
  <style>
    :root {
      --primary: {{.Company.PrimaryColor}};
    }
    * { box-sizing: border-box; }
    body {
      margin: 0;
      padding: 32px;
      font-family: "Helvetica Neue", Arial, sans-serif;
      color: #111827;
      background: #ffffff;
    }
    .invoice {
      max-width: 720px;
      margin: 0 auto;
    }
    .header {
      display: flex;
      justify-content: space-between;
      align-items: flex-start;
      border-bottom: 2px solid var(--primary);
      padding-bottom: 16px;
      margin-bottom: 24px;
    }
    .meta {
      text-align: right;
      font-size: 14px;
    }
    .meta .label {
      color: #6b7280;
      text-transform: uppercase;
      letter-spacing: 0.04em;
      font-size: 11px;
    }
    .section {
      margin-bottom: 24px;
    }
    table {
      width: 100%;
      border-collapse: collapse;
      font-size: 14px;
    }
    th, td {
      padding: 10px;
      border-bottom: 1px solid #e5e7eb;
      text-align: left;
    }
    th {
      text-transform: uppercase;
      font-size: 11px;
      letter-spacing: 0.04em;
      color: #6b7280;
    }
    .totals {
      margin-top: 12px;
      display: flex;
      justify-content: flex-end;
      font-size: 16px;
    }
    .totals strong {
      margin-left: 12px;
    }
    .footer {
      border-top: 1px solid #e5e7eb;
      padding-top: 16px;
      font-size: 12px;
      color: #6b7280;
    }
  </style>
</head>
<body>
  <div class="invoice">
    <div class="header">
      <div>
        <div><strong>{{.Company.Name}}</strong></div>
        <div>{{.Customer.Name}}</div>
        {{if .Customer.Address}}<div>{{.Customer.Address}}</div>{{end}}
        {{if .Customer.City}}<div>{{.Customer.City}}</div>{{end}}
        {{if .Customer.Phone}}<div>{{.Customer.Phone}}</div>{{end}}
      </div>
      <div class="meta">
        <div class="label">Subscription Invoice</div>
        <div><strong>{{monthLabel .Period.Year .Period.Month}}</strong></div>
        <div>Status: {{.Charges.Status}}</div>
        <div>Issued: {{formatDate .Period.IssuedAt}}</div>
      </div>
    </div>

    <div class="section">
      <table>
        <thead>
          <tr>
            <th>Description</th>
            <th>Amount</th>
          </tr>
        </thead>
        <tbody>
          <tr>
            <td>Monthly subscription ({{monthLabel .Period.Year .Period.Month}})</td>
            <td>{{formatMoney .Charges.SubscriptionValue .Charges.Currency}}</td>
          </tr>
          <tr>
            <td>Paid this month</td>
            <td>{{formatMoney .Charges.MonthPaid .Charges.Currency}}</td>
          </tr>
          {{if gt .Charges.ArrearsMonths 0}}
          <tr>
            <td>Months in arrears</td>
            <td>{{.Charges.ArrearsMonths}}</td>
          </tr>
          {{end}}
          {{if ne .Charges.SetupFeeRemaining 0}}
          <tr>
            <td>Setup fee remaining</td>
            <td>{{formatMoney .Charges.SetupFeeRemaining .Charges.Currency}}</td>
          </tr>
          {{end}}
        </tbody>
      </table>
      <div class="totals">
        <span>Outstanding balance</span>
        <strong>{{formatMoney .Charges.Outstanding .Charges.Currency}}</strong>
      </div>
    </div>

    <div class="footer">
      {{if .Company.FooterNotes}}<div>{{.Company.FooterNotes}}</div>{{end}}
    </div>
  </div>
</body>
</html>
`

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

type HTMLRenderer struct {
	tpl *template.Template
}

func NewRenderer() Renderer {
	funcs := template.FuncMap{
		"formatMoney": formatMoney,
		"formatDate":  formatDate,
		"monthLabel":  monthLabel,
	}
	return &HTMLRenderer{
		tpl: template.Must(template.New("invoice").Funcs(funcs).Parse(invoiceHTMLTemplate)),
	}
}

func (r *HTMLRenderer) RenderHTML(input RenderInput) (string, error) {
	input.Company.PrimaryColor = sanitizeColor(input.Company.PrimaryColor)
	if input.Company.Name == "" {
		input.Company.Name = "Invoice"
	}
	if input.Charges.Status == "" {
		input.Charges.Status = "pending"
	}

	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, input); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func formatMoney(amount int64, currency string) string {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = "USD"
	}
	value := float64(amount) / 100.0
	return fmt.Sprintf("%s %.2f", currency, value)
}

func formatDate(value time.Time) string {
	if value.IsZero() {
		return "-"
	}
	return value.UTC().Format("2006-01-02")
}

func monthLabel(year int, month time.Month) string {
	return fmt.Sprintf("%s %d", month.String(), year)
}

func sanitizeColor(value string) string {
	trimmed := strings.TrimSpace(value)
	if hexColorPattern.MatchString(trimmed) {
		return trimmed
	}
	return "#111827"
}
