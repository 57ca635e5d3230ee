// Package notify e-mails the bookkeeper the item codes a run could not
// classify, so the reference table gets corrected instead of the output.
package notify

import (
	"fmt"
	"html"
	"log/slog"
	"strings"

	"github.com/resend/resend-go/v2"
)

// UnresolvedCode is one item code that fell back to the manual
// classification sentinel, with its nearest reference-table codes.
type UnresolvedCode struct {
	ItemCode    string
	Suggestions []string
}

// Notifier sends the review e-mail through resend. Without an API key
// or recipients it degrades to a logged skip, never an error.
type Notifier struct {
	client *resend.Client
	from   string
	to     []string
	logger *slog.Logger
}

// New creates a notifier. An empty API key leaves the client unset.
func New(apiKey, from string, to []string, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	var client *resend.Client
	if apiKey != "" {
		client = resend.NewClient(apiKey)
	}
	if from == "" {
		from = "Invoice Ledger <invoices@localhost>"
	}
	return &Notifier{client: client, from: from, to: to, logger: logger}
}

// SendUnresolved mails the review table for one document. A run with no
// unresolved codes sends nothing.
func (n *Notifier) SendUnresolved(invoice string, codes []UnresolvedCode) error {
	if len(codes) == 0 {
		return nil
	}
	if n.client == nil || len(n.to) == 0 {
		n.logger.Warn("resend client not configured, skipping unresolved-code email",
			slog.String("invoice", invoice),
			slog.Int("codes", len(codes)))
		return nil
	}

	_, err := n.client.Emails.Send(&resend.SendEmailRequest{
		From:    n.from,
		To:      n.to,
		Subject: fmt.Sprintf("GL review needed: %d unresolved code(s) in %s", len(codes), invoice),
		Html:    unresolvedHTML(invoice, codes),
	})
	if err != nil {
		return fmt.Errorf("sending unresolved-code email: %w", err)
	}

	n.logger.Info("unresolved-code email sent",
		slog.String("invoice", invoice),
		slog.Int("codes", len(codes)),
		slog.Int("recipients", len(n.to)))
	return nil
}

func unresolvedHTML(invoice string, codes []UnresolvedCode) string {
	var rows strings.Builder
	for _, code := range codes {
		suggestions := "none close"
		if len(code.Suggestions) > 0 {
			suggestions = html.EscapeString(strings.Join(code.Suggestions, ", "))
		}
		fmt.Fprintf(&rows, "      <tr><td>%s</td><td>%s</td></tr>\n",
			html.EscapeString(code.ItemCode), suggestions)
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
  <style>
    body { font-family: sans-serif; color: #1f2933; margin: 0; padding: 24px; }
    .container { max-width: 560px; margin: 0 auto; }
    h1 { font-size: 20px; }
    .text { font-size: 14px; line-height: 20px; color: #3e4c59; }
    table { border-collapse: collapse; width: 100%%; margin: 16px 0; }
    th, td { border: 1px solid #cbd2d9; padding: 6px 10px; font-size: 13px; text-align: left; }
    th { background: #f5f7fa; }
    .footer { font-size: 12px; color: #7b8794; margin-top: 24px; }
  </style>
</head>
<body>
  <div class="container">
    <h1>Unresolved item codes</h1>
    <p class="text">%d item code(s) in <strong>%s</strong> are not in the GL reference table and were booked to the review sentinel.</p>
    <table>
      <tr><th>Item Code</th><th>Closest known codes</th></tr>
%s    </table>
    <p class="text">Add the codes to the reference table and re-run the document.</p>
    <p class="footer">Sent by invoicectl.</p>
  </div>
</body>
</html>
`, len(codes), html.EscapeString(invoice), rows.String())
}
