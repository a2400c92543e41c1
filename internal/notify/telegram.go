package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultAPIBase = "https://api.telegram.org"

// Telegram posts order summaries via the Bot API sendMessage endpoint.
type Telegram struct {
	apiBase string
	http    *http.Client
}

func NewTelegram(apiBase string, timeout time.Duration) *Telegram {
	if apiBase == "" {
		apiBase = defaultAPIBase
	}
	return &Telegram{
		apiBase: strings.TrimRight(apiBase, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (t *Telegram) Notify(ctx context.Context, invoiceNumber string, lines []Line, total float64, s Settings) error {
	if !s.Complete() {
		return errors.New("telegram settings incomplete")
	}

	payload, err := json.Marshal(map[string]string{
		"chat_id":    s.ChatID,
		"text":       buildMessage(invoiceNumber, lines, total),
		"parse_mode": "Markdown",
	})
	if err != nil {
		return fmt.Errorf("encode telegram message: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", t.apiBase, s.Token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.http.Do(req)
	if err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("telegram: unexpected status %d", resp.StatusCode)
	}
	return nil
}

func buildMessage(invoiceNumber string, lines []Line, total float64) string {
	var b strings.Builder

	b.WriteString("🧾 New Order\n\n")
	fmt.Fprintf(&b, "Invoice #: %s\n\nItems:\n", invoiceNumber)
	for _, l := range lines {
		fmt.Fprintf(&b, "- %s (x%d) - $%.2f\n", l.Title, l.Quantity, l.Price*float64(l.Quantity))
	}
	fmt.Fprintf(&b, "\nTotal: $%.2f", total)

	return b.String()
}
