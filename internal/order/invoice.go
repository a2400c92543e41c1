package order

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// NewInvoiceNumber returns a short uppercase alphanumeric id.
func NewInvoiceNumber() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(id[:9])
}

// RenderInvoice formats a snapshot as a printable plain-text invoice.
func RenderInvoice(s Snapshot) string {
	var b strings.Builder

	fmt.Fprintf(&b, "INVOICE %s\n", s.InvoiceNumber)
	fmt.Fprintf(&b, "Date: %s\n\n", s.Date.Format("2006-01-02"))

	for _, it := range s.Items {
		fmt.Fprintf(&b, "%-40s x%-3d $%9.2f\n", it.Title, it.Quantity, it.LineTotal())
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "%-45s $%9.2f\n", "Subtotal", s.Subtotal)
	fmt.Fprintf(&b, "%-45s $%9.2f\n", "Tax", s.Tax)
	fmt.Fprintf(&b, "%-45s $%9.2f\n", "Total", s.Total)

	return b.String()
}
