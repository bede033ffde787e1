// Package format holds the pure display-formatting contracts shared by
// the on-screen and PDF renderers.
package format

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var seqPadRe = regexp.MustCompile(`\{SEQ(\d+)\}`)

// DefaultInvoiceNumberTemplate yields numbers like INV-20240305-0042.
const DefaultInvoiceNumberTemplate = "INV-{YYYY}{MM}{DD}-{SEQ4}"

// InvoiceNumber formats a human-readable invoice number from a
// template, the creation time and a sequence value.
//
// This function is PURE:
// - No side effects
// - No store access
// - Fully deterministic
func InvoiceNumber(template string, createdAt time.Time, seq int64) (string, error) {
	if template == "" {
		return "", fmt.Errorf("invoice number template is empty")
	}
	if seq < 0 {
		return "", fmt.Errorf("invalid invoice sequence: %d", seq)
	}

	out := template

	// Date tokens
	out = strings.ReplaceAll(out, "{YYYY}", createdAt.Format("2006"))
	out = strings.ReplaceAll(out, "{YY}", createdAt.Format("06"))
	out = strings.ReplaceAll(out, "{MM}", createdAt.Format("01"))
	out = strings.ReplaceAll(out, "{DD}", createdAt.Format("02"))

	// Simple sequence
	out = strings.ReplaceAll(out, "{SEQ}", strconv.FormatInt(seq, 10))

	// Padded sequence
	out = seqPadRe.ReplaceAllStringFunc(out, func(m string) string {
		match := seqPadRe.FindStringSubmatch(m)
		if len(match) != 2 {
			return m // should never happen
		}

		width, err := strconv.Atoi(match[1])
		if err != nil || width <= 0 {
			return m
		}

		return fmt.Sprintf("%0*d", width, seq)
	})

	// Final safety check: unresolved tokens
	if strings.Contains(out, "{") || strings.Contains(out, "}") {
		return "", fmt.Errorf("unresolved token in invoice format: %s", out)
	}

	return out, nil
}

// Currency renders an amount as a pound string with two decimal places
// and thousands separators, e.g. 1234.5 -> "£1,234.50".
func Currency(amount float64) string {
	fixed := strconv.FormatFloat(amount, 'f', 2, 64)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}

	intPart, fracPart, _ := strings.Cut(fixed, ".")
	return "£" + sign + groupThousands(intPart) + "." + fracPart
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// Date renders an ISO-8601 timestamp in the en-GB day-first form,
// e.g. "2024-03-05T09:30:00Z" -> "05/03/2024". Unparseable input is
// returned unchanged so a bad record still renders something.
func Date(iso string) string {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, iso); err == nil {
			return t.Format("02/01/2006")
		}
	}
	return iso
}

// Quantity renders a line-item quantity exactly, with no trailing
// zeros: 5 -> "5", 2.555 -> "2.555".
func Quantity(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// VATLabel renders the VAT rate as a whole percentage, e.g. 0.2 ->
// "VAT (20%)".
func VATLabel(rate float64) string {
	return fmt.Sprintf("VAT (%.0f%%)", rate*100)
}

// PDFFileName names the exported artifact for an invoice number, with
// any slash replaced so the name stays path-safe.
func PDFFileName(invoiceNumber string) string {
	return "Invoice_" + strings.ReplaceAll(invoiceNumber, "/", "-") + ".pdf"
}
