package domain

import "errors"

// Validation failures abort the current operation without creating or
// persisting a partial record.
var (
	ErrMissingClientName  = errors.New("missing_client_name")
	ErrMissingClientEmail = errors.New("missing_client_email")
	ErrNoLineItems        = errors.New("no_line_items")

	ErrInvoiceNotFound = errors.New("invoice_not_found")

	// ErrPDFUnavailable signals the drawing-canvas capability is
	// missing. The caller reports it and falls back, never crashes.
	ErrPDFUnavailable = errors.New("pdf_unavailable")

	// ErrShareUnavailable signals the platform share capability is
	// absent or rejected the payload.
	ErrShareUnavailable = errors.New("share_unavailable")
)

// IsValidation reports whether err is one of the user-correctable
// validation failures.
func IsValidation(err error) bool {
	return errors.Is(err, ErrMissingClientName) ||
		errors.Is(err, ErrMissingClientEmail) ||
		errors.Is(err, ErrNoLineItems)
}
