package valueobject

import "fmt"

// DueStatus represents the payment state of one weekly ledger row.
type DueStatus struct {
	value string
}

var (
	// DueStatusUnpaid is the default state; an absent row reads as unpaid.
	DueStatusUnpaid = DueStatus{"unpaid"}
	// DueStatusPending marks a row reserved by an active payment session.
	DueStatusPending = DueStatus{"pending"}
	// DueStatusPaid marks a row settled with money.
	DueStatusPaid = DueStatus{"paid"}
	// DueStatusBebas marks a row waived by the treasurer: it completes the
	// month but contributes no money.
	DueStatusBebas = DueStatus{"bebas"}
)

var validDueStatuses = map[string]DueStatus{
	"unpaid":  DueStatusUnpaid,
	"pending": DueStatusPending,
	"paid":    DueStatusPaid,
	"bebas":   DueStatusBebas,
	// Aliases found in historical exports.
	"lunas": DueStatusPaid,
	"free":  DueStatusBebas,
}

// NewDueStatus validates and creates a DueStatus from a string. Legacy
// aliases ("lunas", "free") normalize to their canonical form.
func NewDueStatus(s string) (DueStatus, error) {
	if status, ok := validDueStatuses[s]; ok {
		return status, nil
	}
	return DueStatus{}, fmt.Errorf("invalid due status: %q", s)
}

// String returns the canonical string representation of the status.
func (s DueStatus) String() string {
	return s.value
}

// IsSettled returns true if the week no longer owes anything (paid or bebas).
func (s DueStatus) IsSettled() bool {
	return s == DueStatusPaid || s == DueStatusBebas
}

// IsReservable returns true if a payment session may place a hold on the row.
func (s DueStatus) IsReservable() bool {
	return s == DueStatusUnpaid
}

// IsZero returns true if the status is uninitialized.
func (s DueStatus) IsZero() bool {
	return s.value == ""
}
