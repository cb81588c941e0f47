// Package dto carries the request and response shapes of the use cases.
package dto

import (
	"time"

	"github.com/google/uuid"
)

// WeekSelection identifies one weekly slot in a request.
type WeekSelection struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Week  int `json:"week"`
}

// CreateSessionRequest opens a time-boxed hold over a week selection.
type CreateSessionRequest struct {
	StudentID uuid.UUID       `json:"student_id"`
	Weeks     []WeekSelection `json:"weeks"`
}

// SessionResponse describes a payment session to callers.
type SessionResponse struct {
	SessionID    uuid.UUID       `json:"session_id"`
	StudentID    uuid.UUID       `json:"student_id"`
	Weeks        []WeekSelection `json:"weeks"`
	State        string          `json:"state"`
	TotalRupiah  int64           `json:"total_rupiah"`
	ReservedAt   time.Time       `json:"reserved_at"`
	ExpiresAt    time.Time       `json:"expires_at"`
	RemainingTTL time.Duration   `json:"remaining_ttl"`
}

// ConfirmSessionRequest settles a reservation.
type ConfirmSessionRequest struct {
	SessionID uuid.UUID `json:"session_id"`
}

// CancelSessionRequest aborts a reservation.
type CancelSessionRequest struct {
	SessionID uuid.UUID `json:"session_id"`
}

// GetSessionRequest looks up a session by ID.
type GetSessionRequest struct {
	SessionID uuid.UUID `json:"session_id"`
}

// ResumeSessionRequest looks up a student's live reservation.
type ResumeSessionRequest struct {
	StudentID uuid.UUID `json:"student_id"`
}

// CheckBillRequest asks for a student's position in one year.
type CheckBillRequest struct {
	StudentID uuid.UUID `json:"student_id"`
	Year      int       `json:"year"`
}

// WeekCell is one cell of the returned dues matrix.
type WeekCell struct {
	Week   int    `json:"week"`
	Status string `json:"status"`
	Rupiah int64  `json:"rupiah"`
}

// MonthBill is one aggregated month in a bill response.
type MonthBill struct {
	Month            int        `json:"month"`
	Label            string     `json:"label"`
	Weeks            []WeekCell `json:"weeks"`
	SettledWeeks     int        `json:"settled_weeks"`
	PendingWeeks     int        `json:"pending_weeks"`
	PaidRupiah       int64      `json:"paid_rupiah"`
	Complete         bool       `json:"complete"`
	DeficiencyRupiah int64      `json:"deficiency_rupiah"`
}

// BillResponse is a student's position for one year.
type BillResponse struct {
	StudentID        uuid.UUID   `json:"student_id"`
	Year             int         `json:"year"`
	Months           []MonthBill `json:"months"`
	PaidMonthCount   int         `json:"paid_month_count"`
	PaidRupiah       int64       `json:"paid_rupiah"`
	DeficiencyRupiah int64       `json:"deficiency_rupiah"`
	Outstanding      []string    `json:"outstanding"`
	Settled          bool        `json:"settled"`
}

// LifetimeSummaryRequest asks for a student's position across years.
type LifetimeSummaryRequest struct {
	StudentID uuid.UUID `json:"student_id"`
	// Years lists the enrollment years to bill. Empty means every year
	// the student has ledger rows in.
	Years []int `json:"years,omitempty"`
}

// LifetimeSummaryResponse sums the per-year bills.
type LifetimeSummaryResponse struct {
	StudentID        uuid.UUID      `json:"student_id"`
	Years            []BillResponse `json:"years"`
	PaidMonthCount   int            `json:"paid_month_count"`
	PaidRupiah       int64          `json:"paid_rupiah"`
	DeficiencyRupiah int64          `json:"deficiency_rupiah"`
}

// ClassSummaryRequest asks for a class-wide recap.
type ClassSummaryRequest struct {
	ClassID uuid.UUID `json:"class_id"`
	Year    int       `json:"year"`
}

// StudentRecap is one row of the class recap.
type StudentRecap struct {
	StudentID        uuid.UUID `json:"student_id"`
	PaidRupiah       int64     `json:"paid_rupiah"`
	DeficiencyRupiah int64     `json:"deficiency_rupiah"`
	Outstanding      []string  `json:"outstanding"`
}

// ClassSummaryResponse aggregates a class.
type ClassSummaryResponse struct {
	ClassID          uuid.UUID      `json:"class_id"`
	Students         []StudentRecap `json:"students"`
	CollectedRupiah  int64          `json:"collected_rupiah"`
	DeficiencyRupiah int64          `json:"deficiency_rupiah"`
}

// BillingRangeResponse describes the configured billing window.
type BillingRangeResponse struct {
	StartMonth   int `json:"start_month"`
	EndMonth     int `json:"end_month"`
	ActivePeriod int `json:"active_period"`
}

// SaveBillingRangeRequest replaces the billing window.
type SaveBillingRangeRequest struct {
	StartMonth   int `json:"start_month"`
	EndMonth     int `json:"end_month"`
	ActivePeriod int `json:"active_period"`
}
