package service

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/domain/model"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/domain/valueobject"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/pkg/money"
)

// monthNames holds the Indonesian month labels used in statements.
var monthNames = [13]string{"",
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// MonthName returns the Indonesian name of a calendar month.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthNames[month]
}

// WeekStatement is one cell of the dues matrix.
type WeekStatement struct {
	Week   int
	Status valueobject.DueStatus
	Amount money.Money
}

// MonthStatement aggregates one billed month.
type MonthStatement struct {
	Year         int
	Month        int
	Weeks        []WeekStatement
	SettledWeeks int
	PendingWeeks int
	Paid         money.Money
	Complete     bool
	Deficiency   money.Money
	// Label renders the month for display, e.g. "Maret (-2 mg)" when two
	// weeks are still owed.
	Label string
}

// BillStatement is a student's position for one year.
type BillStatement struct {
	StudentID       uuid.UUID
	Year            int
	Months          []MonthStatement
	PaidMonthCount  int
	TotalPaid       money.Money
	TotalDeficiency money.Money
	// Outstanding lists the labels of months still owing money.
	Outstanding []string
}

// IsSettled reports whether the student owes nothing for the year.
func (b BillStatement) IsSettled() bool {
	return b.TotalDeficiency.IsZero()
}

// LifetimeStatement sums a student's position across enrollment years.
type LifetimeStatement struct {
	StudentID       uuid.UUID
	Years           []BillStatement
	PaidMonthCount  int
	TotalPaid       money.Money
	TotalDeficiency money.Money
}

// StudentSummary is one row of a class recap.
type StudentSummary struct {
	StudentID       uuid.UUID
	TotalPaid       money.Money
	TotalDeficiency money.Money
	Outstanding     []string
}

// ClassSummary aggregates every student in a class.
type ClassSummary struct {
	ClassID         uuid.UUID
	Students        []StudentSummary
	TotalCollected  money.Money
	TotalDeficiency money.Money
}

// DuesAggregator folds raw ledger rows into billing statements. The
// completeness rule is: a month is complete once four weeks are settled
// (paid or waived) or the paid sum reaches a full month's dues. Pending
// weeks hold their slot, they neither settle the month nor count as owed
// while their session is live.
type DuesAggregator struct{}

// NewDuesAggregator creates a DuesAggregator.
func NewDuesAggregator() *DuesAggregator {
	return &DuesAggregator{}
}

// monthlyDue is the full price of one month.
var monthlyDue = model.WeeklyDue.MulInt(model.WeeksPerMonth)

// ComputeBill builds the year statement for a student from their ledger
// rows. Rows outside the billing range are ignored. A month inside the
// range with no rows at all owes the full month.
func (a *DuesAggregator) ComputeBill(studentID uuid.UUID, year int, records []model.DueRecord, r valueobject.BillingRange) BillStatement {
	byMonth := make(map[int][]model.DueRecord)
	for _, rec := range records {
		if rec.Key().Year() != year || !r.Contains(rec.Key().Month()) {
			continue
		}
		byMonth[rec.Key().Month()] = append(byMonth[rec.Key().Month()], rec)
	}

	bill := BillStatement{
		StudentID:       studentID,
		Year:            year,
		TotalPaid:       money.Zero(money.IDR),
		TotalDeficiency: money.Zero(money.IDR),
	}
	for _, month := range r.Months() {
		stmt := a.computeMonth(year, month, byMonth[month])
		bill.Months = append(bill.Months, stmt)
		if stmt.Complete {
			bill.PaidMonthCount++
		}
		bill.TotalPaid, _ = bill.TotalPaid.Add(stmt.Paid)
		bill.TotalDeficiency, _ = bill.TotalDeficiency.Add(stmt.Deficiency)
		if !stmt.Deficiency.IsZero() {
			bill.Outstanding = append(bill.Outstanding, stmt.Label)
		}
	}
	return bill
}

func (a *DuesAggregator) computeMonth(year, month int, records []model.DueRecord) MonthStatement {
	stmt := MonthStatement{
		Year:       year,
		Month:      month,
		Paid:       money.Zero(money.IDR),
		Deficiency: money.Zero(money.IDR),
	}

	byWeek := make(map[int]model.DueRecord, len(records))
	for _, rec := range records {
		byWeek[rec.Key().Week()] = rec
	}
	for week := 1; week <= model.WeeksPerMonth; week++ {
		cell := WeekStatement{Week: week, Status: valueobject.DueStatusUnpaid, Amount: money.Zero(money.IDR)}
		if rec, ok := byWeek[week]; ok {
			cell.Status = rec.Status()
			cell.Amount = rec.Amount()
			if rec.Status().IsSettled() {
				stmt.SettledWeeks++
			}
			if rec.Status() == valueobject.DueStatusPending {
				stmt.PendingWeeks++
			}
			// Only money that actually arrived counts. Waived and pending
			// rows may carry an amount but contribute nothing to the sum.
			if rec.Status() == valueobject.DueStatusPaid {
				stmt.Paid, _ = stmt.Paid.Add(rec.Amount())
			}
		}
		stmt.Weeks = append(stmt.Weeks, cell)
	}

	stmt.Complete = stmt.SettledWeeks >= model.WeeksPerMonth || stmt.Paid.GreaterThanOrEqual(monthlyDue)

	owedWeeks := 0
	if !stmt.Complete {
		owedWeeks = model.WeeksPerMonth - stmt.SettledWeeks - stmt.PendingWeeks
		if owedWeeks < 0 {
			owedWeeks = 0
		}
		stmt.Deficiency = model.WeeklyDue.MulInt(int64(owedWeeks))
	}

	if owedWeeks > 0 {
		stmt.Label = fmt.Sprintf("%s (-%d mg)", MonthName(month), owedWeeks)
	} else {
		stmt.Label = MonthName(month)
	}
	return stmt
}

// ComputeLifetime folds per-year statements into a lifetime position.
// Years the billing range does not apply to are skipped.
func (a *DuesAggregator) ComputeLifetime(studentID uuid.UUID, records []model.DueRecord, r valueobject.BillingRange, years []int) LifetimeStatement {
	sorted := make([]int, len(years))
	copy(sorted, years)
	sort.Ints(sorted)

	lifetime := LifetimeStatement{
		StudentID:       studentID,
		TotalPaid:       money.Zero(money.IDR),
		TotalDeficiency: money.Zero(money.IDR),
	}
	for _, year := range sorted {
		if !r.AppliesTo(year) {
			continue
		}
		bill := a.ComputeBill(studentID, year, records, r)
		lifetime.Years = append(lifetime.Years, bill)
		lifetime.PaidMonthCount += bill.PaidMonthCount
		lifetime.TotalPaid, _ = lifetime.TotalPaid.Add(bill.TotalPaid)
		lifetime.TotalDeficiency, _ = lifetime.TotalDeficiency.Add(bill.TotalDeficiency)
	}
	return lifetime
}

// ComputeClassSummary builds the treasurer's recap for a class. Students
// are ordered by ID for a stable report.
func (a *DuesAggregator) ComputeClassSummary(classID uuid.UUID, year int, recordsByStudent map[uuid.UUID][]model.DueRecord, r valueobject.BillingRange) ClassSummary {
	summary := ClassSummary{
		ClassID:         classID,
		TotalCollected:  money.Zero(money.IDR),
		TotalDeficiency: money.Zero(money.IDR),
	}

	ids := make([]uuid.UUID, 0, len(recordsByStudent))
	for id := range recordsByStudent {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })

	for _, id := range ids {
		bill := a.ComputeBill(id, year, recordsByStudent[id], r)
		summary.Students = append(summary.Students, StudentSummary{
			StudentID:       id,
			TotalPaid:       bill.TotalPaid,
			TotalDeficiency: bill.TotalDeficiency,
			Outstanding:     bill.Outstanding,
		})
		summary.TotalCollected, _ = summary.TotalCollected.Add(bill.TotalPaid)
		summary.TotalDeficiency, _ = summary.TotalDeficiency.Add(bill.TotalDeficiency)
	}
	return summary
}
