// Package usecase implements the application operations over the dues
// ledger and its payment sessions.
package usecase

import (
	"fmt"
	"time"

	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/application/dto"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/domain/model"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/domain/service"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/domain/valueobject"
)

// Clock supplies the current time. The reaper and its tests need an
// injectable source.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time { return time.Now() }

func parseWeeks(selections []dto.WeekSelection) ([]valueobject.DueKey, error) {
	keys := make([]valueobject.DueKey, 0, len(selections))
	for _, s := range selections {
		key, err := valueobject.NewDueKey(s.Year, s.Month, s.Week)
		if err != nil {
			return nil, fmt.Errorf("invalid week selection: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func toSessionResponse(s model.PaymentSession, now time.Time) dto.SessionResponse {
	weeks := s.Weeks()
	selections := make([]dto.WeekSelection, len(weeks))
	for i, w := range weeks {
		selections[i] = dto.WeekSelection{Year: w.Year(), Month: w.Month(), Week: w.Week()}
	}
	return dto.SessionResponse{
		SessionID:    s.ID(),
		StudentID:    s.StudentID(),
		Weeks:        selections,
		State:        s.State().String(),
		TotalRupiah:  s.Total().Rupiah(),
		ReservedAt:   s.ReservedAt(),
		ExpiresAt:    s.ExpiresAt(),
		RemainingTTL: s.RemainingTTL(now),
	}
}

func toBillResponse(bill service.BillStatement) dto.BillResponse {
	months := make([]dto.MonthBill, len(bill.Months))
	for i, m := range bill.Months {
		weeks := make([]dto.WeekCell, len(m.Weeks))
		for j, w := range m.Weeks {
			weeks[j] = dto.WeekCell{Week: w.Week, Status: w.Status.String(), Rupiah: w.Amount.Rupiah()}
		}
		months[i] = dto.MonthBill{
			Month:            m.Month,
			Label:            m.Label,
			Weeks:            weeks,
			SettledWeeks:     m.SettledWeeks,
			PendingWeeks:     m.PendingWeeks,
			PaidRupiah:       m.Paid.Rupiah(),
			Complete:         m.Complete,
			DeficiencyRupiah: m.Deficiency.Rupiah(),
		}
	}
	return dto.BillResponse{
		StudentID:        bill.StudentID,
		Year:             bill.Year,
		Months:           months,
		PaidMonthCount:   bill.PaidMonthCount,
		PaidRupiah:       bill.TotalPaid.Rupiah(),
		DeficiencyRupiah: bill.TotalDeficiency.Rupiah(),
		Outstanding:      bill.Outstanding,
		Settled:          bill.IsSettled(),
	}
}
