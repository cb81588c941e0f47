package grpc

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/application/dto"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/application/usecase"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/domain/model"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/domain/valueobject"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/pkg/auth"
)

// DuesHandler implements the gRPC DuesService server.
type DuesHandler struct {
	UnimplementedDuesServiceServer

	checkBill    *usecase.CheckBillUseCase
	lifetime     *usecase.LifetimeSummaryUseCase
	classSummary *usecase.ClassSummaryUseCase
	create       *usecase.CreateSessionUseCase
	confirm      *usecase.ConfirmSessionUseCase
	cancel       *usecase.CancelSessionUseCase
	get          *usecase.GetSessionUseCase
	resume       *usecase.ResumeSessionUseCase
	getRange     *usecase.GetBillingRangeUseCase
	saveRange    *usecase.SaveBillingRangeUseCase
}

func NewDuesHandler(
	checkBill *usecase.CheckBillUseCase,
	lifetime *usecase.LifetimeSummaryUseCase,
	classSummary *usecase.ClassSummaryUseCase,
	create *usecase.CreateSessionUseCase,
	confirm *usecase.ConfirmSessionUseCase,
	cancel *usecase.CancelSessionUseCase,
	get *usecase.GetSessionUseCase,
	resume *usecase.ResumeSessionUseCase,
	getRange *usecase.GetBillingRangeUseCase,
	saveRange *usecase.SaveBillingRangeUseCase,
) *DuesHandler {
	return &DuesHandler{
		checkBill:    checkBill,
		lifetime:     lifetime,
		classSummary: classSummary,
		create:       create,
		confirm:      confirm,
		cancel:       cancel,
		get:          get,
		resume:       resume,
		getRange:     getRange,
		saveRange:    saveRange,
	}
}

// mapError translates domain errors to gRPC status codes.
func mapError(err error) error {
	switch {
	case errors.Is(err, model.ErrSessionNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, model.ErrSessionActive):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, model.ErrStaleSession):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, model.ErrNotReservable):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, model.ErrNoWeeksSelected):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, valueobject.ErrInvalidRange):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

// studentScope resolves the student a request may act for. Admins can
// name any student; everyone else is pinned to their own ID.
func studentScope(ctx context.Context, requested string) (uuid.UUID, error) {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return uuid.Nil, status.Error(codes.Unauthenticated, "no claims in context")
	}
	if requested == "" || requested == claims.UserID.String() {
		return claims.UserID, nil
	}
	if !claims.IsAdmin() {
		return uuid.Nil, status.Error(codes.PermissionDenied, "cannot act for another student")
	}
	id, err := uuid.Parse(requested)
	if err != nil {
		return uuid.Nil, status.Errorf(codes.InvalidArgument, "invalid student_id: %v", err)
	}
	return id, nil
}

func toWeekSelections(weeks []*WeekSelectionMsg) []dto.WeekSelection {
	out := make([]dto.WeekSelection, len(weeks))
	for i, w := range weeks {
		out[i] = dto.WeekSelection{Year: int(w.Year), Month: int(w.Month), Week: int(w.Week)}
	}
	return out
}

func toSessionMsg(s dto.SessionResponse) *SessionMsg {
	weeks := make([]*WeekSelectionMsg, len(s.Weeks))
	for i, w := range s.Weeks {
		weeks[i] = &WeekSelectionMsg{Year: int32(w.Year), Month: int32(w.Month), Week: int32(w.Week)}
	}
	return &SessionMsg{
		SessionID:        s.SessionID.String(),
		StudentID:        s.StudentID.String(),
		Weeks:            weeks,
		State:            s.State,
		TotalRupiah:      s.TotalRupiah,
		ReservedAt:       timestamppb.New(s.ReservedAt),
		ExpiresAt:        timestamppb.New(s.ExpiresAt),
		RemainingSeconds: int64(s.RemainingTTL / time.Second),
	}
}

func toCheckBillResponse(bill dto.BillResponse) *CheckBillResponse {
	months := make([]*MonthBillMsg, len(bill.Months))
	for i, m := range bill.Months {
		weeks := make([]*WeekCellMsg, len(m.Weeks))
		for j, w := range m.Weeks {
			weeks[j] = &WeekCellMsg{Week: int32(w.Week), Status: w.Status, Rupiah: w.Rupiah}
		}
		months[i] = &MonthBillMsg{
			Month:            int32(m.Month),
			Label:            m.Label,
			Weeks:            weeks,
			SettledWeeks:     int32(m.SettledWeeks),
			PendingWeeks:     int32(m.PendingWeeks),
			PaidRupiah:       m.PaidRupiah,
			Complete:         m.Complete,
			DeficiencyRupiah: m.DeficiencyRupiah,
		}
	}
	return &CheckBillResponse{
		StudentID:        bill.StudentID.String(),
		Year:             int32(bill.Year),
		Months:           months,
		PaidMonthCount:   int32(bill.PaidMonthCount),
		PaidRupiah:       bill.PaidRupiah,
		DeficiencyRupiah: bill.DeficiencyRupiah,
		Outstanding:      bill.Outstanding,
		Settled:          bill.Settled,
	}
}

func (h *DuesHandler) CheckBill(ctx context.Context, req *CheckBillRequest) (*CheckBillResponse, error) {
	studentID, err := studentScope(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	bill, err := h.checkBill.Execute(ctx, dto.CheckBillRequest{StudentID: studentID, Year: int(req.Year)})
	if err != nil {
		return nil, mapError(err)
	}
	return toCheckBillResponse(bill), nil
}

func (h *DuesHandler) GetLifetimeSummary(ctx context.Context, req *GetLifetimeSummaryRequest) (*GetLifetimeSummaryResponse, error) {
	studentID, err := studentScope(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	years := make([]int, len(req.Years))
	for i, y := range req.Years {
		years[i] = int(y)
	}
	summary, err := h.lifetime.Execute(ctx, dto.LifetimeSummaryRequest{StudentID: studentID, Years: years})
	if err != nil {
		return nil, mapError(err)
	}

	resp := &GetLifetimeSummaryResponse{
		StudentID:        summary.StudentID.String(),
		PaidMonthCount:   int32(summary.PaidMonthCount),
		PaidRupiah:       summary.PaidRupiah,
		DeficiencyRupiah: summary.DeficiencyRupiah,
	}
	for _, bill := range summary.Years {
		resp.Years = append(resp.Years, toCheckBillResponse(bill))
	}
	return resp, nil
}

func (h *DuesHandler) GetClassSummary(ctx context.Context, req *GetClassSummaryRequest) (*GetClassSummaryResponse, error) {
	if err := auth.RequireAnyRole(ctx, auth.RoleAdminDev, auth.RoleAdminKelas, auth.RoleAdminDosen); err != nil {
		return nil, err
	}
	classID, err := uuid.Parse(req.ClassID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid class_id: %v", err)
	}
	summary, err := h.classSummary.Execute(ctx, dto.ClassSummaryRequest{ClassID: classID, Year: int(req.Year)})
	if err != nil {
		return nil, mapError(err)
	}

	resp := &GetClassSummaryResponse{
		ClassID:          summary.ClassID.String(),
		CollectedRupiah:  summary.CollectedRupiah,
		DeficiencyRupiah: summary.DeficiencyRupiah,
	}
	for _, s := range summary.Students {
		resp.Students = append(resp.Students, &StudentRecapMsg{
			StudentID:        s.StudentID.String(),
			PaidRupiah:       s.PaidRupiah,
			DeficiencyRupiah: s.DeficiencyRupiah,
			Outstanding:      s.Outstanding,
		})
	}
	return resp, nil
}

func (h *DuesHandler) CreateSession(ctx context.Context, req *CreateSessionRequest) (*CreateSessionResponse, error) {
	studentID, err := studentScope(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	session, err := h.create.Execute(ctx, dto.CreateSessionRequest{
		StudentID: studentID,
		Weeks:     toWeekSelections(req.Weeks),
	})
	if err != nil {
		return nil, mapError(err)
	}
	return &CreateSessionResponse{Session: toSessionMsg(session)}, nil
}

func (h *DuesHandler) ConfirmSession(ctx context.Context, req *ConfirmSessionRequest) (*ConfirmSessionResponse, error) {
	if err := auth.RequireAnyRole(ctx, auth.RoleAdminDev, auth.RoleAdminKelas); err != nil {
		return nil, err
	}
	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid session_id: %v", err)
	}
	session, err := h.confirm.Execute(ctx, dto.ConfirmSessionRequest{SessionID: sessionID})
	if err != nil {
		return nil, mapError(err)
	}
	return &ConfirmSessionResponse{Session: toSessionMsg(session)}, nil
}

func (h *DuesHandler) CancelSession(ctx context.Context, req *CancelSessionRequest) (*CancelSessionResponse, error) {
	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid session_id: %v", err)
	}
	if err := h.authorizeSessionAccess(ctx, sessionID); err != nil {
		return nil, err
	}
	session, err := h.cancel.Execute(ctx, dto.CancelSessionRequest{SessionID: sessionID})
	if err != nil {
		return nil, mapError(err)
	}
	return &CancelSessionResponse{Session: toSessionMsg(session)}, nil
}

func (h *DuesHandler) GetSession(ctx context.Context, req *GetSessionRequest) (*GetSessionResponse, error) {
	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid session_id: %v", err)
	}
	if err := h.authorizeSessionAccess(ctx, sessionID); err != nil {
		return nil, err
	}
	session, err := h.get.Execute(ctx, dto.GetSessionRequest{SessionID: sessionID})
	if err != nil {
		return nil, mapError(err)
	}
	return &GetSessionResponse{Session: toSessionMsg(session)}, nil
}

func (h *DuesHandler) ResumeSession(ctx context.Context, req *ResumeSessionRequest) (*ResumeSessionResponse, error) {
	studentID, err := studentScope(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	session, err := h.resume.Execute(ctx, dto.ResumeSessionRequest{StudentID: studentID})
	if err != nil {
		return nil, mapError(err)
	}
	return &ResumeSessionResponse{Session: toSessionMsg(session)}, nil
}

func (h *DuesHandler) GetBillingRange(ctx context.Context, _ *GetBillingRangeRequest) (*GetBillingRangeResponse, error) {
	r, err := h.getRange.Execute(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return &GetBillingRangeResponse{Range: &BillingRangeMsg{
		StartMonth:   int32(r.StartMonth),
		EndMonth:     int32(r.EndMonth),
		ActivePeriod: int32(r.ActivePeriod),
	}}, nil
}

func (h *DuesHandler) SaveBillingRange(ctx context.Context, req *SaveBillingRangeRequest) (*SaveBillingRangeResponse, error) {
	if err := auth.RequireAnyRole(ctx, auth.RoleAdminDev, auth.RoleAdminKelas); err != nil {
		return nil, err
	}
	if req.Range == nil {
		return nil, status.Error(codes.InvalidArgument, "range is required")
	}
	r, err := h.saveRange.Execute(ctx, dto.SaveBillingRangeRequest{
		StartMonth:   int(req.Range.StartMonth),
		EndMonth:     int(req.Range.EndMonth),
		ActivePeriod: int(req.Range.ActivePeriod),
	})
	if err != nil {
		return nil, mapError(err)
	}
	return &SaveBillingRangeResponse{Range: &BillingRangeMsg{
		StartMonth:   int32(r.StartMonth),
		EndMonth:     int32(r.EndMonth),
		ActivePeriod: int32(r.ActivePeriod),
	}}, nil
}

// authorizeSessionAccess allows admins and the session's owner through.
func (h *DuesHandler) authorizeSessionAccess(ctx context.Context, sessionID uuid.UUID) error {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return status.Error(codes.Unauthenticated, "no claims in context")
	}
	if claims.IsAdmin() {
		return nil
	}
	session, err := h.get.Execute(ctx, dto.GetSessionRequest{SessionID: sessionID})
	if err != nil {
		return mapError(err)
	}
	if session.StudentID != claims.UserID {
		return status.Error(codes.PermissionDenied, "not the session owner")
	}
	return nil
}
