package breaks

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workpulse-hr/workpulse-backend-go/internal/domain/attendance"
	"github.com/workpulse-hr/workpulse-backend-go/internal/domain/breaks"
	"github.com/workpulse-hr/workpulse-backend-go/internal/pkg/validator"
)

const (
	testOrgID      = "org-1"
	testEmployeeID = "emp-1"
	testAdminID    = "hr-1"
)

func authedContext(t *testing.T, employeeID string) context.Context {
	t.Helper()
	tokenAuth := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := tokenAuth.Encode(map[string]interface{}{
		"employee_id": employeeID,
		"org_id":      testOrgID,
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

// fakeAttendanceRepo keeps one record and simulates the version column.
type fakeAttendanceRepo struct {
	record attendance.Attendance
	// conflictsLeft forces UpdateBreaks to fail with a version conflict
	// this many times before accepting, simulating a concurrent writer.
	conflictsLeft int
	updateCalls   int
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	return att, nil
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id string, orgID string) (attendance.Attendance, error) {
	if f.record.ID != id || f.record.OrgID != orgID {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return f.record, nil
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, orgID string) (*attendance.Attendance, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, att attendance.Attendance) error {
	f.record = att
	f.record.Version++
	return nil
}

func (f *fakeAttendanceRepo) UpdateBreaks(ctx context.Context, id string, orgID string, breakList attendance.BreakList, workMinutes int, expectedVersion int) error {
	f.updateCalls++
	if f.conflictsLeft > 0 {
		f.conflictsLeft--
		// A concurrent writer bumped the row between read and write.
		f.record.Version++
		return attendance.ErrVersionConflict
	}
	if expectedVersion != f.record.Version {
		return attendance.ErrVersionConflict
	}
	f.record.Breaks = breakList
	f.record.WorkMinutes = &workMinutes
	f.record.Version++
	return nil
}

func (f *fakeAttendanceRepo) List(ctx context.Context, filter attendance.AttendanceFilter, orgID string) ([]attendance.Attendance, int64, error) {
	return nil, 0, nil
}

func (f *fakeAttendanceRepo) GetMyAttendance(ctx context.Context, employeeID string, filter attendance.MyAttendanceFilter, orgID string) ([]attendance.Attendance, int64, error) {
	return nil, 0, nil
}

func (f *fakeAttendanceRepo) ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time, orgID string) ([]attendance.Attendance, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) HasRecordForDate(ctx context.Context, employeeID string, date string, orgID string) (bool, error) {
	return f.record.Date.Format("2006-01-02") == date, nil
}

func (f *fakeAttendanceRepo) BulkCreateAbsences(ctx context.Context, absences []attendance.Attendance) error {
	return nil
}

// fakeBreakRequestRepo is a map-backed store.
type fakeBreakRequestRepo struct {
	requests map[string]breaks.BreakRequest
	nextID   int
}

func newFakeBreakRequestRepo() *fakeBreakRequestRepo {
	return &fakeBreakRequestRepo{requests: map[string]breaks.BreakRequest{}}
}

func (f *fakeBreakRequestRepo) Create(ctx context.Context, request breaks.BreakRequest) (breaks.BreakRequest, error) {
	f.nextID++
	request.ID = fmt.Sprintf("req-%d", f.nextID)
	request.CreatedAt = time.Now().UTC()
	request.UpdatedAt = request.CreatedAt
	f.requests[request.ID] = request
	return request, nil
}

func (f *fakeBreakRequestRepo) GetByID(ctx context.Context, id string, orgID string) (breaks.BreakRequest, error) {
	request, ok := f.requests[id]
	if !ok || request.OrgID != orgID {
		return breaks.BreakRequest{}, breaks.ErrBreakRequestNotFound
	}
	return request, nil
}

func (f *fakeBreakRequestRepo) Update(ctx context.Context, request breaks.BreakRequest) error {
	if _, ok := f.requests[request.ID]; !ok {
		return breaks.ErrBreakRequestNotFound
	}
	f.requests[request.ID] = request
	return nil
}

func (f *fakeBreakRequestRepo) Delete(ctx context.Context, id string, orgID string) error {
	if _, ok := f.requests[id]; !ok {
		return breaks.ErrBreakRequestNotFound
	}
	delete(f.requests, id)
	return nil
}

func (f *fakeBreakRequestRepo) List(ctx context.Context, filter breaks.BreakRequestFilter, orgID string) ([]breaks.BreakRequest, int64, error) {
	var out []breaks.BreakRequest
	for _, request := range f.requests {
		if request.OrgID != orgID {
			continue
		}
		if filter.EmployeeID != nil && request.EmployeeID != *filter.EmployeeID {
			continue
		}
		out = append(out, request)
	}
	return out, int64(len(out)), nil
}

func openDayRecord() attendance.Attendance {
	checkIn := time.Date(2025, 4, 7, 9, 0, 0, 0, time.UTC)
	checkOut := time.Date(2025, 4, 7, 18, 0, 0, 0, time.UTC)
	return attendance.Attendance{
		ID:         "att-1",
		EmployeeID: testEmployeeID,
		OrgID:      testOrgID,
		Date:       time.Date(2025, 4, 7, 0, 0, 0, 0, time.UTC),
		CheckIn:    &checkIn,
		CheckOut:   &checkOut,
		Breaks:     attendance.BreakList{},
		Version:    1,
	}
}

func newService(attRepo *fakeAttendanceRepo, reqRepo *fakeBreakRequestRepo) breaks.BreakRequestService {
	return NewBreakRequestService(nil, reqRepo, attRepo)
}

func pendingRequest(t *testing.T, svc breaks.BreakRequestService, reqRepo *fakeBreakRequestRepo) breaks.BreakRequestResponse {
	t.Helper()
	resp, err := svc.Submit(authedContext(t, testEmployeeID), breaks.SubmitBreakRequestRequest{
		AttendanceID: "att-1",
		StartTime:    "2025-04-07T13:00:00Z",
		EndTime:      "2025-04-07T13:30:00Z",
	})
	require.NoError(t, err)
	require.Equal(t, breaks.BreakRequestStatusPending, resp.Status)
	return resp
}

func TestSubmitRejectsWindowOutsideDay(t *testing.T) {
	attRepo := &fakeAttendanceRepo{record: openDayRecord()}
	svc := newService(attRepo, newFakeBreakRequestRepo())

	_, err := svc.Submit(authedContext(t, testEmployeeID), breaks.SubmitBreakRequestRequest{
		AttendanceID: "att-1",
		StartTime:    "2025-04-07T08:00:00Z", // before check-in
		EndTime:      "2025-04-07T08:30:00Z",
	})
	assert.Error(t, err)
}

func TestApproveAppendsBreakAndUpdatesTotals(t *testing.T) {
	attRepo := &fakeAttendanceRepo{record: openDayRecord()}
	reqRepo := newFakeBreakRequestRepo()
	svc := newService(attRepo, reqRepo)

	submitted := pendingRequest(t, svc, reqRepo)

	approved, err := svc.Approve(authedContext(t, testAdminID), breaks.ApproveBreakRequestRequest{ID: submitted.ID})
	require.NoError(t, err)

	assert.Equal(t, breaks.BreakRequestStatusApproved, approved.Status)
	require.NotNil(t, approved.BreakID)
	require.NotNil(t, approved.DurationMinutes)
	assert.Equal(t, 30, *approved.DurationMinutes)

	// The break landed on the record and net minutes were recomputed:
	// 9h gross minus 30m break.
	require.Len(t, attRepo.record.Breaks, 1)
	assert.Equal(t, *approved.BreakID, attRepo.record.Breaks[0].ID)
	require.NotNil(t, attRepo.record.WorkMinutes)
	assert.Equal(t, 510, *attRepo.record.WorkMinutes)
}

func TestApproveTwiceNeverAppendsDuplicate(t *testing.T) {
	attRepo := &fakeAttendanceRepo{record: openDayRecord()}
	reqRepo := newFakeBreakRequestRepo()
	svc := newService(attRepo, reqRepo)

	submitted := pendingRequest(t, svc, reqRepo)

	_, err := svc.Approve(authedContext(t, testAdminID), breaks.ApproveBreakRequestRequest{ID: submitted.ID})
	require.NoError(t, err)

	_, err = svc.Approve(authedContext(t, testAdminID), breaks.ApproveBreakRequestRequest{ID: submitted.ID})
	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)

	// The second approval appended nothing.
	assert.Len(t, attRepo.record.Breaks, 1)
}

func TestApproveRetriesOnceOnVersionConflict(t *testing.T) {
	attRepo := &fakeAttendanceRepo{record: openDayRecord(), conflictsLeft: 1}
	reqRepo := newFakeBreakRequestRepo()
	svc := newService(attRepo, reqRepo)

	submitted := pendingRequest(t, svc, reqRepo)

	approved, err := svc.Approve(authedContext(t, testAdminID), breaks.ApproveBreakRequestRequest{ID: submitted.ID})
	require.NoError(t, err)
	assert.Equal(t, breaks.BreakRequestStatusApproved, approved.Status)
	assert.Equal(t, 2, attRepo.updateCalls)
	assert.Len(t, attRepo.record.Breaks, 1)
}

func TestApproveGivesUpAfterSecondConflict(t *testing.T) {
	attRepo := &fakeAttendanceRepo{record: openDayRecord(), conflictsLeft: 2}
	reqRepo := newFakeBreakRequestRepo()
	svc := newService(attRepo, reqRepo)

	submitted := pendingRequest(t, svc, reqRepo)

	_, err := svc.Approve(authedContext(t, testAdminID), breaks.ApproveBreakRequestRequest{ID: submitted.ID})
	assert.ErrorIs(t, err, attendance.ErrVersionConflict)
	assert.Empty(t, attRepo.record.Breaks)
}

func TestRejectProcessedRequestFails(t *testing.T) {
	attRepo := &fakeAttendanceRepo{record: openDayRecord()}
	reqRepo := newFakeBreakRequestRepo()
	svc := newService(attRepo, reqRepo)

	submitted := pendingRequest(t, svc, reqRepo)

	_, err := svc.Approve(authedContext(t, testAdminID), breaks.ApproveBreakRequestRequest{ID: submitted.ID})
	require.NoError(t, err)

	_, err = svc.Reject(authedContext(t, testAdminID), breaks.RejectBreakRequestRequest{ID: submitted.ID, Reason: "too long"})
	assert.ErrorIs(t, err, breaks.ErrBreakRequestAlreadyProcessed)
}

func TestCancelOwnPendingRequest(t *testing.T) {
	attRepo := &fakeAttendanceRepo{record: openDayRecord()}
	reqRepo := newFakeBreakRequestRepo()
	svc := newService(attRepo, reqRepo)

	submitted := pendingRequest(t, svc, reqRepo)

	cancelled, err := svc.Cancel(authedContext(t, testEmployeeID), submitted.ID)
	require.NoError(t, err)
	assert.Equal(t, breaks.BreakRequestStatusCancelled, cancelled.Status)
	require.NotNil(t, cancelled.ReviewerNotes)
	assert.Equal(t, "cancelled by requester", *cancelled.ReviewerNotes)

	// Cancelled is terminal.
	_, err = svc.Approve(authedContext(t, testAdminID), breaks.ApproveBreakRequestRequest{ID: submitted.ID})
	assert.ErrorIs(t, err, breaks.ErrBreakRequestAlreadyProcessed)
}

func TestCancelSomeoneElsesRequestFails(t *testing.T) {
	attRepo := &fakeAttendanceRepo{record: openDayRecord()}
	reqRepo := newFakeBreakRequestRepo()
	svc := newService(attRepo, reqRepo)

	submitted := pendingRequest(t, svc, reqRepo)

	_, err := svc.Cancel(authedContext(t, "emp-2"), submitted.ID)
	assert.ErrorIs(t, err, breaks.ErrBreakRequestNotFound)
}

func TestDeleteOnlyPending(t *testing.T) {
	attRepo := &fakeAttendanceRepo{record: openDayRecord()}
	reqRepo := newFakeBreakRequestRepo()
	svc := newService(attRepo, reqRepo)

	submitted := pendingRequest(t, svc, reqRepo)

	_, err := svc.Approve(authedContext(t, testAdminID), breaks.ApproveBreakRequestRequest{ID: submitted.ID})
	require.NoError(t, err)

	err = svc.Delete(authedContext(t, testEmployeeID), submitted.ID)
	assert.ErrorIs(t, err, breaks.ErrOnlyPendingDeletable)
}

func TestDirectAssignCreatesApprovedRequestAndBreak(t *testing.T) {
	attRepo := &fakeAttendanceRepo{record: openDayRecord()}
	reqRepo := newFakeBreakRequestRepo()
	svc := newService(attRepo, reqRepo)

	resp, err := svc.DirectAssign(authedContext(t, testAdminID), breaks.DirectAssignBreakRequest{
		AttendanceID: "att-1",
		StartTime:    "2025-04-07T12:00:00Z",
		EndTime:      "2025-04-07T13:00:00Z",
	})
	require.NoError(t, err)

	assert.Equal(t, breaks.BreakRequestStatusApproved, resp.Status)
	assert.Equal(t, testEmployeeID, resp.EmployeeID)
	require.NotNil(t, resp.ReviewerID)
	assert.Equal(t, testAdminID, *resp.ReviewerID)
	require.Len(t, attRepo.record.Breaks, 1)
	assert.Equal(t, 60, attRepo.record.Breaks[0].DurationMinutes)
}

func TestEditApprovedRevisesBreakByID(t *testing.T) {
	attRepo := &fakeAttendanceRepo{record: openDayRecord()}
	reqRepo := newFakeBreakRequestRepo()
	svc := newService(attRepo, reqRepo)

	submitted := pendingRequest(t, svc, reqRepo)
	approved, err := svc.Approve(authedContext(t, testAdminID), breaks.ApproveBreakRequestRequest{ID: submitted.ID})
	require.NoError(t, err)

	edited, err := svc.EditApproved(authedContext(t, testAdminID), breaks.EditApprovedBreakRequest{
		ID:        submitted.ID,
		StartTime: "2025-04-07T13:00:00Z",
		EndTime:   "2025-04-07T14:00:00Z",
	})
	require.NoError(t, err)

	require.NotNil(t, edited.DurationMinutes)
	assert.Equal(t, 60, *edited.DurationMinutes)
	assert.Equal(t, approved.BreakID, edited.BreakID)

	require.Len(t, attRepo.record.Breaks, 1)
	assert.Equal(t, 60, attRepo.record.Breaks[0].DurationMinutes)
	// 9h gross minus the revised 1h break.
	require.NotNil(t, attRepo.record.WorkMinutes)
	assert.Equal(t, 480, *attRepo.record.WorkMinutes)
}

func TestEditApprovedMissingBreakFails(t *testing.T) {
	attRepo := &fakeAttendanceRepo{record: openDayRecord()}
	reqRepo := newFakeBreakRequestRepo()
	svc := newService(attRepo, reqRepo)

	submitted := pendingRequest(t, svc, reqRepo)

	// Still pending: there is no approved break to edit.
	_, err := svc.EditApproved(authedContext(t, testAdminID), breaks.EditApprovedBreakRequest{
		ID:        submitted.ID,
		StartTime: "2025-04-07T13:00:00Z",
		EndTime:   "2025-04-07T14:00:00Z",
	})
	assert.ErrorIs(t, err, breaks.ErrBreakNotFound)
}
