package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workpulse-hr/workpulse-backend-go/internal/domain/attendance"
	"github.com/workpulse-hr/workpulse-backend-go/internal/domain/employee"
	"github.com/workpulse-hr/workpulse-backend-go/internal/domain/org"
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

// fakeAttendanceRepo stores records keyed by employee+date.
type fakeAttendanceRepo struct {
	records map[string]*attendance.Attendance
	nextID  int
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: map[string]*attendance.Attendance{}}
}

func key(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	f.nextID++
	att.ID = key(att.EmployeeID, att.Date)
	att.Version = 1
	att.CreatedAt = time.Now().UTC()
	att.UpdatedAt = att.CreatedAt
	copied := att
	f.records[att.ID] = &copied
	return att, nil
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id string, orgID string) (attendance.Attendance, error) {
	att, ok := f.records[id]
	if !ok || att.OrgID != orgID {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return *att, nil
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, orgID string) (*attendance.Attendance, error) {
	att, ok := f.records[key(employeeID, date)]
	if !ok || att.OrgID != orgID {
		return nil, nil
	}
	copied := *att
	return &copied, nil
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, att attendance.Attendance) error {
	stored, ok := f.records[att.ID]
	if !ok {
		return attendance.ErrAttendanceNotFound
	}
	att.Version = stored.Version + 1
	copied := att
	f.records[att.ID] = &copied
	return nil
}

func (f *fakeAttendanceRepo) UpdateBreaks(ctx context.Context, id string, orgID string, breaks attendance.BreakList, workMinutes int, expectedVersion int) error {
	stored, ok := f.records[id]
	if !ok {
		return attendance.ErrAttendanceNotFound
	}
	if stored.Version != expectedVersion {
		return attendance.ErrVersionConflict
	}
	stored.Breaks = breaks
	stored.WorkMinutes = &workMinutes
	stored.Version++
	return nil
}

func (f *fakeAttendanceRepo) List(ctx context.Context, filter attendance.AttendanceFilter, orgID string) ([]attendance.Attendance, int64, error) {
	var out []attendance.Attendance
	for _, att := range f.records {
		if att.OrgID == orgID {
			out = append(out, *att)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeAttendanceRepo) GetMyAttendance(ctx context.Context, employeeID string, filter attendance.MyAttendanceFilter, orgID string) ([]attendance.Attendance, int64, error) {
	var out []attendance.Attendance
	for _, att := range f.records {
		if att.OrgID == orgID && att.EmployeeID == employeeID {
			out = append(out, *att)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeAttendanceRepo) ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time, orgID string) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, att := range f.records {
		if att.EmployeeID == employeeID && !att.Date.Before(from) && !att.Date.After(to) {
			out = append(out, *att)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) HasRecordForDate(ctx context.Context, employeeID string, date string, orgID string) (bool, error) {
	for _, att := range f.records {
		if att.EmployeeID == employeeID && att.Date.Format("2006-01-02") == date {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAttendanceRepo) BulkCreateAbsences(ctx context.Context, absences []attendance.Attendance) error {
	for _, abs := range absences {
		if _, exists := f.records[key(abs.EmployeeID, abs.Date)]; exists {
			continue
		}
		if _, err := f.Create(ctx, abs); err != nil {
			return err
		}
	}
	return nil
}

type fakeEmployeeRepo struct {
	emp employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string, orgID string) (employee.Employee, error) {
	if f.emp.ID != id || f.emp.OrgID != orgID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return f.emp, nil
}

func (f *fakeEmployeeRepo) ListActive(ctx context.Context, orgID string) ([]employee.Employee, error) {
	return []employee.Employee{f.emp}, nil
}

func (f *fakeEmployeeRepo) UpdateSchedule(ctx context.Context, id string, orgID string, days employee.WorkingDays, dailyHours string) error {
	return nil
}

func (f *fakeEmployeeRepo) UpdateWiFiCheck(ctx context.Context, id string, orgID string, required bool) error {
	return nil
}

type fakeOrgRepo struct {
	organization org.Organization
}

func (f *fakeOrgRepo) GetByID(ctx context.Context, id string) (org.Organization, error) {
	if f.organization.ID != id {
		return org.Organization{}, org.ErrOrganizationNotFound
	}
	return f.organization, nil
}

func (f *fakeOrgRepo) List(ctx context.Context) ([]org.Organization, error) {
	return []org.Organization{f.organization}, nil
}

func (f *fakeOrgRepo) UpdateAllowedSSIDs(ctx context.Context, id string, ssids org.AllowedSSIDs) error {
	f.organization.AllowedSSIDs = ssids
	return nil
}

func testEmployee(requireWiFi bool) employee.Employee {
	return employee.Employee{
		ID:               testEmployeeID,
		OrgID:            testOrgID,
		FirstName:        "Ada",
		WorkingDays:      employee.WorkingDays{"monday", "tuesday", "wednesday", "thursday", "friday"},
		DailyHours:       decimal.NewFromInt(8),
		BaseSalary:       decimal.NewFromInt(20000),
		RequireWiFiCheck: requireWiFi,
		IsActive:         true,
	}
}

func testOrg() org.Organization {
	return org.Organization{
		ID:           testOrgID,
		Name:         "Workpulse",
		AllowedSSIDs: org.AllowedSSIDs{"office-net", "office-net-5g"},
	}
}

func newService(attRepo *fakeAttendanceRepo, requireWiFi bool) attendance.AttendanceService {
	return NewAttendanceService(
		nil,
		attRepo,
		&fakeEmployeeRepo{emp: testEmployee(requireWiFi)},
		&fakeOrgRepo{organization: testOrg()},
		6,
	)
}

func strPtr(s string) *string { return &s }

func TestCheckIn_CreatesTodayRecord(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	svc := newService(attRepo, false)

	resp, err := svc.CheckIn(authedContext(t, testEmployeeID), attendance.CheckInRequest{})
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusIncomplete, resp.Status)
	assert.NotNil(t, resp.CheckInTime)
	assert.Nil(t, resp.CheckOutTime)
	assert.False(t, resp.IsValidDay)
	assert.Equal(t, string(attendance.MethodSelfService), string(resp.Method))
	assert.Equal(t, testEmployeeID, resp.MarkedBy)
}

func TestCheckIn_TwiceSameDayFails(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	svc := newService(attRepo, false)
	ctx := authedContext(t, testEmployeeID)

	_, err := svc.CheckIn(ctx, attendance.CheckInRequest{})
	require.NoError(t, err)

	_, err = svc.CheckIn(ctx, attendance.CheckInRequest{})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestCheckIn_WiFiGate(t *testing.T) {
	tests := []struct {
		name    string
		ssid    *string
		wantErr error
	}{
		{name: "admitted network", ssid: strPtr("office-net")},
		{name: "admitted with surrounding quotes", ssid: strPtr(`"office-net"`)},
		{name: "unknown network", ssid: strPtr("coffee-shop"), wantErr: attendance.ErrLocationVerificationFailed},
		{name: "missing ssid", ssid: nil, wantErr: attendance.ErrLocationVerificationFailed},
		{name: "empty ssid", ssid: strPtr(""), wantErr: attendance.ErrLocationVerificationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newService(newFakeAttendanceRepo(), true)

			_, err := svc.CheckIn(authedContext(t, testEmployeeID), attendance.CheckInRequest{SSID: tt.ssid})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCheckIn_WiFiNotRequiredSkipsGate(t *testing.T) {
	svc := newService(newFakeAttendanceRepo(), false)

	// No SSID supplied and none required.
	_, err := svc.CheckIn(authedContext(t, testEmployeeID), attendance.CheckInRequest{})
	assert.NoError(t, err)
}

func TestCheckOut_WithoutCheckInFails(t *testing.T) {
	svc := newService(newFakeAttendanceRepo(), false)

	_, err := svc.CheckOut(authedContext(t, testEmployeeID), attendance.CheckOutRequest{})
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestCheckOut_ClosesDay(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	svc := newService(attRepo, false)
	ctx := authedContext(t, testEmployeeID)

	_, err := svc.CheckIn(ctx, attendance.CheckInRequest{})
	require.NoError(t, err)

	resp, err := svc.CheckOut(ctx, attendance.CheckOutRequest{})
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusPresent, resp.Status)
	assert.NotNil(t, resp.CheckOutTime)

	_, err = svc.CheckOut(ctx, attendance.CheckOutRequest{})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestCheckOut_NotAfterCheckInFails(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	svc := newService(attRepo, false)

	// Today's record carries a check-in that has not elapsed yet, so any
	// check-out now would not be strictly after it.
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	checkIn := now.Add(time.Hour)
	_, err := attRepo.Create(context.Background(), attendance.Attendance{
		EmployeeID: testEmployeeID,
		OrgID:      testOrgID,
		Date:       today,
		CheckIn:    &checkIn,
		MarkedBy:   testEmployeeID,
		Method:     attendance.MethodSelfService,
	})
	require.NoError(t, err)

	_, err = svc.CheckOut(authedContext(t, testEmployeeID), attendance.CheckOutRequest{})
	assert.ErrorIs(t, err, attendance.ErrCheckOutBeforeCheckIn)
}

func TestBackfill_CreatesCompleteDayAttributedToAdmin(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	svc := NewAttendanceService(
		nil,
		attRepo,
		&fakeEmployeeRepo{emp: testEmployee(false)},
		&fakeOrgRepo{organization: testOrg()},
		6,
	)

	resp, err := svc.Backfill(authedContext(t, testAdminID), attendance.BackfillRequest{
		EmployeeID:   testEmployeeID,
		Date:         "2025-04-07",
		CheckInTime:  "2025-04-07T09:00:00Z",
		CheckOutTime: "2025-04-07T17:30:00Z",
	})
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusPresent, resp.Status)
	assert.Equal(t, string(attendance.MethodHR), string(resp.Method))
	assert.Equal(t, testAdminID, resp.MarkedBy)
	assert.InDelta(t, 8.5, resp.NetHours, 0.001)
	assert.True(t, resp.IsValidDay)
	assert.Equal(t, "8h 30m", resp.NetHoursLabel)
}

func TestBackfill_InvertedTimesRejected(t *testing.T) {
	svc := newService(newFakeAttendanceRepo(), false)

	_, err := svc.Backfill(authedContext(t, testAdminID), attendance.BackfillRequest{
		EmployeeID:   testEmployeeID,
		Date:         "2025-04-07",
		CheckInTime:  "2025-04-07T17:00:00Z",
		CheckOutTime: "2025-04-07T09:00:00Z",
	})
	assert.Error(t, err)
}

func TestCheckIn_ReclaimsAbsenceRecord(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	svc := newService(attRepo, false)

	// Nightly sweep wrote a zero-hour absence row for today.
	today := time.Now().UTC()
	todayDate := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	_, err := attRepo.Create(context.Background(), attendance.Attendance{
		EmployeeID: testEmployeeID,
		OrgID:      testOrgID,
		Date:       todayDate,
		Breaks:     attendance.BreakList{},
		MarkedBy:   "system",
		Method:     attendance.MethodHR,
	})
	require.NoError(t, err)

	resp, err := svc.CheckIn(authedContext(t, testEmployeeID), attendance.CheckInRequest{})
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusIncomplete, resp.Status)
	// Still exactly one row for the day.
	assert.Len(t, attRepo.records, 1)
}
