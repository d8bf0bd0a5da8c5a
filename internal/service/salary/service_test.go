package salary

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workpulse-hr/workpulse-backend-go/internal/domain/employee"
	"github.com/workpulse-hr/workpulse-backend-go/internal/domain/salary"
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

// fakeSalaryRepo reproduces the ledger resolution order: latest effective
// date wins, creation time breaks ties.
type fakeSalaryRepo struct {
	records []salary.Record
	nextID  int
}

func (f *fakeSalaryRepo) Create(ctx context.Context, record salary.Record) (salary.Record, error) {
	f.nextID++
	record.ID = fmt.Sprintf("sal-%d", f.nextID)
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC().Add(time.Duration(f.nextID) * time.Millisecond)
	}
	record.UpdatedAt = record.CreatedAt
	f.records = append(f.records, record)
	return record, nil
}

func (f *fakeSalaryRepo) GetInForce(ctx context.Context, employeeID string, orgID string, date time.Time) (salary.Record, error) {
	var candidates []salary.Record
	for _, record := range f.records {
		if record.EmployeeID == employeeID && record.OrgID == orgID && !record.EffectiveFrom.After(date) {
			candidates = append(candidates, record)
		}
	}
	if len(candidates) == 0 {
		return salary.Record{}, salary.ErrNoSalaryInForce
	}
	sort.Slice(candidates, func(i, j int) bool {
		if !candidates[i].EffectiveFrom.Equal(candidates[j].EffectiveFrom) {
			return candidates[i].EffectiveFrom.After(candidates[j].EffectiveFrom)
		}
		return candidates[i].CreatedAt.After(candidates[j].CreatedAt)
	})
	return candidates[0], nil
}

func (f *fakeSalaryRepo) GetPending(ctx context.Context, employeeID string, orgID string, after time.Time) (salary.Record, error) {
	var candidates []salary.Record
	for _, record := range f.records {
		if record.EmployeeID == employeeID && record.OrgID == orgID && record.EffectiveFrom.After(after) {
			candidates = append(candidates, record)
		}
	}
	if len(candidates) == 0 {
		return salary.Record{}, salary.ErrSalaryRecordNotFound
	}
	sort.Slice(candidates, func(i, j int) bool {
		if !candidates[i].EffectiveFrom.Equal(candidates[j].EffectiveFrom) {
			return candidates[i].EffectiveFrom.After(candidates[j].EffectiveFrom)
		}
		return candidates[i].CreatedAt.After(candidates[j].CreatedAt)
	})
	return candidates[0], nil
}

func (f *fakeSalaryRepo) ListByEmployee(ctx context.Context, employeeID string, orgID string) ([]salary.Record, error) {
	var out []salary.Record
	for _, record := range f.records {
		if record.EmployeeID == employeeID && record.OrgID == orgID {
			out = append(out, record)
		}
	}
	return out, nil
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

func testEmployee() employee.Employee {
	return employee.Employee{
		ID:              testEmployeeID,
		OrgID:           testOrgID,
		FirstName:       "Ada",
		WorkingDays:     employee.WorkingDays{"monday", "tuesday", "wednesday", "thursday", "friday"},
		DailyHours:      decimal.NewFromInt(8),
		BaseSalary:      decimal.NewFromInt(20000),
		EmploymentStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		IsActive:        true,
	}
}

func TestGetCurrentSalary_EmptyLedgerFallsBackToProfile(t *testing.T) {
	svc := NewSalaryService(&fakeSalaryRepo{}, &fakeEmployeeRepo{emp: testEmployee()})

	resp, err := svc.GetCurrentSalary(authedContext(t, testAdminID), testEmployeeID, time.Now().UTC())
	require.NoError(t, err)

	assert.Equal(t, "20000.00", resp.Amount)
	assert.Equal(t, "profile", resp.Source)
}

func TestRecordSalary_DefaultsToFirstOfNextMonth(t *testing.T) {
	repo := &fakeSalaryRepo{}
	svc := NewSalaryService(repo, &fakeEmployeeRepo{emp: testEmployee()})

	reason := "annual review"
	resp, err := svc.RecordSalary(authedContext(t, testAdminID), salary.RecordSalaryRequest{
		EmployeeID: testEmployeeID,
		Amount:     "25000",
		Reason:     &reason,
	})
	require.NoError(t, err)

	expected := salary.NextEffectiveDate(time.Now().UTC()).Format("2006-01-02")
	assert.Equal(t, expected, resp.EffectiveFrom)
	assert.Equal(t, "25000.00", resp.Amount)
	assert.Equal(t, "20000.00", resp.PreviousAmount)
	assert.Equal(t, testAdminID, resp.CreatedBy)

	// The schedule in force was snapshotted onto the ledger row.
	require.Len(t, repo.records, 1)
	assert.Equal(t, []string{"monday", "tuesday", "wednesday", "thursday", "friday"}, repo.records[0].Schedule.WorkingDays)
}

func TestGetCurrentSalary_FutureRecordDoesNotApplyYet(t *testing.T) {
	repo := &fakeSalaryRepo{}
	svc := NewSalaryService(repo, &fakeEmployeeRepo{emp: testEmployee()})
	ctx := authedContext(t, testAdminID)

	past := "2025-01-01"
	future := "2099-01-01"
	reason := "adjustment"

	_, err := svc.RecordSalary(ctx, salary.RecordSalaryRequest{
		EmployeeID: testEmployeeID, Amount: "21000", EffectiveFrom: &past, Reason: &reason,
	})
	require.NoError(t, err)
	_, err = svc.RecordSalary(ctx, salary.RecordSalaryRequest{
		EmployeeID: testEmployeeID, Amount: "30000", EffectiveFrom: &future, Reason: &reason,
	})
	require.NoError(t, err)

	resp, err := svc.GetCurrentSalary(ctx, testEmployeeID, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, "21000.00", resp.Amount)
	assert.Equal(t, "ledger", resp.Source)
}

func TestGetCurrentSalary_SameEffectiveDateLatestWrittenWins(t *testing.T) {
	repo := &fakeSalaryRepo{}
	svc := NewSalaryService(repo, &fakeEmployeeRepo{emp: testEmployee()})
	ctx := authedContext(t, testAdminID)

	effective := "2025-03-01"
	reason := "adjustment"

	_, err := svc.RecordSalary(ctx, salary.RecordSalaryRequest{
		EmployeeID: testEmployeeID, Amount: "22000", EffectiveFrom: &effective, Reason: &reason,
	})
	require.NoError(t, err)
	// A correction written later for the same effective date.
	_, err = svc.RecordSalary(ctx, salary.RecordSalaryRequest{
		EmployeeID: testEmployeeID, Amount: "23000", EffectiveFrom: &effective, Reason: &reason,
	})
	require.NoError(t, err)

	resp, err := svc.GetCurrentSalary(ctx, testEmployeeID, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, "23000.00", resp.Amount)
	assert.Len(t, repo.records, 2) // the first row is history, not overwritten
}

func TestRecordSalary_ChangedAmountWithoutReasonRejected(t *testing.T) {
	repo := &fakeSalaryRepo{}
	svc := NewSalaryService(repo, &fakeEmployeeRepo{emp: testEmployee()})

	_, err := svc.RecordSalary(authedContext(t, testAdminID), salary.RecordSalaryRequest{
		EmployeeID: testEmployeeID,
		Amount:     "25000",
	})
	require.Error(t, err)
	assert.Empty(t, repo.records)
}

func TestRecordSalary_UnchangedTermsNeedNoReason(t *testing.T) {
	repo := &fakeSalaryRepo{}
	svc := NewSalaryService(repo, &fakeEmployeeRepo{emp: testEmployee()})

	// Same amount and schedule as the profile baseline, just re-recorded.
	_, err := svc.RecordSalary(authedContext(t, testAdminID), salary.RecordSalaryRequest{
		EmployeeID: testEmployeeID,
		Amount:     "20000",
	})
	require.NoError(t, err)
	require.Len(t, repo.records, 1)
}

func TestGetPendingSalary(t *testing.T) {
	repo := &fakeSalaryRepo{}
	svc := NewSalaryService(repo, &fakeEmployeeRepo{emp: testEmployee()})
	ctx := authedContext(t, testAdminID)

	resp, err := svc.GetPendingSalary(ctx, testEmployeeID)
	require.NoError(t, err)
	assert.Nil(t, resp.Pending)

	future := "2099-01-01"
	reason := "promotion"
	_, err = svc.RecordSalary(ctx, salary.RecordSalaryRequest{
		EmployeeID: testEmployeeID, Amount: "30000", EffectiveFrom: &future, Reason: &reason,
	})
	require.NoError(t, err)

	resp, err = svc.GetPendingSalary(ctx, testEmployeeID)
	require.NoError(t, err)
	require.NotNil(t, resp.Pending)
	assert.Equal(t, "30000.00", resp.Pending.Amount)
	assert.Equal(t, "20000.00", resp.Pending.PreviousAmount)

	// The pending row never changes what is in force today.
	current, err := svc.GetCurrentSalary(ctx, testEmployeeID, time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, "20000.00", current.Amount)
	assert.Equal(t, "profile", current.Source)
}

func TestRecordSalary_MidMonthEffectiveDateRejected(t *testing.T) {
	repo := &fakeSalaryRepo{}
	svc := NewSalaryService(repo, &fakeEmployeeRepo{emp: testEmployee()})

	midMonth := "2025-03-15"
	reason := "adjustment"
	_, err := svc.RecordSalary(authedContext(t, testAdminID), salary.RecordSalaryRequest{
		EmployeeID:    testEmployeeID,
		Amount:        "25000",
		EffectiveFrom: &midMonth,
		Reason:        &reason,
	})

	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	assert.Empty(t, repo.records)
}

func TestRecordSalary_NegativeAmountRejected(t *testing.T) {
	svc := NewSalaryService(&fakeSalaryRepo{}, &fakeEmployeeRepo{emp: testEmployee()})

	_, err := svc.RecordSalary(authedContext(t, testAdminID), salary.RecordSalaryRequest{
		EmployeeID: testEmployeeID,
		Amount:     "-100",
	})
	assert.Error(t, err)
}
