package postgresql_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/epayroll/payroll-backend-go/internal/domain/attendance"
	"github.com/epayroll/payroll-backend-go/internal/domain/employee"
	"github.com/epayroll/payroll-backend-go/internal/domain/payroll"
	"github.com/epayroll/payroll-backend-go/internal/pkg/database"
	"github.com/epayroll/payroll-backend-go/internal/repository/postgresql"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testDB     *database.DB
	testDBOnce sync.Once
)

// openTestDB connects once per run. Tests skip when TEST_DATABASE_URL is
// not set so the suite still passes on machines without Postgres.
func openTestDB(t *testing.T) *database.DB {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	testDBOnce.Do(func() {
		var err error
		testDB, err = database.NewPostgreSQLDB(dsn)
		if err != nil {
			panic("Failed to connect to test database: " + err.Error())
		}
		if err := testDB.Migrate(context.Background()); err != nil {
			panic("Failed to bootstrap test schema: " + err.Error())
		}
	})
	return testDB
}

func truncateTables(t *testing.T, db *database.DB) {
	ctx := context.Background()
	for _, table := range []string{"payroll_records", "attendance_records", "admin_logs", "employees"} {
		_, err := db.Exec(ctx, "TRUNCATE TABLE "+table+" CASCADE")
		require.NoError(t, err)
	}
}

func createTestEmployee(t *testing.T, db *database.DB, id string) employee.Employee {
	repo := postgresql.NewEmployeeRepository(db)
	emp, err := repo.Create(context.Background(), employee.Employee{
		ID:           id,
		Name:         "Test " + id,
		Email:        id + "@test.local",
		PasswordHash: "$2a$10$testhashtesthashtesthash",
		JoiningDate:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		BaseSalary:   decimal.NewFromInt(30000),
		Role:         employee.RoleEmployee,
		Status:       employee.StatusActive,
	})
	require.NoError(t, err)
	return emp
}

func TestEmployeeRepositoryNextID(t *testing.T) {
	db := openTestDB(t)
	truncateTables(t, db)
	repo := postgresql.NewEmployeeRepository(db)
	ctx := context.Background()

	id, err := repo.NextID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "EMP001", id)

	createTestEmployee(t, db, "EMP001")
	createTestEmployee(t, db, "EMP002")

	id, err = repo.NextID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "EMP003", id)
}

func TestEmployeeRepositoryDuplicateEmail(t *testing.T) {
	db := openTestDB(t)
	truncateTables(t, db)
	repo := postgresql.NewEmployeeRepository(db)
	ctx := context.Background()

	first := createTestEmployee(t, db, "EMP001")

	_, err := repo.Create(ctx, employee.Employee{
		ID:           "EMP002",
		Name:         "Duplicate",
		Email:        first.Email,
		PasswordHash: "x",
		JoiningDate:  time.Now(),
		BaseSalary:   decimal.NewFromInt(10000),
		Role:         employee.RoleEmployee,
		Status:       employee.StatusActive,
	})
	assert.ErrorIs(t, err, employee.ErrEmailExists)
}

func TestAttendanceRepositoryRejectsDuplicateDate(t *testing.T) {
	db := openTestDB(t)
	truncateTables(t, db)
	repo := postgresql.NewAttendanceRepository(db)
	ctx := context.Background()

	createTestEmployee(t, db, "EMP001")
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	_, err := repo.Create(ctx, attendance.Record{
		EmployeeID: "EMP001",
		Date:       date,
		Status:     attendance.StatusPresent,
	})
	require.NoError(t, err)

	_, err = repo.Create(ctx, attendance.Record{
		EmployeeID: "EMP001",
		Date:       date,
		Status:     attendance.StatusAbsent,
	})
	assert.ErrorIs(t, err, attendance.ErrAlreadyMarked)
}

func TestPayrollRepositoryUniquePerEmployeeMonth(t *testing.T) {
	db := openTestDB(t)
	truncateTables(t, db)
	repo := postgresql.NewPayrollRepository(db)
	ctx := context.Background()

	createTestEmployee(t, db, "EMP001")

	rec := payroll.PayrollRecord{
		TransactionID: uuid.Must(uuid.NewV7()).String(),
		EmployeeID:    "EMP001",
		Month:         "2025-06",
		DaysPresent:   decimal.NewFromInt(20),
		TotalDays:     30,
		EarnedBasic:   decimal.RequireFromString("20000.00"),
		HRA:           decimal.RequireFromString("12000.00"),
		Bonus:         decimal.RequireFromString("1500.00"),
		GrossSalary:   decimal.RequireFromString("33500.00"),
		EPF:           decimal.RequireFromString("3600.00"),
		TDS:           decimal.RequireFromString("458.33"),
		LOPDeduction:  decimal.RequireFromString("10000.00"),
		NetSalary:     decimal.RequireFromString("19441.67"),
		PaymentDate:   time.Now(),
		Status:        payroll.PayrollStatusProcessed,
	}

	created, err := repo.Create(ctx, rec)
	require.NoError(t, err)
	assert.True(t, created.NetSalary.Equal(rec.NetSalary))

	exists, err := repo.Exists(ctx, "EMP001", "2025-06")
	require.NoError(t, err)
	assert.True(t, exists)

	rec.TransactionID = uuid.Must(uuid.NewV7()).String()
	_, err = repo.Create(ctx, rec)
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordAlreadyExists)

	records, err := repo.ListByEmployee(ctx, "EMP001")
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestPayrollRepositoryMonthlyTotals(t *testing.T) {
	db := openTestDB(t)
	truncateTables(t, db)
	repo := postgresql.NewPayrollRepository(db)
	ctx := context.Background()

	createTestEmployee(t, db, "EMP001")
	createTestEmployee(t, db, "EMP002")

	for _, empID := range []string{"EMP001", "EMP002"} {
		_, err := repo.Create(ctx, payroll.PayrollRecord{
			TransactionID: uuid.Must(uuid.NewV7()).String(),
			EmployeeID:    empID,
			Month:         "2025-06",
			DaysPresent:   decimal.NewFromInt(30),
			TotalDays:     30,
			EarnedBasic:   decimal.RequireFromString("30000.00"),
			HRA:           decimal.RequireFromString("12000.00"),
			Bonus:         decimal.RequireFromString("1500.00"),
			GrossSalary:   decimal.RequireFromString("43500.00"),
			EPF:           decimal.RequireFromString("3600.00"),
			TDS:           decimal.RequireFromString("458.33"),
			LOPDeduction:  decimal.Zero,
			NetSalary:     decimal.RequireFromString("39441.67"),
			PaymentDate:   time.Now(),
			Status:        payroll.PayrollStatusProcessed,
		})
		require.NoError(t, err)
	}

	totals, err := repo.GetMonthlyTotals(ctx, 6)
	require.NoError(t, err)
	require.Len(t, totals, 1)
	assert.Equal(t, "2025-06", totals[0].Month)
	assert.Equal(t, int64(2), totals[0].Records)
	assert.True(t, totals[0].TotalNet.Equal(decimal.RequireFromString("78883.34")))
}
