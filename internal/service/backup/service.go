package backup

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/epayroll/payroll-backend-go/internal/domain/adminlog"
	"github.com/epayroll/payroll-backend-go/internal/domain/backup"
	"github.com/epayroll/payroll-backend-go/internal/domain/employee"
	"github.com/epayroll/payroll-backend-go/internal/domain/payroll"
	"github.com/epayroll/payroll-backend-go/internal/pkg/storage"
	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/sync/errgroup"
)

type BackupServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	payrollRepo  payroll.PayrollRepository
	adminLogRepo adminlog.AdminLogRepository
	fileStorage  storage.FileStorage
	payslipDir   string // local directory holding the payslip artifacts
}

func NewBackupService(
	employeeRepo employee.EmployeeRepository,
	payrollRepo payroll.PayrollRepository,
	adminLogRepo adminlog.AdminLogRepository,
	fileStorage storage.FileStorage,
	payslipDir string,
) backup.BackupService {
	return &BackupServiceImpl{
		employeeRepo: employeeRepo,
		payrollRepo:  payrollRepo,
		adminLogRepo: adminLogRepo,
		fileStorage:  fileStorage,
		payslipDir:   payslipDir,
	}
}

func (s *BackupServiceImpl) Run(ctx context.Context) (backup.BackupResponse, error) {
	now := time.Now()
	stamp := now.Format("20060102_150405")

	var (
		archive []byte
		export  []byte
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		archive, err = zipDirectory(s.payslipDir)
		if err != nil {
			return fmt.Errorf("failed to archive payslips: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		export, err = s.exportData(gCtx)
		if err != nil {
			return fmt.Errorf("failed to export data: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return backup.BackupResponse{}, err
	}

	archivePath, err := s.fileStorage.Upload(ctx,
		bytes.NewReader(archive),
		fmt.Sprintf("backups/payslips_%s.zip", stamp),
		"application/zip")
	if err != nil {
		return backup.BackupResponse{}, fmt.Errorf("failed to store payslip archive: %w", err)
	}

	exportPath, err := s.fileStorage.Upload(ctx,
		bytes.NewReader(export),
		fmt.Sprintf("backups/export_%s.sql", stamp),
		"application/sql")
	if err != nil {
		return backup.BackupResponse{}, fmt.Errorf("failed to store data export: %w", err)
	}

	slog.Info("Backup completed", "archive", archivePath, "export", exportPath)
	s.logAdminAction(ctx, fmt.Sprintf("Created backup %s", stamp))

	return backup.BackupResponse{
		ArchivePath: archivePath,
		ExportPath:  exportPath,
		CreatedAt:   now.Format(time.RFC3339),
	}, nil
}

// zipDirectory archives every regular file under root. A missing or empty
// directory yields an empty archive, not an error.
func zipDirectory(root string) ([]byte, error) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		dst, err := w.Create(filepath.ToSlash(rel))
		if err != nil {
			return err
		}

		src, err := os.Open(path)
		if err != nil {
			return err
		}
		defer src.Close()

		_, err = io.Copy(dst, src)
		return err
	})
	if err != nil {
		return nil, err
	}

	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// exportData dumps employees and their payroll ledger rows as INSERT
// statements so the export restores with plain psql.
func (s *BackupServiceImpl) exportData(ctx context.Context) ([]byte, error) {
	employees, err := s.employeeRepo.List(ctx, false)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString("-- payroll data export\n")
	fmt.Fprintf(&b, "-- generated at %s\n\n", time.Now().Format(time.RFC3339))

	for _, emp := range employees {
		fmt.Fprintf(&b,
			"INSERT INTO employees (id, name, email, joining_date, base_salary, role, status) VALUES (%s, %s, %s, %s, %s, %s, %s);\n",
			quote(emp.ID), quote(emp.Name), quote(emp.Email),
			quote(emp.JoiningDate.Format("2006-01-02")),
			emp.BaseSalary.String(), quote(string(emp.Role)), quote(string(emp.Status)))
	}
	b.WriteString("\n")

	for _, emp := range employees {
		records, err := s.payrollRepo.ListByEmployee(ctx, emp.ID)
		if err != nil {
			return nil, err
		}
		for _, rec := range records {
			fmt.Fprintf(&b,
				"INSERT INTO payroll_records (transaction_id, employee_id, month, days_present, total_days, gross_salary, net_salary, status) VALUES (%s, %s, %s, %s, %d, %s, %s, %s);\n",
				quote(rec.TransactionID), quote(rec.EmployeeID), quote(rec.Month),
				rec.DaysPresent.String(), rec.TotalDays,
				rec.GrossSalary.String(), rec.NetSalary.String(), quote(string(rec.Status)))
		}
	}

	return []byte(b.String()), nil
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func (s *BackupServiceImpl) logAdminAction(ctx context.Context, description string) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return
	}
	adminID, ok := claims["employee_id"].(string)
	if !ok || adminID == "" {
		return
	}

	logErr := s.adminLogRepo.Create(ctx, adminlog.AdminLog{
		AdminID:     adminID,
		Action:      adminlog.ActionBackupCreated,
		Description: description,
		IPAddress:   adminlog.ClientIPFromContext(ctx),
	})
	if logErr != nil {
		slog.Error("Failed to write admin log", "action", adminlog.ActionBackupCreated, "error", logErr)
	}
}
