package database

import (
	"context"
	"fmt"
)

// Schema statements are idempotent so startup can run them unconditionally,
// mirroring how the deployment has always provisioned its tables.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS employees (
		id VARCHAR(20) PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		email VARCHAR(120) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		phone VARCHAR(20),
		department VARCHAR(50),
		designation VARCHAR(50),
		joining_date DATE NOT NULL DEFAULT CURRENT_DATE,
		base_salary NUMERIC(12,2) NOT NULL DEFAULT 0,
		role VARCHAR(10) NOT NULL DEFAULT 'employee',
		status VARCHAR(10) NOT NULL DEFAULT 'Active',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT uk_employees_email UNIQUE (email)
	)`,

	`CREATE TABLE IF NOT EXISTS attendance_records (
		id BIGSERIAL PRIMARY KEY,
		employee_id VARCHAR(20) NOT NULL REFERENCES employees(id),
		date DATE NOT NULL,
		status VARCHAR(10) NOT NULL,
		check_in TIMESTAMPTZ,
		check_out TIMESTAMPTZ,
		remarks VARCHAR(255),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT uk_attendance_employee_date UNIQUE (employee_id, date)
	)`,

	`CREATE TABLE IF NOT EXISTS payroll_records (
		transaction_id UUID PRIMARY KEY,
		employee_id VARCHAR(20) NOT NULL REFERENCES employees(id),
		month VARCHAR(7) NOT NULL,
		days_present NUMERIC(5,1) NOT NULL,
		total_days INT NOT NULL,
		earned_basic NUMERIC(12,2) NOT NULL,
		hra NUMERIC(12,2) NOT NULL,
		bonus NUMERIC(12,2) NOT NULL,
		gross_salary NUMERIC(12,2) NOT NULL,
		epf NUMERIC(12,2) NOT NULL,
		tds NUMERIC(12,2) NOT NULL,
		lop_deduction NUMERIC(12,2) NOT NULL,
		net_salary NUMERIC(12,2) NOT NULL,
		pdf_path VARCHAR(255),
		payment_date DATE NOT NULL,
		status VARCHAR(10) NOT NULL DEFAULT 'Processed',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT uk_payroll_employee_month UNIQUE (employee_id, month)
	)`,

	`CREATE TABLE IF NOT EXISTS otp_verifications (
		id BIGSERIAL PRIMARY KEY,
		email VARCHAR(120) NOT NULL,
		code VARCHAR(6) NOT NULL,
		purpose VARCHAR(20) NOT NULL,
		expires_at TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_otp_email_purpose ON otp_verifications (email, purpose)`,

	`CREATE TABLE IF NOT EXISTS pending_registrations (
		token UUID PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		email VARCHAR(120) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		phone VARCHAR(20),
		expires_at TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS admin_logs (
		id BIGSERIAL PRIMARY KEY,
		admin_id VARCHAR(20) NOT NULL,
		action VARCHAR(50) NOT NULL,
		description VARCHAR(255) NOT NULL,
		ip_address VARCHAR(45),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// Migrate creates the schema if it does not exist yet.
func (db *DB) Migrate(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement: %w", err)
		}
	}
	return nil
}
