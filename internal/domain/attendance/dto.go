package attendance

import (
	"github.com/epayroll/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type MarkAttendanceRequest struct {
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"` // YYYY-MM-DD
	Status     string  `json:"status"`
	CheckIn    *string `json:"check_in,omitempty"`  // HH:MM
	CheckOut   *string `json:"check_out,omitempty"` // HH:MM
	Remarks    *string `json:"remarks,omitempty"`
}

func (r *MarkAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be in YYYY-MM-DD format"})
	}
	if !Status(r.Status).Valid() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be Present, Absent, Leave or Half-Day"})
	}
	if r.CheckIn != nil {
		if _, ok := validator.IsValidTimeOfDay(*r.CheckIn); !ok {
			errs = append(errs, validator.ValidationError{Field: "check_in", Message: "must be in HH:MM format"})
		}
	}
	if r.CheckOut != nil {
		if _, ok := validator.IsValidTimeOfDay(*r.CheckOut); !ok {
			errs = append(errs, validator.ValidationError{Field: "check_out", Message: "must be in HH:MM format"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// AmendAttendanceRequest corrects an existing record in place.
type AmendAttendanceRequest struct {
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"`
	Status     string  `json:"status"`
	Remarks    *string `json:"remarks,omitempty"`
}

func (r *AmendAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be in YYYY-MM-DD format"})
	}
	if !Status(r.Status).Valid() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be Present, Absent, Leave or Half-Day"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RecordResponse struct {
	ID         int64   `json:"id"`
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"`
	Status     Status  `json:"status"`
	CheckIn    *string `json:"check_in,omitempty"`
	CheckOut   *string `json:"check_out,omitempty"`
	Remarks    *string `json:"remarks,omitempty"`
}

type MonthSummaryResponse struct {
	EmployeeID    string          `json:"employee_id"`
	Month         string          `json:"month"`
	Present       int             `json:"present"`
	Absent        int             `json:"absent"`
	Leave         int             `json:"leave"`
	HalfDay       int             `json:"half_day"`
	EffectiveDays decimal.Decimal `json:"effective_days"`
}

func ToRecordResponse(rec Record) RecordResponse {
	resp := RecordResponse{
		ID:         rec.ID,
		EmployeeID: rec.EmployeeID,
		Date:       rec.Date.Format("2006-01-02"),
		Status:     rec.Status,
		Remarks:    rec.Remarks,
	}
	if rec.CheckIn != nil {
		t := rec.CheckIn.Format("15:04")
		resp.CheckIn = &t
	}
	if rec.CheckOut != nil {
		t := rec.CheckOut.Format("15:04")
		resp.CheckOut = &t
	}
	return resp
}
