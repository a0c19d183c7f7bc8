// Package document renders payslip statements and cycle exports as xlsx workbooks.
// Drafts are never rendered: a DRAFT cycle yields apperr.ErrCycleNotApproved.
package document

import (
	"bytes"
	"fmt"

	"payroll-backend/internal/apperr"
	"payroll-backend/internal/model"
	"payroll-backend/internal/payroll"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Issuer is the tenant printed at the top of every document.
type Issuer struct {
	Name     string
	Address  string
	Currency string
}

// sheet wraps an excelize file and keeps the first error, so rendering code reads top to bottom.
type sheet struct {
	f      *excelize.File
	name   string
	header int
	money  int
	err    error
}

func newSheet(name string) (*sheet, error) {
	f := excelize.NewFile()
	index, err := f.NewSheet(name)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	// 4 = "#,##0.00"
	money, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create money style: %w", err)
	}
	return &sheet{f: f, name: name, header: header, money: money}, nil
}

func (s *sheet) set(col, row int, value interface{}) {
	if s.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		s.err = err
		return
	}
	if d, ok := value.(decimal.Decimal); ok {
		value = d.InexactFloat64()
		if err := s.f.SetCellStyle(s.name, cell, cell, s.money); err != nil {
			s.err = err
			return
		}
	}
	s.err = s.f.SetCellValue(s.name, cell, value)
}

func (s *sheet) row(row int, values ...interface{}) {
	for i, v := range values {
		s.set(i+1, row, v)
	}
}

func (s *sheet) headerRow(row int, titles ...string) {
	for i, title := range titles {
		s.set(i+1, row, title)
		if s.err != nil {
			return
		}
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		s.err = s.f.SetCellStyle(s.name, cell, cell, s.header)
	}
}

func (s *sheet) widths(widths ...float64) {
	for i, w := range widths {
		if s.err != nil {
			return
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			s.err = err
			return
		}
		s.err = s.f.SetColWidth(s.name, col, col, w)
	}
}

func (s *sheet) bytes() ([]byte, error) {
	defer s.f.Close()
	if s.err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", s.err)
	}
	var buf bytes.Buffer
	if _, err := s.f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func requireApproved(cycle *model.PayCycle) error {
	if cycle == nil {
		return apperr.Wrap(apperr.ErrCycleNotFound, "cycle not loaded")
	}
	if cycle.Status == model.CycleDraft {
		return apperr.Wrap(apperr.ErrCycleNotApproved, "cycle %d is still a draft", cycle.ID)
	}
	return nil
}

// PayslipStatement renders one payslip with its payments. Employee, PayCycle and
// Payments must be loaded.
func PayslipStatement(issuer Issuer, p *model.Payslip) ([]byte, error) {
	if err := requireApproved(p.PayCycle); err != nil {
		return nil, err
	}

	s, err := newSheet("Payslip")
	if err != nil {
		return nil, err
	}
	s.widths(28, 22, 18, 18)

	paid := payroll.SumPayments(p.Payments)
	employee := "-"
	jobTitle := ""
	if p.Employee != nil {
		employee = p.Employee.Name
		jobTitle = p.Employee.JobTitle
	}

	s.row(1, issuer.Name)
	s.row(2, issuer.Address)
	s.row(4, "Payslip", fmt.Sprintf("#%d", p.ID))
	s.row(5, "Employee", employee)
	s.row(6, "Job title", jobTitle)
	s.row(7, "Period", p.PayCycle.Period.Format("2006-01"), p.PayCycle.Type)
	s.row(8, "Currency", issuer.Currency)

	s.headerRow(10, "Item", "Amount")
	s.row(11, "Gross", p.Gross)
	s.row(12, "Deductions", p.Deductions)
	s.row(13, "Net", p.Net)
	s.row(14, "Paid", paid)
	s.row(15, "Remaining", payroll.Remaining(p.Net, paid))
	s.row(16, "Status", string(p.Status))

	s.headerRow(18, "Reference", "Date", "Mode", "Amount")
	for i, payment := range p.Payments {
		s.row(19+i, payment.Reference, payment.Date.Format("2006-01-02"), string(payment.Mode), payment.Amount)
	}
	return s.bytes()
}

// CycleExport renders every payslip of a cycle, one per row, followed by a totals row.
// Payslips, their Employee and Payments must be loaded.
func CycleExport(issuer Issuer, cycle *model.PayCycle) ([]byte, error) {
	if err := requireApproved(cycle); err != nil {
		return nil, err
	}

	s, err := newSheet("Cycle")
	if err != nil {
		return nil, err
	}
	s.widths(28, 22, 14, 16, 16, 16, 16, 16, 12)

	s.row(1, issuer.Name, fmt.Sprintf("%s %s", cycle.Type, cycle.Period.Format("2006-01")), string(cycle.Status), issuer.Currency)
	s.headerRow(3, "Employee", "Job title", "Contract", "Gross", "Deductions", "Net", "Paid", "Remaining", "Status")

	var gross, deductions, net, paidTotal decimal.Decimal
	row := 4
	for _, p := range cycle.Payslips {
		name, title, contract := "-", "", ""
		if p.Employee != nil {
			name, title, contract = p.Employee.Name, p.Employee.JobTitle, string(p.Employee.ContractType)
		}
		paid := payroll.SumPayments(p.Payments)
		s.row(row, name, title, contract, p.Gross, p.Deductions, p.Net, paid, payroll.Remaining(p.Net, paid), string(p.Status))

		gross = gross.Add(p.Gross)
		deductions = deductions.Add(p.Deductions)
		net = net.Add(p.Net)
		paidTotal = paidTotal.Add(paid)
		row++
	}
	s.row(row+1, "Total", "", "", gross, deductions, net, paidTotal, payroll.Remaining(net, paidTotal))
	return s.bytes()
}
