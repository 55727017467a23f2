package excel

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/pointdigital/manager-api/internal/model"
)

const (
	vouchersSheet = "Vouchers"
	summarySheet  = "Summary"
)

var voucherHeaders = []string{
	"ID",
	"Date",
	"Type",
	"Category",
	"Party",
	"Phone",
	"Description",
	"Amount",
	"Currency",
}

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Vouchers writes one row per voucher followed by a per-currency summary sheet.
func (g *Generator) Vouchers(vouchers []model.Voucher, generatedAt time.Time) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	file.SetSheetName("Sheet1", vouchersSheet)
	if err := g.writeVouchers(file, vouchers); err != nil {
		return nil, err
	}
	if _, err := file.NewSheet(summarySheet); err != nil {
		return nil, err
	}
	if err := g.writeSummary(file, vouchers, generatedAt); err != nil {
		return nil, err
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeVouchers(file *excelize.File, vouchers []model.Voucher) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(vouchersSheet, cell, value)
	}

	for i, header := range voucherHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		set(cell, header)
	}

	for i, v := range vouchers {
		row := i + 2
		set(fmt.Sprintf("A%d", row), v.ID)
		set(fmt.Sprintf("B%d", row), v.Date)
		set(fmt.Sprintf("C%d", row), typeLabel(v.Type))
		set(fmt.Sprintf("D%d", row), categoryLabel(v.Category))
		set(fmt.Sprintf("E%d", row), v.PartyName)
		set(fmt.Sprintf("F%d", row), v.PartyPhone)
		set(fmt.Sprintf("G%d", row), v.Description)
		set(fmt.Sprintf("H%d", row), v.Amount.InexactFloat64())
		set(fmt.Sprintf("I%d", row), v.Currency)
	}

	if err := file.SetPanes(vouchersSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}
	bold, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	_ = file.SetCellStyle(vouchersSheet, "A1", "I1", bold)

	_ = file.SetColWidth(vouchersSheet, "A", "A", 14)
	_ = file.SetColWidth(vouchersSheet, "B", "D", 16)
	_ = file.SetColWidth(vouchersSheet, "E", "F", 24)
	_ = file.SetColWidth(vouchersSheet, "G", "G", 45)
	_ = file.SetColWidth(vouchersSheet, "H", "I", 14)
	return nil
}

type currencyTotals struct {
	receipts decimal.Decimal
	payments decimal.Decimal
	count    int
}

func (g *Generator) writeSummary(file *excelize.File, vouchers []model.Voucher, generatedAt time.Time) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(summarySheet, cell, value)
	}

	totals := summarize(vouchers)
	currencies := make([]string, 0, len(totals))
	for currency := range totals {
		currencies = append(currencies, currency)
	}
	sort.Strings(currencies)

	set("A1", "Generated at")
	set("B1", generatedAt.UTC().Format("2006-01-02 15:04:05"))
	set("A2", "Vouchers")
	set("B2", len(vouchers))

	tableRow := 4
	set(fmt.Sprintf("A%d", tableRow), "Currency")
	set(fmt.Sprintf("B%d", tableRow), "Count")
	set(fmt.Sprintf("C%d", tableRow), "Receipts")
	set(fmt.Sprintf("D%d", tableRow), "Payments")
	set(fmt.Sprintf("E%d", tableRow), "Net")

	for i, currency := range currencies {
		t := totals[currency]
		row := tableRow + 1 + i
		set(fmt.Sprintf("A%d", row), currency)
		set(fmt.Sprintf("B%d", row), t.count)
		set(fmt.Sprintf("C%d", row), t.receipts.InexactFloat64())
		set(fmt.Sprintf("D%d", row), t.payments.InexactFloat64())
		set(fmt.Sprintf("E%d", row), t.receipts.Sub(t.payments).InexactFloat64())
	}

	_ = file.SetColWidth(summarySheet, "A", "A", 16)
	_ = file.SetColWidth(summarySheet, "B", "E", 20)
	return nil
}

func summarize(vouchers []model.Voucher) map[string]*currencyTotals {
	totals := make(map[string]*currencyTotals)
	for _, v := range vouchers {
		currency := v.Currency
		if currency == "" {
			currency = model.DefaultCurrency
		}
		t, ok := totals[currency]
		if !ok {
			t = &currencyTotals{receipts: decimal.Zero, payments: decimal.Zero}
			totals[currency] = t
		}
		t.count++
		switch v.Type {
		case model.VoucherTypeReceipt:
			t.receipts = t.receipts.Add(v.Amount)
		case model.VoucherTypePayment:
			t.payments = t.payments.Add(v.Amount)
		}
	}
	return totals
}

func typeLabel(t model.VoucherType) string {
	switch t {
	case model.VoucherTypeReceipt:
		return "Receipt"
	case model.VoucherTypePayment:
		return "Payment"
	default:
		return string(t)
	}
}

func categoryLabel(c model.VoucherCategory) string {
	switch c {
	case model.VoucherCategoryNone:
		return ""
	case model.VoucherCategorySalary:
		return "Salary"
	case model.VoucherCategoryDaily:
		return "Daily"
	case model.VoucherCategoryGeneral:
		return "General"
	case model.VoucherCategoryVoucher:
		return "Voucher"
	case model.VoucherCategoryOwnerWithdrawal:
		return "Owner withdrawal"
	case model.VoucherCategoryFreelance:
		return "Freelance"
	default:
		return string(c)
	}
}
