package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"baketrack-backend/internal/model"
	"baketrack-backend/internal/state"
	"baketrack-backend/pkg/format"
)

// profitMargin is the assumed margin for the laba figures; the sheet holds
// no cost data per sale, so profit is an estimate.
const profitMargin = 0.45

type Summary struct {
	Omzet             float64 `json:"omzet"`
	Laba              float64 `json:"laba"`
	AOV               float64 `json:"aov"`
	TotalTransactions int     `json:"total_transactions"`
	OmzetText         string  `json:"omzet_text"`
	LabaText          string  `json:"laba_text"`
	AOVText           string  `json:"aov_text"`
}

type TopProduct struct {
	Name string `json:"name"`
	Sold int    `json:"sold"`
	Icon string `json:"icon"`
}

type WeeklyPoint struct {
	Day   string  `json:"day"`
	Omzet float64 `json:"omzet"`
	Laba  float64 `json:"laba"`
}

type ReportService interface {
	Summary() Summary
	TopProducts(limit int) []TopProduct
	Weekly() []WeeklyPoint
	ExportCSV(w io.Writer) error
	ExportXLSX() (*excelize.File, error)
}

type reportService struct {
	state *state.Store
}

func NewReportService(stateStore *state.Store) ReportService {
	return &reportService{state: stateStore}
}

func (s *reportService) transactions() []model.Transaction {
	snap := s.state.Snapshot()
	if snap == nil {
		return nil
	}
	return snap.Transactions
}

func (s *reportService) Summary() Summary {
	txs := s.transactions()

	var omzet float64
	for _, t := range txs {
		omzet += t.Total
	}
	laba := omzet * profitMargin
	var aov float64
	if len(txs) > 0 {
		aov = omzet / float64(len(txs))
	}

	return Summary{
		Omzet:             omzet,
		Laba:              laba,
		AOV:               aov,
		TotalTransactions: len(txs),
		OmzetText:         format.Currency(omzet),
		LabaText:          format.Currency(laba),
		AOVText:           format.Currency(aov),
	}
}

// Fallback icons keyed by product-name keyword, for catalog entries
// without an image.
var defaultIcons = []struct {
	keyword string
	icon    string
}{
	{"Cupcake", "🧁"},
	{"Donat", "🍩"},
	{"Croissant", "🥐"},
	{"Roti", "🍞"},
	{"Cake", "🍰"},
}

func iconFor(name string, catalog *model.Product) string {
	if catalog != nil && catalog.Image != "" {
		return catalog.Image
	}
	for _, d := range defaultIcons {
		if strings.Contains(name, d.keyword) {
			return d.icon
		}
	}
	return "🥯"
}

// TopProducts sums quantities per product name across all transactions and
// returns the best sellers, highest first.
func (s *reportService) TopProducts(limit int) []TopProduct {
	snap := s.state.Snapshot()
	if snap == nil {
		return []TopProduct{}
	}

	counts := map[string]*TopProduct{}
	var order []string
	for _, t := range snap.Transactions {
		name := strings.TrimSpace(t.Product)
		entry, ok := counts[name]
		if !ok {
			entry = &TopProduct{Name: name, Icon: iconFor(name, snap.FindProductByName(name))}
			counts[name] = entry
			order = append(order, name)
		}
		entry.Sold += t.Qty
	}

	ranked := make([]TopProduct, 0, len(order))
	for _, name := range order {
		ranked = append(ranked, *counts[name])
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Sold > ranked[j].Sold })

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

var weekdayLabels = []string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"}

// Weekly buckets omzet and estimated laba per day of week, Monday first.
// Rows with unparseable dates are skipped.
func (s *reportService) Weekly() []WeeklyPoint {
	points := make([]WeeklyPoint, len(weekdayLabels))
	for i, label := range weekdayLabels {
		points[i] = WeeklyPoint{Day: label}
	}

	for _, t := range s.transactions() {
		parsed, ok := format.ParseDate(t.Date)
		if !ok {
			continue
		}
		// time.Weekday is Sunday-based; shift to Monday-first.
		idx := (int(parsed.Weekday()) + 6) % 7
		points[idx].Omzet += t.Total
		points[idx].Laba += t.Total * profitMargin
	}
	return points
}

var exportHeaders = []string{"Tanggal", "Produk", "Qty", "Harga", "Total"}

// ExportCSV writes the full transaction list as CSV, matching the
// dashboard's download format.
func (s *reportService) ExportCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeaders); err != nil {
		return err
	}
	for _, t := range s.transactions() {
		row := []string{
			t.Date,
			t.Product,
			strconv.Itoa(t.Qty),
			strconv.FormatFloat(t.Price, 'f', -1, 64),
			strconv.FormatFloat(t.Total, 'f', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportXLSX builds the same report as a workbook with a summary row.
func (s *reportService) ExportXLSX() (*excelize.File, error) {
	f := excelize.NewFile()
	const sheetName = "Laporan"
	f.SetSheetName("Sheet1", sheetName)

	for col, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return nil, err
		}
	}

	txs := s.transactions()
	for i, t := range txs {
		values := []any{format.Date(t.Date), t.Product, t.Qty, t.Price, t.Total}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, err
			}
		}
	}

	summary := s.Summary()
	totalRow := len(txs) + 3
	cell, err := excelize.CoordinatesToCellName(1, totalRow)
	if err != nil {
		return nil, err
	}
	if err := f.SetCellValue(sheetName, cell, fmt.Sprintf("Total omzet: %s", summary.OmzetText)); err != nil {
		return nil, err
	}
	return f, nil
}

// ExportFilename is the suggested download name for today's report.
func ExportFilename(ext string) string {
	return fmt.Sprintf("Laporan_Penjualan_%s.%s", time.Now().Format("2006-01-02"), ext)
}
