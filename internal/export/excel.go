// Package export writes stat sheets to Excel workbooks.
package export

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/kenzliang/leeger/internal/filter"
	"github.com/kenzliang/leeger/internal/logger"
	"github.com/kenzliang/leeger/internal/model"
	"github.com/kenzliang/leeger/internal/navigator"
	"github.com/kenzliang/leeger/internal/statsheet"
)

// AllTimeSheet is the name of the sheet holding owner totals.
const AllTimeSheet = "All Time"

// Columns holding whole numbers are shown without decimals, everything else with two.
// Cells always keep the full value.
var wholeNumberStats = map[string]bool{
	"Games Played": true,
	"Wins":         true,
	"Losses":       true,
	"Ties":         true,
}

type row struct {
	id   string
	name string
}

type styles struct {
	header, whole, fraction int
}

func newStyles(f *excelize.File) (styles, error) {
	var s styles
	var err error
	if s.header, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err != nil {
		return s, err
	}
	if s.whole, err = f.NewStyle(&excelize.Style{NumFmt: 1}); err != nil {
		return s, err
	}
	s.fraction, err = f.NewStyle(&excelize.Style{NumFmt: 2})
	return s, err
}

// Workbook builds one sheet per year in the filter range plus an all-time sheet.
// Years without weeks get no sheet.
func Workbook(league *model.League, opts filter.Options) (*excelize.File, error) {
	all, err := filter.ForLeague(league, opts)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	st, err := newStyles(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	first := true
	for _, year := range navigator.YearsInRange(league, all) {
		if len(year.Weeks) == 0 {
			continue
		}
		stats, err := statsheet.ForYear(year, all.ForYear(year).Options())
		if err != nil {
			f.Close()
			return nil, err
		}
		rows := make([]row, 0, len(year.Teams))
		for _, t := range year.Teams {
			rows = append(rows, row{id: t.ID, name: t.Name})
		}
		name := strconv.Itoa(year.YearNumber)
		if err := addSheet(f, name, first, "Team Names", rows, stats, st); err != nil {
			f.Close()
			return nil, err
		}
		first = false
	}

	stats, err := statsheet.AllTime(league, opts)
	if err != nil {
		f.Close()
		return nil, err
	}
	idx := navigator.NewOwnerIndex(league)
	rows := make([]row, 0, len(league.Owners))
	for _, id := range idx.CanonicalIDs() {
		o, err := idx.Owner(id)
		if err != nil {
			f.Close()
			return nil, err
		}
		rows = append(rows, row{id: id, name: o.Name})
	}
	if err := addSheet(f, AllTimeSheet, first, "Owner Names", rows, stats, st); err != nil {
		f.Close()
		return nil, err
	}
	f.SetActiveSheet(0)
	return f, nil
}

func addSheet(f *excelize.File, name string, first bool, title string, rows []row, stats []statsheet.Stat, st styles) error {
	if first {
		if err := f.SetSheetName("Sheet1", name); err != nil {
			return err
		}
	} else if _, err := f.NewSheet(name); err != nil {
		return err
	}

	if err := f.SetCellValue(name, "A1", title); err != nil {
		return err
	}
	for i, r := range rows {
		if err := f.SetCellValue(name, cell(1, i+2), r.name); err != nil {
			return err
		}
	}
	for c, s := range stats {
		col := c + 2
		if err := f.SetCellValue(name, cell(col, 1), s.Name); err != nil {
			return err
		}
		for i, r := range rows {
			if err := f.SetCellValue(name, cell(col, i+2), number(s.Values[r.id])); err != nil {
				return err
			}
		}
		style := st.fraction
		if wholeNumberStats[s.Name] {
			style = st.whole
		}
		if len(rows) > 0 {
			if err := f.SetCellStyle(name, cell(col, 2), cell(col, len(rows)+1), style); err != nil {
				return err
			}
		}
	}

	last := cell(len(stats)+1, 1)
	if err := f.SetCellStyle(name, "A1", last, st.header); err != nil {
		return err
	}
	return f.SetColWidth(name, "A", "A", 24)
}

func cell(col int, row int) string {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		panic(fmt.Sprintf("cell %d,%d: %v", col, row, err))
	}
	return name
}

// number converts to the nearest double, the only numeric cell type xlsx has.
func number(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

// Save writes the workbook for a league to path.
func Save(path string, league *model.League, opts filter.Options) error {
	f, err := Workbook(league, opts)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	logger.WithLeague(league.Name).WithField("path", path).Info("Wrote workbook")
	return nil
}
