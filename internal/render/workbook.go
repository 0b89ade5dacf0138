package render

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/xuri/excelize/v2"

	"stock-sentiment-analyzer/internal/frame"
	"stock-sentiment-analyzer/internal/indicators"
	"stock-sentiment-analyzer/internal/interfaces"
	"stock-sentiment-analyzer/internal/types"
)

// CorrelationSheet is the name of the heatmap sheet.
const CorrelationSheet = "Correlation"

const (
	maxSheetName = 31
	dateLayout   = "2006-01-02"
)

// Sheet is the figure handle returned by Workbook.
type Sheet struct {
	Name    string
	Columns []string
	Rows    int
}

// Workbook renders every figure as a sheet of one Excel workbook. It is safe for
// concurrent use; nothing is written to disk until Save.
type Workbook struct {
	mu     sync.Mutex
	file   *excelize.File
	sheets int
}

var _ interfaces.Renderer = (*Workbook)(nil)

func NewWorkbook() *Workbook {
	return &Workbook{file: excelize.NewFile()}
}

// RenderIndicators writes the price panel (Close, moving averages, Bollinger bands)
// followed by the columns of each requested group. Unknown groups are ignored.
func (w *Workbook) RenderIndicators(_ context.Context, f *frame.Frame, ticker string, groups []string) (types.Figure, error) {
	if f == nil {
		return nil, frame.Invalid("render %s: nil frame", ticker)
	}
	if err := f.Require(frame.Close); err != nil {
		return nil, fmt.Errorf("render %s: %w", ticker, err)
	}
	columns := panelColumns(f, groups)

	w.mu.Lock()
	defer w.mu.Unlock()

	name, err := w.addSheet(ticker)
	if err != nil {
		return nil, err
	}
	header := make([]any, 0, len(columns)+1)
	header = append(header, "Date")
	for _, c := range columns {
		header = append(header, c)
	}
	if err := w.file.SetSheetRow(name, "A1", &header); err != nil {
		return nil, fmt.Errorf("render %s: %w", ticker, err)
	}
	for i := 0; i < f.Len(); i++ {
		row := make([]any, 0, len(columns)+1)
		row = append(row, f.Date(i).Format(dateLayout))
		for _, c := range columns {
			row = append(row, cell(f.Column(c)[i]))
		}
		if err := w.file.SetSheetRow(name, rowCell(i+2), &row); err != nil {
			return nil, fmt.Errorf("render %s: %w", ticker, err)
		}
	}
	return &Sheet{Name: name, Columns: columns, Rows: f.Len()}, nil
}

// RenderCorrelation writes the matrix with a red-yellow-green colour scale.
func (w *Workbook) RenderCorrelation(_ context.Context, m types.CorrelationMatrix) (types.Figure, error) {
	if len(m.Columns) == 0 {
		return nil, frame.Invalid("render correlation: empty matrix")
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	name, err := w.addSheet(CorrelationSheet)
	if err != nil {
		return nil, err
	}
	header := make([]any, 0, len(m.Columns)+1)
	header = append(header, "")
	for _, c := range m.Columns {
		header = append(header, c)
	}
	if err := w.file.SetSheetRow(name, "A1", &header); err != nil {
		return nil, fmt.Errorf("render correlation: %w", err)
	}
	for i, c := range m.Columns {
		row := make([]any, 0, len(m.Columns)+1)
		row = append(row, c)
		for _, v := range m.Values[i] {
			row = append(row, cell(v))
		}
		if err := w.file.SetSheetRow(name, rowCell(i+2), &row); err != nil {
			return nil, fmt.Errorf("render correlation: %w", err)
		}
	}

	last, err := excelize.CoordinatesToCellName(len(m.Columns)+1, len(m.Columns)+1)
	if err != nil {
		return nil, fmt.Errorf("render correlation: %w", err)
	}
	err = w.file.SetConditionalFormat(name, "B2:"+last, []excelize.ConditionalFormatOptions{{
		Type:     "3_color_scale",
		Criteria: "=",
		MinType:  "num",
		MinValue: "-1",
		MidType:  "num",
		MidValue: "0",
		MaxType:  "num",
		MaxValue: "1",
		MinColor: "#5A8AC6",
		MidColor: "#FFFFFF",
		MaxColor: "#F8696B",
	}})
	if err != nil {
		return nil, fmt.Errorf("render correlation: %w", err)
	}
	return &Sheet{Name: name, Columns: m.Columns, Rows: len(m.Columns)}, nil
}

// Empty reports whether nothing has been rendered yet.
func (w *Workbook) Empty() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.sheets == 0
}

// Save writes the workbook to path.
func (w *Workbook) Save(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.sheets == 0 {
		return frame.Invalid("render: nothing to save")
	}
	return w.file.SaveAs(path)
}

func (w *Workbook) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.Close()
}

// addSheet creates a uniquely named sheet. The first one takes over the default sheet.
func (w *Workbook) addSheet(base string) (string, error) {
	name := sheetName(base)
	for n := 2; ; n++ {
		idx, err := w.file.GetSheetIndex(name)
		if err != nil {
			return "", fmt.Errorf("render: sheet %q: %w", name, err)
		}
		if idx == -1 {
			break
		}
		suffix := fmt.Sprintf(" (%d)", n)
		name = sheetName(truncate(base, maxSheetName-len(suffix)) + suffix)
	}

	if w.sheets == 0 {
		if err := w.file.SetSheetName(w.file.GetSheetName(0), name); err != nil {
			return "", fmt.Errorf("render: sheet %q: %w", name, err)
		}
	} else if _, err := w.file.NewSheet(name); err != nil {
		return "", fmt.Errorf("render: sheet %q: %w", name, err)
	}
	w.sheets++
	return name, nil
}

// panelColumns orders the columns of a dashboard sheet.
func panelColumns(f *frame.Frame, groups []string) []string {
	seen := map[string]bool{}
	var out []string
	add := func(c string) {
		if f.Has(c) && !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	add(frame.Close)
	for _, c := range f.Columns() {
		if strings.HasPrefix(c, "SMA_") || strings.HasPrefix(c, "EMA_") {
			add(c)
		}
	}
	for _, c := range []string{"BB_UPPER", "BB_MIDDLE", "BB_LOWER"} {
		add(c)
	}
	for _, g := range groups {
		for _, c := range indicators.Columns(g) {
			add(c)
		}
	}
	return out
}

var sheetNameReplacer = strings.NewReplacer(
	":", "_", "\\", "_", "/", "_", "?", "_", "*", "_", "[", "_", "]", "_",
)

func sheetName(s string) string {
	s = sheetNameReplacer.Replace(strings.TrimSpace(s))
	if s == "" {
		s = "Sheet"
	}
	return truncate(s, maxSheetName)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n])
	}
	return s
}

func rowCell(row int) string {
	return fmt.Sprintf("A%d", row)
}

// cell leaves undefined values blank.
func cell(v float64) any {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}
