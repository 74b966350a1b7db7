package xlsx

import (
	"archive/zip"
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"gobenford/internal"
	"gobenford/internal/errors"
)

const (
	sharedStringsPart = "xl/sharedStrings.xml"

	// HeaderAbsoluteAmount is preferred over HeaderAmount when both columns
	// exist and the row's cell holds a usable value.
	HeaderAbsoluteAmount = "AbsoluteAmount"
	HeaderAmount         = "Amount"
)

// Extractor pulls non-zero numeric amounts out of an xlsx container by
// reading the zip parts directly: shared strings, then the worksheet's
// first row for headers, then the amount column(s) of every data row.
type Extractor struct {
	workbookPath  string
	worksheetPart string
	logger        *internal.Logger
}

// NewExtractor creates an extractor for the given workbook and worksheet part
func NewExtractor(workbookPath, worksheetPart string) *Extractor {
	return &Extractor{
		workbookPath:  workbookPath,
		worksheetPart: worksheetPart,
		logger:        internal.DefaultLogger,
	}
}

// ExtractAmounts opens the container, resolves headers from row 1 and
// returns the ordered non-zero amounts of every following row. The container
// handle is closed on every exit path.
func (e *Extractor) ExtractAmounts() ([]float64, error) {
	archive, err := zip.OpenReader(e.workbookPath)
	if err != nil {
		return nil, errors.WithCode(errors.CodeFormatError,
			errors.Wrapf(err, "failed to open workbook %s", e.workbookPath))
	}
	defer archive.Close()

	strs, err := e.loadSharedStrings(&archive.Reader)
	if err != nil {
		return nil, err
	}

	sheet, err := e.loadWorksheet(&archive.Reader)
	if err != nil {
		return nil, err
	}

	headers, err := resolveHeaders(sheet, strs)
	if err != nil {
		return nil, err
	}

	var absColumn, amountColumn string
	for column, header := range headers {
		switch header {
		case HeaderAbsoluteAmount:
			absColumn = column
		case HeaderAmount:
			amountColumn = column
		}
	}
	if absColumn == "" && amountColumn == "" {
		return nil, errors.SchemaError(
			"no amount column found: expected a header named \"AbsoluteAmount\" or \"Amount\" in row 1")
	}
	e.logger.Debug("amount columns resolved (AbsoluteAmount=%q, Amount=%q)", absColumn, amountColumn)

	var amounts []float64
	for _, row := range sheet.Rows[1:] {
		amount, ok, err := rowAmount(row, absColumn, amountColumn, strs)
		if err != nil {
			return nil, err
		}
		if !ok || amount == 0 {
			continue
		}
		amounts = append(amounts, amount)
	}

	e.logger.Info("extracted %d non-zero amounts from %s", len(amounts), e.workbookPath)
	return amounts, nil
}

// loadSharedStrings reads the shared-string part into an ordered table
func (e *Extractor) loadSharedStrings(archive *zip.Reader) ([]string, error) {
	data, err := readPart(archive, sharedStringsPart)
	if err != nil {
		return nil, err
	}

	var sst xlsxSST
	if err := xml.Unmarshal(data, &sst); err != nil {
		return nil, errors.WithCode(errors.CodeFormatError,
			errors.Wrapf(err, "failed to parse %s", sharedStringsPart))
	}

	strs := make([]string, 0, len(sst.SI))
	for _, si := range sst.SI {
		if si.T != nil {
			strs = append(strs, si.T.Value)
			continue
		}
		var sb strings.Builder
		for _, run := range si.R {
			sb.WriteString(run.T)
		}
		strs = append(strs, sb.String())
	}
	return strs, nil
}

func (e *Extractor) loadWorksheet(archive *zip.Reader) (*xlsxWorksheet, error) {
	data, err := readPart(archive, e.worksheetPart)
	if err != nil {
		return nil, err
	}

	var sheet xlsxWorksheet
	if err := xml.Unmarshal(data, &sheet); err != nil {
		return nil, errors.WithCode(errors.CodeFormatError,
			errors.Wrapf(err, "failed to parse %s", e.worksheetPart))
	}
	if len(sheet.Rows) == 0 {
		return nil, errors.SchemaError("worksheet has no rows; row 1 must carry column headers")
	}
	return &sheet, nil
}

// resolveHeaders reads only the first row of sheet data. Row 1 is always the
// header row; data rows start at row 2.
func resolveHeaders(sheet *xlsxWorksheet, strs []string) (map[string]string, error) {
	headers := make(map[string]string)
	for _, cell := range sheet.Rows[0].Cells {
		if cell.V == nil {
			continue
		}
		text, _, err := cellValue(cell, strs)
		if err != nil {
			return nil, err
		}
		headers[columnOf(cell.R)] = text
	}
	return headers, nil
}

// cellValue resolves a cell to its text, reporting absence when the cell has
// no value node. Shared-string cells must carry a valid table index.
func cellValue(cell xlsxCell, strs []string) (string, bool, error) {
	if cell.V == nil {
		return "", false, nil
	}
	if cell.T == "s" {
		index, err := strconv.Atoi(strings.TrimSpace(*cell.V))
		if err != nil {
			return "", false, errors.Newf(errors.CodeFormatError,
				"cell %s: invalid shared string index %q", cell.R, *cell.V)
		}
		if index < 0 || index >= len(strs) {
			return "", false, errors.Newf(errors.CodeFormatError,
				"cell %s: shared string index %d out of range (table has %d entries)", cell.R, index, len(strs))
		}
		return strs[index], true, nil
	}
	return *cell.V, true, nil
}

// rowAmount applies the row value selection policy: the AbsoluteAmount cell
// when present and non-empty, else the Amount cell, else nothing. A cell that
// is present but unparseable aborts the extraction rather than biasing the
// distribution.
func rowAmount(row xlsxRow, absColumn, amountColumn string, strs []string) (float64, bool, error) {
	cells := make(map[string]xlsxCell, len(row.Cells))
	for _, cell := range row.Cells {
		cells[columnOf(cell.R)] = cell
	}

	for _, column := range []string{absColumn, amountColumn} {
		if column == "" {
			continue
		}
		cell, exists := cells[column]
		if !exists {
			continue
		}
		raw, present, err := cellValue(cell, strs)
		if err != nil {
			return 0, false, err
		}
		if !present || raw == "" {
			continue
		}
		amount, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, false, errors.Newf(errors.CodeValueError,
				"cell %s: expected a numeric amount, got %q", cell.R, raw)
		}
		return amount, true, nil
	}
	return 0, false, nil
}

// columnOf derives the column identifier from a positional reference by
// stripping all non-alphabetic characters ("C12" -> "C")
func columnOf(ref string) string {
	var sb strings.Builder
	for _, ch := range ref {
		if (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z') {
			sb.WriteRune(ch)
		}
	}
	return sb.String()
}

func readPart(archive *zip.Reader, name string) ([]byte, error) {
	for _, file := range archive.File {
		if file.Name != name {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, errors.WithCode(errors.CodeFormatError,
				errors.Wrapf(err, "failed to open part %s", name))
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, errors.WithCode(errors.CodeFormatError,
				errors.Wrapf(err, "failed to read part %s", name))
		}
		return data, nil
	}
	return nil, errors.Newf(errors.CodeFormatError, "workbook is missing required part %s", name)
}
