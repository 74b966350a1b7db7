package xlsx

import (
	"archive/zip"
	"math"
	"os"
	"path/filepath"
	"testing"

	"gobenford/internal/errors"
	"gobenford/internal/journalgen"
	"gobenford/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const defaultWorksheetPart = "xl/worksheets/sheet1.xml"

func writeContainer(t *testing.T, parts map[string]string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fixture.xlsx")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, content := range parts {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return path
}

const sharedStringsFlat = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" count="2" uniqueCount="2">
<si><t>AbsoluteAmount</t></si>
<si><t>Memo</t></si>
</sst>`

func TestExtractAmountsFromGeneratedWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "je.xlsx")
	require.NoError(t, testkit.WriteWorkbook(path,
		[]string{"JournalID", "Amount", "AbsoluteAmount"},
		[][]interface{}{
			{"JE-1", 10.0, 10.0},
			{"JE-2", -20.0, 20.0},
			{"JE-3", 0.0, 0.0},
			{"JE-4", 30.0, 30.0},
		},
	))

	amounts, err := NewExtractor(path, defaultWorksheetPart).ExtractAmounts()
	require.NoError(t, err)

	// AbsoluteAmount wins over Amount, and the zero row contributes nothing
	assert.Equal(t, []float64{10, 20, 30}, amounts)
}

func TestExtractAmountsFallsBackToAmountColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "je.xlsx")
	require.NoError(t, testkit.WriteWorkbook(path,
		[]string{"AbsoluteAmount", "Amount"},
		[][]interface{}{
			{41.5, -41.5},
			{nil, -7.25}, // AbsoluteAmount cell missing entirely
			{"", -9.0},   // present but empty
		},
	))

	amounts, err := NewExtractor(path, defaultWorksheetPart).ExtractAmounts()
	require.NoError(t, err)
	assert.Equal(t, []float64{41.5, -7.25, -9}, amounts)
}

func TestExtractAmountsOnlyAmountHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "je.xlsx")
	require.NoError(t, testkit.WriteWorkbook(path,
		[]string{"JournalID", "Amount"},
		[][]interface{}{
			{"JE-1", 123.0},
			{"JE-2", nil},
			{"JE-3", 0.5},
		},
	))

	amounts, err := NewExtractor(path, defaultWorksheetPart).ExtractAmounts()
	require.NoError(t, err)
	assert.Equal(t, []float64{123, 0.5}, amounts)
}

func TestExtractAmountsNoAmountColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "je.xlsx")
	require.NoError(t, testkit.WriteWorkbook(path,
		[]string{"JournalID", "Memo"},
		[][]interface{}{{"JE-1", "opening balance"}},
	))

	_, err := NewExtractor(path, defaultWorksheetPart).ExtractAmounts()
	require.Error(t, err)
	assert.Equal(t, errors.CodeSchemaError, errors.GetCode(err))
	assert.Contains(t, err.Error(), "AbsoluteAmount")
	assert.Contains(t, err.Error(), "Amount")
}

func TestExtractAmountsUnparseableValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "je.xlsx")
	require.NoError(t, testkit.WriteWorkbook(path,
		[]string{"Amount"},
		[][]interface{}{
			{12.0},
			{"not-a-number"},
		},
	))

	_, err := NewExtractor(path, defaultWorksheetPart).ExtractAmounts()
	require.Error(t, err)
	assert.Equal(t, errors.CodeValueError, errors.GetCode(err))
}

func TestExtractAmountsMissingWorkbook(t *testing.T) {
	_, err := NewExtractor(filepath.Join(t.TempDir(), "nope.xlsx"), defaultWorksheetPart).ExtractAmounts()
	require.Error(t, err)
	assert.Equal(t, errors.CodeFormatError, errors.GetCode(err))
}

func TestExtractAmountsMissingWorksheetPart(t *testing.T) {
	path := writeContainer(t, map[string]string{
		"xl/sharedStrings.xml": sharedStringsFlat,
	})

	_, err := NewExtractor(path, defaultWorksheetPart).ExtractAmounts()
	require.Error(t, err)
	assert.Equal(t, errors.CodeFormatError, errors.GetCode(err))
	assert.Contains(t, err.Error(), defaultWorksheetPart)
}

func TestExtractAmountsSharedStringRuns(t *testing.T) {
	// Header stored as two styled runs must resolve to one logical string
	sharedStrings := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" count="1" uniqueCount="1">
<si><r><rPr><b val="1"/></rPr><t>Absolute</t></r><r><t>Amount</t></r></si>
</sst>`
	worksheet := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
<sheetData>
<row r="1"><c r="A1" t="s"><v>0</v></c></row>
<row r="2"><c r="A2"><v>250</v></c></row>
<row r="3"><c r="A3"><v>0.037</v></c></row>
</sheetData>
</worksheet>`

	path := writeContainer(t, map[string]string{
		"xl/sharedStrings.xml":     sharedStrings,
		"xl/worksheets/sheet1.xml": worksheet,
	})

	amounts, err := NewExtractor(path, defaultWorksheetPart).ExtractAmounts()
	require.NoError(t, err)
	assert.Equal(t, []float64{250, 0.037}, amounts)
}

func TestExtractAmountsSharedStringIndexOutOfRange(t *testing.T) {
	worksheet := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
<sheetData>
<row r="1"><c r="A1" t="s"><v>7</v></c></row>
<row r="2"><c r="A2"><v>10</v></c></row>
</sheetData>
</worksheet>`

	path := writeContainer(t, map[string]string{
		"xl/sharedStrings.xml":     sharedStringsFlat,
		"xl/worksheets/sheet1.xml": worksheet,
	})

	_, err := NewExtractor(path, defaultWorksheetPart).ExtractAmounts()
	require.Error(t, err)
	assert.Equal(t, errors.CodeFormatError, errors.GetCode(err))
	assert.Contains(t, err.Error(), "out of range")
}

func TestExtractAmountsEmptySharedStringItem(t *testing.T) {
	// An empty <t/> is a present text node and resolves to ""
	sharedStrings := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" count="2" uniqueCount="2">
<si><t/></si>
<si><t>Amount</t></si>
</sst>`
	worksheet := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
<sheetData>
<row r="1"><c r="A1" t="s"><v>0</v></c><c r="B1" t="s"><v>1</v></c></row>
<row r="2"><c r="A2"><v>5</v></c><c r="B2"><v>60</v></c></row>
</sheetData>
</worksheet>`

	path := writeContainer(t, map[string]string{
		"xl/sharedStrings.xml":     sharedStrings,
		"xl/worksheets/sheet1.xml": worksheet,
	})

	amounts, err := NewExtractor(path, defaultWorksheetPart).ExtractAmounts()
	require.NoError(t, err)
	assert.Equal(t, []float64{60}, amounts)
}

func TestExtractAmountsFromSyntheticJournal(t *testing.T) {
	cfg := journalgen.DefaultConfig()
	cfg.Rows = 120
	cfg.ZeroRows = 12

	ds, err := journalgen.Generate(cfg)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "je_samples.xlsx")
	require.NoError(t, journalgen.WriteXLSX(path, ds))

	amounts, err := NewExtractor(path, defaultWorksheetPart).ExtractAmounts()
	require.NoError(t, err)

	// Zero rows drop out, everything else comes back as the AbsoluteAmount
	// column value in row order
	want := make([]float64, 0, len(ds.Amounts))
	for _, amount := range ds.Amounts {
		if amount == 0 {
			continue
		}
		want = append(want, math.Abs(amount))
	}
	assert.Equal(t, want, amounts)
}

func TestExtractAmountsMalformedWorksheet(t *testing.T) {
	path := writeContainer(t, map[string]string{
		"xl/sharedStrings.xml":     sharedStringsFlat,
		"xl/worksheets/sheet1.xml": "<worksheet><sheetData><row",
	})

	_, err := NewExtractor(path, defaultWorksheetPart).ExtractAmounts()
	require.Error(t, err)
	assert.Equal(t, errors.CodeFormatError, errors.GetCode(err))
}
