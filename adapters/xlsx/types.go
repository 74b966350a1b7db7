package xlsx

import "encoding/xml"

// xlsxSST maps the sst element of the shared-strings part. Cells marked
// t="s" store an index into this table instead of inline text.
type xlsxSST struct {
	XMLName xml.Name `xml:"http://schemas.openxmlformats.org/spreadsheetml/2006/main sst"`
	SI      []xlsxSI `xml:"si"`
}

// xlsxSI is a single string item. Producers either store the whole value in
// one direct t element or split it into styled r runs; both shapes resolve
// to the same logical string.
type xlsxSI struct {
	T *xlsxText `xml:"t"`
	R []xlsxRun `xml:"r"`
}

type xlsxRun struct {
	T string `xml:"t"`
}

type xlsxText struct {
	Value string `xml:",chardata"`
}

// xlsxWorksheet maps the worksheet part down to the row/cell level; nothing
// else in the part is needed here.
type xlsxWorksheet struct {
	XMLName xml.Name  `xml:"http://schemas.openxmlformats.org/spreadsheetml/2006/main worksheet"`
	Rows    []xlsxRow `xml:"sheetData>row"`
}

type xlsxRow struct {
	R     string     `xml:"r,attr"`
	Cells []xlsxCell `xml:"c"`
}

// xlsxCell carries the positional reference (r, e.g. "C12"), the cell type
// (t, "s" for shared string) and the value node. V stays nil when the cell
// has no value node, which is distinct from an empty value.
type xlsxCell struct {
	R string  `xml:"r,attr"`
	T string  `xml:"t,attr"`
	V *string `xml:"v"`
}
