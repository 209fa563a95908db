package excel

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/anushkasingh-09/excel-sheet-reader-chatbot/domain/sheet"

	"github.com/xuri/excelize/v2"
)

// DataReader handles reading Excel and CSV files into a raw sheet. Unlike a
// conventional tabular reader it makes no assumption about a header row:
// instruction and title rows above the real header are preserved so the
// boundary scan can see them.
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(filePath string) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &DataReader{filePath: filePath, fileType: fileType}
}

// ReadRaw reads the file into a RawSheet with no header interpretation.
func (r *DataReader) ReadRaw() (*sheet.RawSheet, error) {
	log.Printf("[DataReader] Starting to read %s file: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	switch r.fileType {
	case "csv":
		return r.readCSVRaw()
	case "xlsx":
		return r.readExcelRaw()
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
}

// readExcelRaw reads the first sheet of an Excel workbook.
func (r *DataReader) readExcelRaw() (*sheet.RawSheet, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheetName, err)
	}
	readTime := time.Since(startTime)
	log.Printf("[DataReader] Sheet %q read in %.2fms (%d rows)",
		sheetName, float64(readTime.Nanoseconds())/1e6, len(rows))

	if len(rows) == 0 {
		return nil, fmt.Errorf("Excel file has no rows")
	}

	return &sheet.RawSheet{Source: r.filePath, Rows: rows}, nil
}

// readCSVRaw reads a CSV file. Rows in these exports are ragged, so the
// per-record field count check is disabled.
func (r *DataReader) readCSVRaw() (*sheet.RawSheet, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	readStart := time.Now()
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	readTime := time.Since(readStart)
	log.Printf("[DataReader] CSV file read in %.2fms (%d rows)",
		float64(readTime.Nanoseconds())/1e6, len(rows))

	if len(rows) == 0 {
		return nil, fmt.Errorf("CSV file has no rows")
	}

	return &sheet.RawSheet{Source: r.filePath, Rows: rows}, nil
}
