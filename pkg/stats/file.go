package stats

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File is a tabular source of lifecycle statistics, typically the processed
// CSV extract but possibly a spreadsheet in XLSX or legacy XLS format.
type File struct {
	Name    string
	Content []byte
}

// ReadFile reads a local source file into memory.
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return &File{Name: path, Content: data}, nil
}

// Format is the lowercased file extension without the dot. Unknown or
// missing extensions are treated as CSV.
func (f *File) Format() string {
	switch ext := strings.ToLower(filepath.Ext(f.Name)); ext {
	case ".xlsx", ".xls", ".csv":
		return ext[1:]
	case "", ".txt":
		return "csv"
	default:
		return ext[1:]
	}
}

// ExtractRows calls handler for every row of the file's first sheet,
// header included.
func ExtractRows(f *File, handler func(row []string) error) error {
	switch f.Format() {
	case "csv":
		return ExtractDataFromCSV(f, handler)
	case "xlsx":
		return ExtractDataFromXLSX(f, handler)
	case "xls":
		return ExtractDataFromXLS(f, handler)
	default:
		return fmt.Errorf("%s: %w", f.Name, ErrUnsupportedFormat)
	}
}
