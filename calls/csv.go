package calls

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
)

var csvHeader = []string{"file", "transcription", "sentiment", "score", "satisfaction"}

// WriteCSV writes batch results as CSV with a header row.
func WriteCSV(w io.Writer, records []CallRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.File,
			r.Transcription,
			string(r.Sentiment),
			strconv.FormatFloat(r.Score, 'f', -1, 64),
			string(r.Satisfaction),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveCSV writes batch results to a file, creating or truncating it.
func SaveCSV(path string, records []CallRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteCSV(f, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
