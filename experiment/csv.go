package experiment

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/natefinch/atomic"
)

var csvHeader = []string{
	"protocol",
	"disposition",
	"agents",
	"spread",
	"target_evidence",
	"trials",
	"successes",
	"infeasible",
	"success_rate",
	"mean_rounds",
}

// WriteCSV writes one row per point after a header row.
func WriteCSV(w io.Writer, points []Point) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, p := range points {
		row := []string{
			p.Protocol.String(),
			p.Disposition.String(),
			strconv.Itoa(p.Agents),
			p.Spread,
			strconv.Itoa(p.TargetEvidence),
			strconv.Itoa(p.Trials),
			strconv.Itoa(p.Successes),
			strconv.Itoa(p.Infeasible),
			strconv.FormatFloat(p.SuccessRate(), 'f', 4, 64),
			strconv.FormatFloat(p.MeanRounds(), 'f', 4, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Save replaces the file at path with the csv of points.
// Readers never observe a partially written file.
func Save(path string, points []Point) error {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, points); err != nil {
		return err
	}
	if err := atomic.WriteFile(path, &buf); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
