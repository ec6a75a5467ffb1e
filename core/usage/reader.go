// Package usage answers "what did each appliance consume on the most
// recent logged day?" from a tabular CSV usage log.
package usage

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/homevolt/homevolt/core/model"
)

// ErrDataSource indicates the usage log could not be read or lacks the
// columns a snapshot needs. No partial snapshot is fabricated.
var ErrDataSource = errors.New("usage log unreadable")

// Reader extracts latest-day snapshots from a CSV usage log.
type Reader struct {
	path string
}

// NewReader creates a Reader over the log file at path.
func NewReader(path string) *Reader { return &Reader{path: path} }

// Latest returns all records for the most recent date present in the
// log, in file order.
func (r *Reader) Latest(ctx context.Context) (model.Snapshot, error) {
	_ = ctx
	f, err := os.Open(r.path)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("%w: %v", ErrDataSource, err)
	}
	defer func() { _ = f.Close() }()
	return Parse(f)
}

// Parse reads a usage log from src and extracts the latest-day
// snapshot. The header must contain a date column; appliance, time and
// kwh columns are picked up by name. Time fields pass through verbatim.
func Parse(src io.Reader) (model.Snapshot, error) {
	cr := csv.NewReader(src)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("%w: %v", ErrDataSource, err)
	}
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	dateCol, ok := idx["date"]
	if !ok {
		return model.Snapshot{}, fmt.Errorf("%w: no date column", ErrDataSource)
	}

	type row struct {
		date time.Time
		rec  model.UsageRecord
	}
	var rows []row
	var latest time.Time
	for line := 2; ; line++ {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return model.Snapshot{}, fmt.Errorf("%w: %v", ErrDataSource, err)
		}
		d, err := time.Parse(model.DateLayout, strings.TrimSpace(fields[dateCol]))
		if err != nil {
			return model.Snapshot{}, fmt.Errorf("%w: line %d: bad date %q", ErrDataSource, line, fields[dateCol])
		}
		kwh := 0.0
		if raw := column(fields, idx, "kwh"); raw != "" {
			kwh, err = strconv.ParseFloat(raw, 64)
			if err != nil {
				return model.Snapshot{}, fmt.Errorf("%w: line %d: bad kwh %q", ErrDataSource, line, raw)
			}
		}
		rows = append(rows, row{date: d, rec: model.UsageRecord{
			Date:      d.Format(model.DateLayout),
			Appliance: column(fields, idx, "appliance"),
			StartTime: column(fields, idx, "start_time"),
			EndTime:   column(fields, idx, "end_time"),
			KWh:       kwh,
		}})
		if d.After(latest) {
			latest = d
		}
	}
	if latest.IsZero() {
		return model.Snapshot{}, fmt.Errorf("%w: no usage rows", ErrDataSource)
	}

	snap := model.Snapshot{Date: latest.Format(model.DateLayout)}
	for _, r := range rows {
		if r.date.Equal(latest) {
			snap.Records = append(snap.Records, r.rec)
		}
	}
	return snap, nil
}

func column(fields []string, idx map[string]int, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(fields) {
		return ""
	}
	return strings.TrimSpace(fields[i])
}
