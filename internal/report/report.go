// Package report renders the catalog and its layouts as text and JSON for
// headless use.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/litescript/ls-orrery/internal/layout"
	"github.com/litescript/ls-orrery/internal/planet"
)

// SnapshotExport is the JSON-serializable representation of a loaded
// catalog.
type SnapshotExport struct {
	FetchedAt time.Time      `json:"fetched_at"`
	Origin    string         `json:"origin"`
	Count     int            `json:"count"`
	Planets   []planet.Entry `json:"data"`
}

// ExportSnapshot converts a catalog to an exportable format. The planets
// field uses the "data" key so the export loads back as a catalog.
func ExportSnapshot(cat *planet.Catalog, origin string, fetchedAt time.Time) *SnapshotExport {
	entries := cat.Entries()
	return &SnapshotExport{
		FetchedAt: fetchedAt,
		Origin:    origin,
		Count:     len(entries),
		Planets:   entries,
	}
}

// WriteJSON writes the snapshot as JSON to the given writer.
func (s *SnapshotExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// SummaryRow represents one row in the summary table.
type SummaryRow struct {
	Name       string
	Diameter   float64 // km
	DistanceAU float64
	ScalePx    float64 // rendered diameter in Scale mode
	OffsetPx   float64 // distance from the sun center in Distance mode
	Retrograde bool
}

// GenerateSummaryRows lays the catalog out for a width x height window and
// returns one row per planet in catalog order.
func GenerateSummaryRows(cat *planet.Catalog, width, height float64) []SummaryRow {
	rows, _ := summarize(cat, width, height)
	return rows
}

// summarize builds the rows and also returns the Scale layout they were
// measured from.
func summarize(cat *planet.Catalog, width, height float64) ([]SummaryRow, layout.Result) {
	planets := cat.Planets()
	if len(planets) == 0 {
		return nil, layout.Result{Empty: true}
	}

	scale := layout.Scale(planets, width, height)
	dist := layout.Distance(planets, width, height)
	if scale.Empty || dist.Empty {
		return nil, scale
	}

	rows := make([]SummaryRow, len(planets))
	for i, p := range planets {
		rows[i] = SummaryRow{
			Name:       p.Name,
			Diameter:   p.Diameter(),
			DistanceAU: p.DistanceAU(),
			ScalePx:    scale.Bodies[i].Diameter,
			OffsetPx:   dist.Bodies[i].Center.X - dist.Sun.Center.X,
			Retrograde: p.Retrograde(),
		}
	}
	return rows, scale
}

// WriteSummaryTable writes a text table to the given writer.
func WriteSummaryTable(w io.Writer, cat *planet.Catalog, width, height float64, timestamp time.Time) {
	rows, scale := summarize(cat, width, height)

	fmt.Fprintf(w, "Solar System @ %s (%.0fx%.0f window)\n", timestamp.Format(time.RFC3339), width, height)
	fmt.Fprintln(w, strings.Repeat("─", 72))

	if len(rows) == 0 {
		fmt.Fprintln(w, "No planets loaded")
		return
	}

	// Header
	fmt.Fprintf(w, "%-10s %14s %10s %10s %10s %-10s\n",
		"Planet", "Diameter km", "Dist AU", "Scale px", "Offset px", "Spin")
	fmt.Fprintln(w, strings.Repeat("─", 72))

	// Rows
	for _, r := range rows {
		spin := "prograde"
		if r.Retrograde {
			spin = "retrograde"
		}
		fmt.Fprintf(w, "%-10s %14.1f %10.2f %10.1f %10.1f %-10s\n",
			truncateStr(r.Name, 10),
			r.Diameter,
			r.DistanceAU,
			r.ScalePx,
			r.OffsetPx,
			spin,
		)
	}

	fmt.Fprintf(w, "\nTotal: %d planets, scale view %.0f px tall, %.1f km per pixel\n",
		len(rows), scale.RequiredHeight, scale.KmPerPixel())
}

func truncateStr(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-2] + ".."
}
