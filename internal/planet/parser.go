package planet

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// number accepts a JSON number or a string holding one.
type number struct {
	value float64
	set   bool
}

func (n *number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("not a number: %q", s)
		}
		n.value, n.set = v, true
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	n.value, n.set = v, true
	return nil
}

// record is the wire shape of one catalog entry. Earlier feeds used the
// unsuffixed field names; both spellings are accepted.
type record struct {
	Name               string `json:"name"`
	Radius             number `json:"radius"`
	RadiusKm           number `json:"radius_km"`
	DistanceFromSun    number `json:"distance_from_sun"`
	RotationPeriod     number `json:"rotation_period"`
	RotationPeriodDays number `json:"rotation_period_days"`
	OrbitalPeriod      number `json:"orbital_period"`
	OrbitalPeriodDays  number `json:"orbital_period_days"`
	Color              string `json:"color"`
}

// ErrMissingField is wrapped by per-entry errors for absent fields.
var ErrMissingField = errors.New("missing field")

func pick(primary, fallback number) (float64, bool) {
	if primary.set {
		return primary.value, true
	}
	if fallback.set {
		return fallback.value, true
	}
	return math.NaN(), false
}

func (r record) attributes() (Attributes, error) {
	radius, ok := pick(r.RadiusKm, r.Radius)
	if !ok {
		return Attributes{}, fmt.Errorf("radius_km: %w", ErrMissingField)
	}
	if !r.DistanceFromSun.set {
		return Attributes{}, fmt.Errorf("distance_from_sun: %w", ErrMissingField)
	}
	rotation, ok := pick(r.RotationPeriodDays, r.RotationPeriod)
	if !ok {
		return Attributes{}, fmt.Errorf("rotation_period_days: %w", ErrMissingField)
	}
	orbital, ok := pick(r.OrbitalPeriodDays, r.OrbitalPeriod)
	if !ok {
		return Attributes{}, fmt.Errorf("orbital_period_days: %w", ErrMissingField)
	}
	return Attributes{
		Name:               r.Name,
		RadiusKm:           radius,
		DistanceMillionKm:  r.DistanceFromSun.value,
		RotationPeriodDays: rotation,
		OrbitalPeriodDays:  orbital,
		Color:              r.Color,
	}, nil
}

// ParseResult holds a decoded catalog together with the entries that were
// dropped and the non-fatal warnings raised along the way.
type ParseResult struct {
	Catalog  *Catalog
	Rejected []error
	Warnings []string
}

// Parse decodes a catalog document. The document is either a JSON array of
// entries or an object with a "data" array. Malformed entries are rejected
// individually; only a malformed document is an error.
func Parse(data []byte) (*ParseResult, error) {
	entries, err := splitEntries(data)
	if err != nil {
		return nil, err
	}

	res := &ParseResult{Catalog: NewCatalog()}
	for i, raw := range entries {
		var rec record
		if err := json.Unmarshal(raw, &rec); err != nil {
			res.Rejected = append(res.Rejected, fmt.Errorf("entry %d: %w", i, err))
			continue
		}
		label := fmt.Sprintf("entry %d", i)
		if rec.Name != "" {
			label = fmt.Sprintf("entry %d (%s)", i, rec.Name)
		}

		attrs, err := rec.attributes()
		if err != nil {
			res.Rejected = append(res.Rejected, fmt.Errorf("%s: %w", label, err))
			continue
		}
		p, warnings, err := New(attrs)
		if err != nil {
			res.Rejected = append(res.Rejected, fmt.Errorf("%s: %w", label, err))
			continue
		}
		if err := res.Catalog.Add(p); err != nil {
			res.Rejected = append(res.Rejected, fmt.Errorf("%s: %w", label, err))
			continue
		}
		res.Warnings = append(res.Warnings, warnings...)
	}
	return res, nil
}

func splitEntries(data []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("empty catalog document")
	}

	var entries []json.RawMessage
	if trimmed[0] == '{' {
		var envelope struct {
			Data []json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, fmt.Errorf("decode catalog envelope: %w", err)
		}
		if envelope.Data == nil {
			return nil, errors.New("catalog envelope has no data array")
		}
		entries = envelope.Data
	} else if err := json.Unmarshal(trimmed, &entries); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return entries, nil
}

// Entry is the canonical wire form served by the catalog server.
type Entry struct {
	Name               string  `json:"name"`
	RadiusKm           float64 `json:"radius_km"`
	DistanceFromSun    float64 `json:"distance_from_sun"`
	RotationPeriodDays float64 `json:"rotation_period_days"`
	OrbitalPeriodDays  float64 `json:"orbital_period_days"`
	Color              string  `json:"color"`
}

// Entries converts the catalog back to its canonical wire form.
func (c *Catalog) Entries() []Entry {
	planets := c.Planets()
	out := make([]Entry, len(planets))
	for i, p := range planets {
		out[i] = Entry{
			Name:               p.Name,
			RadiusKm:           p.RadiusKm,
			DistanceFromSun:    p.DistanceFromSunKm / KmPerMillion,
			RotationPeriodDays: p.RotationPeriodDays,
			OrbitalPeriodDays:  p.OrbitalPeriodDays,
			Color:              p.Color,
		}
	}
	return out
}
