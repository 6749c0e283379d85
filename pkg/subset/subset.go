// Package subset implements the portable ASCII-plus-binary container format
// shared by the subsetting tools: a fixed-format multi-line ASCII header
// followed by big-endian 64-bit scan timestamps, 64-bit point counts, and
// 64-bit IEEE-754 data values, one per (variable, point) pair in
// variable-major order.
package subset

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	// LongitudeVariable is the conventional name of the longitude variable.
	LongitudeVariable = "longitude"
	// LatitudeVariable is the conventional name of the latitude variable.
	LatitudeVariable = "latitude"
)

// Domain is a rectangular longitude/latitude region used to bound subset
// data.
type Domain struct {
	// MinimumLongitude is the western bound in degrees.
	MinimumLongitude float64 `toml:"minimum_longitude" yaml:"minimum_longitude"`
	// MinimumLatitude is the southern bound in degrees.
	MinimumLatitude float64 `toml:"minimum_latitude" yaml:"minimum_latitude"`
	// MaximumLongitude is the eastern bound in degrees.
	MaximumLongitude float64 `toml:"maximum_longitude" yaml:"maximum_longitude"`
	// MaximumLatitude is the northern bound in degrees.
	MaximumLatitude float64 `toml:"maximum_latitude" yaml:"maximum_latitude"`
}

// EnsureValid ensures that the domain's bounds are ordered and within the
// geographic range.
func (d Domain) EnsureValid() error {
	if d.MinimumLongitude < -180 || d.MaximumLongitude > 180 {
		return errors.New("longitude bounds outside [-180, 180]")
	} else if d.MinimumLatitude < -90 || d.MaximumLatitude > 90 {
		return errors.New("latitude bounds outside [-90, 90]")
	} else if d.MinimumLongitude > d.MaximumLongitude {
		return errors.New("minimum longitude exceeds maximum")
	} else if d.MinimumLatitude > d.MaximumLatitude {
		return errors.New("minimum latitude exceeds maximum")
	}
	return nil
}

// Contains indicates whether or not a point falls within the domain.
func (d Domain) Contains(longitude, latitude float64) bool {
	return longitude >= d.MinimumLongitude && longitude <= d.MaximumLongitude &&
		latitude >= d.MinimumLatitude && latitude <= d.MaximumLatitude
}

// Expand grows the domain to cover other.
func (d *Domain) Expand(other Domain) {
	if other.MinimumLongitude < d.MinimumLongitude {
		d.MinimumLongitude = other.MinimumLongitude
	}
	if other.MinimumLatitude < d.MinimumLatitude {
		d.MinimumLatitude = other.MinimumLatitude
	}
	if other.MaximumLongitude > d.MaximumLongitude {
		d.MaximumLongitude = other.MaximumLongitude
	}
	if other.MaximumLatitude > d.MaximumLatitude {
		d.MaximumLatitude = other.MaximumLatitude
	}
}

// Header is the ASCII metadata block that precedes a subset's binary payload.
type Header struct {
	// Description is a free-text description of the subset's contents.
	Description string `yaml:"description"`
	// Provenance identifies the producing tool and run.
	Provenance string `yaml:"provenance"`
	// Timestamp is the production time of the subset.
	Timestamp time.Time `yaml:"timestamp"`
	// Variables are the names of the data variables, in payload order.
	Variables []string `yaml:"variables"`
	// Units are the units of the data variables, parallel to Variables.
	Units []string `yaml:"units"`
	// Scans is the number of timestamped data batches in the payload.
	Scans int `yaml:"scans"`
	// Domain is the longitude/latitude region covered by the data.
	Domain Domain `yaml:"domain"`
}

// NewHeader creates a header for tool-generated subsets, stamping provenance
// with the tool name and a unique run identifier so reruns are
// distinguishable.
func NewHeader(tool, description string, variables, units []string, domain Domain) *Header {
	return &Header{
		Description: description,
		Provenance:  fmt.Sprintf("%s,%s", tool, uuid.New().String()),
		Timestamp:   time.Now().UTC().Truncate(time.Second),
		Variables:   variables,
		Units:       units,
		Domain:      domain,
	}
}

// EnsureValid ensures that the header's fields are consistent.
func (h *Header) EnsureValid() error {
	if h == nil {
		return errors.New("nil header")
	} else if len(h.Variables) == 0 {
		return errors.New("no variables specified")
	} else if len(h.Units) != len(h.Variables) {
		return errors.New("variable and unit counts differ")
	} else if h.Scans < 0 {
		return errors.New("negative scan count")
	}
	return h.Domain.EnsureValid()
}

// variableIndex locates a variable by name, returning -1 if absent.
func (h *Header) variableIndex(name string) int {
	for i, variable := range h.Variables {
		if variable == name {
			return i
		}
	}
	return -1
}

// Scan is one timestamped batch of subset data points with a shared point
// count.
type Scan struct {
	// Timestamp is the scan's YYYYDDDHHMM timestamp.
	Timestamp Timestamp
	// Data holds one row per variable, each with one value per point.
	Data [][]float64
}

// Points returns the scan's point count.
func (s *Scan) Points() int {
	if len(s.Data) == 0 {
		return 0
	}
	return len(s.Data[0])
}

// EnsureValid ensures that the scan has the expected number of equal-length
// variable rows.
func (s *Scan) EnsureValid(variables int) error {
	if err := s.Timestamp.EnsureValid(); err != nil {
		return err
	} else if len(s.Data) != variables {
		return errors.Errorf("scan has %d variable rows, expected %d", len(s.Data), variables)
	}
	points := s.Points()
	for _, row := range s.Data {
		if len(row) != points {
			return errors.New("scan variable rows have differing point counts")
		}
	}
	return nil
}

// Subset is a complete in-memory subset: a header plus its scans.
type Subset struct {
	// Header is the subset's metadata.
	Header Header
	// Scans are the subset's timestamped data batches.
	Scans []Scan
}

// EnsureValid ensures that the subset's header and scans are mutually
// consistent.
func (sub *Subset) EnsureValid() error {
	if sub == nil {
		return errors.New("nil subset")
	} else if err := sub.Header.EnsureValid(); err != nil {
		return err
	} else if len(sub.Scans) != sub.Header.Scans {
		return errors.Errorf("subset has %d scans, header declares %d", len(sub.Scans), sub.Header.Scans)
	}
	for i := range sub.Scans {
		if err := sub.Scans[i].EnsureValid(len(sub.Header.Variables)); err != nil {
			return errors.Wrapf(err, "scan %d", i)
		}
	}
	return nil
}

// Points returns the subset's total point count across all scans.
func (sub *Subset) Points() int {
	var total int
	for i := range sub.Scans {
		total += sub.Scans[i].Points()
	}
	return total
}

// FilterDomain returns a copy of the subset containing only the points whose
// coordinates fall within domain. It requires the conventional longitude and
// latitude variables to be present. Scans left without points are dropped.
func (sub *Subset) FilterDomain(domain Domain) (*Subset, error) {
	if err := domain.EnsureValid(); err != nil {
		return nil, errors.Wrap(err, "invalid domain")
	}
	longitudeIndex := sub.Header.variableIndex(LongitudeVariable)
	latitudeIndex := sub.Header.variableIndex(LatitudeVariable)
	if longitudeIndex < 0 || latitudeIndex < 0 {
		return nil, errors.New("subset lacks longitude/latitude variables")
	}

	// Filter each scan.
	result := &Subset{Header: sub.Header}
	result.Header.Domain = domain
	for i := range sub.Scans {
		scan := &sub.Scans[i]
		filtered := Scan{
			Timestamp: scan.Timestamp,
			Data:      make([][]float64, len(scan.Data)),
		}
		for point := 0; point < scan.Points(); point++ {
			if !domain.Contains(scan.Data[longitudeIndex][point], scan.Data[latitudeIndex][point]) {
				continue
			}
			for variable := range scan.Data {
				filtered.Data[variable] = append(filtered.Data[variable], scan.Data[variable][point])
			}
		}
		if filtered.Points() > 0 {
			result.Scans = append(result.Scans, filtered)
		}
	}
	result.Header.Scans = len(result.Scans)

	// Success.
	return result, nil
}

// Merge appends other's scans to the subset. The two subsets must carry
// identical variables and units; the merged domain expands to cover both.
func (sub *Subset) Merge(other *Subset) error {
	if len(other.Header.Variables) != len(sub.Header.Variables) {
		return errors.New("variable counts differ")
	}
	for i := range sub.Header.Variables {
		if other.Header.Variables[i] != sub.Header.Variables[i] {
			return errors.Errorf("variable mismatch: '%s' != '%s'",
				other.Header.Variables[i], sub.Header.Variables[i])
		}
		if other.Header.Units[i] != sub.Header.Units[i] {
			return errors.Errorf("unit mismatch for '%s': '%s' != '%s'",
				sub.Header.Variables[i], other.Header.Units[i], sub.Header.Units[i])
		}
	}
	sub.Scans = append(sub.Scans, other.Scans...)
	sub.Header.Scans = len(sub.Scans)
	sub.Header.Domain.Expand(other.Header.Domain)
	return nil
}
