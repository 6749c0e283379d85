package subset

import (
	"github.com/pkg/errors"

	"github.com/USEPA/rsigserver-sub001/pkg/stream"
)

// Write writes a complete subset to a stream: the ASCII header, the scan
// timestamp array, the scan point-count array, and then the per-scan data
// values in variable-major order. Buffered output is committed before
// returning so socket peers observe the full subset.
func Write(s *stream.Stream, sub *Subset) error {
	if err := sub.EnsureValid(); err != nil {
		return errors.Wrap(err, "invalid subset")
	}

	// Write the header.
	if err := WriteHeader(s, &sub.Header); err != nil {
		return errors.Wrap(err, "unable to write header")
	}

	// Write the scan timestamps and point counts.
	timestamps := make([]int64, len(sub.Scans))
	counts := make([]int64, len(sub.Scans))
	for i := range sub.Scans {
		timestamps[i] = int64(sub.Scans[i].Timestamp)
		counts[i] = int64(sub.Scans[i].Points())
	}
	if err := s.Write64BitIntegers(timestamps); err != nil {
		return errors.Wrap(err, "unable to write scan timestamps")
	}
	if err := s.Write64BitIntegers(counts); err != nil {
		return errors.Wrap(err, "unable to write scan point counts")
	}

	// Write the data values.
	for i := range sub.Scans {
		for variable, row := range sub.Scans[i].Data {
			if err := s.Write64BitReals(row); err != nil {
				return errors.Wrapf(err, "unable to write scan %d variable '%s'",
					i, sub.Header.Variables[variable])
			}
		}
	}

	// Commit.
	return s.Flush()
}

// Read reads a complete subset from a stream.
func Read(s *stream.Stream) (*Subset, error) {
	// Read the header.
	header, err := ReadHeader(s)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read header")
	}

	// Read the scan timestamps and point counts.
	timestamps := make([]int64, header.Scans)
	counts := make([]int64, header.Scans)
	if err := s.Read64BitIntegers(timestamps); err != nil {
		return nil, errors.Wrap(err, "unable to read scan timestamps")
	}
	if err := s.Read64BitIntegers(counts); err != nil {
		return nil, errors.Wrap(err, "unable to read scan point counts")
	}

	// Read the data values.
	sub := &Subset{
		Header: *header,
		Scans:  make([]Scan, header.Scans),
	}
	for i := range sub.Scans {
		if counts[i] < 0 {
			return nil, errors.Errorf("negative point count in scan %d", i)
		}
		sub.Scans[i].Timestamp = Timestamp(timestamps[i])
		sub.Scans[i].Data = make([][]float64, len(header.Variables))
		for variable := range sub.Scans[i].Data {
			row := make([]float64, counts[i])
			if err := s.Read64BitReals(row); err != nil {
				return nil, errors.Wrapf(err, "unable to read scan %d variable '%s'",
					i, header.Variables[variable])
			}
			sub.Scans[i].Data[variable] = row
		}
	}

	// Validate the result.
	if err := sub.EnsureValid(); err != nil {
		return nil, errors.Wrap(err, "invalid subset")
	}

	// Success.
	return sub, nil
}

// Copy moves one complete subset from one stream to another, preserving wire
// bytes exactly.
func Copy(from, to *stream.Stream) error {
	sub, err := Read(from)
	if err != nil {
		return errors.Wrap(err, "unable to read subset")
	}
	return errors.Wrap(Write(to, sub), "unable to write subset")
}
