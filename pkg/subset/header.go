package subset

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/USEPA/rsigserver-sub001/pkg/stream"
)

const (
	// formatName is the container format's name, carried on the header's
	// first line.
	formatName = "Subset"
	// formatVersion is the container format's version, carried on the
	// header's first line.
	formatVersion = "1.0"
	// headerTimestampFormat is the ISO-like layout of the header's timestamp
	// line.
	headerTimestampFormat = "2006-01-02T15:04:05-0700"
	// maximumHeaderLineLength bounds a single header line.
	maximumHeaderLineLength = 4096
)

// headerLayoutLines are the fixed binary-layout documentation lines that
// terminate the ASCII header.
var headerLayoutLines = []string{
	"# MSB 64-bit integers (yyyydddhhmm) timestamps[scans] and",
	"# MSB 64-bit integers points[scans] and",
	"# IEEE-754 64-bit reals data_1[variables][points_1] ... data_S[variables][points_S]:",
}

// WriteHeader writes the ASCII header block to a stream.
func WriteHeader(s *stream.Stream, header *Header) error {
	if err := header.EnsureValid(); err != nil {
		return errors.Wrap(err, "invalid header")
	}

	// Compose the header text.
	builder := &strings.Builder{}
	fmt.Fprintf(builder, "%s %s\n", formatName, formatVersion)
	fmt.Fprintf(builder, "%s\n", header.Description)
	fmt.Fprintf(builder, "%s\n", header.Provenance)
	fmt.Fprintf(builder, "%s\n", header.Timestamp.UTC().Format(headerTimestampFormat))
	fmt.Fprintf(builder, "# Dimensions: variables scans\n")
	fmt.Fprintf(builder, "%d %d\n", len(header.Variables), header.Scans)
	fmt.Fprintf(builder, "# Variable names:\n")
	fmt.Fprintf(builder, "%s\n", strings.Join(header.Variables, " "))
	fmt.Fprintf(builder, "# Variable units:\n")
	fmt.Fprintf(builder, "%s\n", strings.Join(header.Units, " "))
	fmt.Fprintf(builder, "# Domain: <min_lon> <min_lat> <max_lon> <max_lat>\n")
	fmt.Fprintf(builder, "%g %g %g %g\n",
		header.Domain.MinimumLongitude, header.Domain.MinimumLatitude,
		header.Domain.MaximumLongitude, header.Domain.MaximumLatitude)
	for _, line := range headerLayoutLines {
		fmt.Fprintf(builder, "%s\n", line)
	}

	// Write it.
	return s.WriteString(builder.String())
}

// readHeaderLine reads one header line from a stream, requiring and trimming
// its newline.
func readHeaderLine(s *stream.Stream) (string, error) {
	line, err := s.ReadString(maximumHeaderLineLength)
	if err != nil {
		return "", err
	} else if !strings.HasSuffix(line, "\n") {
		return "", errors.New("header line too long or unterminated")
	}
	return strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r"), nil
}

// readCommentLine reads one header line and verifies that it's a comment.
func readCommentLine(s *stream.Stream) error {
	line, err := readHeaderLine(s)
	if err != nil {
		return err
	} else if !strings.HasPrefix(line, "#") {
		return errors.Errorf("expected comment line, found '%s'", line)
	}
	return nil
}

// ReadHeader reads and validates the ASCII header block from a stream.
func ReadHeader(s *stream.Stream) (*Header, error) {
	// Verify the format line.
	line, err := readHeaderLine(s)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read format line")
	}
	var name, version string
	if _, err := fmt.Sscanf(line, "%s %s", &name, &version); err != nil {
		return nil, errors.Errorf("malformed format line '%s'", line)
	} else if name != formatName {
		return nil, errors.Errorf("unsupported format '%s'", name)
	} else if version != formatVersion {
		return nil, errors.Errorf("unsupported format version '%s'", version)
	}

	// Read the description, provenance, and timestamp lines.
	header := &Header{}
	if header.Description, err = readHeaderLine(s); err != nil {
		return nil, errors.Wrap(err, "unable to read description")
	}
	if header.Provenance, err = readHeaderLine(s); err != nil {
		return nil, errors.Wrap(err, "unable to read provenance")
	}
	if line, err = readHeaderLine(s); err != nil {
		return nil, errors.Wrap(err, "unable to read timestamp")
	}
	if header.Timestamp, err = time.Parse(headerTimestampFormat, line); err != nil {
		return nil, errors.Wrapf(err, "malformed timestamp '%s'", line)
	}

	// Read the dimension counts.
	if err := readCommentLine(s); err != nil {
		return nil, errors.Wrap(err, "unable to read dimensions comment")
	}
	if line, err = readHeaderLine(s); err != nil {
		return nil, errors.Wrap(err, "unable to read dimensions")
	}
	var variables int
	if _, err := fmt.Sscanf(line, "%d %d", &variables, &header.Scans); err != nil {
		return nil, errors.Errorf("malformed dimensions line '%s'", line)
	} else if variables < 1 {
		return nil, errors.Errorf("invalid variable count %d", variables)
	} else if header.Scans < 0 {
		return nil, errors.Errorf("invalid scan count %d", header.Scans)
	}

	// Read the variable names.
	if err := readCommentLine(s); err != nil {
		return nil, errors.Wrap(err, "unable to read variable names comment")
	}
	if line, err = readHeaderLine(s); err != nil {
		return nil, errors.Wrap(err, "unable to read variable names")
	}
	if header.Variables = strings.Fields(line); len(header.Variables) != variables {
		return nil, errors.Errorf("found %d variable names, expected %d", len(header.Variables), variables)
	}

	// Read the variable units.
	if err := readCommentLine(s); err != nil {
		return nil, errors.Wrap(err, "unable to read variable units comment")
	}
	if line, err = readHeaderLine(s); err != nil {
		return nil, errors.Wrap(err, "unable to read variable units")
	}
	if header.Units = strings.Fields(line); len(header.Units) != variables {
		return nil, errors.Errorf("found %d variable units, expected %d", len(header.Units), variables)
	}

	// Read the domain.
	if err := readCommentLine(s); err != nil {
		return nil, errors.Wrap(err, "unable to read domain comment")
	}
	if line, err = readHeaderLine(s); err != nil {
		return nil, errors.Wrap(err, "unable to read domain")
	}
	if _, err := fmt.Sscanf(line, "%g %g %g %g",
		&header.Domain.MinimumLongitude, &header.Domain.MinimumLatitude,
		&header.Domain.MaximumLongitude, &header.Domain.MaximumLatitude); err != nil {
		return nil, errors.Errorf("malformed domain line '%s'", line)
	}

	// Skip the binary-layout documentation lines.
	for range headerLayoutLines {
		if err := readCommentLine(s); err != nil {
			return nil, errors.Wrap(err, "unable to read layout documentation")
		}
	}

	// Validate the result.
	if err := header.EnsureValid(); err != nil {
		return nil, errors.Wrap(err, "invalid header")
	}

	// Success.
	return header, nil
}
