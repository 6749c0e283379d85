package main

import (
	"math"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/USEPA/rsigserver-sub001/cmd"
	"github.com/USEPA/rsigserver-sub001/pkg/logging"
	"github.com/USEPA/rsigserver-sub001/pkg/must"
	"github.com/USEPA/rsigserver-sub001/pkg/stream"
	"github.com/USEPA/rsigserver-sub001/pkg/subset"
)

// generateSubset builds a synthetic subset: hourly scans of points spread
// diagonally across the domain with a smoothly varying ozone value. It's
// deterministic apart from the provenance stamp, making it suitable for
// exercising transfer peers.
func generateSubset(domain subset.Domain, scans, points int) *subset.Subset {
	header := subset.NewHeader(
		"xdrtool",
		"Synthetic ozone subset for transfer testing",
		[]string{subset.LongitudeVariable, subset.LatitudeVariable, "ozone"},
		[]string{"deg", "deg", "ppb"},
		domain,
	)
	header.Scans = scans

	base := time.Now().UTC().Truncate(time.Hour)
	result := &subset.Subset{Header: *header, Scans: make([]subset.Scan, scans)}
	for i := range result.Scans {
		scan := &result.Scans[i]
		scan.Timestamp = subset.TimestampFromTime(base.Add(time.Duration(i) * time.Hour))
		scan.Data = make([][]float64, 3)
		for variable := range scan.Data {
			scan.Data[variable] = make([]float64, points)
		}
		for point := 0; point < points; point++ {
			fraction := 0.0
			if points > 1 {
				fraction = float64(point) / float64(points-1)
			}
			scan.Data[0][point] = domain.MinimumLongitude + fraction*(domain.MaximumLongitude-domain.MinimumLongitude)
			scan.Data[1][point] = domain.MinimumLatitude + fraction*(domain.MaximumLatitude-domain.MinimumLatitude)
			scan.Data[2][point] = 30 + 10*math.Sin(fraction*2*math.Pi+float64(i))
		}
	}
	return result
}

// generateMain is the entry point for the generate command.
func generateMain(_ *cobra.Command, arguments []string) error {
	// Validate arguments.
	if len(arguments) != 0 {
		return errors.New("unexpected arguments")
	}
	if generateConfiguration.scans < 1 {
		return errors.New("scan count must be positive")
	}
	if generateConfiguration.points < 1 {
		return errors.New("point count must be positive")
	}

	// Resolve the domain from configuration.
	configuration, err := loadConfiguration(rootConfiguration.configurationPath)
	if err != nil {
		return err
	}

	// Generate the subset and restrict it to the configured domain.
	sub, err := generateSubset(
		configuration.Domain,
		generateConfiguration.scans,
		generateConfiguration.points,
	).FilterDomain(configuration.Domain)
	if err != nil {
		return errors.Wrap(err, "unable to restrict subset to domain")
	}

	// Open the output stream and defer its closure.
	output, err := stream.OpenFile(generateConfiguration.output, stream.ModeWrite)
	if err != nil {
		return errors.Wrap(err, "unable to open output")
	}
	defer must.Close(output, logging.RootLogger.Sublogger("generate"))

	// Write the subset.
	return errors.Wrap(subset.Write(output, sub), "unable to write subset")
}

// generateCommand is the generate command.
var generateCommand = &cobra.Command{
	Use:   "generate",
	Short: "Emit a synthetic subset for transfer testing",
	Run:   cmd.Mainify(generateMain),
}

// generateConfiguration stores configuration for the generate command.
var generateConfiguration struct {
	// help indicates whether or not help information should be shown for the
	// command.
	help bool
	// output is the output stream name.
	output string
	// scans is the number of scans to generate.
	scans int
	// points is the number of points per scan.
	points int
}

func init() {
	// Grab a handle for the command line flags.
	flags := generateCommand.Flags()

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&generateConfiguration.help, "help", "h", false, "Show help information")

	// Wire up generate command flags.
	flags.StringVarP(&generateConfiguration.output, "output", "o", stream.StandardOutputName, "Set the output file")
	flags.IntVar(&generateConfiguration.scans, "scans", 4, "Set the number of scans")
	flags.IntVar(&generateConfiguration.points, "points", 100, "Set the number of points per scan")
}
