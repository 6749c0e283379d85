package main

import (
	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/USEPA/rsigserver-sub001/cmd"
	"github.com/USEPA/rsigserver-sub001/pkg/logging"
	"github.com/USEPA/rsigserver-sub001/pkg/must"
	"github.com/USEPA/rsigserver-sub001/pkg/stream"
	"github.com/USEPA/rsigserver-sub001/pkg/subset"
)

// readSubsetFile reads one complete subset from a file path.
func readSubsetFile(path string) (*subset.Subset, error) {
	source, err := stream.OpenFile(path, stream.ModeRead)
	if err != nil {
		return nil, errors.Wrap(err, "unable to open subset file")
	}
	defer must.Close(source, logging.RootLogger.Sublogger("cat"))
	return subset.Read(source)
}

// catMain is the entry point for the cat command.
func catMain(_ *cobra.Command, arguments []string) error {
	// Validate arguments.
	if len(arguments) == 0 {
		return errors.New("at least one file or pattern must be specified")
	}

	// Expand patterns into paths.
	var paths []string
	for _, pattern := range arguments {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return errors.Wrapf(err, "invalid pattern '%s'", pattern)
		}
		paths = append(paths, matches...)
	}
	if len(paths) == 0 {
		return errors.New("no files matched")
	}

	// Read and merge the subsets.
	merged, err := readSubsetFile(paths[0])
	if err != nil {
		return errors.Wrapf(err, "unable to read '%s'", paths[0])
	}
	for _, path := range paths[1:] {
		sub, err := readSubsetFile(path)
		if err != nil {
			return errors.Wrapf(err, "unable to read '%s'", path)
		}
		if err := merged.Merge(sub); err != nil {
			return errors.Wrapf(err, "unable to merge '%s'", path)
		}
	}

	// Open the output stream and defer its closure.
	output, err := stream.OpenFile(catConfiguration.output, stream.ModeWrite)
	if err != nil {
		return errors.Wrap(err, "unable to open output")
	}
	defer must.Close(output, logging.RootLogger.Sublogger("cat"))

	// Write the merged subset.
	return errors.Wrap(subset.Write(output, merged), "unable to write merged subset")
}

// catCommand is the cat command.
var catCommand = &cobra.Command{
	Use:   "cat <file-or-pattern>...",
	Short: "Concatenate compatible subset files",
	Run:   cmd.Mainify(catMain),
}

// catConfiguration stores configuration for the cat command.
var catConfiguration struct {
	// help indicates whether or not help information should be shown for the
	// command.
	help bool
	// output is the output stream name.
	output string
}

func init() {
	// Grab a handle for the command line flags.
	flags := catCommand.Flags()

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&catConfiguration.help, "help", "h", false, "Show help information")

	// Wire up cat command flags.
	flags.StringVarP(&catConfiguration.output, "output", "o", stream.StandardOutputName, "Set the output file")
}
