package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/USEPA/rsigserver-sub001/cmd"
	"github.com/USEPA/rsigserver-sub001/pkg/logging"
	"github.com/USEPA/rsigserver-sub001/pkg/must"
	"github.com/USEPA/rsigserver-sub001/pkg/stream"
	"github.com/USEPA/rsigserver-sub001/pkg/subset"
)

// infoMain is the entry point for the info command.
func infoMain(_ *cobra.Command, arguments []string) error {
	// Validate arguments.
	if len(arguments) != 1 {
		return errors.New("exactly one subset file must be specified")
	}

	// Open the subset file and defer its closure.
	source, err := stream.OpenFile(arguments[0], stream.ModeRead)
	if err != nil {
		return errors.Wrap(err, "unable to open subset file")
	}
	defer must.Close(source, logging.RootLogger.Sublogger("info"))

	// Grab the file size before reading advances the stream's accounting.
	size := source.Size()

	// Read the subset.
	sub, err := subset.Read(source)
	if err != nil {
		return errors.Wrap(err, "unable to read subset")
	}

	// Print the header metadata.
	metadata, err := yaml.Marshal(&sub.Header)
	if err != nil {
		return errors.Wrap(err, "unable to marshal header")
	}
	fmt.Print(string(metadata))

	// Print payload statistics.
	fmt.Println("points:", humanize.Comma(int64(sub.Points())))
	fmt.Println("size:", humanize.Bytes(uint64(size)))

	// Success.
	return nil
}

// infoCommand is the info command.
var infoCommand = &cobra.Command{
	Use:   "info <file>",
	Short: "Print a subset file's metadata",
	Run:   cmd.Mainify(infoMain),
}

// infoConfiguration stores configuration for the info command.
var infoConfiguration struct {
	// help indicates whether or not help information should be shown for the
	// command.
	help bool
}

func init() {
	// Grab a handle for the command line flags.
	flags := infoCommand.Flags()

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&infoConfiguration.help, "help", "h", false, "Show help information")
}
