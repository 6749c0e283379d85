package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	rsigserver "github.com/USEPA/rsigserver-sub001"
	"github.com/USEPA/rsigserver-sub001/cmd"
)

// versionMain is the entry point for the version command.
func versionMain(_ *cobra.Command, arguments []string) error {
	// Validate arguments.
	if len(arguments) != 0 {
		return errors.New("unexpected arguments")
	}

	// Print the version.
	fmt.Println(rsigserver.Version)
	return nil
}

// versionCommand is the version command.
var versionCommand = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run:   cmd.Mainify(versionMain),
}

// versionConfiguration stores configuration for the version command.
var versionConfiguration struct {
	// help indicates whether or not help information should be shown for the
	// command.
	help bool
}

func init() {
	// Grab a handle for the command line flags.
	flags := versionCommand.Flags()

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&versionConfiguration.help, "help", "h", false, "Show help information")
}
