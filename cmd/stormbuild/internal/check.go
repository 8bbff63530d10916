package internal

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/stormpy/stormext"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check that the build toolchain is available",
		RunE:  runCheck,
	}
	cmd.Flags().String("manifest", "stormpy.toml", "extension manifest")
	return cmd
}

func runCheck(cmd *cobra.Command, _ []string) error {
	v, err := newViper(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(v, cmd.ErrOrStderr())
	toolchain := newToolchain(v, cmd.ErrOrStderr())

	printTools(cmd.OutOrStdout(), stormext.LookupTools(toolchain.RequiredTools()))

	if err := toolchain.CheckAvailable(cmd.Context()); err != nil {
		var unavailable *stormext.ToolchainUnavailableError
		if errors.As(err, &unavailable) {
			// Name the targets when a manifest is at hand.
			if extensions, _, loadErr := stormext.LoadManifest(v.GetString("manifest")); loadErr == nil {
				for _, ext := range extensions {
					unavailable.Targets = append(unavailable.Targets, ext.Name)
				}
			} else {
				logger.Debug("manifest not loaded", "err", loadErr)
			}
		}
		return err
	}

	return toolchain.CheckTools()
}

func printTools(w io.Writer, statuses []stormext.ToolStatus) {
	for _, status := range statuses {
		req := status.Requirement
		found := status.Found
		if found == "" {
			found = "missing"
			if req.Optional {
				found += " (optional)"
			}
		}
		fmt.Fprintf(w, "%-8s %-20s %s\n", req.Name, req.Purpose, found)
	}
}
