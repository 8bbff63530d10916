package internal

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/stormpy/stormext"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the declared extensions",
		Long:  `List prints every extension of the manifest with its source, work and output directory.`,
		RunE:  runList,
	}

	addLayoutFlags(cmd.Flags())
	return cmd
}

func runList(cmd *cobra.Command, _ []string) error {
	v, err := newViper(cmd)
	if err != nil {
		return err
	}

	extensions, version, err := stormext.LoadManifest(v.GetString("manifest"))
	if err != nil {
		return err
	}

	config := &stormext.BuildConfig{
		BuildTemp: v.GetString("build-temp"),
		LibDir:    v.GetString("build-lib"),
	}
	printExtensions(cmd.OutOrStdout(), version, config, extensions)
	return nil
}

func printExtensions(w io.Writer, version string, config *stormext.BuildConfig, extensions []stormext.Extension) {
	if version != "" {
		fmt.Fprintf(w, "version %s\n", version)
	}
	for _, ext := range extensions {
		fmt.Fprintf(w, "%s\n", ext.Name)
		fmt.Fprintf(w, "  source: %s\n", ext.SourceDir)
		fmt.Fprintf(w, "  work:   %s\n", config.WorkDir(ext.SourceDir))
		fmt.Fprintf(w, "  output: %s\n", config.OutputDir(ext))
	}
}
