package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/nextroutes/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and generated file schema",
	Run: func(cmd *cobra.Command, args []string) {
		out := VersionOutput{
			Version:       version.GetVersion(),
			SchemaVersion: version.GetGeneratorSchemaVersion(),
		}
		if jsonOutput {
			printSuccess(out)
			return
		}
		fmt.Printf("nextroutes %s (schema %d)\n", out.Version, out.SchemaVersion)
	},
}
