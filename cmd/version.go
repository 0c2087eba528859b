package cmd

import (
	"fmt"
	"io"

	"github.com/longkey1/mentorchat/internal/version"
	"github.com/spf13/cobra"
)

var versionShort bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the mentorchat version",
	Long: `Print the mentorchat version with the commit, build time and Go toolchain
it was built from. Use --short for the bare version string.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		printVersion(cmd.OutOrStdout(), versionShort)
	},
}

func printVersion(out io.Writer, short bool) {
	if short {
		fmt.Fprintln(out, version.Short())
		return
	}
	fmt.Fprintln(out, version.Info())
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolVarP(&versionShort, "short", "s", false, "print only the version number")
}
