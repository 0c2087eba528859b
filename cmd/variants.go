package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/longkey1/mentorchat/internal/mentor/config"
	"github.com/longkey1/mentorchat/internal/mentor/reply"
	"github.com/longkey1/mentorchat/internal/mentor/variant"
	"github.com/spf13/cobra"
)

var withDir bool

// variantsCmd represents the variants command
var variantsCmd = &cobra.Command{
	Use:   "variants",
	Short: "List and inspect chat variants",
	Long: `Variants change the header copy, the welcome text, the optional greeting and the reply text.

Built-in variants are always available. Variant files are TOML files in the configured
variant directories; a file named like a built-in replaces it. Later directories take
precedence over earlier ones. A file at ${variant_dir}/foo/bar.toml is named "foo/bar".`,
}

// variantsListCmd represents the variants list command
var variantsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available variants",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Variant directories: %v\n", cfg.VariantDirs)
		}

		entries, err := variant.List(cfg.VariantDirs)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, e := range entries {
			marker := ""
			if e.Name == cfg.Variant {
				marker = " (default)"
			}
			if withDir {
				fmt.Fprintf(out, "%s%s\t%s\n", e.Name, marker, e.Source)
			} else {
				fmt.Fprintf(out, "%s%s\n", e.Name, marker)
			}
		}
		return nil
	},
}

// variantsShowCmd represents the variants show command
var variantsShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a variant and a sample reply",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		v, err := variant.Find(args[0], cfg.VariantDirs)
		if err != nil {
			return err
		}
		vars, err := variant.ParseVars(argFlags)
		if err != nil {
			return fmt.Errorf("parsing --var: %w", err)
		}
		render, err := v.Renderer(vars)
		if err != nil {
			return err
		}
		sample, _ := cmd.Flags().GetString("input")
		configDelay, err := cfg.GetReplyDelay(reply.DefaultDelay)
		if err != nil {
			return err
		}

		source := v.Path
		if source == "" {
			source = "builtin"
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Name: %s\n", v.Name)
		fmt.Fprintf(out, "Source: %s\n", source)
		fmt.Fprintf(out, "Title: %s\n", v.Title)
		fmt.Fprintf(out, "Description: %s\n", v.Description)
		fmt.Fprintf(out, "Heading: %s\n", v.Heading)
		fmt.Fprintf(out, "Welcome: %s\n", v.Welcome)
		fmt.Fprintf(out, "Placeholder: %s\n", v.Placeholder)
		if v.Greeting != "" {
			fmt.Fprintf(out, "Greeting: %s\n", v.Greeting)
		}
		fmt.Fprintf(out, "Reply delay: %s\n", v.Delay(configDelay))
		fmt.Fprintf(out, "Reply template:\n%s\n", indent(v.Reply))
		fmt.Fprintf(out, "Sample reply to %q:\n%s\n", sample, indent(render(sample)))
		return nil
	},
}

func indent(s string) string {
	return "  " + strings.ReplaceAll(s, "\n", "\n  ")
}

func init() {
	rootCmd.AddCommand(variantsCmd)
	variantsCmd.AddCommand(variantsListCmd)
	variantsCmd.AddCommand(variantsShowCmd)

	variantsListCmd.Flags().BoolVar(&withDir, "with-dir", false, "Show the source of each variant")
	variantsShowCmd.Flags().StringArrayVar(&argFlags, "var", []string{}, "Variant placeholder in format key:value (can be specified multiple times)")
	variantsShowCmd.Flags().String("input", "こんにちは", "Sample message used to render the reply")
}
