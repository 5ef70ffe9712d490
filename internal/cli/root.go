// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/platform-engineering-labs/xmlupload"
	"github.com/platform-engineering-labs/xmlupload/internal/cli/cmd"
	"github.com/platform-engineering-labs/xmlupload/internal/cli/config"
	"github.com/platform-engineering-labs/xmlupload/internal/cli/display"
	"github.com/platform-engineering-labs/xmlupload/internal/cli/upload"
	"github.com/platform-engineering-labs/xmlupload/internal/orderer"
)

const (
	ExitFailure = 1
	// Resources reference each other in a way that no order can satisfy
	ExitOrderingStall = 5
)

func longDescription() string {
	return display.Tool + ": " + display.Green("Upload XML data files into a DSP repository")
}

var rootCmd = &cobra.Command{
	Use:     display.Tool,
	Short:   display.Tool + " CLI",
	Long:    longDescription(),
	Version: xmlupload.Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Commands set up their own logging, nothing may reach the screen before
		devNull, _ := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
		slog.SetDefault(slog.New(slog.NewTextHandler(devNull, nil)))
	},
}

func init() {
	hp := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		display.PrintBanner()
		hp(cmd, args)
	})

	rootCmd.SetHelpCommand(&cobra.Command{
		Hidden: true,
	})

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	cobra.AddTemplateFunc("typeMap", func(cmds []*cobra.Command) map[string][]*cobra.Command {
		m := make(map[string][]*cobra.Command)
		for _, c := range cmds {
			if c.IsAvailableCommand() {
				t := c.Annotations["type"]
				if t == "" {
					t = "Tooling"
				}

				m[t] = append(m[t], c)
			}
		}
		return m
	})

	cobra.AddTemplateFunc("formatExamples", func(examples string, cmd *cobra.Command) string {
		cliName := cmd.Root().Name()
		cmdName := cmd.Name()
		replaced := strings.ReplaceAll(examples, "{{.Name}}", cliName)
		return strings.ReplaceAll(replaced, "{{.Command}}", cmdName)
	})

	cobra.AddTemplateFunc("formatDoc", func(doc string, cmd *cobra.Command) string {
		lines := strings.Split(doc, "\n")
		for i, line := range lines {
			lines[i] = "  " + line
		}

		return strings.Join(lines, "\n")
	})

	cobra.AddTemplateFunc("optionsUsage", optionsUsage)

	rootCmd.SetUsageTemplate(cmd.RootCmdUsageTemplate)

	rootCmd.AddCommand(upload.UploadCmd())

	rootCmd.PersistentFlags().BoolP("help", "h", false, "Show help for "+rootCmd.Use)
	for _, cmd := range rootCmd.Commands() {
		cmd.PersistentFlags().BoolP("help", "h", false, fmt.Sprintf("Show help for %s command", cmd.Name()))
	}

	rootCmd.PersistentFlags().BoolP("version", "v", false, "Show "+rootCmd.Use+" version information")
	rootCmd.SetVersionTemplate(fmt.Sprintf("xmlupload version: %s\ngo version: %s\n", xmlupload.Version, runtime.Version()))
}

func optionsUsage(f *pflag.FlagSet) []string {
	var usage []string

	longestFlagName := 0
	f.VisitAll(func(flag *pflag.Flag) {
		length := len(flag.Name)
		if flag.Shorthand != "" {
			length += 6
		}

		if length > longestFlagName {
			longestFlagName = length
		}
	})

	longestFlagName += 10

	f.VisitAll(func(flag *pflag.Flag) {
		s := fmt.Sprintf("      --%s ", flag.Name)
		if flag.Shorthand != "" {
			s = fmt.Sprintf("  -%s, --%s ", flag.Shorthand, flag.Name)
		}

		s = fmt.Sprintf("%-*s%s", longestFlagName, s, flag.Usage)
		if flag.DefValue != "" &&
			flag.DefValue != "false" &&
			flag.Name != "help" &&
			flag.Name != "version" {
			s += display.Grey(fmt.Sprintf(" [default: %q]", flag.DefValue))
		}

		usage = append(usage, s)
	})
	return usage
}

// ExitCode maps the error of a failed run to the process exit status.
func ExitCode(err error) int {
	if orderer.IsStall(err) {
		return ExitOrderingStall
	}
	return ExitFailure
}

func Start() {
	err := config.Config.EnsureConfigDirectory()
	if err != nil {
		fmt.Println(display.Red("Error: " + err.Error()))
		os.Exit(ExitFailure)
	}

	err = config.Config.EnsureDataDirectory()
	if err != nil {
		fmt.Println(display.Red("Error: " + err.Error()))
		os.Exit(ExitFailure)
	}

	root, stop := cmd.InitCommandWithContext(rootCmd)
	executed, err := root.ExecuteC()
	stop()
	if err == nil {
		return
	}

	var rendered *upload.RenderedError
	var flagErr *cmd.FlagError
	switch {
	case errors.As(err, &rendered):
		fmt.Print(rendered.Message)
	case errors.As(err, &flagErr):
		fmt.Println(display.Red("Error: " + err.Error()))
		fmt.Println()
		fmt.Print(executed.UsageString())
	default:
		fmt.Println(display.Red("Error: " + err.Error()))
	}

	os.Exit(ExitCode(err))
}
