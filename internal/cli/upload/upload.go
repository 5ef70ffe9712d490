// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package upload

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/platform-engineering-labs/xmlupload/internal/api"
	"github.com/platform-engineering-labs/xmlupload/internal/cli/cmd"
	"github.com/platform-engineering-labs/xmlupload/internal/cli/config"
	"github.com/platform-engineering-labs/xmlupload/internal/cli/display"
	"github.com/platform-engineering-labs/xmlupload/internal/cli/printer"
	"github.com/platform-engineering-labs/xmlupload/internal/cli/renderer"
	"github.com/platform-engineering-labs/xmlupload/internal/logging"
	"github.com/platform-engineering-labs/xmlupload/internal/parser"
	pipeline "github.com/platform-engineering-labs/xmlupload/internal/upload"
	pkgmodel "github.com/platform-engineering-labs/xmlupload/pkg/model"
)

type UploadOptions struct {
	File            string
	ConfigFile      string
	Verbose         bool
	IDMapping       string
	IDMappingFormat string
}

func UploadCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "upload",
		Short: "Upload the resources of an XML data file",
		RunE: func(command *cobra.Command, args []string) error {
			opts := &UploadOptions{}
			opts.File = command.Flags().Arg(0)
			opts.ConfigFile, _ = command.Flags().GetString("config")
			opts.Verbose, _ = command.Flags().GetBool("verbose")
			opts.IDMapping, _ = command.Flags().GetString("id-mapping")
			opts.IDMappingFormat, _ = command.Flags().GetString("id-mapping-format")

			cfg, err := config.Config.Load(opts.ConfigFile)
			if err != nil {
				return fmt.Errorf("%w%s", err, display.Links("Configuration docs", "configuration"))
			}
			applyFlags(cfg, command.Flags())

			if err := validateUploadOptions(opts, cfg); err != nil {
				return err
			}

			return runUpload(command.Context(), opts, cfg, os.Stdout)
		},
		Annotations: map[string]string{
			"type":     "Data",
			"examples": "{{.Name}} {{.Command}} --user root@example.com --password test data.xml",
			"args":     "<data file>",
			"doc": "Resources are created one at a time in dependency order. A failed run leaves\n" +
				"the resources created so far in place, use --id-mapping to keep a record of them.",
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	command.SetUsageTemplate(cmd.SimpleCmdUsageTemplate)

	defaults := pkgmodel.DefaultConfig()
	command.Flags().StringP("server", "s", defaults.Server.URL, "URL of the DSP server")
	command.Flags().StringP("user", "u", "", "User name (email) used to log in")
	command.Flags().StringP("password", "p", "", "Password used to log in")
	command.Flags().StringP("imgdir", "i", defaults.Upload.ImageDirectory, "Directory image paths of the data file are relative to")
	command.Flags().String("sipi", defaults.Sipi.URL, "URL of the image server")
	command.Flags().BoolP("verbose", "V", false, "Print the parsed document and debug logs")
	command.Flags().String("config", "", "Path to config file")
	command.Flags().String("log-file", "", "Path of the log file")
	command.Flags().String("id-mapping", "", "Write the mapping of resource ids to created IRIs to this file")
	command.Flags().String("id-mapping-format", string(printer.FormatJSON), "Format of the id mapping (json | yaml)")

	return command
}

// applyFlags overrides configuration values with the flags that were set
// explicitly on the command line.
func applyFlags(cfg *pkgmodel.Config, flags *pflag.FlagSet) {
	overrides := map[string]*string{
		"server":   &cfg.Server.URL,
		"user":     &cfg.Server.User,
		"password": &cfg.Server.Password,
		"imgdir":   &cfg.Upload.ImageDirectory,
		"sipi":     &cfg.Sipi.URL,
		"log-file": &cfg.Logging.FilePath,
	}

	flags.Visit(func(f *pflag.Flag) {
		if target, ok := overrides[f.Name]; ok {
			*target = f.Value.String()
		}
	})

	if verbose, _ := flags.GetBool("verbose"); verbose {
		cfg.Logging.ConsoleLogLevel = slog.LevelDebug
	}
}

func validateUploadOptions(opts *UploadOptions, cfg *pkgmodel.Config) error {
	if opts.File == "" {
		return cmd.FlagErrorf("data file is required")
	}
	if _, err := os.Stat(opts.File); err != nil {
		return cmd.FlagErrorf("cannot read data file: %v", err)
	}
	if cfg.Server.User == "" || cfg.Server.Password == "" {
		return cmd.FlagErrorf("the --user and --password flags are required unless set in the config file")
	}
	if _, err := printer.ParseFormat(opts.IDMappingFormat); err != nil {
		return cmd.FlagErrorf("invalid --id-mapping-format: %v", err)
	}

	return nil
}

func runUpload(ctx context.Context, opts *UploadOptions, cfg *pkgmodel.Config, out io.Writer) error {
	if err := logging.SetupClientLogging(cfg.Logging); err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}

	client := api.NewClient(cfg.Server, nil)
	if err := client.Login(ctx, cfg.Server.User, cfg.Server.Password); err != nil {
		return renderError(err)
	}
	sipi := api.NewSipiClient(cfg.Sipi, client.Token, nil)

	reporter := newConsoleReporter(out, opts.Verbose)
	uploader := pipeline.NewUploader(parser.WellFormedValidator{}, client, client, sipi, client, reporter)

	result, runErr := uploader.Run(ctx, pipeline.Options{
		File:           opts.File,
		ImageDirectory: cfg.Upload.ImageDirectory,
	})

	if opts.IDMapping != "" {
		if err := writeIDMapping(opts, result, runErr == nil); err != nil {
			slog.Error("Failed to write id mapping", "path", opts.IDMapping, "error", err)
			display.Warning(err.Error())
		} else {
			_, _ = fmt.Fprintf(out, "%s %s\n", display.Grey("Id mapping written to"), opts.IDMapping)
		}
	}

	if result.Total > 0 {
		_, _ = fmt.Fprint(out, renderer.RenderOutcome(result.Created(), result.Total, runErr != nil))
	}

	if runErr != nil {
		return renderError(runErr)
	}
	return nil
}

func writeIDMapping(opts *UploadOptions, result *pipeline.Result, completed bool) error {
	format, err := printer.ParseFormat(opts.IDMappingFormat)
	if err != nil {
		return err
	}

	return printer.WriteIDMapping(opts.IDMapping, format, &printer.IDMapping{
		RunID:     result.RunID,
		Source:    opts.File,
		Total:     result.Total,
		Completed: completed,
		Resources: result.Table.Entries(),
	})
}

// RenderedError carries an operator message for err. The original error stays
// reachable through errors.As.
type RenderedError struct {
	Message string
	Err     error
}

func (e *RenderedError) Error() string {
	return e.Message
}

func (e *RenderedError) Unwrap() error {
	return e.Err
}

func renderError(err error) error {
	msg, renderErr := renderer.RenderErrorMessage(err)
	if renderErr != nil {
		return fmt.Errorf("error rendering error message: %v: %w", renderErr, err)
	}
	return &RenderedError{Message: msg, Err: err}
}
