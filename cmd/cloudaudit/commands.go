package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"cloudaudit/internal/audits"
	"cloudaudit/internal/config"
	"cloudaudit/internal/orchestrator"
	awsprovider "cloudaudit/internal/providers/aws"
	"cloudaudit/pkg/logging"
)

type rootOptions struct {
	configPath string
}

// auditOptions holds the flags of one audit subcommand
type auditOptions struct {
	ids        []string
	sections   map[string]*bool
	outputFile string
}

// requestedSections returns the ids of the section flags that were set
func (o *auditOptions) requestedSections(def audits.Definition) []string {
	var ids []string
	for _, id := range def.SectionIDs() {
		if enabled := o.sections[id]; enabled != nil && *enabled {
			ids = append(ids, id)
		}
	}
	return ids
}

// newAuditCommand builds the subcommand of one audit definition
func newAuditCommand(def audits.Definition, root *rootOptions) *cobra.Command {
	opts := &auditOptions{sections: map[string]*bool{}}

	cmd := &cobra.Command{
		Use:   def.Name,
		Short: def.Short,
		Long: fmt.Sprintf("%s.\n\nWith no section flags every section is reported. The report is written to <output-dir>/%s.",
			def.Short, def.DefaultOutput),
		Args: noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAudit(cmd, def, root, opts)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.ids, def.IDFlag, def.IDShort, nil, def.IDUsage)
	for _, id := range def.SectionIDs() {
		opts.sections[id] = cmd.Flags().Bool(id, false, fmt.Sprintf("Include the %s section", id))
	}
	cmd.Flags().StringVar(&opts.outputFile, "output-file", "", fmt.Sprintf("Report file name (default %s)", def.DefaultOutput))

	return cmd
}

func runAudit(cmd *cobra.Command, def audits.Definition, root *rootOptions, opts *auditOptions) error {
	settings, err := config.NewLoader(logging.NewMockLogger()).Load(root.configPath, cmd.Flags(), audits.Names())
	if err != nil {
		return err
	}

	logger := newLogger(settings)
	if settings.Source != "" {
		logger.Debug("Using config file %s", settings.Source)
	}

	runConfig := orchestrator.Config{
		ResourceIDs: opts.ids,
		Sections:    opts.requestedSections(def),
		OutputDir:   settings.OutputDir,
		OutputFile:  opts.outputFile,
		Format:      settings.Format,
		Sentinel:    settings.Sentinel,
	}
	if block := settings.Audit(def.Name); block != nil {
		if len(runConfig.ResourceIDs) == 0 {
			runConfig.ResourceIDs = block.Resources
		}
		if len(runConfig.Sections) == 0 {
			runConfig.Sections = block.Sections
		}
		if runConfig.OutputFile == "" {
			runConfig.OutputFile = block.OutputFile
		}
	}

	registry, err := config.NewProfileRegistry(config.SharedFiles())
	if err != nil {
		return err
	}
	if err := registry.Validate(settings.Profile); err != nil {
		return err
	}

	clientOpts := awsprovider.ClientOptions{Profile: settings.Profile, Region: settings.Region}
	service, err := orchestrator.NewDefaultService(cmd.Context(), runConfig, def, clientOpts, logger)
	if err != nil {
		return err
	}

	_, err = service.Run(cmd.Context())
	return err
}

// newLogger builds the logger selected by the settings
func newLogger(settings *config.Settings) logging.Logger {
	var logger logging.Logger
	if settings.JSONLogs {
		logger = logging.NewJSONLogger(os.Stderr)
	} else {
		logger = logging.NewDefaultLogger()
	}
	logger.SetLevel(logging.StringToLogLevel(settings.LogLevel))
	return logger
}

// newProfilesCommand lists the profiles of the shared AWS files
func newProfilesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List AWS profiles from the shared credentials and config files",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry, err := config.NewProfileRegistry(config.SharedFiles())
			if err != nil {
				return err
			}
			return printProfiles(cmd.OutOrStdout(), registry.Profiles())
		},
	}
}

func printProfiles(w io.Writer, profiles []config.Profile) error {
	if len(profiles) == 0 {
		_, err := fmt.Fprintln(w, "No AWS profiles found")
		return err
	}

	writer := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(writer, "PROFILE\tREGION\tSOURCE")
	fmt.Fprintln(writer, "-------\t------\t------")
	for _, p := range profiles {
		region := p.Region
		if region == "" {
			region = "-"
		}
		fmt.Fprintf(writer, "%s\t%s\t%s\n", p.Name, region, p.Source)
	}
	return writer.Flush()
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  noArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "cloudaudit %s\n", version)
		},
	}
}
