package main

import (
	"context"
	"fmt"
	"io"

	"github.com/at-ishikawa/wikiquiz/internal/api"
	"github.com/at-ishikawa/wikiquiz/internal/export"
	"github.com/spf13/cobra"
)

type exportOptions struct {
	outputDir    string
	templatePath string
	pdf          bool
}

func newExportCommand() *cobra.Command {
	var options exportOptions
	command := &cobra.Command{
		Use:   "export <id>...",
		Short: "Export quizzes as markdown study sheets",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]int, 0, len(args))
			for _, arg := range args {
				id, err := parseQuizID(arg)
				if err != nil {
					return err
				}
				ids = append(ids, id)
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			client := newClient(cfg)
			defer func() {
				_ = client.Close()
			}()

			if options.outputDir == "" {
				options.outputDir = cfg.Outputs.ExportDirectory
			}
			options.templatePath = cfg.Templates.QuizMarkdown
			return runExport(cmd.Context(), cmd.OutOrStdout(), client, ids, options)
		},
	}
	command.Flags().StringVarP(&options.outputDir, "output", "o", "", "output directory (default: outputs.export_directory)")
	command.Flags().BoolVar(&options.pdf, "pdf", false, "also write a PDF for every quiz")
	return command
}

func runExport(ctx context.Context, stdout io.Writer, client api.Client, ids []int, options exportOptions) error {
	exporter := export.NewExporter(client, options.outputDir,
		export.WithPDF(options.pdf),
		export.WithTemplate(options.templatePath),
	)
	results, err := exporter.Export(ctx, ids)
	if err != nil {
		return fmt.Errorf("exporter.Export() > %w", err)
	}

	for _, result := range results {
		_, _ = fmt.Fprintf(stdout, "#%d %s: %s\n", result.ID, result.Title, result.MarkdownPath)
		if result.PDFPath != "" {
			_, _ = fmt.Fprintf(stdout, "#%d %s: %s\n", result.ID, result.Title, result.PDFPath)
		}
	}
	return nil
}
