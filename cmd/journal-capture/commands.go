package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/journal-capture/constants"
	"github.com/joseph-ayodele/journal-capture/internal/capture"
	"github.com/joseph-ayodele/journal-capture/internal/classify"
	"github.com/joseph-ayodele/journal-capture/internal/common"
	"github.com/joseph-ayodele/journal-capture/internal/extract"
	"github.com/joseph-ayodele/journal-capture/internal/pipeline"
)

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "journal-capture",
		Short:         "Capture journal entries from text and attachments",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(captureCmd())
	return root
}

func captureCmd() *cobra.Command {
	var (
		text      string
		entryType string
		metaJSON  string
		quiet     bool
	)

	cmd := &cobra.Command{
		Use:   "capture [files...]",
		Short: "Run the capture pipeline over local files and print the draft",
		RunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if quiet {
				level = slog.LevelError
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

			cfg := common.LoadConfig()
			if err := cfg.Validate(); err != nil {
				return err
			}
			tax, err := classify.LoadTaxonomy(cfg.Taxonomy.Path)
			if err != nil {
				logger.Warn("taxonomy load failed, using defaults", "error", err)
			}

			reg := capture.NewRegistry(logger)
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read %s: %w", path, err)
				}
				name := filepath.Base(path)
				mimeType := mime.TypeByExtension(filepath.Ext(path))
				if _, err := reg.Register(name, mimeType, data); err != nil {
					return err
				}
			}

			choice := classify.TypeChoice{Source: classify.ChoiceNone}
			if entryType != "" {
				t, ok := constants.CanonicalEntryType(entryType)
				if !ok {
					return fmt.Errorf("unknown entry type %q", entryType)
				}
				choice = classify.TypeChoice{Source: classify.ChoiceUser, Type: t}
			}

			req := pipeline.Request{UserText: text, TypeChoice: choice}
			if metaJSON != "" {
				if err := json.Unmarshal([]byte(metaJSON), &req.Metadata); err != nil {
					return fmt.Errorf("metadata must be a JSON object: %w", err)
				}
			}

			proc := pipeline.NewProcessor(
				pipeline.NewOrchestrator(
					extract.NewImageClient(cfg.Image, logger),
					extract.NewDocumentClient(cfg.Document, logger),
					logger,
				),
				classify.NewResolver(classify.NewClient(cfg.Classify, tax, logger), logger),
				logger,
			)

			draft, err := proc.Run(cmd.Context(), reg, req)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(draft)
		},
	}

	cmd.Flags().StringVarP(&text, "text", "t", "", "typed or transcribed entry text")
	cmd.Flags().StringVar(&entryType, "type", "", "explicit entry type override")
	cmd.Flags().StringVar(&metaJSON, "metadata", "", "capture metadata as a JSON object")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "only log errors")
	return cmd
}
