package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"bedrot-sim/internal/common/config"
	"bedrot-sim/internal/common/logging"
	"bedrot-sim/internal/wizard/capture"
	"bedrot-sim/internal/wizard/mapper"
	"bedrot-sim/internal/wizard/models"
	"bedrot-sim/internal/wizard/scoring"
	"bedrot-sim/internal/wizard/store"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render a selection offline as scene JSON, SVG, PNG or a stats report",
	Example: `  bedrot preview --base "White Messy" --flavor MacBook --flavor Switch --topping Pizza --format stats
  bedrot preview --selection room.json --format png --out room.png`,
	RunE: runPreview,
}

func init() {
	f := previewCmd.Flags()
	f.String("selection", "", "JSON file with a selection (base, flavors, toppings, decoration, scene, message)")
	f.String("base", "", "bedding")
	f.StringArray("flavor", nil, "tech item (max 3)")
	f.StringArray("topping", nil, "snack")
	f.String("decoration", "", "comfort item")
	f.String("scene", "", "lighting scene")
	f.String("message", "", "status text (max 25 characters)")
	f.String("format", "json", "output format: json, svg, png, stats")
	f.StringP("out", "o", "", "output file (default stdout)")

	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, _ []string) error {
	sel, err := selectionFromFlags(cmd)
	if err != nil {
		return err
	}

	// Проверка инвариантов: выбор пришёл не через операции store.
	st, err := store.FromSelection(sel, models.FinalStep)
	if err != nil {
		return err
	}
	sel, step := st.View()
	scene := mapper.Compose(sel, step)

	out := cmd.OutOrStdout()
	if path, _ := cmd.Flags().GetString("out"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	format, _ := cmd.Flags().GetString("format")
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(scene)
	case "svg":
		cfg, err := config.Load(viper.GetViper())
		if err != nil {
			return err
		}
		svg, err := mapper.NewRenderer(cfg.AssetBaseURL).Render(&scene)
		if err != nil {
			return err
		}
		_, err = io.WriteString(out, svg)
		return err
	case "png":
		cfg, err := config.Load(viper.GetViper())
		if err != nil {
			return err
		}
		log, err := logging.New(cfg.Environment, cfg.LogLevel)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		data, err := capture.NewRasterizer(cfg.AssetRoot, cfg.PixelRatio, log).Capture(cmd.Context(), &scene)
		if err != nil {
			return fmt.Errorf("could not create image: %w", err)
		}
		_, err = out.Write(data)
		return err
	case "stats":
		stats := scoring.Compute(sel)
		for _, line := range scoring.Summary(stats) {
			fmt.Fprintln(out, line)
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, scoring.Caption(stats))
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func selectionFromFlags(cmd *cobra.Command) (models.Selection, error) {
	sel := models.NewSelection()
	f := cmd.Flags()

	if path, _ := f.GetString("selection"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return sel, fmt.Errorf("read selection: %w", err)
		}
		if err := json.Unmarshal(data, &sel); err != nil {
			return sel, fmt.Errorf("decode selection: %w", err)
		}
	}

	if f.Changed("base") {
		sel.Base, _ = f.GetString("base")
	}
	if f.Changed("flavor") {
		sel.Flavors, _ = f.GetStringArray("flavor")
	}
	if f.Changed("topping") {
		sel.Toppings, _ = f.GetStringArray("topping")
	}
	if f.Changed("decoration") {
		sel.Decoration, _ = f.GetString("decoration")
	}
	if f.Changed("scene") {
		sel.Scene, _ = f.GetString("scene")
	}
	if f.Changed("message") {
		sel.Message, _ = f.GetString("message")
	}
	return sel, nil
}
