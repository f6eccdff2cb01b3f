package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/restoredb/restoredb/internal/models"
	"github.com/restoredb/restoredb/internal/sniff"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [file ...]",
	Short: "Show detected compression layers and dump format",
	Long: `Sniff each dump without restoring anything: print the compression
layers (outermost first) and the innermost dump format. With no file
arguments, standard input is inspected.`,
	RunE: runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		if stdinIsTerminal() {
			log.Error().Msg("no dump file and no data on standard input")
			return models.ErrMissingInput
		}
		return inspectOne(os.Stdin, "", "stdin")
	}

	var failed int
	for _, path := range args {
		f, err := os.Open(path)
		if err != nil {
			log.Error().Err(err).Str("source", path).Msg("inspect failed")
			failed++
			continue
		}
		err = inspectOne(f, path, path)
		_ = f.Close()
		if err != nil {
			log.Error().Err(err).Str("source", path).Msg("inspect failed")
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d inputs could not be identified", failed, len(args))
	}
	return nil
}

func inspectOne(f *os.File, name, display string) error {
	res, err := sniff.Resolve(f, name)
	if err != nil {
		return err
	}
	defer func() { _ = res.Reader.Close() }()

	layers := "none"
	if len(res.Layers) > 0 {
		names := make([]string, len(res.Layers))
		for i, l := range res.Layers {
			names[i] = string(l)
		}
		layers = strings.Join(names, " -> ")
	}

	fmt.Printf("%s:\n", display)
	fmt.Printf("  layers: %s\n", layers)
	fmt.Printf("  format: %s\n", res.Format)
	return nil
}
