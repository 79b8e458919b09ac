// billsnap parses recognized receipt text from a file (or stdin) and prints
// the structured result as JSON. With a metadata snapshot it also resolves
// category, tag, and direction. Meant for debugging parser behavior on
// captured samples.
package main

import (
	"encoding/json"
	"flag"
	"io"
	"log/slog"
	"os"

	"github.com/hanwen-zhu/billsnap/internal/entity"
	"github.com/hanwen-zhu/billsnap/internal/parser"
	"github.com/hanwen-zhu/billsnap/internal/resolve"
	"github.com/hanwen-zhu/billsnap/internal/textnorm"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)

	inPath := flag.String("in", "-", "receipt text file, '-' for stdin")
	metaPath := flag.String("meta", "", "optional metadata snapshot JSON for resolution")
	flag.Parse()

	text, err := readInput(*inPath)
	if err != nil {
		logger.Error("read input", "path", *inPath, "error", err)
		os.Exit(1)
	}

	p := parser.New(logger, parser.Config{})
	receipt := p.Parse(text)

	out := map[string]any{"receipt": receipt}
	if *metaPath != "" {
		snap, err := readSnapshot(*metaPath)
		if err != nil {
			logger.Error("read metadata snapshot", "path", *metaPath, "error", err)
			os.Exit(1)
		}
		in := resolve.Input{
			Receipt:  receipt,
			Text:     textnorm.Normalize(text),
			Snapshot: snap,
		}
		catResolver := resolve.NewCategoryResolver(logger, resolve.CreationSimilarity)
		tagResolver := resolve.NewTagResolver(logger, resolve.CreationSimilarity)
		if categoryID, direction, ok := catResolver.Resolve(in); ok {
			categoryName := ""
			if c, found := snap.CategoryByID(categoryID); found {
				categoryName = c.Name
			}
			tagID, _ := tagResolver.Resolve(in, categoryName)
			out["resolution"] = entity.Resolution{
				CategoryID: categoryID,
				TagID:      tagID,
				Direction:  direction,
			}
		} else {
			out["resolution"] = nil
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		logger.Error("encode output", "error", err)
		os.Exit(1)
	}
}

func readInput(path string) (string, error) {
	if path == "-" {
		bs, err := io.ReadAll(os.Stdin)
		return string(bs), err
	}
	bs, err := os.ReadFile(path)
	return string(bs), err
}

func readSnapshot(path string) (entity.Snapshot, error) {
	var snap entity.Snapshot
	bs, err := os.ReadFile(path)
	if err != nil {
		return snap, err
	}
	err = json.Unmarshal(bs, &snap)
	return snap, err
}
