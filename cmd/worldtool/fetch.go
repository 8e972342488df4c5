package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"strings"

	get "github.com/hashicorp/go-getter"
)

func runFetch(ctx context.Context, args []string, log *slog.Logger) error {
	fs := flag.NewFlagSet("fetch", flag.ContinueOnError)
	src := fs.String("src", "", "source address, e.g. https://host/world.json or git::https://host/repo//saves/world")
	dst := fs.String("o", "world.json", "destination: a .json file or a LevelDB directory")
	verify := fs.Bool("verify", true, "restore the fetched save to check it")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *src == "" {
		return fmt.Errorf("fetch: -src is required")
	}

	if err := fetchSave(ctx, *src, *dst); err != nil {
		return err
	}
	log.Info("save fetched", "src", *src, "dst", *dst)
	if !*verify {
		return nil
	}
	_, err := loadSummary(*dst, log)
	return err
}

// fetchSave downloads src to dst. A ".json" destination is fetched as a
// single file, anything else as a directory. Local files are copied rather
// than linked.
func fetchSave(ctx context.Context, src, dst string) error {
	pwd, err := os.Getwd()
	if err != nil {
		return err
	}
	mode := get.ClientModeDir
	if strings.EqualFold(filepath.Ext(dst), ".json") {
		mode = get.ClientModeFile
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return err
		}
	}

	getters := maps.Clone(get.Getters)
	getters["file"] = &get.FileGetter{Copy: true}

	client := &get.Client{
		Ctx:     ctx,
		Src:     src,
		Dst:     dst,
		Pwd:     pwd,
		Mode:    mode,
		Getters: getters,
	}
	if err := client.Get(); err != nil {
		return fmt.Errorf("fetch %s: %w", src, err)
	}
	return nil
}
