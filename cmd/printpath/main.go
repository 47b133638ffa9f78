package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/zxo1/PrintPath/internal/config"
	"github.com/zxo1/PrintPath/internal/engine"
	"github.com/zxo1/PrintPath/internal/history"
	"github.com/zxo1/PrintPath/internal/logging"
	"github.com/zxo1/PrintPath/internal/mode"
	"github.com/zxo1/PrintPath/internal/output"
)

var (
	Version   string = "0.0.1"
	BuildDate string = "unknown"
)

func main() {
	configDir := flag.String("config", ".", "directory holding printpath.cfg.json")
	modeName := flag.String("mode", "orbit", "snapshot mode to run")
	firmware := flag.String("firmware", "", "override configured firmware (klipper or marlin)")
	outPath := flag.String("out", "", "output file path (default: input stem plus mode suffix)")
	pointsJSON := flag.String("points-json", "", "also export snapshot points as JSON to this path")
	listModes := flag.Bool("list-modes", false, "list available modes and exit")
	noHistory := flag.Bool("no-history", false, "skip recording this run in the history ledger")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("printpath %s (built %s)\n", Version, BuildDate)
		return
	}

	if err := config.Load(*configDir); err != nil {
		fmt.Fprintf(os.Stderr, "loading configuration: %v\n", err)
		os.Exit(1)
	}

	log := logging.NewStderr(config.GetString("log_level"))

	registry := mode.NewRegistry(log)
	if err := registry.LoadScripts(config.GetString("scripts_dir")); err != nil {
		log.Warn("script discovery failed", "error", err)
	}

	eng, err := engine.New(registry, log)
	if err != nil {
		log.Error("initializing engine", "error", err)
		os.Exit(1)
	}

	if *listModes {
		printModes(eng)
		return
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: printpath [flags] <file.gcode>")
		flag.PrintDefaults()
		os.Exit(2)
	}
	input := flag.Arg(0)

	lines, err := readLines(input)
	if err != nil {
		log.Error("reading input file", "path", input, "error", err)
		os.Exit(1)
	}

	settings := mode.Settings(config.GlobalSettings())
	for k, v := range config.GetModeSettings(*modeName) {
		settings[k] = v
	}
	if *firmware != "" {
		settings["firmware"] = *firmware
	}

	start := time.Now()
	res, err := eng.Process(lines, settings, *modeName)
	if err != nil {
		log.Error("processing failed", "mode", *modeName, "error", err)
		os.Exit(1)
	}
	elapsed := time.Since(start)

	for _, w := range res.Warnings {
		log.Warn("input file warning", "line", w.LineNum, "kind", w.Kind.String(), "detail", w.Message)
	}

	dest := *outPath
	if dest == "" {
		dest = output.Path(input, *modeName)
	}
	if err := output.WriteLines(dest, res.Lines); err != nil {
		log.Error("writing output", "error", err)
		os.Exit(1)
	}
	log.Info("wrote output file",
		"path", dest,
		"snapshots", len(res.Points),
		"lines_in", len(lines),
		"lines_out", len(res.Lines),
		"elapsed", elapsed.String(),
	)

	if *pointsJSON != "" {
		if err := output.WritePoints(*pointsJSON, res.Points); err != nil {
			log.Error("writing points export", "error", err)
			os.Exit(1)
		}
	}

	if h := config.GetHistory(); h.Enabled && !*noHistory {
		recordHistory(log, h.Path, &history.Entry{
			SourceFile: input,
			OutputFile: dest,
			Mode:       *modeName,
			Firmware:   settings.String("firmware", "klipper"),
			Snapshots:  len(res.Points),
			LinesIn:    len(lines),
			LinesOut:   len(res.Lines),
			Warnings:   len(res.Warnings),
			DurationMs: elapsed.Milliseconds(),
		})
	}
}

func printModes(eng *engine.Engine) {
	for _, info := range eng.ListModes() {
		fmt.Printf("%-12s %s\n", info.Name, info.Description)
		for _, key := range info.Schema.Keys() {
			d, _ := info.Schema.Get(key)
			fmt.Printf("    %-28s %s (default %v)\n", key, d.Kind.String(), d.Default)
		}
	}
	for _, rej := range eng.RejectedScripts() {
		fmt.Printf("rejected: %s: %v\n", rej.Path, rej.Err)
	}
}

func recordHistory(log logging.Logger, path string, entry *history.Entry) {
	store, err := history.Open(path)
	if err != nil {
		log.Warn("history ledger unavailable", "path", path, "error", err)
		return
	}
	defer store.Close()
	if err := store.Record(entry); err != nil {
		log.Warn("recording history entry", "error", err)
	}
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
