// Package extdef merges the per-translation-unit external-definition maps
// emitted for cross-translation-unit analysis. Each map file holds one entry
// per line: a mangled symbol name, a space, and the module path that defines
// it. Symbols defined in more than one module are ambiguous and dropped.
package extdef

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Entry maps one external symbol to the module defining it.
type Entry struct {
	Symbol string
	Module string
}

// ParseFile reads one symbol-map file. Module paths may contain spaces; only
// the first space on a line separates the fields.
func ParseFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening symbol map %s: %w", path, err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		symbol, module, ok := strings.Cut(line, " ")
		if !ok {
			return nil, fmt.Errorf("malformed symbol map line in %s: %q", path, line)
		}
		entries = append(entries, Entry{Symbol: symbol, Module: module})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading symbol map %s: %w", path, err)
	}
	return entries, nil
}

// WriteFile writes entries in the same line format ParseFile reads.
func WriteFile(path string, entries []Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating symbol map %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, e := range entries {
		fmt.Fprintf(w, "%s %s\n", e.Symbol, e.Module)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("writing symbol map %s: %w", path, err)
	}
	return f.Close()
}

// Filter drops symbols that appear in more than one distinct module. Seeing
// the same (symbol, module) pair repeatedly does not make it ambiguous. The
// result is sorted by symbol for deterministic output.
func Filter(entries []Entry) []Entry {
	modules := make(map[string]map[string]bool)
	for _, e := range entries {
		if modules[e.Symbol] == nil {
			modules[e.Symbol] = make(map[string]bool)
		}
		modules[e.Symbol][e.Module] = true
	}

	var result []Entry
	for symbol, mods := range modules {
		if len(mods) != 1 {
			continue
		}
		for module := range mods {
			result = append(result, Entry{Symbol: symbol, Module: module})
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Symbol < result[j].Symbol })
	return result
}

// Merge reads every symbol-map file in inputDir, filters ambiguous symbols,
// and writes the combined map to outputFile.
func Merge(inputDir, outputFile string) error {
	files, err := filepath.Glob(filepath.Join(inputDir, "*"))
	if err != nil {
		return fmt.Errorf("scanning %s: %w", inputDir, err)
	}

	var combined []Entry
	for _, file := range files {
		entries, err := ParseFile(file)
		if err != nil {
			return err
		}
		combined = append(combined, entries...)
	}
	return WriteFile(outputFile, Filter(combined))
}
