package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/wippyai/wasm-core/runtime"
	"github.com/wippyai/wasm-core/types"
)

func main() {
	var (
		wasmFile    = flag.String("wasm", "", "Path to wasm module file")
		listTypes   = flag.Bool("types", false, "List the module's defined types and exit")
		matchPair   = flag.String("match", "", "Match query: expected,got type indices")
		growPages   = flag.Uint64("grow", 0, "Grow memory 0 by N pages and report")
		pageLimit   = flag.Uint64("limit", 0, "Hard page limit applied to memories (0 = index type's natural limit)")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *wasmFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: inspect -wasm <file.wasm> [-types] [-match exp,got] [-grow n]")
		fmt.Fprintln(os.Stderr, "       inspect -wasm <file.wasm> -i  (interactive mode)")
		os.Exit(1)
	}

	if *interactive {
		if err := runInteractive(*wasmFile, *pageLimit); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*wasmFile, *matchPair, *listTypes, *growPages, *pageLimit); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(wasmFile, matchPair string, listTypes bool, growPages, pageLimit uint64) error {
	data, err := os.ReadFile(wasmFile)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	table, memTypes, err := types.DecodeModuleTypes(data)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	fmt.Printf("Module: %s\n", wasmFile)
	fmt.Printf("Defined types: %d\n", table.Len())
	fmt.Printf("Memories: %d\n", len(memTypes))

	if listTypes {
		fmt.Printf("\nType table:\n")
		for i := 0; i < table.Len(); i++ {
			fmt.Printf("  %3d: %s\n", i, table.Get(uint32(i)))
		}
		return nil
	}

	if matchPair != "" {
		exp, got, err := parseMatchPair(matchPair, table.Len())
		if err != nil {
			return err
		}
		verdict := "no"
		if types.Match(table, exp, table, got) {
			verdict = "yes"
		}
		fmt.Printf("\nmatch %d <- %d: %s\n", exp, got, verdict)
		fmt.Printf("  expected %d: %s\n", exp, table.Get(exp))
		fmt.Printf("  got      %d: %s\n", got, table.Get(got))
		return nil
	}

	if len(memTypes) == 0 {
		return nil
	}

	rt := runtime.New(runtime.Config{HardPageLimit: pageLimit})
	mod, err := rt.NewModuleInstance(wasmFile, table, memTypes, nil, nil)
	if err != nil {
		return fmt.Errorf("instantiate memories: %w", err)
	}
	defer mod.Close()

	fmt.Printf("\nMemories:\n")
	for i := range memTypes {
		m := mod.Memory(i)
		fmt.Printf("  %d: pages=%d bound=%d limit=%d pages\n", i, m.Pages(), m.BoundIdx(), m.PageLimit())
	}

	if growPages > 0 {
		m := mod.Memory(0)
		before := m.Pages()
		if m.GrowPage(growPages) {
			fmt.Printf("\ngrow %d: %d -> %d pages\n", growPages, before, m.Pages())
		} else {
			fmt.Printf("\ngrow %d: refused at %d pages\n", growPages, before)
		}
	}

	return nil
}

func parseMatchPair(s string, tableLen int) (exp, got uint32, err error) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("match query %q: want exp,got", s)
	}
	e, err := strconv.ParseUint(strings.TrimSpace(parts[0]), 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("match query %q: %w", s, err)
	}
	g, err := strconv.ParseUint(strings.TrimSpace(parts[1]), 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("match query %q: %w", s, err)
	}
	if e >= uint64(tableLen) || g >= uint64(tableLen) {
		return 0, 0, fmt.Errorf("match query %q: table has %d types", s, tableLen)
	}
	return uint32(e), uint32(g), nil
}
