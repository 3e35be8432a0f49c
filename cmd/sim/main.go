// Package main provides the entry point for the RV32I pipeline simulator.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rv32pipe/sim/emu"
	"github.com/rv32pipe/sim/loader"
	"github.com/rv32pipe/sim/timing/config"
	"github.com/rv32pipe/sim/timing/core"
)

var (
	functional = flag.Bool("functional", false, "Run the single-cycle functional emulator instead of the timing pipeline")
	configPath = flag.String("config", "", "Path to a timing configuration JSON file")
	raw        = flag.Bool("raw", false, "Treat the program file as a flat RV32I word stream instead of an ELF binary")
	verbose    = flag.Bool("v", false, "Verbose output")
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: sim [options] <program>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	programPath := flag.Arg(0)

	cfg := config.DefaultSimConfig()
	if *configPath != "" {
		var err error
		cfg, err = config.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading sim config: %v\n", err)
			os.Exit(1)
		}
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid sim config: %v\n", err)
		os.Exit(1)
	}

	mem := emu.NewMemory()
	var entry uint32

	if *raw {
		words, err := loader.LoadRaw(programPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading program: %v\n", err)
			os.Exit(1)
		}
		mem.LoadProgram(words)
		entry = cfg.ResetPC
	} else {
		prog, err := loader.Load(programPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading program: %v\n", err)
			os.Exit(1)
		}
		prog.LoadIntoMemory(mem)
		entry = prog.EntryPoint

		if *verbose {
			fmt.Printf("Loaded: %s\n", programPath)
			fmt.Printf("Entry point: 0x%X\n", prog.EntryPoint)
			fmt.Printf("Segments: %d\n", len(prog.Segments))
		}
	}

	if *functional {
		os.Exit(runFunctional(mem, entry, cfg, programPath))
	}
	os.Exit(runTiming(mem, entry, cfg, programPath))
}

// runFunctional runs the program through the single-cycle emulator.
func runFunctional(mem *emu.Memory, entry uint32, cfg *config.SimConfig, programPath string) int {
	e := emu.NewEmulator(mem,
		emu.WithResetPC(entry),
		emu.WithMaxInstructions(cfg.MaxCycles),
	)
	result := e.Run()

	if *verbose {
		fmt.Printf("\nProgram: %s\n", programPath)
		fmt.Printf("Instructions executed: %d\n", e.InstructionCount())
	}

	return reportOutcome(result.Halted, result.Err)
}

// runTiming runs the program through the 5-stage pipeline and prints a
// cycle/stall/CPI breakdown.
func runTiming(mem *emu.Memory, entry uint32, cfg *config.SimConfig, programPath string) int {
	c := core.NewCore(mem, entry)
	ran := c.Run(cfg.MaxCycles)
	stats := c.Stats()

	totalCycles := stats.Cycles
	if totalCycles == 0 {
		totalCycles = 1
	}

	fmt.Printf("\n")
	fmt.Printf("Program: %s\n", programPath)
	fmt.Printf("Halted: %v\n", c.Halted())
	fmt.Printf("Total Instructions: %d\n", stats.Instructions)
	fmt.Printf("Total Cycles: %d (budget %d, ran %d)\n", stats.Cycles, cfg.MaxCycles, ran)
	fmt.Printf("CPI: %.2f\n", stats.CPI())
	fmt.Printf("\n")
	fmt.Printf("Breakdown:\n")
	fmt.Printf("  Stall cycles:  %4d cycles (%5.1f%%)\n",
		stats.Stalls, 100.0*float64(stats.Stalls)/float64(totalCycles))
	fmt.Printf("  Flush cycles:  %4d cycles (%5.1f%%)\n",
		stats.Flushes, 100.0*float64(stats.Flushes)/float64(totalCycles))

	if !c.Halted() && ran >= cfg.MaxCycles {
		fmt.Fprintf(os.Stderr, "\nwarning: program did not halt within the configured cycle budget\n")
		return 1
	}
	return 0
}

// reportOutcome prints the functional-mode result and returns a process
// exit code: 0 on a clean EBREAK halt, 1 on any error.
func reportOutcome(halted bool, err error) int {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if !halted {
		fmt.Fprintf(os.Stderr, "Error: program did not halt\n")
		return 1
	}
	return 0
}
