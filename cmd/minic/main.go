package main

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/minilang/minic/internal/checks"
	"github.com/minilang/minic/internal/codegen"
	"github.com/minilang/minic/internal/interp"
	"github.com/minilang/minic/internal/ir"
	"github.com/minilang/minic/internal/lexer"
	"github.com/minilang/minic/internal/parser"
)

var (
	outputFile  string
	noOptimize  bool
	showSymbols bool
)

var rootCmd = &cobra.Command{
	Use:   "minic",
	Short: "Mini programming language compiler",
	Long:  "A compiler and interpreter for the Mini programming language.",
}

var buildCmd = &cobra.Command{
	Use:   "build <file.mini>",
	Short: "Compile a Mini program to target code",
	Long:  "Compile a Mini source file to textual target code.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		insns, err := compileFile(args[0])
		if err != nil {
			return err
		}

		if outputFile == "-" {
			return codegen.Generate(os.Stdout, insns)
		}

		targetFile := outputFile
		if targetFile == "" {
			targetFile = strings.TrimSuffix(args[0], ".mini") + ".tac"
		}
		out, err := os.Create(targetFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer out.Close()
		return codegen.Generate(out, insns)
	},
}

var runCmd = &cobra.Command{
	Use:   "run <file.mini>",
	Short: "Compile and execute a Mini program",
	Long:  "Compile a Mini source file and execute it, printing one integer per print statement.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		insns, err := compileFile(args[0])
		if err != nil {
			return err
		}

		machine := interp.NewMachine()
		execErr := machine.Execute(codegen.Render(insns))

		// Output accumulated before a runtime failure is still printed.
		for _, value := range machine.Output() {
			fmt.Println(value)
		}
		if showSymbols {
			symbols := machine.Symbols()
			for _, name := range slices.Sorted(maps.Keys(symbols)) {
				fmt.Printf("%s = %d\n", name, symbols[name])
			}
		}
		return execErr
	},
}

func init() {
	buildCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file name (- for stdout)")
	buildCmd.Flags().BoolVar(&noOptimize, "O0", false, "don't optimize the code")
	runCmd.Flags().BoolVar(&noOptimize, "O0", false, "don't optimize the code")
	runCmd.Flags().BoolVar(&showSymbols, "show-symbols", false, "print the final symbol table after execution")
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(runCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// compileFile runs the front half of the pipeline on a source file and
// returns the (optionally optimized) instruction sequence.
func compileFile(path string) ([]ir.Instruction, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	program, err := parser.New(lexer.New(file)).ParseProgram()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	if errs := checks.Run(program); len(errs) > 0 {
		for _, checkErr := range errs {
			fmt.Fprintf(os.Stderr, "%s: %v\n", filepath.Base(path), checkErr)
		}
		return nil, errors.New("compilation failed")
	}

	insns, err := ir.Generate(program)
	if err != nil {
		return nil, err
	}

	if !noOptimize {
		var diags []ir.Diagnostic
		insns, diags = ir.Optimize(insns)
		for _, diag := range diags {
			slog.Warn("optimizer diagnostic", "kind", diag.Kind.String(), "instruction", diag.Index, "detail", diag.Instr.String())
		}
	}
	return insns, nil
}
