// Command cahn compiles and runs a single .cahn source file.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/cahnlang/cahn"
)

const (
	exitOK           = 0
	exitIOError      = 1
	exitParseError   = 2
	exitCodegenError = 3
	exitRuntimeError = 4
)

func main() {
	var (
		configPath   = flag.String("config", "", "path to a TOML config file")
		dumpSource   = flag.Bool("dump-source", false, "print the source file before running it")
		dumpTokens   = flag.Bool("dump-tokens", false, "print the token stream and exit")
		dumpAST      = flag.Bool("dump-ast", false, "print the parsed AST as S-expressions and exit")
		dumpBytecode = flag.Bool("dump-bytecode", false, "print disassembled bytecode and exit")
		gcStats      = flag.Bool("gc-stats", false, "print allocation/deallocation counts after running")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatal("usage: cahn [flags] <file.cahn>")
	}
	path := flag.Arg(0)

	cfg := cahn.NewConfig()
	if *configPath != "" {
		loaded, err := cahn.LoadConfigFile(*configPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
	}
	if *dumpSource {
		cfg.SetBool("driver.dump_source", true)
	}
	if *dumpTokens {
		cfg.SetBool("driver.dump_tokens", true)
	}
	if *dumpAST {
		cfg.SetBool("driver.dump_ast", true)
	}
	if *dumpBytecode {
		cfg.SetBool("driver.dump_bytecode", true)
	}
	if *gcStats {
		cfg.SetBool("driver.gc_stats", true)
	}

	os.Exit(run(path, cfg))
}

func run(path string, cfg *cahn.Config) int {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "io error:", err)
		return exitIOError
	}

	if cfg.GetBool("driver.dump_source") {
		os.Stdout.Write(source)
	}

	if cfg.GetBool("driver.dump_tokens") {
		interner, tokens := cahn.Tokenize(source)
		for _, tok := range tokens {
			fmt.Printf("%-16s %-12s %q\n", tok.Pos, tok.Kind, interner.String(tok.Lexeme))
		}
		return exitOK
	}

	interner, prog, err := cahn.Parse(source)
	if err != nil {
		fmt.Fprintln(os.Stderr, "parse error:", err)
		return exitParseError
	}

	if cfg.GetBool("driver.dump_ast") {
		fmt.Println(cahn.SprintProgram(interner, prog))
		return exitOK
	}

	exec, err := cahn.GenerateExecutable(interner, path, prog)
	if err != nil {
		fmt.Fprintln(os.Stderr, "codegen error:", err)
		return exitCodegenError
	}

	if cfg.GetBool("driver.dump_bytecode") {
		fmt.Print(cahn.Disassemble(exec))
		return exitOK
	}

	allocs, deallocs, err := cahn.Run(exec, os.Stdout)
	if cfg.GetBool("driver.gc_stats") {
		fmt.Fprintf(os.Stderr, "gc: %d allocs, %d deallocs\n", allocs, deallocs)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "runtime error:", err)
		return exitRuntimeError
	}
	return exitOK
}
