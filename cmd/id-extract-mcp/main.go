package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/id-extract-mcp/internal/config"
	"github.com/ironsheep/id-extract-mcp/internal/extract"
	"github.com/ironsheep/id-extract-mcp/internal/form"
	"github.com/ironsheep/id-extract-mcp/internal/ocr"
	"github.com/ironsheep/id-extract-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and --help before flag parsing
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("id-extract-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			fmt.Printf("  Tesseract:  %s\n", ocr.TesseractVersion())
			return
		case "--help", "-h", "help":
			printHelp()
			return
		}
	}

	fs := flag.NewFlagSet("id-extract-mcp", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to a YAML config file")
	_ = fs.Parse(os.Args[1:])

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}
	log := newLogger(cfg)

	pipeline := newPipeline(cfg, log)

	if fs.Arg(0) == "extract" {
		// Interrupts cancel a running pdftoppm.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		err := runExtract(ctx, cfg, pipeline, fs.Args()[1:])
		stop()
		if err != nil {
			log.WithError(err).Error("extract failed")
			os.Exit(1)
		}
		return
	}

	log.WithFields(logrus.Fields{
		"version":   Version,
		"built":     BuildTime,
		"commit":    GitCommit,
		"languages": cfg.Languages,
	}).Debug("ID Extract MCP Server starting")

	srv, err := server.New(pipeline, server.Options{
		Form:    cfg.FormOptions(),
		Version: Version,
		Log:     log,
	})
	if err != nil {
		log.WithError(err).Fatal("server setup failed")
	}
	if err := srv.Run(context.Background()); err != nil {
		log.WithError(err).Fatal("server error")
	}
}

func printHelp() {
	fmt.Println("id-extract-mcp - MCP server for identity document field extraction")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  id-extract-mcp [-config file]")
	fmt.Println("  id-extract-mcp [-config file] extract [-pdf-out file] [-xlsx-out file] <files...>")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println("  -config file     Load settings from a YAML file")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Printf("  %s=debug     Log level (default info)\n", config.EnvLogLevel)
	fmt.Printf("  %s=eng+hin+mar  OCR languages\n", config.EnvLanguages)
	fmt.Printf("  %s=300             PDF rendering resolution\n", config.EnvDPI)
	fmt.Printf("  %s=/tmp    Directory for rendered pages\n", config.EnvScratchDir)
	fmt.Printf("  %s=/path          Tesseract language data\n", config.EnvTessdataPrefix)
	fmt.Printf("  %s=pdftoppm   PDF rasterizer binary\n", config.EnvPdftoppm)
	fmt.Println()
	fmt.Println("Without a subcommand the server communicates via MCP protocol over stdin/stdout.")
	fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
}

// newLogger logs JSON to stderr; stdout is reserved for the MCP protocol.
func newLogger(cfg *config.Config) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(cfg.Level())
	return log
}

func newPipeline(cfg *config.Config, log *logrus.Logger) *ocr.Pipeline {
	return ocr.NewPipeline(
		ocr.NewTesseract(cfg.Languages, cfg.TessdataPrefix),
		ocr.NewPdftoppm(cfg.Pdftoppm, ocr.ExecRunner{Log: log}),
		cfg.PipelineConfig(),
		log,
	)
}

// runExtract recognizes the given files as one document, prints the
// extraction as JSON and optionally writes the form and sheet.
func runExtract(ctx context.Context, cfg *config.Config, src extract.TextSource, args []string) error {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	pdfOut := fs.String("pdf-out", "", "Write a pre-filled form PDF to this path")
	xlsxOut := fs.String("xlsx-out", "", "Write the extraction as an XLSX sheet to this path")
	_ = fs.Parse(args)

	paths := fs.Args()
	if len(paths) == 0 {
		return fmt.Errorf("extract: at least one input file is required")
	}
	for _, p := range paths {
		if !ocr.IsSupported(p) {
			return fmt.Errorf("extract: unsupported file %s (expected one of %v)", p, ocr.SupportedExtensions)
		}
	}

	result, err := extract.FromFiles(ctx, src, paths...)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}

	if *pdfOut != "" {
		if err := writeFile(*pdfOut, func(f *os.File) error {
			return form.RenderPDF(f, result.Fields.Map(), cfg.FormOptions())
		}); err != nil {
			return err
		}
	}
	if *xlsxOut != "" {
		rows := []form.Row{{Source: strings.Join(paths, ", "), Fields: result.Fields}}
		if err := writeFile(*xlsxOut, func(f *os.File) error {
			return form.WriteSheet(f, rows)
		}); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
