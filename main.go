// Command solidpack packs a directory tree into a content-addressed,
// deduplicated archive, and extracts one back, in the CLI shape of
// agcp's main.go adapted to pflag-based flag parsing.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"solidpack/lib"
	"solidpack/pkg/codec"
	"solidpack/pkg/workerpool"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	logger := newLogger()

	if len(args) == 0 {
		printUsage()
		return 1
	}
	if args[0] == "-h" || args[0] == "--help" {
		printUsage()
		return 0
	}

	command := args[0]
	flags := pflag.NewFlagSet(command, pflag.ContinueOnError)
	compression := flags.StringP("compression", "c", "zstd", "compression algorithm: zlib, brotli, or zstd")
	help := flags.BoolP("help", "h", false, "print this help message")
	if err := flags.Parse(args[1:]); err != nil {
		fmt.Println("Error:", err)
		return 1
	}
	if *help {
		printUsage()
		return 0
	}

	rest := flags.Args()
	if len(rest) != 2 {
		fmt.Println("Error: expected <dir> <archive>")
		printUsage()
		return 1
	}
	dir, archive := rest[0], rest[1]

	pool := workerpool.NewDefault()
	defer pool.Shutdown()

	switch command {
	case "compress":
		codecID, err := codec.ParseID(*compression)
		if err != nil {
			fmt.Println("Error:", err)
			return 1
		}
		logger.Debug("starting compress", "dir", dir, "archive", archive, "codec", codecID)
		stats, err := lib.Compress(dir, archive, codecID, lib.CompressOptions{Pool: pool})
		if err != nil {
			fmt.Println("Error:", err)
			return 1
		}
		logger.Info("compress complete", "originals", stats.Originals, "duplicates", stats.Duplicates)
		return 0

	case "decompress":
		logger.Debug("starting decompress", "archive", archive, "dir", dir)
		stats, err := lib.Decompress(archive, dir, lib.DecompressOptions{Pool: pool})
		if err != nil {
			fmt.Println("Error:", err)
			return 1
		}
		logger.Info("decompress complete", "originals", stats.Originals, "duplicates", stats.Duplicates)
		return 0

	default:
		fmt.Println("Error: unknown command", command)
		printUsage()
		return 1
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if os.Getenv("SOLIDPACK_DEBUG") != "" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func printUsage() {
	fmt.Println("solidpack - content-addressed log and directory archival tool.")
	fmt.Println()
	fmt.Println("Usage: solidpack <command> <dir> <archive> [options]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  compress    - Create a compressed archive.")
	fmt.Println("  decompress  - Extract an archive.")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -c, --compression    Compression algorithm: zlib, brotli, zstd (default: zstd)")
	fmt.Println("  -h, --help           Print this help message.")
	fmt.Println()
	fmt.Println("Example:")
	fmt.Println("  solidpack compress /var/logs logs_archive --compression=zlib")
}
