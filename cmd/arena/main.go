package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/Ryuya330/CNP-Battle-Arena/internal/config"
	"github.com/Ryuya330/CNP-Battle-Arena/internal/server"
	"github.com/Ryuya330/CNP-Battle-Arena/internal/version"
)

func main() {
	command := "serve"
	args := os.Args[1:]
	if len(args) > 0 {
		command = args[0]
		args = args[1:]
	}

	switch command {
	case "serve":
		serve(args)
	case "version":
		fmt.Print(version.Version())
	case "help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func serve(args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := config.Load(args)
	if err := server.Run(ctx, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: arena <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  serve          Start the static file server (default)")
	fmt.Println("  version        Show version information")
	fmt.Println("  help           Show this help message")
	fmt.Println("\nFlags for serve:")
	fmt.Println("  -host string   The host/IP to bind to (default: all interfaces)")
	fmt.Println("  -port int      The port to listen on (default 8000)")
	fmt.Println("  -root string   The directory to serve (default \".\")")
	fmt.Println("  -watch         Enable auto-reload on file changes")
	fmt.Println("  -gzip          Enable gzip compression (default true)")
}
