package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/image-toolkit-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("image-toolkit-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("image-toolkit-mcp - MCP server for classic image processing")
			fmt.Println()
			fmt.Println("Usage: image-toolkit-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  IMAGE_TOOLKIT_LOG_LEVEL=debug        Enable debug logging")
			fmt.Println("  IMAGE_TOOLKIT_PREVIEW_SIZE=512       Default image_preview bound")
			fmt.Println("  IMAGE_TOOLKIT_MAX_DIMENSION=16384    Largest width/height image_resize will produce")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg := server.LoadConfig()
	if cfg.Debug {
		log.Printf("Image Toolkit MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	srv := server.NewWithConfig(cfg)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
