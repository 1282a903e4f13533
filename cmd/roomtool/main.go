// roomtool prepares model files for the Pastel Room viewer and inspects
// placement layouts.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Faultbox/pastel-room/internal/config"
	"github.com/Faultbox/pastel-room/internal/layout"
	"github.com/Faultbox/pastel-room/internal/logger"
	"github.com/Faultbox/pastel-room/internal/modelfiles"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	if err := logger.Init("info", ""); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "find":
		cmdFind(args)
	case "setup":
		cmdSetup(args)
	case "placements", "layout":
		cmdPlacements(args)
	case "config":
		cmdConfig(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`roomtool - Pastel Room model utility

Usage:
  roomtool <command> [options]

Commands:
  find [-root dir] [-ext .obj] [-out file]   Find the model file in each model directory
  setup [-root dir] [-ext .obj]              Create models/ and link model directories into it
  placements [-yaml] [layout-file]           Show a placement layout (built-in if no file)
  config [-out file | -user] [-force]        Write a config file with the default settings

Examples:
  roomtool find -root ./assets
  roomtool setup
  roomtool placements room.yaml
  roomtool placements -yaml > room.yaml
  roomtool config -user`)
}

func cmdFind(args []string) {
	fs := flag.NewFlagSet("find", flag.ExitOnError)
	root := fs.String("root", ".", "Directory holding the model directories")
	ext := fs.String("ext", modelfiles.DefaultExt, "Model file extension")
	out := fs.String("out", modelfiles.PathsFile, "Output JSON file (relative to root)")
	fs.Parse(args)

	paths := modelfiles.Find(*root, modelfiles.DefaultDirs, *ext, logger.Named("find"))

	target := *out
	if !filepath.IsAbs(target) {
		target = filepath.Join(*root, target)
	}
	if err := modelfiles.WriteJSON(target, paths); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Model paths saved to %s (%d of %d directories)\n", target, len(paths), len(modelfiles.DefaultDirs))
}

func cmdSetup(args []string) {
	fs := flag.NewFlagSet("setup", flag.ExitOnError)
	root := fs.String("root", ".", "Directory holding the model directories")
	ext := fs.String("ext", modelfiles.DefaultExt, "Model file extension")
	fs.Parse(args)

	opts := modelfiles.DefaultOptions()
	opts.Ext = *ext

	report, err := modelfiles.Setup(*root, opts, logger.Named("setup"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	counts := make(map[modelfiles.Action]int)
	for _, a := range report.Dirs {
		counts[a]++
	}
	fmt.Printf("Model paths: %s (%d entries)\n", report.PathsSource, len(report.Paths))
	fmt.Printf("Directories: %d linked, %d copied, %d skipped, %d failed\n",
		counts[modelfiles.Linked], counts[modelfiles.Copied], counts[modelfiles.Skipped], counts[modelfiles.Failed])
	fmt.Println(`Setup complete. Run "pastelroom" to view the room.`)
}

func cmdPlacements(args []string) {
	fs := flag.NewFlagSet("placements", flag.ExitOnError)
	asYAML := fs.Bool("yaml", false, "Print as a YAML layout file")
	fs.Parse(args)

	placements := layout.Defaults()
	source := "built-in"
	if fs.NArg() > 0 {
		var err error
		placements, err = layout.Load(fs.Arg(0))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		source = fs.Arg(0)
	}

	if *asYAML {
		data, err := layout.Marshal(placements)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Stdout.Write(data)
		return
	}

	fmt.Printf("Layout: %s\n", source)
	fmt.Printf("Models: %d\n\n", len(placements))
	fmt.Printf("%-20s %-24s %-24s %s\n", "Model", "Position", "Rotation", "Scale")
	fmt.Println(strings.Repeat("-", 80))

	sorted := append([]layout.Placement(nil), placements...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
	for _, p := range sorted {
		pos, rot := p.Position, p.Rotation
		name := displayName(p.Name)
		if p.Animated() {
			name += fmt.Sprintf(" (%d frames)", p.Frames)
		}
		fmt.Printf("%-20s %-24s %-24s %s\n", name,
			fmt.Sprintf("%.2f, %.2f, %.2f", pos.X, pos.Y, pos.Z),
			fmt.Sprintf("%.2f, %.2f, %.2f", rot.X, rot.Y, rot.Z),
			scaleText(p.Scale))
	}

	logger.Debug("placements listed", zap.String("source", source), zap.Int("count", len(placements)))
}

func cmdConfig(args []string) {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	out := fs.String("out", "config.yaml", "Output file")
	user := fs.Bool("user", false, "Write to the user config directory instead of -out")
	force := fs.Bool("force", false, "Overwrite an existing file")
	fs.Parse(args)

	path := *out
	if *user {
		path = config.UserConfigPath()
	}
	if _, err := os.Stat(path); err == nil && !*force {
		fmt.Fprintf(os.Stderr, "Error: %s exists (use -force to overwrite)\n", path)
		os.Exit(1)
	}

	cfg := config.Default()
	var err error
	if *user {
		path, err = cfg.Save()
	} else {
		err = cfg.SaveTo(path)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Default config written to %s\n", path)
}

var title = cases.Title(language.English)

// displayName turns a logical name like "gaming_desktop" into "Gaming Desktop".
func displayName(name string) string {
	return title.String(strings.ReplaceAll(name, "_", " "))
}

func scaleText(s layout.Scale) string {
	if s.IsUniform() {
		return fmt.Sprintf("%.2f", s.X)
	}
	return fmt.Sprintf("%.2f, %.2f, %.2f", s.X, s.Y, s.Z)
}
