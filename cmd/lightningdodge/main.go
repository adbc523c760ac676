// Package main implements the lightningdodge executable.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"strconv"
	"strings"
	"syscall"

	"github.com/golang/glog"

	"lightningdodge/internal/app"
	"lightningdodge/internal/version"
)

// headlessFrames is how long -nogui runs when no frame limit is set
const headlessFrames = 120

var (
	configFile  = flag.String("config", "", "Path to configuration file")
	debugMode   = flag.Bool("debug", false, "Enable debug mode")
	nogui       = flag.Bool("nogui", false, "Run without GUI (headless mode)")
	frames      = flag.Int("frames", 0, "Stop after this many frames (0 uses the config value)")
	capture     = flag.String("capture", "", "Comma separated frame numbers to save as PNGs in headless mode")
	dumpPPU     = flag.String("dump-ppu", "", "Write pattern sheets and the tilemap to this directory on exit")
	cpuprofile  = flag.String("cpuprofile", "", "Write cpu profile to file")
	help        = flag.Bool("help", false, "Show help message")
	showVersion = flag.Bool("version", false, "Show version information")
)

func main() {
	// glog writes to files unless told otherwise
	flag.Set("logtostderr", "true")
	flag.Parse()
	defer glog.Flush()

	if *help {
		printUsage()
		os.Exit(0)
	}

	if *showVersion {
		version.PrintBuildInfo(os.Stdout)
		os.Exit(0)
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			glog.Fatal("Failed to create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			glog.Fatal("Failed to start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}

	config, err := loadConfig()
	if err != nil {
		glog.Fatalf("Failed to load configuration: %v", err)
	}

	application, err := app.NewApplicationWithConfig(config, *nogui)
	if err != nil {
		glog.Fatalf("Failed to create application: %v", err)
	}
	defer func() {
		if err := application.Cleanup(); err != nil {
			glog.Errorf("Application cleanup error: %v", err)
		}
	}()

	setupGracefulShutdown(application)

	if err := run(application); err != nil {
		glog.Errorf("Run failed: %v", err)
		return
	}

	if *dumpPPU != "" {
		paths, err := application.DumpPPU(*dumpPPU)
		if err != nil {
			glog.Errorf("Failed to dump PPU state: %v", err)
			return
		}
		fmt.Printf("Wrote %d PPU images to %s\n", len(paths), *dumpPPU)
	}
}

// loadConfig reads the config file and applies command line overrides
func loadConfig() (*app.Config, error) {
	config := app.NewConfig()

	path := *configFile
	if path == "" {
		path = app.GetDefaultConfigPath()
	}
	if err := config.LoadFromFile(path); err != nil {
		if *configFile != "" {
			return nil, err
		}
		glog.Warningf("Could not load %s, using defaults: %v", path, err)
		config = app.NewConfig()
	}

	if *debugMode {
		config.UpdateDebug(true, true, config.Debug.DumpFrames)
		config.Debug.LogLevel = "DEBUG"
	}
	if !flagPassed("v") {
		flag.Set("v", strconv.Itoa(config.Verbosity()))
	}

	if *frames > 0 {
		config.Emulation.MaxFrames = *frames
	} else if *nogui && config.Emulation.MaxFrames == 0 {
		config.Emulation.MaxFrames = headlessFrames
	}

	if *capture != "" {
		list, err := parseFrameList(*capture)
		if err != nil {
			return nil, err
		}
		config.Emulation.CaptureFrames = list
	}

	return config, nil
}

// flagPassed reports whether a flag was set on the command line
func flagPassed(name string) bool {
	passed := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			passed = true
		}
	})
	return passed
}

// parseFrameList parses a list such as "30,60,119"
func parseFrameList(s string) ([]int, error) {
	var list []int
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		n, err := strconv.Atoi(field)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid frame number %q", field)
		}
		list = append(list, n)
	}
	return list, nil
}

// run runs the main loop and prints session statistics
func run(application *app.Application) error {
	config := application.GetConfig()
	if application.IsHeadless() {
		fmt.Printf("Running headless for %d frames\n", config.Emulation.MaxFrames)
	} else {
		windowWidth, windowHeight := config.GetWindowResolution()
		fmt.Printf("Window: %dx%d (Scale: %dx), Filter: %s, VSync: %s\n",
			windowWidth, windowHeight, config.Window.Scale,
			config.Video.Filter, enabledString(config.Video.VSync))
	}

	if err := application.Run(); err != nil {
		return fmt.Errorf("application run failed: %w", err)
	}

	fmt.Printf("Session Statistics:\n")
	fmt.Printf("   Frames rendered: %d\n", application.GetFrameCount())
	fmt.Printf("   Session time: %v\n", application.GetUptime())
	fmt.Printf("   Average FPS: %.1f\n", application.GetFPS())
	return nil
}

// setupGracefulShutdown stops the main loop on SIGINT or SIGTERM
func setupGracefulShutdown(application *app.Application) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		glog.Info("Interrupt received, shutting down")
		application.Stop()
	}()
}

// enabledString returns "enabled" or "disabled" based on boolean value
func enabledString(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}

func printUsage() {
	fmt.Println("lightningdodge - tile and sprite graphics demo")
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("  lightningdodge [options]                # Open a window")
	fmt.Println("  lightningdodge -nogui -frames N         # Render N frames headless")
	fmt.Println()
	fmt.Println("OPTIONS:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("  lightningdodge -debug                   # Verbose logging and FPS")
	fmt.Println("  lightningdodge -config custom.json      # Use custom configuration")
	fmt.Println("  lightningdodge -nogui -dump-ppu out     # Dump patterns and tilemap")
	fmt.Println("  lightningdodge -nogui -capture 30,60,119  # Save those frames as PNGs")
	fmt.Println()
	fmt.Println("CONTROLS:")
	fmt.Println("    Arrow Keys / WASD - Move")
	fmt.Println("    F11               - Pause")
	fmt.Println("    R                 - Reset")
	fmt.Println("    F12               - Screenshot")
	fmt.Println("    Escape            - Quit")
	fmt.Println()
	fmt.Println("CONFIGURATION:")
	fmt.Println("  Config file: " + app.GetDefaultConfigPath())
	fmt.Println("  Screenshots: ./screenshots/")
	fmt.Println("  Dumps:       ./dumps/")
}
