// simtrace runs a scene preset without a window and prints the trajectory.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/bounce-box/internal/engine/geometry"
	"github.com/Faultbox/bounce-box/internal/scene"
	"github.com/Faultbox/bounce-box/internal/trace"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "run":
		cmdRun(args)
	case "presets", "ls":
		cmdPresets()
	case "dump":
		cmdDump(args)
	case "mesh":
		cmdMesh(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`simtrace - headless bouncing sphere simulation

Usage:
  simtrace <command> [options]

Commands:
  run [-preset box] [-ticks 600] [-every 10] [-keys 0:e] [-yaml]
                    Simulate and print the trajectory
  presets           List scene presets
  dump <preset>     Print a preset's parameters as YAML
  mesh <preset>     Show vertex and triangle counts per surface

Key script:
  Comma separated tick:key pairs; "space" and "esc" name those keys.

Examples:
  simtrace run -preset classic -keys 0:space -ticks 300
  simtrace run -every 1 -ticks 120 -yaml
  simtrace mesh box`)
}

func cmdRun(args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	preset := fs.String("preset", scene.PresetBox, "Scene preset")
	ticks := fs.Int("ticks", 600, "Ticks to simulate")
	every := fs.Int("every", 10, "Record every Nth tick (contacts always recorded)")
	keys := fs.String("keys", "", "Key script, e.g. 0:e,30:j")
	asYAML := fs.Bool("yaml", false, "Print YAML instead of a table")
	fs.Parse(args)

	cfg, err := scene.Lookup(*preset)
	if err != nil {
		fatal(err)
	}
	script, err := trace.ParseScript(*keys)
	if err != nil {
		fatal(err)
	}

	samples, err := trace.Run(cfg, trace.Options{Ticks: *ticks, Every: *every, Script: script})
	if err != nil {
		fatal(err)
	}

	if *asYAML {
		err = trace.WriteYAML(os.Stdout, samples)
	} else {
		err = trace.WriteTable(os.Stdout, samples)
	}
	if err != nil {
		fatal(err)
	}
}

func cmdPresets() {
	for _, name := range scene.Names() {
		cfg, _ := scene.Lookup(name)
		fmt.Printf("  %-10s mass %-8g ground %-5g cameras %d\n",
			name, cfg.Sim.Mass, cfg.Sim.Ground, cfg.Sim.CameraModes)
	}
}

func cmdDump(args []string) {
	cfg := lookupArg(args, "dump")

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		fatal(err)
	}
	enc.Close()
}

func cmdMesh(args []string) {
	cfg := lookupArg(args, "mesh")

	mesh, err := geometry.Build(cfg.Mesh)
	if err != nil {
		fatal(err)
	}
	if err := mesh.Validate(); err != nil {
		fatal(err)
	}

	fmt.Printf("Preset:    %s\n", cfg.Name)
	fmt.Printf("Vertices:  %d\n", len(mesh.Positions))
	fmt.Printf("Normals:   %d\n", len(mesh.Normals))
	fmt.Printf("Triangles: %d\n", len(mesh.Indices)/3)
	fmt.Println()

	visible := make(map[geometry.Surface]bool)
	for _, s := range cfg.Visible {
		visible[s] = true
	}
	for _, s := range geometry.Surfaces {
		r := mesh.Ranges[s]
		mark := ""
		if !visible[s] {
			mark = "(hidden)"
		}
		fmt.Printf("  %-14s vertices %5d-%-5d triangles %5d %s\n",
			s, r.FirstVertex, r.FirstVertex+r.VertexCount-1, mesh.Triangles(s), mark)
	}
}

func lookupArg(args []string, cmd string) scene.Config {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "Usage: simtrace %s <%s>\n", cmd, strings.Join(scene.Names(), "|"))
		os.Exit(1)
	}
	cfg, err := scene.Lookup(args[0])
	if err != nil {
		fatal(err)
	}
	return cfg
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
