package cmd

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/philipparndt/meshcombine/internal/buildplan"
	"github.com/philipparndt/meshcombine/internal/config"
	"github.com/philipparndt/meshcombine/internal/gltfio"
	"github.com/philipparndt/meshcombine/internal/inspect"
	"github.com/philipparndt/meshcombine/internal/logger"
	"github.com/philipparndt/meshcombine/internal/ui"
	"github.com/philipparndt/meshcombine/version"
)

type CLI struct {
	Combine    *CombineCmd    `cmd:"" help:"Combine the meshes below a root object into one mesh per material"`
	Inspect    *InspectCmd    `cmd:"" help:"Inspect a glTF scene and show its hierarchy, meshes and materials"`
	Config     *ConfigCmd     `cmd:"" help:"Show the resolved job configuration"`
	Version    *VersionCmd    `cmd:"" help:"Show version information"`
	Completion *CompletionCmd `cmd:"" help:"Generate shell completion script"`
}

// JobFlags are the command line overrides shared by combine and config
type JobFlags struct {
	Scene          string `help:"Source scene (.gltf or .glb)" type:"path"`
	Root           string `help:"Name of the root object to combine (default: the only top level object)" short:"r"`
	AssetRoot      string `help:"Asset root directory (default: Assets)" type:"path"`
	OutputDir      string `help:"Output directory below the asset root (default: Combined)" short:"o"`
	IndexFormat    string `help:"Index format of the combined meshes: 16 or 32"`
	SecondaryUVs   bool   `help:"Generate secondary (lightmap) UVs for every combined mesh" name:"secondary-uvs"`
	NoSecondaryUVs bool   `help:"Do not generate secondary UVs, even if the job file asks for them" name:"no-secondary-uvs"`
	SceneOutput    string `help:"Also write the scene with the combined object added to this file" type:"path"`
	LogLevel       string `help:"Log level: debug, info, warn or error"`
	LogFile        string `help:"Also write JSON logs to this file" type:"path"`
}

// Overrides converts the flags into config overrides
func (f JobFlags) Overrides() config.Overrides {
	o := config.Overrides{
		Scene:       f.Scene,
		Root:        f.Root,
		AssetRoot:   f.AssetRoot,
		OutputDir:   f.OutputDir,
		IndexFormat: f.IndexFormat,
		SceneOutput: f.SceneOutput,
		LogLevel:    f.LogLevel,
		LogFile:     f.LogFile,
	}
	switch {
	case f.NoSecondaryUVs:
		v := false
		o.SecondaryUVs = &v
	case f.SecondaryUVs:
		v := true
		o.SecondaryUVs = &v
	}
	return o
}

type CombineCmd struct {
	Config  string `arg:"" optional:"" help:"Job file (YAML). Flags override its values." type:"path"`
	DryRun  bool   `help:"Combine in memory and print the manifest without writing any files" short:"n"`
	Verbose bool   `help:"Print every build step" short:"v"`

	JobFlags `embed:""`
}

// Help adds additional help text with examples
func (c *CombineCmd) Help() string {
	return renderCombineHelp()
}

func (c *CombineCmd) Run() error {
	if c.Config == "" && c.Scene == "" {
		return fmt.Errorf("no job file or --scene given")
	}

	plan := buildplan.NewPlanner().CreatePlan(buildplan.Request{
		ConfigPath: c.Config,
		Overrides:  c.Overrides(),
		DryRun:     c.DryRun,
		Verbose:    c.Verbose,
	})
	defer logger.Sync()

	return plan.Execute()
}

type InspectCmd struct {
	File string `arg:"" help:"glTF or GLB file to inspect" type:"existingfile"`
	Dump bool   `help:"Dump the object tree with all fields"`
}

func (c *InspectCmd) Run() error {
	inspector := inspect.NewInspector(gltfio.NewLoader(logger.Named("inspect")))
	return inspector.Inspect(c.File, c.Dump, os.Stdout)
}

type ConfigCmd struct {
	Config string `arg:"" optional:"" help:"Job file (YAML)" type:"path"`

	JobFlags `embed:""`
}

func (c *ConfigCmd) Run() error {
	job, err := config.NewLoader().Load(c.Config, c.Overrides())
	if err != nil {
		return err
	}
	data, err := config.Marshal(job)
	if err != nil {
		return err
	}
	ui.PrintYAML(data)
	return nil
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	info := version.Get()
	fmt.Println(info.String())
	return nil
}

// newParser builds the kong parser for the command line
func newParser(cli *CLI, options ...kong.Option) (*kong.Kong, error) {
	options = append([]kong.Option{
		kong.Name("meshcombine"),
		kong.Description("Combines the meshes of a glTF hierarchy into one mesh per material"),
		kong.UsageOnError(),
	}, options...)
	return kong.New(cli, options...)
}

// Parse parses command line arguments and executes the appropriate command
func Parse() {
	cli := &CLI{}
	parser, err := newParser(cli)
	if err != nil {
		ui.PrintError(err.Error())
		os.Exit(1)
	}

	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	if err := ctx.Run(); err != nil {
		ui.PrintError(err.Error())
		os.Exit(1)
	}
}
