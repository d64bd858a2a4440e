package buildplan

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/philipparndt/meshcombine/internal/assets"
	"github.com/philipparndt/meshcombine/internal/combine"
	"github.com/philipparndt/meshcombine/internal/config"
	"github.com/philipparndt/meshcombine/internal/gltfio"
	"github.com/philipparndt/meshcombine/internal/logger"
	"github.com/philipparndt/meshcombine/internal/models"
	"github.com/philipparndt/meshcombine/internal/preconditions"
	"github.com/philipparndt/meshcombine/internal/scene"
	"github.com/philipparndt/meshcombine/internal/ui"
	"github.com/philipparndt/meshcombine/internal/unwrap"
)

// Context holds shared data between build steps
type Context struct {
	DryRun bool

	Job      *models.JobConfig
	Scene    *scene.Scene
	Root     *scene.Object
	Store    *assets.GLTFStore
	Memory   *assets.MemoryStore
	Result   *combine.Result
	Manifest *models.Manifest

	log *zap.Logger
}

func (c *Context) logger() *zap.Logger {
	if c.log == nil {
		return zap.NewNop()
	}
	return c.log
}

// LoadConfigStep loads the job file, applies command line overrides and
// initialises logging
type LoadConfigStep struct {
	*Context
	ConfigPath string
	Overrides  config.Overrides
}

func (s *LoadConfigStep) Name() string {
	return "Load job configuration"
}

func (s *LoadConfigStep) Execute() error {
	job, err := config.NewLoader().Load(s.ConfigPath, s.Overrides)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(job.Logging.Level, job.Logging.File); err != nil {
		return fmt.Errorf("failed to initialise logging: %w", err)
	}
	s.Job = job
	s.log = logger.Named("combine")
	s.logger().Debug("loaded job", zap.String("config", s.ConfigPath), zap.String("scene", job.Scene))
	return nil
}

// CheckPreconditionsStep checks input and output locations
type CheckPreconditionsStep struct {
	*Context
}

func (s *CheckPreconditionsStep) Name() string {
	return "Check preconditions"
}

func (s *CheckPreconditionsStep) Execute() error {
	return preconditions.Check(s.Job)
}

// LoadSceneStep reads the source scene
type LoadSceneStep struct {
	*Context
}

func (s *LoadSceneStep) Name() string {
	return "Load scene"
}

func (s *LoadSceneStep) Execute() error {
	sc, err := gltfio.NewLoader(s.logger()).Open(s.Job.Scene)
	if err != nil {
		return err
	}
	s.Scene = sc
	ui.PrintSuccess(fmt.Sprintf("Loaded %s (%d object%s)", filepath.Base(s.Job.Scene), sc.ObjectCount(), pluralize(sc.ObjectCount())))
	return nil
}

// ResolveRootStep finds the object to combine
type ResolveRootStep struct {
	*Context
}

func (s *ResolveRootStep) Name() string {
	return "Resolve root object"
}

func (s *ResolveRootStep) Execute() error {
	root, err := ResolveRoot(s.Scene, s.Job.Root)
	if err != nil {
		return err
	}
	s.Root = root
	ui.PrintHighlight(fmt.Sprintf("Root: %s", root.Name))
	return nil
}

// ResolveRoot returns the object named name, or the only top level object
// when name is empty.
func ResolveRoot(sc *scene.Scene, name string) (*scene.Object, error) {
	if name != "" {
		if root := sc.Find(name); root != nil {
			return root, nil
		}
		return nil, fmt.Errorf("%w: no object named %q", combine.ErrMissingRoot, name)
	}

	if len(sc.Roots) == 1 {
		return sc.Roots[0], nil
	}
	names := make([]string, len(sc.Roots))
	for i, r := range sc.Roots {
		names[i] = r.Name
	}
	return nil, fmt.Errorf("%w: scene has %d top level objects (%s), pick one with --root",
		combine.ErrMissingRoot, len(sc.Roots), strings.Join(names, ", "))
}

// CombineMeshesStep runs the mesh combiner against the asset store
type CombineMeshesStep struct {
	*Context
}

func (s *CombineMeshesStep) Name() string {
	return "Combine meshes"
}

func (s *CombineMeshesStep) Execute() error {
	format, err := scene.ParseIndexFormat(s.Job.IndexFormat)
	if err != nil {
		return err
	}

	s.Store = assets.NewGLTFStore(s.Job.AssetRoot, s.logger())
	var store combine.AssetStore = s.Store
	if s.DryRun {
		s.Memory = assets.NewMemoryStore()
		if s.Store.DirExists(s.Job.OutputDir) {
			s.Memory.AddDir(s.Job.OutputDir)
		}
		store = s.Memory
	}

	combiner := combine.NewCombiner(store,
		combine.WithLogger(s.logger()),
		combine.WithUVGenerator(unwrap.New(unwrap.WithLogger(s.logger()))),
	)

	ui.PrintInfo("Merging meshes by material...")
	res, err := combiner.Combine(s.Root, combine.Options{
		OutputDir:            assets.Clean(s.Job.OutputDir),
		IndexFormat:          format,
		GenerateSecondaryUVs: s.Job.SecondaryUVs,
	})
	s.Result = res
	if err != nil {
		return err
	}

	ui.PrintSuccess(fmt.Sprintf("Combined into %d mesh%s", len(res.Nodes), pluralizeES(len(res.Nodes))))
	return nil
}

func pluralizeES(count int) string {
	if count == 1 {
		return ""
	}
	return "es"
}

// WriteSceneStep writes the source scene with the result added, when asked to
type WriteSceneStep struct {
	*Context
}

func (s *WriteSceneStep) Name() string {
	return "Write scene"
}

func (s *WriteSceneStep) Execute() error {
	if s.Job.SceneOutput == "" {
		return nil
	}
	s.Scene.Add(s.Result.Root)
	if err := gltfio.Save(gltfio.SceneDocument(s.Scene), s.Job.SceneOutput); err != nil {
		return err
	}
	ui.PrintSuccess("Wrote scene " + s.Job.SceneOutput)
	return nil
}

// ReportStep writes the manifest and prints a summary of the run
type ReportStep struct {
	*Context
}

func (s *ReportStep) Name() string {
	return "Report"
}

func (s *ReportStep) Execute() error {
	s.Manifest = assets.NewManifest(s.Job.Scene, s.Root.Name, s.Result)

	ui.PrintHeader("Combined meshes")
	ui.PrintTableHeader("Name", "Material", "Vertices", "Triangles")
	for _, n := range s.Result.Nodes {
		ui.PrintTableRow(n.Name, n.Material.Name, strconv.Itoa(n.Mesh.VertexCount()), strconv.Itoa(n.Mesh.TriangleCount()))
		if !n.Mesh.IndexRangeValid() {
			ui.PrintWarning(fmt.Sprintf("%s has %d vertices, more than %s indices can address", n.Name, n.Mesh.VertexCount(), n.Mesh.IndexFormat))
		}
	}
	for _, w := range s.Result.Warnings {
		ui.PrintWarning(w.String())
	}

	if s.DryRun {
		data, err := assets.MarshalManifest(s.Manifest)
		if err != nil {
			return err
		}
		ui.PrintHeader("Prefab " + s.Result.PrefabPath)
		printHierarchy(s.Memory.Prefab(s.Result.PrefabPath), 0)
		ui.PrintHeader("Manifest")
		ui.PrintYAML(data)
		return nil
	}

	path := assets.ManifestPath(s.Result.PrefabPath)
	if err := s.Store.WriteManifest(s.Manifest, path); err != nil {
		return err
	}
	s.logger().Info("wrote manifest", zap.String("path", path))
	return nil
}

// printHierarchy prints a saved prefab as a tree
func printHierarchy(o *scene.Object, depth int) {
	if o == nil {
		return
	}
	detail := ""
	if o.Mesh != nil {
		detail = fmt.Sprintf("%d vertices", o.Mesh.VertexCount())
	}
	ui.PrintTree(depth, o.Name, detail)
	for _, c := range o.Children() {
		printHierarchy(c, depth+1)
	}
}
