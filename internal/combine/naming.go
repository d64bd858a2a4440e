package combine

import (
	"fmt"
	"path"
	"strings"

	"github.com/philipparndt/meshcombine/internal/scene"
)

// NamePrefix starts every generated asset and object name.
const NamePrefix = "CombinedMeshes_"

// materialDisplayName is the material name up to its first space.
func materialDisplayName(m *scene.Material) string {
	return strings.Split(m.Name, " ")[0]
}

// nodeName names a merged mesh and its object. With several groups the name
// comes from the material plus the merged mesh's instance id; a single group
// is named after the source root instead.
func nodeName(root *scene.Object, m *scene.Material, merged *scene.Mesh, groupCount int) string {
	if groupCount > 1 {
		return fmt.Sprintf("%s%s_%d", NamePrefix, materialDisplayName(m), merged.InstanceID())
	}
	return resultName(root)
}

// resultName names the synthetic root of a multi-group result.
func resultName(root *scene.Object) string {
	return NamePrefix + root.Name
}

// assetFileName turns an object name into a single path element. Object and
// material names may contain separators; assets always land directly in the
// output directory.
var assetFileName = strings.NewReplacer("/", "_", "\\", "_").Replace

func meshAssetPath(dir, name string) string {
	return path.Join(dir, assetFileName(name)+MeshAssetExt)
}

func prefabAssetPath(dir, name string) string {
	return path.Join(dir, assetFileName(name)+PrefabAssetExt)
}
