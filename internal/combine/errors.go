package combine

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrMissingRoot is returned when no root object was supplied.
	ErrMissingRoot = errors.New("no root object to combine")

	// ErrInvalidOutputPath is returned when the output directory does not exist.
	ErrInvalidOutputPath = errors.New("output directory does not exist")

	// ErrMultiMaterialUnsupported aborts the whole run when a mesh carries
	// more than one material slot. Splitting sub-meshes is not supported.
	ErrMultiMaterialUnsupported = errors.New("objects with multiple materials on the same mesh are not supported")

	// ErrNoEligibleMeshes is returned when nothing under the root can be combined.
	ErrNoEligibleMeshes = errors.New("no meshes with a single material found under root")
)

// WarningKind classifies non-fatal problems.
type WarningKind int

const (
	WarnMissingRendererOrMaterial WarningKind = iota + 1
	WarnSecondaryUVGenerationFailed
)

func (k WarningKind) String() string {
	switch k {
	case WarnMissingRendererOrMaterial:
		return "MissingRendererOrMaterial"
	case WarnSecondaryUVGenerationFailed:
		return "SecondaryUVGenerationFailed"
	}
	return "Unknown"
}

// Warning is a non-fatal problem recorded during a run.
type Warning struct {
	Kind    WarningKind
	Object  string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s: %s", w.Kind, w.Object, w.Message)
}
