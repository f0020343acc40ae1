package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pathcache/internal/adapters/config"
	"go.trai.ch/pathcache/internal/core/domain"
	"go.trai.ch/pathcache/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

const validScenario = `
version: "1"
name: shapes
root_class: Scene
classes:
  Scene:
    attributes:
      shape: Shape
      label: string
  Shape:
    attributes:
      position: Point
      color: string
  Point:
    attributes:
      x: float
      y: float
objects:
  scene: {class: Scene, values: {shape: "@shape", label: main}}
  shape: {class: Shape, values: {position: "@origin", color: red}}
  origin: {class: Point, values: {x: 0, y: 1.5}}
  other: {class: Point, values: {x: 3, y: 4}}
roots: [scene]
paths:
  - shape.position.x
  - shape.color
steps:
  - set: origin.x
    value: 2
  - set: shape.position
    ref: other
  - get: scene.shape.color
  - wait_ready: true
  - remove_path: shape.color
  - clear: true
`

func newLoader(t *testing.T) *config.Loader {
	t.Helper()
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Warn(gomock.Any(), gomock.Any()).AnyTimes()
	logger.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()
	return config.NewLoader(logger)
}

func TestParse_ValidScenario(t *testing.T) {
	sc, err := newLoader(t).Parse([]byte(validScenario))
	require.NoError(t, err)

	assert.Equal(t, "shapes", sc.Name)
	require.NotNil(t, sc.RootClass)
	assert.Equal(t, "Scene", sc.RootClass.Name)
	assert.Len(t, sc.Classes, 3)

	shapeAttr, ok := sc.Classes["Scene"].Attribute("shape")
	require.True(t, ok)
	assert.Equal(t, domain.KindObject, shapeAttr.Kind)
	assert.Same(t, sc.Classes["Shape"], shapeAttr.Class)

	// Objects are emitted in ID order.
	require.Len(t, sc.Objects, 4)
	ids := make([]string, 0, len(sc.Objects))
	for _, o := range sc.Objects {
		ids = append(ids, o.ID)
	}
	assert.Equal(t, []string{"origin", "other", "scene", "shape"}, ids)

	origin := sc.Objects[0]
	assert.Equal(t, "Point", origin.Class)
	assert.Equal(t, 0.0, origin.Values["x"], "ints widen to float attributes")
	assert.Equal(t, 1.5, origin.Values["y"])

	scene := sc.Objects[2]
	assert.Equal(t, map[string]string{"shape": "shape"}, scene.Refs)
	assert.Equal(t, "main", scene.Values["label"])

	assert.Equal(t, []string{"scene"}, sc.Roots)
	require.Len(t, sc.Paths, 2)
	assert.Equal(t, "shape.position.x", sc.Paths[0].String())

	require.Len(t, sc.Steps, 6)
	assert.Equal(t, domain.Step{Kind: domain.StepSet, Object: "origin", Attribute: "x", Value: 2.0}, sc.Steps[0])
	assert.Equal(t, domain.Step{Kind: domain.StepSet, Object: "shape", Attribute: "position", Ref: "other"}, sc.Steps[1])
	assert.Equal(t, domain.StepGet, sc.Steps[2].Kind)
	assert.Equal(t, "scene", sc.Steps[2].Object)
	assert.Equal(t, "shape.color", sc.Steps[2].Path.String())
	assert.Equal(t, domain.StepWaitReady, sc.Steps[3].Kind)
	assert.Equal(t, domain.StepRemovePath, sc.Steps[4].Kind)
	assert.Equal(t, domain.StepClear, sc.Steps[5].Kind)
}

func TestParse_WarnsAboutUnusedObjects(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Warn("object is never used", "object", "orphan").Times(1)
	logger.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()

	_, err := config.NewLoader(logger).Parse([]byte(`
version: "1"
classes:
  Point: {attributes: {x: int}}
objects:
  p: {class: Point}
  orphan: {class: Point}
roots: [p]
`))
	require.NoError(t, err)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr error
	}{
		{
			name:    "Malformed YAML",
			yaml:    "version: [",
			wantErr: domain.ErrScenarioParseFailed,
		},
		{
			name:    "Unsupported Version",
			yaml:    `version: "2"`,
			wantErr: domain.ErrUnsupportedVersion,
		},
		{
			name: "Unknown Attribute Type",
			yaml: `
version: "1"
classes:
  Point: {attributes: {x: decimal}}
`,
			wantErr: domain.ErrInvalidAttributeType,
		},
		{
			name: "Unknown Root Class",
			yaml: `
version: "1"
root_class: Missing
`,
			wantErr: domain.ErrUnknownClass,
		},
		{
			name: "Object With Undeclared Class",
			yaml: `
version: "1"
objects:
  p: {class: Point}
`,
			wantErr: domain.ErrUnknownClass,
		},
		{
			name: "Unknown Value Attribute",
			yaml: `
version: "1"
classes:
  Point: {attributes: {x: int}}
objects:
  p: {class: Point, values: {z: 1}}
`,
			wantErr: domain.ErrUnknownAttribute,
		},
		{
			name: "Value Of Wrong Kind",
			yaml: `
version: "1"
classes:
  Point: {attributes: {x: int}}
objects:
  p: {class: Point, values: {x: hello}}
`,
			wantErr: domain.ErrTypeMismatch,
		},
		{
			name: "Dangling Reference",
			yaml: `
version: "1"
classes:
  Box: {attributes: {item: any}}
objects:
  b: {class: Box, values: {item: "@ghost"}}
`,
			wantErr: domain.ErrUnknownObject,
		},
		{
			name: "Reference Of Wrong Class",
			yaml: `
version: "1"
classes:
  Point: {attributes: {x: int}}
  Label: {attributes: {text: string}}
  Pin: {attributes: {at: Point}}
objects:
  l: {class: Label}
  pin: {class: Pin, values: {at: "@l"}}
`,
			wantErr: domain.ErrTypeMismatch,
		},
		{
			name: "Literal For Object Attribute",
			yaml: `
version: "1"
classes:
  Point: {attributes: {x: int}}
  Pin: {attributes: {at: Point}}
objects:
  pin: {class: Pin, values: {at: 3}}
`,
			wantErr: domain.ErrTypeMismatch,
		},
		{
			name: "Unknown Root Object",
			yaml: `
version: "1"
roots: [nobody]
`,
			wantErr: domain.ErrUnknownObject,
		},
		{
			name: "Path Not Resolving Against Root Class",
			yaml: `
version: "1"
root_class: Point
classes:
  Point: {attributes: {x: int}}
paths: [y]
`,
			wantErr: domain.ErrUnknownAttribute,
		},
		{
			name: "Path Through Scalar",
			yaml: `
version: "1"
root_class: Point
classes:
  Point: {attributes: {x: int}}
paths: [x.y]
`,
			wantErr: domain.ErrNotAnObject,
		},
		{
			name: "Empty Path Segment",
			yaml: `
version: "1"
paths: [a..b]
`,
			wantErr: domain.ErrEmptyPath,
		},
		{
			name: "Step With Two Operations",
			yaml: `
version: "1"
steps:
  - wait_ready: true
    clear: true
`,
			wantErr: domain.ErrInvalidStep,
		},
		{
			name: "Step Without Operation",
			yaml: `
version: "1"
steps:
  - value: 3
`,
			wantErr: domain.ErrInvalidStep,
		},
		{
			name: "Set Without Attribute",
			yaml: `
version: "1"
classes:
  Point: {attributes: {x: int}}
objects:
  p: {class: Point}
steps:
  - set: p
    value: 1
`,
			wantErr: domain.ErrInvalidStep,
		},
		{
			name: "Set With Value And Ref",
			yaml: `
version: "1"
classes:
  Box: {attributes: {item: any}}
objects:
  a: {class: Box}
  b: {class: Box}
steps:
  - set: a.item
    value: 1
    ref: b
`,
			wantErr: domain.ErrInvalidStep,
		},
		{
			name: "Get On Unknown Object",
			yaml: `
version: "1"
steps:
  - get: ghost.x
`,
			wantErr: domain.ErrUnknownObject,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newLoader(t).Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestParse_StepNumberInMetadata(t *testing.T) {
	_, err := newLoader(t).Parse([]byte(`
version: "1"
steps:
  - clear: true
  - {}
`))
	require.Error(t, err)

	var zErr *zerr.Error
	require.True(t, errors.As(err, &zErr))
	assert.Equal(t, 2, zErr.Metadata()["step"])
}

func TestLoad(t *testing.T) {
	t.Run("Reads File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "scenario.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`version: "1"`), 0o600))

		sc, err := newLoader(t).Load(path)
		require.NoError(t, err)
		assert.Equal(t, path, sc.Name, "name defaults to the file path")
		assert.Empty(t, sc.Steps)
	})

	t.Run("Missing File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing.yaml")
		_, err := newLoader(t).Load(path)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrScenarioReadFailed))

		var zErr *zerr.Error
		require.True(t, errors.As(err, &zErr))
		assert.Equal(t, path, zErr.Metadata()["file"])
	})

	t.Run("Invalid Content Carries File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`version: "9"`), 0o600))

		_, err := newLoader(t).Load(path)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrUnsupportedVersion))
		assert.Equal(t, path, err.(*zerr.Error).Metadata()["file"]) //nolint:errorlint // Load returns *zerr.Error
	})
}
