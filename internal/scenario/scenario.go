// Package scenario describes scripted AR sessions in TOML and plays them
// against the simulated tracker without a GPU.
package scenario

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/arcam/model"
	"github.com/gogpu/arcam/session"
	"github.com/gogpu/arcam/tracking"
	"github.com/gogpu/arcam/tracking/simulated"
)

// Tap is a tap delivered before a frame is drawn.
type Tap struct {
	Frame int
	X, Y  float32
}

// CameraLoss makes the next Count frames from Frame on lose the camera.
type CameraLoss struct {
	Frame int
	Count int
}

// Event is a lifecycle transition delivered before a frame is drawn.
type Event struct {
	Frame int
	Phase session.Phase
}

// Assets locates model files on disk.
type Assets struct {
	// Dir is the asset root, relative to the scenario file.
	Dir string
	model.Assets
}

// Scenario is a scripted run.
type Scenario struct {
	Frames        int
	Width, Height int
	Rotation      tracking.Rotation
	WarmupFrames  int
	Near, Far     float32
	ClearColor    gputypes.Color
	// AutoResume resumes the session before the first frame.
	AutoResume bool

	Scene      simulated.Scene
	Taps       []Tap
	CameraLoss []CameraLoss
	Lifecycle  []Event
	Assets     *Assets
}

// Default returns a short portrait run over the default scene with one tap
// on the floor.
func Default() Scenario {
	return Scenario{
		Frames:     60,
		Width:      1080,
		Height:     1920,
		Near:       0.1,
		Far:        100,
		ClearColor: gputypes.ColorBlack,
		AutoResume: true,
		Scene:      simulated.DefaultScene(),
		Taps:       []Tap{{Frame: 30, X: 540, Y: 1500}},
	}
}

type fileScenario struct {
	Frames       int        `toml:"frames"`
	Width        int        `toml:"width"`
	Height       int        `toml:"height"`
	Rotation     int        `toml:"rotation"`
	WarmupFrames int        `toml:"warmup_frames"`
	Near         float32    `toml:"near"`
	Far          float32    `toml:"far"`
	ClearColor   []float64  `toml:"clear_color"`
	AutoResume   bool       `toml:"auto_resume"`
	Camera       fileCamera `toml:"camera"`
	Planes       []struct {
		Center   []float32 `toml:"center"`
		Rotation []float32 `toml:"rotation"`
		ExtentX  float32   `toml:"extent_x"`
		ExtentZ  float32   `toml:"extent_z"`
	} `toml:"plane"`
	Points []struct {
		Position []float32 `toml:"position"`
		Normal   []float32 `toml:"normal"`
	} `toml:"point"`
	Taps []struct {
		Frame int     `toml:"frame"`
		X     float32 `toml:"x"`
		Y     float32 `toml:"y"`
	} `toml:"tap"`
	CameraLoss []struct {
		Frame int `toml:"frame"`
		Count int `toml:"count"`
	} `toml:"camera_loss"`
	Lifecycle []struct {
		Frame int    `toml:"frame"`
		Phase string `toml:"phase"`
	} `toml:"lifecycle"`
	Assets *struct {
		Dir        string `toml:"dir"`
		Model      string `toml:"model"`
		TextureDir string `toml:"texture_dir"`
		Motion     string `toml:"motion"`
	} `toml:"assets"`
}

type fileCamera struct {
	Position []float32 `toml:"position"`
	// Rotation is a quaternion as [w, x, y, z].
	Rotation []float32 `toml:"rotation"`
	// FovY is the vertical field of view in degrees.
	FovY float32 `toml:"fov_y"`
}

// LoadFile reads a scenario from a TOML file. A relative asset directory
// is resolved against the file's directory.
func LoadFile(path string) (Scenario, error) {
	var raw fileScenario
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Scenario{}, fmt.Errorf("load scenario: %w", err)
	}
	s, err := build(raw, meta)
	if err != nil {
		return Scenario{}, err
	}
	if s.Assets != nil && !filepath.IsAbs(s.Assets.Dir) {
		s.Assets.Dir = filepath.Join(filepath.Dir(path), s.Assets.Dir)
	}
	return s, nil
}

// Parse reads a scenario from TOML text.
func Parse(data string) (Scenario, error) {
	var raw fileScenario
	meta, err := toml.Decode(data, &raw)
	if err != nil {
		return Scenario{}, fmt.Errorf("parse scenario: %w", err)
	}
	return build(raw, meta)
}

func build(raw fileScenario, meta toml.MetaData) (Scenario, error) {
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Scenario{}, fmt.Errorf("scenario: unknown keys: %s", strings.Join(keys, ", "))
	}

	s := Default()
	s.Taps = nil

	if meta.IsDefined("frames") {
		s.Frames = raw.Frames
	}
	if meta.IsDefined("width") {
		s.Width = raw.Width
	}
	if meta.IsDefined("height") {
		s.Height = raw.Height
	}
	if meta.IsDefined("rotation") {
		r, err := parseRotation(raw.Rotation)
		if err != nil {
			return Scenario{}, err
		}
		s.Rotation = r
	}
	if meta.IsDefined("warmup_frames") {
		s.WarmupFrames = raw.WarmupFrames
	}
	if meta.IsDefined("near") {
		s.Near = raw.Near
	}
	if meta.IsDefined("far") {
		s.Far = raw.Far
	}
	if meta.IsDefined("auto_resume") {
		s.AutoResume = raw.AutoResume
	}
	if meta.IsDefined("clear_color") {
		c := raw.ClearColor
		if len(c) != 3 && len(c) != 4 {
			return Scenario{}, fmt.Errorf("scenario: clear_color needs 3 or 4 components, got %d", len(c))
		}
		s.ClearColor = gputypes.Color{R: c[0], G: c[1], B: c[2], A: 1}
		if len(c) == 4 {
			s.ClearColor.A = c[3]
		}
	}

	if err := buildCamera(&s.Scene, raw.Camera, meta); err != nil {
		return Scenario{}, err
	}
	if meta.IsDefined("plane") {
		s.Scene.Planes = nil
		for i, p := range raw.Planes {
			center, err := vec3(p.Center, fmt.Sprintf("plane[%d].center", i))
			if err != nil {
				return Scenario{}, err
			}
			rot, err := quat(p.Rotation, fmt.Sprintf("plane[%d].rotation", i))
			if err != nil {
				return Scenario{}, err
			}
			s.Scene.Planes = append(s.Scene.Planes, simulated.PlaneSpec{
				Center:  tracking.NewPose(center, rot),
				ExtentX: p.ExtentX,
				ExtentZ: p.ExtentZ,
			})
		}
	}
	if meta.IsDefined("point") {
		s.Scene.Points = nil
		for i, p := range raw.Points {
			pos, err := vec3(p.Position, fmt.Sprintf("point[%d].position", i))
			if err != nil {
				return Scenario{}, err
			}
			var normal mgl32.Vec3
			if p.Normal != nil {
				if normal, err = vec3(p.Normal, fmt.Sprintf("point[%d].normal", i)); err != nil {
					return Scenario{}, err
				}
			}
			s.Scene.Points = append(s.Scene.Points, simulated.PointSpec{Position: pos, Normal: normal})
		}
	}

	for _, t := range raw.Taps {
		s.Taps = append(s.Taps, Tap{Frame: t.Frame, X: t.X, Y: t.Y})
	}
	for _, l := range raw.CameraLoss {
		s.CameraLoss = append(s.CameraLoss, CameraLoss{Frame: l.Frame, Count: l.Count})
	}
	for i, e := range raw.Lifecycle {
		phase, err := ParsePhase(e.Phase)
		if err != nil {
			return Scenario{}, fmt.Errorf("scenario: lifecycle[%d]: %w", i, err)
		}
		s.Lifecycle = append(s.Lifecycle, Event{Frame: e.Frame, Phase: phase})
	}
	if raw.Assets != nil {
		s.Assets = &Assets{
			Dir: strings.TrimSpace(raw.Assets.Dir),
			Assets: model.Assets{
				Model:      raw.Assets.Model,
				TextureDir: raw.Assets.TextureDir,
				Motion:     raw.Assets.Motion,
			},
		}
	}

	sort.SliceStable(s.Lifecycle, func(i, j int) bool { return s.Lifecycle[i].Frame < s.Lifecycle[j].Frame })
	return s, s.Validate()
}

func buildCamera(scene *simulated.Scene, c fileCamera, meta toml.MetaData) error {
	pose := scene.Camera
	if meta.IsDefined("camera", "position") {
		p, err := vec3(c.Position, "camera.position")
		if err != nil {
			return err
		}
		pose.Translation = p
	}
	if meta.IsDefined("camera", "rotation") {
		q, err := quat(c.Rotation, "camera.rotation")
		if err != nil {
			return err
		}
		pose.Rotation = q
	}
	if meta.IsDefined("camera", "fov_y") {
		if c.FovY <= 0 || c.FovY >= 180 {
			return fmt.Errorf("scenario: camera.fov_y %v out of range (0, 180) degrees", c.FovY)
		}
		scene.FovY = mgl32.DegToRad(c.FovY)
	}
	scene.Camera = pose
	return nil
}

// Validate reports the first inconsistency in s.
func (s Scenario) Validate() error {
	switch {
	case s.Frames <= 0:
		return errors.New("scenario: frames must be positive")
	case s.Width <= 0 || s.Height <= 0:
		return fmt.Errorf("scenario: invalid viewport %dx%d", s.Width, s.Height)
	case s.Near <= 0 || s.Far <= s.Near:
		return fmt.Errorf("scenario: invalid clip planes near=%v far=%v", s.Near, s.Far)
	case s.WarmupFrames < 0:
		return errors.New("scenario: warmup_frames must not be negative")
	case s.Scene.FovY <= 0 || s.Scene.FovY >= math.Pi:
		return fmt.Errorf("scenario: fov_y %v out of range", s.Scene.FovY)
	}
	for i, p := range s.Scene.Planes {
		if p.ExtentX <= 0 || p.ExtentZ <= 0 {
			return fmt.Errorf("scenario: plane[%d] needs positive extents", i)
		}
	}
	for i, t := range s.Taps {
		if t.Frame < 0 || t.Frame >= s.Frames {
			return fmt.Errorf("scenario: tap[%d] at frame %d outside run", i, t.Frame)
		}
	}
	for i, l := range s.CameraLoss {
		if l.Count <= 0 {
			return fmt.Errorf("scenario: camera_loss[%d] needs a positive count", i)
		}
	}
	if s.Assets != nil && s.Assets.Model == "" {
		return errors.New("scenario: assets.model is required")
	}
	return nil
}

var phases = map[string]session.Phase{
	"created":   session.PhaseCreated,
	"started":   session.PhaseStarted,
	"resumed":   session.PhaseResumed,
	"paused":    session.PhasePaused,
	"stopped":   session.PhaseStopped,
	"destroyed": session.PhaseDestroyed,
}

// ParsePhase parses a lifecycle phase name as printed by Phase.String.
func ParsePhase(name string) (session.Phase, error) {
	p, ok := phases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown lifecycle phase %q", name)
	}
	return p, nil
}

func parseRotation(deg int) (tracking.Rotation, error) {
	switch deg {
	case 0:
		return tracking.Rotation0, nil
	case 90:
		return tracking.Rotation90, nil
	case 180:
		return tracking.Rotation180, nil
	case 270:
		return tracking.Rotation270, nil
	}
	return 0, fmt.Errorf("scenario: rotation must be 0, 90, 180 or 270, got %d", deg)
}

func vec3(v []float32, key string) (mgl32.Vec3, error) {
	if len(v) != 3 {
		return mgl32.Vec3{}, fmt.Errorf("scenario: %s needs 3 components, got %d", key, len(v))
	}
	return mgl32.Vec3{v[0], v[1], v[2]}, nil
}

// quat reads [w, x, y, z]; an empty value is the identity.
func quat(v []float32, key string) (mgl32.Quat, error) {
	if len(v) == 0 {
		return mgl32.QuatIdent(), nil
	}
	if len(v) != 4 {
		return mgl32.Quat{}, fmt.Errorf("scenario: %s needs 4 components, got %d", key, len(v))
	}
	q := mgl32.Quat{W: v[0], V: mgl32.Vec3{v[1], v[2], v[3]}}
	if q.Len() == 0 {
		return mgl32.Quat{}, fmt.Errorf("scenario: %s is a zero quaternion", key)
	}
	return q.Normalize(), nil
}
