package scenario

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/arcam/session"
	"github.com/gogpu/arcam/tracking"
)

const sample = `
frames = 90
width = 720
height = 1280
rotation = 90
warmup_frames = 5
near = 0.05
far = 50
clear_color = [0.1, 0.2, 0.3]

[camera]
position = [0, 0.2, 0]
fov_y = 70

[[plane]]
center = [0, -1, -2]
extent_x = 3
extent_z = 3

[[point]]
position = [1, 0, -3]
normal = [0, 0, 1]

[[point]]
position = [-1, 0, -3]

[[tap]]
frame = 20
x = 360
y = 1000

[[camera_loss]]
frame = 40
count = 3

[[lifecycle]]
frame = 60
phase = "paused"

[[lifecycle]]
frame = 50
phase = "Resumed"
`

func TestParse(t *testing.T) {
	s, err := Parse(sample)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if s.Frames != 90 || s.Width != 720 || s.Height != 1280 {
		t.Fatalf("unexpected run shape: %d frames, %dx%d", s.Frames, s.Width, s.Height)
	}
	if s.Rotation != tracking.Rotation90 {
		t.Fatalf("unexpected rotation: %v", s.Rotation)
	}
	if s.WarmupFrames != 5 || s.Near != 0.05 || s.Far != 50 {
		t.Fatalf("unexpected tracking settings: %+v", s)
	}
	if s.ClearColor.R != 0.1 || s.ClearColor.B != 0.3 || s.ClearColor.A != 1 {
		t.Fatalf("unexpected clear color: %+v", s.ClearColor)
	}
	if !s.AutoResume {
		t.Fatalf("auto_resume should default to true")
	}
	if !mgl32.FloatEqualThreshold(s.Scene.FovY, mgl32.DegToRad(70), 1e-6) || s.Scene.Camera.Translation != (mgl32.Vec3{0, 0.2, 0}) {
		t.Fatalf("unexpected camera: %+v fov %v", s.Scene.Camera, s.Scene.FovY)
	}
	if len(s.Scene.Planes) != 1 || s.Scene.Planes[0].ExtentX != 3 {
		t.Fatalf("unexpected planes: %+v", s.Scene.Planes)
	}
	if len(s.Scene.Points) != 2 || s.Scene.Points[1].Normal.LenSqr() != 0 {
		t.Fatalf("unexpected points: %+v", s.Scene.Points)
	}
	if len(s.Taps) != 1 || s.Taps[0] != (Tap{Frame: 20, X: 360, Y: 1000}) {
		t.Fatalf("unexpected taps: %+v", s.Taps)
	}
	if len(s.CameraLoss) != 1 || s.CameraLoss[0].Count != 3 {
		t.Fatalf("unexpected camera loss: %+v", s.CameraLoss)
	}
	if len(s.Lifecycle) != 2 || s.Lifecycle[0].Phase != session.PhaseResumed || s.Lifecycle[1].Phase != session.PhasePaused {
		t.Fatalf("lifecycle should be sorted by frame: %+v", s.Lifecycle)
	}
}

func TestParseDefaults(t *testing.T) {
	s, err := Parse(`frames = 10`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	d := Default()
	if s.Width != d.Width || s.Near != d.Near || len(s.Scene.Planes) != len(d.Scene.Planes) {
		t.Fatalf("defaults not applied: %+v", s)
	}
	if len(s.Taps) != 0 {
		t.Fatalf("file scenarios start without taps: %+v", s.Taps)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"syntax", `frames = `, "parse scenario"},
		{"unknown key", "frames = 10\nfps = 60", "unknown keys"},
		{"rotation", `rotation = 45`, "rotation"},
		{"frames", `frames = 0`, "frames"},
		{"clip", "near = 1\nfar = 1", "clip planes"},
		{"color", `clear_color = [1, 0]`, "clear_color"},
		{"phase", "[[lifecycle]]\nframe = 1\nphase = \"sleeping\"", "unknown lifecycle phase"},
		{"tap range", "frames = 5\n[[tap]]\nframe = 5\nx = 1\ny = 1", "outside run"},
		{"plane extents", "[[plane]]\ncenter = [0, 0, 0]\nextent_x = 0\nextent_z = 1", "positive extents"},
		{"vector", "[camera]\nposition = [0, 1]", "camera.position"},
		{"fov degrees", "[camera]\nfov_y = 180", "camera.fov_y"},
		{"fov zero", "[camera]\nfov_y = 0", "camera.fov_y"},
		{"quaternion", "[camera]\nrotation = [0, 0, 0, 0]", "zero quaternion"},
		{"assets", "[assets]\ndir = \"x\"", "assets.model"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.data)
			if err == nil {
				t.Fatalf("expected error containing %q", tt.want)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not contain %q", err, tt.want)
			}
		})
	}
}

func TestLoadFileResolvesAssetDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.toml")
	data := "frames = 3\n[assets]\ndir = \"assets\"\nmodel = \"m/m.pmx\"\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write scenario: %v", err)
	}
	s, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if s.Assets == nil || s.Assets.Dir != filepath.Join(dir, "assets") || s.Assets.Model != "m/m.pmx" {
		t.Fatalf("unexpected assets: %+v", s.Assets)
	}
}

func TestParsePhase(t *testing.T) {
	for _, p := range []session.Phase{
		session.PhaseCreated, session.PhaseStarted, session.PhaseResumed,
		session.PhasePaused, session.PhaseStopped, session.PhaseDestroyed,
	} {
		got, err := ParsePhase(p.String())
		if err != nil || got != p {
			t.Errorf("ParsePhase(%q) = %v, %v", p.String(), got, err)
		}
	}
}

func TestRunDefault(t *testing.T) {
	res, err := Run(Default())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.ModelFrames != 60 || res.BackgroundDraws != 60 {
		t.Fatalf("unexpected frame counts: model %d, background %d", res.ModelFrames, res.BackgroundDraws)
	}
	if res.Stats.Compositor.AnchorsPlaced != 1 {
		t.Fatalf("tap should place the model: %+v", res.Stats.Compositor)
	}
	if !mgl32.FloatEqualThreshold(res.ModelPosition.Y(), -1.2, 1e-4) {
		t.Fatalf("model should stand on the floor, at %v", res.ModelPosition)
	}
	if res.LiveObjects != 0 {
		t.Fatalf("GL objects leaked: %d", res.LiveObjects)
	}
	if res.Stats.Session.Closes != 1 {
		t.Fatalf("session should be closed at the end: %+v", res.Stats.Session)
	}
}

func TestRunScripted(t *testing.T) {
	s, err := Parse(`
frames = 40
warmup_frames = 4

[[camera_loss]]
frame = 10
count = 2

[[lifecycle]]
frame = 20
phase = "paused"

[[lifecycle]]
frame = 30
phase = "resumed"
`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	res, err := Run(s)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	// 40 frames minus 10 paused minus 2 lost.
	if res.ModelFrames != 28 {
		t.Fatalf("ModelFrames = %d, want 28", res.ModelFrames)
	}
	if res.Stats.Compositor.SkippedFrames != 2 {
		t.Fatalf("SkippedFrames = %d, want 2", res.Stats.Compositor.SkippedFrames)
	}
	// Warmup frames draw no background.
	if res.BackgroundDraws != 24 {
		t.Fatalf("BackgroundDraws = %d, want 24", res.BackgroundDraws)
	}
	if res.Stats.Session.Pauses != 1 || res.Stats.Session.Resumes != 2 {
		t.Fatalf("unexpected session stats: %+v", res.Stats.Session)
	}
	if res.Stats.DrawErrors != 0 {
		t.Fatalf("DrawErrors = %d", res.Stats.DrawErrors)
	}
}

func TestRunWithoutAutoResume(t *testing.T) {
	s := Default()
	s.AutoResume = false
	s.Taps = nil
	res, err := Run(s)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.ModelFrames != 0 || res.Stats.Session.Created != 0 {
		t.Fatalf("nothing should be drawn without a session: %+v", res)
	}
}

func TestRunFovFromFile(t *testing.T) {
	s, err := Parse(`
frames = 20
warmup_frames = 2

[camera]
fov_y = 60

[[tap]]
frame = 10
x = 540
y = 1500
`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !mgl32.FloatEqualThreshold(s.Scene.FovY, Default().Scene.FovY, 1e-6) {
		t.Fatalf("fov_y = 60 should match the default field of view, got %v rad", s.Scene.FovY)
	}
	res, err := Run(s)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Stats.Compositor.AnchorsPlaced != 1 {
		t.Fatalf("tap should place the model: %+v", res.Stats.Compositor)
	}
}
