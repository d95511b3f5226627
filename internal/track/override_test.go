package track

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadOverride(t *testing.T) {
	doc := `walls:
  - {x: 100, y: 200, w: 300, h: 40, angle: 0.5}
  - {x: 900, y: 900, w: 120, h: 120}
checkpoints:
  - {x: 400, y: 400, r: 80}
  - {x: 1200, y: 600}
pads:
  boost:
    - {x: 2000, y: 500, w: 160, h: 90}
`
	path := filepath.Join(t.TempDir(), "arena.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	ov, err := LoadOverride(path)
	if err != nil {
		t.Fatal(err)
	}

	if len(ov.Walls) != 2 {
		t.Fatalf("expected 2 walls, got %d", len(ov.Walls))
	}
	if ov.Walls[0].Angle != 0.5 {
		t.Errorf("wall angle = %f", ov.Walls[0].Angle)
	}
	if len(ov.Checkpoints) != 2 {
		t.Fatalf("expected 2 checkpoints, got %d", len(ov.Checkpoints))
	}
	if ov.Checkpoints[1].R != 0 {
		t.Errorf("absent radius should parse as zero, got %f", ov.Checkpoints[1].R)
	}
	if ov.Pads == nil || len(ov.Pads.Boost) != 1 {
		t.Fatal("boost pads not parsed")
	}
	if ov.Pads.Grip != nil {
		t.Error("grip pads should be absent")
	}
}

func TestLoadOverrideMissingFile(t *testing.T) {
	if _, err := LoadOverride("/nonexistent/arena.yaml"); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestLoadOverrideMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("walls: {not: a list}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadOverride(path); err == nil {
		t.Fatal("expected a parse error")
	}
}
