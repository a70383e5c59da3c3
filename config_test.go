package koipond

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfigsValid(t *testing.T) {
	for name, cfg := range map[string]Config{"pond": DefaultConfig(), "blossoms": BlossomConfig()} {
		if err := cfg.Validate(); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
}

func TestParseConfigOverridesBase(t *testing.T) {
	data := []byte(`
seed: 7
fish:
  count: 3
  speed: {min: 0.1, max: 0.2}
petals:
  count: 5
caption: ""
`)
	cfg, err := ParseConfig(data, DefaultConfig())
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.Seed != 7 || cfg.Fish.Count != 3 || cfg.Petals.Count != 5 || cfg.Caption != "" {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Fish.Speed != (Range{0.1, 0.2}) {
		t.Errorf("fish speed %v", cfg.Fish.Speed)
	}
	if cfg.Fish.EdgeMargin != 90 || cfg.Stones.Count != 18 {
		t.Error("unset fields lost their defaults")
	}
}

func TestParseConfigJSON(t *testing.T) {
	cfg, err := ParseConfig([]byte(`{"scene": "blossoms", "petals": {"style": "falling"}}`), DefaultConfig())
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.Scene != SceneBlossoms || cfg.Petals.Style != PetalFalling {
		t.Errorf("scene=%q style=%q", cfg.Scene, cfg.Petals.Style)
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want []string
	}{
		{"malformed", "fish: [", []string{"parse config"}},
		{"unknown scene", "scene: aquarium", []string{`unknown scene "aquarium"`}},
		{"negative count", "fish:\n  count: -1", []string{"fish.count must not be negative"}},
		{"inverted range", "stones:\n  rx: {min: 9, max: 2}", []string{"stones.rx range invalid"}},
		{"turn factor", "fish:\n  turnFactor: 0", []string{"fish.turnFactor"}},
		{"snapping turn factor", "fish:\n  turnFactor: 1", []string{"fish.turnFactor"}},
		{"several", "petals:\n  style: sinking\n  count: -2", []string{"unknown petal style", "petals.count"}},
	}
	for _, tt := range tests {
		base := DefaultConfig()
		cfg, err := ParseConfig([]byte(tt.data), base)
		if err == nil {
			t.Errorf("%s: no error", tt.name)
			continue
		}
		for _, w := range tt.want {
			if !strings.Contains(err.Error(), w) {
				t.Errorf("%s: error %q does not mention %q", tt.name, err, w)
			}
		}
		if cfg.Fish.Count != base.Fish.Count || cfg.Scene != base.Scene {
			t.Errorf("%s: failed parse did not return the base config", tt.name)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pond.yaml")
	if err := os.WriteFile(path, []byte("fish:\n  count: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path, DefaultConfig())
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Fish.Count != 2 {
		t.Errorf("fish count %d", cfg.Fish.Count)
	}

	if _, err := LoadConfig(filepath.Join(dir, "missing.yaml"), DefaultConfig()); err == nil || !strings.Contains(err.Error(), "read config") {
		t.Errorf("missing file error = %v", err)
	}
}

func TestPetalCount(t *testing.T) {
	pond := DefaultConfig()
	if n := pond.petalCount(320); n != pond.Petals.Count {
		t.Errorf("pond petal count on a narrow surface = %d", n)
	}
	bl := BlossomConfig()
	if bl.petalCount(767) != 20 || bl.petalCount(768) != 40 {
		t.Errorf("blossom petal counts %d / %d", bl.petalCount(767), bl.petalCount(768))
	}
}
