package embedded

import (
	"testing"
	"testing/fstest"
)

// resetForTest 重置包状态，避免测试之间互相影响
func resetForTest(t *testing.T) {
	t.Helper()
	dataFS = nil
	initialized = false
	t.Cleanup(func() {
		dataFS = nil
		initialized = false
	})
}

func TestNotInitialized(t *testing.T) {
	resetForTest(t)

	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}
	if _, err := ReadFile("data/ball_physics.yaml"); err == nil {
		t.Error("Expected error when reading before Init()")
	}
	if Exists("data/ball_physics.yaml") {
		t.Error("Exists() should be false before Init()")
	}
}

func TestReadFileWithPrefixes(t *testing.T) {
	resetForTest(t)
	Init(fstest.MapFS{
		"data/ball_physics.yaml": {Data: []byte("ball:\n  lossDepth: 30\n")},
		"data/models/ball.yaml":  {Data: []byte("name: ball\n")},
	})

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{name: "plain", path: "data/ball_physics.yaml"},
		{name: "dot prefix", path: "./data/models/ball.yaml"},
		{name: "missing", path: "data/missing.yaml", wantErr: true},
		{name: "bad prefix", path: "assets/ball.png", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadFile(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ReadFile(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}

	matches, err := Glob("data/models/*.yaml")
	if err != nil {
		t.Fatalf("Glob failed: %v", err)
	}
	if len(matches) != 1 {
		t.Errorf("Glob matched %v, want one model", matches)
	}
}
