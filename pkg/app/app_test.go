package app

import (
	"testing"

	"github.com/gonewx/brickball/pkg/game"
)

func TestApplyOverrides(t *testing.T) {
	on, off := true, false
	tests := []struct {
		name string
		cfg  Config
		want game.FeatureFlags
	}{
		{
			name: "no overrides keep saved flags",
			cfg:  Config{},
			want: game.FeatureFlags{BallsCastShadows: true, DebugPhysics: true},
		},
		{
			name: "auto-launch enabled",
			cfg:  Config{AutoLaunch: &on},
			want: game.FeatureFlags{BallsCastShadows: true, AutoLaunch: true, DebugPhysics: true},
		},
		{
			name: "debug physics disabled",
			cfg:  Config{DebugPhysics: &off},
			want: game.FeatureFlags{BallsCastShadows: true},
		},
	}

	saved := game.FeatureFlags{BallsCastShadows: true, DebugPhysics: true}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := applyOverrides(saved, tt.cfg); got != tt.want {
				t.Errorf("applyOverrides() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLoadPhysicsConfigFromDisk(t *testing.T) {
	cfg, err := loadPhysicsConfig("../../data/ball_physics.yaml")
	if err != nil {
		t.Fatalf("loadPhysicsConfig failed: %v", err)
	}
	if cfg.Ball.LossDepth <= cfg.Ball.WaitingDepth {
		t.Error("project config should be valid")
	}

	if _, err := loadPhysicsConfig("does-not-exist.yaml"); err == nil {
		t.Error("missing file should return an error")
	}
}
