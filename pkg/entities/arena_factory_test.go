package entities

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/brickball/pkg/components"
	"github.com/gonewx/brickball/pkg/config"
	"github.com/gonewx/brickball/pkg/ecs"
	"github.com/gonewx/brickball/pkg/physics"
)

func TestNewArenaCreatesWallsAndBumpers(t *testing.T) {
	em := ecs.NewEntityManager()
	world := physics.NewWorld()
	cfg := config.DefaultBallPhysicsConfig()

	ids, err := NewArena(em, world, &cfg.Arena, cfg.Ball.LossDepth)
	if err != nil {
		t.Fatalf("NewArena failed: %v", err)
	}
	if want := 3 + len(cfg.Arena.Bumpers); len(ids) != want {
		t.Fatalf("expected %d static entities, got %d", want, len(ids))
	}

	polygons := 0
	for _, id := range ids {
		rb, ok := ecs.GetComponent[*components.RigidBody2DComponent](em, id)
		if !ok {
			t.Fatalf("entity %d has no rigid body", id)
		}
		if rb.Body.Type() != physics.BodyStatic {
			t.Errorf("arena body %d should be static", id)
		}
		if rb.Body.Shape().Kind == physics.ShapePolygon {
			polygons++
		}
	}
	if polygons != len(cfg.Arena.Bumpers) {
		t.Errorf("expected %d polygon bumpers, got %d", len(cfg.Arena.Bumpers), polygons)
	}
}

func TestNewPaddle(t *testing.T) {
	em := ecs.NewEntityManager()
	world := physics.NewWorld()
	cfg := config.DefaultBallPhysicsConfig()

	id, err := NewPaddle(em, world, &cfg.Arena)
	if err != nil {
		t.Fatal(err)
	}
	paddle, ok := ecs.GetComponent[*components.PaddleComponent](em, id)
	if !ok || !paddle.Active {
		t.Fatal("paddle should be active")
	}
	if paddle.MaxX-paddle.MinX != (cfg.Arena.MaxX-cfg.Arena.MinX)-cfg.Arena.PaddleWidth {
		t.Errorf("paddle range [%f, %f] should keep it inside the arena", paddle.MinX, paddle.MaxX)
	}
	rb, _ := ecs.GetComponent[*components.RigidBody2DComponent](em, id)
	if rb.Body.Type() != physics.BodyKinematic {
		t.Error("paddle body should be kinematic")
	}
}

func TestNewBrickGridAndBonusRequest(t *testing.T) {
	em := ecs.NewEntityManager()
	world := physics.NewWorld()
	cfg := config.DefaultBallPhysicsConfig()

	bricks, err := NewBrickGrid(em, world, &cfg.Arena)
	if err != nil {
		t.Fatal(err)
	}
	if len(bricks) != cfg.Arena.BrickRows*cfg.Arena.BrickColumns {
		t.Errorf("expected %d bricks, got %d", cfg.Arena.BrickRows*cfg.Arena.BrickColumns, len(bricks))
	}

	req := NewBonusBallRequest(em, mgl64.Vec3{1, 0, 4}, 2)
	if !ecs.HasComponent[*components.BonusBallRequestComponent](em, req) {
		t.Error("request should carry the bonus marker")
	}
	if ecs.HasComponent[*components.DeadComponent](em, req) {
		t.Error("bonus request must not reuse the dead marker")
	}
}
