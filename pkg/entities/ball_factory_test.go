package entities

import (
	"context"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/brickball/pkg/assets"
	"github.com/gonewx/brickball/pkg/components"
	"github.com/gonewx/brickball/pkg/config"
	"github.com/gonewx/brickball/pkg/ecs"
	"github.com/gonewx/brickball/pkg/game"
	"github.com/gonewx/brickball/pkg/physics"
)

// testBallScene 测试用球体模型
func testBallScene() *assets.ModelScene {
	return &assets.ModelScene{
		Name:   "ball",
		Radius: 0.5,
		Clips:  []assets.AnimationClip{{Name: BallSpinClip, Duration: 0.8, Loop: true}},
		Materials: []assets.MaterialDef{
			{Name: "core", CastShadow: true},
		},
	}
}

type factoryFixture struct {
	em      *ecs.EntityManager
	world   *physics.World
	state   *game.GameState
	cfg     *config.BallPhysicsConfig
	factory *BallFactory
}

func newFactoryFixture(t *testing.T, level int) *factoryFixture {
	t.Helper()
	f := &factoryFixture{
		em:    ecs.NewEntityManager(),
		world: physics.NewWorld(),
		state: game.NewGameState(game.DefaultLives, level, game.DefaultFeatureFlags()),
		cfg:   config.DefaultBallPhysicsConfig(),
	}
	f.factory = NewBallFactory(f.em, f.world, f.state, &f.cfg.Ball, assets.ReadyHandle(testBallScene()))
	return f
}

func TestSpawnBallWaitingForLaunch(t *testing.T) {
	f := newFactoryFixture(t, 1)

	id, ok := f.factory.SpawnBall(mgl64.Vec3{5, 1, 23}, nil, false)
	if !ok {
		t.Fatal("SpawnBall should succeed when the model is ready")
	}

	ball, _ := ecs.GetComponent[*components.BallComponent](f.em, id)
	body, _ := ecs.GetComponent[*components.RigidBody2DComponent](f.em, id)
	tr, _ := ecs.GetComponent[*components.TransformComponent](f.em, id)

	if !ball.WaitingForLaunch {
		t.Error("ball spawned without direction should wait for launch")
	}
	if body.Body.Speed() != 0 {
		t.Errorf("waiting ball should have zero velocity, got %v", body.Body.Velocity())
	}
	if tr.Position != (mgl64.Vec3{5, 1, 23}) {
		t.Errorf("transform = %v, want [5 1 23]", tr.Position)
	}
	if body.Body.Position() != (mgl64.Vec2{5, 23}) {
		t.Errorf("body position = %v, want [5 23]", body.Body.Position())
	}

	shape := body.Body.Shape()
	if shape.Kind != physics.ShapeCircle || shape.Radius != f.cfg.Ball.Radius {
		t.Errorf("ball body should be a circle of radius %f, got %+v", f.cfg.Ball.Radius, shape)
	}
	mat := body.Body.Material()
	if mat.Friction != 0 || mat.Restitution != 1 {
		t.Errorf("ball material should be frictionless and perfectly elastic, got %+v", mat)
	}

	for name, present := range map[string]bool{
		"point light":    ecs.HasComponent[*components.PointLightComponent](f.em, id),
		"damage":         ecs.HasComponent[*components.DamageComponent](f.em, id),
		"model instance": ecs.HasComponent[*components.ModelInstanceComponent](f.em, id),
	} {
		if !present {
			t.Errorf("ball should carry a %s component", name)
		}
	}
	if ecs.HasComponent[*components.ShadowCastingLightComponent](f.em, id) {
		t.Error("castShadow=false should not attach a shadow light")
	}
}

func TestSpawnBallWithDirectionIsFlying(t *testing.T) {
	f := newFactoryFixture(t, 1)

	dir := mgl64.Vec3{1, 0, -1}
	id, ok := f.factory.SpawnBall(mgl64.Vec3{0, 1, 20}, &dir, true)
	if !ok {
		t.Fatal("SpawnBall failed")
	}

	ball, _ := ecs.GetComponent[*components.BallComponent](f.em, id)
	body, _ := ecs.GetComponent[*components.RigidBody2DComponent](f.em, id)

	if ball.WaitingForLaunch {
		t.Error("ball spawned with direction should be flying")
	}
	vel := body.Body.Velocity()
	if math.Abs(vel.Len()-ball.Speed) > 1e-9 {
		t.Errorf("speed = %f, want %f", vel.Len(), ball.Speed)
	}
	want := mgl64.Vec2{1, -1}.Normalize()
	if !vel.Normalize().ApproxEqualThreshold(want, 1e-9) {
		t.Errorf("direction = %v, want %v", vel.Normalize(), want)
	}
	if !ecs.HasComponent[*components.ShadowCastingLightComponent](f.em, id) {
		t.Error("castShadow=true should attach a shadow light")
	}
}

func TestSpawnBallSpeedScalesWithLevel(t *testing.T) {
	f := newFactoryFixture(t, 3)

	id, _ := f.factory.SpawnBall(mgl64.Vec3{0, 1, 23}, nil, false)
	ball, _ := ecs.GetComponent[*components.BallComponent](f.em, id)

	if want := f.cfg.Ball.SpeedForLevel(3); ball.Speed != want {
		t.Errorf("speed = %f, want %f", ball.Speed, want)
	}
}

func TestSpawnBallDroppedBeforeModelLoaded(t *testing.T) {
	em := ecs.NewEntityManager()
	world := physics.NewWorld()
	cfg := config.DefaultBallPhysicsConfig()
	state := game.NewGameState(game.DefaultLives, 1, game.DefaultFeatureFlags())

	// 读取永不返回，模型一直处于加载中
	block := make(chan struct{})
	t.Cleanup(func() { close(block) })
	loader := assets.NewLoader(func(string) ([]byte, error) {
		<-block
		return nil, context.Canceled
	})
	handle := loader.LoadModelAsync(context.Background(), "data/models/ball.yaml")
	t.Cleanup(handle.Cancel)

	factory := NewBallFactory(em, world, state, &cfg.Ball, handle)
	if _, ok := factory.SpawnBall(mgl64.Vec3{0, 1, 23}, nil, false); ok {
		t.Error("spawn before model load should be dropped")
	}
	if em.EntityCount() != 0 || world.BodyCount() != 0 {
		t.Error("dropped spawn must not leave entities or bodies behind")
	}
}

func TestLaunchBall(t *testing.T) {
	world := physics.NewWorld()
	body, err := world.CreateBody(physics.BodyDef{Shape: physics.Circle(0.5)})
	if err != nil {
		t.Fatal(err)
	}
	ball := &components.BallComponent{WaitingForLaunch: true, Speed: 12}

	if LaunchBall(ball, body, mgl64.Vec2{}) {
		t.Error("zero direction should not launch")
	}
	if !ball.WaitingForLaunch {
		t.Error("zero direction must keep the ball waiting")
	}

	if !LaunchBall(ball, body, mgl64.Vec2{0.3, -1.5}) {
		t.Fatal("launch should succeed")
	}
	if ball.WaitingForLaunch {
		t.Error("launched ball should be flying")
	}
	if math.Abs(body.Speed()-12) > 1e-9 {
		t.Errorf("speed = %f, want 12", body.Speed())
	}

	// 对飞行中的球再次调用只重置速度
	body.SetVelocity(mgl64.Vec2{1, 0})
	LaunchBall(ball, body, mgl64.Vec2{0, -1})
	if body.Velocity() != (mgl64.Vec2{0, -12}) {
		t.Errorf("relaunch velocity = %v, want [0 -12]", body.Velocity())
	}
}
