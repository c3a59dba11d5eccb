package systems

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/brickball/pkg/assets"
	"github.com/gonewx/brickball/pkg/components"
	"github.com/gonewx/brickball/pkg/config"
	"github.com/gonewx/brickball/pkg/ecs"
	"github.com/gonewx/brickball/pkg/entities"
	"github.com/gonewx/brickball/pkg/game"
	"github.com/gonewx/brickball/pkg/physics"
)

// ballWorld 球相关测试共用的最小场景
type ballWorld struct {
	em      *ecs.EntityManager
	world   *physics.World
	state   *game.GameState
	cfg     *config.BallPhysicsConfig
	factory *entities.BallFactory
}

// newBallWorld 创建已结束开场阶段的测试场景
func newBallWorld(t *testing.T, flags game.FeatureFlags) *ballWorld {
	t.Helper()
	w := &ballWorld{
		em:    ecs.NewEntityManager(),
		world: physics.NewWorld(),
		state: game.NewGameState(game.DefaultLives, 1, flags),
		cfg:   config.DefaultBallPhysicsConfig(),
	}
	w.state.LevelStarting = false
	model := assets.ReadyHandle(&assets.ModelScene{
		Name:  "ball",
		Clips: []assets.AnimationClip{{Name: entities.BallSpinClip, Loop: true}},
	})
	w.factory = entities.NewBallFactory(w.em, w.world, w.state, &w.cfg.Ball, model)
	return w
}

// addPaddle 在指定横向位置放置挡板
func (w *ballWorld) addPaddle(t *testing.T, x float64) (ecs.EntityID, *components.PaddleComponent) {
	t.Helper()
	id, err := entities.NewPaddle(w.em, w.world, &w.cfg.Arena)
	if err != nil {
		t.Fatalf("NewPaddle failed: %v", err)
	}
	tr, _ := ecs.GetComponent[*components.TransformComponent](w.em, id)
	tr.Position[0] = x
	rb, _ := ecs.GetComponent[*components.RigidBody2DComponent](w.em, id)
	rb.Body.SetPosition(mgl64.Vec2{x, w.cfg.Arena.PaddleDepth})
	paddle, _ := ecs.GetComponent[*components.PaddleComponent](w.em, id)
	return id, paddle
}

// spawnFlying 生成一颗朝 -Z 飞行的球并放到指定平面位置
func (w *ballWorld) spawnFlying(t *testing.T, pos mgl64.Vec2) (ecs.EntityID, *components.BallComponent, *physics.Body) {
	t.Helper()
	dir := mgl64.Vec3{0, 0, -1}
	id, ok := w.factory.SpawnBall(mgl64.Vec3{pos.X(), w.cfg.Ball.Height, pos.Y()}, &dir, false)
	if !ok {
		t.Fatal("SpawnBall failed")
	}
	ball, _ := ecs.GetComponent[*components.BallComponent](w.em, id)
	rb, _ := ecs.GetComponent[*components.RigidBody2DComponent](w.em, id)
	return id, ball, rb.Body
}

// liveBalls 返回未被标记死亡的球
func (w *ballWorld) liveBalls() []ecs.EntityID {
	var out []ecs.EntityID
	for _, id := range ecs.GetEntitiesWith1[*components.BallComponent](w.em) {
		if !ecs.HasComponent[*components.DeadComponent](w.em, id) {
			out = append(out, id)
		}
	}
	return out
}
