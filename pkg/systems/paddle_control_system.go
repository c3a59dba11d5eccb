package systems

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/brickball/pkg/components"
	"github.com/gonewx/brickball/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PaddleInput 挡板输入源
type PaddleInput interface {
	// Axis 返回横向输入，-1 向左，1 向右，0 不动
	Axis() float64
	// LaunchPressed 本帧是否刚按下发射键
	LaunchPressed() bool
}

// DevicePaddleInput 键盘、鼠标和触摸的统一输入
//   - 键盘：方向键/AD 移动，空格发射
//   - 鼠标/触摸：按住屏幕左半边向左、右半边向右，刚按下时发射
//
// 键盘输入优先于指针输入。
type DevicePaddleInput struct {
	ScreenWidth int // 逻辑屏幕宽度，用于判断指针位于哪一半
}

// Axis 实现 PaddleInput
func (in DevicePaddleInput) Axis() float64 {
	axis := 0.0
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		axis--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		axis++
	}
	if axis != 0 {
		return axis
	}

	x, pressed := pointerX()
	if !pressed || in.ScreenWidth <= 0 {
		return 0
	}
	if x < in.ScreenWidth/2 {
		return -1
	}
	return 1
}

// LaunchPressed 实现 PaddleInput
func (in DevicePaddleInput) LaunchPressed() bool {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		return true
	}
	if len(inpututil.AppendJustPressedTouchIDs(nil)) > 0 {
		return true
	}
	return inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
}

// pointerX 返回当前按下的触摸点或鼠标的横坐标，优先检测触摸
func pointerX() (int, bool) {
	if touchIDs := ebiten.AppendTouchIDs(nil); len(touchIDs) > 0 {
		x, _ := ebiten.TouchPosition(touchIDs[0])
		return x, true
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, _ := ebiten.CursorPosition()
		return x, true
	}
	return 0, false
}

// PaddleControlSystem 根据输入移动挡板并写入发射请求
// LaunchRequested 每帧重写，只在按下的那一帧为 true
type PaddleControlSystem struct {
	em    *ecs.EntityManager
	input PaddleInput
}

// NewPaddleControlSystem 创建挡板控制系统
func NewPaddleControlSystem(em *ecs.EntityManager, input PaddleInput) *PaddleControlSystem {
	return &PaddleControlSystem{
		em:    em,
		input: input,
	}
}

// Update 处理挡板输入
func (s *PaddleControlSystem) Update(deltaTime float64) {
	axis := s.input.Axis()
	launch := s.input.LaunchPressed()

	paddles := ecs.GetEntitiesWith2[*components.PaddleComponent, *components.TransformComponent](s.em)
	for _, id := range paddles {
		paddle, _ := ecs.GetComponent[*components.PaddleComponent](s.em, id)
		tr, _ := ecs.GetComponent[*components.TransformComponent](s.em, id)
		if !paddle.Active {
			paddle.LaunchRequested = false
			continue
		}
		paddle.LaunchRequested = launch

		x := tr.Position.X() + axis*paddle.MoveSpeed*deltaTime
		x = mgl64.Clamp(x, paddle.MinX, paddle.MaxX)
		tr.Position[0] = x

		if rb, ok := ecs.GetComponent[*components.RigidBody2DComponent](s.em, id); ok && rb.Body != nil {
			pos := rb.Body.Position()
			rb.Body.SetPosition(mgl64.Vec2{x, pos.Y()})
		}
	}
}
