package config

import (
	"fmt"
	"os"

	"github.com/gonewx/brickball/pkg/embedded"
	colorful "github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// BallPhysicsConfigPath 默认配置文件位置
const BallPhysicsConfigPath = "data/ball_physics.yaml"

// BallPhysicsConfig 球体玩法与物理调试配置
//
// 坐标约定：X 为横向，Y 为高度，Z 为纵深，发射方向为 -Z。
//
// 配置文件位置: data/ball_physics.yaml
type BallPhysicsConfig struct {
	Ball        BallConfig        `yaml:"ball"`
	DebugRender DebugRenderConfig `yaml:"debugRender"`
	Arena       ArenaConfig       `yaml:"arena"`
}

// BallConfig 球体生命周期参数
type BallConfig struct {
	// LossDepth 失球深度，Z 超过此值的球判定为丢失
	LossDepth float64 `yaml:"lossDepth"`
	// WaitingDepth 等待发射时球的固定纵深
	WaitingDepth float64 `yaml:"waitingDepth"`
	// Height 球心高度（奖励球、重生球都固定在此高度）
	Height float64 `yaml:"height"`
	// Radius 球半径
	Radius float64 `yaml:"radius"`

	// BaseSpeed 第 1 关的巡航速率
	BaseSpeed float64 `yaml:"baseSpeed"`
	// LevelSpeedScale 每提升一关速率增加的比例
	LevelSpeedScale float64 `yaml:"levelSpeedScale"`

	// LaunchLateralRange 发射方向横向分量的取值范围 [-r, r]（归一化前）
	LaunchLateralRange float64 `yaml:"launchLateralRange"`
	// LaunchForward 发射方向纵向分量的大小（归一化前，方向固定为 -Z）
	LaunchForward float64 `yaml:"launchForward"`

	// PerturbAmplitude 飞行时每帧横向扰动速度的幅度
	PerturbAmplitude float64 `yaml:"perturbAmplitude"`
	// PerturbFrequency 扰动振荡频率（弧度/秒）
	PerturbFrequency float64 `yaml:"perturbFrequency"`

	// HueCenter/HueSwing/HueRate 颜色色相振荡：center + swing*sin(t*rate)
	HueCenter  float64 `yaml:"hueCenter"`
	HueSwing   float64 `yaml:"hueSwing"`
	HueRate    float64 `yaml:"hueRate"`
	Saturation float64 `yaml:"saturation"`

	// IntensityReferenceSpeed 发光强度 = speed / reference，再限制到 [min, max]
	IntensityReferenceSpeed float64 `yaml:"intensityReferenceSpeed"`
	MinIntensity            float64 `yaml:"minIntensity"`
	MaxIntensity            float64 `yaml:"maxIntensity"`

	// LightRange 点光源基础半径，实际半径 = LightRange * GlowIntensity
	LightRange float64 `yaml:"lightRange"`
	// ShadowBias 阴影光源深度偏移
	ShadowBias float64 `yaml:"shadowBias"`
	// BonusHue 奖励球灯光色相（暖色）
	BonusHue float64 `yaml:"bonusHue"`
	// Damage 球的接触伤害
	Damage int `yaml:"damage"`

	// AutoLaunchInterval 自动发射模式下两次生成之间的最短间隔（秒）
	AutoLaunchInterval float64 `yaml:"autoLaunchInterval"`
}

// DebugRenderConfig 物理调试描边参数
type DebugRenderConfig struct {
	SlowColor      string  `yaml:"slowColor"`      // 静止时颜色（十六进制）
	FastColor      string  `yaml:"fastColor"`      // 达到参考速率时颜色（十六进制）
	ReferenceSpeed float64 `yaml:"referenceSpeed"` // 颜色插值上限速率
	PulseAmplitude float64 `yaml:"pulseAmplitude"` // 脉冲缩放幅度
	PulsePeriod    float64 `yaml:"pulsePeriod"`    // 脉冲周期（秒）
	Height         float64 `yaml:"height"`         // 描边绘制高度
	LineWidth      float64 `yaml:"lineWidth"`      // 描边线宽（像素）
	RingSegments   int     `yaml:"ringSegments"`   // 圆环网格分段数

	slow, fast colorful.Color
}

// ArenaConfig 场地布局
type ArenaConfig struct {
	MinX float64 `yaml:"minX"`
	MaxX float64 `yaml:"maxX"`
	MinZ float64 `yaml:"minZ"`

	WallThickness float64 `yaml:"wallThickness"`

	PaddleWidth float64 `yaml:"paddleWidth"`
	PaddleDepth float64 `yaml:"paddleDepth"` // 挡板中心纵深
	PaddleSpeed float64 `yaml:"paddleSpeed"`

	Bumpers [][][2]float64 `yaml:"bumpers"` // 多边形障碍物（世界坐标 X/Z 顶点）

	BrickRows        int     `yaml:"brickRows"`
	BrickColumns     int     `yaml:"brickColumns"`
	BrickWidth       float64 `yaml:"brickWidth"`
	BrickDepth       float64 `yaml:"brickDepth"`
	BrickStartZ      float64 `yaml:"brickStartZ"`
	BrickHealth      int     `yaml:"brickHealth"`
	BrickBonusChance float64 `yaml:"brickBonusChance"`
}

// DefaultBallPhysicsConfig 返回内置默认配置
// 配置文件缺失时使用；加载 YAML 时也以此为底，未填写的字段保持默认值
func DefaultBallPhysicsConfig() *BallPhysicsConfig {
	cfg := &BallPhysicsConfig{
		Ball: BallConfig{
			LossDepth:               30,
			WaitingDepth:            23,
			Height:                  1,
			Radius:                  0.5,
			BaseSpeed:               12,
			LevelSpeedScale:         0.1,
			LaunchLateralRange:      0.5,
			LaunchForward:           1.5,
			PerturbAmplitude:        0.05,
			PerturbFrequency:        2.0,
			HueCenter:               200,
			HueSwing:                40,
			HueRate:                 1.5,
			Saturation:              0.75,
			IntensityReferenceSpeed: 20,
			MinIntensity:            0.5,
			MaxIntensity:            2.0,
			LightRange:              4,
			ShadowBias:              0.005,
			BonusHue:                20,
			Damage:                  1,
			AutoLaunchInterval:      1.5,
		},
		DebugRender: DebugRenderConfig{
			SlowColor:      "#2e7dff",
			FastColor:      "#ff3b2e",
			ReferenceSpeed: 25,
			PulseAmplitude: 0.05,
			PulsePeriod:    1.2,
			Height:         0.05,
			LineWidth:      1,
			RingSegments:   32,
		},
		Arena: ArenaConfig{
			MinX:             -10,
			MaxX:             10,
			MinZ:             -2,
			WallThickness:    1,
			PaddleWidth:      3,
			PaddleDepth:      24,
			PaddleSpeed:      18,
			Bumpers:          [][][2]float64{{{-6, 12}, {-4, 12}, {-5, 10}}, {{4, 12}, {6, 12}, {5, 10}}},
			BrickRows:        3,
			BrickColumns:     6,
			BrickWidth:       2.5,
			BrickDepth:       1,
			BrickStartZ:      2,
			BrickHealth:      1,
			BrickBonusChance: 0.2,
		},
	}
	// 默认颜色一定合法
	_ = cfg.Validate()
	return cfg
}

// ParseBallPhysicsConfig 解析 YAML 配置内容
//
// 参数:
//   - data: YAML 文本
//
// 返回:
//   - *BallPhysicsConfig: 解析并验证后的配置
//   - error: 解析或验证失败时返回错误
func ParseBallPhysicsConfig(data []byte) (*BallPhysicsConfig, error) {
	cfg := DefaultBallPhysicsConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse ball physics config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid ball physics config: %w", err)
	}
	return cfg, nil
}

// LoadBallPhysicsConfig 加载球体配置
// 优先从嵌入资源读取，嵌入资源未初始化时从文件系统读取
func LoadBallPhysicsConfig(path string) (*BallPhysicsConfig, error) {
	var data []byte
	var err error
	if embedded.IsInitialized() {
		data, err = embedded.ReadFile(path)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read ball physics config: %w", err)
	}
	return ParseBallPhysicsConfig(data)
}

// Validate 验证配置有效性
//
// 检查：
//   - 失球深度必须大于等待深度
//   - 半径、速率、参考速率、脉冲周期必须为正
//   - 发光强度范围合法
//   - 调试颜色可解析
func (c *BallPhysicsConfig) Validate() error {
	b := &c.Ball
	if b.LossDepth <= b.WaitingDepth {
		return fmt.Errorf("lossDepth(%.1f) must be greater than waitingDepth(%.1f)", b.LossDepth, b.WaitingDepth)
	}
	if b.Radius <= 0 {
		return fmt.Errorf("ball radius must be positive, got %.3f", b.Radius)
	}
	if b.BaseSpeed <= 0 {
		return fmt.Errorf("baseSpeed must be positive, got %.3f", b.BaseSpeed)
	}
	if b.LaunchForward <= 0 {
		return fmt.Errorf("launchForward must be positive, got %.3f", b.LaunchForward)
	}
	if b.LaunchLateralRange < 0 {
		return fmt.Errorf("launchLateralRange must not be negative, got %.3f", b.LaunchLateralRange)
	}
	if b.IntensityReferenceSpeed <= 0 {
		return fmt.Errorf("intensityReferenceSpeed must be positive, got %.3f", b.IntensityReferenceSpeed)
	}
	if b.MinIntensity > b.MaxIntensity {
		return fmt.Errorf("intensity range invalid: min(%.2f) > max(%.2f)", b.MinIntensity, b.MaxIntensity)
	}

	d := &c.DebugRender
	if d.ReferenceSpeed <= 0 {
		return fmt.Errorf("debugRender referenceSpeed must be positive, got %.3f", d.ReferenceSpeed)
	}
	if d.PulsePeriod <= 0 {
		return fmt.Errorf("debugRender pulsePeriod must be positive, got %.3f", d.PulsePeriod)
	}
	if d.RingSegments < 3 {
		return fmt.Errorf("debugRender ringSegments must be >= 3, got %d", d.RingSegments)
	}
	slow, err := colorful.Hex(d.SlowColor)
	if err != nil {
		return fmt.Errorf("debugRender slowColor %q: %w", d.SlowColor, err)
	}
	fast, err := colorful.Hex(d.FastColor)
	if err != nil {
		return fmt.Errorf("debugRender fastColor %q: %w", d.FastColor, err)
	}
	d.slow, d.fast = slow, fast

	a := &c.Arena
	if a.MinX >= a.MaxX {
		return fmt.Errorf("arena x range invalid: min(%.1f) >= max(%.1f)", a.MinX, a.MaxX)
	}
	for i, bumper := range a.Bumpers {
		if len(bumper) < 3 {
			return fmt.Errorf("bumper %d needs at least 3 vertices, got %d", i, len(bumper))
		}
	}

	return nil
}

// SpeedForLevel 返回指定关卡的球速
// 第 1 关为 BaseSpeed，之后每关增加 LevelSpeedScale 比例
func (b *BallConfig) SpeedForLevel(level int) float64 {
	if level < 1 {
		level = 1
	}
	return b.BaseSpeed * (1 + float64(level-1)*b.LevelSpeedScale)
}

// Colors 返回已解析的慢速/快速描边颜色
func (d *DebugRenderConfig) Colors() (slow, fast colorful.Color) {
	return d.slow, d.fast
}
