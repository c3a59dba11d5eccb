// Package assets 加载球体模型场景
//
// 模型场景以 YAML 描述：命名动画片段、每个材质的阴影/混合标志。
// 加载完成后可多次实例化为独立副本挂到实体上。
package assets

import (
	"fmt"

	"github.com/gonewx/brickball/pkg/components"
	"github.com/gonewx/brickball/pkg/ecs"
	"gopkg.in/yaml.v3"
)

// AnimationClip 命名动画片段
type AnimationClip struct {
	Name     string  `yaml:"name"`
	Duration float64 `yaml:"duration"` // 秒
	Loop     bool    `yaml:"loop"`
}

// MaterialDef 模型材质定义
type MaterialDef struct {
	Name       string `yaml:"name"`
	CastShadow bool   `yaml:"castShadow"`
	Blend      bool   `yaml:"blend"`
}

// ModelScene 已加载的模型场景（只读，可共享）
type ModelScene struct {
	Name      string          `yaml:"name"`
	Radius    float64         `yaml:"radius"`
	Segments  int             `yaml:"segments"`
	Clips     []AnimationClip `yaml:"clips"`
	Materials []MaterialDef   `yaml:"materials"`
}

// ParseModelScene 解析模型场景 YAML
func ParseModelScene(data []byte) (*ModelScene, error) {
	var scene ModelScene
	if err := yaml.Unmarshal(data, &scene); err != nil {
		return nil, fmt.Errorf("failed to parse model scene: %w", err)
	}
	if scene.Name == "" {
		return nil, fmt.Errorf("model scene has no name")
	}
	if len(scene.Clips) == 0 {
		return nil, fmt.Errorf("model scene %q has no animation clips", scene.Name)
	}
	return &scene, nil
}

// Clip 按名称查找动画片段
func (s *ModelScene) Clip(name string) (AnimationClip, bool) {
	for _, c := range s.Clips {
		if c.Name == name {
			return c, true
		}
	}
	return AnimationClip{}, false
}

// Instantiate 在实体上挂载模型的独立副本
//
// 参数:
//   - em: 实体管理器
//   - id: 目标实体
//   - clip: 初始播放的动画片段，不存在时使用第一个片段
//   - castShadow: 为 false 时关闭所有材质副本的阴影投射
//
// 返回:
//   - *components.ModelInstanceComponent: 挂载的实例组件
func (s *ModelScene) Instantiate(em *ecs.EntityManager, id ecs.EntityID, clip string, castShadow bool) *components.ModelInstanceComponent {
	if _, ok := s.Clip(clip); !ok {
		clip = s.Clips[0].Name
	}

	materials := make([]components.MaterialInstance, len(s.Materials))
	for i, m := range s.Materials {
		materials[i] = components.MaterialInstance{
			Name:       m.Name,
			CastShadow: m.CastShadow && castShadow,
			Blend:      m.Blend,
		}
	}

	instance := &components.ModelInstanceComponent{
		Scene:     s.Name,
		Clip:      clip,
		Materials: materials,
	}
	em.AddComponent(id, instance)
	return instance
}
