package assets

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"
)

// ReadFunc 读取资源文件内容
// 运行时使用 embedded.ReadFile，测试中可替换为内存实现
type ReadFunc func(path string) ([]byte, error)

// Loader 异步模型加载器
type Loader struct {
	read ReadFunc
}

// NewLoader 创建加载器
func NewLoader(read ReadFunc) *Loader {
	return &Loader{read: read}
}

// Handle 一次异步加载的句柄
// 加载结果写入单槽位，游戏循环每帧通过 Ready() 检查而不是等待
type Handle struct {
	path   string
	slot   atomic.Pointer[ModelScene]
	err    atomic.Pointer[error]
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// LoadModelAsync 在后台协程中加载模型场景
//
// 参数:
//   - ctx: 父上下文，取消后加载结果不会被写入
//   - path: 模型 YAML 路径（如 "data/models/ball.yaml"）
//
// 返回:
//   - *Handle: 加载句柄
func (l *Loader) LoadModelAsync(ctx context.Context, path string) *Handle {
	ctx, cancel := context.WithCancel(ctx)
	h := &Handle{
		path:   path,
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(h.done)

		scene, err := l.load(path)
		if ctx.Err() != nil {
			log.Printf("[AssetLoader] Load of %s cancelled", path)
			return
		}
		if err != nil {
			h.err.Store(&err)
			log.Printf("[AssetLoader] Failed to load %s: %v", path, err)
			return
		}
		h.slot.Store(scene)
		log.Printf("[AssetLoader] Loaded model %q from %s", scene.Name, path)
	}()

	return h
}

// load 同步读取并解析模型
func (l *Loader) load(path string) (*ModelScene, error) {
	if l.read == nil {
		return nil, fmt.Errorf("no read function configured")
	}
	data, err := l.read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model %s: %w", path, err)
	}
	return ParseModelScene(data)
}

// Ready 返回已加载的模型；加载未完成、失败或已取消时返回 false
func (h *Handle) Ready() (*ModelScene, bool) {
	if h == nil || h.ctx.Err() != nil {
		return nil, false
	}
	scene := h.slot.Load()
	return scene, scene != nil
}

// Err 返回加载错误（加载未完成或成功时为 nil）
func (h *Handle) Err() error {
	if p := h.err.Load(); p != nil {
		return *p
	}
	return nil
}

// Cancel 取消加载，已写入的结果也不再可见
func (h *Handle) Cancel() {
	if h == nil {
		return
	}
	h.cancel()
}

// Done 返回加载协程结束时关闭的通道
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// ReadyHandle 返回一个已完成加载的句柄，用于测试和同步初始化
func ReadyHandle(scene *ModelScene) *Handle {
	ctx, cancel := context.WithCancel(context.Background())
	h := &Handle{ctx: ctx, cancel: cancel, done: make(chan struct{})}
	h.slot.Store(scene)
	close(h.done)
	return h
}
