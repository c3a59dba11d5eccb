package scenes

import (
	"github.com/gonewx/brickball/pkg/game"
)

// Scene is a type alias for game.Scene.
// All scene implementations should implement the game.Scene interface.
type Scene = game.Scene

var (
	_ Scene           = (*GameScene)(nil)
	_ game.Disposable = (*GameScene)(nil)
)
