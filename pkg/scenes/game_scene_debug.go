package scenes

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// drawHUD 绘制生命、关卡和调试信息
func (s *GameScene) drawHUD(screen *ebiten.Image) {
	gs := s.gameState
	msg := fmt.Sprintf("Level %d  Lives %d", gs.Level, gs.Lives)

	switch {
	case gs.IsGameOver():
		msg += "\nGAME OVER - press R to restart"
	case gs.LevelStarting:
		msg += "\nGet ready..."
	}
	if _, ok := s.ballModel.Ready(); !ok {
		msg += "\nLoading ball model..."
	}

	if gs.Flags.DebugPhysics {
		report := s.ballLifecycle.LastReport()
		msg += fmt.Sprintf("\n[F3] bodies=%d entities=%d alive=%d waiting=%d outlines=%d",
			s.world.BodyCount(), s.entityManager.EntityCount(),
			report.Alive, report.Waiting, s.debugRender.CachedOutlines())
	}
	ebitenutil.DebugPrint(screen, msg)
}
