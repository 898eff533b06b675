package system

import (
	"github.com/plus3/tickecs/ecs"
	"github.com/plus3/tickecs/game/component"
)

type animatedEntity struct {
	*component.Sprite
	*component.SpriteAnimation
}

// SpriteAnimationSystem plays an entity's frames once each time its animation
// is triggered, holding each frame for FrameDuration, then shows DefaultFrame.
type SpriteAnimationSystem struct {
	view *ecs.View[animatedEntity]
}

func NewSpriteAnimationSystem(registry *ecs.ComponentRegistry) *SpriteAnimationSystem {
	return &SpriteAnimationSystem{view: ecs.NewView[animatedEntity](registry)}
}

func (s *SpriteAnimationSystem) Requires() []ecs.Kind { return s.view.Kinds() }

func (s *SpriteAnimationSystem) Update(frame *ecs.UpdateFrame, entities *ecs.EntitySet) {
	for _, item := range s.view.Iter(frame.World, entities) {
		anim := item.SpriteAnimation
		switch {
		case anim.ShouldBeActive && !anim.Active:
			anim.ShouldBeActive = false
			anim.Active = true
			anim.Elapsed = 0
			item.Sprite.Texture = anim.Frame(0)
		case anim.Active:
			anim.Elapsed += frame.DeltaTime
			idx := len(anim.Frames)
			if anim.FrameDuration > 0 {
				idx = int(anim.Elapsed / anim.FrameDuration)
			}
			if idx >= len(anim.Frames) {
				anim.Active = false
				anim.Elapsed = 0
				item.Sprite.Texture = anim.DefaultFrame
				continue
			}
			item.Sprite.Texture = anim.Frames[idx]
		}
	}
}
