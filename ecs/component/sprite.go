package component

import "image/color"

// Sprite is drawn as a filled rectangle centred on the entity transform.
type Sprite struct {
	Width  float64
	Height float64
	Color  color.Color
	Layer  int
	Hidden bool
}

var SpriteComponent = NewComponent[Sprite]()
