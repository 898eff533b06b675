// Package level reads arena layouts from YAML and spawns them into a world.
package level

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/plus3/tickecs/game/geom"
)

// Level is one arena layout.
type Level struct {
	Name       string  `yaml:"name"`
	Background Color   `yaml:"background"`
	Player     Spawn   `yaml:"player"`
	Walls      []Wall  `yaml:"walls"`
	Props      []Prop  `yaml:"props"`
	Lights     []Light `yaml:"lights"`
}

// Spawn is where the player starts, facing Rotation radians.
type Spawn struct {
	Position Point   `yaml:"position"`
	Rotation float64 `yaml:"rotation"`
}

// Wall is an axis-aligned static box collider drawn as a wireframe.
type Wall struct {
	Position Point `yaml:"position"`
	Size     Point `yaml:"size"`
}

// Prop is a dynamic body placed at load.
type Prop struct {
	Alias       string  `yaml:"alias"`
	Shape       string  `yaml:"shape"` // circle or box
	Position    Point   `yaml:"position"`
	Radius      float64 `yaml:"radius"`
	Size        Point   `yaml:"size"`
	Mass        float64 `yaml:"mass"`
	Restitution float64 `yaml:"restitution"`
	Damping     float64 `yaml:"damping"`
	Color       Color   `yaml:"color"`
}

type Light struct {
	Color     Color   `yaml:"color"`
	Intensity float64 `yaml:"intensity"`
}

// Point is an [x, y] pair.
type Point [2]float64

func (p Point) Vec() geom.Vec2 { return geom.V(p[0], p[1]) }

// Color is written as "#rrggbb" or "#rrggbbaa".
type Color color.RGBA

func (c *Color) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*c = Color(parsed)
	return nil
}

// ParseColor parses "#rrggbb" or "#rrggbbaa". Alpha defaults to opaque.
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("color %q: want #rrggbb or #rrggbbaa", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// LoadFile reads and parses a level.
func LoadFile(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read level %s: %w", path, err)
	}
	lvl, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse level %s: %w", path, err)
	}
	return lvl, nil
}

// Parse decodes a level document.
func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := yaml.Unmarshal(data, &lvl); err != nil {
		return nil, err
	}
	for i, p := range lvl.Props {
		switch p.Shape {
		case "", "circle":
			if p.Radius <= 0 {
				return nil, fmt.Errorf("prop %d: circle needs a positive radius", i)
			}
		case "box":
			if p.Size[0] <= 0 || p.Size[1] <= 0 {
				return nil, fmt.Errorf("prop %d: box needs a positive size", i)
			}
		default:
			return nil, fmt.Errorf("prop %d: unknown shape %q", i, p.Shape)
		}
	}
	for i, w := range lvl.Walls {
		if w.Size[0] <= 0 || w.Size[1] <= 0 {
			return nil, fmt.Errorf("wall %d: size must be positive", i)
		}
	}
	return &lvl, nil
}
