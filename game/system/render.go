package system

import (
	"github.com/plus3/tickecs/ecs"
	"github.com/plus3/tickecs/game/component"
	"github.com/plus3/tickecs/game/render"
)

// nodeMirror keeps one scene node per matched entity. Nodes are looked up by
// entity rather than read back from components, so removal works even when
// the component that matched is already gone.
type nodeMirror struct {
	scene *render.Scene
	nodes map[ecs.EntityId]*render.Node
}

func newNodeMirror(scene *render.Scene) nodeMirror {
	return nodeMirror{scene: scene, nodes: make(map[ecs.EntityId]*render.Node)}
}

func (m *nodeMirror) add(e ecs.EntityId, node *render.Node) {
	if old, ok := m.nodes[e]; ok {
		m.scene.Remove(old)
	}
	m.nodes[e] = node
	m.scene.Add(node)
}

func (m *nodeMirror) remove(e ecs.EntityId) {
	if node, ok := m.nodes[e]; ok {
		m.scene.Remove(node)
		delete(m.nodes, e)
	}
}

// Node returns the scene node mirroring e.
func (m *nodeMirror) Node(e ecs.EntityId) (*render.Node, bool) {
	node, ok := m.nodes[e]
	return node, ok
}

func place(node *render.Node, t *component.Transform) {
	node.Position = t.Position
	node.Rotation = t.Rotation
	node.Scale = t.Scale
}

type meshEntity struct {
	*component.Transform
	*component.Mesh
}

// MeshSystem mirrors Mesh entities into the scene.
type MeshSystem struct {
	nodeMirror
	view *ecs.View[meshEntity]
}

func NewMeshSystem(registry *ecs.ComponentRegistry, scene *render.Scene) *MeshSystem {
	return &MeshSystem{
		nodeMirror: newNodeMirror(scene),
		view:       ecs.NewView[meshEntity](registry),
	}
}

func (s *MeshSystem) Requires() []ecs.Kind { return s.view.Kinds() }

func (s *MeshSystem) OnEntityAdded(w *ecs.World, e ecs.EntityId) {
	item := s.view.Get(w, e)
	if item == nil {
		return
	}
	node := &render.Node{Kind: render.NodeMesh}
	s.sync(node, item)
	s.add(e, node)
}

func (s *MeshSystem) OnEntityRemoved(w *ecs.World, e ecs.EntityId) {
	s.remove(e)
}

func (s *MeshSystem) Update(frame *ecs.UpdateFrame, entities *ecs.EntitySet) {
	for id, item := range s.view.Iter(frame.World, entities) {
		if node, ok := s.nodes[id]; ok {
			s.sync(node, &item)
		}
	}
}

func (s *MeshSystem) sync(node *render.Node, item *meshEntity) {
	place(node, item.Transform)
	node.Layer = item.Mesh.Layer
	node.Shape = item.Mesh.Shape
	node.Size = item.Mesh.Size
	node.Color = item.Mesh.Color
	node.Wireframe = item.Mesh.Wireframe
}

type spriteEntity struct {
	*component.Transform
	*component.Sprite
}

// SpriteSystem mirrors Sprite entities into the scene.
type SpriteSystem struct {
	nodeMirror
	view *ecs.View[spriteEntity]
}

func NewSpriteSystem(registry *ecs.ComponentRegistry, scene *render.Scene) *SpriteSystem {
	return &SpriteSystem{
		nodeMirror: newNodeMirror(scene),
		view:       ecs.NewView[spriteEntity](registry),
	}
}

func (s *SpriteSystem) Requires() []ecs.Kind { return s.view.Kinds() }

func (s *SpriteSystem) OnEntityAdded(w *ecs.World, e ecs.EntityId) {
	item := s.view.Get(w, e)
	if item == nil {
		return
	}
	node := &render.Node{Kind: render.NodeSprite}
	s.sync(node, item)
	s.add(e, node)
}

func (s *SpriteSystem) OnEntityRemoved(w *ecs.World, e ecs.EntityId) {
	s.remove(e)
}

func (s *SpriteSystem) Update(frame *ecs.UpdateFrame, entities *ecs.EntitySet) {
	for id, item := range s.view.Iter(frame.World, entities) {
		if node, ok := s.nodes[id]; ok {
			s.sync(node, &item)
		}
	}
}

func (s *SpriteSystem) sync(node *render.Node, item *spriteEntity) {
	place(node, item.Transform)
	node.Layer = item.Sprite.Layer
	node.Texture = item.Sprite.Texture
	node.Size = item.Sprite.Size
	node.Offset = item.Sprite.Offset
}

type lightEntity struct {
	*component.Transform
	*component.AmbientLight
}

// LightSystem mirrors AmbientLight entities into the scene.
type LightSystem struct {
	nodeMirror
	view *ecs.View[lightEntity]
}

func NewLightSystem(registry *ecs.ComponentRegistry, scene *render.Scene) *LightSystem {
	return &LightSystem{
		nodeMirror: newNodeMirror(scene),
		view:       ecs.NewView[lightEntity](registry),
	}
}

func (s *LightSystem) Requires() []ecs.Kind { return s.view.Kinds() }

func (s *LightSystem) OnEntityAdded(w *ecs.World, e ecs.EntityId) {
	item := s.view.Get(w, e)
	if item == nil {
		return
	}
	node := &render.Node{Kind: render.NodeLight}
	s.sync(node, item)
	s.add(e, node)
}

func (s *LightSystem) OnEntityRemoved(w *ecs.World, e ecs.EntityId) {
	s.remove(e)
}

func (s *LightSystem) Update(frame *ecs.UpdateFrame, entities *ecs.EntitySet) {
	for id, item := range s.view.Iter(frame.World, entities) {
		if node, ok := s.nodes[id]; ok {
			s.sync(node, &item)
		}
	}
}

func (s *LightSystem) sync(node *render.Node, item *lightEntity) {
	place(node, item.Transform)
	node.Color = item.AmbientLight.Color
	node.Intensity = item.AmbientLight.Intensity
}
