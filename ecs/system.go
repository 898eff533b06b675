package ecs

// System declares the component kinds it requires. The requirement set is read
// once at registration and stays fixed while the system is registered.
//
// A system takes part in the frame through the optional interfaces below; a
// system implementing none of them still keeps a matched set that other code
// can inspect.
type System interface {
	Requires() []Kind
}

// Updater is implemented by systems that run once per frame against their
// current matched set.
type Updater interface {
	Update(frame *UpdateFrame, entities *EntitySet)
}

// EntityAddedHandler is notified when an entity starts satisfying the
// system's requirements.
type EntityAddedHandler interface {
	OnEntityAdded(w *World, e EntityId)
}

// EntityRemovedHandler is notified when an entity stops satisfying the
// system's requirements or is destroyed while matched.
type EntityRemovedHandler interface {
	OnEntityRemoved(w *World, e EntityId)
}
