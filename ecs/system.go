package ecs

// System represents a behavior that operates on entities with specific components.
// Systems are pointers to structs; exported Query and Singleton fields are bound
// to the storage on registration, and any other fields persist between ticks.
type System interface {
	Execute(frame *UpdateFrame)
}
