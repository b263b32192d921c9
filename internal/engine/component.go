package engine

type Component interface {
	Start()
	Update(deltaTime float64)
	SetGameObject(g *GameObject)
	GetGameObject() *GameObject
}

// ContactHandler is implemented by components that want to receive contact
// callbacks from the physics world. Trigger shapes only ever report through
// this interface; they are never physically resolved.
type ContactHandler interface {
	OnContactEnter(other *GameObject)
	OnContactExit(other *GameObject)
}

// BaseComponent provides default implementation for Component interface
type BaseComponent struct {
	gameObject *GameObject
}

func (b *BaseComponent) Start() {}

func (b *BaseComponent) Update(deltaTime float64) {}

func (b *BaseComponent) SetGameObject(g *GameObject) {
	b.gameObject = g
}

func (b *BaseComponent) GetGameObject() *GameObject {
	return b.gameObject
}
