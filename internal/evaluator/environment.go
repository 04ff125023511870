package evaluator

// Environment maps variable names to values. It is persistent: Bind
// returns a new environment for the inner scope and leaves the receiver
// untouched, so outer bindings reappear once the inner scope is done and
// a lambda holding an environment never observes later bindings.
type Environment struct {
	store *PersistentMap
}

func NewEnvironment() *Environment {
	return &Environment{store: EmptyMap()}
}

func (e *Environment) Get(name string) (Object, bool) {
	return e.store.Get(name)
}

// Bind returns an environment in which name shadows any earlier binding.
func (e *Environment) Bind(name string, val Object) *Environment {
	return &Environment{store: e.store.Put(name, val)}
}

// BindAll binds every entry of bindings.
func (e *Environment) BindAll(bindings map[string]Object) *Environment {
	store := e.store
	for k, v := range bindings {
		store = store.Put(k, v)
	}
	return &Environment{store: store}
}

// Names returns the bound names in ascending order.
func (e *Environment) Names() []string {
	return e.store.SortedKeys()
}

func (e *Environment) Len() int {
	return e.store.Len()
}
