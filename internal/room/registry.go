package room

// Registry maps lowercased room names to rooms.
// Iteration follows first-insertion order. Not safe for concurrent use;
// the controller serializes access.
type Registry struct {
	rooms map[string]*Room
	order []string
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		rooms: make(map[string]*Room),
	}
}

// Add inserts a room, replacing any room with the same key.
// A replaced room keeps its original position.
func (r *Registry) Add(room *Room) {
	key := room.Key()
	if _, exists := r.rooms[key]; !exists {
		r.order = append(r.order, key)
	}
	r.rooms[key] = room
}

// Get looks up a room by name, ignoring case
func (r *Registry) Get(name string) (*Room, bool) {
	room, ok := r.rooms[Key(name)]
	return room, ok
}

// Rooms returns all rooms in order
func (r *Registry) Rooms() []*Room {
	out := make([]*Room, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.rooms[key])
	}
	return out
}

// Keys returns the registry keys in order
func (r *Registry) Keys() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Map returns a copy of the key to room mapping
func (r *Registry) Map() map[string]*Room {
	out := make(map[string]*Room, len(r.rooms))
	for k, v := range r.rooms {
		out[k] = v
	}
	return out
}

// Len returns the number of rooms
func (r *Registry) Len() int {
	return len(r.rooms)
}
