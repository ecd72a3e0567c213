package resources

// Handle pairs a cache key with the manager that owns it. Handles are cheap
// values; copying one does not touch the reference count.
type Handle struct {
	manager *Manager
	key     Key
}

func (h Handle) Key() Key { return h.key }

func (h Handle) Valid() bool { return h.manager != nil && h.manager.Has(h.key) }

func (h Handle) State() State {
	if h.manager == nil {
		return StatePending
	}
	return h.manager.State(h.key)
}

func (h Handle) Ready() bool { return h.State() == StateReady }

func (h Handle) Err() error {
	if h.manager == nil {
		return nil
	}
	return h.manager.Err(h.key)
}

// Release gives up this handle's reference. Calling Release on a zero handle
// is a no-op.
func (h Handle) Release() {
	if h.manager != nil {
		h.manager.Release(h.key)
	}
}

func (h Handle) Equal(other Handle) bool {
	return h.manager == other.manager && h.key == other.key
}

func (m *Manager) acquire(request Request) Handle {
	key := m.Resolve(request)
	m.AddRef(key)
	return Handle{manager: m, key: key}
}

// Texture is a reference-counted handle to a TexturePayload.
type Texture struct{ Handle }

// AcquireTexture resolves a texture resource and takes a reference.
func (m *Manager) AcquireTexture(path string, options Options) Texture {
	return Texture{m.acquire(Request{Path: path, Options: options})}
}

// WrapTexture registers an in-memory texture under a synthetic key and takes
// a reference.
func (m *Manager) WrapTexture(payload *TexturePayload) Texture {
	key := m.ResolveSynthetic(payload)
	m.AddRef(key)
	return Texture{Handle{manager: m, key: key}}
}

// Payload returns the decoded texture, or nil while loading or failed.
func (t Texture) Payload() *TexturePayload {
	if t.manager == nil {
		return nil
	}
	p, ok := t.manager.Payload(t.key)
	if !ok {
		return nil
	}
	tp, _ := p.(*TexturePayload)
	return tp
}

// Geometry is a reference-counted handle to a GeometryPayload.
type Geometry struct{ Handle }

func (m *Manager) AcquireGeometry(path string, options Options) Geometry {
	return Geometry{m.acquire(Request{Path: path, Options: options})}
}

// WrapGeometry registers in-memory vertex data under a synthetic key and
// takes a reference.
func (m *Manager) WrapGeometry(payload *GeometryPayload) Geometry {
	key := m.ResolveSynthetic(payload)
	m.AddRef(key)
	return Geometry{Handle{manager: m, key: key}}
}

func (g Geometry) Payload() *GeometryPayload {
	if g.manager == nil {
		return nil
	}
	p, ok := g.manager.Payload(g.key)
	if !ok {
		return nil
	}
	gp, _ := p.(*GeometryPayload)
	return gp
}

// Font is a reference-counted handle to a FontPayload.
type Font struct{ Handle }

func (m *Manager) AcquireFont(path string, options Options) Font {
	return Font{m.acquire(Request{Path: path, Options: options})}
}

func (f Font) Payload() *FontPayload {
	if f.manager == nil {
		return nil
	}
	p, ok := f.manager.Payload(f.key)
	if !ok {
		return nil
	}
	fp, _ := p.(*FontPayload)
	return fp
}

// Sound is a reference-counted handle to a SoundPayload.
type Sound struct{ Handle }

func (m *Manager) AcquireSound(path string, options Options) Sound {
	return Sound{m.acquire(Request{Path: path, Options: options})}
}

func (s Sound) Payload() *SoundPayload {
	if s.manager == nil {
		return nil
	}
	p, ok := s.manager.Payload(s.key)
	if !ok {
		return nil
	}
	sp, _ := p.(*SoundPayload)
	return sp
}

// TileSet is a reference-counted handle to a TileSetPayload.
type TileSet struct{ Handle }

func (m *Manager) AcquireTileSet(path string, options Options) TileSet {
	return TileSet{m.acquire(Request{Path: path, Options: options})}
}

func (t TileSet) Payload() *TileSetPayload {
	if t.manager == nil {
		return nil
	}
	p, ok := t.manager.Payload(t.key)
	if !ok {
		return nil
	}
	tp, _ := p.(*TileSetPayload)
	return tp
}

// TileMap is a reference-counted handle to a TileMapPayload.
type TileMap struct{ Handle }

func (m *Manager) AcquireTileMap(path string, options Options) TileMap {
	return TileMap{m.acquire(Request{Path: path, Options: options})}
}

func (t TileMap) Payload() *TileMapPayload {
	if t.manager == nil {
		return nil
	}
	p, ok := t.manager.Payload(t.key)
	if !ok {
		return nil
	}
	tp, _ := p.(*TileMapPayload)
	return tp
}
