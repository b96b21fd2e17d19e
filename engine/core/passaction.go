package core

import "github.com/go-gl/mathgl/mgl32"

// PassActionFlags select what happens to each attachment at BeginPass.
// An attachment with neither its Clear nor its Load bit set is "don't care".
type PassActionFlags uint16

const (
	ClearC0 PassActionFlags = 1 << iota
	ClearC1
	ClearC2
	ClearC3
	LoadC0
	LoadC1
	LoadC2
	LoadC3
	ClearDS
	LoadDS

	ClearAll = ClearC0 | ClearC1 | ClearC2 | ClearC3 | ClearDS
	LoadAll  = LoadC0 | LoadC1 | LoadC2 | LoadC3 | LoadDS
)

// PassAction describes how attachments are initialized when a pass begins.
type PassAction struct {
	Color   [MaxNumColorAttachments]mgl32.Vec4
	Depth   float32
	Stencil uint8
	Flags   PassActionFlags
}

// NewPassAction clears every attachment to opaque black, depth 1, stencil 0.
func NewPassAction() PassAction {
	a := PassAction{Depth: 1, Flags: ClearAll}
	for i := range a.Color {
		a.Color[i] = mgl32.Vec4{0, 0, 0, 1}
	}
	return a
}

// ClearPassAction clears all color attachments to c.
func ClearPassAction(c mgl32.Vec4, depth float32, stencil uint8) PassAction {
	a := NewPassAction()
	for i := range a.Color {
		a.Color[i] = c
	}
	a.Depth = depth
	a.Stencil = stencil
	return a
}

// LoadPassAction keeps the previous content of every attachment.
func LoadPassAction() PassAction {
	a := NewPassAction()
	a.Flags = LoadAll
	return a
}

// DontCarePassAction leaves the initial content undefined.
func DontCarePassAction() PassAction {
	a := NewPassAction()
	a.Flags = 0
	return a
}

func colorBits(i int) PassActionFlags { return (ClearC0 | LoadC0) << i }

// ClearColor sets color attachment i to be cleared to c.
func (a *PassAction) ClearColor(i int, c mgl32.Vec4) *PassAction {
	a.Color[i] = c
	a.Flags = a.Flags&^colorBits(i) | ClearC0<<i
	return a
}

// LoadColor keeps the previous content of color attachment i.
func (a *PassAction) LoadColor(i int) *PassAction {
	a.Flags = a.Flags&^colorBits(i) | LoadC0<<i
	return a
}

func (a *PassAction) DontCareColor(i int) *PassAction {
	a.Flags &^= colorBits(i)
	return a
}

func (a *PassAction) ClearDepthStencil(depth float32, stencil uint8) *PassAction {
	a.Depth = depth
	a.Stencil = stencil
	a.Flags = a.Flags&^(ClearDS|LoadDS) | ClearDS
	return a
}

func (a *PassAction) LoadDepthStencil() *PassAction {
	a.Flags = a.Flags&^(ClearDS|LoadDS) | LoadDS
	return a
}

func (a *PassAction) DontCareDepthStencil() *PassAction {
	a.Flags &^= ClearDS | LoadDS
	return a
}

func (a PassAction) ClearsColor(i int) bool   { return a.Flags&(ClearC0<<i) != 0 }
func (a PassAction) LoadsColor(i int) bool    { return a.Flags&(LoadC0<<i) != 0 }
func (a PassAction) ClearsDepthStencil() bool { return a.Flags&ClearDS != 0 }
func (a PassAction) LoadsDepthStencil() bool  { return a.Flags&LoadDS != 0 }
