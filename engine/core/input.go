package core

// Input tracks key and mouse state from forwarded events.
type Input struct {
	keys           map[Key]bool
	pressed        map[Key]bool
	mouseX, mouseY float64
}

func NewInput() *Input { return &Input{keys: map[Key]bool{}, pressed: map[Key]bool{}} }

func (in *Input) Handle(ev Event) {
	switch e := ev.(type) {
	case EventKey:
		if e.Down && !in.keys[e.Key] {
			in.pressed[e.Key] = true
		}
		in.keys[e.Key] = e.Down
	case EventMouseMove:
		in.mouseX, in.mouseY = e.X, e.Y
	}
}

func (in *Input) IsKeyDown(k Key) bool      { return in.keys[k] }
func (in *Input) Mouse() (float64, float64) { return in.mouseX, in.mouseY }

// KeyPressed reports (once) whether k went down since the last call.
func (in *Input) KeyPressed(k Key) bool {
	p := in.pressed[k]
	delete(in.pressed, k)
	return p
}
