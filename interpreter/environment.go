package interpreter

import "loxeval/ast"

// FrameID addresses a frame in an Environment.
type FrameID int

// NoFrame is the parent of the root frame.
const NoFrame FrameID = -1

type frame struct {
	enclosing FrameID
	values    map[string]Value
}

// Environment is the scope chain, stored as an arena of frames. Frames are
// released in the reverse order they were pushed, which matches block
// structure, so the arena is a stack and a FrameID is an index into it.
type Environment struct {
	frames  Stack[frame]
	current FrameID
}

func NewEnvironment() *Environment {
	e := &Environment{current: NoFrame}
	e.Push()
	return e
}

func (e *Environment) Current() FrameID {
	return e.current
}

// Depth is the number of live frames, the root included.
func (e *Environment) Depth() int {
	return e.frames.Len()
}

// Push opens a child of the current frame and makes it current.
func (e *Environment) Push() FrameID {
	e.frames.Push(frame{e.current, make(map[string]Value)})
	e.current = FrameID(e.frames.Len() - 1)
	return e.current
}

// Restore makes id current again and releases every frame opened after it.
func (e *Environment) Restore(id FrameID) {
	if id < 0 || int(id) >= e.frames.Len() {
		panic("Restore: frame is not live.")
	}
	e.frames.Truncate(int(id) + 1)
	e.current = id
}

func (e *Environment) Define(name string, value Value) {
	e.frames.At(int(e.current)).values[name] = value
}

func (e *Environment) Get(name ast.Token) (Value, error) {
	for id := e.current; id != NoFrame; {
		f := e.frames.At(int(id))
		if val, ok := f.values[name.Lexeme]; ok {
			return val, nil
		}
		id = f.enclosing
	}

	return nil, undefinedVariable(name)
}

// Assign overwrites the nearest existing binding of name. It never creates
// a binding.
func (e *Environment) Assign(name ast.Token, value Value) (Value, error) {
	for id := e.current; id != NoFrame; {
		f := e.frames.At(int(id))
		if _, ok := f.values[name.Lexeme]; ok {
			f.values[name.Lexeme] = value
			return value, nil
		}
		id = f.enclosing
	}

	return nil, undefinedVariable(name)
}
