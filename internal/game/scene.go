package game

import "sort"

// Object is anything the scene updates and draws each frame.
type Object interface {
	Update()
	Draw() string
	Depth() int
}

// Scene draws its objects from lowest to highest depth. Objects sharing a
// depth keep their insertion order.
type Scene struct {
	objects []Object
}

func (s *Scene) Add(o Object) { s.objects = append(s.objects, o) }

// Remove drops o from the scene and reports whether it was present.
func (s *Scene) Remove(o Object) bool {
	for i, x := range s.objects {
		if x == o {
			s.objects = append(s.objects[:i], s.objects[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Scene) Len() int { return len(s.objects) }

func (s *Scene) Update() {
	for _, o := range s.objects {
		o.Update()
	}
}

// Draw returns each object's rendering in depth order.
func (s *Scene) Draw() []string {
	ordered := append([]Object(nil), s.objects...)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Depth() < ordered[j].Depth() })
	out := make([]string, 0, len(ordered))
	for _, o := range ordered {
		out = append(out, o.Draw())
	}
	return out
}
