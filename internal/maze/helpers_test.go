package maze

import (
	"math"
	"testing"
)

// buildLevel turns a layout into a level. Legend:
// '#' wall, 'S' start, 'E' end, 'K' key, 'T' key sensor, 'G' gun,
// 'M' monster start (wait 0), anything else is open floor.
func buildLevel(t *testing.T, rows ...string) *Level {
	t.Helper()
	def := NewDefinition("test", len(rows[0]), len(rows))
	for y, row := range rows {
		for x, ch := range row {
			c := C(x, y)
			switch ch {
			case '#':
				def.SetWall(c, UniformWall("brick"))
			case 'S':
				def.Start = c
			case 'E':
				def.End = c
			case 'K':
				def.ExitKeys = append(def.ExitKeys, c)
			case 'T':
				def.KeySensors = append(def.KeySensors, c)
			case 'G':
				def.Guns = append(def.Guns, c)
			case 'M':
				mc := c
				wait := 0.0
				def.MonsterStart = &mc
				def.MonsterWait = &wait
			}
		}
	}
	l, err := NewLevel(def)
	if err != nil {
		t.Fatalf("NewLevel() error = %v", err)
	}
	return l
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
