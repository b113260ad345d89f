package core

import "testing"

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{"overlapping rects", NewRect(0, 0, 2, 2), NewRect(1, 1, 2, 2), true},
		{"adjacent horizontal", NewRect(0, 0, 1, 2), NewRect(1, 0, 1, 2), false},
		{"adjacent vertical", NewRect(0, 0, 2, 1), NewRect(0, 1, 2, 1), false},
		{"disjoint", NewRect(0, 0, 1, 1), NewRect(3, 3, 1, 1), false},
		{"contained", NewRect(0, 0, 4, 5), NewRect(1, 1, 2, 2), true},
		{"single cell overlap", NewRect(0, 0, 2, 2), NewRect(1, 1, 1, 1), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(1, 2, 2, 2)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"top-left", 1, 2, true},
		{"bottom-right inside", 2, 3, true},
		{"right edge exclusive", 3, 2, false},
		{"bottom edge exclusive", 1, 4, false},
		{"left of rect", 0, 2, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestRectWithin(t *testing.T) {
	tests := []struct {
		name     string
		r        Rect
		expected bool
	}{
		{"fills board", NewRect(0, 0, 4, 5), true},
		{"bottom-right corner", NewRect(2, 3, 2, 2), true},
		{"past right edge", NewRect(3, 0, 2, 2), false},
		{"past bottom edge", NewRect(0, 4, 1, 2), false},
		{"negative x", NewRect(-1, 0, 1, 1), false},
		{"negative y", NewRect(1, -1, 2, 2), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.r.Within(4, 5); got != tc.expected {
				t.Errorf("Within(4, 5) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRectTranslateAndEach(t *testing.T) {
	r := NewRect(1, 0, 2, 2).Translate(0, 2)
	if r.X != 1 || r.Y != 2 || r.W != 2 || r.H != 2 {
		t.Fatalf("Translate() = %+v", r)
	}

	var cells [][2]int
	r.Each(func(x, y int) {
		cells = append(cells, [2]int{x, y})
	})

	expected := [][2]int{{1, 2}, {2, 2}, {1, 3}, {2, 3}}
	if len(cells) != len(expected) {
		t.Fatalf("Each() visited %d cells, expected %d", len(cells), len(expected))
	}
	for i := range expected {
		if cells[i] != expected[i] {
			t.Errorf("cell %d = %v, expected %v", i, cells[i], expected[i])
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}

func TestAbsSign(t *testing.T) {
	if Abs(-3) != 3 || Abs(3) != 3 || Abs(0) != 0 {
		t.Error("Abs returned wrong value")
	}
	if Sign(-7) != -1 || Sign(7) != 1 || Sign(0) != 0 {
		t.Error("Sign returned wrong value")
	}
}
