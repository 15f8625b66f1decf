package pkg

import (
	"reflect"
	"testing"
)

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{81.8251, 81.83},
		{81.824, 81.82},
		{-2.5, -2.5},
		{100, 100},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRate(t *testing.T) {
	tests := []struct {
		part, total int
		want        float64
	}{
		{0, 0, 0},
		{1, 3, 33.33},
		{3, 3, 100},
		{0, 5, 0},
	}
	for _, tt := range tests {
		if got := Rate(tt.part, tt.total); got != tt.want {
			t.Errorf("Rate(%d, %d) = %v, want %v", tt.part, tt.total, got, tt.want)
		}
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(-1, 0, 5); got != 0 {
		t.Errorf("Clamp(-1, 0, 5) = %d, want 0", got)
	}
	if got := Clamp(9, 0, 5); got != 5 {
		t.Errorf("Clamp(9, 0, 5) = %d, want 5", got)
	}
	if got := Clamp(3, 0, 5); got != 3 {
		t.Errorf("Clamp(3, 0, 5) = %d, want 3", got)
	}
}

func TestRenormalizeOrder(t *testing.T) {
	tests := []struct {
		name     string
		ids      []int64
		old, new int
		want     []int64
	}{
		{"move forward", []int64{10, 20, 30, 40}, 0, 2, []int64{20, 30, 10, 40}},
		{"move backward", []int64{10, 20, 30, 40}, 3, 1, []int64{10, 40, 20, 30}},
		{"same position", []int64{10, 20, 30}, 1, 1, []int64{10, 20, 30}},
		{"clamped target", []int64{10, 20, 30}, 0, 99, []int64{20, 30, 10}},
		{"overshoot from middle", []int64{10, 20, 30, 40, 50}, 1, 100, []int64{10, 30, 40, 50, 20}},
		{"empty", []int64{}, 0, 1, []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenormalizeOrder(tt.ids, tt.old, tt.new)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("RenormalizeOrder(%v, %d, %d) = %v, want %v", tt.ids, tt.old, tt.new, got, tt.want)
			}
		})
	}
}
