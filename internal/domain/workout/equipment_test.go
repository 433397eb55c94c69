package workout

import (
	"reflect"
	"testing"
)

func TestDetectEquipment(t *testing.T) {
	tests := []struct {
		name      string
		exercises []string
		want      []string
	}{
		{
			name:      "barbell only",
			exercises: []string{"Thrusters", "Burpees"},
			want:      []string{EquipmentBarbell},
		},
		{
			name:      "gymnastics only",
			exercises: []string{"Chest to Bar Pull-ups", "Air Squats"},
			want:      []string{EquipmentGymnastics},
		},
		{
			name:      "both",
			exercises: []string{"POWER SNATCH", "Bar Muscle-Ups"},
			want:      []string{EquipmentBarbell, EquipmentGymnastics},
		},
		{
			name:      "bodyweight",
			exercises: []string{"Burpees", "Air Squats", "Lunges"},
			want:      []string{EquipmentBodyweight},
		},
		{
			name:      "empty",
			exercises: nil,
			want:      []string{EquipmentBodyweight},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectEquipment(tt.exercises)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DetectEquipment(%v) = %v, want %v", tt.exercises, got, tt.want)
			}
		})
	}
}
