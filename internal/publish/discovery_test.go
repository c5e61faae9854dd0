package publish

import (
	"testing"

	"github.com/nerrad567/isox-bridge/internal/classify"
	"github.com/nerrad567/isox-bridge/internal/hub"
)

func TestObjectID(t *testing.T) {
	tests := []struct {
		name  string
		parts []string
		want  string
	}{
		{"address with spaces", []string{"hub-1", "11 22 33 1"}, "hub-1_11_22_33_1"},
		{"uuid hub id", []string{"00:21:b9:00", "n001_di1"}, "00_21_b9_00_n001_di1"},
		{"already clean", []string{"hub", "prog", "0041"}, "hub_prog_0041"},
		{"slash and dot", []string{"a/b.c"}, "a_b_c"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := objectID(tt.parts...); got != tt.want {
				t.Errorf("objectID(%v) = %q, want %q", tt.parts, got, tt.want)
			}
		})
	}
}

func TestDeviceFor(t *testing.T) {
	b := &classify.Buckets{
		HubID: "hub-1",
		Devices: map[string]classify.DeviceInfo{
			"11 22 33 1": {
				Identifier:   "hub-1_11 22 33 1",
				Name:         "FanLinc",
				Manufacturer: "Insteon",
				Model:        "11 22 33: FanLincMotor (1.46.1.0)",
			},
		},
	}

	t.Run("root node", func(t *testing.T) {
		root := &hub.Node{Address: "11 22 33 1"}
		dev := deviceFor(b, root)
		if dev == nil {
			t.Fatal("deviceFor(root) = nil")
		}
		if dev.Identifiers[0] != "hub-1_11 22 33 1" {
			t.Errorf("Identifiers = %v", dev.Identifiers)
		}
	})

	t.Run("sub-unit attaches to root device", func(t *testing.T) {
		sub := &hub.Node{Address: "11 22 33 2", ParentAddress: "11 22 33 1"}
		dev := deviceFor(b, sub)
		if dev == nil {
			t.Fatal("deviceFor(sub) = nil")
		}
		if dev.Name != "FanLinc" {
			t.Errorf("Name = %q, want FanLinc", dev.Name)
		}
	})

	t.Run("unknown root", func(t *testing.T) {
		orphan := &hub.Node{Address: "ZW002_1", ParentAddress: "ZW002"}
		if dev := deviceFor(b, orphan); dev != nil {
			t.Errorf("deviceFor(orphan) = %+v, want nil", dev)
		}
	})
}
