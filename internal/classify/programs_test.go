package classify

import (
	"testing"

	"github.com/nerrad567/isox-bridge/internal/hub"
)

func program(id, name string) hub.Program {
	return hub.Program{ID: id, Name: name, Kind: hub.KindProgram, Enabled: true}
}

func TestClassifyPrograms(t *testing.T) {
	snap := &hub.Snapshot{
		HubID: "hub-1",
		Programs: []hub.ProgramEntry{
			// Complete switch entity.
			{Path: "My Programs/switch/Porch Heater/status", Program: program("0001", "status")},
			{Path: "My Programs/switch/Porch Heater/actions", Program: program("0002", "actions")},
			// Binary sensor: actions not required.
			{Path: "My Programs/binary_sensor/Mail Arrived/status", Program: program("0003", "status")},
			// Cover with both leaves.
			{Path: "My Programs/cover/Blinds/status", Program: program("0004", "status")},
			{Path: "My Programs/cover/Blinds/actions", Program: program("0005", "actions")},
			// Unrelated program outside the directory convention.
			{Path: "My Programs/Morning Routine", Program: program("0006", "Morning Routine")},
			// Leaf with a name outside the status/actions convention.
			{Path: "My Programs/switch/Porch Heater/notes", Program: program("0007", "notes")},
		},
	}

	c := New(Options{})
	b := c.Classify(snap)

	switches := b.Programs[PlatformSwitch]
	if len(switches) != 1 {
		t.Fatalf("switch programs = %d, want 1", len(switches))
	}
	sw := switches[0]
	if sw.Name != "Porch Heater" {
		t.Errorf("Name = %q, want Porch Heater", sw.Name)
	}
	if sw.Status == nil || sw.Status.ID != "0001" {
		t.Errorf("Status = %+v, want program 0001", sw.Status)
	}
	if sw.Actions == nil || sw.Actions.ID != "0002" {
		t.Errorf("Actions = %+v, want program 0002", sw.Actions)
	}

	sensors := b.Programs[PlatformBinarySensor]
	if len(sensors) != 1 {
		t.Fatalf("binary_sensor programs = %d, want 1", len(sensors))
	}
	if sensors[0].Actions != nil {
		t.Errorf("binary sensor entity has actions program %+v", sensors[0].Actions)
	}

	covers := b.Programs[PlatformCover]
	if len(covers) != 1 || covers[0].Name != "Blinds" {
		t.Fatalf("cover programs = %+v, want Blinds", covers)
	}
}

func TestClassifyProgramsMissingActions(t *testing.T) {
	// A controllable platform without an actions program is skipped; the
	// sibling entity with a full pair is unaffected.
	snap := &hub.Snapshot{
		HubID: "hub-1",
		Programs: []hub.ProgramEntry{
			{Path: "My Programs/lock/Broken Lock/status", Program: program("0010", "status")},
			{Path: "My Programs/lock/Good Lock/status", Program: program("0011", "status")},
			{Path: "My Programs/lock/Good Lock/actions", Program: program("0012", "actions")},
		},
	}

	c := New(Options{})
	b := c.Classify(snap)

	locks := b.Programs[PlatformLock]
	if len(locks) != 1 || locks[0].Name != "Good Lock" {
		t.Fatalf("lock programs = %+v, want only Good Lock", locks)
	}
}

func TestClassifyProgramsWrongKind(t *testing.T) {
	// A folder where a status program should be is skipped as a leaf, so
	// the entity never forms.
	snap := &hub.Snapshot{
		HubID: "hub-1",
		Programs: []hub.ProgramEntry{
			{Path: "My Programs/fan/Attic Fan/status",
				Program: hub.Program{ID: "0020", Name: "status", Kind: hub.KindFolder}},
			{Path: "My Programs/fan/Attic Fan/actions", Program: program("0021", "actions")},
		},
	}

	c := New(Options{})
	b := c.Classify(snap)

	if fans := b.Programs[PlatformFan]; len(fans) != 0 {
		t.Errorf("fan programs = %+v, want none", fans)
	}
}

func TestClassifyProgramsNestedFolders(t *testing.T) {
	// Entity folders may nest; the entity name is the path below the
	// platform folder.
	snap := &hub.Snapshot{
		HubID: "hub-1",
		Programs: []hub.ProgramEntry{
			{Path: "My Programs/binary_sensor/Upstairs/Hall Motion/status",
				Program: program("0030", "status")},
		},
	}

	c := New(Options{})
	b := c.Classify(snap)

	sensors := b.Programs[PlatformBinarySensor]
	if len(sensors) != 1 || sensors[0].Name != "Upstairs/Hall Motion" {
		t.Fatalf("binary_sensor programs = %+v, want Upstairs/Hall Motion", sensors)
	}
}
