package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupAssigned(t *testing.T) {
	set := Default()
	assert.Equal(t, "Motor Controller", set.DeviceTypes.Lookup(2))
	assert.Equal(t, "Firmware Update", set.DeviceTypes.Lookup(0x1F))
	assert.Equal(t, "CTR Electronics", set.Manufacturers.Lookup(4))
	assert.Equal(t, "Heartbeat", set.Broadcasts.Lookup(5))
}

func TestLookupUnknown(t *testing.T) {
	reg := New("empty")
	name, known := reg.Resolve(0x1F)
	assert.False(t, known)
	assert.Equal(t, "Unknown(0x1F)", name)
	// Deterministic : repeated lookups return identical output
	assert.Equal(t, name, reg.Lookup(0x1F))
	assert.Equal(t, "Unknown(0x3FF)", reg.Lookup(0x3FF))
	assert.Equal(t, "Unknown(0x00)", reg.Lookup(0))
}

func TestLookupReserved(t *testing.T) {
	set := Default()
	for code := uint16(0x0C); code <= 0x1E; code++ {
		name, known := set.DeviceTypes.Resolve(code)
		assert.True(t, known)
		assert.Equal(t, ReservedName, name)
	}
	assert.Equal(t, ReservedName, set.Manufacturers.Lookup(0x0D))
	assert.Equal(t, ReservedName, set.Manufacturers.Lookup(0xFF))
}

func TestAssignedWinsOverReserved(t *testing.T) {
	reg := New("test")
	reg.Reserve(10, 20)
	reg.Add(15, "Fifteen")
	assert.Equal(t, "Fifteen", reg.Lookup(15))
	assert.Equal(t, ReservedName, reg.Lookup(16))
}

func TestDefaultApiTables(t *testing.T) {
	set := Default()

	talon := set.API(2, 4)
	if talon == nil {
		t.Fatal("missing CTRE Talon API table")
	}
	assert.Equal(t, "Status 1 (General)", talon.Status.Lookup(0x50))
	assert.Equal(t, "Control2 (Enable 50m)", talon.Control.Lookup(0x01))

	pdp := set.API(8, 4)
	if pdp == nil {
		t.Fatal("missing CTRE PDP API table")
	}
	assert.Equal(t, "StatusEnergy", pdp.Status.Lookup(0x5D))
	assert.Equal(t, "Control1", pdp.Control.Lookup(0x70))

	assert.Nil(t, set.API(3, 4))
}

func TestLoadExtraTables(t *testing.T) {
	set := Default()
	err := set.Load("testdata/extra.ini")
	assert.Nil(t, err)

	// New code inside a formerly reserved range
	assert.Equal(t, "Example Robotics", set.Manufacturers.Lookup(0x0D))
	// Existing codes keep working after an extension
	assert.Equal(t, "Motor Controller", set.DeviceTypes.Lookup(2))
	assert.Equal(t, "Custom Sensor", set.DeviceTypes.Lookup(0x0C))
	// New per manufacturer API table
	rev := set.API(2, 5)
	if rev == nil {
		t.Fatal("missing API table loaded from file")
	}
	assert.Equal(t, "Periodic Status 0", rev.Status.Lookup(0x60))
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse([]byte("[DeviceTypes]\nnotacode = Broken\n"), nil)
	assert.NotNil(t, err)

	_, err = Parse([]byte("[DeviceTypes]\nreserved = 0x10\n"), nil)
	assert.NotNil(t, err)

	_, err = Parse([]byte("[DeviceTypes]\nreserved = 0x20-0x10\n"), nil)
	assert.NotNil(t, err)
}

func TestParseSkipsUnknownSection(t *testing.T) {
	set, err := Parse([]byte("[SomethingElse]\n0x01 = Ignored\n[DeviceTypes]\n0x01 = Robot Controller\n"), nil)
	assert.Nil(t, err)
	assert.Equal(t, 1, set.DeviceTypes.Len())
}
