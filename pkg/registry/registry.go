// Package registry holds the code to name tables used to annotate
// decoded FRC identifiers : device types, manufacturers, broadcast
// messages and per manufacturer API tables.
// Tables are plain ini data so new codes are added by editing a file,
// never by touching decoder logic.
package registry

import (
	"fmt"
	"log/slog"
)

// Name returned for codes inside a reserved range
const ReservedName = "Reserved"

// Unknown formats the deterministic placeholder used for codes
// that are absent from a table
func Unknown(code uint16) string {
	return fmt.Sprintf("Unknown(0x%02X)", code)
}

type codeRange struct {
	low  uint16
	high uint16
}

// Registry is an append only code to name table.
// Lookups never fail : unassigned codes resolve to the Unknown
// placeholder and reserved ranges resolve to "Reserved".
type Registry struct {
	name     string
	entries  map[uint16]string
	reserved []codeRange
}

func New(name string) *Registry {
	return &Registry{name: name, entries: map[uint16]string{}}
}

// Add assigns a name to a code, an existing name is replaced
func (reg *Registry) Add(code uint16, name string) {
	reg.entries[code] = name
}

// Reserve marks the inclusive code range [low, high] as reserved.
// Explicitly assigned codes win over a reserved range.
func (reg *Registry) Reserve(low uint16, high uint16) {
	reg.reserved = append(reg.reserved, codeRange{low: low, high: high})
}

// Len returns the number of assigned codes
func (reg *Registry) Len() int {
	return len(reg.entries)
}

// Resolve returns the name for a code. The second return value is
// false only when the Unknown placeholder had to be synthesized.
func (reg *Registry) Resolve(code uint16) (string, bool) {
	if name, ok := reg.entries[code]; ok {
		return name, true
	}
	for _, r := range reg.reserved {
		if code >= r.low && code <= r.high {
			return ReservedName, true
		}
	}
	return Unknown(code), false
}

// Lookup returns the name for a code, synthesizing the Unknown
// placeholder for unassigned codes
func (reg *Registry) Lookup(code uint16) string {
	name, _ := reg.Resolve(code)
	return name
}

// APIKey identifies the manufacturer API table for one combination
// of device type and manufacturer
type APIKey struct {
	DeviceType   uint8
	Manufacturer uint8
}

// APITable holds the status and control frame names of one device
// type / manufacturer pair, keyed by the 10-bit API id
type APITable struct {
	Status  *Registry
	Control *Registry
}

// Set groups all registries used to annotate one capture.
// A Set is immutable once handed to an annotator, distinct annotators
// may hold distinct sets.
type Set struct {
	logger        *slog.Logger
	DeviceTypes   *Registry
	Manufacturers *Registry
	Broadcasts    *Registry
	apis          map[APIKey]*APITable
}

// NewSet creates an empty registry set
func NewSet(logger *slog.Logger) *Set {
	if logger == nil {
		logger = slog.Default()
	}
	return &Set{
		logger:        logger,
		DeviceTypes:   New("device types"),
		Manufacturers: New("manufacturers"),
		Broadcasts:    New("broadcast messages"),
		apis:          map[APIKey]*APITable{},
	}
}

// API returns the manufacturer API table for the given device type and
// manufacturer, or nil when none is known
func (set *Set) API(deviceType uint8, manufacturer uint8) *APITable {
	return set.apis[APIKey{DeviceType: deviceType, Manufacturer: manufacturer}]
}

func (set *Set) apiTable(key APIKey) *APITable {
	table, ok := set.apis[key]
	if !ok {
		table = &APITable{
			Status:  New(fmt.Sprintf("status %d:%d", key.DeviceType, key.Manufacturer)),
			Control: New(fmt.Sprintf("control %d:%d", key.DeviceType, key.Manufacturer)),
		}
		set.apis[key] = table
	}
	return table
}
