package registry

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"
)

// Section names recognized in registry table files
const (
	sectionDeviceTypes   = "DeviceTypes"
	sectionManufacturers = "Manufacturers"
	sectionBroadcasts    = "BroadcastMessages"
	reservedKey          = "reserved"
)

// Manufacturer API sections are named e.g. [API 02:04 Status]
// with the device type and manufacturer codes in hex
var matchApiSection = regexp.MustCompile(`^API ([0-9A-Fa-f]{1,2}):([0-9A-Fa-f]{1,2}) (Status|Control)$`)

// Parse builds a registry set from ini table data.
// source can be a file path or raw []byte, anything ini.Load accepts.
func Parse(source any, logger *slog.Logger) (*Set, error) {
	set := NewSet(logger)
	err := set.Load(source)
	if err != nil {
		return nil, err
	}
	return set, nil
}

// Load merges table data from an additional ini source into the set.
// Existing codes keep working, matching codes are overwritten, so user
// supplied tables can extend or correct the shipped ones.
func (set *Set) Load(source any) error {
	file, err := ini.Load(source)
	if err != nil {
		return fmt.Errorf("failed to load registry tables : %v", err)
	}
	for _, section := range file.Sections() {
		name := section.Name()
		switch name {
		case ini.DefaultSection:
			// Top level keys are not table data
			continue
		case sectionDeviceTypes:
			err = loadTable(set.DeviceTypes, section)
		case sectionManufacturers:
			err = loadTable(set.Manufacturers, section)
		case sectionBroadcasts:
			err = loadTable(set.Broadcasts, section)
		default:
			match := matchApiSection.FindStringSubmatch(name)
			if match == nil {
				set.logger.Warn("skipping unknown registry section", "section", name)
				continue
			}
			err = set.loadApiSection(match, section)
		}
		if err != nil {
			return fmt.Errorf("registry section [%v] : %v", name, err)
		}
	}
	return nil
}

func (set *Set) loadApiSection(match []string, section *ini.Section) error {
	deviceType, err := strconv.ParseUint(match[1], 16, 8)
	if err != nil {
		return err
	}
	manufacturer, err := strconv.ParseUint(match[2], 16, 8)
	if err != nil {
		return err
	}
	table := set.apiTable(APIKey{DeviceType: uint8(deviceType), Manufacturer: uint8(manufacturer)})
	if match[3] == "Status" {
		return loadTable(table.Status, section)
	}
	return loadTable(table.Control, section)
}

func loadTable(reg *Registry, section *ini.Section) error {
	for _, key := range section.Keys() {
		if key.Name() == reservedKey {
			err := loadReservedRanges(reg, key.Value())
			if err != nil {
				return err
			}
			continue
		}
		code, err := strconv.ParseUint(key.Name(), 0, 16)
		if err != nil {
			return fmt.Errorf("invalid code %q : %v", key.Name(), err)
		}
		reg.Add(uint16(code), key.Value())
	}
	return nil
}

// Reserved ranges are comma separated inclusive bounds, e.g.
// reserved = 0x0C-0x1E
func loadReservedRanges(reg *Registry, value string) error {
	for _, item := range strings.Split(value, ",") {
		bounds := strings.Split(strings.TrimSpace(item), "-")
		if len(bounds) != 2 {
			return fmt.Errorf("invalid reserved range %q", item)
		}
		low, err := strconv.ParseUint(strings.TrimSpace(bounds[0]), 0, 16)
		if err != nil {
			return fmt.Errorf("invalid reserved range %q : %v", item, err)
		}
		high, err := strconv.ParseUint(strings.TrimSpace(bounds[1]), 0, 16)
		if err != nil {
			return fmt.Errorf("invalid reserved range %q : %v", item, err)
		}
		if high < low {
			return fmt.Errorf("invalid reserved range %q", item)
		}
		reg.Reserve(uint16(low), uint16(high))
	}
	return nil
}
