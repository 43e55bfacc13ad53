package registry

import _ "embed"

//go:embed frc.ini
var rawDefaultTables []byte

// Default returns the registry set built from the embedded FRC tables
func Default() *Set {
	set, err := Parse(rawDefaultTables, nil)
	if err != nil {
		panic(err)
	}
	return set
}
