// Package devicedb loads PIC device parameters from a TOML device table.
//
// # File Format
//
// Each device is an entry of the "device" array:
//
//	[[device]]
//	name = "PIC16F1847"
//	family = "pic16"
//	device-id = 0x1480
//	program-memory-size = 8192
//	data-memory-size = 256
//
//	[device.timing]
//	bulk-erase = "5ms"
//	block-write = "2.5ms"
//	config-write = "5ms"
//
//	[device.recipes]
//	chip-erase = ["load-configuration", "bulk-erase-program", "bulk-erase-data"]
//	data-erase = ["bulk-erase-data"]
//	data-write = ["begin-programming-internal"]
//
// Timings are Go duration strings. Recipes are PIC16 only; their elements are
// command names or integer literals and are checked with
// protocol.ValidateRecipe while loading, so a Database never holds a recipe
// the sequence compiler would reject.
//
// PIC18 devices without a timing table fall back to the generator defaults.
//
// # Usage
//
//	db, err := devicedb.Default()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	dev, err := db.Lookup("PIC16F1847")
package devicedb
