//go:build !race

package rundown

const raceEnabled = false
