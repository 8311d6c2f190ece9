// Package equipment encodes the free-text equipment list of a listing into
// fixed binary indicator columns from a curated vocabulary.
package equipment

import "sort"

// Vocabulary is the curated set of equipment features retained as output
// columns. Membership is an exact, case-sensitive match; anything the
// marketplace reports outside this set is ignored.
var Vocabulary = []string{
	// Performance & driving
	"Adaptive Cruise Control", "Cruise control", "Sport package", "Sport suspension",
	"Shift paddles", "Air suspension", "Parking assist system self-steering",
	"Parking assist system camera", "360° camera", "Trailer hitch", "Hill Holder",
	// Safety & driver assistance
	"Blind spot monitor", "Lane departure warning system", "Emergency brake assistant",
	"Traffic sign recognition", "Night view assist", "Headlight washer system",
	"Heads-up display", "Distance warning system", "Parking assist system sensors front",
	"Parking assist system sensors rear",
	// Comfort & interior
	"Leather seats", "Seat heating", "Seat ventilation", "Heated steering wheel",
	"Electrically adjustable seats", "Ambient lighting", "Panorama roof",
	"Sunroof", "Multi-function steering wheel", "Induction charging for smartphones",
	"WLAN / WiFi hotspot",
	// Infotainment & connectivity
	"Android Auto", "Apple CarPlay", "Navigation system", "Voice Control",
	"Digital cockpit", "Touch screen", "Sound system", "Integrated music streaming",
	"Bluetooth", "USB",
}

// Columns returns the vocabulary in deterministic (sorted) order, suitable
// for building the output table header.
func Columns() []string {
	cols := make([]string, len(Vocabulary))
	copy(cols, Vocabulary)
	sort.Strings(cols)
	return cols
}

// Encode maps a listing's equipment list onto the vocabulary: one 0/1
// indicator per vocabulary entry. A nil list is treated as empty.
func Encode(equipment []string) map[string]int {
	present := make(map[string]bool, len(equipment))
	for _, item := range equipment {
		present[item] = true
	}

	indicators := make(map[string]int, len(Vocabulary))
	for _, feature := range Vocabulary {
		if present[feature] {
			indicators[feature] = 1
		} else {
			indicators[feature] = 0
		}
	}
	return indicators
}
