package models

import "strconv"

// roundTo rounds v to the given number of decimal places, half to even on
// the exact binary value: 45.55 is stored as 45.5499... and becomes 45.5.
func roundTo(v float64, places int) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', places, 64), 64)
	if err != nil {
		return v
	}
	return r
}
