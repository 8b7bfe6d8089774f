package controller

import (
	"fmt"
	"strconv"
	"strings"
)

// bathroom is the room that keeps its lights on whenever it is occupied
const bathroom = "bathroom"

func msgUnknownRoom(name string) string {
	return fmt.Sprintf("Attempted to enter unknown room '%s'", name)
}

func msgBathroomLightOn(light string) string {
	return fmt.Sprintf("Light '%s' turned ON (bathroom special rule: always ON when occupied)", light)
}

// FormatTemperature renders a temperature the way log lines show it:
// shortest decimal form, with whole numbers keeping one decimal (3.0, 21.5).
func FormatTemperature(celsius float64) string {
	s := strconv.FormatFloat(celsius, 'f', -1, 64)
	if !strings.ContainsAny(s, ".nN") {
		s += ".0"
	}
	return s
}
