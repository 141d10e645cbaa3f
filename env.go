package mergejoin

import (
	"os"
	"strconv"

	"github.com/anacrolix/missinggo/v2/panicif"
)

// Turns on order checking for every join in the process unless an option says otherwise.
var defaultCheckOrder = initBoolFromEnv("MERGEJOIN_CHECK_ORDER", false)

func initBoolFromEnv(key string, defaultValue bool) bool {
	s := os.Getenv(key)
	if s == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(s)
	panicif.Err(err)
	return b
}
