package mergejoin

import (
	"expvar"
)

func init() {
	mergejoin.Set("joins started", &joinsStarted)
	mergejoin.Set("joins completed", &joinsCompleted)
	mergejoin.Set("joins abandoned", &joinsAbandoned)
	mergejoin.Set("joins failed", &joinsFailed)
	mergejoin.Set("results emitted", &resultsEmitted)
}

// Process-wide totals, visible at /debug/vars when something serves expvar.
var (
	mergejoin = expvar.NewMap("mergejoin")

	joinsStarted   expvar.Int
	joinsCompleted expvar.Int
	joinsAbandoned expvar.Int
	joinsFailed    expvar.Int
	resultsEmitted expvar.Int
)
