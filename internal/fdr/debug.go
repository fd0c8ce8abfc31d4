// This file contains code to help debugging, and is separated from the
// rest in order not to litter the estimator code with debugging stuff.
//
// When environment variable CLASSFDR_DEBUG contains a rank range
// (e.g. "0:50"), the Bayesian estimator prints the running counts for
// PSMs in that range and the fitted model of each class.

package fdr

import (
	"log"
	"os"
	"regexp"
	"strconv"
)

var debugRanks = os.Getenv("CLASSFDR_DEBUG")

// parseIntRange parses a string like "-12:6" into 2 values, -12 and 6.
// Parameters min and max are the default min/max values, assigned when
// a value is not specified (e.g. "-12:").
func parseIntRange(r string, min int, max int) (int, int) {
	re := regexp.MustCompile(`\s*(\-?\d*):(\-?\d*)`)
	m := re.FindStringSubmatch(r)
	minOut := min
	maxOut := max
	if len(m) >= 2 && m[1] != "" {
		minOut, _ = strconv.Atoi(m[1])
		if minOut < min {
			minOut = min
		}
	}
	if len(m) >= 3 && m[2] != "" {
		maxOut, _ = strconv.Atoi(m[2])
		if maxOut > max {
			maxOut = max
		}
	}
	if minOut > maxOut {
		minOut = maxOut
	}
	return minOut, maxOut
}

func debugLogRank(i int, n int, p *PSM, x float64, globalTargets, globalDecoys int) {
	if debugRanks == `` {
		return
	}
	debugMin, debugMax := parseIntRange(debugRanks, 0, n)
	if i >= debugMin && i <= debugMax {
		log.Printf("rank:%d id:%s score:%g x:%g target:%t targets:%d decoys:%d",
			i, p.ID, p.Score, x, p.IsTarget, globalTargets, globalDecoys)
	}
}

func debugLogFit(name string, nObs int, alpha, beta float64) {
	if debugRanks == `` {
		return
	}
	log.Printf("class %s: %d observations, fit gamma(x) = %g + %g*x",
		name, nObs, alpha, beta)
}
