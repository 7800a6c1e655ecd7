// Command hmmctl runs inference with a discrete hidden Markov model stored in
// a JSON, YAML or gob model file.
//
//	hmmctl init --states 2 --symbols 3 --out weather.yaml
//	hmmctl decode --model weather.yaml --obs 0,1,2
//	hmmctl predict --model weather.yaml --obs 0,1,2 --next 3
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "hmmctl:", err)
		os.Exit(1)
	}
}
