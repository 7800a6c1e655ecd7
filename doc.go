// Package gohmm provides log-space Hidden Markov Models for Go, aimed at
// backend services that decode, score and sample symbol sequences.
//
// All probabilities are stored and combined as natural logarithms, so
// long sequences never underflow and probability 0 is represented exactly
// as -Inf.
//
// # Features
//
//   - Viterbi decoding with deterministic tie-breaking (lowest state index wins)
//   - Forward/backward evaluation, posterior state marginals
//   - Next-symbol prediction and sequence generation with a seedable source
//   - Ergodic, forward (left-to-right) and custom topologies
//   - Discrete and Gaussian emissions
//   - Immutable parameter snapshots: one model can be shared by many goroutines
//
// # Installation
//
//	go get github.com/YuminosukeSato/gohmm
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/gohmm/hmm"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    model, err := hmm.NewDiscreteFromMatrices(
//	        mat.NewDense(2, 2, []float64{0.7, 0.3, 0.4, 0.6}),
//	        mat.NewDense(2, 3, []float64{0.1, 0.4, 0.5, 0.6, 0.3, 0.1}),
//	        []float64{0.6, 0.4},
//	        false,
//	    )
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    path, logLik, err := model.Decode([]int{0, 1, 2})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(path, logLik) // [1 0 0] -4.3095...
//	}
//
// # Packages
//
//   - hmm: the model (Decode, Evaluate, EvaluatePath, Predict, Generate, Posterior),
//     batch helpers and the maximum-likelihood Classifier
//   - markov/topology: initial distribution and transition matrix
//   - markov/emission: discrete and Gaussian emission densities
//   - pkg/logmath: log-space arithmetic
//   - preprocessing: scaling, discretization and label encoding of observations
//   - metrics: path accuracy, confusion matrices, perplexity
//   - visualize: state timelines and likelihood charts (gonum/plot)
//   - core/model: model weights and their JSON/YAML/gob persistence
//   - core/parallel: parallel fan-out used by the batch helpers
//   - pkg/errors, pkg/log: error types and structured logging
//   - cmd/hmmctl: command-line front end
//
// # License
//
// gohmm is released under the MIT License.
package gohmm
