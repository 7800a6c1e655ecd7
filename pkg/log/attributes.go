// Package log defines standard attribute keys for sequence-model operations.
//
// Keys follow a hierarchical naming convention (e.g. "model.name",
// "hmm.states") so that log lines from different models can be filtered
// and aggregated the same way.

package log

// Model and Operation Context
const (
	// ModelNameKey identifies the kind of model.
	// Examples: "DiscreteHMM", "GaussianHMM", "Classifier"
	ModelNameKey = "model.name"

	// ModelIDKey is the unique identifier of a model instance (a UUID string).
	ModelIDKey = "model.id"

	// ParamsVersionKey is the version of the parameter snapshot used by a call.
	ParamsVersionKey = "model.params_version"

	// OperationKey specifies the operation being performed.
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is logging.
	ComponentKey = "ml.component"
)

// Model Shape
const (
	// StatesKey is the number of hidden states.
	StatesKey = "hmm.states"

	// SymbolsKey is the size of the discrete output alphabet.
	SymbolsKey = "hmm.symbols"

	// ClassesKey is the number of per-class models held by a classifier.
	ClassesKey = "hmm.classes"

	// TopologyKey names the topology a model was built from.
	TopologyKey = "hmm.topology"
)

// Sequences and Results
const (
	// SequenceLengthKey is the length T of the observation sequence.
	SequenceLengthKey = "seq.length"

	// SequencesKey is the number of sequences in a batch call.
	SequencesKey = "seq.count"

	// StepsKey is the number of steps requested from Predict or Generate.
	StepsKey = "seq.steps"

	// LogLikelihoodKey is the log-likelihood returned by an operation.
	LogLikelihoodKey = "hmm.loglik"

	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// RandomSeedKey records the random seed for reproducibility.
	RandomSeedKey = "config.random_seed"
)

// Error Context
const (
	// ErrorCodeKey provides a structured error code for programmatic handling.
	ErrorCodeKey = "error.code"

	// ErrorTypeKey categorizes the type of error encountered.
	ErrorTypeKey = "error.type"

	// SuggestionKey provides helpful suggestions for resolving issues.
	SuggestionKey = "error.suggestion"
)

// Standard attribute values.
const (
	OperationDecode    = "decode"
	OperationEvaluate  = "evaluate"
	OperationPredict   = "predict"
	OperationGenerate  = "generate"
	OperationPosterior = "posterior"
	OperationClassify  = "classify"
	OperationLoad      = "load"

	ErrorInvalidArgument   = "INVALID_ARGUMENT"
	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorImpossible        = "IMPOSSIBLE_SEQUENCE"
)
