package hmm

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/YuminosukeSato/gohmm/core/model"
	"github.com/YuminosukeSato/gohmm/pkg/errors"
	"github.com/YuminosukeSato/gohmm/pkg/log"
	"github.com/YuminosukeSato/gohmm/pkg/logmath"
)

// Classifier はクラスごとの系列モデルを持ち、観測系列を対数尤度が最大の
// クラスに割り当てます。
type Classifier[O any] struct {
	models []model.Evaluator[O]
	logger log.Logger
}

// NewClassifier はクラス i のモデルを models[i] とする分類器を作成します。
func NewClassifier[O any](models ...model.Evaluator[O]) (*Classifier[O], error) {
	if len(models) == 0 {
		return nil, errors.NewValidationError("models", "at least one class model is required", 0)
	}
	for i, m := range models {
		if m == nil {
			return nil, errors.Wrapf(errors.NewMissingArgumentError("model"), "class %d", i)
		}
	}
	return &Classifier[O]{
		models: append([]model.Evaluator[O](nil), models...),
		logger: log.GetLoggerWithName("hmm.classifier").With(log.ClassesKey, len(models)),
	}, nil
}

// Classes returns the number of classes.
func (c *Classifier[O]) Classes() int { return len(c.models) }

// Compute evaluates obs under every class model concurrently and returns the
// class with the highest log-likelihood (lowest index on ties) together
// with the per-class log-likelihoods.
func (c *Classifier[O]) Compute(obs []O) (int, []float64, error) {
	if obs == nil {
		return -1, nil, errors.NewMissingArgumentError("observations")
	}
	logLiks := make([]float64, len(c.models))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, m := range c.models {
		g.Go(func() error {
			ll, err := m.Evaluate(obs)
			if err != nil {
				return errors.Wrapf(err, "class %d", i)
			}
			logLiks[i] = ll
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return -1, nil, err
	}

	class := logmath.ArgMax(logLiks)
	c.logger.Debug("classified sequence",
		log.OperationKey, log.OperationClassify,
		log.SequenceLengthKey, len(obs),
		"class", class,
		log.LogLikelihoodKey, logLiks[class],
	)
	return class, logLiks, nil
}

// Posteriors converts per-class log-likelihoods into normalised log
// posterior probabilities under a uniform class prior.
func Posteriors(logLiks []float64) []float64 {
	return logmath.Normalize(logLiks)
}
