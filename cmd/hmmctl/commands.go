package main

import (
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/gohmm/core/model"
	"github.com/YuminosukeSato/gohmm/hmm"
	"github.com/YuminosukeSato/gohmm/markov/topology"
	"github.com/YuminosukeSato/gohmm/pkg/errors"
	"github.com/YuminosukeSato/gohmm/pkg/log"
	"github.com/YuminosukeSato/gohmm/visualize"
)

type rootFlags struct {
	modelPath string
	logLevel  string
	format    string
	sumPaths  bool
}

func newRootCmd() *cobra.Command {
	f := &rootFlags{}
	root := &cobra.Command{
		Use:           "hmmctl",
		Short:         "Decode, evaluate, predict and sample with a discrete HMM",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return log.SetupLogger(f.logLevel)
		},
	}
	root.PersistentFlags().StringVarP(&f.modelPath, "model", "m", "", "model file (.json, .yaml, .yml or .gob)")
	root.PersistentFlags().StringVar(&f.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVarP(&f.format, "format", "f", "yaml", "output format (yaml or json)")
	root.PersistentFlags().BoolVar(&f.sumPaths, "sum-paths", false, "add per-step path log-probabilities instead of log-summing them")

	root.AddCommand(
		newInitCmd(f),
		newDecodeCmd(f),
		newEvaluateCmd(f),
		newPredictCmd(f),
		newGenerateCmd(f),
		newPlotCmd(f),
	)
	return root
}

// load はモデルファイルを読み込み、フラグに応じたオプションでモデルを構築します。
func (f *rootFlags) load(extra ...hmm.Option) (*hmm.DiscreteModel, error) {
	if f.modelPath == "" {
		return nil, errors.NewMissingArgumentError("--model")
	}
	w, err := model.ReadFile(f.modelPath)
	if err != nil {
		return nil, err
	}
	opts := extra
	if f.sumPaths {
		opts = append(opts, hmm.WithPathAccumulation(hmm.AccumulateSum))
	}
	return hmm.NewDiscreteFromWeights(w, opts...)
}

// observations は未指定のフラグを長さ 0 の系列として扱います。
func observations(obs []int) []int {
	return append([]int{}, obs...)
}

func newSource(seed uint64) rand.Source {
	return rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
}

func newInitCmd(f *rootFlags) *cobra.Command {
	var (
		states, symbols, deepness int
		kind, out                 string
		seed                      uint64
		random                    bool
	)
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a model file with uniform emissions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return errors.SafeExecute("init", func() error {
				var topoOpts []topology.Option
				if random {
					topoOpts = append(topoOpts, topology.WithRandom(newSource(seed)))
				}
				var (
					topo topology.Topology
					err  error
				)
				switch kind {
				case "ergodic":
					topo, err = topology.NewErgodic(states, topoOpts...)
				case "forward":
					topo, err = topology.NewForward(states, deepness, topoOpts...)
				default:
					return errors.NewValidationError("topology", "must be ergodic or forward", kind)
				}
				if err != nil {
					return err
				}
				m, err := hmm.NewDiscreteUniform(topo, symbols)
				if err != nil {
					return err
				}
				w, err := m.ExportWeights()
				if err != nil {
					return err
				}
				return model.WriteFile(w, out)
			})
		},
	}
	cmd.Flags().IntVar(&states, "states", 2, "number of hidden states")
	cmd.Flags().IntVar(&symbols, "symbols", 2, "size of the output alphabet")
	cmd.Flags().StringVar(&kind, "topology", "ergodic", "ergodic or forward")
	cmd.Flags().IntVar(&deepness, "deepness", 0, "forward topology: number of reachable states per row (0 = all)")
	cmd.Flags().BoolVar(&random, "random", false, "random initial transition weights")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed for --random")
	cmd.Flags().StringVarP(&out, "out", "o", "model.yaml", "output model file")
	return cmd
}

func newDecodeCmd(f *rootFlags) *cobra.Command {
	var obs []int
	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Most likely state path (Viterbi)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return errors.SafeExecute("decode", func() error {
				m, err := f.load()
				if err != nil {
					return err
				}
				path, ll, err := m.Decode(observations(obs))
				if err != nil {
					return err
				}
				return writeResult(cmd.OutOrStdout(), f.format, decodeResult{Path: path, LogLikelihood: Float(ll)})
			})
		},
	}
	cmd.Flags().IntSliceVar(&obs, "obs", nil, "observation symbols, comma separated")
	return cmd
}

func newEvaluateCmd(f *rootFlags) *cobra.Command {
	var obs, path []int
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Log-likelihood of a sequence, or of a sequence and a state path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return errors.SafeExecute("evaluate", func() error {
				m, err := f.load()
				if err != nil {
					return err
				}
				res := evaluateResult{}
				var ll float64
				if cmd.Flags().Changed("path") {
					ll, err = m.EvaluatePath(observations(obs), observations(path))
					res.Accumulation = m.Accumulation().String()
				} else {
					ll, err = m.Evaluate(observations(obs))
				}
				if err != nil {
					return err
				}
				res.LogLikelihood = Float(ll)
				return writeResult(cmd.OutOrStdout(), f.format, res)
			})
		},
	}
	cmd.Flags().IntSliceVar(&obs, "obs", nil, "observation symbols, comma separated")
	cmd.Flags().IntSliceVar(&path, "path", nil, "state path, comma separated")
	return cmd
}

func newPredictCmd(f *rootFlags) *cobra.Command {
	var (
		obs  []int
		next int
	)
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict the next symbols of a sequence",
		RunE: func(cmd *cobra.Command, args []string) error {
			return errors.SafeExecute("predict", func() error {
				m, err := f.load()
				if err != nil {
					return err
				}
				pred, err := m.Predict(observations(obs), next)
				if err != nil {
					return err
				}
				res := predictResult{
					Symbols:          pred.Symbols,
					LogProbabilities: make([][]Float, len(pred.LogProbabilities)),
					LogLikelihood:    Float(pred.LogLikelihood),
				}
				for i, row := range pred.LogProbabilities {
					res.LogProbabilities[i] = floats(row)
				}
				return writeResult(cmd.OutOrStdout(), f.format, res)
			})
		},
	}
	cmd.Flags().IntSliceVar(&obs, "obs", nil, "observation symbols, comma separated")
	cmd.Flags().IntVarP(&next, "next", "n", 1, "number of future steps")
	return cmd
}

func newGenerateCmd(f *rootFlags) *cobra.Command {
	var (
		n    int
		seed uint64
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Sample an observation sequence and its state path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return errors.SafeExecute("generate", func() error {
				var opts []hmm.Option
				if cmd.Flags().Changed("seed") {
					opts = append(opts, hmm.WithRandomState(seed))
				}
				m, err := f.load(opts...)
				if err != nil {
					return err
				}
				s, err := m.Generate(n)
				if err != nil {
					return err
				}
				return writeResult(cmd.OutOrStdout(), f.format, generateResult{
					Observations:  s.Observations,
					Path:          s.Path,
					LogLikelihood: Float(s.LogLikelihood),
				})
			})
		},
	}
	cmd.Flags().IntVarP(&n, "length", "n", 10, "sequence length")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed")
	return cmd
}

func newPlotCmd(f *rootFlags) *cobra.Command {
	var (
		obs    []int
		kind   string
		out    string
		labels []string
	)
	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Render the decoded path or the next-symbol distribution",
		RunE: func(cmd *cobra.Command, args []string) error {
			return errors.SafeExecute("plot", func() error {
				m, err := f.load()
				if err != nil {
					return err
				}
				seq := observations(obs)
				switch kind {
				case "path":
					path, _, err := m.Decode(seq)
					if err != nil {
						return err
					}
					if len(labels) == 0 {
						labels = nil
					}
					p, err := visualize.StatePath(path, labels)
					if err != nil {
						return err
					}
					return visualize.SavePlot(p, visualize.DefaultWidth, visualize.DefaultHeight, out)
				case "predict":
					pred, err := m.Predict(seq, 1)
					if err != nil {
						return err
					}
					p, err := visualize.PredictedDistribution(pred.LogProbabilities[0], nil)
					if err != nil {
						return err
					}
					return visualize.SavePlot(p, visualize.DefaultWidth, visualize.DefaultHeight, out)
				default:
					return errors.NewValidationError("kind", "must be path or predict", kind)
				}
			})
		},
	}
	cmd.Flags().IntSliceVar(&obs, "obs", nil, "observation symbols, comma separated")
	cmd.Flags().StringVar(&kind, "kind", "path", "path or predict")
	cmd.Flags().StringVarP(&out, "out", "o", "plot.png", "output image (.png, .svg, .pdf)")
	cmd.Flags().StringSliceVar(&labels, "labels", nil, "state labels for the path plot")
	return cmd
}
