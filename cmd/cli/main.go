package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/limaJavier/coursetable/pkg/config"
	"github.com/limaJavier/coursetable/pkg/model"
	"github.com/limaJavier/coursetable/pkg/sat"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

const (
	exitFeasible           = 10
	exitVerificationFailed = 15
	exitInfeasible         = 20
	exitCancelled          = 30
)

var solvers = map[string]func(logger *zap.Logger) sat.Solver{
	"backtracking": sat.NewBacktrackingSolver,
	"exhaustive": func(_ *zap.Logger) sat.Solver {
		return sat.NewExhaustiveSolver()
	},
}

type output struct {
	RunId      string                    `json:"run"`
	Outcome    string                    `json:"outcome"`
	Batches    map[string]model.Schedule `json:"batches,omitempty"`
	Professors map[string]model.Schedule `json:"professors,omitempty"`
	Violations []model.Violation         `json:"violations,omitempty"`
}

func main() {
	// Define arguments
	solverPtr := flag.String("solver", "", "Solver to use. Allowed values are: \"backtracking\" and \"exhaustive\" (at most 24 variables); overrides the configuration")
	filePathPtr := flag.String("file", "", "Path to the input file")
	outFilePathPtr := flag.String("out", "", "Path to the file where the output will be written; if empty, it'll be written into the Standard Output")
	timeoutPtr := flag.Duration("timeout", 0, "Maximum search time (e.g. \"30s\"); overrides the configuration")
	probePtr := flag.Bool("probe", true, "Run the capacity probe before searching; overrides the configuration")
	configPathPtr := flag.String("config", "", "Path to a config.json file; if empty, the one next to the executable is used when present")
	envPathPtr := flag.String("env", ".env", "Path to a dotenv file with TIMETABLE_* variables")
	dumpPtr := flag.String("dump", "", "Path where the compiled constraint set will be written in OPB format")
	verbosePtr := flag.Bool("verbose", false, "Log with the development logger at debug level")
	flag.Parse()

	// Load configuration
	configPath := *configPathPtr
	if configPath == "" {
		configPath = defaultConfigPath()
	}
	cfg, err := config.Load(configPath, *envPathPtr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot load configuration: %v\n", err)
		os.Exit(1)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "solver":
			cfg.Solver = strings.ToLower(*solverPtr)
		case "timeout":
			cfg.Timeout = *timeoutPtr
		case "probe":
			cfg.Probe = *probePtr
		}
	})

	logger, err := cfg.Logger(*verbosePtr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Validate arguments
	if _, ok := solvers[cfg.Solver]; !ok {
		allowed := lo.Keys(solvers)
		slices.Sort(allowed)
		logger.Fatal("invalid solver", zap.String("solver", cfg.Solver), zap.Strings("allowed", allowed))
	} else if *filePathPtr == "" {
		logger.Fatal("an input file must be specified")
	}

	// Extract input
	input, err := model.InputFromJson(*filePathPtr)
	if err != nil {
		logger.Fatal("cannot parse input file", zap.Error(err))
	}

	if *dumpPtr != "" {
		problem, err := model.Compile(input)
		if err != nil {
			logger.Fatal("cannot compile constraint set", zap.Error(err))
		} else if err := os.WriteFile(*dumpPtr, []byte(problem.ToOPB()), 0666); err != nil {
			logger.Fatal("cannot write constraint dump", zap.Error(err))
		}
	}

	// Build timetable
	ctx := context.Background()
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	timetabler := model.NewTimetabler(solvers[cfg.Solver](logger), cfg.Probe, logger)
	start := time.Now()
	timetable, err := timetabler.Build(ctx, input)
	if err != nil {
		var modelError *sat.ModelError
		if errors.As(err, &modelError) {
			logger.Fatal("model is self-contradictory", zap.String("group", modelError.Group), zap.String("reason", modelError.Reason))
		}
		logger.Fatal("an error occurred during timetable construction", zap.Error(err))
	}
	logger.Info("timetable built",
		zap.String("run", timetable.RunId),
		zap.Stringer("outcome", timetable.Outcome),
		zap.Uint64("variables", timetable.Variables),
		zap.Uint64("groups", timetable.Groups),
		zap.Duration("elapsed", time.Since(start)),
	)

	result := output{RunId: timetable.RunId, Outcome: timetable.Outcome.String()}
	exitCode := exitFeasible
	switch timetable.Outcome {
	case model.Infeasible:
		exitCode = exitInfeasible
	case model.Cancelled:
		exitCode = exitCancelled
	case model.Feasible:
		// Verify timetable correctness
		result.Violations = timetabler.Verify(timetable.Assignment, input)
		if len(result.Violations) > 0 {
			logger.Error("timetable failed verification", zap.Int("violations", len(result.Violations)))
			exitCode = exitVerificationFailed
		}
		result.Batches, result.Professors = model.Project(timetable.Assignment, input)
	}

	write(logger, *outFilePathPtr, result)
	logger.Sync()
	os.Exit(exitCode)
}

func write(logger *zap.Logger, outFile string, result output) {
	resultJson, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		logger.Fatal("an error occurred while building output json", zap.Error(err))
	}

	// Verify outfile is empty, if so then write the results to the Standard Output
	if outFile == "" {
		fmt.Println(string(resultJson))
	} else if err := os.WriteFile(outFile, resultJson, 0666); err != nil {
		logger.Fatal("an error occurred while writing to the output file", zap.Error(err))
	}
}

// defaultConfigPath returns the config.json next to the executable, or "" if there is none
func defaultConfigPath() string {
	execPath, err := os.Executable()
	if err != nil {
		return ""
	}

	configPath := path.Join(path.Dir(execPath), "config.json")
	if _, err := os.Stat(configPath); err != nil {
		return ""
	}
	return configPath
}
