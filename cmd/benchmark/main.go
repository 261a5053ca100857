package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"sync"
	"time"

	"github.com/limaJavier/coursetable/pkg/model"
	"github.com/limaJavier/coursetable/pkg/sat"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

type SolverType int

const (
	backtracking SolverType = iota
	exhaustive
)

var solverTypes = map[SolverType]string{
	backtracking: "backtracking",
	exhaustive:   "exhaustive",
}

type TestMetadata struct {
	Name       string
	Seed       uint64
	Courses    int
	Professors int
	Rooms      int
	Batches    int
	Days       int
	Variables  uint64
	Groups     uint64
}

type BenchmarkResult struct {
	Solver   SolverType
	Test     TestMetadata
	Probe    bool
	Duration time.Duration
	Outcome  string
	Stats    sat.Stats
}

type job struct {
	solver SolverType
	probe  bool
	test   TestMetadata
	input  model.ModelInput
}

func main() {
	instancesPtr := flag.Int("instances", 20, "Number of generated instances")
	seedPtr := flag.Uint64("seed", 1, "Seed of the first instance; instance i uses seed+i")
	coursesPtr := flag.Int("courses", 6, "Maximum courses per instance")
	workersPtr := flag.Int("workers", 4, "Instances solved concurrently")
	timeoutPtr := flag.Duration("timeout", 30*time.Second, "Search time limit per run")
	outPtr := flag.String("out", "benchmark_results.csv", "Path of the CSV report")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	jobs, err := getJobs(*instancesPtr, *seedPtr, *coursesPtr)
	if err != nil {
		logger.Fatal("cannot generate instances", zap.Error(err))
	}
	results := run(jobs, *workersPtr, *timeoutPtr, logger)

	file, err := os.Create(*outPtr)
	if err != nil {
		logger.Fatal("cannot create CSV file", zap.Error(err))
	}
	defer file.Close()

	if err := toCsv(file, results); err != nil {
		logger.Fatal("cannot write CSV report", zap.Error(err))
	}
}

// getJobs generates the instances and pairs each with the solvers able to handle it
func getJobs(instances int, seed uint64, maxCourses int) ([]job, error) {
	jobs := make([]job, 0, instances*3)
	for i := range instances {
		instanceSeed := seed + uint64(i)
		rng := rand.New(rand.NewPCG(instanceSeed, instanceSeed))
		rawInput := model.GenerateInput(rng, 1+rng.IntN(max(maxCourses, 1)), rng.IntN(4), 2+rng.IntN(4))

		input, err := model.ProcessRawInput(rawInput)
		if err != nil {
			return nil, fmt.Errorf("instance %d: %w", instanceSeed, err)
		}
		problem, err := model.Compile(input)
		if err != nil {
			return nil, fmt.Errorf("instance %d: %w", instanceSeed, err)
		}

		test := TestMetadata{
			Name:       fmt.Sprintf("generated-%d", instanceSeed),
			Seed:       instanceSeed,
			Courses:    len(input.Courses()),
			Professors: len(input.Professors()),
			Rooms:      len(input.Rooms()),
			Batches:    len(input.Batches()),
			Days:       len(input.Days()),
			Variables:  problem.Variables,
			Groups:     uint64(len(problem.Groups)),
		}

		jobs = append(jobs,
			job{solver: backtracking, probe: false, test: test, input: input},
			job{solver: backtracking, probe: true, test: test, input: input},
		)
		if problem.Variables <= sat.MaxExhaustiveVariables {
			jobs = append(jobs, job{solver: exhaustive, test: test, input: input})
		}
	}
	return jobs, nil
}

// run spreads the jobs over the workers; results keep the order of the jobs
func run(jobs []job, workers int, timeout time.Duration, logger *zap.Logger) []BenchmarkResult {
	results := make([]BenchmarkResult, len(jobs))
	indices := make(chan int)

	var wg sync.WaitGroup
	for range max(workers, 1) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range indices {
				results[index] = measure(jobs[index], timeout, logger)
			}
		}()
	}

	for index := range jobs {
		indices <- index
	}
	close(indices)
	wg.Wait()

	return results
}

func measure(task job, timeout time.Duration, logger *zap.Logger) BenchmarkResult {
	var solver sat.Solver
	switch task.solver {
	case backtracking:
		solver = sat.NewBacktrackingSolver(logger)
	case exhaustive:
		solver = sat.NewExhaustiveSolver()
	}
	timetabler := model.NewTimetabler(solver, task.probe, logger)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	start := time.Now()
	timetable, err := timetabler.Build(ctx, task.input)
	duration := time.Since(start)

	result := BenchmarkResult{
		Solver:   task.solver,
		Test:     task.test,
		Probe:    task.probe,
		Duration: duration,
		Outcome:  timetable.Outcome.String(),
		Stats:    timetable.Stats,
	}
	if err != nil {
		logger.Error("run failed", zap.String("test", task.test.Name), zap.String("solver", solverTypes[task.solver]), zap.Error(err))
		result.Outcome = "error"
	} else if timetable.Outcome == model.Feasible && len(timetabler.Verify(timetable.Assignment, task.input)) > 0 {
		logger.Error("timetable failed verification", zap.String("test", task.test.Name), zap.String("solver", solverTypes[task.solver]))
		result.Outcome = "invalid"
	}
	return result
}

func toCsv(writer io.Writer, results []BenchmarkResult) error {
	csvWriter := csv.NewWriter(writer)

	header := []string{"Solver", "Probe", "Test", "Seed", "Courses", "Professors", "Rooms", "Batches", "Days", "Variables", "Groups", "Duration(ms)", "Decisions", "Propagations", "Backtracks", "Outcome"}
	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("cannot write CSV header: %w", err)
	}

	records := lo.Map(results, func(result BenchmarkResult, _ int) []string {
		return []string{
			solverTypes[result.Solver],
			fmt.Sprintf("%v", result.Probe),
			result.Test.Name,
			fmt.Sprintf("%d", result.Test.Seed),
			fmt.Sprintf("%d", result.Test.Courses),
			fmt.Sprintf("%d", result.Test.Professors),
			fmt.Sprintf("%d", result.Test.Rooms),
			fmt.Sprintf("%d", result.Test.Batches),
			fmt.Sprintf("%d", result.Test.Days),
			fmt.Sprintf("%d", result.Test.Variables),
			fmt.Sprintf("%d", result.Test.Groups),
			fmt.Sprintf("%.3f", float64(result.Duration.Microseconds())/1000),
			fmt.Sprintf("%d", result.Stats.Decisions),
			fmt.Sprintf("%d", result.Stats.Propagations),
			fmt.Sprintf("%d", result.Stats.Backtracks),
			result.Outcome,
		}
	})
	if err := csvWriter.WriteAll(records); err != nil {
		return fmt.Errorf("cannot write CSV records: %w", err)
	}
	return nil
}
