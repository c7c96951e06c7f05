package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/V-Sekai-fire/aria-hybrid-planner-sub000/examples/logistics"
	"github.com/V-Sekai-fire/aria-hybrid-planner-sub000/internal/domain"
	"github.com/V-Sekai-fire/aria-hybrid-planner-sub000/internal/engine"
	"github.com/V-Sekai-fire/aria-hybrid-planner-sub000/internal/state"
)

var planCmd = &cobra.Command{
	Use:   "plan [problem.yaml]",
	Short: "Plan a problem without executing commands",
	Long: `Plan decomposes the problem's todo list into primitive actions
using simulated effects only, then prints the critical-path schedule.
Without a problem file the built-in stock problem is planned.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlan,
}

func runPlan(cmd *cobra.Command, args []string) error {
	dom, init, todos, err := loadProblem(args)
	if err != nil {
		return err
	}

	e := engine.New()
	defer e.Close()
	stopWatch := watchEvents(cmd, e)
	defer stopWatch()

	tree, err := e.Plan(cmd.Context(), dom, init, todos, cfg.EngineOptions())
	if err != nil {
		reportFailure(cmd, err)
		return err
	}
	sched, err := engine.GetSchedule(tree)
	if err != nil {
		return err
	}
	return printSchedule(cmd, sched)
}

// loadProblem resolves the domain, initial state, and todo list, from a
// problem file when given or the stock problem otherwise.
func loadProblem(args []string) (*domain.Domain, *state.State, []domain.Todo, error) {
	dom, err := logistics.Domain()
	if err != nil {
		return nil, nil, nil, err
	}
	if len(args) == 0 {
		return dom, logistics.InitialState(),
			[]domain.Todo{domain.Task{Name: "deliver", Args: []any{"box1", "warehouse"}}}, nil
	}

	problem, err := logistics.LoadProblem(args[0])
	if err != nil {
		return nil, nil, nil, err
	}
	todos, err := problem.TodoList()
	if err != nil {
		return nil, nil, nil, err
	}
	return dom, problem.State(), todos, nil
}

// watchEvents streams refinement events to stderr in verbose mode.
// The returned stop function must be called before reading results.
func watchEvents(cmd *cobra.Command, e *engine.Engine) func() {
	if !verbose {
		return func() {}
	}
	events, cancel := e.Events().Subscribe(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		for ev := range events {
			fmt.Fprintf(cmd.ErrOrStderr(), "[%s] %v\n", ev.Type, ev.Payload)
		}
	}()
	return func() {
		cancel()
		<-done
	}
}
