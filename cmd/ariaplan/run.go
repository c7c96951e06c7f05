package main

import (
	"github.com/spf13/cobra"

	"github.com/V-Sekai-fire/aria-hybrid-planner-sub000/internal/engine"
)

var runCmd = &cobra.Command{
	Use:   "run [problem.yaml]",
	Short: "Plan and execute a problem",
	Long: `Run interleaves decomposition with execution: each primitive
action's command runs as soon as it is selected. Prints the final
state and the schedule of the executed actions.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	dom, init, todos, err := loadProblem(args)
	if err != nil {
		return err
	}

	e := engine.New()
	defer e.Close()
	stopWatch := watchEvents(cmd, e)
	defer stopWatch()

	final, tree, err := e.RunLazyWithTree(cmd.Context(), dom, init, todos, cfg.EngineOptions())
	if err != nil {
		reportFailure(cmd, err)
		return err
	}
	sched, err := engine.GetSchedule(tree)
	if err != nil {
		return err
	}
	return printRunResult(cmd, final, sched)
}
