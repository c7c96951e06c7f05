package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/V-Sekai-fire/aria-hybrid-planner-sub000/internal/engine"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule [problem.yaml]",
	Short: "Plan a problem and print its critical path",
	Long: `Schedule plans the problem without executing commands, then
prints the critical path: the chain of zero-slack activities whose
total duration equals the makespan.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSchedule,
}

func runSchedule(cmd *cobra.Command, args []string) error {
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

	if outputFormat == "yaml" {
		return printYAML(cmd, buildScheduleReport(sched))
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "critical path:")
	for _, id := range sched.CriticalPath() {
		a, ok := sched.Activity(id)
		if !ok {
			continue
		}
		fmt.Fprintf(out, "  %s [%d, %d)\n", a.Name, a.EarliestStart, a.EarliestFinish)
	}
	_, err = fmt.Fprintf(out, "makespan: %d\n", sched.Makespan)
	return err
}
