package main

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/V-Sekai-fire/aria-hybrid-planner-sub000/internal/schedule"
	"github.com/V-Sekai-fire/aria-hybrid-planner-sub000/internal/state"
	"github.com/V-Sekai-fire/aria-hybrid-planner-sub000/internal/types"
)

// scheduleReport is the YAML shape for schedule output.
type scheduleReport struct {
	Makespan   int64            `yaml:"makespan"`
	Activities []activityReport `yaml:"activities"`
}

type activityReport struct {
	Name          string `yaml:"name"`
	EarliestStart int64  `yaml:"earliest_start"`
	LatestStart   int64  `yaml:"latest_start"`
	Finish        int64  `yaml:"earliest_finish"`
	Slack         int64  `yaml:"slack"`
	Critical      bool   `yaml:"critical"`
}

type runReport struct {
	Facts    []factReport   `yaml:"facts"`
	Schedule scheduleReport `yaml:"schedule"`
}

type factReport struct {
	Predicate string `yaml:"predicate"`
	Subject   string `yaml:"subject"`
	Value     any    `yaml:"value"`
}

func printSchedule(cmd *cobra.Command, sched *schedule.Schedule) error {
	if outputFormat == "yaml" {
		return printYAML(cmd, buildScheduleReport(sched))
	}

	out := cmd.OutOrStdout()
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ACTIVITY\tSTART\tLATEST\tFINISH\tSLACK\tCRITICAL")
	for _, a := range sched.Activities {
		marker := ""
		if a.Critical() {
			marker = "*"
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%s\n",
			a.Name, a.EarliestStart, a.LatestStart, a.EarliestFinish, a.Slack, marker)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "makespan: %d\n", sched.Makespan)
	return err
}

func printRunResult(cmd *cobra.Command, final *state.State, sched *schedule.Schedule) error {
	if outputFormat == "yaml" {
		return printYAML(cmd, runReport{
			Facts:    buildFactReports(final),
			Schedule: buildScheduleReport(sched),
		})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "final state:")
	for _, f := range buildFactReports(final) {
		fmt.Fprintf(out, "  %s(%s) = %v\n", f.Predicate, f.Subject, f.Value)
	}
	fmt.Fprintln(out)
	return printSchedule(cmd, sched)
}

func buildScheduleReport(sched *schedule.Schedule) scheduleReport {
	report := scheduleReport{Makespan: sched.Makespan}
	for _, a := range sched.Activities {
		report.Activities = append(report.Activities, activityReport{
			Name:          a.Name,
			EarliestStart: a.EarliestStart,
			LatestStart:   a.LatestStart,
			Finish:        a.EarliestFinish,
			Slack:         a.Slack,
			Critical:      a.Critical(),
		})
	}
	return report
}

func buildFactReports(s *state.State) []factReport {
	var facts []factReport
	for _, predicate := range s.Predicates() {
		for _, subject := range s.Subjects(predicate) {
			value, _ := s.Get(predicate, subject)
			facts = append(facts, factReport{Predicate: predicate, Subject: subject, Value: value})
		}
	}
	return facts
}

// reportFailure renders the exhaustion trace carried by a fatal
// planning error: the methods attempted per node and the blacklisted
// action calls.
func reportFailure(cmd *cobra.Command, err error) {
	var perr *types.PlannerError
	if !errors.As(err, &perr) || perr.Context == nil {
		return
	}
	errOut := cmd.ErrOrStderr()
	if attempts, ok := perr.Context["attempts"].([]string); ok && len(attempts) > 0 {
		fmt.Fprintln(errOut, "attempted methods:")
		for _, line := range attempts {
			fmt.Fprintf(errOut, "  %s\n", line)
		}
	}
	if blacklisted, ok := perr.Context["blacklisted"].([]string); ok && len(blacklisted) > 0 {
		fmt.Fprintln(errOut, "blacklisted actions:")
		for _, key := range blacklisted {
			fmt.Fprintf(errOut, "  %s\n", key)
		}
	}
}

func printYAML(cmd *cobra.Command, data any) error {
	var b strings.Builder
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := fmt.Fprint(cmd.OutOrStdout(), b.String())
	return err
}
