package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/azverev/relaycal/internal/config"
	"github.com/azverev/relaycal/internal/model"
	"github.com/azverev/relaycal/internal/recur"
)

// recurFlags collects the recurrence form inputs shared by expand/validate/ics.
type recurFlags struct {
	configPath string

	startDate string
	endDate   string

	pattern   string
	interval  int
	count     int
	days      []int
	policy    string
	startTime string
	endTime   string
}

func (f *recurFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.configPath, "config", "", "config file (YAML)")
	cmd.Flags().StringVar(&f.startDate, "start", "", "seed start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.endDate, "end", "", "seed end date (YYYY-MM-DD, defaults to start)")
	cmd.Flags().StringVar(&f.pattern, "pattern", "daily", "recurrence pattern: daily|weekly|monthly")
	cmd.Flags().IntVar(&f.interval, "interval", 1, "recurrence interval")
	cmd.Flags().IntVar(&f.count, "count", 1, "number of occurrences (1-6)")
	cmd.Flags().IntSliceVar(&f.days, "days", nil, "weekdays for weekly pattern (0=Sunday..6=Saturday)")
	cmd.Flags().StringVar(&f.policy, "seed-policy", "", "weekly seed policy: snap|strict (default from config)")
	cmd.Flags().StringVar(&f.startTime, "start-time", "", "occurrence start time (HH:MM)")
	cmd.Flags().StringVar(&f.endTime, "end-time", "", "occurrence end time (HH:MM)")
}

func (f *recurFlags) toConfig() (model.RecurrenceConfig, error) {
	cfg := model.RecurrenceConfig{
		Enabled:        true,
		Interval:       f.interval,
		MaxOccurrences: f.count,
		WeeklyDays:     f.days,
	}
	switch f.pattern {
	case "daily":
		cfg.Pattern = model.PatternDaily
	case "weekly":
		cfg.Pattern = model.PatternWeekly
	case "monthly":
		cfg.Pattern = model.PatternMonthly
		cfg.Monthly = &model.MonthlyConfig{Mode: model.MonthlyByDate}
	default:
		return cfg, fmt.Errorf("unknown pattern %q", f.pattern)
	}

	policy := f.policy
	if policy == "" && f.configPath != "" {
		fileCfg, err := config.Load(f.configPath)
		if err != nil {
			return cfg, err
		}
		policy = string(fileCfg.SeedPolicy())
	}
	switch policy {
	case "", string(model.SeedSnapForward):
		cfg.SeedPolicy = model.SeedSnapForward
	case string(model.SeedStrict):
		cfg.SeedPolicy = model.SeedStrict
	default:
		return cfg, fmt.Errorf("unknown seed policy %q", policy)
	}

	if f.startTime != "" {
		cfg.TimeMode = model.TimeSingle
		cfg.StartTime = f.startTime
		cfg.EndTime = f.endTime
	}
	return cfg, nil
}

func (f *recurFlags) expand() ([]model.Occurrence, model.RecurrenceConfig, error) {
	cfg, err := f.toConfig()
	if err != nil {
		return nil, cfg, err
	}
	if msgs := recur.Validate(cfg); len(msgs) > 0 {
		return nil, cfg, errors.New(strings.Join(msgs, "; "))
	}
	end := f.endDate
	if end == "" {
		end = f.startDate
	}
	occs, err := recur.Expand(f.startDate, end, cfg)
	return occs, cfg, err
}

func newExpandCmd() *cobra.Command {
	var flags recurFlags
	cmd := &cobra.Command{
		Use:   "expand",
		Short: "Expand a recurrence configuration into concrete occurrences",
		RunE: func(_ *cobra.Command, _ []string) error {
			occs, _, err := flags.expand()
			if err != nil {
				return err
			}
			fmt.Print(renderOccurrences(occs))
			return nil
		},
	}
	flags.register(cmd)
	_ = cmd.MarkFlagRequired("start")
	return cmd
}

func newValidateCmd() *cobra.Command {
	var flags recurFlags
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a recurrence configuration for consistency",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := flags.toConfig()
			if err != nil {
				return err
			}
			msgs := recur.Validate(cfg)
			if len(msgs) == 0 {
				fmt.Println("ok")
				return nil
			}
			for _, m := range msgs {
				fmt.Println(m)
			}
			return fmt.Errorf("%d validation error(s)", len(msgs))
		},
	}
	flags.register(cmd)
	return cmd
}

// renderOccurrences formats occurrences one per line: index, dates, times.
func renderOccurrences(occs []model.Occurrence) string {
	var b strings.Builder
	for i, o := range occs {
		b.WriteString(strconv.Itoa(i))
		b.WriteByte('\t')
		b.WriteString(o.StartDate)
		b.WriteByte('\t')
		b.WriteString(o.EndDate)
		if o.StartTime != "" {
			b.WriteByte('\t')
			b.WriteString(o.StartTime)
			b.WriteByte('-')
			b.WriteString(o.EndTime)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
