package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/azverev/relaycal/internal/ics"
	"github.com/azverev/relaycal/internal/model"
)

func newICSCmd(logger *zap.Logger) *cobra.Command {
	var (
		flags    recurFlags
		title    string
		location string
		notes    string
		out      string
	)
	cmd := &cobra.Command{
		Use:   "ics",
		Short: "Export an expanded event series as an iCalendar file",
		RunE: func(_ *cobra.Command, _ []string) error {
			occs, cfg, err := flags.expand()
			if err != nil {
				return err
			}
			endDate := flags.endDate
			if endDate == "" {
				endDate = flags.startDate
			}
			draft := model.EventDraft{
				Title:     title,
				Content:   notes,
				Location:  location,
				StartDate: flags.startDate,
				EndDate:   endDate,
				Recur:     cfg,
			}
			data, err := ics.Export(draft, occs)
			if err != nil {
				return err
			}
			if out == "" || out == "-" {
				fmt.Print(string(data))
				return nil
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return err
			}
			logger.Info("wrote calendar file",
				zap.String("path", out),
				zap.Int("occurrences", len(occs)),
			)
			return nil
		},
	}
	flags.register(cmd)
	_ = cmd.MarkFlagRequired("start")
	cmd.Flags().StringVar(&title, "title", "Event", "event title")
	cmd.Flags().StringVar(&location, "location", "", "event location")
	cmd.Flags().StringVar(&notes, "notes", "", "event description")
	cmd.Flags().StringVarP(&out, "out", "o", "-", "output file (- for stdout)")
	return cmd
}
