package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/empsync/empsync-service/internal/analytics"
	"github.com/empsync/empsync-service/internal/codec"
	"github.com/empsync/empsync-service/internal/domain"
	"github.com/empsync/empsync-service/internal/loader"
)

type analyticsOutput struct {
	Source       loader.Source          `json:"source"`
	Reason       loader.Reason          `json:"reason,omitempty"`
	Cause        string                 `json:"cause,omitempty"`
	FromDefaults bool                   `json:"fromDefaults"`
	DurationMS   int64                  `json:"duration_ms"`
	Analytics    domain.Analytics       `json:"analytics"`
	RecentHires  []codec.EmployeeRecord `json:"recentHires"`
}

func newAnalyticsCmd(flags *globalFlags) *cobra.Command {
	var (
		filter analytics.EmployeeFilter
		status string
		recent int
	)

	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Load employees and print the dashboard aggregates",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer rt.Close()

			start := time.Now()
			res, err := rt.loader.Load(cmd.Context())
			if err != nil {
				return err
			}

			filter.Status = domain.EmployeeStatus(status)
			employees := analytics.Filter(res.Items, filter)
			hires := analytics.RecentHires(employees, recent)
			records := make([]codec.EmployeeRecord, 0, len(hires))
			for _, e := range hires {
				records = append(records, codec.FromDomain(e))
			}

			out := analyticsOutput{
				Source:       res.Source,
				Reason:       res.Reason,
				FromDefaults: res.FromDefaults,
				DurationMS:   time.Since(start).Milliseconds(),
				Analytics:    analytics.Aggregate(employees),
				RecentHires:  records,
			}
			if res.Cause != nil {
				out.Cause = res.Cause.Error()
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().StringVar(&filter.Department, "department", "", "Only include this department")
	cmd.Flags().StringVar(&status, "status", "", "Only include Active or Inactive employees")
	cmd.Flags().StringVar(&filter.Gender, "gender", "", "Only include this gender")
	cmd.Flags().StringVar(&filter.Search, "search", "", "Substring match on name, email or position")
	cmd.Flags().IntVar(&recent, "recent", 5, "Number of recent hires to list")
	return cmd
}
