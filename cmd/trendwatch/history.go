package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/abelbrown/trendwatch/internal/logging"
	"github.com/abelbrown/trendwatch/internal/store"
)

func newHistoryCmd(opts *rootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recently opened trends",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, st, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			defer logging.Close()
			defer st.Close()

			views, err := st.RecentViews(limit)
			if err != nil {
				return err
			}
			if len(views) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "최근 본 트렌드가 없습니다.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), historyTable(views))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of entries to show")
	return cmd
}

func historyTable(views []store.View) string {
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("키워드", "카테고리", "검색량", "조회", "마지막 조회", "링크").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
	for _, v := range views {
		t.Row(
			v.Keyword,
			v.Category,
			v.ApproxTraffic,
			strconv.Itoa(v.Count),
			humanize.Time(v.ViewedAt),
			v.Query,
		)
	}
	return t.String()
}
