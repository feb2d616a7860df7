package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/ukaji3/attendsheet-go/internal/sample"
	"github.com/ukaji3/attendsheet-go/internal/server"
	"github.com/ukaji3/attendsheet-go/pkg/attendsheet/report"
	"go.uber.org/zap"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Read the sheet and report what was recognized",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(false)
		if err != nil {
			return err
		}
		defer a.Close()

		st, err := a.load(cmd.Context())
		if err != nil {
			return err
		}
		return emit(cmd.OutOrStdout(), st, func(w io.Writer) { renderStatus(w, st) })
	},
}

var monthOnly bool

var weeksCmd = &cobra.Command{
	Use:   "weeks",
	Short: "List the weeks of the sheet",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openLoaded(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer a.Close()

		if monthOnly {
			weeks, err := a.reports.MonthWeeks(cmd.Context())
			if err != nil {
				return err
			}
			return emit(cmd.OutOrStdout(), weeks, func(w io.Writer) { renderMonthWeeks(w, weeks) })
		}
		weeks, err := a.table.Weeks()
		if err != nil {
			return err
		}
		return emit(cmd.OutOrStdout(), weeks, func(w io.Writer) { renderWeeks(w, weeks) })
	},
}

var currentUser int64

var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the current week; with --user also select it for that user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		withUser := cmd.Flags().Changed("user")
		a, err := openLoaded(cmd.Context(), withUser)
		if err != nil {
			return err
		}
		defer a.Close()

		var ref report.WeekRef
		if withUser {
			ref, err = a.reports.Current(cmd.Context(), currentUser)
		} else {
			var local, global int
			local, global, err = a.table.CurrentWeek()
			if err == nil {
				label, _ := a.table.WeekRangeLabel(global)
				ref = report.WeekRef{Global: global, Local: local, Label: label}
			}
		}
		if err != nil {
			return err
		}
		return emit(cmd.OutOrStdout(), ref, func(w io.Writer) {
			fmt.Fprintln(w, titleStyle.Render("Текущая неделя"))
			fmt.Fprintln(w, weekTitle(ref))
		})
	},
}

var weekFlag int

var daysCmd = &cobra.Command{
	Use:   "days ID",
	Short: "Show days worked in a week (explicit, selected or current)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		a, err := openLoaded(cmd.Context(), true)
		if err != nil {
			return err
		}
		defer a.Close()

		d, err := a.reports.Days(cmd.Context(), id, weekFlag)
		if err != nil {
			return err
		}
		return emit(cmd.OutOrStdout(), d, func(w io.Writer) { renderDays(w, d) })
	},
}

var salaryCmd = &cobra.Command{
	Use:   "salary ID",
	Short: "Show pay for a week (explicit, selected or current)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		a, err := openLoaded(cmd.Context(), true)
		if err != nil {
			return err
		}
		defer a.Close()

		s, err := a.reports.Salary(cmd.Context(), id, weekFlag)
		if err != nil {
			return err
		}
		return emit(cmd.OutOrStdout(), s, func(w io.Writer) { renderSalary(w, s) })
	},
}

var meCmd = &cobra.Command{
	Use:   "me ID",
	Short: "Show which row an identifier is bound to",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		a, err := openLoaded(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer a.Close()

		p, err := a.reports.Me(cmd.Context(), id)
		if err != nil {
			return err
		}
		return emit(cmd.OutOrStdout(), p, func(w io.Writer) {
			fmt.Fprintln(w, field("Привязка", fmt.Sprintf("%s (строка %d)", p.Name, p.Position)))
			if p.Role != "" {
				fmt.Fprintln(w, field("Должность", p.Role))
			}
		})
	},
}

var selectCmd = &cobra.Command{
	Use:   "select ID LOCAL_WEEK",
	Short: "Remember a week of the current month for an identifier",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		local, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid week %q", args[1])
		}
		a, err := openLoaded(cmd.Context(), true)
		if err != nil {
			return err
		}
		defer a.Close()

		ref, err := a.reports.Select(cmd.Context(), id, local)
		if err != nil {
			return err
		}
		return emit(cmd.OutOrStdout(), ref, func(w io.Writer) {
			fmt.Fprintln(w, field("Выбрана", weekTitle(ref)))
		})
	},
}

var sampleFlags struct {
	output string
	sheet  string
	start  string
	weeks  int
	people int
	seed   uint64
}

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Write a generated attendance sheet (.xlsx or .csv)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		start := time.Now()
		if sampleFlags.start != "" {
			var err error
			start, err = time.Parse("2006-01-02", sampleFlags.start)
			if err != nil {
				return fmt.Errorf("invalid --start: %w", err)
			}
		}
		s := sample.Generate(sample.Params{
			Start:  start,
			Weeks:  sampleFlags.weeks,
			People: sampleFlags.people,
			Seed:   sampleFlags.seed,
		})

		path := sampleFlags.output
		if strings.EqualFold(filepath.Ext(path), ".csv") {
			f, err := os.Create(path)
			if err != nil {
				return err
			}
			if err := s.WriteCSV(f); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
		} else if err := s.WriteFile(path, sampleFlags.sheet); err != nil {
			return err
		}

		logger.Info("sample written",
			zap.String("path", path),
			zap.Time("start", s.Start),
			zap.Int("weeks", s.Weeks),
			zap.Int("people", len(s.People)))
		return emit(cmd.OutOrStdout(), s.People, func(w io.Writer) {
			fmt.Fprintln(w, titleStyle.Render("Табель записан: "+path))
			for _, p := range s.People {
				fmt.Fprintf(w, "%s %s\n", valueStyle.Render(strconv.FormatInt(p.ID, 10)), p.Name)
			}
		})
	},
}

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve attendance queries over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if serveAddr != "" {
			cfg.Server.Addr = serveAddr
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := newApp(true)
		if err != nil {
			return err
		}
		defer a.Close()

		// Queries answer NotLoaded until a later /reload succeeds.
		if _, err := a.load(ctx); err != nil {
			logger.Warn("initial load failed", zap.Error(err))
		}

		srv := server.New(a.table, a.reports,
			server.WithLogger(logger.Named("http")),
			server.WithTimeouts(cfg.GetReadTimeout(), cfg.GetShutdownTimeout()),
		)
		if err := srv.Serve(ctx, cfg.Server.Addr); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "attendsheet", version)
	},
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid identifier %q", s)
	}
	return id, nil
}

func init() {
	weeksCmd.Flags().BoolVar(&monthOnly, "month", false, "Only weeks of the current month, with local numbers")
	currentCmd.Flags().Int64Var(&currentUser, "user", 0, "Identifier whose selection is set to the current week")
	daysCmd.Flags().IntVarP(&weekFlag, "week", "w", 0, "Global week number")
	salaryCmd.Flags().IntVarP(&weekFlag, "week", "w", 0, "Global week number")
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides server.addr)")

	sampleCmd.Flags().StringVarP(&sampleFlags.output, "output", "o", "sample.xlsx", "Output file (.xlsx or .csv)")
	sampleCmd.Flags().StringVar(&sampleFlags.sheet, "sheet", sample.DefaultSheetName, "Worksheet name")
	sampleCmd.Flags().StringVar(&sampleFlags.start, "start", "", "First day, YYYY-MM-DD (moved back to Saturday)")
	sampleCmd.Flags().IntVar(&sampleFlags.weeks, "weeks", 8, "Number of weeks")
	sampleCmd.Flags().IntVar(&sampleFlags.people, "people", 12, "Number of people")
	sampleCmd.Flags().Uint64Var(&sampleFlags.seed, "seed", 0, "Random seed (0 = random)")
}
