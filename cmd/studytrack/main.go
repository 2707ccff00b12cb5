package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"studytrack/internal/bootstrap"
	analyticsinadapter "studytrack/internal/modules/analytics/adapter/in"
	analyticsdto "studytrack/internal/modules/analytics/dto"
	goaldto "studytrack/internal/modules/goal/dto"
	progressdto "studytrack/internal/modules/progress/dto"
	sessiondto "studytrack/internal/modules/session/dto"
	"studytrack/internal/platform/config"
	apperrors "studytrack/internal/platform/errors"
	"studytrack/internal/platform/humanize"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootOptions struct {
	dataDir string
	user    string
	json    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "studytrack",
		Short:         "Study time tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.dataDir, "data", ".", "data directory")
	root.PersistentFlags().StringVar(&opts.user, "user", "", "user (defaults to the configured user)")
	root.PersistentFlags().BoolVar(&opts.json, "json", false, "print structured JSON where supported")

	root.AddCommand(newTUICmd(opts))
	root.AddCommand(newSessionCmd(opts))
	root.AddCommand(newSubjectCmd(opts))
	root.AddCommand(newUserCmd(opts))
	root.AddCommand(newGoalCmd(opts))
	root.AddCommand(newStatsCmd(opts))
	root.AddCommand(newInsightsCmd(opts))
	root.AddCommand(newProgressCmd(opts))
	root.AddCommand(newReindexCmd(opts))
	return root
}

func loadApp(opts *rootOptions) (*bootstrap.App, error) {
	cfg, err := config.Load(opts.dataDir, opts.user)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg)
}

// withUser loads the app, resolves the acting user and closes the app afterwards.
func withUser(opts *rootOptions, fn func(ctx context.Context, app *bootstrap.App, user string) error) error {
	app, err := loadApp(opts)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()
	user := strings.TrimSpace(app.Config.User)
	if user == "" {
		return fmt.Errorf("%w: no user selected; pass --user or run 'studytrack user default <name>'", apperrors.ErrInvalidInput)
	}
	return fn(context.Background(), app, user)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseID(raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: id must be a positive integer", apperrors.ErrInvalidInput)
	}
	return id, nil
}

func newTUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the studytrack dashboard",
		RunE: func(_ *cobra.Command, _ []string) error {
			return withUser(opts, func(_ context.Context, app *bootstrap.App, _ string) error {
				return bootstrap.RunTUI(app)
			})
		},
	}
}

func newSessionCmd(opts *rootOptions) *cobra.Command {
	session := &cobra.Command{Use: "session", Short: "Record study sessions"}

	var subject, note string
	var minutes int
	save := &cobra.Command{
		Use:   "save --subject <name> --minutes <n>",
		Short: "Save a completed study session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withUser(opts, func(ctx context.Context, app *bootstrap.App, user string) error {
				out, err := app.SessionCLI.Save(ctx, user, subject, minutes, note)
				if err != nil {
					return err
				}
				printSaved(cmd, out)
				return nil
			})
		},
	}
	save.Flags().StringVar(&subject, "subject", "", "subject name")
	save.Flags().IntVar(&minutes, "minutes", 0, "duration in minutes")
	save.Flags().StringVar(&note, "note", "", "optional topic note")

	var startSubject string
	start := &cobra.Command{
		Use:   "start --subject <name>",
		Short: "Start the study timer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withUser(opts, func(ctx context.Context, app *bootstrap.App, user string) error {
				out, err := app.SessionCLI.Start(ctx, user, startSubject)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "timer started: user=%s subject=%s at=%s\n", out.User, out.Subject, out.StartedAt.Format(time.DateTime))
				return nil
			})
		},
	}
	start.Flags().StringVar(&startSubject, "subject", "", "subject name")

	var stopNote string
	stop := &cobra.Command{
		Use:   "stop",
		Short: "Stop the timer and save the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withUser(opts, func(ctx context.Context, app *bootstrap.App, user string) error {
				out, err := app.SessionCLI.Stop(ctx, user, stopNote)
				if err != nil {
					return err
				}
				printSaved(cmd, out)
				return nil
			})
		},
	}
	stop.Flags().StringVar(&stopNote, "note", "", "optional topic note")

	status := &cobra.Command{
		Use:   "status",
		Short: "Show the running timer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withUser(opts, func(ctx context.Context, app *bootstrap.App, user string) error {
				out, err := app.SessionCLI.GetActive(ctx, user)
				if errors.Is(err, apperrors.ErrNoActiveSession) {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no active timer")
					return nil
				}
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "subject=%s started=%s elapsed=%s\n", out.Subject, out.StartedAt.Format(time.DateTime), out.Elapsed.Truncate(time.Second))
				return nil
			})
		},
	}

	var limit int
	history := &cobra.Command{
		Use:   "history",
		Short: "List recent sessions, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withUser(opts, func(ctx context.Context, app *bootstrap.App, user string) error {
				records, err := app.SessionCLI.History(ctx, user, limit)
				if err != nil {
					return err
				}
				if opts.json {
					return writeJSON(cmd.OutOrStdout(), records)
				}
				if len(records) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions")
					return nil
				}
				for _, r := range records {
					when := r.RawTimestamp
					if r.HasTimestamp {
						when = r.Timestamp.Format(time.DateTime)
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s", r.ID, when, r.Subject, humanize.Minutes(int(r.DurationMin)))
					if r.Note != "" {
						_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\t%q", r.Note)
					}
					_, _ = fmt.Fprintln(cmd.OutOrStdout())
				}
				return nil
			})
		},
	}
	history.Flags().IntVar(&limit, "limit", 20, "maximum sessions to show (0 for all)")

	session.AddCommand(save, start, stop, status, history)
	return session
}

func printSaved(cmd *cobra.Command, out sessiondto.SaveOutput) {
	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(w, "session saved: id=%d subject=%s duration=%s\n", out.Record.ID, out.Record.Subject, humanize.Minutes(int(out.Record.DurationMin)))
	for _, g := range out.CompletedGoals {
		_, _ = fmt.Fprintf(w, "goal completed: #%d %s %s per %s\n", g.ID, g.Subject, humanize.Minutes(g.TargetMin), g.Interval)
	}
	for _, warning := range out.Warnings {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", warning)
	}
}

func newSubjectCmd(opts *rootOptions) *cobra.Command {
	subject := &cobra.Command{Use: "subject", Short: "Manage the user's subjects"}

	subject.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Register a subject",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withUser(opts, func(ctx context.Context, app *bootstrap.App, user string) error {
				name, err := app.SessionCLI.AddSubject(ctx, user, args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "subject added: %s\n", name)
				return nil
			})
		},
	})

	subject.AddCommand(&cobra.Command{
		Use:   "rm <name>",
		Short: "Remove a subject",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withUser(opts, func(ctx context.Context, app *bootstrap.App, user string) error {
				if err := app.SessionCLI.RemoveSubject(ctx, user, args[0]); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "subject removed: %s\n", args[0])
				return nil
			})
		},
	})

	subject.AddCommand(&cobra.Command{
		Use:   "ls",
		Short: "List subjects",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withUser(opts, func(ctx context.Context, app *bootstrap.App, user string) error {
				subjects, err := app.SessionCLI.ListSubjects(ctx, user)
				if err != nil {
					return err
				}
				if opts.json {
					return writeJSON(cmd.OutOrStdout(), subjects)
				}
				if len(subjects) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no subjects")
					return nil
				}
				for _, s := range subjects {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), s)
				}
				return nil
			})
		},
	})
	return subject
}

func newUserCmd(opts *rootOptions) *cobra.Command {
	user := &cobra.Command{Use: "user", Short: "Manage users"}

	user.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Register a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			name, err := app.SessionCLI.AddUser(context.Background(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "user added: %s\n", name)
			return nil
		},
	})

	user.AddCommand(&cobra.Command{
		Use:   "ls",
		Short: "List users",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			users, err := app.SessionCLI.ListUsers(context.Background())
			if err != nil {
				return err
			}
			if opts.json {
				return writeJSON(cmd.OutOrStdout(), users)
			}
			if len(users) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no users")
				return nil
			}
			for _, u := range users {
				marker := " "
				if u == app.Config.User {
					marker = "*"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, u)
			}
			return nil
		},
	})

	user.AddCommand(&cobra.Command{
		Use:   "default <name>",
		Short: "Set the default user in config.yaml",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			ctx := context.Background()
			name := strings.TrimSpace(args[0])
			users, err := app.SessionCLI.ListUsers(ctx)
			if err != nil {
				return err
			}
			if !slices.Contains(users, name) {
				if name, err = app.SessionCLI.AddUser(ctx, name); err != nil {
					return err
				}
			}
			if err := app.Config.SaveDefaultUser(name); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "default user: %s\n", name)
			return nil
		},
	})
	return user
}

func newGoalCmd(opts *rootOptions) *cobra.Command {
	goal := &cobra.Command{Use: "goal", Short: "Recurring study goals"}

	var subject, interval string
	var hours, minutes int
	add := &cobra.Command{
		Use:   "add --subject <name> --hours <h> --minutes <m> --interval <day|week|month>",
		Short: "Create a goal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withUser(opts, func(ctx context.Context, app *bootstrap.App, user string) error {
				out, err := app.GoalCLI.Create(ctx, user, subject, hours, minutes, interval)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "goal created: #%d %s %s per %s\n", out.ID, out.Subject, out.TargetLabel, out.Interval)
				return nil
			})
		},
	}
	add.Flags().StringVar(&subject, "subject", "", "subject name")
	add.Flags().IntVar(&hours, "hours", 0, "target hours")
	add.Flags().IntVar(&minutes, "minutes", 0, "target minutes")
	add.Flags().StringVar(&interval, "interval", "day", "recurrence: day|week|month")

	ls := &cobra.Command{
		Use:   "ls",
		Short: "List goals with progress for the current period",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withUser(opts, func(ctx context.Context, app *bootstrap.App, user string) error {
				goals, err := app.GoalCLI.List(ctx, user)
				if err != nil {
					return err
				}
				if opts.json {
					return writeJSON(cmd.OutOrStdout(), goals)
				}
				printGoals(cmd.OutOrStdout(), goals)
				return nil
			})
		},
	}

	rm := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withUser(opts, func(ctx context.Context, app *bootstrap.App, user string) error {
				if err := app.GoalCLI.Delete(ctx, user, id); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "goal deleted: #%d\n", id)
				return nil
			})
		},
	}

	check := &cobra.Command{
		Use:   "check",
		Short: "Mark goals reached in the current period as completed",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withUser(opts, func(ctx context.Context, app *bootstrap.App, user string) error {
				completed, err := app.GoalCLI.Check(ctx, user)
				if err != nil {
					return err
				}
				if opts.json {
					return writeJSON(cmd.OutOrStdout(), completed)
				}
				if len(completed) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no newly completed goals")
					return nil
				}
				for _, g := range completed {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "goal completed: #%d %s %s per %s\n", g.ID, g.Subject, g.TargetLabel, g.Interval)
				}
				return nil
			})
		},
	}

	goal.AddCommand(add, ls, rm, check)
	return goal
}

func printGoals(w io.Writer, goals []goaldto.GoalOutput) {
	if len(goals) == 0 {
		_, _ = fmt.Fprintln(w, "no goals")
		return
	}
	for _, g := range goals {
		_, _ = fmt.Fprintf(w, "#%d\t%s\t%s/%s per %s\t%.0f%%\t%s\n",
			g.ID, g.Subject, humanize.Minutes(int(g.StudiedMin)), g.TargetLabel, g.Interval, g.Percent, g.Band)
	}
}

func newStatsCmd(opts *rootOptions) *cobra.Command {
	var ro analyticsinadapter.ReportOptions
	stats := &cobra.Command{
		Use:   "stats",
		Short: "Aggregated study statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withUser(opts, func(ctx context.Context, app *bootstrap.App, user string) error {
				report, err := app.AnalyticsCLI.Report(ctx, user, ro)
				if err != nil {
					return err
				}
				if opts.json {
					return writeJSON(cmd.OutOrStdout(), report)
				}
				printReport(cmd.OutOrStdout(), report)
				return nil
			})
		},
	}
	stats.Flags().StringVar(&ro.Period, "period", "all", "period: all|today|week|month")
	stats.Flags().IntVar(&ro.DaysBack, "days", 7, "days of daily stats")
	stats.Flags().IntVar(&ro.WeeksBack, "weeks", 4, "ISO weeks of weekly stats")
	stats.Flags().IntVar(&ro.MonthsBack, "months", 6, "months of monthly stats")
	return stats
}

func printReport(w io.Writer, r analyticsinadapter.Report) {
	s := r.Summary
	_, _ = fmt.Fprintf(w, "sessions: %d  total: %s  average: %s  favourite: %s\n",
		s.TotalSessions, s.TotalLabel, humanize.Minutes(int(s.AverageSessionMin)), orDash(s.FavouriteSubject))
	_, _ = fmt.Fprintf(w, "last 7 days: %s  last 30 days: %s\n",
		humanize.Hours(s.Last7DaysMin/60), humanize.Hours(s.Last30DaysMin/60))

	_, _ = fmt.Fprintf(w, "\nperiod %s: %s\n", r.Period, humanize.Hours(r.PeriodHours))
	for _, sh := range r.BySubject {
		_, _ = fmt.Fprintf(w, "  %-20s %s\n", sh.Subject, humanize.Hours(sh.Hours))
	}

	_, _ = fmt.Fprintln(w, "\ndaily:")
	for _, d := range r.Daily {
		_, _ = fmt.Fprintf(w, "  %s  %6.2fh  %d sessions  %d subjects\n", d.Date, d.TotalHours, d.Sessions, d.DistinctSubjects)
	}
	_, _ = fmt.Fprintln(w, "\nweekly:")
	for _, wk := range r.Weekly {
		_, _ = fmt.Fprintf(w, "  %d-W%02d  %6.2fh  %d sessions\n", wk.Year, wk.Week, wk.TotalHours, wk.Sessions)
	}
	_, _ = fmt.Fprintln(w, "\nmonthly:")
	for _, m := range r.Monthly {
		_, _ = fmt.Fprintf(w, "  %d-%02d  %6.2fh  %d sessions\n", m.Year, m.Month, m.TotalHours, m.Sessions)
	}

	_, _ = fmt.Fprintln(w, "\nby weekday:")
	for _, d := range r.ByWeekday {
		_, _ = fmt.Fprintf(w, "  %-10s %6.2fh\n", d.Day, d.Hours)
	}
	if len(r.ByHour) > 0 {
		hours := make([]int, 0, len(r.ByHour))
		for h := range r.ByHour {
			hours = append(hours, h)
		}
		sort.Ints(hours)
		_, _ = fmt.Fprintln(w, "\nby hour:")
		for _, h := range hours {
			_, _ = fmt.Fprintf(w, "  %02d:00  %6.2fh\n", h, r.ByHour[h])
		}
	}

	p := r.Productivity
	_, _ = fmt.Fprintf(w, "\nproductivity: top subject %s, top hour %s, top day %s\n", p.TopSubject, p.TopHour, p.TopDay)
	printInsights(w, r.Insights)
}

func newInsightsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "insights",
		Short: "Study habit suggestions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withUser(opts, func(ctx context.Context, app *bootstrap.App, user string) error {
				insights, err := app.AnalyticsCLI.Insights(ctx, user)
				if err != nil {
					return err
				}
				if opts.json {
					return writeJSON(cmd.OutOrStdout(), insights)
				}
				printInsights(cmd.OutOrStdout(), insights)
				return nil
			})
		},
	}
}

func printInsights(w io.Writer, insights []analyticsdto.InsightOutput) {
	if len(insights) == 0 {
		return
	}
	_, _ = fmt.Fprintln(w, "\ninsights:")
	for _, in := range insights {
		_, _ = fmt.Fprintf(w, "  [%s] %s\n", in.Level, in.Message)
	}
}

func newProgressCmd(opts *rootOptions) *cobra.Command {
	progress := &cobra.Command{Use: "progress", Short: "Topic notes and milestones"}

	var noteSubject, noteTopic string
	var noteMinutes float64
	note := &cobra.Command{
		Use:   "note --subject <name> --topic <text> --minutes <n>",
		Short: "Record the topic covered in a session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withUser(opts, func(ctx context.Context, app *bootstrap.App, user string) error {
				out, err := app.ProgressCLI.AddNote(ctx, user, noteSubject, noteTopic, noteMinutes)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "note added: #%d %s / %s\n", out.ID, out.Subject, out.Topic)
				return nil
			})
		},
	}
	note.Flags().StringVar(&noteSubject, "subject", "", "subject name")
	note.Flags().StringVar(&noteTopic, "topic", "", "topic covered")
	note.Flags().Float64Var(&noteMinutes, "minutes", 0, "session minutes")

	var msSubject, msTopic, msDescription string
	milestone := &cobra.Command{
		Use:   "milestone --subject <name> --topic <text>",
		Short: "Record a completed milestone",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withUser(opts, func(ctx context.Context, app *bootstrap.App, user string) error {
				out, err := app.ProgressCLI.AddMilestone(ctx, user, msSubject, msTopic, msDescription)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "milestone added: #%d %s / %s\n", out.ID, out.Subject, out.Topic)
				return nil
			})
		},
	}
	milestone.Flags().StringVar(&msSubject, "subject", "", "subject name")
	milestone.Flags().StringVar(&msTopic, "topic", "", "milestone topic")
	milestone.Flags().StringVar(&msDescription, "description", "", "optional description")

	var lsSubject string
	ls := &cobra.Command{
		Use:   "ls",
		Short: "List notes, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withUser(opts, func(ctx context.Context, app *bootstrap.App, user string) error {
				notes, err := app.ProgressCLI.List(ctx, user, lsSubject)
				if err != nil {
					return err
				}
				return printNotes(cmd.OutOrStdout(), opts.json, notes)
			})
		},
	}
	ls.Flags().StringVar(&lsSubject, "subject", "", "filter by subject")

	timeline := &cobra.Command{
		Use:   "timeline <subject>",
		Short: "Show a subject's timeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withUser(opts, func(ctx context.Context, app *bootstrap.App, user string) error {
				entries, err := app.ProgressCLI.Timeline(ctx, user, args[0])
				if err != nil {
					return err
				}
				if opts.json {
					return writeJSON(cmd.OutOrStdout(), entries)
				}
				if len(entries) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no notes")
					return nil
				}
				for _, e := range entries {
					n := e.Note
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  %-9s  %s", n.Timestamp.Format("2006-01-02 15:04"), n.Kind, n.Topic)
					if e.SessionLabel != "" {
						_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  (%s)", e.SessionLabel)
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  total %s\n", e.CumulativeLabel)
				}
				return nil
			})
		},
	}

	var statsSubject string
	stats := &cobra.Command{
		Use:   "stats",
		Short: "Topic coverage statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withUser(opts, func(ctx context.Context, app *bootstrap.App, user string) error {
				out, err := app.ProgressCLI.Statistics(ctx, user, statsSubject)
				if err != nil {
					return err
				}
				if opts.json {
					return writeJSON(cmd.OutOrStdout(), out)
				}
				printProgressStats(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}
	stats.Flags().StringVar(&statsSubject, "subject", "", "restrict to one subject")

	var days int
	recent := &cobra.Command{
		Use:   "recent",
		Short: "Notes from the last days",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withUser(opts, func(ctx context.Context, app *bootstrap.App, user string) error {
				notes, err := app.ProgressCLI.Recent(ctx, user, days)
				if err != nil {
					return err
				}
				return printNotes(cmd.OutOrStdout(), opts.json, notes)
			})
		},
	}
	recent.Flags().IntVar(&days, "days", 7, "window in days")

	search := &cobra.Command{
		Use:   "search <query>",
		Short: "Search topics and descriptions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withUser(opts, func(ctx context.Context, app *bootstrap.App, user string) error {
				notes, err := app.ProgressCLI.Search(ctx, user, args[0])
				if err != nil {
					return err
				}
				return printNotes(cmd.OutOrStdout(), opts.json, notes)
			})
		},
	}

	rm := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withUser(opts, func(ctx context.Context, app *bootstrap.App, user string) error {
				if err := app.ProgressCLI.Delete(ctx, user, id); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "note deleted: #%d\n", id)
				return nil
			})
		},
	}

	export := &cobra.Command{
		Use:   "export <subject>",
		Short: "Write the subject timeline to progress/<subject>.md",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withUser(opts, func(ctx context.Context, app *bootstrap.App, user string) error {
				out, err := app.ProgressCLI.Export(ctx, user, args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "timeline exported: %s (%d entries)\n", out.Path, out.Entries)
				return nil
			})
		},
	}

	progress.AddCommand(note, milestone, ls, timeline, stats, recent, search, rm, export)
	return progress
}

func printNotes(w io.Writer, asJSON bool, notes []progressdto.NoteOutput) error {
	if asJSON {
		return writeJSON(w, notes)
	}
	if len(notes) == 0 {
		_, _ = fmt.Fprintln(w, "no notes")
		return nil
	}
	for _, n := range notes {
		_, _ = fmt.Fprintf(w, "#%d\t%s\t%s\t%s\t%s\n", n.ID, n.Timestamp.Format("2006-01-02 15:04"), n.Kind, n.Subject, n.Topic)
	}
	return nil
}

func printProgressStats(w io.Writer, s progressdto.StatisticsOutput) {
	_, _ = fmt.Fprintf(w, "subject: %s\n", orDash(s.Subject))
	_, _ = fmt.Fprintf(w, "sessions: %d  hours: %.2f\n", s.TotalSessions, s.TotalHours)
	_, _ = fmt.Fprintf(w, "sessions with notes: %d (%.1f%%)\n", s.SessionsWithNotes, s.NoteCoveragePct)
	_, _ = fmt.Fprintf(w, "topics: %d  milestones: %d  hours per topic: %.2f\n", s.DistinctTopics, s.MilestonesCompleted, s.AvgHoursPerTopic)
	if s.LastActivity != nil {
		_, _ = fmt.Fprintf(w, "last activity: %s\n", s.LastActivity.Format(time.DateTime))
	}
}

func newReindexCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the SQLite index from sessions.jsonl",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			ctx := context.Background()
			n, err := app.SessionCLI.Reindex(ctx)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "reindex completed: %d sessions\n", n)
			if app.Config.User == "" {
				return nil
			}
			totals, err := app.SessionCLI.IndexedTotals(ctx, app.Config.User)
			if err != nil {
				return err
			}
			subjects := make([]string, 0, len(totals))
			for s := range totals {
				subjects = append(subjects, s)
			}
			sort.Strings(subjects)
			for _, s := range subjects {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %-20s %s\n", s, humanize.Hours(totals[s]/60))
			}
			return nil
		},
	}
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
