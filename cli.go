package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "calories",
	Short:         "Calorie and nutrition widgets",
	Long:          `Serves daily calorie and macro-nutrient records and renders them as ring and bar widgets.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

var showCmd = &cobra.Command{
	Use:   "show <kind>",
	Short: "Render one widget to the terminal",
	Long:  "Render one widget to the terminal. Kinds: " + strings.Join(widgetKinds(), ", ") + ".",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var dashCmd = &cobra.Command{
	Use:   "dash",
	Short: "Browse days interactively",
	Args:  cobra.NoArgs,
	RunE:  runDash,
}

var (
	showDate    string
	showPrivacy bool
	showJSON    bool
	showColumns int
	dashDate    string
)

func init() {
	showCmd.Flags().StringVar(&showDate, "date", "", "day to show (YYYY-MM-DD, default today)")
	showCmd.Flags().BoolVar(&showPrivacy, "privacy", false, "redact values")
	showCmd.Flags().BoolVar(&showJSON, "json", false, "print the view model as JSON")
	showCmd.Flags().IntVar(&showColumns, "columns", defaultWidth, "width of rings and bars")
	dashCmd.Flags().StringVar(&dashDate, "date", "", "first day to show (YYYY-MM-DD, default today)")

	rootCmd.AddCommand(serveCmd, showCmd, dashCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	srv := newServer(newStoreFromConfig(cfg), cfg)

	log.Printf("Server starting on port %s", cfg.Port)
	return http.ListenAndServe(":"+cfg.Port, srv.handler(cfg.CORSOrigins))
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	date, err := dayOrToday(showDate)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
	defer cancel()
	rec, err := newStoreFromConfig(cfg).Get(ctx, date.Format(dateLayout))
	if err != nil {
		return err
	}

	opts := widgetOptions{Goal: cfg.Goal, Bars: cfg.Bars, Privacy: showPrivacy}
	widget, ok := buildWidget(args[0], rec, opts)
	if !ok {
		return fmt.Errorf("unknown widget kind %q (want one of %s)", args[0], strings.Join(widgetKinds(), ", "))
	}

	if showJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(widget)
	}
	text, err := newRenderer(showColumns).render(widget)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}

func runDash(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	date, err := dayOrToday(dashDate)
	if err != nil {
		return err
	}
	return runDashboard(newStoreFromConfig(cfg), widgetOptions{Goal: cfg.Goal, Bars: cfg.Bars}, date)
}

func dayOrToday(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return t, nil
}
