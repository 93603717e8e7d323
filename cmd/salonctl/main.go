package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"salon-booking/internal/catalog"
	"salon-booking/internal/client"
	"salon-booking/internal/config"
	"salon-booking/internal/slots"
	"salon-booking/internal/widget"
	slogpretty "salon-booking/pkg/handlers/slogPretty"
	"salon-booking/pkg/sl"
)

const defaultAPI = "http://localhost:8080"

type app struct {
	apiURL  string
	timeout time.Duration
	verbose bool
}

func main() {
	a := &app{}

	root := &cobra.Command{
		Use:          "salonctl",
		Short:        "Book salon appointments from the terminal",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&a.apiURL, "api", envOr("SALON_API_URL", defaultAPI), "Booking backend base URL")
	root.PersistentFlags().DurationVar(&a.timeout, "timeout", 15*time.Second, "Request timeout")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log debug messages")

	root.AddCommand(a.servicesCmd(), a.slotsCmd(), a.bookCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (a *app) servicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "services",
		Short: "List the services on offer",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), a.timeout)
			defer cancel()

			services, err := client.New(a.apiURL).FetchServices(ctx)
			if err != nil {
				return err
			}

			for _, s := range services {
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s %-24s %3d min\n", s.Key, s.Name, s.Duration)
			}
			return nil
		},
	}
}

func (a *app) slotsCmd() *cobra.Command {
	var serviceKey, date string

	cmd := &cobra.Command{
		Use:   "slots",
		Short: "Show the start times for a service on a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), a.timeout)
			defer cancel()

			w, err := a.widget(ctx)
			if err != nil {
				return err
			}

			if err := w.ChooseService(serviceKey); err != nil {
				return err
			}

			decisions, err := w.ChooseDate(date)
			if err != nil {
				return err
			}

			printSlots(cmd, decisions)
			return nil
		},
	}
	cmd.Flags().StringVar(&serviceKey, "service", "", "Service key (see `salonctl services`)")
	cmd.Flags().StringVar(&date, "date", time.Now().Format("2006-01-02"), "Date as YYYY-MM-DD")
	_ = cmd.MarkFlagRequired("service")

	return cmd
}

func (a *app) bookCmd() *cobra.Command {
	var serviceKey, date, at, name, whatsapp string

	cmd := &cobra.Command{
		Use:   "book",
		Short: "Request a booking and print the WhatsApp hand-off link",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), a.timeout)
			defer cancel()

			w, err := a.widget(ctx)
			if err != nil {
				return err
			}

			if err := w.ChooseService(serviceKey); err != nil {
				return err
			}
			if err := w.Next(); err != nil {
				return err
			}
			if _, err := w.ChooseDate(date); err != nil {
				return err
			}
			if err := w.ChooseTime(at); err != nil {
				return err
			}
			if err := w.Next(); err != nil {
				return err
			}
			w.SetContact(name, whatsapp)

			conf, err := w.Submit(ctx, client.New(a.apiURL))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			color.New(color.FgGreen, color.Bold).Fprintf(out, "%s\n", conf.Booking.Mensagem)
			fmt.Fprintf(out, "ID %d: %s em %s, %s-%s\n",
				conf.Booking.ID, conf.Summary.ServiceName, conf.Summary.DisplayDate, conf.Summary.Time, conf.Summary.EndTime)
			if conf.WhatsappLink != "" {
				fmt.Fprintf(out, "Envie para aprovação: %s\n", conf.WhatsappLink)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&serviceKey, "service", "", "Service key")
	cmd.Flags().StringVar(&date, "date", "", "Date as YYYY-MM-DD")
	cmd.Flags().StringVar(&at, "time", "", "Start time as HH:MM")
	cmd.Flags().StringVar(&name, "name", "", "Client name")
	cmd.Flags().StringVar(&whatsapp, "whatsapp", "", "Client WhatsApp number")
	for _, f := range []string{"service", "date", "time", "name"} {
		_ = cmd.MarkFlagRequired(f)
	}

	return cmd
}

// widget builds a widget from the backend's catalogue and loaded bookings.
func (a *app) widget(ctx context.Context) (*widget.Widget, error) {
	log := a.logger()
	api := client.New(a.apiURL)

	sched, err := config.DefaultSchedule()
	if err != nil {
		return nil, err
	}
	schedule, err := sched.ToConfig()
	if err != nil {
		return nil, err
	}

	cat := catalog.Default()
	services, err := api.FetchServices(ctx)
	if err != nil {
		log.Warn("could not fetch services, using the default menu", sl.Err(err))
	} else {
		entries := make([]catalog.Entry, 0, len(services))
		for _, s := range services {
			entries = append(entries, catalog.Entry{Key: s.Key, Service: slots.Service{Name: s.Name, DurationMinutes: s.Duration}})
		}
		if cat, err = catalog.New(entries); err != nil {
			return nil, err
		}
	}

	w := widget.New(log, cat, schedule, nil)
	w.Load(ctx, api)
	if w.Degraded() {
		color.New(color.FgYellow).Fprintln(os.Stderr, "Aviso: não foi possível carregar os horários ocupados; todos aparecem livres.")
	}

	return w, nil
}

func (a *app) logger() *slog.Logger {
	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}

	opts := slogpretty.PrettyHandlerOptions{SlogOpts: &slog.HandlerOptions{Level: level}}
	return slog.New(opts.NewPrettyHandler(os.Stderr))
}

func printSlots(cmd *cobra.Command, decisions []slots.SlotDecision) {
	out := cmd.OutOrStdout()

	if !slots.HasAvailable(decisions) {
		fmt.Fprintln(out, "Nenhum horário disponível nesta data. Tente outra.")
		return
	}

	free := color.New(color.FgGreen)
	busy := color.New(color.FgRed, color.Faint)

	for _, d := range decisions {
		if d.Status == slots.StatusAvailable {
			free.Fprintln(out, d.Label)
			continue
		}
		busy.Fprintf(out, "%s (Ocupado)\n", d.Label)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
