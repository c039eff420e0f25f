package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gatherly/gatherly/internal/api"
	"github.com/gatherly/gatherly/internal/events"
	"github.com/gatherly/gatherly/internal/tui"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List and manage events",
	Long: `List, inspect and manage community events.

Subcommands:
  list      List approved events, with optional filters
  show      Show one event
  create    Publish a new event (goes through approval)
  update    Update an event you created
  delete    Delete an event you created
  like      Toggle your like on an event
  save      Toggle your save on an event
  liked     List events you liked
  saved     List events you saved
  mine      List events you created, with approval status

Examples:
  gatherly events list --category music --pricing free
  gatherly events show 42
  gatherly events like 42
  gatherly events create --title "Jazz night" --date 2026-10-01 --location "De Doelen"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var eventsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List approved events",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		app.start(cmd.Context())

		list, err := app.client.ListEvents(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load events: %w", err)
		}

		filter := filterFromFlags(cmd)
		return printEvents(cmd, filter.Apply(list), false)
	},
}

var eventsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseEventID(args[0])
		if err != nil {
			return err
		}

		app, err := newApp()
		if err != nil {
			return err
		}
		app.start(cmd.Context())

		ev, err := app.client.GetEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to load event %d: %w", id, err)
		}

		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return printJSON(ev)
		}

		row := func(label, value string) {
			if value != "" {
				fmt.Printf("%-12s %s\n", label, value)
			}
		}
		fmt.Println(ev.Title)
		fmt.Println()
		row("when:", ev.Date)
		row("where:", ev.Location)
		row("category:", ev.Category)
		row("type:", ev.EventType)
		row("language:", ev.Language)
		row("ages:", ev.AgeGroup)
		row("price:", ev.Pricing)
		row("likes:", strconv.Itoa(ev.LikesCount))
		marks := []string{}
		if ev.IsLiked {
			marks = append(marks, "liked")
		}
		if ev.IsSaved {
			marks = append(marks, "saved")
		}
		row("you:", strings.Join(marks, ", "))
		if ev.Description != "" {
			fmt.Println()
			fmt.Println(ev.Description)
		}
		return nil
	},
}

var eventsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Publish a new event",
	Long: `Publish a new event. New events wait for moderator approval before
they appear in public listings.

Examples:
  gatherly events create --title "Jazz night" --date 2026-10-01 \
    --location "De Doelen" --category music --pricing free
  gatherly events create --title "Food market" --date 2026-10-03 \
    --location Blaak --image poster.jpg`,
	RunE: func(cmd *cobra.Command, args []string) error {
		data := api.CreateEventData{}
		data.Title, _ = cmd.Flags().GetString("title")
		data.Description, _ = cmd.Flags().GetString("description")
		data.Date, _ = cmd.Flags().GetString("date")
		data.Location, _ = cmd.Flags().GetString("location")
		data.Pricing, _ = cmd.Flags().GetString("pricing")
		data.Category, _ = cmd.Flags().GetString("category")
		data.EventType, _ = cmd.Flags().GetString("type")
		data.Language, _ = cmd.Flags().GetString("language")
		data.AgeGroup, _ = cmd.Flags().GetString("age-group")

		// prompt for the required fields when the terminal allows it
		for _, field := range []struct {
			name string
			dst  *string
		}{
			{"Title", &data.Title},
			{"Date (YYYY-MM-DD)", &data.Date},
			{"Location", &data.Location},
		} {
			if *field.dst != "" {
				continue
			}
			if !tui.IsInteractive() {
				return fmt.Errorf("--title, --date and --location are required")
			}
			v, err := tui.PromptForString(tui.Prompt{Message: field.name, Required: true})
			if err != nil {
				return err
			}
			*field.dst = v
		}

		if imagePath, _ := cmd.Flags().GetString("image"); imagePath != "" {
			upload, err := readUpload(imagePath)
			if err != nil {
				return err
			}
			data.Image = upload
		}

		app, err := newApp()
		if err != nil {
			return err
		}
		if err := app.requireAuth(cmd.Context()); err != nil {
			return err
		}

		ev, err := app.client.CreateEvent(cmd.Context(), data)
		if err != nil {
			return fmt.Errorf("failed to create event: %w", err)
		}

		fmt.Printf("Created event %d: %s (%s)\n", ev.ID, ev.Title, ev.ApprovalStatus)
		return nil
	},
}

var eventsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an event you created",
	Long: `Update an event you created. Only the flags you pass are changed.

Examples:
  gatherly events update 42 --location "Ahoy"
  gatherly events update 42 --image new-poster.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseEventID(args[0])
		if err != nil {
			return err
		}

		data := api.UpdateEventData{}
		flags := cmd.Flags()
		strField := func(name string, dst **string) {
			if flags.Changed(name) {
				v, _ := flags.GetString(name)
				*dst = &v
			}
		}
		strField("title", &data.Title)
		strField("description", &data.Description)
		strField("date", &data.Date)
		strField("location", &data.Location)
		strField("pricing", &data.Pricing)
		strField("category", &data.Category)
		strField("type", &data.EventType)
		strField("language", &data.Language)
		strField("age-group", &data.AgeGroup)

		if imagePath, _ := flags.GetString("image"); imagePath != "" {
			upload, err := readUpload(imagePath)
			if err != nil {
				return err
			}
			data.Image = upload
		}

		app, err := newApp()
		if err != nil {
			return err
		}
		if err := app.requireAuth(cmd.Context()); err != nil {
			return err
		}

		ev, err := app.client.UpdateEvent(cmd.Context(), id, data)
		if err != nil {
			return fmt.Errorf("failed to update event %d: %w", id, err)
		}

		fmt.Printf("Updated event %d: %s\n", ev.ID, ev.Title)
		return nil
	},
}

var eventsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an event you created",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseEventID(args[0])
		if err != nil {
			return err
		}

		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			if !tui.IsInteractive() {
				return fmt.Errorf("pass --yes to delete without confirmation")
			}
			ok, err := tui.PromptForConfirmation(fmt.Sprintf("Delete event %d?", id), false)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("Aborted.")
				return nil
			}
		}

		app, err := newApp()
		if err != nil {
			return err
		}
		if err := app.requireAuth(cmd.Context()); err != nil {
			return err
		}

		if err := app.client.DeleteEvent(cmd.Context(), id); err != nil {
			return fmt.Errorf("failed to delete event %d: %w", id, err)
		}
		fmt.Printf("Deleted event %d.\n", id)
		return nil
	},
}

var eventsLikeCmd = &cobra.Command{
	Use:   "like <id>",
	Short: "Toggle your like on an event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runToggle(cmd, args[0], true)
	},
}

var eventsSaveCmd = &cobra.Command{
	Use:   "save <id>",
	Short: "Toggle your save on an event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runToggle(cmd, args[0], false)
	},
}

var eventsLikedCmd = &cobra.Command{
	Use:   "liked",
	Short: "List events you liked",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUserListing(cmd, func(ctx context.Context, a *app) ([]api.Event, error) {
			return a.client.LikedEvents(ctx)
		}, false)
	},
}

var eventsSavedCmd = &cobra.Command{
	Use:   "saved",
	Short: "List events you saved",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUserListing(cmd, func(ctx context.Context, a *app) ([]api.Event, error) {
			return a.client.SavedEvents(ctx)
		}, false)
	},
}

var eventsMineCmd = &cobra.Command{
	Use:   "mine",
	Short: "List events you created",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUserListing(cmd, func(ctx context.Context, a *app) ([]api.Event, error) {
			return a.client.MyEvents(ctx)
		}, true)
	},
}

func runToggle(cmd *cobra.Command, rawID string, like bool) error {
	id, err := parseEventID(rawID)
	if err != nil {
		return err
	}

	app, err := newApp()
	if err != nil {
		return err
	}
	if err := app.requireAuth(cmd.Context()); err != nil {
		return err
	}

	var resp *api.InteractionResponse
	if like {
		resp, err = app.client.ToggleLike(cmd.Context(), id)
	} else {
		resp, err = app.client.ToggleSave(cmd.Context(), id)
	}
	if err != nil {
		return fmt.Errorf("failed to update event %d: %w", id, err)
	}

	if resp.Message != "" {
		fmt.Println(resp.Message)
	} else if like {
		fmt.Printf("Event %d liked: %t\n", id, resp.Liked)
	} else {
		fmt.Printf("Event %d saved: %t\n", id, resp.Saved)
	}
	return nil
}

func runUserListing(cmd *cobra.Command, fetch func(context.Context, *app) ([]api.Event, error), showStatus bool) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	if err := app.requireAuth(cmd.Context()); err != nil {
		return err
	}

	list, err := fetch(cmd.Context(), app)
	if err != nil {
		return fmt.Errorf("failed to load events: %w", err)
	}
	return printEvents(cmd, list, showStatus)
}

func filterFromFlags(cmd *cobra.Command) events.Filter {
	f := events.Filter{}
	f.Category, _ = cmd.Flags().GetString("category")
	f.EventType, _ = cmd.Flags().GetString("type")
	f.Pricing, _ = cmd.Flags().GetString("pricing")
	f.Language, _ = cmd.Flags().GetString("language")
	f.AgeGroup, _ = cmd.Flags().GetString("age-group")
	f.Query, _ = cmd.Flags().GetString("search")
	f.DateFrom, _ = cmd.Flags().GetString("from")
	f.DateTo, _ = cmd.Flags().GetString("to")
	return f
}

func printEvents(cmd *cobra.Command, list []api.Event, showStatus bool) error {
	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		return printJSON(list)
	}

	if len(list) == 0 {
		fmt.Println("No events.")
		return nil
	}

	for _, ev := range list {
		marks := ""
		if ev.IsLiked {
			marks += " ♥"
		}
		if ev.IsSaved {
			marks += " ★"
		}
		status := ""
		if showStatus {
			status = "  [" + ev.ApprovalStatus + "]"
		}
		fmt.Printf("%4d  %-10s  %-28s  %s%s%s\n", ev.ID, ev.Date, truncate(ev.Title, 28), ev.Location, marks, status)
	}
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}

func parseEventID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid event id %q", raw)
	}
	return id, nil
}

func readUpload(path string) (*api.Upload, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	return &api.Upload{Filename: filepath.Base(path), Content: content}, nil
}

func init() {
	for _, c := range []*cobra.Command{eventsListCmd, eventsLikedCmd, eventsSavedCmd, eventsMineCmd, eventsShowCmd} {
		c.Flags().Bool("json", false, "Output JSON")
	}

	eventsListCmd.Flags().String("category", "", "Filter by category")
	eventsListCmd.Flags().String("type", "", "Filter by event type")
	eventsListCmd.Flags().String("pricing", "", "Filter by pricing (free, paid)")
	eventsListCmd.Flags().String("language", "", "Filter by language")
	eventsListCmd.Flags().String("age-group", "", "Filter by age group")
	eventsListCmd.Flags().String("search", "", "Search title, description and location")
	eventsListCmd.Flags().String("from", "", "Only events on or after this date (YYYY-MM-DD)")
	eventsListCmd.Flags().String("to", "", "Only events on or before this date (YYYY-MM-DD)")

	for _, c := range []*cobra.Command{eventsCreateCmd, eventsUpdateCmd} {
		c.Flags().String("title", "", "Event title")
		c.Flags().String("description", "", "Event description")
		c.Flags().String("date", "", "Event date (YYYY-MM-DD)")
		c.Flags().String("location", "", "Event location")
		c.Flags().String("pricing", api.PricingFree, "Pricing (free, paid)")
		c.Flags().String("category", "", "Category")
		c.Flags().String("type", "", "Event type")
		c.Flags().String("language", "", "Language")
		c.Flags().String("age-group", "", "Age group")
		c.Flags().String("image", "", "Path to an image file")
	}

	eventsDeleteCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")

	eventsCmd.AddCommand(eventsListCmd)
	eventsCmd.AddCommand(eventsShowCmd)
	eventsCmd.AddCommand(eventsCreateCmd)
	eventsCmd.AddCommand(eventsUpdateCmd)
	eventsCmd.AddCommand(eventsDeleteCmd)
	eventsCmd.AddCommand(eventsLikeCmd)
	eventsCmd.AddCommand(eventsSaveCmd)
	eventsCmd.AddCommand(eventsLikedCmd)
	eventsCmd.AddCommand(eventsSavedCmd)
	eventsCmd.AddCommand(eventsMineCmd)

	rootCmd.AddCommand(eventsCmd)
}
