package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pratik-mahalle/fitcoach/pkg/client"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newWorkoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workout",
		Short: "Browse the workout catalog",
	}

	cmd.AddCommand(newWorkoutSearchCmd())
	cmd.AddCommand(newWorkoutImportCmd())

	return cmd
}

func newWorkoutSearchCmd() *cobra.Command {
	var opts client.SearchOptions
	var equipment string

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search catalog workouts",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.Query = args[0]
			}
			if equipment != "" {
				opts.Equipment = strings.Split(equipment, ",")
			}

			res, err := apiClient.Workouts().Search(context.Background(), opts)
			if err != nil {
				return fmt.Errorf("failed to search workouts: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(res)
			}

			table := NewTable("ID", "NAME", "FORMAT", "LEVEL", "EQUIPMENT", "EVENT")
			for _, w := range res.Items {
				event := w.EventName
				if w.EventYear > 0 {
					event = strings.TrimSpace(fmt.Sprintf("%s %d", event, w.EventYear))
				}
				table.AddRow(
					strconv.FormatInt(w.ID, 10),
					truncate(w.Name, 32),
					orDash(w.Format),
					orDash(w.Level),
					strings.Join(w.Equipment, ","),
					orDash(event),
				)
			}
			table.Render()
			fmt.Printf("\n%d of %d workouts\n", len(res.Items), res.Count)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Level, "level", "", "level filter")
	cmd.Flags().StringVar(&opts.Format, "format", "", "format filter")
	cmd.Flags().StringVar(&opts.TimeDomain, "time-domain", "", "time domain filter")
	cmd.Flags().StringVar(&equipment, "equipment", "", "comma-separated equipment (barbell,gymnastics,bodyweight)")
	cmd.Flags().StringVar(&opts.Sort, "sort", "", "sort: newest, name, popularity")
	cmd.Flags().StringVar(&opts.Gender, "gender", "", "gender used for popularity sort")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "max results")
	cmd.Flags().IntVar(&opts.Offset, "offset", 0, "result offset")

	return cmd
}

func newWorkoutImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import catalog workouts from a YAML or JSON file (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			workouts, err := readWorkoutFile(args[0])
			if err != nil {
				return err
			}

			res, err := apiClient.Admin().ImportWorkouts(context.Background(), workouts)
			if err != nil {
				return fmt.Errorf("failed to import workouts: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(res)
			}
			fmt.Printf("Imported %d workouts\n", res.Imported)
			if len(res.Skipped) > 0 {
				fmt.Printf("Skipped existing: %s\n", strings.Join(res.Skipped, ", "))
			}
			return nil
		},
	}
}

// catalogFile is the import file layout. YAML is a superset of JSON so one
// decoder reads both.
type catalogFile struct {
	Workouts []struct {
		Slug           string   `yaml:"slug"`
		Name           string   `yaml:"name"`
		EventName      string   `yaml:"event_name"`
		EventYear      int      `yaml:"event_year"`
		Level          string   `yaml:"level"`
		Format         string   `yaml:"format"`
		TimeDomain     string   `yaml:"time_domain"`
		TimeCapSeconds *int     `yaml:"time_cap_seconds"`
		Exercises      []string `yaml:"exercises"`
		AttemptsMale   int      `yaml:"attempts_male"`
		AttemptsFemale int      `yaml:"attempts_female"`
	} `yaml:"workouts"`
}

func readWorkoutFile(path string) ([]client.Workout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(f.Workouts) == 0 {
		return nil, fmt.Errorf("%s contains no workouts", path)
	}

	out := make([]client.Workout, 0, len(f.Workouts))
	for _, w := range f.Workouts {
		out = append(out, client.Workout{
			Slug:           w.Slug,
			Name:           w.Name,
			EventName:      w.EventName,
			EventYear:      w.EventYear,
			Level:          w.Level,
			Format:         w.Format,
			TimeDomain:     w.TimeDomain,
			TimeCapSeconds: w.TimeCapSeconds,
			Exercises:      w.Exercises,
			AttemptsMale:   w.AttemptsMale,
			AttemptsFemale: w.AttemptsFemale,
		})
	}
	return out, nil
}
