package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/vytor/studyflash/internal/srs"
)

func newPreviewCmd() *cobra.Command {
	var (
		qualities []int
		answers   []string
		start     string
	)
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Show how a card's schedule evolves over a series of answers",
		Example: `  studyflash preview --qualities 5,5,3,1,4
  studyflash preview --answers correct:0.9,correct:0.6,wrong:0.8`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			outcomes, err := previewOutcomes(qualities, answers)
			if err != nil {
				return err
			}
			now := time.Now().UTC().Truncate(24 * time.Hour)
			if start != "" {
				if now, err = time.Parse(time.DateOnly, start); err != nil {
					return fmt.Errorf("invalid --start: %w", err)
				}
			}
			return runPreview(cmd.OutOrStdout(), outcomes, now)
		},
	}
	cmd.Flags().IntSliceVarP(&qualities, "qualities", "q", nil, "SM-2 grades 0-5, in review order")
	cmd.Flags().StringSliceVarP(&answers, "answers", "a", nil, "correct:<confidence> or wrong:<confidence>, in review order")
	cmd.Flags().StringVar(&start, "start", "", "date of the first review (YYYY-MM-DD), default today")
	cmd.MarkFlagsMutuallyExclusive("qualities", "answers")
	cmd.MarkFlagsOneRequired("qualities", "answers")
	return cmd
}

func previewOutcomes(qualities []int, answers []string) ([]srs.Outcome, error) {
	var out []srs.Outcome
	for _, q := range qualities {
		out = append(out, srs.Quality(q))
	}
	for _, a := range answers {
		verdict, conf, ok := strings.Cut(a, ":")
		if !ok {
			return nil, fmt.Errorf("answer %q: want correct:<confidence> or wrong:<confidence>", a)
		}
		c, err := strconv.ParseFloat(conf, 64)
		if err != nil {
			return nil, fmt.Errorf("answer %q: %w", a, err)
		}
		switch verdict {
		case "correct", "wrong":
			out = append(out, srs.CorrectnessConfidence{IsCorrect: verdict == "correct", Confidence: c})
		default:
			return nil, fmt.Errorf("answer %q: verdict must be correct or wrong", a)
		}
	}
	return out, nil
}

// runPreview reviews each outcome on the day the previous one fell due.
func runPreview(w io.Writer, outcomes []srs.Outcome, start time.Time) error {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Reviewed", "Answer", "Ease", "Interval", "Reps", "Phase", "Next review"})
	table.SetAutoFormatHeaders(false)

	var state *srs.ReviewState
	at := start
	for i, o := range outcomes {
		next, err := srs.ScheduleNextReview(state, o, at)
		if err != nil {
			return fmt.Errorf("review %d: %w", i+1, err)
		}
		table.Append([]string{
			strconv.Itoa(i + 1),
			at.Format(time.DateOnly),
			describeOutcome(o),
			fmt.Sprintf("%.2f", next.EaseFactor),
			fmt.Sprintf("%dd", next.Interval),
			strconv.Itoa(next.Repetitions),
			string(next.Phase()),
			next.NextReviewDate.Format(time.DateOnly),
		})
		state = &next
		at = next.NextReviewDate
	}
	table.Render()
	return nil
}

func describeOutcome(o srs.Outcome) string {
	switch o := o.(type) {
	case srs.Quality:
		return fmt.Sprintf("q=%d", int(o))
	case srs.CorrectnessConfidence:
		verdict := "wrong"
		if o.IsCorrect {
			verdict = "correct"
		}
		return fmt.Sprintf("%s (%.2f)", verdict, o.Confidence)
	}
	return "?"
}
