package txbundle

import (
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/smartcontractkit/txbundle"
	"github.com/smartcontractkit/txbundle/amount"
	"github.com/smartcontractkit/txbundle/internal/utils/safecast"
	"github.com/smartcontractkit/txbundle/schedule"
	"github.com/smartcontractkit/txbundle/types"
)

type previewFlags struct {
	start    string
	end      string
	duration string
	cliff    string
	curve    string
	exponent float64
	inverted bool
	total    string
	decimals int
	samples  int
	asJSON   bool
}

func buildPreviewCmd() *cobra.Command {
	var f previewFlags

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Preview how a stream unlocks over its schedule",
		Long: `Samples the unlock curve of a stream. Give either --duration, which starts the stream at
--start (default now), or --end for an explicit window. The preview is an estimate; the stream
contract enforces its own curve.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			now := time.Now()

			start, err := parseTime(f.start, now)
			if err != nil {
				return err
			}

			spec, err := f.scheduleSpec(start)
			if err != nil {
				return err
			}

			decimals, err := safecast.IntToUint8(f.decimals)
			if err != nil {
				return fmt.Errorf("invalid --decimals: %w", err)
			}

			total, err := amount.NormalizeWithLimit(f.total, decimals, txbundle.StreamAmountBits)
			if err != nil {
				return fmt.Errorf("invalid --total: %w", err)
			}

			// In dates mode the start must lie after the reference time.
			ref := start
			if spec.Mode == types.ScheduleModeDates {
				ref = start.Add(-time.Second)
			}

			resolved, err := schedule.Resolve(spec, ref)
			if err != nil {
				return err
			}

			curve := types.UnlockCurve{Kind: types.CurveKind(f.curve), Exponent: f.exponent, Inverted: f.inverted}
			points, err := schedule.Preview(resolved, curve, total, f.samples)
			if err != nil {
				return err
			}

			if f.asJSON {
				return writeJSON(cmd.OutOrStdout(), points)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "TIME\tUNLOCKED\tFRACTION")
			for _, p := range points {
				fmt.Fprintf(w, "%s\t%s\t%s\n",
					time.Unix(p.Time, 0).UTC().Format(time.RFC3339),
					amount.Format(p.Unlocked, decimals),
					strconv.FormatFloat(p.Fraction, 'f', 4, 64),
				)
			}

			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&f.start, "start", "", "RFC 3339 start time, defaults to now")
	cmd.Flags().StringVar(&f.end, "end", "", "RFC 3339 end time")
	cmd.Flags().StringVar(&f.duration, "duration", "", "Stream length, e.g. 720h")
	cmd.Flags().StringVar(&f.cliff, "cliff", "0s", "Time after the start before anything unlocks")
	cmd.Flags().StringVar(&f.curve, "curve", string(types.CurveLinear), "Unlock curve: linear or exponential")
	cmd.Flags().Float64Var(&f.exponent, "exponent", 2, "Exponent of an exponential curve")
	cmd.Flags().BoolVar(&f.inverted, "inverted", false, "Frontload an exponential curve")
	cmd.Flags().StringVar(&f.total, "total", "", "Streamed amount in display units, e.g. 1500.5")
	cmd.Flags().IntVar(&f.decimals, "decimals", 18, "Token decimals")
	cmd.Flags().IntVar(&f.samples, "samples", 5, "Number of evenly spaced points")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "Print the points as JSON")
	_ = cmd.MarkFlagRequired("total")
	cmd.MarkFlagsMutuallyExclusive("end", "duration")
	cmd.MarkFlagsOneRequired("end", "duration")

	return cmd
}

func (f previewFlags) scheduleSpec(start time.Time) (types.ScheduleSpec, error) {
	cliff, err := types.ParseDuration(f.cliff)
	if err != nil {
		return types.ScheduleSpec{}, fmt.Errorf("invalid --cliff: %w", err)
	}

	if f.end != "" {
		end, err := parseTime(f.end, time.Time{})
		if err != nil {
			return types.ScheduleSpec{}, err
		}

		return types.ScheduleSpec{
			Mode:      types.ScheduleModeDates,
			Cliff:     cliff,
			StartDate: &start,
			EndDate:   &end,
		}, nil
	}

	d, err := types.ParseDuration(f.duration)
	if err != nil {
		return types.ScheduleSpec{}, fmt.Errorf("invalid --duration: %w", err)
	}

	return types.ScheduleSpec{Mode: types.ScheduleModeDuration, Duration: d, Cliff: cliff}, nil
}
