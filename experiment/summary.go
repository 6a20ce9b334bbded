package experiment

import (
	"encoding/csv"
	"io"
	"math"
	"sort"
	"strconv"

	"github.com/fluidsim/fluidsim"
)

// A SummaryRow aggregates one run (or one variant's share of a run) into the
// columns of the results CSV.
type SummaryRow struct {
	Variant          string
	Seed             uint64
	MeanQueueDelayMs float64
	P99QueueDelayMs  float64
	MeanUtilization  float64
	// FCTP99Ms is NaN when no short flow of this variant completed.
	FCTP99Ms   float64
	ShortFlows int
}

func summarize(variant fluidsim.Variant, seed uint64, ticks []fluidsim.TickStats, completions []fluidsim.FlowCompletion) SummaryRow {
	delays := make([]float64, 0, len(ticks))
	var utilSum float64
	for _, tick := range ticks {
		delays = append(delays, tick.QueueDelayMs)
		utilSum += tick.Utilization
	}
	var fcts []float64
	for _, c := range completions {
		if c.Variant == variant {
			fcts = append(fcts, c.FCTMs())
		}
	}
	row := SummaryRow{
		Variant:          variant.String(),
		Seed:             seed,
		MeanQueueDelayMs: mean(delays),
		P99QueueDelayMs:  percentile(delays, 99),
		MeanUtilization:  utilSum / float64(len(ticks)),
		FCTP99Ms:         percentile(fcts, 99),
		ShortFlows:       len(fcts),
	}
	return row
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// percentile linearly interpolates between the two nearest order statistics.
// It returns NaN for an empty input.
func percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	return sorted[lo] + (rank-float64(lo))*(sorted[hi]-sorted[lo])
}

var csvHeader = []string{
	"variant",
	"seed",
	"mean_queue_delay_ms",
	"p99_queue_delay_ms",
	"mean_util",
	"fct_p99_ms",
	"num_short_flows",
}

// WriteCSV writes the summary rows. NaN values become empty cells.
func WriteCSV(w io.Writer, rows []SummaryRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			row.Variant,
			strconv.FormatUint(row.Seed, 10),
			formatFloat(row.MeanQueueDelayMs),
			formatFloat(row.P99QueueDelayMs),
			formatFloat(row.MeanUtilization),
			formatFloat(row.FCTP99Ms),
			strconv.Itoa(row.ShortFlows),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
