package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/vegasq/trackstats/analytics"
	"github.com/vegasq/trackstats/output"
	"github.com/vegasq/trackstats/reader"
)

var (
	opFlag       = flag.String("op", "", "Operation: filter, distinct_pairs, sum, group_count, group_aggregate, group_range, top_n, rank, above_average, ratio, cumulative, platform_streams")
	fieldFlag    = flag.String("field", "", "Primary numeric or text column for the operation")
	field2Flag   = flag.String("field2", "", "Second column (distinct_pairs second member, ratio denominator)")
	groupFlag    = flag.String("group", "", "Text column to group by")
	aggFlag      = flag.String("agg", "avg", "Aggregate function for group_aggregate: avg, sum, max, min")
	cmpFlag      = flag.String("cmp", "gt", "Comparator for filter: eq, ne, lt, gt, le, ge (or symbols)")
	valueFlag    = flag.Float64("value", 0, "Comparison value for filter")
	nFlag        = flag.Int("n", 10, "Row budget for top_n and rank (top n / top k per group)")
	minRatioFlag = flag.Float64("min-ratio", 0, "Minimum ratio for the ratio operation")
	orderFlag    = flag.String("order", "", "Order column for cumulative")
	whereFlag    = flag.String("where", "", "Optional predicate for sum, e.g. \"stream > 1000000\"")
	ascFlag      = flag.Bool("asc", false, "Sort ascending instead of descending (top_n)")
	formatFlag   = flag.String("f", "table", "Output format: json, jsonl, csv, table")
	limitFlag    = flag.Int("limit", 0, "Limit number of output rows (0 = unlimited)")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <dataset.parquet|dataset.csv|glob>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Run a named analytical operation over a track dataset.\n\n")
		fmt.Fprintf(os.Stderr, "IMPORTANT: All flags must come BEFORE the file argument.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -op filter -field stream -cmp gt -value 1000000000 spotify.parquet\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -op rank -group artist -field views -n 3 spotify.parquet\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -op group_aggregate -group album_type -field energy -agg avg spotify.csv\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -op ratio -field energy -field2 liveness -min-ratio 1.2 spotify.parquet\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -op cumulative -order views -field likes -f csv spotify.parquet\n", os.Args[0])
	}

	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: missing dataset file argument\n\n")
		flag.Usage()
		os.Exit(1)
	}
	if *opFlag == "" {
		fmt.Fprintf(os.Stderr, "Error: missing -op\n\n")
		flag.Usage()
		os.Exit(1)
	}

	tracks, err := reader.ReadGlob(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading dataset: %v\n", err)
		os.Exit(1)
	}

	rows, err := runOperation(*opFlag, tracks)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		var fieldErr *analytics.InvalidFieldError
		if errors.As(err, &fieldErr) {
			fmt.Fprintf(os.Stderr, "\nNumeric columns: %s\n", strings.Join(analytics.NumericFields(), ", "))
			fmt.Fprintf(os.Stderr, "Text columns: %s\n", strings.Join(analytics.TextFields(), ", "))
		}
		os.Exit(1)
	}

	if *limitFlag > 0 && len(rows) > *limitFlag {
		rows = rows[:*limitFlag]
	}

	var formatter output.Formatter
	switch *formatFlag {
	case "json", "jsonl":
		formatter = output.NewJSONFormatter(os.Stdout)
	case "csv":
		formatter = output.NewCSVFormatter(os.Stdout)
	case "table":
		formatter = output.NewTableFormatter(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "Error: unsupported format '%s'\n", *formatFlag)
		fmt.Fprintf(os.Stderr, "Supported formats: json, jsonl, csv, table\n")
		os.Exit(1)
	}

	if err := formatter.Format(rows); err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
}

// runOperation dispatches a named operation and converts its typed result
// into generic rows for the output formatters.
func runOperation(op string, tracks []analytics.Track) ([]map[string]interface{}, error) {
	switch op {
	case "filter":
		cmp, err := analytics.ParseComparator(*cmpFlag)
		if err != nil {
			return nil, err
		}
		filtered, err := analytics.FilterByThreshold(tracks, *fieldFlag, cmp, *valueFlag)
		if err != nil {
			return nil, err
		}
		return tracksToRows(filtered), nil

	case "distinct_pairs":
		pairs, err := analytics.DistinctPairs(tracks, *fieldFlag, *field2Flag)
		if err != nil {
			return nil, err
		}
		rows := make([]map[string]interface{}, len(pairs))
		for i, p := range pairs {
			rows[i] = map[string]interface{}{*fieldFlag: p.A, *field2Flag: p.B}
		}
		return rows, nil

	case "sum":
		pred, err := parseWhere(*whereFlag)
		if err != nil {
			return nil, err
		}
		sum, err := analytics.ConditionalSum(tracks, *fieldFlag, pred)
		if err != nil {
			return nil, err
		}
		return []map[string]interface{}{{"sum": sum}}, nil

	case "group_count":
		counts, err := analytics.GroupCount(tracks, *groupFlag, *fieldFlag)
		if err != nil {
			return nil, err
		}
		rows := make([]map[string]interface{}, len(counts))
		for i, g := range counts {
			rows[i] = map[string]interface{}{*groupFlag: g.Key, "count": g.Count}
		}
		return rows, nil

	case "group_aggregate":
		fn, err := analytics.ParseAggFn(*aggFlag)
		if err != nil {
			return nil, err
		}
		values, err := analytics.GroupAggregate(tracks, *groupFlag, *fieldFlag, fn)
		if err != nil {
			return nil, err
		}
		column := strings.ToLower(*aggFlag)
		rows := make([]map[string]interface{}, len(values))
		for i, g := range values {
			rows[i] = map[string]interface{}{*groupFlag: g.Key, column: g.Value}
		}
		return rows, nil

	case "group_range":
		ranges, err := analytics.GroupRange(tracks, *groupFlag, *fieldFlag)
		if err != nil {
			return nil, err
		}
		rows := make([]map[string]interface{}, len(ranges))
		for i, g := range ranges {
			rows[i] = map[string]interface{}{*groupFlag: g.Key, "diff": g.Diff}
		}
		return rows, nil

	case "top_n":
		top, err := analytics.TopN(tracks, *fieldFlag, *nFlag, !*ascFlag)
		if err != nil {
			return nil, err
		}
		return tracksToRows(top), nil

	case "rank":
		ranked, err := analytics.RankWithinGroup(tracks, *groupFlag, *fieldFlag, *nFlag)
		if err != nil {
			return nil, err
		}
		rows := make([]map[string]interface{}, len(ranked))
		for i, r := range ranked {
			row := r.Track.Row()
			row["rank"] = r.Rank
			rows[i] = row
		}
		return rows, nil

	case "above_average":
		above, err := analytics.AboveAverage(tracks, *fieldFlag)
		if err != nil {
			return nil, err
		}
		return tracksToRows(above), nil

	case "ratio":
		ratios, err := analytics.RatioFilter(tracks, *fieldFlag, *field2Flag, *minRatioFlag)
		if err != nil {
			return nil, err
		}
		rows := make([]map[string]interface{}, len(ratios))
		for i, r := range ratios {
			row := r.Track.Row()
			row["ratio"] = r.Ratio
			rows[i] = row
		}
		return rows, nil

	case "cumulative":
		cumulative, err := analytics.CumulativeAggregate(tracks, *orderFlag, *fieldFlag)
		if err != nil {
			return nil, err
		}
		rows := make([]map[string]interface{}, len(cumulative))
		for i, c := range cumulative {
			row := c.Track.Row()
			row["cumulative"] = c.Cumulative
			rows[i] = row
		}
		return rows, nil

	case "platform_streams":
		rows := make([]map[string]interface{}, 0)
		for _, r := range analytics.ComparativePlatformStreams(tracks) {
			rows = append(rows, map[string]interface{}{
				"track":               r.Track,
				"streamed_on_spotify": r.StreamedOnSpotify,
				"streamed_on_youtube": r.StreamedOnYoutube,
			})
		}
		return rows, nil

	default:
		return nil, fmt.Errorf("unknown operation %q", op)
	}
}

// parseWhere parses a "field cmp value" predicate, e.g. "stream > 1000000".
// An empty clause yields a nil predicate, which matches every row.
func parseWhere(clause string) (func(analytics.Track) bool, error) {
	if clause == "" {
		return nil, nil
	}

	parts := strings.Fields(clause)
	if len(parts) != 3 {
		return nil, fmt.Errorf("invalid -where clause %q, expected \"field cmp value\"", clause)
	}

	field := parts[0]
	cmp, err := analytics.ParseComparator(parts[1])
	if err != nil {
		return nil, err
	}
	value, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid -where value %q: %w", parts[2], err)
	}

	// Validate the field once up front rather than per row.
	if _, _, err := analytics.NumericValue(analytics.Track{}, field); err != nil {
		return nil, err
	}

	return func(t analytics.Track) bool {
		matched, err := analytics.MatchThreshold(t, field, cmp, value)
		return err == nil && matched
	}, nil
}

func tracksToRows(tracks []analytics.Track) []map[string]interface{} {
	rows := make([]map[string]interface{}, len(tracks))
	for i, t := range tracks {
		rows[i] = t.Row()
	}
	return rows
}
