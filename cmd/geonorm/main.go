package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/beetlebugorg/geonorm/internal/config"
	"github.com/beetlebugorg/geonorm/internal/logger"
	"github.com/beetlebugorg/geonorm/pkg/geonorm"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string `short:"c" long:"config" env:"CONFIG_FILE" description:"Path to a YAML job configuration file"`
	Input      string `short:"i" long:"in" description:"Input file path (ignored when --config is set)"`
	Format     string `short:"f" long:"format" description:"Input format" choice:"hex" choice:"gml" default:"hex"`
	GeomColumn string `short:"g" long:"geometry-column" description:"Geometry column name for hex input" default:"geometry"`
	Output     string `short:"o" long:"out" description:"Output file path. Writes to stdout if empty"`
	Parallel   bool   `short:"P" long:"parallel" description:"Decode record geometries concurrently"`
	Workers    int    `short:"w" long:"workers" description:"Decode goroutines when --parallel is set (0 = NumCPU)"`
}

func main() {
	var opts Options
	flagParser := flags.NewParser(&opts, flags.Default)
	if _, err := flagParser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	jobs, parseOpts := buildJobs(&opts)

	parser := geonorm.NewParser()
	failed := 0
	for _, job := range jobs {
		if err := runJob(parser, job, parseOpts); err != nil {
			log.Error().Err(err).Str("input", job.Input).Msg("Normalization failed")
			failed++
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}

// buildJobs resolves the job list from the config file or from flags.
func buildJobs(opts *Options) ([]config.Job, geonorm.ParseOptions) {
	parseOpts := geonorm.DefaultParseOptions()
	parseOpts.Parallel = opts.Parallel
	parseOpts.Workers = opts.Workers

	if opts.ConfigFile != "" {
		cfg, err := config.Load(opts.ConfigFile)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}
		parseOpts.Parallel = parseOpts.Parallel || cfg.Parallel
		if cfg.Workers > 0 {
			parseOpts.Workers = cfg.Workers
		}
		return cfg.Jobs, parseOpts
	}

	if opts.Input == "" {
		log.Fatal().Msg("Either --config or --in is required")
	}
	return []config.Job{{
		Input:          opts.Input,
		Format:         opts.Format,
		GeometryColumn: opts.GeomColumn,
		Output:         opts.Output,
	}}, parseOpts
}

// runJob normalizes one input file and writes the GeoJSON result.
func runJob(parser geonorm.Parser, job config.Job, opts geonorm.ParseOptions) error {
	data, err := os.ReadFile(job.Input)
	if err != nil {
		return err
	}

	var batch *geonorm.Batch
	switch job.Format {
	case "gml":
		batch, err = parser.ParseGML(data, opts)
	default:
		records, readErr := readHexRecords(data, job.GeometryColumn)
		if readErr != nil {
			return readErr
		}
		batch, err = parser.ParseHexRecords(records, opts)
	}
	if err != nil {
		return err
	}

	// One summary warning per batch, never one per dropped record.
	diag := batch.Diagnostics()
	if diag.Skipped+diag.Failed > 0 {
		log.Warn().
			Str("input", job.Input).
			Int("skipped", diag.Skipped).
			Int("failed", diag.Failed).
			Msg("Some records had no usable geometry")
	}
	log.Info().
		Str("input", job.Input).
		Int("features", batch.FeatureCount()).
		Msg("Normalized batch")

	out, err := json.MarshalIndent(batch.ToGeoJSON(), "", "  ")
	if err != nil {
		return err
	}
	if job.Output == "" {
		_, err = os.Stdout.Write(append(out, '\n'))
		return err
	}
	return os.WriteFile(job.Output, out, 0644)
}

// readHexRecords parses delimited text (comma, semicolon, or tab) into raw
// records, taking the geometry hex from the named column.
func readHexRecords(data []byte, geomColumn string) ([]geonorm.Record, error) {
	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.Comma = detectDelimiter(data)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("input is empty")
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("input has a header but no data rows")
	}

	header := make([]string, len(rows[0]))
	for i, name := range rows[0] {
		header[i] = strings.TrimSpace(name)
	}

	records := make([]geonorm.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := geonorm.Record{
			Columns: make([]string, 0, len(header)),
			Values:  make(map[string]geonorm.Value, len(header)),
		}
		for i, cell := range row {
			if i >= len(header) {
				break
			}
			name := header[i]
			if name == geomColumn {
				rec.GeomHex = strings.TrimSpace(cell)
				continue
			}
			rec.Columns = append(rec.Columns, name)
			rec.Values[name] = cellValue(cell)
		}
		records = append(records, rec)
	}

	return records, nil
}

// cellValue converts a text cell into the closed attribute value variant.
func cellValue(cell string) geonorm.Value {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return geonorm.NullValue()
	}
	if n, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return geonorm.NumberValue(n)
	}
	return geonorm.StringValue(trimmed)
}

// detectDelimiter picks the delimiter by frequency in the header line.
func detectDelimiter(data []byte) rune {
	line := string(data)
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = line[:idx]
	}

	best, bestCount := ',', strings.Count(line, ",")
	if c := strings.Count(line, ";"); c > bestCount {
		best, bestCount = ';', c
	}
	if c := strings.Count(line, "\t"); c > bestCount {
		best = '\t'
	}
	return best
}
