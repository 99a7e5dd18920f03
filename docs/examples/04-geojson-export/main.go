package main

import (
	"encoding/csv"
	"encoding/json"
	"log"
	"os"

	"github.com/beetlebugorg/geonorm/pkg/geonorm"
)

func main() {
	// Read delimited rows with a hex-encoded geometry column
	f, err := os.Open("parcels.csv")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		log.Fatal(err)
	}

	header := rows[0]
	records := make([]geonorm.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := geonorm.Record{Values: make(map[string]geonorm.Value)}
		for i, cell := range row {
			if header[i] == "geometry" {
				rec.GeomHex = cell
				continue
			}
			rec.Columns = append(rec.Columns, header[i])
			rec.Values[header[i]] = geonorm.StringValue(cell)
		}
		records = append(records, rec)
	}

	// Decode geometries concurrently
	opts := geonorm.DefaultParseOptions()
	opts.Parallel = true

	parser := geonorm.NewParser()
	batch, err := parser.ParseHexRecords(records, opts)
	if err != nil {
		log.Fatal(err)
	}

	// Export as GeoJSON
	out, err := json.MarshalIndent(batch.ToGeoJSON(), "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	os.Stdout.Write(out)
}
