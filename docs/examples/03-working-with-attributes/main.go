package main

import (
	"fmt"
	"log"
	"os"

	"github.com/beetlebugorg/geonorm/pkg/geonorm"
)

func printFeatureDetails(feature geonorm.Feature) {
	fmt.Printf("Feature: %s\n", feature.ID())

	attrs := feature.Attributes()

	// Parcel number (if present)
	if numer, ok := attrs["numer"]; ok && !numer.IsNull() {
		fmt.Printf("  Number: %s\n", numer.String())
	}

	// Numeric attributes keep their kind
	if area, ok := attrs["area"]; ok {
		if n, isNum := area.Number(); isNum {
			fmt.Printf("  Area: %.2f\n", n)
		}
	}
}

func main() {
	data, err := os.ReadFile("parcels.xml")
	if err != nil {
		log.Fatal(err)
	}

	parser := geonorm.NewParser()
	batch, err := parser.ParseGML(data, geonorm.DefaultParseOptions())
	if err != nil {
		log.Fatal(err)
	}

	// The column manifest lists every attribute seen across the batch,
	// starting with the fixed id and geometry columns.
	fmt.Printf("Columns: %v\n\n", batch.Columns())

	for _, feature := range batch.Features() {
		printFeatureDetails(feature)
	}

	// Records that contributed no feature are summarized, not dropped
	// silently.
	diag := batch.Diagnostics()
	if diag.Skipped+diag.Failed > 0 {
		fmt.Printf("\nSkipped %d, failed %d records\n", diag.Skipped, diag.Failed)
	}
}
