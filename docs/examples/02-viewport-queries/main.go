package main

import (
	"fmt"
	"log"
	"os"

	"github.com/beetlebugorg/geonorm/pkg/geonorm"
)

func main() {
	// Normalize a feature collection
	data, err := os.ReadFile("parcels.xml")
	if err != nil {
		log.Fatal(err)
	}

	parser := geonorm.NewParser()
	batch, err := parser.ParseGML(data, geonorm.DefaultParseOptions())
	if err != nil {
		log.Fatal(err)
	}

	// Define viewport (central Warsaw)
	viewport := geonorm.Bounds{
		MinLon: 20.9, MaxLon: 21.1,
		MinLat: 52.1, MaxLat: 52.3,
	}

	// Query R-tree index for visible features (O(log n))
	features := batch.FeaturesInBounds(viewport)

	fmt.Printf("Visible features: %d\n", len(features))

	for _, feature := range features {
		geom := feature.Geometry()
		fmt.Printf("  %s: %s\n", feature.ID(), geom.Type)
	}
}
