// Package seed generates synthetic grocery products for local development.
package seed

import (
	"fmt"
	"math"
	"strings"

	"github.com/jaswdr/faker"

	"github.com/spesa/search-service/internal/search"
	"github.com/spesa/search-service/internal/types"
)

var groceries = []string{"conad", "coop", "esselunga", "carrefour", "lidl", "eurospin", "pam", "despar"}

var products = []string{
	"latte intero", "latte parzialmente scremato", "pane comune", "pane integrale",
	"uova fresche", "burro", "yogurt bianco", "mozzarella", "parmigiano reggiano",
	"prosciutto cotto", "pasta spaghetti", "pasta penne", "riso carnaroli",
	"passata di pomodoro", "olio extravergine di oliva", "caffè macinato",
	"zucchero", "farina 00", "acqua naturale", "biscotti frollini",
	"mele golden", "banane", "patate", "cipolle", "insalata iceberg",
	"tonno in scatola", "ceci lessati", "detersivo piatti", "carta igienica",
}

// Options controls generation.
type Options struct {
	Count int
	// Stores is the number of distinct store locations.
	Stores   int
	Center   types.Position
	RadiusKm float64
}

// DefaultOptions returns options centered on Torino.
func DefaultOptions() Options {
	return Options{
		Count:    1000,
		Stores:   12,
		Center:   types.Position{Latitude: 45.0703, Longitude: 7.6869},
		RadiusKm: 20,
	}
}

type store struct {
	grocery string
	lat     float64
	lon     float64
}

// Generate returns opts.Count documents spread over opts.Stores stores
// located within opts.RadiusKm of opts.Center.
func Generate(fake faker.Faker, opts Options) ([]search.Document, error) {
	if opts.Count < 1 {
		return nil, fmt.Errorf("count must be at least 1")
	}
	if opts.Stores < 1 {
		opts.Stores = 1
	}
	if err := opts.Center.Validate(); err != nil {
		return nil, err
	}

	stores := make([]store, opts.Stores)
	for i := range stores {
		grocery := groceries[i%len(groceries)]
		if i >= len(groceries) {
			grocery = fmt.Sprintf("%s %d", grocery, i/len(groceries)+1)
		}
		lat, lon := scatter(fake, opts.Center, opts.RadiusKm)
		stores[i] = store{grocery: grocery, lat: lat, lon: lon}
	}

	docs := make([]search.Document, 0, opts.Count)
	for i := 0; i < opts.Count; i++ {
		s := stores[fake.IntBetween(0, len(stores)-1)]
		name := fake.RandomStringElement(products)
		brand := fake.Company().Name()

		doc := search.Document{
			ID:           fake.UUID().V4(),
			Name:         name,
			FullName:     strings.TrimSpace(name + " " + brand),
			Description:  fake.Lorem().Sentence(8),
			CurrentPrice: fake.Float64(2, 0, 15) + 0.29,
			Grocery:      s.grocery,
			Lat:          s.lat,
			Lon:          s.lon,
		}
		if fake.IntBetween(0, 4) == 0 {
			discount := fake.Float64(2, 5, 40) / 100
			doc.Discount = &discount
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// scatter returns a point at most radiusKm from center.
func scatter(fake faker.Faker, center types.Position, radiusKm float64) (float64, float64) {
	const kmPerDegree = 111.32

	r := radiusKm * math.Sqrt(fake.Float64(6, 0, 1))
	theta := fake.Float64(6, 0, 360) * math.Pi / 180

	dLat := r * math.Cos(theta) / kmPerDegree
	dLon := r * math.Sin(theta) / (kmPerDegree * math.Cos(center.Latitude*math.Pi/180))
	return center.Latitude + dLat, center.Longitude + dLon
}
