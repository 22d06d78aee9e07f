package main

import (
	"context"
	"flag"
	"iter"
	"log/slog"
	"os"
	"slices"

	"github.com/poiesic/helpmatch"
	"github.com/poiesic/helpmatch/core"
	"github.com/poiesic/helpmatch/storage/csvfile"
)

var demoVolunteers = []*core.Volunteer{
	{Name: "Asha Menon", Location: "Kochi", Skills: "math tutoring, physics", LanguagesSpoken: "English,Malayalam", PreferredServiceAreas: "education, exam preparation", Rating: 4.8, Status: core.StatusActive, Transportation: core.TransportationYes, WillingnessToTravel: core.WillingnessHigh},
	{Name: "Ravi Kumar", Location: "Chennai", Skills: "first aid, nursing", LanguagesSpoken: "Tamil,English", PreferredServiceAreas: "healthcare, elderly care", Rating: 4.5, Status: core.StatusActive, Transportation: core.TransportationYes, WillingnessToTravel: core.WillingnessModerate},
	{Name: "Maria Lopez", Location: "Austin", Skills: "spanish translation, interpreting", LanguagesSpoken: "Spanish,English", PreferredServiceAreas: "legal aid, immigration paperwork", Rating: 4.9, Status: core.StatusActive, Transportation: core.TransportationNo, WillingnessToTravel: core.WillingnessLow},
	{Name: "Tom Becker", Location: "Austin", Skills: "carpentry, home repair", LanguagesSpoken: "English,German", PreferredServiceAreas: "housing, disaster relief", Rating: 4.1, Status: core.StatusActive, Transportation: core.TransportationYes, WillingnessToTravel: core.WillingnessHigh},
	{Name: "Priya Shah", Location: "Mumbai", Skills: "counselling, active listening", LanguagesSpoken: "Hindi,Gujarati,English", PreferredServiceAreas: "mental health support", Rating: 4.7, Status: core.StatusActive, Transportation: core.TransportationNo, WillingnessToTravel: core.WillingnessModerate},
	{Name: "Li Wei", Location: "Singapore", Skills: "web development, computer literacy", LanguagesSpoken: "Mandarin,English", PreferredServiceAreas: "digital skills, education", Rating: 4.3, Status: core.StatusActive, Transportation: core.TransportationNo, WillingnessToTravel: core.WillingnessLow},
	{Name: "Fatima Noor", Location: "Chennai", Skills: "cooking, meal delivery", LanguagesSpoken: "Urdu,Tamil,English", PreferredServiceAreas: "food security, elderly care", Rating: 4.6, Status: core.StatusActive, Transportation: core.TransportationYes, WillingnessToTravel: core.WillingnessHigh},
	{Name: "John Okafor", Location: "Lagos", Skills: "accounting, tax filing", LanguagesSpoken: "English,Yoruba", PreferredServiceAreas: "financial literacy", Rating: 3.9, Status: core.StatusInactive, Transportation: core.TransportationNo, WillingnessToTravel: core.WillingnessLow},
	{Name: "Elena Petrova", Location: "Kochi", Skills: "piano lessons, music theory", LanguagesSpoken: "Russian,English", PreferredServiceAreas: "arts, youth programs", Rating: 4.4, Status: core.StatusActive, Transportation: core.TransportationYes, WillingnessToTravel: core.WillingnessModerate},
	{Name: "Sam Carter", Location: "Austin", Skills: "driving, logistics", LanguagesSpoken: "English", PreferredServiceAreas: "transport, disaster relief", Rating: 4.0, Status: core.StatusActive, Transportation: core.TransportationYes, WillingnessToTravel: core.WillingnessHigh},
}

var demoRequests = []*core.HelpRequest{
	{Category: "Education", Location: "Kochi", RequestType: core.RequestTypeRemote, PriorityLevel: "High", Subject: "Algebra tutoring", Description: "Need help preparing for a math exam", LanguagePreferred: "English", Status: "Open", Duration: 2},
	{Category: "Healthcare", Location: "Chennai", RequestType: core.RequestTypeInPerson, PriorityLevel: "Critical", IsCalamity: "Yes", Subject: "Wound care", Description: "Elderly neighbour needs first aid and dressing changes", LanguagePreferred: "Tamil", Status: "Open", Duration: 1},
	{Category: "Legal", Location: "Austin", RequestType: core.RequestTypeRemote, PriorityLevel: "Medium", Subject: "Immigration forms", Description: "Translate and explain immigration paperwork", LanguagePreferred: "Spanish", Status: "Open", Duration: 3},
	{Category: "Housing", Location: "Austin", RequestType: core.RequestTypeInPerson, PriorityLevel: "High", IsCalamity: "Yes", Subject: "Storm damage", Description: "Roof and window repair after the storm", LanguagePreferred: "English", Status: "Open", Duration: 6},
	{Category: "Mental Health", Location: "Mumbai", RequestType: core.RequestTypeRemote, PriorityLevel: "High", Subject: "Someone to talk to", Description: "Looking for counselling support during a hard time", LanguagePreferred: "Hindi", Status: "Open", Duration: 1},
}

var (
	dbPath         = flag.String("db", "./helpmatch_db", "database directory")
	volunteersFile = flag.String("volunteers", "", "volunteer CSV file (default: built-in demo data)")
	requestsFile   = flag.String("requests", "", "help request CSV file (default: built-in demo data)")
	batchSize      = flag.Int("batch", 5, "records per ingestion batch")
)

// ingestBatched drains source into ingest in batches of batchSize.
func ingestBatched[T any](ctx context.Context, source iter.Seq[T], batchSize int, ingest func(context.Context, ...T) error) (int, error) {
	total := 0
	for batch := range chunked(source, batchSize) {
		if err := ingest(ctx, batch...); err != nil {
			return total, err
		}
		total += len(batch)
	}
	return total, nil
}

// chunked groups source into slices of at most size elements.
func chunked[T any](source iter.Seq[T], size int) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		size = max(size, 1)
		batch := make([]T, 0, size)
		for item := range source {
			batch = append(batch, item)
			if len(batch) == size {
				if !yield(batch) {
					return
				}
				batch = make([]T, 0, size)
			}
		}
		if len(batch) > 0 {
			yield(batch)
		}
	}
}

func volunteerSource() (iter.Seq[*core.Volunteer], error) {
	if *volunteersFile == "" {
		return slices.Values(demoVolunteers), nil
	}
	vols, err := csvfile.LoadVolunteers(*volunteersFile)
	if err != nil {
		return nil, err
	}
	return slices.Values(vols), nil
}

func requestSource() (iter.Seq[*core.HelpRequest], error) {
	if *requestsFile == "" {
		return slices.Values(demoRequests), nil
	}
	reqs, err := csvfile.LoadRequests(*requestsFile)
	if err != nil {
		return nil, err
	}
	return slices.Values(reqs), nil
}

func main() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()

	db, err := helpmatch.NewDatabase(*dbPath)
	if err != nil {
		panic(err)
	}
	defer db.Close()

	ingester, err := db.NewIngestionPipeline()
	if err != nil {
		panic(err)
	}
	defer ingester.Release()

	ctx := context.Background()

	vols, err := volunteerSource()
	if err != nil {
		panic(err)
	}
	reqs, err := requestSource()
	if err != nil {
		panic(err)
	}

	nVols, err := ingestBatched(ctx, vols, *batchSize, discardResult(ingester.IngestVolunteers))
	if err != nil {
		panic(err)
	}
	nReqs, err := ingestBatched(ctx, reqs, *batchSize, discardResult(ingester.IngestRequests))
	if err != nil {
		panic(err)
	}

	slog.Info("seeded database", "path", *dbPath, "volunteers", nVols, "requests", nReqs)
}

// discardResult adapts a pipeline ingest method to ingestBatched.
func discardResult[T any](fn func(context.Context, ...T) ([]T, error)) func(context.Context, ...T) error {
	return func(ctx context.Context, items ...T) error {
		_, err := fn(ctx, items...)
		return err
	}
}
