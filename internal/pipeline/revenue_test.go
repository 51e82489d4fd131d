package pipeline

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"boxoffice/internal/records"
)

func fptr(v float64) *float64 { return &v }

func TestTransformRevenues(t *testing.T) {
	recs := []records.RevenueRecord{
		{ID: "2023072101", Title: "Barbie", Date: "2023-07-21", Revenue: 70503178, Theaters: fptr(4243), Distributor: "Warner Bros."},
		{ID: "2023072102", Title: "Oppenheimer", Date: "2023-07-21", Revenue: 33000000, Distributor: "Universal Pictures"},
		{ID: "2023072201", Title: "Barbie", Date: "2023-07-22", Revenue: 48500000, Theaters: fptr(4337), Distributor: "Warner Bros."},
	}
	dists := NormalizeDistributors(recs)

	facts, titles, err := TransformRevenues(recs, dists, "2006-01-02")
	if err != nil {
		t.Fatalf("TransformRevenues: %v", err)
	}
	if len(facts) != 3 {
		t.Fatalf("facts = %d, want 3", len(facts))
	}

	// Same title keys the same movie, distinct titles distinct movies.
	if facts[0].MovieID != facts[2].MovieID {
		t.Errorf("Barbie rows keyed %d and %d, want equal", facts[0].MovieID, facts[2].MovieID)
	}
	if facts[0].MovieID == facts[1].MovieID {
		t.Errorf("Barbie and Oppenheimer share movie_id %d", facts[0].MovieID)
	}
	if facts[0].MovieID != TitleHash("Barbie") {
		t.Errorf("MovieID = %d, want TitleHash(Barbie) = %d", facts[0].MovieID, TitleHash("Barbie"))
	}

	if facts[0].DistributorID != 1 || facts[1].DistributorID != 2 {
		t.Errorf("distributor ids = %d, %d, want 1, 2", facts[0].DistributorID, facts[1].DistributorID)
	}
	if want := time.Date(2023, time.July, 21, 0, 0, 0, 0, time.UTC); !facts[0].Date.Equal(want) {
		t.Errorf("Date = %v, want %v", facts[0].Date, want)
	}
	if facts[0].ID != "2023072101" || facts[0].Revenue != 70503178 {
		t.Errorf("fact = %#v, want id 2023072101 revenue 70503178", facts[0])
	}
	if facts[0].Theaters == nil || *facts[0].Theaters != 4243 {
		t.Errorf("Theaters = %v, want 4243", facts[0].Theaters)
	}
	if facts[1].Theaters != nil {
		t.Errorf("Theaters = %v, want nil for empty feed cell", *facts[1].Theaters)
	}

	wantTitles := []TitleID{
		{Title: "Barbie", MovieID: TitleHash("Barbie")},
		{Title: "Oppenheimer", MovieID: TitleHash("Oppenheimer")},
	}
	if !reflect.DeepEqual(titles, wantTitles) {
		t.Errorf("titles = %#v, want %#v", titles, wantTitles)
	}
}

func TestTransformRevenues_UnknownDistributorDropped(t *testing.T) {
	recs := []records.RevenueRecord{
		{ID: "a", Title: "Barbie", Date: "2023-07-21", Revenue: 70503178, Distributor: "Warner Bros."},
		{ID: "b", Title: "Oppenheimer", Date: "2023-07-21", Revenue: 33000000, Distributor: "Universal Pictures"},
	}
	dists := []Distributor{{ID: 1, Name: "Warner Bros."}}

	facts, titles, err := TransformRevenues(recs, dists, "2006-01-02")
	if err != nil {
		t.Fatalf("TransformRevenues: %v", err)
	}
	if len(facts) != 1 || facts[0].ID != "a" {
		t.Fatalf("facts = %#v, want only row a", facts)
	}
	// Dropped rows contribute no titles either.
	if len(titles) != 1 || titles[0].Title != "Barbie" {
		t.Fatalf("titles = %#v, want only Barbie", titles)
	}
}

func TestTransformRevenues_BadDateAborts(t *testing.T) {
	recs := []records.RevenueRecord{
		{ID: "a", Title: "Barbie", Date: "2023-07-21", Revenue: 70503178, Distributor: "Warner Bros."},
		{ID: "b", Title: "Oppenheimer", Date: "07/21/2023", Revenue: 33000000, Distributor: "Warner Bros."},
	}
	dists := NormalizeDistributors(recs)

	facts, _, err := TransformRevenues(recs, dists, "2006-01-02")
	if err == nil {
		t.Fatal("expected error for malformed date, got nil")
	}
	if !strings.Contains(err.Error(), `date "07/21/2023"`) || !strings.Contains(err.Error(), "row 1") {
		t.Errorf("error = %v, want row 1 and the offending date named", err)
	}
	if facts != nil {
		t.Errorf("facts = %#v, want nil on abort", facts)
	}
}

func TestTitleHash(t *testing.T) {
	if a, b := TitleHash("Barbie"), TitleHash("Barbie"); a != b {
		t.Errorf("TitleHash not deterministic: %d != %d", a, b)
	}
	if TitleHash("Barbie") == TitleHash("Oppenheimer") {
		t.Error("distinct titles hashed to the same key")
	}
	for _, title := range []string{"", "Barbie", "Mission: Impossible - Dead Reckoning Part One", "千と千尋の神隠し"} {
		h := TitleHash(title)
		if h < 0 || h > 0xffffffff {
			t.Errorf("TitleHash(%q) = %d, outside 32-bit range", title, h)
		}
	}
}
