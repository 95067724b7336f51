package ticketmaster

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"livemusicnotes/internal/models"
)

// Sink receives parsed events. ArtistName is always populated by the
// time a sink sees the event; unnamed local acts have been assigned a
// placeholder.
type Sink interface {
	Write(ctx context.Context, ev Event) error
}

// Summary reports what one ingestion run did.
type Summary struct {
	Events       int `json:"events"`
	Artists      int `json:"artists_created"`
	Venues       int `json:"venues_created"`
	Shows        int `json:"shows_created"`
	LocalArtists int `json:"local_artists"`
	Skipped      int `json:"skipped"`
}

// Ingestor fetches events and feeds them to a sink, assigning
// placeholder names to events whose headliner the API does not name.
type Ingestor struct {
	client *Client
	sink   Sink
	log    zerolog.Logger
}

// NewIngestor wires a client to a sink.
func NewIngestor(client *Client, sink Sink, log zerolog.Logger) *Ingestor {
	return &Ingestor{
		client: client,
		sink:   sink,
		log:    log.With().Str("component", "ingest").Logger(),
	}
}

// Run fetches every event matching the query and writes each to the
// sink. A sink failure on one event is logged and skipped rather than
// aborting the run.
func (in *Ingestor) Run(ctx context.Context, query EventQuery) (Summary, error) {
	events, err := in.client.Events(ctx, query)
	if err != nil {
		return Summary{}, fmt.Errorf("fetch events: %w", err)
	}

	var summary Summary
	localArtists := 0
	for _, ev := range events {
		if ev.ArtistName == "" {
			localArtists++
			ev.ArtistName = fmt.Sprintf("Local Artist %d", localArtists)
		}

		if err := in.sink.Write(ctx, ev); err != nil {
			if ctx.Err() != nil {
				return summary, ctx.Err()
			}
			summary.Skipped++
			in.log.Warn().Err(err).Str("event", ev.Name).Msg("skipping event")
			continue
		}
		summary.Events++
	}
	summary.LocalArtists = localArtists

	if counter, ok := in.sink.(interface{ counts(*Summary) }); ok {
		counter.counts(&summary)
	}

	in.log.Info().
		Int("events", summary.Events).
		Int("skipped", summary.Skipped).
		Int("local_artists", summary.LocalArtists).
		Msg("ingestion run complete")

	return summary, nil
}

// DBSink persists events through the store's get-or-create paths.
type DBSink struct {
	store dbCatalog

	artists int
	venues  int
	shows   int
}

// dbCatalog matches the store's get-or-create methods, which make
// repeated ingestion runs idempotent.
type dbCatalog interface {
	GetOrCreateArtist(ctx context.Context, name string) (*models.Artist, bool, error)
	GetOrCreateVenue(ctx context.Context, name, city, state string) (*models.Venue, bool, error)
	GetOrCreateShow(ctx context.Context, showDate time.Time, artistID, venueID int64) (*models.Show, bool, error)
}

// NewDBSink writes events into the catalog tables.
func NewDBSink(store dbCatalog) *DBSink {
	return &DBSink{store: store}
}

func (s *DBSink) Write(ctx context.Context, ev Event) error {
	// The venues table stores the two-letter state code. Events whose
	// venue carries anything else are skipped by the ingestor.
	state := strings.ToUpper(ev.Venue.StateCode)
	if len(state) != 2 {
		return fmt.Errorf("venue %q: no two-letter state code (got %q)", ev.Venue.Name, ev.Venue.StateCode)
	}

	venue, createdVenue, err := s.store.GetOrCreateVenue(ctx, ev.Venue.Name, ev.Venue.City, state)
	if err != nil {
		return fmt.Errorf("venue %q: %w", ev.Venue.Name, err)
	}
	if createdVenue {
		s.venues++
	}

	artist, createdArtist, err := s.store.GetOrCreateArtist(ctx, ev.ArtistName)
	if err != nil {
		return fmt.Errorf("artist %q: %w", ev.ArtistName, err)
	}
	if createdArtist {
		s.artists++
	}

	_, createdShow, err := s.store.GetOrCreateShow(ctx, ev.ShowDate, artist.ID, venue.ID)
	if err != nil {
		return fmt.Errorf("show %q at %q: %w", ev.ArtistName, ev.Venue.Name, err)
	}
	if createdShow {
		s.shows++
	}

	return nil
}

func (s *DBSink) counts(summary *Summary) {
	summary.Artists = s.artists
	summary.Venues = s.venues
	summary.Shows = s.shows
}

// TextSink writes a human-readable listing, one block per event.
type TextSink struct {
	w io.Writer
	n int
}

// NewTextSink writes formatted event blocks to w.
func NewTextSink(w io.Writer) *TextSink {
	return &TextSink{w: w}
}

func (s *TextSink) Write(_ context.Context, ev Event) error {
	s.n++
	_, err := fmt.Fprintf(s.w,
		"--Show%d--\nShow: %s\nDate: %s\nVenue: %s (%s, %s)\nArtist: %s\n\n",
		s.n, ev.Name, ev.ShowDate.Format("2006-01-02 15:04:05"),
		ev.Venue.Name, ev.Venue.City, ev.Venue.State,
		ev.ArtistName,
	)
	return err
}

// JSONSink writes each event as one JSON document per line.
type JSONSink struct {
	enc *json.Encoder
}

// NewJSONSink streams events to w as JSON lines.
func NewJSONSink(w io.Writer) *JSONSink {
	return &JSONSink{enc: json.NewEncoder(w)}
}

func (s *JSONSink) Write(_ context.Context, ev Event) error {
	return s.enc.Encode(struct {
		Name       string     `json:"name"`
		ShowDate   string     `json:"show_date"`
		ArtistName string     `json:"artist_name"`
		Venue      EventVenue `json:"venue"`
	}{
		Name:       ev.Name,
		ShowDate:   ev.ShowDate.Format("2006-01-02 15:04:05"),
		ArtistName: ev.ArtistName,
		Venue:      ev.Venue,
	})
}
