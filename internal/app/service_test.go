package service_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	service "github.com/okian/pitchside/internal/app"
	"github.com/okian/pitchside/internal/adapters/repository"
	"github.com/okian/pitchside/internal/domain/model"
	"github.com/okian/pitchside/internal/domain/pitch"
	"github.com/okian/pitchside/internal/domain/roster"
	"github.com/okian/pitchside/internal/domain/stats"
	"github.com/okian/pitchside/internal/sampledata"
	"github.com/okian/pitchside/pkg/logger"
	"github.com/okian/pitchside/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

type stubSource struct {
	name string
	rows []model.Player
	err  error
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Read(context.Context) ([]model.Player, error) {
	return append([]model.Player(nil), s.rows...), s.err
}

func sampleService(opts ...service.Option) *service.Service {
	starting, bench, err := sampledata.Sources()
	So(err, ShouldBeNil)
	svc := service.New(append([]service.Option{service.WithSources(starting, bench)}, opts...)...)
	So(svc.Start(context.Background()), ShouldBeNil)
	return svc
}

func counterTotal(g prometheus.Gatherer, name string) float64 {
	mfs, err := g.Gather()
	So(err, ShouldBeNil)
	var total float64
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			total += m.GetCounter().GetValue()
		}
	}
	return total
}

func TestService_Start(t *testing.T) {
	Convey("Given a service with default options", t, func() {
		svc := service.New()
		defer svc.Stop()

		Convey("When starting the service", func() {
			err := svc.Start(context.Background())

			Convey("Then it should start successfully", func() {
				So(err, ShouldBeNil)
				So(svc.GetStats()["started"], ShouldEqual, true)
				So(svc.Layout().Capacity(pitch.Midfield), ShouldEqual, 4)
				So(svc.Attributes(), ShouldResemble, stats.SkillAttributes())
			})

			Convey("And starting twice is harmless", func() {
				So(svc.Start(context.Background()), ShouldBeNil)
			})
		})
	})

	Convey("Given a layout with an empty bucket", t, func() {
		svc := service.New(service.WithLayout(pitch.Layout{Buckets: []pitch.Bucket{{Name: "GK"}}}))

		Convey("Then start fails", func() {
			So(errors.Is(svc.Start(context.Background()), pitch.ErrNoSlots), ShouldBeTrue)
		})
	})

	Convey("Given an unknown attribute", t, func() {
		svc := service.New(service.WithAttributes([]model.Attribute{"stamina"}))

		Convey("Then start fails", func() {
			So(errors.Is(svc.Start(context.Background()), stats.ErrUnknownAttribute), ShouldBeTrue)
		})
	})
}

func TestService_Dashboard(t *testing.T) {
	Convey("Given a service over the sample squad", t, func() {
		ctx := context.Background()
		svc := sampleService(service.WithGeoJSONURL("https://example.test/countries.geojson"))
		defer svc.Stop()

		Convey("When the unfiltered dashboard is requested", func() {
			d, err := svc.Dashboard(ctx, service.Query{})
			So(err, ShouldBeNil)

			Convey("Then every player is counted", func() {
				So(d.RunID, ShouldNotBeEmpty)
				So(d.Club, ShouldEqual, "Bristol City")
				So(d.Summary.TotalPlayers, ShouldEqual, 18)
				So(d.Players, ShouldHaveLength, 18)
				So(d.Unmapped, ShouldBeEmpty)
				So(d.DuplicateIDs, ShouldBeEmpty)
				So(d.GeoJSONURL, ShouldEqual, "https://example.test/countries.geojson")
			})

			Convey("Then the default selection lists values by first appearance", func() {
				So(d.Available.Statuses, ShouldResemble, []string{"Starting 11", "Bench"})
				So(d.Selection, ShouldResemble, d.Available)
				So(d.Available.Positions, ShouldResemble,
					[]string{sampledata.Goalkeeper, sampledata.Defender, sampledata.Midfielder, sampledata.Forward})
			})

			Convey("Then the pitch shows only starters and the bench table only substitutes", func() {
				So(d.Pitch, ShouldHaveLength, 11)
				for _, p := range d.Pitch {
					So(p.Status, ShouldEqual, model.StatusStarting)
					So(p.Mapped, ShouldBeTrue)
				}
				So(d.Bench, ShouldHaveLength, 7)
				for i := 1; i < len(d.Bench); i++ {
					So(d.Bench[i-1].ValueEUR, ShouldBeGreaterThanOrEqualTo, d.Bench[i].ValueEUR)
				}
			})

			Convey("Then the aggregates are filled", func() {
				So(d.Summary.AvgAge.Valid, ShouldBeTrue)
				So(d.Display.AvgMarketValue, ShouldEndWith, "M")
				So(d.BestByPosition, ShouldHaveLength, 4)
				So(d.BestByPosition[0].GeneralPosition, ShouldEqual, sampledata.Defender)
				So(d.Correlation.Values, ShouldHaveLength, 6)
				So(d.AgeHistogram, ShouldHaveLength, stats.DefaultAgeBins)
				So(d.SalaryPerformance, ShouldHaveLength, 18)
				So(d.Nationalities, ShouldHaveLength, 18)
			})
		})

		Convey("When only the bench is selected", func() {
			d, err := svc.Dashboard(ctx, service.Query{Statuses: []string{"Bench"}})

			Convey("Then seven players remain and the pitch is empty", func() {
				So(err, ShouldBeNil)
				So(d.Summary.TotalPlayers, ShouldEqual, 7)
				So(d.Pitch, ShouldBeEmpty)
				So(d.Bench, ShouldHaveLength, 7)
				So(d.Available.Statuses, ShouldHaveLength, 2)
			})
		})

		Convey("When a field is explicitly empty", func() {
			d, err := svc.Dashboard(ctx, service.Query{Nationalities: []string{}})

			Convey("Then the set is empty and aggregates are undefined", func() {
				So(err, ShouldBeNil)
				So(d.Summary.TotalPlayers, ShouldEqual, 0)
				So(d.Summary.AvgMarketValue.Valid, ShouldBeFalse)
				So(d.Display.TotalTeamValue, ShouldEqual, stats.NotAvailable)
				So(d.Correlation.Empty(), ShouldBeTrue)
				So(d.AgeHistogram, ShouldBeEmpty)
				So(d.BestByPosition, ShouldBeEmpty)
			})
		})

		Convey("When the roster and pitch views are requested", func() {
			view, err := svc.Roster(ctx, service.Query{Positions: []string{sampledata.Defender}})
			So(err, ShouldBeNil)
			placements, err := svc.Pitch(ctx, service.Query{})
			So(err, ShouldBeNil)

			Convey("Then they carry the filtered placements", func() {
				So(view.RunID, ShouldNotBeEmpty)
				So(view.Players, ShouldHaveLength, 5)
				So(view.Players[0].Bucket, ShouldEqual, pitch.Defence)
				So(placements, ShouldHaveLength, 11)
				So(placements[0].XPosition, ShouldEqual, 5)
				So(placements[0].YPosition, ShouldEqual, 34)
			})
		})

		Convey("When the stats are read after runs", func() {
			_, _ = svc.Options(ctx)
			st := svc.GetStats()

			Convey("Then runs are counted", func() {
				So(st["runs"], ShouldBeGreaterThan, int64(0))
				So(st["starting"], ShouldEqual, "sample-starting")
				So(st, ShouldContainKey, "lastRun")
			})
		})
	})
}

func TestService_PlayerViews(t *testing.T) {
	Convey("Given a service over the sample squad", t, func() {
		ctx := context.Background()
		svc := sampleService()

		Convey("When a player card is requested", func() {
			card, err := svc.PlayerCard(ctx, service.Query{}, 900010)

			Convey("Then it carries formatted money, ratings and image", func() {
				So(err, ShouldBeNil)
				So(card.Name, ShouldEqual, "N. Haldorsen")
				So(card.Nationality, ShouldEqual, "Norway")
				So(card.Value, ShouldEqual, "4,800,000")
				So(card.Wage, ShouldEqual, "21,000")
				So(card.Image, ShouldEqual, "/media/players/900010.jpg")
				So(card.Attributes, ShouldHaveLength, 6)
				So(card.Attributes[0], ShouldResemble, service.AttributeScore{Attribute: model.Pace, Value: 70})
			})
		})

		Convey("When the player is filtered out", func() {
			_, err := svc.PlayerCard(ctx, service.Query{Statuses: []string{"Bench"}}, 900010)

			Convey("Then the player is not found", func() {
				So(errors.Is(err, service.ErrPlayerNotFound), ShouldBeTrue)
			})
		})

		Convey("When two players are compared", func() {
			c, err := svc.Compare(ctx, service.Query{}, 900009, 900018)

			Convey("Then both radar series follow the attribute order", func() {
				So(err, ShouldBeNil)
				So(c.Min, ShouldEqual, 0)
				So(c.Max, ShouldEqual, 100)
				So(c.Players, ShouldHaveLength, 2)
				So(c.Players[0].Values, ShouldResemble, []int{88, 69, 63, 75, 30, 62})
				So(c.Players[1].Name, ShouldEqual, "W. Laing")
			})
		})

		Convey("When one compared player is unknown", func() {
			_, err := svc.Compare(ctx, service.Query{}, 900009, 1)

			Convey("Then the comparison fails", func() {
				So(errors.Is(err, service.ErrPlayerNotFound), ShouldBeTrue)
			})
		})
	})
}

func TestService_Export(t *testing.T) {
	Convey("Given a service over the sample squad", t, func() {
		ctx := context.Background()
		svc := sampleService(service.WithExportSheet("Squad"))

		Convey("When the starters are exported", func() {
			var buf bytes.Buffer
			err := svc.Export(ctx, service.Query{Statuses: []string{"Starting 11"}}, &buf)
			So(err, ShouldBeNil)

			Convey("Then the workbook holds the filtered rows", func() {
				path := filepath.Join(t.TempDir(), "export.xlsx")
				So(os.WriteFile(path, buf.Bytes(), 0o600), ShouldBeNil)
				players, err := repository.NewXLSXSource(path, repository.WithSheet("Squad")).Read(ctx)
				So(err, ShouldBeNil)
				So(players, ShouldHaveLength, 11)
			})
		})
	})
}

func TestService_Failures(t *testing.T) {
	Convey("Given a service whose bench file is missing", t, func() {
		ctx := context.Background()
		starting, _, err := sampledata.Sources()
		So(err, ShouldBeNil)
		missing := repository.NewCSVSource(filepath.Join(t.TempDir(), "bench.csv"))
		svc := service.New(service.WithSources(starting, missing))

		Convey("When the dashboard is requested", func() {
			_, err := svc.Dashboard(ctx, service.Query{})

			Convey("Then the run fails as missing source", func() {
				So(errors.Is(err, roster.ErrMissingSource), ShouldBeTrue)
				So(service.Outcome(err), ShouldEqual, service.OutcomeMissingSource)
				So(svc.GetStats()["failures"], ShouldEqual, int64(1))
			})
		})
	})

	Convey("Given a source whose read is cancelled", t, func() {
		ctx := context.Background()
		starting, _, err := sampledata.Sources()
		So(err, ShouldBeNil)
		cancelled := &stubSource{name: "bench", err: context.Canceled}
		svc := service.New(service.WithSources(starting, cancelled))

		Convey("When the dashboard is requested", func() {
			_, err := svc.Dashboard(ctx, service.Query{})

			Convey("Then the run is reported as canceled", func() {
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
				So(errors.Is(err, roster.ErrMissingSource), ShouldBeFalse)
				So(service.Outcome(err), ShouldEqual, service.OutcomeCanceled)
			})
		})
	})

	Convey("Given error kinds", t, func() {
		So(service.Outcome(nil), ShouldEqual, service.OutcomeOK)
		So(service.Outcome(roster.ErrMalformedSource), ShouldEqual, service.OutcomeMalformedSource)
		So(service.Outcome(context.Canceled), ShouldEqual, service.OutcomeCanceled)
		So(service.Outcome(errors.New("x")), ShouldEqual, service.OutcomeError)
	})
}

func TestService_FlagsBadData(t *testing.T) {
	Convey("Given a roster with an unmapped position and a repeated id", t, func() {
		ctx := context.Background()

		var buf bytes.Buffer
		So(logger.InitWithWriter(&buf), ShouldBeNil)
		Reset(func() { _ = logger.Init() })

		registry := prometheus.NewRegistry()
		previous := metrics.Current()
		So(metrics.Use(metrics.NewManager(metrics.WithPrometheusRegistry(registry))), ShouldBeNil)
		Reset(func() { _ = metrics.Use(previous) })

		starting := &stubSource{name: "starting", rows: []model.Player{
			{PlayerID: 1, PlayerPositions: "GK", Status: model.StatusStarting},
			{PlayerID: 2, PlayerPositions: "SW, CB", Status: model.StatusStarting},
		}}
		bench := &stubSource{name: "bench", rows: []model.Player{
			{PlayerID: 2, PlayerPositions: "CB"},
		}}
		svc := service.New(service.WithSources(starting, bench), service.WithLogger(logger.Get()))

		Convey("When the roster view is built", func() {
			view, err := svc.Roster(ctx, service.Query{})
			So(err, ShouldBeNil)

			Convey("Then the unmapped player sits on the sentinel and is listed", func() {
				So(view.Players, ShouldHaveLength, 3)
				So(view.Unmapped, ShouldHaveLength, 1)
				So(view.Unmapped[0].PlayerID, ShouldEqual, 2)
				So(view.Unmapped[0].XPosition, ShouldEqual, 0)
			})

			Convey("Then both problems are logged as warnings", func() {
				out := buf.String()
				So(out, ShouldContainSubstring, "position has no pitch slot")
				So(out, ShouldContainSubstring, "position=SW")
				So(out, ShouldContainSubstring, "duplicate player id in roster")
				So(strings.Count(out, "level=WARN"), ShouldEqual, 2)
				So(out, ShouldContainSubstring, "run_id=")
			})

			Convey("Then both problems are counted", func() {
				So(counterTotal(registry, "pitchside_roster_unmapped_positions_total"), ShouldEqual, 1)
				So(counterTotal(registry, "pitchside_roster_duplicate_player_ids_total"), ShouldEqual, 1)
				So(counterTotal(registry, "pitchside_roster_pipeline_runs_total"), ShouldEqual, 1)
			})
		})
	})
}
