package mcptools

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	service "github.com/okian/pitchside/internal/app"
	"github.com/okian/pitchside/internal/domain/filter"
	"github.com/okian/pitchside/internal/domain/model"
	"github.com/okian/pitchside/internal/domain/pitch"
	"github.com/okian/pitchside/internal/domain/roster"
	"github.com/okian/pitchside/internal/sampledata"
	"github.com/okian/pitchside/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func sampleTools() *Tools {
	starting, bench, err := sampledata.Sources()
	So(err, ShouldBeNil)
	svc := service.New(service.WithSources(starting, bench))
	So(svc.Start(context.Background()), ShouldBeNil)
	tools, err := New(svc)
	So(err, ShouldBeNil)
	return tools
}

func decode(res *mcp.CallToolResult, v any) {
	So(res, ShouldNotBeNil)
	So(res.IsError, ShouldBeFalse)
	So(res.Content, ShouldHaveLength, 1)
	text, ok := res.Content[0].(*mcp.TextContent)
	So(ok, ShouldBeTrue)
	So(json.Unmarshal([]byte(text.Text), v), ShouldBeNil)
}

func errorText(res *mcp.CallToolResult) string {
	So(res, ShouldNotBeNil)
	So(res.IsError, ShouldBeTrue)
	text, ok := res.Content[0].(*mcp.TextContent)
	So(ok, ShouldBeTrue)
	return text.Text
}

type failingDeps struct{ err error }

func (f failingDeps) Options(context.Context) (filter.Selection, error) {
	return filter.Selection{}, f.err
}

func (f failingDeps) Dashboard(context.Context, service.Query) (service.Dashboard, error) {
	return service.Dashboard{}, f.err
}

func (f failingDeps) Compare(context.Context, service.Query, int, int) (service.Comparison, error) {
	return service.Comparison{}, f.err
}

func (f failingDeps) Layout() pitch.Layout { return pitch.DefaultLayout() }

func TestToolHandlers(t *testing.T) {
	Convey("Given tools over the sample squad", t, func() {
		ctx := context.Background()
		tools := sampleTools()

		Convey("When listing filters", func() {
			res, _, err := tools.Filters(ctx, nil, FiltersArgs{})
			So(err, ShouldBeNil)
			var sel filter.Selection
			decode(res, &sel)

			Convey("Then both statuses are present in load order", func() {
				So(sel.Statuses, ShouldResemble, []string{string(model.StatusStarting), string(model.StatusBench)})
				So(sel.Positions, ShouldContain, sampledata.Goalkeeper)
			})
		})

		Convey("When summarising the whole squad", func() {
			res, _, err := tools.Summary(ctx, nil, SelectionArgs{})
			So(err, ShouldBeNil)
			var out struct {
				RunID   string `json:"run_id"`
				Summary struct {
					TotalPlayers int      `json:"total_players"`
					AvgAge       *float64 `json:"avg_age"`
				} `json:"summary"`
			}
			decode(res, &out)

			Convey("Then all 18 players are counted", func() {
				So(out.RunID, ShouldNotBeEmpty)
				So(out.Summary.TotalPlayers, ShouldEqual, 18)
				So(out.Summary.AvgAge, ShouldNotBeNil)
			})
		})

		Convey("When summarising an explicitly empty status list", func() {
			res, _, err := tools.Summary(ctx, nil, SelectionArgs{Statuses: []string{}})
			So(err, ShouldBeNil)
			var out struct {
				Summary struct {
					TotalPlayers int      `json:"total_players"`
					AvgAge       *float64 `json:"avg_age"`
				} `json:"summary"`
			}
			decode(res, &out)

			Convey("Then nothing is selected and averages are null", func() {
				So(out.Summary.TotalPlayers, ShouldEqual, 0)
				So(out.Summary.AvgAge, ShouldBeNil)
			})
		})

		Convey("When asking for the best player by position", func() {
			res, _, err := tools.BestByPosition(ctx, nil, SelectionArgs{})
			So(err, ShouldBeNil)
			var best []model.Player
			decode(res, &best)

			Convey("Then one player per general position is returned", func() {
				So(best, ShouldHaveLength, 4)
			})
		})

		Convey("When asking for the bench only on the pitch", func() {
			res, _, err := tools.PitchLayout(ctx, nil, SelectionArgs{Statuses: []string{string(model.StatusBench)}})
			So(err, ShouldBeNil)
			var out PitchResult
			decode(res, &out)

			Convey("Then the pitch is empty but the layout is described", func() {
				So(out.Pitch, ShouldBeEmpty)
				So(out.Layout.Buckets, ShouldHaveLength, 4)
			})
		})

		Convey("When asking for the starting pitch", func() {
			res, _, err := tools.PitchLayout(ctx, nil, SelectionArgs{})
			So(err, ShouldBeNil)
			var out PitchResult
			decode(res, &out)

			Convey("Then eleven placements are returned", func() {
				So(out.Pitch, ShouldHaveLength, 11)
				So(out.Unmapped, ShouldBeEmpty)
			})
		})

		Convey("When comparing two players", func() {
			res, _, err := tools.ComparePlayers(ctx, nil, CompareArgs{A: 900001, B: 900012})
			So(err, ShouldBeNil)
			var cmp service.Comparison
			decode(res, &cmp)

			Convey("Then both radar series are returned", func() {
				So(cmp.Players, ShouldHaveLength, 2)
				So(cmp.Players[0].PlayerID, ShouldEqual, 900001)
				So(cmp.Max, ShouldEqual, 100)
			})
		})

		Convey("When comparing with a missing id", func() {
			res, _, err := tools.ComparePlayers(ctx, nil, CompareArgs{A: 900001})
			So(err, ShouldBeNil)

			Convey("Then a tool error is returned", func() {
				So(errorText(res), ShouldContainSubstring, ErrPlayerIDs.Error())
			})
		})

		Convey("When comparing an unknown player", func() {
			res, _, err := tools.ComparePlayers(ctx, nil, CompareArgs{A: 900001, B: 1})
			So(err, ShouldBeNil)

			Convey("Then the not found error is reported", func() {
				So(errorText(res), ShouldContainSubstring, service.ErrPlayerNotFound.Error())
			})
		})
	})

	Convey("Given a service whose sources are missing", t, func() {
		ctx := context.Background()
		tools, err := New(failingDeps{err: roster.ErrMissingSource})
		So(err, ShouldBeNil)

		Convey("Then every tool reports the failure", func() {
			res, _, err := tools.Filters(ctx, nil, FiltersArgs{})
			So(err, ShouldBeNil)
			So(errorText(res), ShouldContainSubstring, roster.ErrMissingSource.Error())

			for _, call := range []func(context.Context, *mcp.CallToolRequest, SelectionArgs) (*mcp.CallToolResult, any, error){
				tools.Summary, tools.BestByPosition, tools.PitchLayout,
			} {
				res, _, err := call(ctx, nil, SelectionArgs{})
				So(err, ShouldBeNil)
				So(res.IsError, ShouldBeTrue)
			}
		})
	})
}

func TestNew(t *testing.T) {
	Convey("Given no dependencies", t, func() {
		_, err := New(nil)
		So(errors.Is(err, ErrNilDeps), ShouldBeTrue)

		_, err = NewServer(nil)
		So(errors.Is(err, ErrNilDeps), ShouldBeTrue)
	})
}

func TestServerOverInMemoryTransport(t *testing.T) {
	Convey("Given a connected client", t, func() {
		ctx := context.Background()
		starting, bench, err := sampledata.Sources()
		So(err, ShouldBeNil)
		svc := service.New(service.WithSources(starting, bench))
		So(svc.Start(ctx), ShouldBeNil)

		server, err := NewServer(svc)
		So(err, ShouldBeNil)

		clientTransport, serverTransport := mcp.NewInMemoryTransports()
		ss, err := server.Connect(ctx, serverTransport, nil)
		So(err, ShouldBeNil)
		Reset(func() { _ = ss.Close() })

		client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "0.0.1"}, nil)
		cs, err := client.Connect(ctx, clientTransport, nil)
		So(err, ShouldBeNil)
		Reset(func() { _ = cs.Close() })

		Convey("When listing tools", func() {
			list, err := cs.ListTools(ctx, nil)
			So(err, ShouldBeNil)

			Convey("Then all roster tools are advertised", func() {
				names := make([]string, 0, len(list.Tools))
				for _, tool := range list.Tools {
					names = append(names, tool.Name)
				}
				So(names, ShouldContain, "roster_filters")
				So(names, ShouldContain, "roster_summary")
				So(names, ShouldContain, "best_by_position")
				So(names, ShouldContain, "pitch_layout")
				So(names, ShouldContain, "compare_players")
			})
		})

		Convey("When calling roster_summary with a position filter", func() {
			res, err := cs.CallTool(ctx, &mcp.CallToolParams{
				Name:      "roster_summary",
				Arguments: map[string]any{"positions": []string{sampledata.Goalkeeper}},
			})
			So(err, ShouldBeNil)
			var out SummaryResult
			decode(res, &out)

			Convey("Then only goalkeepers are counted", func() {
				So(out.Summary.TotalPlayers, ShouldBeGreaterThan, 0)
				So(out.Selection.Positions, ShouldResemble, []string{sampledata.Goalkeeper})
			})
		})
	})
}

func TestRegister(t *testing.T) {
	Convey("Given a router with the MCP endpoint", t, func() {
		ctx := context.Background()
		tools := sampleTools()
		server, err := NewServer(tools.deps)
		So(err, ShouldBeNil)

		hits := 0
		r := chi.NewRouter()
		Register(ctx, r, "", server, func(next http.HandlerFunc) http.HandlerFunc {
			return func(w http.ResponseWriter, req *http.Request) {
				hits++
				next(w, req)
			}
		})

		Convey("When a request reaches the default path", func() {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, DefaultPath, http.NoBody))

			Convey("Then the wrapped transport handles it", func() {
				So(hits, ShouldEqual, 1)
			})
		})

		Convey("Then a nil router panics", func() {
			So(func() { Register(ctx, nil, "", server, nil) }, ShouldPanic)
		})
	})
}
