package smoke

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/selimbas/revquiz/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// stubService is a minimal in-memory quiz API for exercising the runner.
type stubService struct {
	mu       sync.Mutex
	warmPoll int
	coldFor  int
	scores   map[string]float64
}

func newStubService(coldFor int) *stubService {
	return &stubService{coldFor: coldFor, scores: make(map[string]float64)}
}

func (s *stubService) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	mux.HandleFunc("/api/quiz", func(w http.ResponseWriter, _ *http.Request) {
		s.mu.Lock()
		s.warmPoll++
		cold := s.warmPoll <= s.coldFor
		s.mu.Unlock()

		if cold {
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode([]quizEntry{{ID: 1, Name: "Oyun"}})
	})

	mux.HandleFunc("/api/scores", func(w http.ResponseWriter, r *http.Request) {
		var p scorePayload
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil || p.Username == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		s.mu.Lock()
		if p.Score > s.scores[p.Username] {
			s.scores[p.Username] = p.Score
		}
		s.mu.Unlock()
		w.WriteHeader(http.StatusOK)
	})

	mux.HandleFunc("/api/leaderboard", func(w http.ResponseWriter, _ *http.Request) {
		s.mu.Lock()
		rows := make([]leaderRow, 0, len(s.scores))
		for name, score := range s.scores {
			rows = append(rows, leaderRow{Username: name, Score: score})
		}
		s.mu.Unlock()

		sort.Slice(rows, func(i, j int) bool { return rows[i].Score > rows[j].Score })
		if len(rows) > maxLeaderboardRows {
			rows = rows[:maxLeaderboardRows]
		}
		_ = json.NewEncoder(w).Encode(rows)
	})

	return mux
}

func TestSmokeRun(t *testing.T) {
	Convey("Given a healthy quiz service", t, func() {
		stub := newStubService(0)
		srv := httptest.NewServer(stub.handler())
		defer srv.Close()

		Convey("When the smoke run plays a handful of players", func() {
			err := Run(context.Background(), &Config{
				BaseURL: srv.URL,
				Players: 20,
				Workers: 4,
				Timeout: 5 * time.Second,
				WarmUp:  10 * time.Second,
			})

			Convey("Then the run passes verification", func() {
				So(err, ShouldBeNil)
				So(len(stub.scores), ShouldBeGreaterThan, 0)
			})
		})
	})
}

func TestSmokeRunWaitsForWarmUp(t *testing.T) {
	Convey("Given a service whose cache starts cold", t, func() {
		stub := newStubService(2)
		srv := httptest.NewServer(stub.handler())
		defer srv.Close()

		Convey("When the smoke run starts during warm-up", func() {
			err := Run(context.Background(), &Config{
				BaseURL: srv.URL,
				Players: 5,
				Workers: 2,
				Timeout: 5 * time.Second,
				WarmUp:  30 * time.Second,
			})

			Convey("Then it polls through the cold phase and succeeds", func() {
				So(err, ShouldBeNil)
			})
		})
	})
}

func TestSmokeRunFailsOnDeadService(t *testing.T) {
	Convey("Given no service at the target address", t, func() {
		Convey("When the smoke run starts", func() {
			err := Run(context.Background(), &Config{
				BaseURL: "http://127.0.0.1:1",
				Players: 1,
				Workers: 1,
				Timeout: time.Second,
				WarmUp:  time.Second,
			})

			Convey("Then the health check fails first", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "health check")
			})
		})
	})
}
