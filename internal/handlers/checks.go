package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/checkflac/checkflac/internal/models"
	"github.com/checkflac/checkflac/internal/release"
	"github.com/checkflac/checkflac/internal/report"
	"github.com/checkflac/checkflac/internal/storage"
)

func (h *Handler) HandleChecks(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		checks := h.checkStore.All()
		checkList := make([]*models.CheckRun, 0, len(checks))
		for _, check := range checks {
			checkList = append(checkList, check)
		}
		h.writeJSON(w, checkList)
	case "POST":
		h.handleStartCheck(w, r)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) HandleCheckDetail(w http.ResponseWriter, r *http.Request) {
	checkID := strings.TrimPrefix(r.URL.Path, "/api/checks/")

	check, ok := h.getCheckOrError(w, checkID)
	if !ok {
		return
	}

	switch r.Method {
	case "GET":
		h.writeJSON(w, check)
	case "DELETE":
		h.checkStore.Delete(checkID)
		w.WriteHeader(http.StatusNoContent)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleStartCheck(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Roots          []string `json:"roots"`
		StopLevel      string   `json:"stop_level"`
		SkipReplayGain bool     `json:"skip_replaygain"`
		SkipVerify     bool     `json:"skip_verify"`
		SkipCueLog     bool     `json:"skip_cue_log"`
		YearOnlyDates  bool     `json:"year_only_dates"`
		Concurrency    int      `json:"concurrency"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	if len(request.Roots) == 0 {
		h.writeError(w, "roots is required", http.StatusBadRequest)
		return
	}

	stopLevel, err := release.ParseLevel(request.StopLevel)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	checkID := fmt.Sprintf("check_%d", time.Now().UnixNano())
	check := &models.CheckRun{
		ID:        checkID,
		Roots:     request.Roots,
		Status:    models.StatusRunning,
		StartedAt: time.Now(),
	}
	h.checkStore.Set(checkID, check)

	newConfig := func() *release.Config {
		cfg := release.DefaultConfig()
		cfg.StopLevel = stopLevel
		cfg.SkipReplayGain = request.SkipReplayGain
		cfg.SkipVerify = request.SkipVerify
		cfg.SkipCueLog = request.SkipCueLog
		cfg.DateYearOnly = request.YearOnlyDates
		return cfg
	}

	var ver release.Verifier
	if !request.SkipVerify {
		ver = h.verifier
	}

	go func() {
		slog.Info("Starting check run", "check_id", checkID, "albums", len(request.Roots))

		results := storage.New[*report.Result]()
		g, gctx := errgroup.WithContext(h.ctx)
		g.SetLimit(max(request.Concurrency, 1))
		for _, path := range request.Roots {
			g.Go(func() error {
				album, err := release.Load(path)
				if err != nil {
					results.Set(path, &report.Result{Err: err})
					return nil
				}
				rep := &release.CollectingReporter{}
				album.Validate(gctx, newConfig(), rep, ver)
				results.Set(path, &report.Result{Reporter: rep})
				return nil
			})
		}
		// The workers never return errors; failures live in the store.
		_ = g.Wait()

		rpt := report.New(report.Config{
			StopLevel:      stopLevel.String(),
			SkipReplayGain: request.SkipReplayGain,
			SkipVerify:     request.SkipVerify,
			DateYearOnly:   request.YearOnlyDates,
		})
		for _, path := range request.Roots {
			res, ok := results.Get(path)
			if !ok {
				continue
			}
			if res.Err != nil {
				rpt.AddFailure(path, res.Err)
				continue
			}
			rpt.AddRoot(path, res.Reporter.Findings())
		}
		rpt.Finalize()

		// Replace the stored run rather than mutating it, so readers
		// never see a half-finished record.
		now := time.Now()
		done := *check
		done.Status = models.StatusDone
		done.FinishedAt = &now
		done.Report = rpt
		h.checkStore.Set(checkID, &done)

		slog.Info("Check run finished", "check_id", checkID,
			"problems", rpt.Summary.Problems, "warnings", rpt.Summary.Warnings, "failures", rpt.Summary.Failures)
	}()

	response := map[string]any{
		"check_id": checkID,
		"message":  fmt.Sprintf("Started checking %d album(s)", len(request.Roots)),
	}

	h.writeJSON(w, response)
}
