package api

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/matzehuels/deckdraw/pkg/emit"
	"github.com/matzehuels/deckdraw/pkg/errors"
	"github.com/matzehuels/deckdraw/pkg/pipeline"
	"github.com/matzehuels/deckdraw/pkg/store"
)

// RenderRequest is the POST /render body.
type RenderRequest struct {
	// Deck is the YAML deck description.
	Deck string `json:"deck"`

	// Options configure the pipeline run.
	Options pipeline.Options `json:"options"`

	// Persist stores the recorded scene of each slide and returns
	// scene ids. Requires the canvas engine and a configured store.
	Persist bool `json:"persist,omitempty"`
}

// RenderResponse is the POST /render reply. Artifact bytes are base64
// encoded.
type RenderResponse struct {
	DeckHash string            `json:"deck_hash"`
	CacheHit bool              `json:"cache_hit"`
	Slides   []SlideArtifacts  `json:"slides"`
	Stats    RenderStats       `json:"stats"`
	SceneIDs map[string]string `json:"scene_ids,omitempty"`
}

// SlideArtifacts carries one slide's rendered outputs.
type SlideArtifacts struct {
	SlideID   string            `json:"slide_id"`
	Artifacts map[string]string `json:"artifacts"`
}

// RenderStats reports pipeline timing in milliseconds.
type RenderStats struct {
	ParseMS  int64 `json:"parse_ms"`
	RenderMS int64 `json:"render_ms"`
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req RenderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return
	}
	if req.Deck == "" {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "deck is required"))
		return
	}

	result, err := s.runner.Execute(r.Context(), []byte(req.Deck), req.Options)
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := RenderResponse{
		DeckHash: result.DeckHash,
		CacheHit: result.CacheHit,
		Stats: RenderStats{
			ParseMS:  result.Stats.ParseTime.Milliseconds(),
			RenderMS: result.Stats.RenderTime.Milliseconds(),
		},
	}
	for _, sr := range result.Slides {
		sa := SlideArtifacts{SlideID: sr.SlideID, Artifacts: map[string]string{}}
		for format, data := range sr.Artifacts {
			sa.Artifacts[format] = base64.StdEncoding.EncodeToString(data)
		}
		resp.Slides = append(resp.Slides, sa)
	}

	if req.Persist {
		ids, err := s.persistScenes(r, result)
		if err != nil {
			s.writeError(w, err)
			return
		}
		resp.SceneIDs = ids
	}

	writeJSON(w, http.StatusOK, resp)
}

// persistScenes stores the JSON scene of each rendered slide.
func (s *Server) persistScenes(r *http.Request, result *pipeline.Result) (map[string]string, error) {
	if s.store == nil {
		return nil, errors.New(errors.ErrCodeUnsupported, "scene persistence is not configured")
	}

	ids := map[string]string{}
	for _, sr := range result.Slides {
		raw, ok := sr.Artifacts[pipeline.FormatJSON]
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"persist requires the json format in options.formats")
		}
		var scene emit.Scene
		if err := json.Unmarshal(raw, &scene); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode scene for slide %s", sr.SlideID)
		}

		rec := store.Record{
			ID:        uuid.NewString(),
			DeckHash:  result.DeckHash,
			SlideID:   sr.SlideID,
			Scene:     scene,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.store.Put(r.Context(), rec); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "store scene for slide %s", sr.SlideID)
		}
		ids[sr.SlideID] = rec.ID
	}
	return ids, nil
}

func (s *Server) handleGetScene(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, errors.New(errors.ErrCodeNotFound, "scene persistence is not configured"))
		return
	}
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err == store.ErrNotFound {
		s.writeError(w, errors.New(errors.ErrCodeNotFound, "scene not found"))
		return
	}
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "load scene"))
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleListScenes(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, errors.New(errors.ErrCodeNotFound, "scene persistence is not configured"))
		return
	}
	recs, err := s.store.ListByDeck(r.Context(), chi.URLParam(r, "hash"))
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "list scenes"))
		return
	}
	if recs == nil {
		recs = []store.Record{}
	}
	writeJSON(w, http.StatusOK, recs)
}
