package api

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sells-group/comps-engine/internal/comps"
	"github.com/sells-group/comps-engine/internal/model"
	"github.com/sells-group/comps-engine/internal/profile"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAll(w http.ResponseWriter, r *http.Request) {
	ov, err := s.engine.All(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ov)
}

// queryBody mirrors comps.Request with the filters left raw so unknown filter
// keys can be ignored while unknown top-level fields are rejected.
type queryBody struct {
	Filters       json.RawMessage     `json:"filters"`
	SortColumn    string              `json:"sortColumn"`
	SortDirection model.SortDirection `json:"sortDirection"`
	Page          int                 `json:"page"`
	PageSize      int                 `json:"pageSize"`
}

func decodeQuery(r *http.Request) (comps.Request, error) {
	var body queryBody
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		return comps.Request{}, model.NewValidationError("", err.Error())
	}

	req := comps.Request{
		SortColumn:    body.SortColumn,
		SortDirection: body.SortDirection,
		Page:          body.Page,
		PageSize:      body.PageSize,
	}
	if len(body.Filters) > 0 && !bytes.Equal(body.Filters, []byte("null")) {
		if err := json.Unmarshal(body.Filters, &req.Filters); err != nil {
			return comps.Request{}, model.NewValidationError("filters", err.Error())
		}
	}
	return req, nil
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	req, err := decodeQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	req.Normalize(s.engine.Config())
	if err := req.Validate(s.engine.Config()); err != nil {
		writeError(w, r, err)
		return
	}

	resp, err := s.engine.Query(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	companies, err := s.engine.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, companies)
}

func (s *Server) handleCompany(w http.ResponseWriter, r *http.Request) {
	c, err := s.engine.Company(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleFilterOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := s.engine.FilterOptions(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, opts)
}

func (s *Server) handleSectors(w http.ResponseWriter, r *http.Request) {
	sectors, err := s.engine.Sectors(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sectors)
}

func (s *Server) handleCompanyList(w http.ResponseWriter, r *http.Request) {
	list, err := s.engine.CompanyList(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleProfiles(w http.ResponseWriter, r *http.Request) {
	dir, err := s.engine.CompanyDirectory(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dir)
}

func (s *Server) handleProfileMetrics(w http.ResponseWriter, r *http.Request) {
	m, err := s.profiles.TableMetrics(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleProfileCategory(w http.ResponseWriter, r *http.Request) {
	category := profile.Category(chi.URLParam(r, "category"))
	section, err := s.profiles.MetricsByCategory(r.Context(), chi.URLParam(r, "id"), category)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, section)
}

func (s *Server) handleProfileSeries(w http.ResponseWriter, r *http.Request) {
	points, err := s.profiles.QuarterlySeries(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, points)
}

func (s *Server) handleProfileChart(w http.ResponseWriter, r *http.Request) {
	chart := profile.Chart(chi.URLParam(r, "chart"))
	points, err := s.profiles.ChartSeries(r.Context(), chi.URLParam(r, "id"), chart)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, points)
}
