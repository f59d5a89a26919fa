package server

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/sdboard/sdboard/pkg/kpi"
	"github.com/sdboard/sdboard/pkg/source"
)

type pageJSON struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

func (s *Server) handlePages(w http.ResponseWriter, r *http.Request) {
	pages := make([]pageJSON, 0, len(source.Pages))
	for _, p := range source.Pages {
		pages = append(pages, pageJSON{Slug: string(p), Title: p.Title()})
	}
	WriteJSON(w, http.StatusOK, pages)
}

// CardJSON is the API rendering of one KPI comparison.
type CardJSON struct {
	Label         string               `json:"label"`
	Value         float64              `json:"value"`
	Unit          string               `json:"unit"`
	Formatted     string               `json:"formatted"`
	Budget        float64              `json:"budget"`
	Variance      *kpi.VarianceResult  `json:"variance"`
	Percent       string               `json:"percent"`
	Color         string               `json:"color,omitempty"`
	Error         string               `json:"error,omitempty"`
	LowerIsBetter bool                 `json:"lower_is_better"`
	History       kpi.HistoricalDeltas `json:"history"`
}

// NewCardJSON runs the comparator for c. An undefined variance is reported in
// Error with a null Variance.
func NewCardJSON(c source.CardInput) CardJSON {
	out := CardJSON{
		Label:         c.Label,
		Value:         c.Value,
		Unit:          c.Unit,
		Formatted:     kpi.FormatMagnitude(c.Value),
		Budget:        c.Budget,
		Percent:       kpi.NotAvailable,
		LowerIsBetter: c.LowerIsBetter,
		History:       c.History,
	}
	cmp, err := c.Compare()
	if err != nil {
		out.Error = err.Error()
		return out
	}
	out.Variance = &cmp.Variance
	out.Percent = kpi.FormatPercent(cmp.Variance.PercentDelta)
	out.Color = cmp.Variance.Tier.Color()
	return out
}

type cardsResponse struct {
	Page  string        `json:"page"`
	Title string        `json:"title"`
	Cards []CardJSON    `json:"cards"`
	Tiles []source.Tile `json:"tiles"`
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	page, err := source.ParsePage(r.PathValue("page"))
	if err != nil {
		WriteError(w, http.StatusNotFound, fmt.Sprintf("unknown page %q", r.PathValue("page")))
		return
	}

	inputs := s.Source.Cards(page)
	resp := cardsResponse{
		Page:  string(page),
		Title: page.Title(),
		Cards: make([]CardJSON, 0, len(inputs)),
		Tiles: s.Source.Tiles(page),
	}
	for _, c := range inputs {
		card := NewCardJSON(c)
		if card.Variance == nil {
			s.Metrics.RecordUndefinedVariance(string(page))
		}
		resp.Cards = append(resp.Cards, card)
	}
	if resp.Tiles == nil {
		resp.Tiles = []source.Tile{}
	}
	WriteJSON(w, http.StatusOK, resp)
}

type catalogResponse struct {
	Name    string   `json:"name"`
	Title   string   `json:"title"`
	Days    int      `json:"days,omitempty"`
	Options []string `json:"options"`
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	c, err := s.Source.Catalog(r.PathValue("name"))
	if err != nil {
		WriteError(w, http.StatusNotFound, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, catalogResponse{Name: c.Name, Title: c.Title, Days: c.Days, Options: c.Keys()})
}

func queryFloat(r *http.Request, name string) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, fmt.Errorf("missing %q parameter", name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid %q parameter: %v", name, raw)
	}
	return v, nil
}

type varianceResponse struct {
	kpi.VarianceResult
	Percent string `json:"percent"`
	Color   string `json:"color"`
}

func (s *Server) handleVariance(w http.ResponseWriter, r *http.Request) {
	value, err := queryFloat(r, "value")
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	reference, err := queryFloat(r, "reference")
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	v, err := kpi.ComputeVariance(value, reference)
	if errors.Is(err, kpi.ErrDivisionUndefined) {
		WriteError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if math.IsInf(v.PercentDelta, 0) {
		WriteError(w, http.StatusUnprocessableEntity, "variance out of range")
		return
	}
	WriteJSON(w, http.StatusOK, varianceResponse{
		VarianceResult: v,
		Percent:        kpi.FormatPercent(v.PercentDelta),
		Color:          v.Tier.Color(),
	})
}

type severityResponse struct {
	Percent float64  `json:"percent"`
	Tier    kpi.Tier `json:"tier"`
	Color   string   `json:"color"`
}

func (s *Server) handleSeverity(w http.ResponseWriter, r *http.Request) {
	p, err := queryFloat(r, "percent")
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	tier := kpi.ClassifySeverity(p)
	WriteJSON(w, http.StatusOK, severityResponse{Percent: p, Tier: tier, Color: tier.Color()})
}
