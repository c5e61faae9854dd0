package api

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/nerrad567/isox-bridge/internal/classify"
	"github.com/nerrad567/isox-bridge/internal/publish"
)

// entitySummary is one classified entity in an API listing.
type entitySummary struct {
	Platform string `json:"platform"`
	Kind     string `json:"kind"`
	Address  string `json:"address"`
	Name     string `json:"name"`
	Control  string `json:"control,omitempty"`
}

// Entity kinds in API listings.
const (
	entityKindNode     = "node"
	entityKindAux      = "aux_property"
	entityKindScene    = "scene"
	entityKindProgram  = "program"
	entityKindVariable = "variable"
)

// handleClassification returns the summary of the most recent pass.
func (s *Server) handleClassification(w http.ResponseWriter, _ *http.Request) {
	b := s.passes.LatestPass()
	if b == nil {
		writeUnavailable(w, "no classification pass has completed yet")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"pass_id": b.PassID,
		"hub_id":  b.HubID,
		"counts":  publish.EntityCounts(b),
		"devices": len(b.Devices),
	})
}

// handleListPlatforms returns the platforms with at least one entity.
func (s *Server) handleListPlatforms(w http.ResponseWriter, _ *http.Request) {
	b := s.passes.LatestPass()
	if b == nil {
		writeUnavailable(w, "no classification pass has completed yet")
		return
	}

	counts := publish.EntityCounts(b)
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	type platformSummary struct {
		Platform string `json:"platform"`
		Entities int    `json:"entities"`
	}
	platforms := make([]platformSummary, 0, len(names))
	for _, name := range names {
		platforms = append(platforms, platformSummary{Platform: name, Entities: counts[name]})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"pass_id":   b.PassID,
		"platforms": platforms,
	})
}

// handlePlatformEntities returns every entity classified into one platform.
func (s *Server) handlePlatformEntities(w http.ResponseWriter, r *http.Request) {
	b := s.passes.LatestPass()
	if b == nil {
		writeUnavailable(w, "no classification pass has completed yet")
		return
	}

	platform, err := classify.ParsePlatform(chi.URLParam(r, "platform"))
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	entities := platformEntities(b, platform)
	writeJSON(w, http.StatusOK, map[string]any{
		"pass_id":  b.PassID,
		"platform": string(platform),
		"entities": entities,
	})
}

// platformEntities collects the entity summaries for one platform in
// bucket order.
func platformEntities(b *classify.Buckets, platform classify.Platform) []entitySummary {
	entities := []entitySummary{}

	for _, n := range b.Nodes[platform] {
		entities = append(entities, entitySummary{
			Platform: string(platform),
			Kind:     entityKindNode,
			Address:  n.Address,
			Name:     n.Name,
		})
	}
	for _, nc := range b.AuxProperties[platform] {
		entities = append(entities, entitySummary{
			Platform: string(platform),
			Kind:     entityKindAux,
			Address:  nc.Node.Address,
			Name:     nc.Node.Name,
			Control:  nc.Control,
		})
	}
	if platform == classify.GroupPlatform {
		for _, g := range b.Groups {
			entities = append(entities, entitySummary{
				Platform: string(platform),
				Kind:     entityKindScene,
				Address:  g.Address,
				Name:     g.Name,
			})
		}
	}
	for _, pair := range b.Programs[platform] {
		entities = append(entities, entitySummary{
			Platform: string(platform),
			Kind:     entityKindProgram,
			Address:  pair.Status.ID,
			Name:     pair.Name,
		})
	}
	if platform == classify.PlatformNumber {
		for _, v := range b.Variables {
			entities = append(entities, entitySummary{
				Platform: string(platform),
				Kind:     entityKindVariable,
				Address:  strconv.Itoa(int(v.Type)) + "_" + strconv.Itoa(v.ID),
				Name:     v.Name,
			})
		}
	}
	return entities
}

// handleListDevices returns the physical device records from the pass,
// sorted by address.
func (s *Server) handleListDevices(w http.ResponseWriter, _ *http.Request) {
	b := s.passes.LatestPass()
	if b == nil {
		writeUnavailable(w, "no classification pass has completed yet")
		return
	}

	addresses := make([]string, 0, len(b.Devices))
	for address := range b.Devices {
		addresses = append(addresses, address)
	}
	sort.Strings(addresses)

	type deviceResponse struct {
		Address      string `json:"address"`
		Identifier   string `json:"identifier"`
		Name         string `json:"name"`
		Manufacturer string `json:"manufacturer"`
		Model        string `json:"model"`
	}
	devices := make([]deviceResponse, 0, len(addresses))
	for _, address := range addresses {
		info := b.Devices[address]
		devices = append(devices, deviceResponse{
			Address:      address,
			Identifier:   info.Identifier,
			Name:         info.Name,
			Manufacturer: info.Manufacturer,
			Model:        info.Model,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"pass_id": b.PassID,
		"devices": devices,
	})
}

// handleListVariables returns the admitted user variables.
func (s *Server) handleListVariables(w http.ResponseWriter, _ *http.Request) {
	b := s.passes.LatestPass()
	if b == nil {
		writeUnavailable(w, "no classification pass has completed yet")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"pass_id":   b.PassID,
		"variables": b.Variables,
	})
}

// handleHistory returns recorded state history for one address.
//
// Query parameters:
//   - address: Hub address to query (required)
//   - limit: Maximum rows, default 50, max 200
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeNotFound(w, "state history is not enabled")
		return
	}

	address := r.URL.Query().Get("address")
	if address == "" {
		writeBadRequest(w, "address query parameter is required")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeBadRequest(w, "limit must be a non-negative integer")
			return
		}
		limit = parsed
	}

	rows, err := s.history.History(r.Context(), address, limit)
	if err != nil {
		s.logger.Error("history query failed", "address", address, "error", err)
		writeInternalError(w, "querying state history failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"address": address,
		"rows":    rows,
	})
}
