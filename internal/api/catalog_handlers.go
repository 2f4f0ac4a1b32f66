package api

import (
	"net/http"

	"github.com/vytor/thaiflash/internal/alphabet"
	"github.com/vytor/thaiflash/internal/models"
)

type catalogQuery struct {
	Types []string `json:"alphabet-type" validate:"omitempty,dive,oneof=consonant vowel tone other"`
}

type catalogResponse struct {
	Items []models.AlphabetItem `json:"items"`
	Count int                   `json:"count"`
}

// handleCatalog lists the alphabet in catalog order. Without alphabet-type
// parameters the whole catalog is returned.
func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	q := catalogQuery{Types: r.URL.Query()[queryAlphabetTypes]}
	if err := validateStruct(q); err != nil {
		handleError(w, r, err)
		return
	}

	items := s.Catalog
	if len(q.Types) > 0 {
		types := make([]models.AlphabetType, len(q.Types))
		for i, t := range q.Types {
			types[i] = models.AlphabetType(t)
		}
		items = alphabet.FilterByTypes(items, types)
	}
	items = alphabet.SortByOrder(items)

	writeJSON(w, r, http.StatusOK, catalogResponse{Items: items, Count: len(items)})
}
