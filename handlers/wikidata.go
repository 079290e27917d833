package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// SearchWikiData proxies entity search for the post form's label
// picker. The response is a plain JSON array of matches so the form
// script can render suggestions without talking to wikidata.org
// directly.
func SearchWikiData(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("q")

		labels, err := d.Wiki.Search(r.Context(), query)
		if err != nil {
			d.Logger.Warn("wikidata search failed", zap.String("query", query), zap.Error(err))
			http.Error(w, "WikiData search failed", http.StatusBadGateway)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(labels); err != nil {
			d.Logger.Error("wikidata response encode failed", zap.Error(err))
		}
	}
}
