package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPlayerRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("POST /v1/players", handler.CreatePlayer)
	mux.HandleFunc("GET /v1/players/{playerID}", handler.GetPlayer)
	mux.HandleFunc("PATCH /v1/players/{playerID}", handler.UpdatePlayer)
	mux.HandleFunc("DELETE /v1/players/{playerID}", handler.DeletePlayer)
	mux.HandleFunc("POST /v1/players/refresh", handler.RefreshPlayers)
}

func registerDirectoryRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/directory/search", handler.SearchDirectory)
	mux.HandleFunc("POST /v1/directory/refresh", handler.RefreshDirectory)
	mux.HandleFunc("GET /v1/stats/{externalID}", handler.GetStats)
}
