package server

import (
	"net/http"

	"github.com/gorilla/mux"

	"reserve-assistant/server/handlers"
)

// SearchRoutes is the set of handlers the router mounts.
type SearchRoutes interface {
	NewSearch(w http.ResponseWriter, r *http.Request)
	NextPage(w http.ResponseWriter, r *http.Request)
	GetSession(w http.ResponseWriter, r *http.Request)
	GetSessionMap(w http.ResponseWriter, r *http.Request)
	GetBudgets(w http.ResponseWriter, r *http.Request)
	GetCatalog(w http.ResponseWriter, r *http.Request)
	Ping(w http.ResponseWriter, r *http.Request)
}

type Router struct {
	searchHandler SearchRoutes
	router        *mux.Router
}

// NewRouter creates a router with the app’s routes.
func NewRouter(
	searchHandler SearchRoutes,
	router *mux.Router) *Router {
	return &Router{
		searchHandler: searchHandler,
		router:        router,
	}
}

func (r *Router) RegisterRoutes() {
	sessionPath := "/v1/search/{" + handlers.SESSION_ID_PATH_VAR + "}"

	// body: models.SearchRequest
	r.router.HandleFunc("/v1/search", r.searchHandler.NewSearch).Methods("POST")
	r.router.HandleFunc(sessionPath+"/next", r.searchHandler.NextPage).Methods("POST")
	r.router.HandleFunc(sessionPath, r.searchHandler.GetSession).Methods("GET")
	r.router.HandleFunc(sessionPath+"/map", r.searchHandler.GetSessionMap).Methods("GET")

	r.router.HandleFunc("/v1/budgets", r.searchHandler.GetBudgets).Methods("GET")
	r.router.HandleFunc("/v1/catalog", r.searchHandler.GetCatalog).Methods("GET")

	r.router.HandleFunc("/ping", r.searchHandler.Ping).Methods("GET")
}
