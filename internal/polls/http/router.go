package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/polls/internal/polls/domain"
	"github.com/aussiebroadwan/polls/internal/polls/service"
	"github.com/aussiebroadwan/polls/internal/polls/store"
	"github.com/aussiebroadwan/polls/pkg/httpx"
	"github.com/aussiebroadwan/polls/pkg/jwtx"
	"github.com/aussiebroadwan/polls/pkg/slogx"

	_ "github.com/aussiebroadwan/polls/api/polls" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// DefaultMaxPageSize applies when the router is built with a non-positive page cap.
const DefaultMaxPageSize = 100

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keyManager   *jwtx.KeyManager
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	maxPageSize  int

	store           store.Store
	UserService     *service.UserService
	TokenService    *service.TokenService
	QuestionService *service.QuestionService
	VoteService     *service.VoteService
}

func NewRouter(
	km *jwtx.KeyManager,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
	maxPageSize int,
) *Router {
	if maxPageSize <= 0 {
		maxPageSize = DefaultMaxPageSize
	}

	r := &Router{
		Mux:          http.NewServeMux(),
		keyManager:   km,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
		maxPageSize:  maxPageSize,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerQuestions()
	r.registerVotes()
	r.registerAdmin()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Polls API
//	@version		0.1.0
//	@description	Question and voting service. Admins publish questions with choices, users vote once per question.
//	@description
//	@description				Access and refresh tokens are JWTs returned by /login.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/polls
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// authenticated wraps h with bearer token verification.
func (r *Router) authenticated(h http.Handler) http.Handler {
	return httpx.Chain(h, httpx.AuthnMiddleware(r.keyManager.Verifier))
}

// adminOnly additionally requires the admin role. Authn runs first.
func (r *Router) adminOnly(h http.Handler) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.keyManager.Verifier),
		httpx.RequireRole(string(domain.RoleAdmin)),
	)
}

func (r *Router) registerAuth() {
	r.Mux.Handle("POST /login", &LoginHandler{
		UserService:  r.UserService,
		TokenService: r.TokenService,
	})
	r.Mux.Handle("POST /register", &RegisterHandler{UserService: r.UserService})
	r.Mux.Handle("POST /token/refresh", &RefreshHandler{TokenService: r.TokenService})
}

func (r *Router) registerQuestions() {
	h := &QuestionsHandler{
		QuestionService: r.QuestionService,
		MaxPageSize:     r.maxPageSize,
	}

	r.Mux.HandleFunc("GET /questions", h.HandleList)
	r.Mux.HandleFunc("GET /questions/{id}", h.HandleGet)
	r.Mux.Handle("POST /create-question",
		r.adminOnly(&CreateQuestionHandler{QuestionService: r.QuestionService}),
	)
}

func (r *Router) registerVotes() {
	r.Mux.Handle("POST /vote", r.authenticated(&VoteHandler{VoteService: r.VoteService}))
	r.Mux.Handle("GET /voted-questions",
		r.authenticated(&VotedQuestionsHandler{VoteService: r.VoteService}),
	)
}

func (r *Router) registerAdmin() {
	h := &AdminHandler{
		UserService: r.UserService,
		VoteService: r.VoteService,
		MaxPageSize: r.maxPageSize,
	}

	r.Mux.Handle("GET /admin/users", r.adminOnly(http.HandlerFunc(h.HandleUsers)))
	r.Mux.Handle("GET /admin/votes", r.adminOnly(http.HandlerFunc(h.HandleVotes)))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keyManager))
}
